package ai

// Conversation is the ordered message history passed to and returned from
// Adapter.Predict. It has no internal locking: at most one Predict call may
// be in flight per Conversation.
type Conversation struct {
	messages []Message
}

// NewConversation returns a conversation seeded with messages.
func NewConversation(messages ...Message) *Conversation {
	c := &Conversation{}
	c.AddMessages(messages...)
	return c
}

// AddMessage appends message. Any role is accepted; adapters validate roles
// against their own RoleTable when formatting.
func (c *Conversation) AddMessage(message Message) {
	c.messages = append(c.messages, message.clone())
}

// AddMessages appends all messages in order.
func (c *Conversation) AddMessages(messages ...Message) {
	for _, message := range messages {
		c.AddMessage(message)
	}
}

// History returns a copy of every message in order.
func (c *Conversation) History() []Message {
	return cloneMessages(c.messages)
}

// Len returns the number of messages.
func (c *Conversation) Len() int {
	return len(c.messages)
}

// Last returns the trailing message, or false when the conversation is empty.
func (c *Conversation) Last() (Message, bool) {
	if len(c.messages) == 0 {
		return Message{}, false
	}
	return c.messages[len(c.messages)-1].clone(), true
}

// LastMessages returns up to n trailing messages.
func (c *Conversation) LastMessages(n int) []Message {
	if n <= 0 {
		return []Message{}
	}
	if n > len(c.messages) {
		n = len(c.messages)
	}
	return cloneMessages(c.messages[len(c.messages)-n:])
}

// FilterByRole returns the messages with the given role, in order.
func (c *Conversation) FilterByRole(role MessageRole) []Message {
	out := []Message{}
	for _, message := range c.messages {
		if message.Role == role {
			out = append(out, message.clone())
		}
	}
	return out
}

// WithoutRole returns every message whose role differs from role, in order.
func (c *Conversation) WithoutRole(role MessageRole) []Message {
	out := []Message{}
	for _, message := range c.messages {
		if message.Role != role {
			out = append(out, message.clone())
		}
	}
	return out
}

// SystemContext returns the content of the most recent system message.
func (c *Conversation) SystemContext() (string, bool) {
	for i := len(c.messages) - 1; i >= 0; i-- {
		if c.messages[i].Role == RoleSystem {
			return c.messages[i].Content, true
		}
	}
	return "", false
}

func cloneMessages(messages []Message) []Message {
	out := make([]Message, len(messages))
	for i, message := range messages {
		out[i] = message.clone()
	}
	return out
}
