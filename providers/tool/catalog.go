package tool

import (
	"strings"
	"sync"

	"github.com/leofalp/llmadapt/providers/ai"
)

// Catalog is a goroutine-safe set of tools keyed by lowercase name.
type Catalog struct {
	mu    sync.RWMutex
	tools map[string]ai.Tool
}

var _ ai.Toolkit = (*Catalog)(nil)

// NewCatalog returns an empty catalog.
func NewCatalog() *Catalog {
	return &Catalog{tools: make(map[string]ai.Tool)}
}

// NewCatalogWithTools creates a catalog holding tools.
func NewCatalogWithTools(tools ...ai.Tool) *Catalog {
	catalog := NewCatalog()
	catalog.AddTools(tools...)
	return catalog
}

// AddTools registers tools under their ToolInfo name, replacing any tool
// with the same name.
func (c *Catalog) AddTools(tools ...ai.Tool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, t := range tools {
		c.tools[strings.ToLower(t.ToolInfo().Name)] = t
	}
}

// Get retrieves a tool by name (case-insensitive).
func (c *Catalog) Get(name string) (ai.Tool, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	t, ok := c.tools[strings.ToLower(name)]
	return t, ok
}

// Has reports whether a tool is registered under name, ignoring case.
func (c *Catalog) Has(name string) bool {
	_, ok := c.Get(name)
	return ok
}

// Remove deletes the named tool and reports whether it was present.
func (c *Catalog) Remove(name string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	key := strings.ToLower(name)
	if _, ok := c.tools[key]; !ok {
		return false
	}
	delete(c.tools, key)
	return true
}

// Tools returns a copy of the tool map.
func (c *Catalog) Tools() map[string]ai.Tool {
	c.mu.RLock()
	defer c.mu.RUnlock()

	tools := make(map[string]ai.Tool, len(c.tools))
	for name, t := range c.tools {
		tools[name] = t
	}
	return tools
}

// Size returns the number of registered tools.
func (c *Catalog) Size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.tools)
}

// Merge copies every tool of other into c; other wins on name clashes.
func (c *Catalog) Merge(other *Catalog) {
	if other == nil || other == c {
		return
	}
	c.AddTools(toolList(other.Tools())...)
}

// Clone returns an independent catalog with the same tools.
func (c *Catalog) Clone() *Catalog {
	return NewCatalogWithTools(toolList(c.Tools())...)
}

func toolList(tools map[string]ai.Tool) []ai.Tool {
	list := make([]ai.Tool, 0, len(tools))
	for _, t := range tools {
		list = append(list, t)
	}
	return list
}
