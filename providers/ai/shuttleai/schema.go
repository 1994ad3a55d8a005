package shuttleai

import (
	"errors"
	"fmt"

	"github.com/leofalp/llmadapt/providers/ai"
)

var errMissingToolName = errors.New("tool description has no name")

// SchemaConverter renders tools in ShuttleAI's function-calling format:
//
//	{"type": "function", "function": {"name": ..., "description": ...,
//	 "parameters": {"type": "object", "properties": {...}, "required": [...]}}}
type SchemaConverter struct{}

var _ ai.SchemaConverter = SchemaConverter{}

// Convert is pure; a tool without parameters gets an empty object schema.
func (SchemaConverter) Convert(tool ai.ToolDescription) (map[string]any, error) {
	if tool.Name == "" {
		return nil, errMissingToolName
	}

	properties := map[string]any{}
	required := []string{}
	parameters := map[string]any{"type": "object"}

	if tool.Parameters != nil {
		schema, err := tool.Parameters.ToMap()
		if err != nil {
			return nil, fmt.Errorf("tool %q: %w", tool.Name, err)
		}
		if props, ok := schema["properties"].(map[string]any); ok {
			properties = props
		}
		if defs, ok := schema["$defs"]; ok {
			parameters["$defs"] = defs
		}
		required = append(required, tool.Parameters.Required...)
	}

	parameters["properties"] = properties
	parameters["required"] = required

	return map[string]any{
		"type": "function",
		"function": map[string]any{
			"name":        tool.Name,
			"description": tool.Description,
			"parameters":  parameters,
		},
	}, nil
}
