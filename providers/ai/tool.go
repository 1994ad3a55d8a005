package ai

import (
	"context"
	"sort"

	"github.com/leofalp/llmadapt/internal/jsonschema"
)

// ToolDescription is the provider-neutral description of a tool.
type ToolDescription struct {
	Name        string             `json:"name"`
	Description string             `json:"description,omitempty"`
	Parameters  *jsonschema.Schema `json:"parameters,omitempty"`
}

// Tool is a named function the model may invoke. Call receives the raw JSON
// arguments produced by the model and returns the text result.
type Tool interface {
	ToolInfo() ToolDescription
	Call(ctx context.Context, arguments string) (string, error)
}

// Toolkit resolves tools by name.
type Toolkit interface {
	Get(name string) (Tool, bool)
	Tools() map[string]Tool
}

// SchemaConverter translates a ToolDescription into the JSON shape one
// provider expects in its tools list.
type SchemaConverter interface {
	Convert(tool ToolDescription) (map[string]any, error)
}

// ToolDescriptions returns the descriptions of every tool in toolkit, sorted
// by name so payloads are deterministic.
func ToolDescriptions(toolkit Toolkit) []ToolDescription {
	if toolkit == nil {
		return nil
	}
	tools := toolkit.Tools()
	descriptions := make([]ToolDescription, 0, len(tools))
	for _, tool := range tools {
		descriptions = append(descriptions, tool.ToolInfo())
	}
	sort.Slice(descriptions, func(i, j int) bool { return descriptions[i].Name < descriptions[j].Name })
	return descriptions
}

// ConvertTools runs every tool in toolkit through converter.
func ConvertTools(converter SchemaConverter, toolkit Toolkit) ([]map[string]any, error) {
	descriptions := ToolDescriptions(toolkit)
	converted := make([]map[string]any, 0, len(descriptions))
	for _, description := range descriptions {
		schema, err := converter.Convert(description)
		if err != nil {
			return nil, err
		}
		converted = append(converted, schema)
	}
	return converted, nil
}
