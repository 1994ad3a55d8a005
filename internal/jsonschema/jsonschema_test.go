package jsonschema

import (
	"reflect"
	"slices"
	"strings"
	"testing"
)

type weatherInput struct {
	City    string   `json:"city" jsonschema:"description=City name"`
	Units   string   `json:"units,omitempty" jsonschema:"enum=metric,enum=imperial"`
	Days    int      `json:"days"`
	Verbose *bool    `json:"verbose"`
	Tags    []string `json:"tags,omitempty"`
	Hidden  string   `json:"-"`
	secret  string
}

func TestGenerateJSONSchema_Struct(t *testing.T) {
	schema, err := GenerateJSONSchema[weatherInput]()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if schema.Type != "object" {
		t.Fatalf("expected object schema, got %q", schema.Type)
	}
	if len(schema.Properties) != 5 {
		t.Fatalf("expected 5 properties, got %d: %v", len(schema.Properties), schema)
	}
	if schema.Properties["city"].Description != "City name" {
		t.Errorf("expected description from tag, got %q", schema.Properties["city"].Description)
	}
	if !reflect.DeepEqual(schema.Properties["units"].Enum, []any{"metric", "imperial"}) {
		t.Errorf("unexpected enum %v", schema.Properties["units"].Enum)
	}
	if schema.Properties["days"].Type != "integer" {
		t.Errorf("expected integer days, got %q", schema.Properties["days"].Type)
	}
	if schema.Properties["tags"].Type != "array" || schema.Properties["tags"].Items.Type != "string" {
		t.Errorf("expected string array tags, got %v", schema.Properties["tags"])
	}

	wantRequired := []string{"city", "days"}
	if !slices.Equal(schema.Required, wantRequired) {
		t.Errorf("expected required %v, got %v", wantRequired, schema.Required)
	}
}

func TestGenerateJSONSchema_RequiredTagOnPointer(t *testing.T) {
	type input struct {
		Query *string `json:"query" jsonschema:"required"`
	}
	schema, err := GenerateJSONSchema[input]()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !slices.Contains(schema.Required, "query") {
		t.Errorf("expected query to be required, got %v", schema.Required)
	}
}

func TestGenerateJSONSchema_Primitives(t *testing.T) {
	tests := []struct {
		name string
		gen  func() (*Schema, error)
		want string
	}{
		{"string", GenerateJSONSchema[string], "string"},
		{"float", GenerateJSONSchema[float64], "number"},
		{"bool", GenerateJSONSchema[bool], "boolean"},
		{"uint", GenerateJSONSchema[uint16], "integer"},
		{"map", GenerateJSONSchema[map[string]int], "object"},
		{"pointer", GenerateJSONSchema[*int], "integer"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			schema, err := tt.gen()
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if schema.Type != tt.want {
				t.Errorf("expected %q, got %q", tt.want, schema.Type)
			}
		})
	}
}

type treeNode struct {
	Label    string      `json:"label"`
	Children []*treeNode `json:"children,omitempty"`
}

func TestGenerateJSONSchema_Recursive(t *testing.T) {
	schema, err := GenerateJSONSchema[treeNode]()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := schema.Defs["treenode"]; !ok {
		t.Fatalf("expected treenode definition, got %v", schema.Defs)
	}
	if ref := schema.Properties["children"].Items.Ref; ref != "#/$defs/treenode" {
		t.Errorf("expected recursive reference, got %q", ref)
	}
	if !strings.Contains(schema.String(), `"$ref":"#/$defs/treenode"`) {
		t.Errorf("expected $ref in JSON, got %s", schema.String())
	}
}

func TestGenerateJSONSchema_BadEnum(t *testing.T) {
	type input struct {
		Count int `json:"count" jsonschema:"enum=many"`
	}
	if _, err := GenerateJSONSchema[input](); err == nil {
		t.Fatal("expected error for non-integer enum value")
	}
}

func TestSchema_ToMap(t *testing.T) {
	schema, err := GenerateJSONSchema[weatherInput]()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	asMap, err := schema.ToMap()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	properties, ok := asMap["properties"].(map[string]any)
	if !ok || properties["city"] == nil {
		t.Fatalf("expected properties map with city, got %v", asMap)
	}

	var nilSchema *Schema
	if m, err := nilSchema.ToMap(); m != nil || err != nil {
		t.Errorf("expected nil map for nil schema, got %v, %v", m, err)
	}
}
