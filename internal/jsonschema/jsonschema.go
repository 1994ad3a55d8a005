package jsonschema

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strconv"
	"strings"
)

// Schema is the subset of JSON Schema used to describe tool parameters.
type Schema struct {
	Type                 string             `json:"type,omitempty"`
	Description          string             `json:"description,omitempty"`
	Required             []string           `json:"required,omitempty"`
	Properties           map[string]*Schema `json:"properties,omitempty"`
	Items                *Schema            `json:"items,omitempty"`
	AdditionalProperties any                `json:"additionalProperties,omitempty"`
	Enum                 []any              `json:"enum,omitempty"`
	Ref                  string             `json:"$ref,omitempty"`
	Defs                 map[string]*Schema `json:"$defs,omitempty"`
}

// GenerateJSONSchema builds the schema of T. Struct field tags are validated,
// so a malformed jsonschema enum tag is reported as an error.
func GenerateJSONSchema[T any]() (*Schema, error) {
	gen := &generator{
		visited: make(map[reflect.Type]string),
		defs:    make(map[string]*Schema),
	}

	t := reflect.TypeFor[T]()
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}

	var schema *Schema
	if t.Kind() == reflect.Struct {
		schema = gen.structSchema(t, true)
	} else {
		schema = gen.fieldSchema(t)
	}
	if gen.err != nil {
		return nil, gen.err
	}

	if len(gen.defs) > 0 {
		schema.Defs = gen.defs
	}
	return schema, nil
}

type generator struct {
	visited map[reflect.Type]string
	defs    map[string]*Schema
	err     error
}

func (g *generator) fieldSchema(t reflect.Type) *Schema {
	switch t.Kind() {
	case reflect.String:
		return &Schema{Type: "string"}
	case reflect.Bool:
		return &Schema{Type: "boolean"}
	case reflect.Float32, reflect.Float64:
		return &Schema{Type: "number"}
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return &Schema{Type: "integer"}
	case reflect.Slice, reflect.Array:
		return &Schema{Type: "array", Items: g.fieldSchema(t.Elem())}
	case reflect.Map:
		return &Schema{Type: "object", AdditionalProperties: g.fieldSchema(t.Elem())}
	case reflect.Pointer:
		return g.fieldSchema(t.Elem())
	case reflect.Struct:
		return g.structSchema(t, false)
	default:
		return &Schema{Type: "object"}
	}
}

// structSchema inlines non-recursive structs. Recursive ones are stored in
// defs and, unless they are the root, replaced by a reference.
func (g *generator) structSchema(t reflect.Type, isRoot bool) *Schema {
	if defName, ok := g.visited[t]; ok {
		return &Schema{Ref: "#/$defs/" + defName}
	}

	recursive := refersTo(t, t, make(map[reflect.Type]bool))
	defName := strings.ToLower(t.Name())
	if defName == "" {
		defName = "anonymousStruct"
	}
	if recursive {
		g.visited[t] = defName
	}

	schema := &Schema{Type: "object", Properties: make(map[string]*Schema)}
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if !field.IsExported() {
			continue
		}
		name, omitEmpty, skip := jsonFieldName(field)
		if skip {
			continue
		}

		fieldSchema := g.fieldSchema(field.Type)
		schema.Properties[name] = fieldSchema

		requiredByTag := false
		if fieldSchema.Ref == "" {
			var err error
			requiredByTag, err = applyTag(field, fieldSchema)
			if err != nil && g.err == nil {
				g.err = fmt.Errorf("field %s: %w", name, err)
			}
		}
		if (field.Type.Kind() != reflect.Pointer && !omitEmpty) || requiredByTag {
			schema.Required = append(schema.Required, name)
		}
	}

	if !recursive {
		return schema
	}
	g.defs[defName] = schema
	if isRoot {
		return schema
	}
	return &Schema{Ref: "#/$defs/" + defName}
}

func jsonFieldName(field reflect.StructField) (name string, omitEmpty bool, skip bool) {
	tag := field.Tag.Get("json")
	if tag == "-" {
		return "", false, true
	}
	name, options, _ := strings.Cut(tag, ",")
	if name == "" {
		name = field.Name
	}
	return name, strings.Contains(options, "omitempty"), false
}

// refersTo reports whether target is reachable from the fields of current.
func refersTo(target, current reflect.Type, seen map[reflect.Type]bool) bool {
	if seen[current] || current.Kind() != reflect.Struct {
		return false
	}
	seen[current] = true

	for i := 0; i < current.NumField(); i++ {
		field := current.Field(i)
		if !field.IsExported() {
			continue
		}
		ft := field.Type
		for ft.Kind() == reflect.Pointer || ft.Kind() == reflect.Slice || ft.Kind() == reflect.Array || ft.Kind() == reflect.Map {
			ft = ft.Elem()
		}
		if ft == target || refersTo(target, ft, seen) {
			return true
		}
	}
	return false
}

// applyTag interprets the jsonschema struct tag:
//
//	jsonschema:"description=City name,enum=rome,enum=paris,required"
//
// Enum values are converted to the field's kind.
func applyTag(field reflect.StructField, schema *Schema) (bool, error) {
	tag := field.Tag.Get("jsonschema")
	if tag == "" {
		return false, nil
	}

	required := false
	for _, item := range strings.Split(tag, ",") {
		key, value, hasValue := strings.Cut(item, "=")
		switch {
		case !hasValue && key == "required":
			required = true
		case key == "description":
			schema.Description = value
		case key == "enum":
			enumValue, err := convertEnum(field.Type, value)
			if err != nil {
				return required, err
			}
			schema.Enum = append(schema.Enum, enumValue)
		}
	}
	return required, nil
}

func convertEnum(t reflect.Type, value string) (any, error) {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	switch t.Kind() {
	case reflect.String:
		return value, nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		parsed, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("parse enum value %q as integer: %w", value, err)
		}
		return parsed, nil
	case reflect.Float32, reflect.Float64:
		parsed, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return nil, fmt.Errorf("parse enum value %q as number: %w", value, err)
		}
		return parsed, nil
	case reflect.Bool:
		parsed, err := strconv.ParseBool(value)
		if err != nil {
			return nil, fmt.Errorf("parse enum value %q as boolean: %w", value, err)
		}
		return parsed, nil
	default:
		return nil, fmt.Errorf("enum tag unsupported for field type %v", t)
	}
}

// ToMap returns the schema as a generic JSON object, the shape provider
// payloads embed.
func (s *Schema) ToMap() (map[string]any, error) {
	if s == nil {
		return nil, nil
	}
	raw, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal schema: %w", err)
	}
	var out map[string]any
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("failed to decode schema: %w", err)
	}
	return out, nil
}

// String returns the compact JSON form of the schema.
func (s *Schema) String() string {
	raw, err := json.Marshal(s)
	if err != nil {
		return fmt.Sprintf("error: %v", err)
	}
	return string(raw)
}
