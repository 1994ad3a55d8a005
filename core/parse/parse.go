package parse

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/kaptinlin/jsonrepair"
)

// ErrEmptyContent is returned when there is nothing to parse.
var ErrEmptyContent = errors.New("empty content")

// ParseStringAs parses content into T.
//
// Strings are returned as-is (after unwrapping a schema envelope), other
// primitive kinds go through strconv, and composite kinds are decoded as JSON
// with a jsonrepair retry.
//
//	type lookup struct {
//	    City string `json:"city"`
//	}
//	args, err := parse.ParseStringAs[lookup](`{city: 'Rome'}`)
func ParseStringAs[T any](content string) (T, error) {
	var result T
	target := reflect.ValueOf(&result).Elem()

	kind := target.Kind()
	if kind == reflect.String {
		if unwrapped, err := unwrapPrimitive(content); err == nil {
			target.SetString(unwrapped)
		} else {
			target.SetString(content)
		}
		return result, nil
	}

	if isPrimitive(kind) {
		trimmed := strings.TrimSpace(content)
		if err := setPrimitive(target, trimmed); err != nil {
			unwrapped, unwrapErr := unwrapPrimitive(trimmed)
			if unwrapErr != nil || setPrimitive(target, unwrapped) != nil {
				return result, err
			}
		}
		return result, nil
	}

	if strings.TrimSpace(content) == "" {
		return result, ErrEmptyContent
	}

	err := json.Unmarshal([]byte(content), &result)
	if err == nil {
		return result, nil
	}

	repaired, repairErr := jsonrepair.JSONRepair(content)
	if repairErr != nil {
		return result, fmt.Errorf("failed to unmarshal content as %T: %w (repair failed: %v)", result, err, repairErr)
	}

	result = *new(T)
	if err = json.Unmarshal([]byte(repaired), &result); err == nil {
		return result, nil
	}

	if unwrapped, unwrapErr := unwrapSchemaValues(repaired); unwrapErr == nil {
		result = *new(T)
		if json.Unmarshal([]byte(unwrapped), &result) == nil {
			return result, nil
		}
	}

	return result, fmt.Errorf("failed to unmarshal repaired JSON as %T: %w (repaired: %s)", result, err, repaired)
}

func isPrimitive(kind reflect.Kind) bool {
	switch kind {
	case reflect.Bool, reflect.Float32, reflect.Float64,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return true
	}
	return false
}

func setPrimitive(target reflect.Value, content string) error {
	switch target.Kind() {
	case reflect.Bool:
		v, err := strconv.ParseBool(content)
		if err != nil {
			return fmt.Errorf("failed to parse content as bool: %w", err)
		}
		target.SetBool(v)
	case reflect.Float32, reflect.Float64:
		v, err := strconv.ParseFloat(content, target.Type().Bits())
		if err != nil {
			return fmt.Errorf("failed to parse content as float: %w", err)
		}
		target.SetFloat(v)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		v, err := strconv.ParseInt(content, 10, target.Type().Bits())
		if err != nil {
			return fmt.Errorf("failed to parse content as int: %w", err)
		}
		target.SetInt(v)
	default:
		v, err := strconv.ParseUint(content, 10, target.Type().Bits())
		if err != nil {
			return fmt.Errorf("failed to parse content as uint: %w", err)
		}
		target.SetUint(v)
	}
	return nil
}

// unwrapPrimitive extracts the value of a {"type": ..., "value": ...} envelope
// as text.
func unwrapPrimitive(content string) (string, error) {
	if !strings.HasPrefix(strings.TrimSpace(content), "{") {
		return "", errors.New("not an object")
	}
	var envelope map[string]any
	if err := json.Unmarshal([]byte(content), &envelope); err != nil {
		return "", err
	}
	value, ok := schemaEnvelopeValue(envelope)
	if !ok {
		return "", errors.New("not a schema-wrapped value")
	}
	if s, isString := value.(string); isString {
		return s, nil
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return "", err
	}
	return string(raw), nil
}

// unwrapSchemaValues rewrites every {"type": ..., "value": X} envelope in the
// document to X, e.g. {"city": {"type": "string", "value": "Rome"}} becomes
// {"city": "Rome"}.
func unwrapSchemaValues(content string) (string, error) {
	var data any
	if err := json.Unmarshal([]byte(content), &data); err != nil {
		return "", err
	}
	raw, err := json.Marshal(unwrap(data))
	if err != nil {
		return "", err
	}
	return string(raw), nil
}

func unwrap(data any) any {
	switch v := data.(type) {
	case map[string]any:
		if value, ok := schemaEnvelopeValue(v); ok {
			return unwrap(value)
		}
		out := make(map[string]any, len(v))
		for key, val := range v {
			out[key] = unwrap(val)
		}
		return out
	case []any:
		out := make([]any, len(v))
		for i, val := range v {
			out[i] = unwrap(val)
		}
		return out
	default:
		return data
	}
}

func schemaEnvelopeValue(m map[string]any) (any, bool) {
	if len(m) != 2 {
		return nil, false
	}
	if _, hasType := m["type"]; !hasType {
		return nil, false
	}
	value, hasValue := m["value"]
	return value, hasValue
}
