package vector

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
)

var (
	// ErrUnknownType is returned when a mapping names an unregistered type.
	ErrUnknownType = errors.New("unknown vector type")

	// ErrInvalidVector is returned when a mapping cannot be turned into a
	// vector of its declared type.
	ErrInvalidVector = errors.New("invalid vector")
)

// Vector is an embedding value.
type Vector interface {
	// TypeName is the registry key written to the "type" field.
	TypeName() string

	// Values returns the dense components.
	Values() []float64

	Dimension() int

	// Equal reports whether other has the same kind and components.
	Equal(other Vector) bool
}

// Mapper is implemented by vectors that serialize to a mapping.
type Mapper interface {
	ToMap() map[string]any
}

func toFloat64(value any) (float64, error) {
	switch v := value.(type) {
	case float64:
		return v, nil
	case float32:
		return float64(v), nil
	case int:
		return float64(v), nil
	case int64:
		return float64(v), nil
	case json.Number:
		return v.Float64()
	default:
		return 0, fmt.Errorf("expected number, got %T", value)
	}
}

func toInt(value any) (int, error) {
	switch v := value.(type) {
	case int:
		return v, nil
	case int64:
		return int(v), nil
	case json.Number:
		n, err := v.Int64()
		return int(n), err
	default:
		f, err := toFloat64(value)
		if err != nil {
			return 0, err
		}
		if f != math.Trunc(f) {
			return 0, fmt.Errorf("expected integer, got %v", f)
		}
		return int(f), nil
	}
}

func toFloat64s(value any) ([]float64, error) {
	switch v := value.(type) {
	case []float64:
		return append([]float64{}, v...), nil
	case []any:
		out := make([]float64, len(v))
		for i, item := range v {
			f, err := toFloat64(item)
			if err != nil {
				return nil, fmt.Errorf("element %d: %w", i, err)
			}
			out[i] = f
		}
		return out, nil
	default:
		return nil, fmt.Errorf("expected list of numbers, got %T", value)
	}
}

func toInts(value any) ([]int, error) {
	switch v := value.(type) {
	case []int:
		return append([]int{}, v...), nil
	case []any:
		out := make([]int, len(v))
		for i, item := range v {
			n, err := toInt(item)
			if err != nil {
				return nil, fmt.Errorf("element %d: %w", i, err)
			}
			out[i] = n
		}
		return out, nil
	default:
		return nil, fmt.Errorf("expected list of integers, got %T", value)
	}
}

func invalid(typeName string, format string, args ...any) error {
	return fmt.Errorf("%w: %s: %s", ErrInvalidVector, typeName, fmt.Sprintf(format, args...))
}
