package vector

import "slices"

// TypeDense is the serialized type name of Dense vectors.
const TypeDense = "Vector"

// Dense is a plain list of components. It serializes as
// {"type": "Vector", "value": [...]}.
type Dense struct {
	values []float64
}

// NewDense copies values into a new vector.
func NewDense(values ...float64) *Dense {
	return &Dense{values: append([]float64{}, values...)}
}

func (d *Dense) TypeName() string { return TypeDense }

func (d *Dense) Values() []float64 { return append([]float64{}, d.values...) }

func (d *Dense) Dimension() int { return len(d.values) }

func (d *Dense) Equal(other Vector) bool {
	o, ok := other.(*Dense)
	if !ok || o == nil {
		return false
	}
	return slices.Equal(d.values, o.values)
}

func (d *Dense) ToMap() map[string]any {
	return map[string]any{
		"type":  TypeDense,
		"value": d.Values(),
	}
}

// DenseFromMap rebuilds a Dense vector from its mapping.
func DenseFromMap(data map[string]any) (Vector, error) {
	raw, ok := data["value"]
	if !ok {
		return nil, invalid(TypeDense, "missing value")
	}
	values, err := toFloat64s(raw)
	if err != nil {
		return nil, invalid(TypeDense, "value: %v", err)
	}
	return &Dense{values: values}, nil
}
