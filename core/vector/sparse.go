package vector

import "slices"

// TypeSparse is the serialized type name of Sparse vectors.
const TypeSparse = "SparseVector"

// Sparse stores only non-zero components. Indices are strictly increasing
// and lie in [0, dimension).
type Sparse struct {
	indices   []int
	values    []float64
	dimension int
}

// NewSparse validates and copies its arguments.
func NewSparse(indices []int, values []float64, dimension int) (*Sparse, error) {
	if len(indices) != len(values) {
		return nil, invalid(TypeSparse, "%d indices for %d values", len(indices), len(values))
	}
	if dimension < 0 {
		return nil, invalid(TypeSparse, "negative dimension %d", dimension)
	}
	for i, index := range indices {
		if index < 0 || index >= dimension {
			return nil, invalid(TypeSparse, "index %d out of range [0, %d)", index, dimension)
		}
		if i > 0 && index <= indices[i-1] {
			return nil, invalid(TypeSparse, "indices must be strictly increasing")
		}
	}
	return &Sparse{
		indices:   append([]int{}, indices...),
		values:    append([]float64{}, values...),
		dimension: dimension,
	}, nil
}

func (s *Sparse) TypeName() string { return TypeSparse }

// Values expands the vector to its dense form.
func (s *Sparse) Values() []float64 {
	dense := make([]float64, s.dimension)
	for i, index := range s.indices {
		dense[index] = s.values[i]
	}
	return dense
}

func (s *Sparse) Dimension() int { return s.dimension }

// Indices returns the positions of the stored values.
func (s *Sparse) Indices() []int { return append([]int{}, s.indices...) }

func (s *Sparse) Equal(other Vector) bool {
	o, ok := other.(*Sparse)
	if !ok || o == nil {
		return false
	}
	return s.dimension == o.dimension && slices.Equal(s.indices, o.indices) && slices.Equal(s.values, o.values)
}

func (s *Sparse) ToMap() map[string]any {
	return map[string]any{
		"type":      TypeSparse,
		"indices":   s.Indices(),
		"values":    append([]float64{}, s.values...),
		"dimension": s.dimension,
	}
}

// SparseFromMap rebuilds a Sparse vector from its mapping.
func SparseFromMap(data map[string]any) (Vector, error) {
	for _, field := range []string{"indices", "values", "dimension"} {
		if _, ok := data[field]; !ok {
			return nil, invalid(TypeSparse, "missing %s", field)
		}
	}

	indices, err := toInts(data["indices"])
	if err != nil {
		return nil, invalid(TypeSparse, "indices: %v", err)
	}
	values, err := toFloat64s(data["values"])
	if err != nil {
		return nil, invalid(TypeSparse, "values: %v", err)
	}
	dimension, err := toInt(data["dimension"])
	if err != nil {
		return nil, invalid(TypeSparse, "dimension: %v", err)
	}
	return NewSparse(indices, values, dimension)
}
