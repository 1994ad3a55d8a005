// Package vector defines the embedding vectors attached to documents and the
// registry used to rebuild them from their serialized form.
//
// Every vector serializes to a mapping whose "type" names its kind; [Dense]
// registers as "Vector" and [Sparse] as "SparseVector". [FromMap] looks the
// type up in [DefaultRegistry] and hands the mapping to that kind's factory.
// Numbers may arrive as float64, integers or json.Number.
package vector
