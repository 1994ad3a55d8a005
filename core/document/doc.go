// Package document holds the retrievable unit of content and its embedded
// variant, together with the polymorphic serialization that rebuilds the
// concrete type from a generic mapping.
//
// Every [Serializable] flattens to a map with "id", "content", "metadata" and a
// "type" discriminant. [FromMap] dispatches on that discriminant through
// [DefaultRegistry]; an [EmbeddedDocument] additionally carries an
// "embedding" mapping rebuilt through the vector registry.
//
//	doc := document.New("hello", map[string]any{"lang": "en"})
//	embedded, _ := document.NewEmbedded(*doc, vector.NewDense(0.1, 0.2))
//	data, _ := document.Marshal(embedded)
//	restored, _ := document.Unmarshal(data) // *document.EmbeddedDocument
package document
