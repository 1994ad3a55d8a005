// Package jsonschema derives JSON Schema documents from Go types by reflection.
//
// Tools use it to describe their typed input to providers: [GenerateJSONSchema]
// walks struct fields (honoring json and jsonschema tags), primitives, slices,
// maps and pointers. Self-referencing struct types are emitted once under
// $defs and referenced through $ref.
package jsonschema
