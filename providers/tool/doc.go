// Package tool turns typed Go functions into tools a model can call.
//
// [NewTool] binds a name and description to a function taking a typed input;
// the input's JSON schema is derived by reflection and the model's raw JSON
// arguments are parsed leniently before the function runs. [Catalog] is a
// goroutine-safe, case-insensitive collection of tools that satisfies
// [ai.Toolkit], so it can be passed straight to [ai.WithToolkit].
package tool
