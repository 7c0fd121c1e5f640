// Package tool turns typed Go functions into tools that can be called with
// JSON input.
//
// [NewTool] binds a name and a handler and derives JSON schemas for the
// handler's input and output types; [WithDescription] and [WithMetrics]
// add metadata. [Tool.Call] accepts loosely formed JSON (see core/parse),
// runs the handler and reports to the span and observer found in the
// context.
//
// [Catalog] is a thread-safe, case-insensitive registry of tools.
package tool
