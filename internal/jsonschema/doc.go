// Package jsonschema derives JSON Schema descriptions of Go types by
// reflection. Tools use it to advertise their input and output shapes.
//
// The main entry point is [GenerateJSONSchema]. Self-referencing struct types
// are cut off with a bare object schema at the point of recursion.
package jsonschema
