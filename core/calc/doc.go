// Package calc implements the calculator: four arithmetic operations and
// three trigonometric functions over float64 operands.
//
// Every operation is a pure function. Results follow IEEE 754 binary64
// semantics, so division by zero yields ±Inf (or NaN for 0/0) instead of an
// error, and NaN or infinite operands propagate silently. The functions are
// exported both as package-level functions and as methods on the stateless
// [Calculator] value type; both forms are safe for concurrent use.
//
// Callers that dispatch by name use [ParseOp] and [Apply]. Callers that want
// non-finite results reported as errors opt in with [CheckFinite].
package calc
