// Package calculator exposes the calclogic operations as tools.
//
// [NewCalculatorTool] handles add, sub, mul and div over two operands;
// [NewTrigonometryTool] handles sin, cos and tan of an angle in radians.
// Results follow IEEE 754, so dividing by zero returns ±Inf or NaN, which
// [Number] encodes as the JSON strings "+Inf", "-Inf" and "NaN". Build the
// tools with [WithStrict] to get a *calc.DomainError instead.
//
// [Calc] and [Trig] are the underlying functions for direct use, and
// [NewCatalog] returns a catalog preloaded with both tools.
package calculator
