package calc

import "math"

// Calculator is a stateless evaluator. The zero value is ready to use and may
// be copied or shared freely.
type Calculator struct{}

// Add returns a + b.
func (Calculator) Add(a, b float64) float64 { return Add(a, b) }

// Subtract returns a - b.
func (Calculator) Subtract(a, b float64) float64 { return Subtract(a, b) }

// Multiply returns a * b.
func (Calculator) Multiply(a, b float64) float64 { return Multiply(a, b) }

// Divide returns a / b. See [Divide].
func (Calculator) Divide(a, b float64) float64 { return Divide(a, b) }

// Sine returns the sine of x radians.
func (Calculator) Sine(x float64) float64 { return Sine(x) }

// Cosine returns the cosine of x radians.
func (Calculator) Cosine(x float64) float64 { return Cosine(x) }

// Tangent returns the tangent of x radians.
func (Calculator) Tangent(x float64) float64 { return Tangent(x) }

// Add returns a + b.
func Add(a, b float64) float64 {
	return a + b
}

// Subtract returns a - b.
func Subtract(a, b float64) float64 {
	return a - b
}

// Multiply returns a * b.
func Multiply(a, b float64) float64 {
	return a * b
}

// Divide returns a / b with no guard on the divisor: a non-zero dividend over
// ±0 yields ±Inf and 0/0 yields NaN.
//
// Example:
//
//	calc.Divide(9, 3) // 3
//	calc.Divide(1, 0) // +Inf
func Divide(a, b float64) float64 {
	return a / b
}

// Sine returns sin(x) for x in radians.
func Sine(x float64) float64 {
	return math.Sin(x)
}

// Cosine returns cos(x) for x in radians.
func Cosine(x float64) float64 {
	return math.Cos(x)
}

// Tangent returns tan(x) for x in radians. Close to π/2 + kπ the result grows
// very large in magnitude; it is never reported as an error.
func Tangent(x float64) float64 {
	return math.Tan(x)
}
