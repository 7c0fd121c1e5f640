package calc

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Sentinel errors
var (
	// ErrUnknownOp is returned when an operation name cannot be resolved.
	ErrUnknownOp = errors.New("unknown operation")

	// ErrArity is returned when an operation receives the wrong number of operands.
	ErrArity = errors.New("wrong number of operands")

	// ErrDivisionByZero is reported by CheckFinite for a divide whose divisor is ±0.
	ErrDivisionByZero = errors.New("division by zero")

	// ErrNaNOperand is reported by CheckFinite when an operand is already NaN.
	ErrNaNOperand = errors.New("NaN operand")

	// ErrNonFinite is reported by CheckFinite for any other NaN or infinite result.
	ErrNonFinite = errors.New("non-finite result")
)

// DomainError describes an evaluation whose result is not a finite number.
// It is only produced by CheckFinite; plain evaluation never fails.
type DomainError struct {
	Op       Op
	Operands []float64
	Result   float64
	Err      error
}

// Error implements the error interface.
func (e *DomainError) Error() string {
	operands := make([]string, len(e.Operands))
	for i, v := range e.Operands {
		operands[i] = strconv.FormatFloat(v, 'g', -1, 64)
	}
	return fmt.Sprintf("%s(%s) = %s: %v", e.Op, strings.Join(operands, ", "),
		strconv.FormatFloat(e.Result, 'g', -1, 64), e.Err)
}

// Unwrap returns the sentinel describing the failure.
func (e *DomainError) Unwrap() error {
	return e.Err
}

// CheckFinite returns nil when result is finite. Otherwise it returns a
// *DomainError classifying the cause: a NaN operand takes precedence, then a
// zero divisor, and everything else is ErrNonFinite.
func CheckFinite(op Op, operands []float64, result float64) error {
	if !math.IsNaN(result) && !math.IsInf(result, 0) {
		return nil
	}

	cause := ErrNonFinite
	switch {
	case hasNaN(operands):
		cause = ErrNaNOperand
	case op == OpDivide && len(operands) == 2 && operands[1] == 0:
		cause = ErrDivisionByZero
	}

	return &DomainError{
		Op:       op,
		Operands: append([]float64(nil), operands...),
		Result:   result,
		Err:      cause,
	}
}

func hasNaN(values []float64) bool {
	for _, v := range values {
		if math.IsNaN(v) {
			return true
		}
	}
	return false
}
