package calc

import (
	"fmt"
	"sort"
	"strings"
)

// Op identifies one of the calculator operations.
type Op string

const (
	OpAdd      Op = "add"
	OpSubtract Op = "subtract"
	OpMultiply Op = "multiply"
	OpDivide   Op = "divide"
	OpSine     Op = "sine"
	OpCosine   Op = "cosine"
	OpTangent  Op = "tangent"
)

// String returns the canonical name of the operation.
func (o Op) String() string {
	return string(o)
}

// Arity returns the number of operands the operation takes, or 0 if the
// operation is unknown.
func (o Op) Arity() int {
	switch o {
	case OpAdd, OpSubtract, OpMultiply, OpDivide:
		return 2
	case OpSine, OpCosine, OpTangent:
		return 1
	default:
		return 0
	}
}

// Ops returns every supported operation in declaration order.
func Ops() []Op {
	return []Op{OpAdd, OpSubtract, OpMultiply, OpDivide, OpSine, OpCosine, OpTangent}
}

// aliases maps every accepted spelling to its canonical operation.
var aliases = map[string]Op{
	"add": OpAdd, "+": OpAdd, "plus": OpAdd,
	"subtract": OpSubtract, "sub": OpSubtract, "-": OpSubtract, "minus": OpSubtract,
	"multiply": OpMultiply, "mul": OpMultiply, "*": OpMultiply, "times": OpMultiply,
	"divide": OpDivide, "div": OpDivide, "/": OpDivide,
	"sine": OpSine, "sin": OpSine,
	"cosine": OpCosine, "cos": OpCosine,
	"tangent": OpTangent, "tan": OpTangent,
}

// Aliases returns every spelling accepted by [ParseOp], sorted.
func Aliases() []string {
	names := make([]string, 0, len(aliases))
	for name := range aliases {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ParseOp resolves an operation name or alias ("add", "+", "sin", ...) to its
// Op. Matching ignores case and surrounding whitespace.
func ParseOp(name string) (Op, error) {
	op, ok := aliases[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownOp, name)
	}
	return op, nil
}

// Apply evaluates op over the given operands. The operand count must match
// op.Arity(). IEEE 754 special values are returned as results, never as
// errors; use [CheckFinite] to reject them.
func Apply(op Op, operands ...float64) (float64, error) {
	arity := op.Arity()
	if arity == 0 {
		return 0, fmt.Errorf("%w: %q", ErrUnknownOp, string(op))
	}
	if len(operands) != arity {
		return 0, fmt.Errorf("%w: %s takes %d operand(s), got %d", ErrArity, op, arity, len(operands))
	}

	switch op {
	case OpAdd:
		return Add(operands[0], operands[1]), nil
	case OpSubtract:
		return Subtract(operands[0], operands[1]), nil
	case OpMultiply:
		return Multiply(operands[0], operands[1]), nil
	case OpDivide:
		return Divide(operands[0], operands[1]), nil
	case OpSine:
		return Sine(operands[0]), nil
	case OpCosine:
		return Cosine(operands[0]), nil
	default:
		return Tangent(operands[0]), nil
	}
}
