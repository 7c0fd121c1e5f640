package calculator

import (
	"context"
	"fmt"

	"github.com/leofalp/calclogic/core/calc"
	"github.com/leofalp/calclogic/core/cost"
	"github.com/leofalp/calclogic/providers/observability"
	"github.com/leofalp/calclogic/providers/tool"
)

const (
	// CalculatorToolName is the name NewCalculatorTool registers.
	CalculatorToolName = "Calculator"
	// TrigonometryToolName is the name NewTrigonometryTool registers.
	TrigonometryToolName = "Trigonometry"
)

// localMetrics describes in-process evaluation: free and exact.
var localMetrics = cost.ToolMetrics{
	Amount:                  0,
	Currency:                "USD",
	CostDescription:         "local computation",
	Accuracy:                1.0,
	AverageDurationInMillis: 2,
}

// Option configures the calculator tools.
type Option func(*evaluator)

// WithStrict makes the tools fail with a *calc.DomainError instead of
// returning NaN or ±Inf.
func WithStrict() Option {
	return func(e *evaluator) {
		e.strict = true
	}
}

type evaluator struct {
	strict bool
}

func newEvaluator(opts ...Option) *evaluator {
	e := &evaluator{}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Input holds the two operands and the operation applied by [Calc]. The
// operands are pointers so that a missing one is reported rather than read
// as 0; build them with [NumberOf].
type Input struct {
	A  *Number `json:"A"  jsonschema:"description=First operand,required"`
	B  *Number `json:"B"  jsonschema:"description=Second operand,required"`
	Op string  `json:"Op" jsonschema:"description=Operation type,enum=add,enum=plus,enum=+,enum=subtract,enum=sub,enum=minus,enum=-,enum=multiply,enum=mul,enum=times,enum=*,enum=divide,enum=div,enum=/,required"`
}

// TrigInput holds the angle in radians and the function applied by [Trig].
type TrigInput struct {
	X  *Number `json:"X"  jsonschema:"description=Angle in radians,required"`
	Fn string  `json:"Fn" jsonschema:"description=Trigonometric function,enum=sin,enum=sine,enum=cos,enum=cosine,enum=tan,enum=tangent,required"`
}

// Output carries the result. NaN and ±Inf are encoded as strings, see [Number].
type Output struct {
	Result Number `json:"result" jsonschema:"description=The result of the calculation"`
}

// NewCalculatorTool returns the arithmetic tool. Division by zero yields ±Inf
// or NaN unless [WithStrict] is given.
func NewCalculatorTool(opts ...Option) *tool.Tool[Input, Output] {
	e := newEvaluator(opts...)
	return tool.NewTool[Input, Output](
		CalculatorToolName,
		e.calc,
		tool.WithDescription("A simple calculator to perform basic arithmetic operations like addition, subtraction, multiplication, and division."),
		tool.WithMetrics(localMetrics),
	)
}

// NewTrigonometryTool returns the sine, cosine and tangent tool. Angles are in
// radians.
func NewTrigonometryTool(opts ...Option) *tool.Tool[TrigInput, Output] {
	e := newEvaluator(opts...)
	return tool.NewTool[TrigInput, Output](
		TrigonometryToolName,
		e.trig,
		tool.WithDescription("Computes the sine, cosine or tangent of an angle given in radians."),
		tool.WithMetrics(localMetrics),
	)
}

// NewCatalog returns a catalog holding both calculator tools built with opts.
func NewCatalog(opts ...Option) *tool.Catalog {
	return tool.NewCatalog(NewCalculatorTool(opts...), NewTrigonometryTool(opts...))
}

// Calc applies req.Op to req.A and req.B with IEEE 754 semantics. Op accepts
// every binary name understood by calc.ParseOp ("add", "+", "minus",
// "times", "div", ...). Any other value, including a unary function, returns
// an error wrapping calc.ErrUnknownOp; a nil operand returns an error
// wrapping calc.ErrArity.
//
// Example:
//
//	in := calculator.Input{A: calculator.NumberOf(10), B: calculator.NumberOf(4), Op: "div"}
//	out, _ := calculator.Calc(ctx, in)
//	fmt.Println(out.Result) // 2.5
func Calc(ctx context.Context, req Input) (Output, error) {
	return newEvaluator().calc(ctx, req)
}

// Trig applies req.Fn ("sin", "cos" or "tan", or the long names) to req.X.
func Trig(ctx context.Context, req TrigInput) (Output, error) {
	return newEvaluator().trig(ctx, req)
}

func (e *evaluator) calc(ctx context.Context, req Input) (Output, error) {
	switch {
	case req.A == nil:
		return Output{}, errMissingOperand(req.Op, "A")
	case req.B == nil:
		return Output{}, errMissingOperand(req.Op, "B")
	}
	return e.evaluate(ctx, req.Op, 2, req.A.Float64(), req.B.Float64())
}

func (e *evaluator) trig(ctx context.Context, req TrigInput) (Output, error) {
	if req.X == nil {
		return Output{}, errMissingOperand(req.Fn, "X")
	}
	return e.evaluate(ctx, req.Fn, 1, req.X.Float64())
}

func errMissingOperand(op, field string) error {
	return fmt.Errorf("%w: %q is missing operand %s", calc.ErrArity, op, field)
}

func (e *evaluator) evaluate(ctx context.Context, name string, arity int, operands ...float64) (Output, error) {
	op, err := calc.ParseOp(name)
	if err != nil {
		return Output{}, err
	}
	if op.Arity() != arity {
		return Output{}, fmt.Errorf("%w: %q does not take %d operand(s)", calc.ErrUnknownOp, name, arity)
	}

	result, err := calc.Apply(op, operands...)
	if err != nil {
		return Output{}, err
	}

	finiteErr := calc.CheckFinite(op, operands, result)
	observability.RecordEvaluation(ctx, observability.Evaluation{
		Op:       op.String(),
		Operands: operands,
		Result:   result,
		Strict:   e.strict,
	})

	if e.strict && finiteErr != nil {
		return Output{}, finiteErr
	}
	return Output{Result: Number(result)}, nil
}
