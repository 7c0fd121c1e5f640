package observability

// Attribute keys, span names, event names and metric names shared by every
// component so that logs and metrics line up across providers.

// --- Tool Execution Attributes ---

const (
	// AttrToolName is the name of the tool being executed
	AttrToolName = "tool.name"

	// AttrToolInput is the raw tool input, truncated
	AttrToolInput = "tool.input"

	// AttrToolOutput is the serialized tool output
	AttrToolOutput = "tool.output"

	// AttrToolDuration is the execution duration
	AttrToolDuration = "tool.duration"

	// AttrToolError is the error message if tool execution failed
	AttrToolError = "tool.error"

	// AttrToolCostAmount is the configured cost of one call
	AttrToolCostAmount = "tool.cost.amount"

	// AttrToolCostCurrency is the currency of AttrToolCostAmount
	AttrToolCostCurrency = "tool.cost.currency"

	// AttrToolAccuracy is the configured accuracy score
	AttrToolAccuracy = "tool.metrics.accuracy"
)

// --- Calculator Attributes ---

const (
	// AttrCalcOp is the canonical operation name (e.g. "divide")
	AttrCalcOp = "calc.op"

	// AttrCalcOperands is the number of operands
	AttrCalcOperands = "calc.operands"

	// AttrCalcValues lists the operand values
	AttrCalcValues = "calc.values"

	// AttrCalcResult is the numeric result
	AttrCalcResult = "calc.result"

	// AttrCalcFinite is false when the result is NaN or ±Inf
	AttrCalcFinite = "calc.finite"

	// AttrCalcStrict indicates strict (finite-only) evaluation
	AttrCalcStrict = "calc.strict"
)

// --- General Attributes ---

const (
	// AttrError is the error message
	AttrError = "error"

	// AttrSpanID identifies a span in log output
	AttrSpanID = "span.id"

	// AttrDuration is the operation duration
	AttrDuration = "duration"

	// AttrStatus is the operation status
	AttrStatus = "status"

	// AttrStatusDescription is the status description
	AttrStatusDescription = "status_description"
)

// --- Span Names ---

const (
	// SpanToolExecution is the span name for tool executions
	SpanToolExecution = "tool.execution"

	// SpanCalcSession groups several calculations issued by one caller
	SpanCalcSession = "calc.session"
)

// --- Event Names ---

const (
	// EventToolExecutionStart marks the start of tool execution
	EventToolExecutionStart = "tool.execution.start"

	// EventToolExecutionEnd marks the end of tool execution
	EventToolExecutionEnd = "tool.execution.end"

	// EventCalcEvaluated marks a completed calculator evaluation
	EventCalcEvaluated = "calc.evaluated"
)

// --- Metric Names ---

const (
	// MetricToolCalls counts tool invocations
	MetricToolCalls = "calclogic.tool.calls"

	// MetricToolErrors counts failed tool invocations
	MetricToolErrors = "calclogic.tool.errors"

	// MetricToolDuration is the histogram of tool durations in milliseconds
	MetricToolDuration = "calclogic.tool.duration_ms"

	// MetricCalcNonFinite counts evaluations that produced NaN or ±Inf
	MetricCalcNonFinite = "calclogic.calc.non_finite"
)
