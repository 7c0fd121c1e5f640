package observability

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"time"
)

// Provider bundles tracing, metrics and logging into one injectable
// dependency.
type Provider interface {
	Tracer
	Metrics
	Logger
}

// --- TRACING ---

// Tracer starts spans.
type Tracer interface {
	// StartSpan starts a span named name and returns a context carrying it.
	StartSpan(ctx context.Context, name string, attrs ...Attribute) (context.Context, Span)
}

// Span is a timed unit of work. Calculator sessions use one span for many
// tool calls, so events carry the per-call detail.
type Span interface {
	End()
	SetAttributes(attrs ...Attribute)
	SetStatus(code StatusCode, description string)
	RecordError(err error)
	AddEvent(name string, attrs ...Attribute)
}

// StatusCode is the outcome recorded on a span.
type StatusCode int

const (
	StatusUnset StatusCode = iota
	StatusOK
	StatusError
)

// String returns "unset", "ok" or "error".
func (c StatusCode) String() string {
	switch c {
	case StatusOK:
		return "ok"
	case StatusError:
		return "error"
	default:
		return "unset"
	}
}

// StatusFromError maps the final error of a unit of work to a span status,
// ready to pass to Span.SetStatus.
func StatusFromError(err error) (StatusCode, string) {
	if err == nil {
		return StatusOK, ""
	}
	return StatusError, err.Error()
}

// --- METRICS ---

// Metrics hands out named instruments. Calling Counter or Histogram twice
// with the same name returns the same instrument.
type Metrics interface {
	Counter(name string) Counter
	Histogram(name string) Histogram
}

// Counter is a monotonically increasing metric.
type Counter interface {
	Add(ctx context.Context, value int64, attrs ...Attribute)
}

// Histogram records a distribution of observations.
type Histogram interface {
	Record(ctx context.Context, value float64, attrs ...Attribute)
}

// --- LOGGING ---

// Logger writes structured, levelled log records.
type Logger interface {
	Trace(ctx context.Context, msg string, attrs ...Attribute)
	Debug(ctx context.Context, msg string, attrs ...Attribute)
	Info(ctx context.Context, msg string, attrs ...Attribute)
	Warn(ctx context.Context, msg string, attrs ...Attribute)
	Error(ctx context.Context, msg string, attrs ...Attribute)
}

// --- ATTRIBUTES ---

// Attribute is a key/value pair attached to spans, metrics and log records.
type Attribute struct {
	Key   string
	Value any
}

// String, Int, Bool and Duration build attributes of the matching kind.
func String(key, value string) Attribute { return Attribute{Key: key, Value: value} }

func Int(key string, value int) Attribute { return Attribute{Key: key, Value: value} }

func Bool(key string, value bool) Attribute { return Attribute{Key: key, Value: value} }

func Duration(key string, value time.Duration) Attribute { return Attribute{Key: key, Value: value} }

// Float64 creates a float64 attribute. NaN and ±Inf are kept as-is so that
// sinks can still compare them; use [Float64s] for values headed to JSON.
func Float64(key string, value float64) Attribute {
	return Attribute{Key: key, Value: value}
}

// Float64s creates an attribute holding a copy of values in which NaN and ±Inf
// are replaced by their [FormatFloat] spelling, so the list always encodes.
func Float64s(key string, values []float64) Attribute {
	encoded := make([]any, len(values))
	for i, v := range values {
		if isFinite(v) {
			encoded[i] = v
		} else {
			encoded[i] = FormatFloat(v)
		}
	}
	return Attribute{Key: key, Value: encoded}
}

// Error creates an attribute under AttrError holding the error message, or
// an empty string for a nil error.
func Error(err error) Attribute {
	if err == nil {
		return Attribute{Key: AttrError, Value: ""}
	}
	return Attribute{Key: AttrError, Value: err.Error()}
}

// FormatFloat spells f the way calculator results are written on the wire:
// "+Inf", "-Inf", "NaN", or the shortest decimal form.
func FormatFloat(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// --- CALCULATOR EVALUATIONS ---

// Evaluation describes one completed calculator operation.
type Evaluation struct {
	// Op is the canonical operation name
	Op       string
	Operands []float64
	Result   float64
	// Strict is set when non-finite results are rejected
	Strict bool
}

// Finite reports whether the result is neither NaN nor infinite.
func (e Evaluation) Finite() bool {
	return isFinite(e.Result)
}

// Attributes returns the calc.* attributes describing e.
func (e Evaluation) Attributes() []Attribute {
	return []Attribute{
		String(AttrCalcOp, e.Op),
		Int(AttrCalcOperands, len(e.Operands)),
		Float64s(AttrCalcValues, e.Operands),
		Float64(AttrCalcResult, e.Result),
		Bool(AttrCalcFinite, e.Finite()),
		Bool(AttrCalcStrict, e.Strict),
	}
}

// RecordEvaluation reports e to whatever ctx carries: an EventCalcEvaluated
// event on the span, and a MetricCalcNonFinite increment on the observer when
// the result is NaN or ±Inf. It is a no-op on a bare context.
func RecordEvaluation(ctx context.Context, e Evaluation) {
	if !e.Finite() {
		if observer := ObserverFromContext(ctx); observer != nil {
			observer.Counter(MetricCalcNonFinite).Add(ctx, 1, String(AttrCalcOp, e.Op))
		}
	}
	if span := SpanFromContext(ctx); span != nil {
		span.AddEvent(EventCalcEvaluated, e.Attributes()...)
	}
}

// DefaultMaxStringLength bounds attribute strings built from untrusted input.
const DefaultMaxStringLength = 500

// TruncateString shortens s to maxLen bytes and notes the original length.
// A non-positive maxLen means DefaultMaxStringLength.
func TruncateString(s string, maxLen int) string {
	if maxLen <= 0 {
		maxLen = DefaultMaxStringLength
	}
	if len(s) <= maxLen {
		return s
	}
	return fmt.Sprintf("%s... (truncated, total: %d chars)", s[:maxLen], len(s))
}
