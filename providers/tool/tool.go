package tool

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/leofalp/calclogic/core/cost"
	"github.com/leofalp/calclogic/core/parse"
	"github.com/leofalp/calclogic/internal/jsonschema"
	"github.com/leofalp/calclogic/internal/utils"
	"github.com/leofalp/calclogic/providers/observability"
)

// Tool is a typed, callable function with a name, a description and JSON
// schemas derived from its input (I) and output (O) types.
// Use [NewTool] to construct one; [GenericTool] erases the type parameters.
type Tool[I, O any] struct {
	Name        string
	Description string
	Parameters  *jsonschema.Schema
	Output      *jsonschema.Schema
	Function    func(ctx context.Context, input I) (O, error)
	// Metrics contains optional cost and performance metrics for this tool.
	Metrics *cost.ToolMetrics
}

// Info describes a tool to a caller that selects tools by schema.
type Info struct {
	Name        string             `json:"name"`
	Description string             `json:"description,omitempty"`
	Parameters  *jsonschema.Schema `json:"parameters,omitempty"`
	Output      *jsonschema.Schema `json:"output,omitempty"`
	Metrics     *cost.ToolMetrics  `json:"metrics,omitempty"`
}

// GenericTool is the type-erased view of a [Tool].
type GenericTool interface {
	// ToolInfo returns the name, description and schemas of the tool.
	ToolInfo() Info

	// Call decodes inputJSON, runs the tool and returns its JSON-encoded output.
	Call(ctx context.Context, inputJSON string) (string, error)

	// GetMetrics returns the configured metrics, or nil.
	GetMetrics() *cost.ToolMetrics
}

// Option configures a tool created by [NewTool].
type Option func(*toolOptions)

type toolOptions struct {
	description string
	metrics     *cost.ToolMetrics
}

// WithDescription sets a human-readable description for the tool.
func WithDescription(description string) Option {
	return func(o *toolOptions) {
		o.description = description
	}
}

// WithMetrics sets the cost and performance metrics of the tool.
func WithMetrics(toolMetrics cost.ToolMetrics) Option {
	return func(o *toolOptions) {
		o.metrics = &toolMetrics
	}
}

// NewTool constructs a [Tool] from a name and a handler. Schemas for I and O
// are derived by reflection; NewTool panics if either type carries a
// malformed jsonschema tag, since that is a programming error.
//
// Example:
//
//	sq := tool.NewTool("square", squareFunc,
//	    tool.WithDescription("Squares a number."),
//	)
func NewTool[I, O any](name string, function func(ctx context.Context, input I) (O, error), options ...Option) *Tool[I, O] {
	opts := &toolOptions{}
	for _, option := range options {
		option(opts)
	}

	return &Tool[I, O]{
		Name:        name,
		Description: opts.description,
		Parameters:  mustSchema[I](name, "input"),
		Output:      mustSchema[O](name, "output"),
		Function:    function,
		Metrics:     opts.metrics,
	}
}

func mustSchema[T any](toolName, role string) *jsonschema.Schema {
	schema, err := jsonschema.GenerateJSONSchema[T]()
	if err != nil {
		panic(fmt.Sprintf("tool %q: %s schema: %v", toolName, role, err))
	}
	return schema
}

// ToolInfo implements [GenericTool].
func (t *Tool[I, O]) ToolInfo() Info {
	return Info{
		Name:        t.Name,
		Description: t.Description,
		Parameters:  t.Parameters,
		Output:      t.Output,
		Metrics:     t.Metrics,
	}
}

// Call decodes inputJSON into I with [parse.ParseStringAs], runs the handler
// and encodes the result. When ctx carries a span, start and end events plus
// the outcome are recorded on it; when it carries an observer, the call,
// error and duration metrics are updated.
func (t *Tool[I, O]) Call(ctx context.Context, inputJSON string) (string, error) {
	span := observability.SpanFromContext(ctx)
	observer := observability.ObserverFromContext(ctx)

	if span != nil {
		span.AddEvent(observability.EventToolExecutionStart,
			observability.String(observability.AttrToolName, t.Name),
			observability.String(observability.AttrToolInput,
				observability.TruncateString(inputJSON, observability.DefaultMaxStringLength)),
		)
		defer span.AddEvent(observability.EventToolExecutionEnd,
			observability.String(observability.AttrToolName, t.Name))
	}

	timer := utils.NewTimer()
	output, err := t.run(ctx, inputJSON)
	timer.Stop()
	duration := timer.GetDuration()

	if observer != nil {
		nameAttr := observability.String(observability.AttrToolName, t.Name)
		observer.Counter(observability.MetricToolCalls).Add(ctx, 1, nameAttr)
		observer.Histogram(observability.MetricToolDuration).Record(ctx,
			float64(duration.Microseconds())/1000, nameAttr)
		if err != nil {
			observer.Counter(observability.MetricToolErrors).Add(ctx, 1, nameAttr)
		}
	}

	if err != nil {
		if span != nil {
			span.RecordError(err)
			span.SetAttributes(
				observability.String(observability.AttrToolError, err.Error()),
				observability.Duration(observability.AttrToolDuration, duration),
			)
		}
		return "", err
	}

	if span != nil {
		attrs := []observability.Attribute{
			observability.String(observability.AttrToolOutput, output),
			observability.Duration(observability.AttrToolDuration, duration),
		}
		if t.Metrics != nil {
			attrs = append(attrs,
				observability.Float64(observability.AttrToolCostAmount, t.Metrics.Amount),
				observability.String(observability.AttrToolCostCurrency, t.Metrics.Currency),
			)
			if t.Metrics.Accuracy > 0 {
				attrs = append(attrs, observability.Float64(observability.AttrToolAccuracy, t.Metrics.Accuracy))
			}
		}
		span.SetAttributes(attrs...)
	}

	return output, nil
}

func (t *Tool[I, O]) run(ctx context.Context, inputJSON string) (string, error) {
	input, err := parse.ParseStringAs[I](inputJSON)
	if err != nil {
		return "", fmt.Errorf("tool %s: decode input: %w", t.Name, err)
	}

	output, err := t.Function(ctx, input)
	if err != nil {
		return "", fmt.Errorf("tool %s: %w", t.Name, err)
	}

	data, err := json.Marshal(output)
	if err != nil {
		return "", fmt.Errorf("tool %s: encode output: %w", t.Name, err)
	}
	return string(data), nil
}

// GetMetrics implements [GenericTool].
func (t *Tool[I, O]) GetMetrics() *cost.ToolMetrics {
	return t.Metrics
}
