package tool

import (
	"context"
	"errors"
	"io"
	"strings"
	"sync"
	"testing"

	"github.com/leofalp/calclogic/core/cost"
	"github.com/leofalp/calclogic/providers/observability"
	"github.com/leofalp/calclogic/providers/observability/slogobs"
)

// recordingSpan captures what a tool reports on its span.
type recordingSpan struct {
	mu     sync.Mutex
	events []string
	attrs  map[string]any
	errs   []error
}

func newRecordingSpan() *recordingSpan {
	return &recordingSpan{attrs: make(map[string]any)}
}

func (s *recordingSpan) End() {}

func (s *recordingSpan) SetStatus(observability.StatusCode, string) {}

func (s *recordingSpan) SetAttributes(attrs ...observability.Attribute) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, attr := range attrs {
		s.attrs[attr.Key] = attr.Value
	}
}

func (s *recordingSpan) RecordError(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.errs = append(s.errs, err)
}

func (s *recordingSpan) AddEvent(name string, attrs ...observability.Attribute) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, name)
}

type squareInput struct {
	Value float64 `json:"value" jsonschema:"description=Number to square,required"`
}

type squareOutput struct {
	Result float64 `json:"result"`
}

func square(_ context.Context, in squareInput) (squareOutput, error) {
	return squareOutput{Result: in.Value * in.Value}, nil
}

func failing(context.Context, squareInput) (squareOutput, error) {
	return squareOutput{}, errors.New("handler failed")
}

func TestNewTool_Info(t *testing.T) {
	sq := NewTool("square", square, WithDescription("Squares a number."))

	info := sq.ToolInfo()
	if info.Name != "square" {
		t.Errorf("Name = %q, want square", info.Name)
	}
	if info.Description != "Squares a number." {
		t.Errorf("Description = %q", info.Description)
	}
	if info.Parameters == nil || info.Parameters.Type != "object" {
		t.Fatalf("Parameters = %v, want an object schema", info.Parameters)
	}
	if info.Parameters.Properties["value"] == nil {
		t.Error("Parameters has no value property")
	}
	if len(info.Parameters.Required) != 1 || info.Parameters.Required[0] != "value" {
		t.Errorf("Required = %v, want [value]", info.Parameters.Required)
	}
	if info.Output == nil || info.Output.Properties["result"] == nil {
		t.Errorf("Output = %v, want a result property", info.Output)
	}
	if info.Metrics != nil || sq.GetMetrics() != nil {
		t.Errorf("Metrics = %v, want nil", info.Metrics)
	}
}

func TestNewTool_WithMetrics(t *testing.T) {
	metrics := cost.ToolMetrics{Amount: 0.001, Currency: "USD", Accuracy: 0.9}
	sq := NewTool("square", square, WithMetrics(metrics))

	got := sq.GetMetrics()
	if got == nil || *got != metrics {
		t.Fatalf("GetMetrics() = %v, want %v", got, metrics)
	}
	if sq.ToolInfo().Metrics != got {
		t.Error("ToolInfo().Metrics should share the tool's metrics")
	}
}

func TestNewTool_PanicsOnBadSchemaTag(t *testing.T) {
	type badInput struct {
		N int `json:"n" jsonschema:"enum=one"`
	}
	handler := func(context.Context, badInput) (squareOutput, error) { return squareOutput{}, nil }

	defer func() {
		if recover() == nil {
			t.Error("NewTool() did not panic on an invalid enum tag")
		}
	}()
	NewTool("bad", handler)
}

func TestCall(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr string
	}{
		{
			name:  "valid json",
			input: `{"value": 3}`,
			want:  `{"result":9}`,
		},
		{
			name:  "loose json is repaired",
			input: `{value: 4,}`,
			want:  `{"result":16}`,
		},
		{
			name:    "decode error",
			input:   `{"value": "three"}`,
			wantErr: "tool square: decode input",
		},
	}

	sq := NewTool("square", square)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := sq.Call(context.Background(), tt.input)
			if tt.wantErr != "" {
				if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
					t.Errorf("Call() error = %v, want it to contain %q", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Call() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("Call() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestCall_HandlerErrorIsWrapped(t *testing.T) {
	_, err := NewTool("failing", failing).Call(context.Background(), `{"value": 1}`)
	if err == nil || err.Error() != "tool failing: handler failed" {
		t.Errorf("Call() error = %v, want %q", err, "tool failing: handler failed")
	}
}

func TestCall_ReportsToSpan(t *testing.T) {
	span := newRecordingSpan()
	ctx := observability.ContextWithSpan(context.Background(), span)
	sq := NewTool("square", square, WithMetrics(cost.ToolMetrics{Currency: "USD", Accuracy: 1}))

	if _, err := sq.Call(ctx, `{"value": 2}`); err != nil {
		t.Fatalf("Call() error = %v", err)
	}

	assertEvents(t, span.events)
	if got := span.attrs[observability.AttrToolOutput]; got != `{"result":4}` {
		t.Errorf("%s = %v", observability.AttrToolOutput, got)
	}
	if _, ok := span.attrs[observability.AttrToolDuration]; !ok {
		t.Errorf("missing %s", observability.AttrToolDuration)
	}
	if got := span.attrs[observability.AttrToolCostCurrency]; got != "USD" {
		t.Errorf("%s = %v, want USD", observability.AttrToolCostCurrency, got)
	}
	if got := span.attrs[observability.AttrToolAccuracy]; got != 1.0 {
		t.Errorf("%s = %v, want 1", observability.AttrToolAccuracy, got)
	}
	if len(span.errs) != 0 {
		t.Errorf("unexpected recorded errors %v", span.errs)
	}
}

func TestCall_ReportsErrorToSpan(t *testing.T) {
	span := newRecordingSpan()
	ctx := observability.ContextWithSpan(context.Background(), span)

	_, err := NewTool("failing", failing).Call(ctx, `{"value": 1}`)
	if err == nil {
		t.Fatal("Call() succeeded, want error")
	}

	if len(span.errs) != 1 {
		t.Fatalf("recorded %d errors, want 1", len(span.errs))
	}
	if got := span.attrs[observability.AttrToolError]; got != err.Error() {
		t.Errorf("%s = %v, want %q", observability.AttrToolError, got, err)
	}
	assertEvents(t, span.events)
}

func TestCall_UpdatesObserverMetrics(t *testing.T) {
	observer := slogobs.New(slogobs.WithOutput(io.Discard))
	ctx := observability.ContextWithObserver(context.Background(), observer)

	sq := NewTool("square", square)
	for i := 0; i < 3; i++ {
		if _, err := sq.Call(ctx, `{"value": 1}`); err != nil {
			t.Fatalf("Call() error = %v", err)
		}
	}
	if _, err := NewTool("failing", failing).Call(ctx, `{"value": 1}`); err == nil {
		t.Fatal("Call() succeeded, want error")
	}

	if got := observer.CounterValue(observability.MetricToolCalls); got != 4 {
		t.Errorf("%s = %d, want 4", observability.MetricToolCalls, got)
	}
	if got := observer.CounterValue(observability.MetricToolErrors); got != 1 {
		t.Errorf("%s = %d, want 1", observability.MetricToolErrors, got)
	}
}

func TestCall_TruncatesLongInputOnSpan(t *testing.T) {
	var captured string
	span := &inputCapturingSpan{recordingSpan: newRecordingSpan(), input: &captured}
	ctx := observability.ContextWithSpan(context.Background(), span)

	long := `{"value": 1, "pad": "` + strings.Repeat("x", 2*observability.DefaultMaxStringLength) + `"}`
	if _, err := NewTool("square", square).Call(ctx, long); err != nil {
		t.Fatalf("Call() error = %v", err)
	}

	if len(captured) >= len(long) {
		t.Errorf("span input has %d chars, want fewer than %d", len(captured), len(long))
	}
}

func assertEvents(t *testing.T, events []string) {
	t.Helper()
	if len(events) != 2 || events[0] != observability.EventToolExecutionStart || events[1] != observability.EventToolExecutionEnd {
		t.Errorf("events = %v, want start and end", events)
	}
}

type inputCapturingSpan struct {
	*recordingSpan
	input *string
}

func (s *inputCapturingSpan) AddEvent(name string, attrs ...observability.Attribute) {
	for _, attr := range attrs {
		if attr.Key == observability.AttrToolInput {
			*s.input = attr.Value.(string)
		}
	}
	s.recordingSpan.AddEvent(name, attrs...)
}
