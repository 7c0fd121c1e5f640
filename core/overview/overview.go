package overview

import (
	"context"
	"maps"
	"sync"
	"time"

	"github.com/leofalp/calclogic/core/cost"
)

type contextKey string

const overviewContextKey contextKey = "overview"

// ToolCall is one entry of the call history.
type ToolCall struct {
	Tool     string        `json:"tool"`
	Input    string        `json:"input"`
	Output   string        `json:"output,omitempty"`
	Error    string        `json:"error,omitempty"`
	Duration time.Duration `json:"duration"`
}

// Overview aggregates the tool calls made during one session: per-tool
// counts, errors and costs plus the ordered call history. It is safe for
// concurrent use; read it through its methods while calls are in flight.
type Overview struct {
	mu sync.Mutex

	ToolCallStats  map[string]int     `json:"tool_calls,omitempty"`
	ToolErrorStats map[string]int     `json:"tool_errors,omitempty"`
	ToolCosts      map[string]float64 `json:"tool_costs,omitempty"`
	Calls          []ToolCall         `json:"calls,omitempty"`

	ExecutionStartTime time.Time `json:"execution_start_time,omitempty"`
	ExecutionEndTime   time.Time `json:"execution_end_time,omitempty"`
}

// New returns an empty Overview.
func New() *Overview {
	return &Overview{
		ToolCallStats:  make(map[string]int),
		ToolErrorStats: make(map[string]int),
		ToolCosts:      make(map[string]float64),
	}
}

// OverviewFromContext retrieves the Overview from ctx, creating one if none
// is stored. The context pointer is updated in place when a new Overview is
// created so callers see the enriched context.
func OverviewFromContext(ctx *context.Context) *Overview {
	if *ctx == nil {
		*ctx = context.Background()
	}
	if existing := FromContext(*ctx); existing != nil {
		return existing
	}
	if (*ctx).Value(overviewContextKey) != nil {
		return nil
	}
	overview := New()
	*ctx = overview.ToContext(*ctx)
	return overview
}

// FromContext returns the Overview stored in ctx, or nil.
func FromContext(ctx context.Context) *Overview {
	if ctx == nil {
		return nil
	}
	overview, _ := ctx.Value(overviewContextKey).(*Overview)
	return overview
}

// ToContext stores the Overview in ctx.
func (overview *Overview) ToContext(ctx context.Context) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, overviewContextKey, overview)
}

// AddToolCall records one completed call. metrics may be nil; err is nil on
// success.
func (overview *Overview) AddToolCall(call ToolCall, metrics *cost.ToolMetrics, err error) {
	overview.mu.Lock()
	defer overview.mu.Unlock()

	if overview.ToolCallStats == nil {
		overview.ToolCallStats = make(map[string]int)
	}
	if overview.ToolErrorStats == nil {
		overview.ToolErrorStats = make(map[string]int)
	}
	if overview.ToolCosts == nil {
		overview.ToolCosts = make(map[string]float64)
	}

	overview.ToolCallStats[call.Tool]++
	if err != nil {
		overview.ToolErrorStats[call.Tool]++
		call.Error = err.Error()
	}
	if metrics != nil {
		overview.ToolCosts[call.Tool] += metrics.Amount
	}
	overview.Calls = append(overview.Calls, call)
}

// History returns a copy of the call history.
func (overview *Overview) History() []ToolCall {
	overview.mu.Lock()
	defer overview.mu.Unlock()
	return append([]ToolCall(nil), overview.Calls...)
}

// Errors returns the total number of failed calls.
func (overview *Overview) Errors() int {
	overview.mu.Lock()
	defer overview.mu.Unlock()

	total := 0
	for _, n := range overview.ToolErrorStats {
		total += n
	}
	return total
}

// StartExecution marks the start of the session.
func (overview *Overview) StartExecution() {
	overview.mu.Lock()
	defer overview.mu.Unlock()
	overview.ExecutionStartTime = time.Now()
}

// EndExecution marks the end of the session.
func (overview *Overview) EndExecution() {
	overview.mu.Lock()
	defer overview.mu.Unlock()
	overview.ExecutionEndTime = time.Now()
}

// ExecutionDuration returns the session duration, or 0 if the session has
// not both started and ended.
func (overview *Overview) ExecutionDuration() time.Duration {
	overview.mu.Lock()
	defer overview.mu.Unlock()
	return overview.executionDuration()
}

func (overview *Overview) executionDuration() time.Duration {
	if overview.ExecutionStartTime.IsZero() || overview.ExecutionEndTime.IsZero() {
		return 0
	}
	return overview.ExecutionEndTime.Sub(overview.ExecutionStartTime)
}

// TotalCost returns the accumulated cost of all tool calls.
func (overview *Overview) TotalCost() float64 {
	return overview.CostSummary().TotalToolCost
}

// CostSummary returns a breakdown of the tool costs.
func (overview *Overview) CostSummary() cost.CostSummary {
	overview.mu.Lock()
	defer overview.mu.Unlock()

	summary := cost.CostSummary{
		ToolCosts:          maps.Clone(overview.ToolCosts),
		ToolExecutionCount: maps.Clone(overview.ToolCallStats),
		Currency:           "USD",
	}
	if summary.ToolCosts == nil {
		summary.ToolCosts = make(map[string]float64)
	}
	if summary.ToolExecutionCount == nil {
		summary.ToolExecutionCount = make(map[string]int)
	}
	for _, c := range summary.ToolCosts {
		summary.TotalToolCost += c
	}
	if d := overview.executionDuration(); d > 0 {
		summary.ExecutionDurationSeconds = d.Seconds()
	}
	return summary
}
