package overview

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leofalp/calclogic/core/cost"
)

func TestOverviewFromContext_CreatesNew(t *testing.T) {
	ctx := context.Background()
	overview := OverviewFromContext(&ctx)

	require.NotNil(t, overview)
	assert.Same(t, overview, FromContext(ctx))
}

func TestOverviewFromContext_ReturnsExisting(t *testing.T) {
	ctx := context.Background()
	first := OverviewFromContext(&ctx)
	second := OverviewFromContext(&ctx)

	assert.Same(t, first, second)
}

func TestOverviewFromContext_WrongType(t *testing.T) {
	ctx := context.WithValue(context.Background(), overviewContextKey, "not-an-overview")
	assert.Nil(t, OverviewFromContext(&ctx))
}

func TestFromContext_Missing(t *testing.T) {
	assert.Nil(t, FromContext(context.Background()))
	assert.Nil(t, FromContext(nil))
}

func TestToContext_NilContext(t *testing.T) {
	overview := New()
	ctx := overview.ToContext(nil)
	assert.Same(t, overview, FromContext(ctx))
}

func TestAddToolCall(t *testing.T) {
	overview := New()
	metrics := &cost.ToolMetrics{Amount: 0.01}

	overview.AddToolCall(ToolCall{Tool: "calculator", Input: `{"A":1}`, Output: `{"result":1}`}, metrics, nil)
	overview.AddToolCall(ToolCall{Tool: "calculator", Input: `{"A":2}`}, metrics, errors.New("boom"))
	overview.AddToolCall(ToolCall{Tool: "trigonometry"}, nil, nil)

	assert.Equal(t, map[string]int{"calculator": 2, "trigonometry": 1}, overview.ToolCallStats)
	assert.Equal(t, 1, overview.Errors())
	assert.InDelta(t, 0.02, overview.TotalCost(), 1e-12)

	history := overview.History()
	require.Len(t, history, 3)
	assert.Equal(t, "boom", history[1].Error)
	assert.Empty(t, history[0].Error)
}

func TestAddToolCall_ZeroValueOverview(t *testing.T) {
	var overview Overview
	overview.AddToolCall(ToolCall{Tool: "calculator"}, nil, errors.New("x"))

	assert.Equal(t, 1, overview.ToolCallStats["calculator"])
	assert.Equal(t, 1, overview.Errors())
}

func TestCostSummary(t *testing.T) {
	overview := New()
	overview.AddToolCall(ToolCall{Tool: "a"}, &cost.ToolMetrics{Amount: 0.5}, nil)
	overview.AddToolCall(ToolCall{Tool: "b"}, &cost.ToolMetrics{Amount: 0.25}, nil)

	summary := overview.CostSummary()
	assert.Equal(t, "USD", summary.Currency)
	assert.Equal(t, 0.75, summary.TotalToolCost)
	assert.Equal(t, map[string]int{"a": 1, "b": 1}, summary.ToolExecutionCount)

	summary.ToolCosts["a"] = 100
	assert.Equal(t, 0.75, overview.TotalCost())
}

func TestExecutionDuration(t *testing.T) {
	overview := New()
	assert.Zero(t, overview.ExecutionDuration())

	overview.StartExecution()
	assert.Zero(t, overview.ExecutionDuration())

	time.Sleep(2 * time.Millisecond)
	overview.EndExecution()
	assert.Positive(t, overview.ExecutionDuration())
	assert.Positive(t, overview.CostSummary().ExecutionDurationSeconds)
}

func TestConcurrentAddToolCall(t *testing.T) {
	overview := New()

	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			overview.AddToolCall(ToolCall{Tool: "calculator"}, nil, nil)
		}()
	}
	wg.Wait()

	assert.Len(t, overview.History(), 100)
	assert.Equal(t, 100, overview.CostSummary().ToolExecutionCount["calculator"])
}
