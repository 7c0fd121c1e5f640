package cost

import (
	"fmt"
	"strings"
)

// ToolMetrics annotates a tool with the cost and quality of a single call.
// Tool-calling runtimes surface it so a model can prefer cheaper or more
// accurate tools.
//
// Example usage:
//
//	metrics := cost.ToolMetrics{
//	    Amount:                  0.0,
//	    Currency:                "USD",
//	    CostDescription:         "local computation",
//	    Accuracy:                1.0,
//	    AverageDurationInMillis: 1,
//	}
type ToolMetrics struct {
	// Amount is the cost of one call in Currency
	Amount float64 `json:"amount"`

	// Currency is the ISO currency code, USD when empty
	Currency string `json:"currency,omitempty"`

	// CostDescription explains what the amount covers (e.g. "per call")
	CostDescription string `json:"cost_description,omitempty"`

	// Accuracy is a reliability score between 0.0 and 1.0
	Accuracy float64 `json:"accuracy,omitempty"`

	// AverageDurationInMillis is the typical wall time of one call
	AverageDurationInMillis int64 `json:"average_duration_ms,omitempty"`
}

// String returns the cost followed by any quality metrics, e.g.
// "0.000000 USD (local computation) [Accuracy: 100.0%, Avg: 1ms]".
func (m ToolMetrics) String() string {
	currency := m.Currency
	if currency == "" {
		currency = "USD"
	}

	result := fmt.Sprintf("%.6f %s", m.Amount, currency)
	if m.CostDescription != "" {
		result = fmt.Sprintf("%s (%s)", result, m.CostDescription)
	}

	var quality []string
	if m.Accuracy > 0 {
		quality = append(quality, fmt.Sprintf("Accuracy: %.1f%%", m.Accuracy*100))
	}
	if m.AverageDurationInMillis > 0 {
		quality = append(quality, fmt.Sprintf("Avg: %dms", m.AverageDurationInMillis))
	}
	if len(quality) > 0 {
		result = fmt.Sprintf("%s [%s]", result, strings.Join(quality, ", "))
	}

	return result
}

// IsFree reports whether a call costs nothing.
func (m ToolMetrics) IsFree() bool {
	return m.Amount == 0
}

// CostSummary aggregates the tool calls of one session.
type CostSummary struct {
	// ToolCosts maps tool names to their accumulated cost
	ToolCosts map[string]float64 `json:"tool_costs,omitempty"`

	// ToolExecutionCount tracks how many times each tool was called
	ToolExecutionCount map[string]int `json:"tool_execution_count,omitempty"`

	// TotalToolCost is the sum of ToolCosts
	TotalToolCost float64 `json:"total_tool_cost"`

	// ExecutionDurationSeconds is the wall time of the session, if tracked
	ExecutionDurationSeconds float64 `json:"execution_duration_seconds,omitempty"`

	Currency string `json:"currency"`
}

// String renders a one-line summary, e.g. "Total: 0.000000 USD over 3 call(s)".
func (s CostSummary) String() string {
	calls := 0
	for _, n := range s.ToolExecutionCount {
		calls += n
	}
	currency := s.Currency
	if currency == "" {
		currency = "USD"
	}
	return fmt.Sprintf("Total: %.6f %s over %d call(s)", s.TotalToolCost, currency, calls)
}
