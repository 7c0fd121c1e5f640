// Package cost describes what tool calls cost. [ToolMetrics] carries the
// monetary amount per call together with accuracy and latency hints;
// [CostSummary] aggregates the calls made during one session.
package cost
