// Package overview tracks what happened during one calculator session: how
// often each tool was called, which calls failed, what they cost and the
// ordered call history.
//
// Store an [Overview] in a context with [Overview.ToContext] (or let
// [OverviewFromContext] create one); tool.Catalog records every call it
// dispatches into the overview it finds there. [Overview.CostSummary]
// returns the aggregated costs.
package overview
