// Package observability defines the tracing, metrics and logging interfaces
// used throughout calclogic, together with the attribute and metric names in
// semconv.go.
//
// [Provider] composes [Tracer], [Metrics] and [Logger]. Callers put a provider
// and an active [Span] into a [context.Context] with [ContextWithObserver] and
// [ContextWithSpan]; tools pick them up with [ObserverFromContext] and
// [SpanFromContext]. Concrete providers live in the slogobs and promobs
// subpackages.
package observability
