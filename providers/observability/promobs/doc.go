// Package promobs exports calclogic metrics to Prometheus.
//
// [Wrap] decorates another observability.Provider, typically a slogobs
// Observer, replacing its Counter and Histogram with Prometheus collectors
// while spans and logs keep going to the wrapped provider. Attributes passed
// to Add and Record are not turned into labels.
package promobs
