// Package parse decodes tool-call arguments produced by language models.
// Models often emit almost-JSON (single quotes, unquoted keys, trailing
// commas) or wrap values in schema-style {"type", "value"} envelopes, so
// decoding repairs and unwraps before giving up.
//
// The main entry point is the generic [ParseStringAs] function.
package parse
