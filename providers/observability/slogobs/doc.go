// Package slogobs provides an observability.Provider backed by log/slog.
//
// Spans are logged when they start and end (with a uuid span id and their
// duration), counters and histograms are kept in memory and logged at DEBUG,
// and log calls go straight to slog. The bundled [Handler] renders compact,
// pretty or JSON lines and turns NaN and ±Inf attributes into strings so
// calculator results always encode.
//
// The main entry point is [New]. Level and format come from
// CALCLOGIC_LOG_LEVEL / LOG_LEVEL and CALCLOGIC_LOG_FORMAT / LOG_FORMAT unless
// overridden with [WithLevel] and [WithFormat].
package slogobs
