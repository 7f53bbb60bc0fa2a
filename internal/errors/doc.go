// Package errors provides structured error values for vquery.
//
// Every error carries a short code (e.g. "E020") that maps to a registered
// template with a category, a one-line message, and a longer explanation.
// Codes are grouped by subsystem:
//   - E001-E019: selector and parser errors
//   - E020-E029: data store errors
//   - E030-E039: event dispatch errors
//   - E040-E049: configuration errors
//
// # Usage
//
//	err := errors.New("E020").
//	    WithDetail(`dataset name "dom" is reserved`).
//	    WithSuggestion("Pick a namespace of your own, e.g. \"widgets\"")
//
//	logger.Warn("dataset rejected", "error", err.FormatCompact())
//	// error="E020: Reserved dataset namespace (dataset name \"dom\" is reserved)"
package errors
