// Package errors provides coded, structured errors for Electa.
//
// Every error code is registered with a category and a message so that the
// CLI and the server logs report the same wording for the same failure:
//
//	err := errors.New("E101").Wrap(cause)
//	logger.Warn("catalog load failed", "code", err.Code, "error", err)
//
// Codes are grouped by category: E1xx resource loading, E2xx persistence,
// E3xx validation and E4xx configuration.
package errors
