// Package middleware provides the HTTP middleware chain: request ids, CORS,
// security headers, rate limiting, request deadlines, OpenTelemetry request
// instrumentation and validated query binding.
package middleware
