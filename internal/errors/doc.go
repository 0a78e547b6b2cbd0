// Package errors turns pipeline and request errors into RFC 7807 problem
// responses. Sentinel errors from the source, dataprocessing and chart
// packages map onto dedicated problem types; anything else is a 500.
package errors
