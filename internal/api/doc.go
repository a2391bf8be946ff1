// Package api handles incoming HTTP requests, routing, request parsing,
// and response formatting. It is the only layer that translates errors
// into HTTP responses: every failure from the service layer passes through
// the translator in errors.go and leaves as one uniform JSON envelope.
package api
