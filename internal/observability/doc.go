// Package observability provides Prometheus metrics and the HTTP
// endpoint that exposes them, together with a basic liveness check.
package observability
