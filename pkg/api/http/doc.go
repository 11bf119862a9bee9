// Package http provides the HTTP REST API implementation.
//
// The HTTP server exposes endpoints for:
//   - The welcome page with version and environment
//   - Liveness and readiness probes
//   - The read-only item catalog
//   - Prometheus metrics
package http
