// Package app wires the trade-history import service together and manages
// its lifecycle.
//
// # Initialization Flow
//
//	1. Configuration and logger come from the caller (cmd/server)
//	2. OpenTelemetry providers and import metrics are created
//	3. The validation engine, import service and health service are built
//	4. The chi router is assembled with middleware and handlers
//	5. The http.Server is created from the server configuration
//
// # Middleware
//
// API routes run behind, in order: request ID, real IP, OpenTelemetry,
// structured logging, panic recovery, security headers, the optional rate
// limiter and the request timeout. The Prometheus endpoint only gets request
// ID and real IP.
//
// # Shutdown
//
// Run listens on the configured port and serves until SIGINT or SIGTERM.
// Serve takes an explicit listener and context, which is what tests use.
// Both drain in-flight requests within ShutdownTimeout and then flush the
// telemetry providers.
package app
