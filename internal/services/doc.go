// Package services holds the application layer between the HTTP handlers and
// the validation engine.
//
// ImportService bounds how many uploads are validated at once. A request that
// finds every slot taken fails fast with ErrImportCapacity instead of queueing.
//
// HealthService answers liveness, readiness and version probes. Readiness
// reflects whether an engine is wired and how many import slots are in use.
//
// Services take a *slog.Logger at construction and log with the request
// context so trace IDs flow into every record.
package services
