// Package http implements the HTTP handlers of the trade-history import
// service. Handlers stay thin: they parse the request, call a service and
// render the result.
//
// # Endpoints
//
//	POST /api/v1/imports/validate   multipart upload, field "file"
//	GET  /api/health                liveness summary
//	GET  /api/health/ready          readiness, 503 when not ready
//	GET  /api/health/live           runtime details
//	GET  /api/version               build information
//	GET  /metrics                   Prometheus scrape
//
// # Responses
//
// A validation report is the result of an upload, so an invalid report is
// still answered with 200. The request itself failing (missing file field,
// oversized body, bad query parameter, no free import slot) produces an
// RFC 7807 problem document:
//
//	{
//	    "type": "/errors/service-unavailable",
//	    "title": "Service Unavailable",
//	    "status": 503,
//	    "detail": "Too many imports in progress, retry shortly",
//	    "instance": "/api/v1/imports/validate"
//	}
//
// Handlers are tested with httptest against a chi router.
package http
