// Package server implements the HTTP server using Echo framework.
//
// Routes: sentiment API (simple, detailed, batch), health (liveness,
// readiness with pipeline and Redis checks), metrics, version.
package server
