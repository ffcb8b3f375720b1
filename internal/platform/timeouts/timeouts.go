// Package timeouts defines shared timeout constants used across the service.
package timeouts

import "time"

// DatasetFetch caps the time allowed to download one example dataset.
const DatasetFetch = 30 * time.Second

// ReadHeader limits how long an HTTP server waits for request headers.
const ReadHeader = 5 * time.Second

// Shutdown limits how long an HTTP server waits for in-flight requests
// during graceful shutdown.
const Shutdown = 5 * time.Second

// TelemetryShutdown limits how long pending spans may take to flush on exit.
const TelemetryShutdown = 5 * time.Second
