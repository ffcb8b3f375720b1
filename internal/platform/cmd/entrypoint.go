// Package cmd holds the shared startup helpers for command entrypoints.
package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/louisbranch/insightboard/internal/platform/config"
	"github.com/louisbranch/insightboard/internal/platform/otel"
	"github.com/louisbranch/insightboard/internal/platform/timeouts"
)

// ServiceDashboard names the dashboard process in telemetry and logs.
const ServiceDashboard = "dashboard"

// RunOptions controls shared entrypoint behavior for service commands.
type RunOptions struct {
	// Telemetry selects span export; the zero value exports nothing.
	Telemetry otel.Settings
	// ShutdownTimeout sets the timeout used when stopping telemetry.
	ShutdownTimeout time.Duration
}

// ParseConfig loads environment defaults into cfg.
func ParseConfig[T any](cfg *T) error {
	if cfg == nil {
		return errors.New("config target is required")
	}
	return config.ParseEnv(cfg)
}

// ParseArgs parses command-line flags.
func ParseArgs(fs *flag.FlagSet, args []string) error {
	if fs == nil {
		return errors.New("flag parser is required")
	}
	if args == nil {
		args = []string{}
	}
	return fs.Parse(args)
}

// RunWithTelemetry configures observability from telemetry and executes a
// service run loop.
func RunWithTelemetry(ctx context.Context, service string, telemetry otel.Settings, run func(context.Context) error) error {
	return RunWithTelemetryAndOptions(ctx, service, RunOptions{Telemetry: telemetry}, run)
}

// RunWithTelemetryAndOptions configures observability and executes a service run loop.
func RunWithTelemetryAndOptions(ctx context.Context, service string, options RunOptions, run func(context.Context) error) error {
	service = strings.TrimSpace(service)
	if service == "" {
		return fmt.Errorf("service name is required")
	}
	if run == nil {
		return fmt.Errorf("run function is required")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	shutdown, err := otel.Setup(ctx, service, options.Telemetry)
	if err != nil {
		return fmt.Errorf("%s telemetry setup: %w", service, err)
	}
	if options.Telemetry.Exporting() {
		log.Printf("%s exporting traces endpoint=%s", service, options.Telemetry.Endpoint)
	}
	defer func() {
		shutdownTimeout := options.ShutdownTimeout
		if shutdownTimeout <= 0 {
			shutdownTimeout = timeouts.TelemetryShutdown
		}
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			log.Printf("%s otel shutdown: %v", service, err)
		}
	}()
	return run(ctx)
}
