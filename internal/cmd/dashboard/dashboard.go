// Package dashboard parses dashboard flags and launches the report server.
package dashboard

import (
	"context"
	"flag"
	"fmt"
	"net"
	"strconv"
	"strings"

	entrypoint "github.com/louisbranch/insightboard/internal/platform/cmd"
	"github.com/louisbranch/insightboard/internal/platform/otel"
	"github.com/louisbranch/insightboard/internal/services/dashboard"
	"github.com/louisbranch/insightboard/internal/services/dashboard/i18n"
)

// Config holds dashboard command configuration.
type Config struct {
	Port      int    `env:"PORT" envDefault:"8050"`
	Host      string `env:"DASHBOARD_HOST" envDefault:"0.0.0.0"`
	DataURL   string `env:"DASHBOARD_DATA_URL"`
	DataDir   string `env:"DASHBOARD_DATA_DIR"`
	CachePath string `env:"DASHBOARD_CACHE_PATH"`
	Locale    string `env:"DASHBOARD_DEFAULT_LOCALE" envDefault:"es-ES"`

	OTelEndpoint    string  `env:"DASHBOARD_OTEL_ENDPOINT"`
	OTelEnabled     bool    `env:"DASHBOARD_OTEL_ENABLED" envDefault:"true"`
	OTelSampleRatio float64 `env:"DASHBOARD_OTEL_SAMPLE_RATIO" envDefault:"1"`
}

// ParseConfig parses environment and flags into Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}
	fs.IntVar(&cfg.Port, "port", cfg.Port, "HTTP listen port")
	fs.StringVar(&cfg.Host, "host", cfg.Host, "HTTP listen host")
	fs.StringVar(&cfg.DataURL, "data-url", cfg.DataURL, "Base URL of the example-data repository")
	fs.StringVar(&cfg.DataDir, "data-dir", cfg.DataDir, "Directory of <name>.csv datasets used instead of the network")
	fs.StringVar(&cfg.CachePath, "cache-path", cfg.CachePath, "SQLite file caching downloaded datasets")
	fs.StringVar(&cfg.Locale, "locale", cfg.Locale, "Default page language (es-ES or en-US)")
	fs.StringVar(&cfg.OTelEndpoint, "otel-endpoint", cfg.OTelEndpoint, "OTLP/HTTP collector URL; empty disables tracing")
	fs.Float64Var(&cfg.OTelSampleRatio, "otel-sample-ratio", cfg.OTelSampleRatio, "Fraction of traces kept (0-1)")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	if cfg.Port < 1 || cfg.Port > 65535 {
		return Config{}, fmt.Errorf("port %d out of range 1-65535", cfg.Port)
	}
	if _, ok := i18n.Parse(cfg.Locale); !ok {
		return Config{}, fmt.Errorf("unsupported locale %q", cfg.Locale)
	}
	if cfg.OTelSampleRatio < 0 || cfg.OTelSampleRatio > 1 {
		return Config{}, fmt.Errorf("otel sample ratio %v out of range 0-1", cfg.OTelSampleRatio)
	}
	return cfg, nil
}

// Addr returns the host:port listen address.
func (c Config) Addr() string {
	return net.JoinHostPort(strings.TrimSpace(c.Host), strconv.Itoa(c.Port))
}

// Telemetry returns the span export settings.
func (c Config) Telemetry() otel.Settings {
	return otel.Settings{
		Endpoint:    c.OTelEndpoint,
		Enabled:     c.OTelEnabled,
		SampleRatio: c.OTelSampleRatio,
	}
}

// Run builds the dashboard and serves it until ctx ends.
func Run(ctx context.Context, cfg Config) error {
	return entrypoint.RunWithTelemetry(ctx, entrypoint.ServiceDashboard, cfg.Telemetry(), func(ctx context.Context) error {
		locale, _ := i18n.Parse(cfg.Locale)
		server, err := dashboard.NewServer(ctx, dashboard.Config{
			HTTPAddr:      cfg.Addr(),
			DataURL:       cfg.DataURL,
			DataDir:       cfg.DataDir,
			CachePath:     cfg.CachePath,
			DefaultLocale: locale,
		})
		if err != nil {
			return fmt.Errorf("init dashboard server: %w", err)
		}
		defer server.Close()

		if err := server.ListenAndServe(ctx); err != nil {
			return fmt.Errorf("serve dashboard: %w", err)
		}
		return nil
	})
}
