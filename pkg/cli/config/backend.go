package config

import (
	"log/slog"
	"time"

	"github.com/hashtags-tool/hashdash/pkg/service/stats"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
)

// Backend holds the stats backend configuration
type Backend struct {
	URL       string
	Timeout   time.Duration
	RateLimit float64
	Burst     int
}

// Flags returns CLI flags for Backend configuration
func (b *Backend) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "backend-url",
			Usage:       "Base URL of the stats API (the /api/... endpoints are appended)",
			Category:    "Backend",
			Value:       "http://localhost:8000",
			Sources:     cli.EnvVars("HASHDASH_BACKEND_URL"),
			Destination: &b.URL,
		},
		&cli.DurationFlag{
			Name:        "backend-timeout",
			Usage:       "Timeout of one stats request",
			Category:    "Backend",
			Value:       30 * time.Second,
			Sources:     cli.EnvVars("HASHDASH_BACKEND_TIMEOUT"),
			Destination: &b.Timeout,
		},
		&cli.FloatFlag{
			Name:        "backend-rate-limit",
			Usage:       "Maximum stats requests per second (0 disables the limit)",
			Category:    "Backend",
			Value:       10,
			Sources:     cli.EnvVars("HASHDASH_BACKEND_RATE_LIMIT"),
			Destination: &b.RateLimit,
		},
		&cli.IntFlag{
			Name:        "backend-burst",
			Usage:       "Burst size of the stats request rate limit",
			Category:    "Backend",
			Value:       5,
			Sources:     cli.EnvVars("HASHDASH_BACKEND_BURST"),
			Destination: &b.Burst,
		},
	}
}

// Configure creates the stats client
func (b *Backend) Configure() (*stats.Client, error) {
	if b.URL == "" {
		return nil, goerr.New("backend URL is required")
	}
	if b.Timeout <= 0 {
		return nil, goerr.New("backend timeout must be positive", goerr.V("timeout", b.Timeout))
	}

	client, err := stats.New(b.URL,
		stats.WithTimeout(b.Timeout),
		stats.WithRateLimit(b.RateLimit, b.Burst),
	)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create stats client")
	}
	return client, nil
}

// LogValue returns structured log value
func (b Backend) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("url", b.URL),
		slog.Duration("timeout", b.Timeout),
		slog.Float64("rate_limit", b.RateLimit),
		slog.Int("burst", b.Burst),
	)
}
