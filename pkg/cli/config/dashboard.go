package config

import (
	"log/slog"
	"os"
	"time"

	"github.com/hashtags-tool/hashdash/pkg/domain/model"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v3"
)

// Dashboard holds the dashboard layout and session configuration
type Dashboard struct {
	ConfigPath    string
	SessionTTL    time.Duration
	SweepInterval time.Duration
}

// Flags returns CLI flags for Dashboard configuration
func (d *Dashboard) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "dashboard-config",
			Usage:       "Path to a YAML file with views, titles, chart sizes and colors",
			Category:    "Dashboard",
			Sources:     cli.EnvVars("HASHDASH_DASHBOARD_CONFIG"),
			Destination: &d.ConfigPath,
		},
		&cli.DurationFlag{
			Name:        "session-ttl",
			Usage:       "Idle time after which a dashboard session is dropped (0 keeps sessions)",
			Category:    "Dashboard",
			Value:       30 * time.Minute,
			Sources:     cli.EnvVars("HASHDASH_SESSION_TTL"),
			Destination: &d.SessionTTL,
		},
		&cli.DurationFlag{
			Name:        "sweep-interval",
			Usage:       "Interval of the expired session sweep",
			Category:    "Dashboard",
			Value:       time.Minute,
			Sources:     cli.EnvVars("HASHDASH_SWEEP_INTERVAL"),
			Destination: &d.SweepInterval,
		},
	}
}

// Configure returns the dashboard layout: the built-in one, or the YAML file
// merged over it when a path is given
func (d *Dashboard) Configure() (*model.DashboardConfig, error) {
	if d.SessionTTL < 0 {
		return nil, goerr.New("session TTL must not be negative", goerr.V("ttl", d.SessionTTL))
	}
	if d.SessionTTL > 0 && d.SweepInterval <= 0 {
		return nil, goerr.New("sweep interval must be positive", goerr.V("interval", d.SweepInterval))
	}
	if d.ConfigPath == "" {
		return model.DefaultDashboardConfig(), nil
	}
	return LoadDashboardConfigFromFile(d.ConfigPath)
}

// LoadDashboardConfigFromFile loads a dashboard layout from a YAML file.
// Unset fields take their default value.
func LoadDashboardConfigFromFile(path string) (*model.DashboardConfig, error) {
	if path == "" {
		return nil, goerr.New("configuration file path is required")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, goerr.Wrap(err, "configuration file not found",
				goerr.V("path", path))
		}
		return nil, goerr.Wrap(err, "failed to read configuration file",
			goerr.V("path", path))
	}

	var config model.DashboardConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, goerr.Wrap(err, "failed to parse YAML configuration",
			goerr.V("path", path))
	}

	config.ApplyDefaults()
	if err := config.Validate(); err != nil {
		return nil, goerr.Wrap(err, "invalid configuration",
			goerr.V("path", path))
	}

	return &config, nil
}

// LogValue returns structured log value
func (d Dashboard) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("config_path", d.ConfigPath),
		slog.Duration("session_ttl", d.SessionTTL),
		slog.Duration("sweep_interval", d.SweepInterval),
	)
}
