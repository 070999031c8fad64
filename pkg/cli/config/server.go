package config

import (
	"log/slog"

	"github.com/urfave/cli/v3"
)

// Server holds server configuration
type Server struct {
	Addr    string
	BaseURL string
}

// Flags returns CLI flags for Server configuration
func (s *Server) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "addr",
			Usage:       "Server address",
			Category:    "Server",
			Value:       "localhost:8080",
			Sources:     cli.EnvVars("HASHDASH_ADDR"),
			Destination: &s.Addr,
		},
		&cli.StringFlag{
			Name:        "base-url",
			Usage:       "Public URL used in share links (if not set, automatically detected from request headers)",
			Category:    "Server",
			Sources:     cli.EnvVars("HASHDASH_BASE_URL"),
			Destination: &s.BaseURL,
		},
	}
}

// LogValue returns structured log value
func (s Server) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("addr", s.Addr),
		slog.String("base_url", s.BaseURL),
	)
}
