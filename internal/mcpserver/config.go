package mcpserver

import (
	"flag"
	"fmt"

	"github.com/caarlos0/env/v11"
)

const (
	TransportStdio = "stdio"
	TransportHTTP  = "http"
)

// Config holds MCP server configuration.
type Config struct {
	Transport string `env:"FUNCTREE_MCP_TRANSPORT" envDefault:"stdio"`
	HTTPAddr  string `env:"FUNCTREE_MCP_HTTP_ADDR" envDefault:"localhost:8080"`
	MaxPasses int    `env:"FUNCTREE_MAX_PASSES"    envDefault:"64"`
}

// ParseConfig parses environment and flags into a Config. A nil environ
// reads the process environment.
func ParseConfig(fs *flag.FlagSet, args []string, environ map[string]string) (Config, error) {
	var cfg Config
	if err := env.ParseWithOptions(&cfg, env.Options{Environment: environ}); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}

	fs.StringVar(&cfg.Transport, "transport", cfg.Transport, "Transport type: stdio or http")
	fs.StringVar(&cfg.HTTPAddr, "http-addr", cfg.HTTPAddr, "HTTP server address (for HTTP transport)")
	fs.IntVar(&cfg.MaxPasses, "max-passes", cfg.MaxPasses, "Pass limit for full simplification")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	if cfg.MaxPasses < 1 {
		return Config{}, fmt.Errorf("max passes must be positive, got %d", cfg.MaxPasses)
	}
	return cfg, nil
}
