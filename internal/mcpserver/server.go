// Package mcpserver exposes functree operations as MCP tools over stdio or
// streamable HTTP.
package mcpserver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const (
	serverName    = "functree"
	serverVersion = "0.1.0"
)

// New returns an MCP server with every functree tool registered.
func New(cfg Config) *mcp.Server {
	server := mcp.NewServer(&mcp.Implementation{Name: serverName, Version: serverVersion}, nil)
	maxPasses := cfg.MaxPasses
	if maxPasses < 1 {
		maxPasses = 64
	}
	mcp.AddTool(server, EvaluateTool(), EvaluateHandler())
	mcp.AddTool(server, DerivativeTool(), DerivativeHandler())
	mcp.AddTool(server, SimplifyTool(), SimplifyHandler(maxPasses))
	mcp.AddTool(server, FreeVariablesTool(), FreeVariablesHandler())
	mcp.AddTool(server, TabulateTool(), TabulateHandler())
	return server
}

// Tools lists the registered tool definitions.
func Tools() []*mcp.Tool {
	return []*mcp.Tool{EvaluateTool(), DerivativeTool(), SimplifyTool(), FreeVariablesTool(), TabulateTool()}
}

// Run serves the tools on the configured transport and blocks until ctx is
// cancelled or the transport closes.
func Run(ctx context.Context, cfg Config) error {
	if cfg.Transport == "" {
		cfg.Transport = TransportStdio
	}
	switch cfg.Transport {
	case TransportStdio:
		return New(cfg).Run(ctx, &mcp.StdioTransport{})
	case TransportHTTP:
		return runHTTP(ctx, cfg)
	default:
		return fmt.Errorf("transport %q is not supported", cfg.Transport)
	}
}

// Handler returns the HTTP routes for the tools.
//
//	/mcp    — streamable MCP endpoint
//	/schema — tool list for agent registration
//	/health — liveness check
func Handler(cfg Config) http.Handler {
	server := New(cfg)
	mux := http.NewServeMux()
	mux.Handle("/mcp", mcp.NewStreamableHTTPHandler(func(*http.Request) *mcp.Server { return server }, nil))
	mux.HandleFunc("/schema", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(Tools())
	})
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"status": "ok",
			"time":   time.Now().UTC().Format(time.RFC3339),
		})
	})
	return mux
}

func runHTTP(ctx context.Context, cfg Config) error {
	addr := cfg.HTTPAddr
	if addr == "" {
		addr = "localhost:8080"
	}
	srv := &http.Server{
		Addr:              addr,
		Handler:           Handler(cfg),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("functree MCP server listening on %s", addr)
		log.Printf("  POST /mcp    — MCP streamable HTTP")
		log.Printf("  GET  /schema — tool list")
		log.Printf("  GET  /health — health check")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		return nil
	}
}
