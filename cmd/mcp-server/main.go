// cmd/mcp-server/main.go — MCP server for functree
//
// Exposes functree tools to AI agent frameworks over stdio or streamable HTTP.
//
// Usage:
//
//	go run ./cmd/mcp-server                                  # stdio
//	go run ./cmd/mcp-server -transport http -http-addr :8080 # HTTP
//
// Environment: FUNCTREE_MCP_TRANSPORT, FUNCTREE_MCP_HTTP_ADDR, FUNCTREE_MAX_PASSES.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/njchilds90/functree/internal/mcpserver"
)

func main() {
	log.SetPrefix("[functree-mcp] ")
	// stdout carries the stdio transport.
	log.SetOutput(os.Stderr)

	cfg, err := mcpserver.ParseConfig(flag.CommandLine, os.Args[1:], nil)
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := mcpserver.Run(ctx, cfg); err != nil {
		log.Fatalf("serve: %v", err)
	}
}
