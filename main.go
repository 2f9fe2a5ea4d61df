package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	flag "github.com/spf13/pflag"

	"github.com/wagnerlima/vault-todos/internal/config"
	"github.com/wagnerlima/vault-todos/internal/duedates"
	"github.com/wagnerlima/vault-todos/internal/query"
	"github.com/wagnerlima/vault-todos/internal/server"
	"github.com/wagnerlima/vault-todos/internal/storage"
	"github.com/wagnerlima/vault-todos/internal/todo"
	"github.com/wagnerlima/vault-todos/internal/vault"
)

func main() {
	transport := flag.String("transport", "stdio", "Transport mode: stdio or http")
	port := flag.String("port", "8082", "HTTP port (only used with --transport http)")
	configPath := flag.String("config", "", "Path to config file (default: ./"+config.ConfigFileName+")")
	vaultDir := flag.String("vault", "", "Vault root directory (overrides config)")
	dataDir := flag.String("data-dir", "", "Directory for the settings database (overrides config)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if *vaultDir != "" {
		cfg.VaultDir = *vaultDir
	}
	if *dataDir != "" {
		cfg.DataDir = *dataDir
	}

	store, err := storage.Open(cfg.DataDir)
	if err != nil {
		log.Fatalf("Failed to open settings store: %v", err)
	}
	defer store.Close()

	v, err := vault.Open(cfg.VaultDir)
	if err != nil {
		log.Fatalf("Failed to open vault: %v", err)
	}

	engine := &query.Engine{Store: v}
	svc := &todo.Service{Engine: engine, Docs: v, Journal: store}
	extractor := &duedates.Extractor{Source: &duedates.EngineSource{Engine: engine, Docs: v}}

	srv := server.New(svc, extractor, store)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	switch *transport {
	case "stdio":
		log.Printf("Vault todos MCP server starting (stdio, vault=%s)", cfg.VaultDir)
		if err := srv.Run(ctx, &mcp.StdioTransport{}); err != nil {
			log.Fatalf("Server error: %v", err)
		}
	case "http":
		addr := ":" + *port
		handler := mcp.NewStreamableHTTPHandler(func(r *http.Request) *mcp.Server {
			return srv
		}, nil)
		log.Printf("Vault todos MCP server listening on %s (vault=%s)", addr, cfg.VaultDir)
		if err := http.ListenAndServe(addr, handler); err != nil {
			log.Fatalf("HTTP server error: %v", err)
		}
	default:
		log.Fatalf("Unknown transport: %s (use stdio or http)", *transport)
	}
}
