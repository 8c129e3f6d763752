package main

import (
	"context"
	"flag"
	"log"
	"os"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	mcpadapter "sortable/internal/adapters/mcp"
	"sortable/internal/adapters/sqlite"
	"sortable/internal/application"
	"sortable/internal/config"
	"sortable/internal/logging"
)

func main() {
	configFlag := flag.String("config", "", "config file (default "+config.DefaultConfigPath+")")
	dbFlag := flag.String("db", "", "path to the database (default from config)")
	flag.Parse()

	cfg, err := config.Load(*configFlag, config.Environ())
	if err != nil {
		log.Fatalf("sortable-mcp: %v", err)
	}
	if *dbFlag != "" {
		cfg.DBPath = *dbFlag
	}

	// stdout carries the protocol; logs go to stderr
	logger := logging.New(os.Stderr, cfg.LogFormat, cfg.LogLevel).WithComponent("mcp")

	store := sqlite.NewStore()
	if err := store.Open(cfg.DBPath); err != nil {
		log.Fatalf("sortable-mcp: %v", err)
	}
	defer store.Close()

	audit := store.AuditLog().OnError(func(err error) {
		logger.Error("failed to record rank change", "error", err)
	})
	deps := mcpadapter.Deps{
		Store:    store,
		Observer: application.Observers{logging.NewRankLogger(logger), audit},
		History:  audit,
		PageSize: cfg.PageSize,
		Logger:   logger,
	}

	mcpServer := server.NewMCPServer(
		"sortable-mcp",
		"0.1.0",
		server.WithToolCapabilities(true),
	)

	mcpServer.AddTool(
		mcp.NewTool("ping",
			mcp.WithDescription("Health check, returns pong"),
		),
		func(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return mcp.NewToolResultText("pong"), nil
		},
	)

	mcpadapter.RegisterReadTools(mcpServer, deps)
	mcpadapter.RegisterWriteTools(mcpServer, deps)

	if err := server.ServeStdio(mcpServer); err != nil {
		log.Fatalf("sortable-mcp: %v", err)
	}
}
