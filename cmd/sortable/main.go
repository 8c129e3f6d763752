package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"sortable/internal/adapters/sqlite"
	"sortable/internal/adapters/tui"
	"sortable/internal/application"
	"sortable/internal/config"
	"sortable/internal/logging"
)

func main() {
	configFlag := flag.String("config", "", "config file (default "+config.DefaultConfigPath+")")
	scopeFlag := flag.String("scope", "", "ranking scope (empty for the whole table)")
	logFlag := flag.String("log", "", "write logs to this file")
	flag.Parse()

	if err := run(*configFlag, *scopeFlag, *logFlag); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath, scope, logPath string) error {
	cfg, err := config.Load(configPath, config.Environ())
	if err != nil {
		return err
	}

	// The terminal belongs to the TUI
	var logOut io.Writer = io.Discard
	if logPath != "" {
		f, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return err
		}
		defer f.Close()
		logOut = f
	}
	logger := logging.New(logOut, cfg.LogFormat, cfg.LogLevel).WithComponent("tui")

	// Initialize adapters
	store := sqlite.NewStore()
	if err := store.Open(cfg.DBPath); err != nil {
		return err
	}
	defer store.Close()

	audit := store.AuditLog().OnError(func(err error) {
		logger.Error("failed to record rank change", "error", err)
	})
	observer := application.Observers{logging.NewRankLogger(logger.WithScope(scope)), audit}

	// Create and run TUI app
	app := tui.NewApp(store, observer, scope, cfg.PageSize)

	p := tea.NewProgram(app, tea.WithAltScreen())

	_, err = p.Run()
	return err
}
