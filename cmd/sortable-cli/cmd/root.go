package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"sortable/internal/adapters/sqlite"
	"sortable/internal/application"
	"sortable/internal/config"
	"sortable/internal/logging"
	"sortable/internal/ports"
)

var (
	configPath string
	dbPath     string
	scope      string
	pageSize   int

	cfg    config.Config
	store  *sqlite.Store
	logger *logging.Logger
)

var rootCmd = &cobra.Command{
	Use:   "sortable-cli",
	Short: "Reorder ranked collections",
	Long: `sortable-cli reorders the entries of ranked collections stored in SQLite.

Every entry holds a rank within its scope. Moving one entry shifts the
entries in between by one rank, so each scope stays numbered 1..N.
Whole selections can be moved to another page of the list.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Skip initialization for help commands
		if cmd.Name() == "help" || cmd.Name() == "completion" || cmd.Annotations[setupKey] == setupNone {
			return nil
		}
		return setup(cmd, cmd.Annotations[setupKey] != setupConfig)
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if store == nil {
			return nil
		}
		return store.Close()
	},
}

// Commands annotated with setupKey skip opening the store (setupConfig) or
// all initialization (setupNone)
const (
	setupKey    = "setup"
	setupNone   = "none"
	setupConfig = "config"
)

func setup(cmd *cobra.Command, openStore bool) error {
	var err error
	cfg, err = config.Load(configPath, config.Environ())
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("db") {
		cfg.DBPath = dbPath
	}
	if cmd.Flags().Changed("page-size") {
		cfg.PageSize = pageSize
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger = logging.New(os.Stderr, cfg.LogFormat, cfg.LogLevel)
	if !openStore {
		return nil
	}

	store = sqlite.NewStore()
	if err := store.Open(cfg.DBPath); err != nil {
		return fmt.Errorf("failed to open %s: %w", cfg.DBPath, err)
	}
	logger.Debug("store opened", "db", store.Path(), "config", cfg.Source)
	return nil
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "config file (default "+config.DefaultConfigPath+")")
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", config.DBPath(), "path to the database")
	rootCmd.PersistentFlags().StringVarP(&scope, "scope", "s", "", "ranking scope (empty for the whole table)")
	rootCmd.PersistentFlags().IntVar(&pageSize, "page-size", config.DefaultPageSize, "entries per page")
}

// GetStore returns the opened store
func GetStore() ports.RankStore {
	return store
}

// Observer returns the observers every rank change is reported to: the
// audit log and the debug logger
func Observer() ports.RankObserver {
	audit := store.AuditLog().OnError(func(err error) {
		logger.Error("failed to record rank change", "error", err)
	})
	return application.Observers{logging.NewRankLogger(logger), audit}
}
