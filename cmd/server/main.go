package main

import (
	"log/slog"
	"os"

	"github.com/anonto42/nano-forum/backend/pkg/config"
	"github.com/spf13/cobra"
)

var (
	cfg *config.Config

	rootCmd = &cobra.Command{
		Use:   "forum",
		Short: "Forum backend: posts, nested comments, likes and notifications",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg = config.Load()
			setupLogger(cfg)
			return cfg.Validate()
		},
		SilenceUsage: true,
	}
)

func main() {
	rootCmd.AddCommand(serveCmd, migrateCmd)
	if err := rootCmd.Execute(); err != nil {
		slog.Error("Command failed", "error", err)
		os.Exit(1)
	}
}

// setupLogger installs a text logger in development and JSON elsewhere.
func setupLogger(cfg *config.Config) {
	var handler slog.Handler
	if cfg.IsDevelopment() {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})
	} else {
		handler = slog.NewJSONHandler(os.Stderr, nil)
	}
	slog.SetDefault(slog.New(handler))
}
