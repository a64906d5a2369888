package cmd

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"github.com/eleven-am/tasknest/internal/config"
	"github.com/eleven-am/tasknest/internal/logger"
	"github.com/eleven-am/tasknest/internal/server"
	"github.com/eleven-am/tasknest/internal/store"
)

var (
	configPath string
	addr       string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP server",
	Long:  `Connect to PostgreSQL, ensure the schema exists and serve the web application.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&configPath, "config", "", "Path to YAML config file (optional)")
	serveCmd.Flags().StringVar(&addr, "addr", "", "Listen address, overrides config")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if addr != "" {
		cfg.Addr = addr
	}

	logger.SetLevel(cfg.LogLevel)
	log := logger.CLI()

	ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
	defer cancel()

	st, err := store.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer st.Close()

	if err := st.EnsureSchema(ctx); err != nil {
		return err
	}

	if n, err := st.DeleteExpiredSessions(ctx, time.Now()); err != nil {
		log.Warn("clear expired sessions", "error", err)
	} else if n > 0 {
		log.Info("cleared expired sessions", "count", n)
	}

	srv, err := server.New(cfg, st)
	if err != nil {
		return err
	}

	return srv.ListenAndServe()
}
