package main

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/yungbote/cas-backend/internal/app"
	"github.com/yungbote/cas-backend/internal/config"
	"github.com/yungbote/cas-backend/internal/platform/shutdown"
)

var serveFlags struct {
	addr   string
	dryRun bool
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	Long: `Start the HTTP server and block until SIGINT or SIGTERM.

Examples:
  cas serve
  cas serve --config /etc/cas/config.yaml
  cas serve --addr :9000
  cas serve --dry-run`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	for _, cmd := range []*cobra.Command{rootCmd, serveCmd} {
		cmd.Flags().StringVar(&serveFlags.addr, "addr", "", "override listen address")
		cmd.Flags().BoolVar(&serveFlags.dryRun, "dry-run", false, "load and validate config, then exit")
	}
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if serveFlags.addr != "" {
		cfg.HTTP.Addr = serveFlags.addr
	}
	if serveFlags.dryRun {
		fmt.Fprintf(cmd.OutOrStdout(), "config ok: addr=%s model=%s fallback=%s\n",
			cfg.HTTP.Addr, cfg.LLM.PrimaryModel, cfg.LLM.FallbackModel)
		return nil
	}
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := shutdown.NotifyContext(cmd.Context())
	defer stop()

	a, err := app.New(ctx, cfg, Version)
	if err != nil {
		return fmt.Errorf("failed to initialize app: %w", err)
	}
	defer a.Close()

	if err := a.Run(ctx); err != nil {
		return fmt.Errorf("server exited: %w", err)
	}
	return nil
}
