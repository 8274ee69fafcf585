package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/Zolinad/dsportfolio/internal/logistics"
	"github.com/Zolinad/dsportfolio/internal/portfolio"
	"github.com/Zolinad/dsportfolio/internal/web"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the portfolio web server",
	RunE: func(cmd *cobra.Command, args []string) error {
		addr := cfg.ListenAddr
		if cmd.Flags().Changed("addr") || addr == "" {
			addr = serveAddr
		}

		app, err := newApp()
		if err != nil {
			return err
		}
		srv, err := web.NewServer(app, log)
		if err != nil {
			return fmt.Errorf("build server: %w", err)
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		errCh := make(chan error, 1)
		go func() { errCh <- srv.Start(addr) }()

		select {
		case err := <-errCh:
			if err != nil && !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("serve: %w", err)
			}
			return nil
		case <-ctx.Done():
		}

		log.Infow("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Stop(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		return nil
	},
}

// newApp wires the remote orders loader and builds every dashboard.
func newApp() (*portfolio.App, error) {
	loader := logistics.NewLoader(cfg.OlistURL, cfg.HTTPTimeout(), cfg.CacheTTL(), log)
	app, err := portfolio.NewApp(cfg, loader, log)
	if err != nil {
		return nil, fmt.Errorf("build app: %w", err)
	}
	return app, nil
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&serveAddr, "addr", ":8501", "listen address (overrides config)")
}
