package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/rpgo/dca-calculator/internal/prices"
	"github.com/rpgo/dca-calculator/internal/server"
)

func newServeCmd(a *app) *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the simulation as a JSON HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("addr") {
				addr = a.env.ListenAddr
			}

			// Requests answer 503 until a readable price file is provided.
			sm := prices.NewSeriesManager(a.dataPath)
			if err := sm.Load(); err != nil {
				a.log.Warn().Err(err).Str("path", a.dataPath).Msg("price data unavailable")
			} else {
				a.log.Info().Str("path", a.dataPath).Int("observations", sm.Series.Statistics.Count).Msg("price series loaded")
			}

			srv := server.New(server.Config{Addr: addr, Log: a.log, Prices: sm})

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			errCh := make(chan error, 1)
			go func() {
				if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					errCh <- err
				}
				close(errCh)
			}()

			select {
			case err := <-errCh:
				return err
			case <-ctx.Done():
			}

			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				a.log.Error().Err(err).Msg("Server forced to shutdown")
				return err
			}
			a.log.Info().Msg("Server stopped")
			return nil
		},
	}
	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	return cmd
}
