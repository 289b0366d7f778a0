package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/utakatalp/season-manager/internal/api"
)

func serveCmd(slot *string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the season in a save slot over HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(func(ctx context.Context, e *env) error {
				s := e.slot(*slot)
				m, err := e.load(ctx, s)
				if err != nil {
					return err
				}

				srv := &http.Server{
					Addr: e.cfg.HTTPAddr,
					Handler: api.New(m, api.Options{
						Logger:          e.logger,
						AllowedOrigins:  e.cfg.CORSAllowOrigins,
						RateLimit:       e.cfg.RateLimit,
						RateWindow:      e.cfg.RateWindow,
						DefaultSaveSlot: s,
					}),
					ReadTimeout:  10 * time.Second,
					WriteTimeout: 30 * time.Second,
					IdleTimeout:  60 * time.Second,
				}

				errc := make(chan error, 1)
				go func() {
					e.logger.Info("Starting season server", "addr", srv.Addr, "slot", s)
					if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
						errc <- err
					}
					close(errc)
				}()

				select {
				case err := <-errc:
					return err
				case <-ctx.Done():
				}
				e.logger.Info("Shutting down...")
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
				defer cancel()
				return srv.Shutdown(shutdownCtx)
			})
		},
	}
}
