package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
)

const shutdownTimeout = 30 * time.Second

func newServeCommand() *cobra.Command {
	var withoutJobs bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the HTTP API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			a, err := newApp(ctx)
			if err != nil {
				return err
			}
			log := a.server.Logger

			if !withoutJobs {
				if err := a.server.StartJobs(a.services.Sessions); err != nil {
					log.Error().Err(err).Msg("failed to start background jobs")
					return err
				}
			}

			a.server.SetupHTTPServer(a.router)

			go func() {
				if err := a.server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					log.Error().Err(err).Msg("server stopped unexpectedly")
					stop()
				}
			}()

			<-ctx.Done()

			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()

			if err := a.close(shutdownCtx); err != nil {
				log.Error().Err(err).Msg("server forced to shutdown")
				return err
			}

			log.Info().Msg("server exited properly")
			return nil
		},
	}

	cmd.Flags().BoolVar(&withoutJobs, "without-jobs", false, "do not run background workers in this process")
	return cmd
}
