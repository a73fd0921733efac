package main

import (
	"context"
	"errors"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

func newWorkerCommand() *cobra.Command {
	var purgeNow bool

	cmd := &cobra.Command{
		Use:   "worker",
		Short: "Run the background job workers and scheduler without the HTTP API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			a, err := newApp(ctx)
			if err != nil {
				return err
			}
			log := a.server.Logger

			if a.server.Job == nil {
				_ = a.close(context.Background())
				return errors.New("worker requires redis: set CAMFLEET_REDIS_ADDRESS")
			}

			if err := a.server.StartJobs(a.services.Sessions); err != nil {
				_ = a.close(context.Background())
				return err
			}

			if purgeNow {
				if err := a.server.Job.EnqueuePurgeSessions(ctx); err != nil {
					log.Error().Err(err).Msg("failed to enqueue session purge")
				}
			}

			<-ctx.Done()

			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			return a.close(shutdownCtx)
		},
	}

	cmd.Flags().BoolVar(&purgeNow, "purge-now", false, "enqueue a session purge right after start")
	return cmd
}
