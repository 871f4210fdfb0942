package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vancomm/sweeper/internal/app"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the live board over HTTP and websockets",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(
				context.Background(),
				os.Interrupt, syscall.SIGTERM,
			)
			defer stop()

			a, err := app.New(cfg, log)
			if err != nil {
				return err
			}
			if err := a.Start(ctx); err != nil {
				log.WithError(err).Error("server stopped")
				return err
			}
			log.Info("server stopped")
			return nil
		},
	}
}
