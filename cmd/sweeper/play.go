package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/gdamore/tcell/v2"
	"github.com/spf13/cobra"

	"github.com/vancomm/sweeper/internal/mines"
	"github.com/vancomm/sweeper/internal/tui"
)

func newPlayCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "play",
		Short: "Play in the terminal",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(
				context.Background(),
				os.Interrupt, syscall.SIGTERM,
			)
			defer stop()

			screen, err := tcell.NewScreen()
			if err != nil {
				return fmt.Errorf("unable to open terminal: %w", err)
			}
			if err := screen.Init(); err != nil {
				return fmt.Errorf("unable to open terminal: %w", err)
			}
			defer screen.Fini()

			// the screen owns the terminal; only the log file, if any, keeps entries
			log.SetOutput(io.Discard)

			ui, err := tui.New(screen, log, func() (*mines.Board, error) {
				return mines.Reference.Generate()
			})
			if err != nil {
				return err
			}
			return ui.Run(ctx)
		},
	}
}
