package main

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/vancomm/sweeper/internal/config"
	"github.com/vancomm/sweeper/internal/logging"
	"github.com/vancomm/sweeper/internal/mines"
)

var (
	log = logrus.New()

	configPath string
	cfg        *config.Config
)

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "sweeper",
		Short: "Minesweeper on a fixed 15x15 board",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			if cfg, err = config.Load(configPath); err != nil {
				return err
			}
			if err := logging.Setup(log, cfg); err != nil {
				return err
			}
			mines.Log = log

			log.Info("starting up, mode = ", cfg.Mode)
			log.WithFields(cfg.Fields()).Debug("config")
			return nil
		},
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "config file path (env overrides: SWEEPER_*)")

	rootCmd.AddCommand(newServeCmd())
	rootCmd.AddCommand(newPlayCmd())

	return rootCmd
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
