package cmd

import (
	"log"

	"github.com/spf13/cobra"

	"github.com/josephlewis42/vshell/core/config"
)

// initCmd writes an editable default configuration.
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize the emulator configuration in the config directory.",
	Args:  cobra.ExactArgs(0),
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true

		logger := log.New(cmd.ErrOrStderr(), "", 0)

		_, err := config.Initialize(cfgPath, logger)
		return err
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
