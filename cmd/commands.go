package cmd

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/josephlewis42/vshell/commands"
)

// commandsCmd lists the commands the emulator understands.
var commandsCmd = &cobra.Command{
	Use:   "commands",
	Short: "Show the commands the emulator supports.",
	RunE: func(cmd *cobra.Command, args []string) error {
		var names []string

		for _, entry := range commands.ListBuiltinCommands() {
			names = append(names, strings.Join(entry.Paths, ", "))
		}

		for name := range commands.AllBuiltins {
			names = append(names, "shell:"+name)
		}

		sort.Strings(names)

		for _, v := range names {
			fmt.Fprintln(cmd.OutOrStdout(), v)
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(commandsCmd)
}
