package commands

import (
	"fmt"

	"github.com/josephlewis42/vshell/core/vos"
)

// Hostname implements the hostname command.
func Hostname(virtOS vos.VOS) int {
	cmd := &SimpleCommand{
		Use:   "hostname",
		Short: "Show the system's host name.",
	}

	return cmd.Run(virtOS, func() int {
		fmt.Fprintln(virtOS.Stdout(), virtOS.Hostname())
		return 0
	})
}

var _ vos.ProcessFunc = Hostname

func init() {
	mustAddBinCmd("hostname", Hostname)
}
