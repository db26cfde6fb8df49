package commands

import (
	"fmt"

	"github.com/josephlewis42/vshell/core/vos"
)

// Whoami implements the POSIX whoami command.
func Whoami(virtOS vos.VOS) int {
	cmd := &SimpleCommand{
		Use:   "whoami",
		Short: "Print the name of the current user.",
	}

	return cmd.Run(virtOS, func() int {
		fmt.Fprintln(virtOS.Stdout(), virtOS.Username())
		return 0
	})
}

var _ vos.ProcessFunc = Whoami

func init() {
	mustAddBinCmd("whoami", Whoami)
}
