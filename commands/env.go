package commands

import (
	"fmt"

	"github.com/josephlewis42/vshell/core/vos"
)

// Env implements a basic env command that prints the environment.
func Env(virtOS vos.VOS) int {
	cmd := &SimpleCommand{
		Use:   "env",
		Short: "Print the current environment.",
	}

	return cmd.Run(virtOS, func() int {
		for _, kv := range virtOS.Environ() {
			fmt.Fprintln(virtOS.Stdout(), kv)
		}
		return 0
	})
}

var _ vos.ProcessFunc = Env

func init() {
	mustAddBinCmd("env", Env)
}
