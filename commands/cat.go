package commands

import (
	"fmt"
	"io"

	"github.com/josephlewis42/vshell/core/vos"
)

// Cat implements a POSIX cat command.
func Cat(virtOS vos.VOS) int {
	cmd := &SimpleCommand{
		Use:   "cat [FILE...]",
		Short: "Concatenate FILE(s) to standard output.",
	}

	return cmd.Run(virtOS, func() int {
		paths := cmd.Flags().Args()
		if len(paths) == 0 {
			// Mirror the host's cat and echo stdin back.
			io.Copy(virtOS.Stdout(), virtOS.Stdin())
			return 0
		}

		var anyFailed bool
		for _, path := range paths {
			fd, err := virtOS.Open(path)
			if err != nil {
				fmt.Fprintf(virtOS.Stderr(), "cat: %s: no such file or directory\n", path)
				anyFailed = true
				continue
			}
			if stat, err := fd.Stat(); err == nil && stat.IsDir() {
				fmt.Fprintf(virtOS.Stderr(), "cat: %s: is a directory\n", path)
				fd.Close()
				anyFailed = true
				continue
			}
			io.Copy(virtOS.Stdout(), fd)
			fd.Close()
		}

		if anyFailed {
			return 1
		}
		return 0
	})
}

var _ vos.ProcessFunc = Cat

func init() {
	mustAddBinCmd("cat", Cat)
}
