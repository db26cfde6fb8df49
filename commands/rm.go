package commands

import (
	"fmt"

	"github.com/josephlewis42/vshell/core/vos"
)

// Rm implements a POSIX rm command.
func Rm(virtOS vos.VOS) int {
	cmd := &SimpleCommand{
		Use:   "rm [OPTION...] FILE...",
		Short: "Remove files or directories.",
	}

	recursive := cmd.Flags().BoolLong("recursive", 'r', "remove directories and their contents recursively")
	force := cmd.Flags().BoolLong("force", 'f', "ignore nonexistent files, never prompt")

	return cmd.Run(virtOS, func() int {
		paths := cmd.Flags().Args()
		if len(paths) == 0 {
			if *force {
				return 0
			}
			fmt.Fprintln(virtOS.Stderr(), "rm: missing operand")
			return 1
		}

		var anyFailed bool
		for _, path := range paths {
			stat, err := virtOS.Stat(path)
			switch {
			case err != nil:
				if !*force {
					fmt.Fprintf(virtOS.Stderr(), "rm: cannot remove %q: no such file or directory\n", path)
					anyFailed = true
				}
				continue
			case stat.IsDir() && !*recursive:
				fmt.Fprintf(virtOS.Stderr(), "rm: cannot remove %q: is a directory\n", path)
				anyFailed = true
				continue
			}

			if *recursive {
				err = virtOS.RemoveAll(path)
			} else {
				err = virtOS.Remove(path)
			}
			if err != nil {
				fmt.Fprintf(virtOS.Stderr(), "rm: cannot remove %q: %s\n", path, err)
				anyFailed = true
			}
		}

		if anyFailed {
			return 1
		}
		return 0
	})
}

var _ vos.ProcessFunc = Rm

func init() {
	mustAddBinCmd("rm", Rm)
}
