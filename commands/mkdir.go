package commands

import (
	"errors"
	"fmt"
	"io/fs"
	"syscall"

	"github.com/spf13/afero"

	"github.com/josephlewis42/vshell/core/vos"
)

// Mkdir implements a POSIX mkdir command.
func Mkdir(virtOS vos.VOS) int {
	cmd := &SimpleCommand{
		Use:   "mkdir [OPTION...] DIRECTORY...",
		Short: "Create directories if they don't exist.",
	}

	parents := cmd.Flags().BoolLong("parents", 'p', "make parent directories as needed")

	return cmd.Run(virtOS, func() int {
		dirs := cmd.Flags().Args()
		if len(dirs) == 0 {
			fmt.Fprintln(virtOS.Stderr(), "mkdir: missing operand")
			return 1
		}

		var anyFailed bool
		for _, dir := range dirs {
			var err error
			if *parents {
				err = virtOS.MkdirAll(dir, fs.FileMode(0755))
			} else {
				if exists, _ := afero.Exists(virtOS, dir); exists {
					err = fs.ErrExist
				} else {
					err = virtOS.Mkdir(dir, fs.FileMode(0755))
				}
			}

			if err != nil {
				anyFailed = true
				fmt.Fprintf(virtOS.Stderr(), "mkdir: cannot create directory %q: %s\n", dir, mkdirErrText(err))
			}
		}

		if anyFailed {
			return 1
		}
		return 0
	})
}

func mkdirErrText(err error) string {
	switch {
	case errors.Is(err, fs.ErrExist):
		return "file exists"
	case errors.Is(err, fs.ErrNotExist):
		return "no such file or directory"
	case errors.Is(err, syscall.ENOTDIR):
		return "not a directory"
	default:
		return err.Error()
	}
}

var _ vos.ProcessFunc = Mkdir

func init() {
	mustAddBinCmd("mkdir", Mkdir)
}
