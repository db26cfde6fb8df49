package commands

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/josephlewis42/vshell/core/vos"
)

// Touch implements a POSIX touch command.
func Touch(virtOS vos.VOS) int {
	cmd := &SimpleCommand{
		Use:   "touch [OPTION...] FILE...",
		Short: "Update the access and modification times of files to now.",
	}

	// Ignored flags to make the help look more robust. Access time isn't
	// recorded separately by the in-memory filesystem.
	cmd.Flags().Bool('a', "only change the access time")
	cmd.Flags().Bool('m', "only change the modification time")

	noCreate := cmd.Flags().BoolLong("no-create", 'c', "don't create files")

	return cmd.Run(virtOS, func() int {
		paths := cmd.Flags().Args()
		if len(paths) == 0 {
			fmt.Fprintln(virtOS.Stderr(), "touch: missing file operand")
			return 1
		}

		now := virtOS.Now()

		var anyFailed bool
		for _, path := range paths {
			if stat, err := virtOS.Stat(path); err == nil && stat.IsDir() {
				fmt.Fprintf(virtOS.Stderr(), "touch: cannot touch %q: is a directory\n", path)
				anyFailed = true
				continue
			}

			err := virtOS.Chtimes(path, now, now)
			switch {
			case errors.Is(err, fs.ErrNotExist) && !*noCreate:
				fd, err := virtOS.Create(path)
				if err != nil {
					fmt.Fprintf(virtOS.Stderr(), "touch: cannot touch %q: no such file or directory\n", path)
					anyFailed = true
					continue
				}
				fd.Close()
			case errors.Is(err, fs.ErrNotExist) && *noCreate:
				// Not an error.
			case err != nil:
				fmt.Fprintf(virtOS.Stderr(), "touch: setting times of %q: %s\n", path, err)
				anyFailed = true
			}
		}

		if anyFailed {
			return 1
		}
		return 0
	})
}

var _ vos.ProcessFunc = Touch

func init() {
	mustAddBinCmd("touch", Touch)
}
