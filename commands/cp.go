package commands

import (
	"fmt"
	"path"

	"github.com/spf13/afero"

	"github.com/josephlewis42/vshell/core/vos"
)

// Cp implements a POSIX cp command.
//
// Directories are only copied with -r and never merged onto an existing
// target, files are overwritten.
func Cp(virtOS vos.VOS) int {
	cmd := &SimpleCommand{
		Use:   "cp [-r] SOURCE DEST",
		Short: "Copy SOURCE to DEST.",
	}

	recursive := cmd.Flags().BoolLong("recursive", 'r', "copy directories recursively")

	return cmd.Run(virtOS, func() int {
		args := cmd.Flags().Args()
		if len(args) != 2 {
			fmt.Fprintln(virtOS.Stderr(), "usage: cp [-r] SOURCE DEST")
			return 1
		}
		src, dst := args[0], args[1]

		srcStat, err := virtOS.Stat(src)
		if err != nil {
			fmt.Fprintf(virtOS.Stderr(), "cp: cannot stat %q: no such file or directory\n", src)
			return 1
		}

		if srcStat.IsDir() && !*recursive {
			fmt.Fprintf(virtOS.Stderr(), "cp: -r not specified; omitting directory %q\n", src)
			return 1
		}

		dstStat, dstErr := virtOS.Stat(dst)
		switch {
		case dstErr == nil && dstStat.IsDir():
			// Copy into the directory under the source's name.
			target := path.Join(dst, path.Base(path.Clean(src)))
			if srcStat.IsDir() {
				if exists, _ := afero.Exists(virtOS, target); exists {
					fmt.Fprintf(virtOS.Stderr(), "cp: target %q already exists\n", target)
					return 1
				}
			}
			if err := copyNode(virtOS, src, target); err != nil {
				fmt.Fprintf(virtOS.Stderr(), "cp: %v\n", err)
				return 1
			}

		case dstErr == nil:
			// Destination is an existing file.
			if srcStat.IsDir() {
				fmt.Fprintf(virtOS.Stderr(), "cp: cannot overwrite non-directory %q with directory %q\n", dst, src)
				return 1
			}
			if err := copyFile(virtOS, src, dst); err != nil {
				fmt.Fprintf(virtOS.Stderr(), "cp: %v\n", err)
				return 1
			}

		default:
			// Destination doesn't exist, create it. The filesystem layer
			// rejects missing parents.
			if err := copyNode(virtOS, src, dst); err != nil {
				fmt.Fprintf(virtOS.Stderr(), "cp: %v\n", err)
				return 1
			}
		}

		return 0
	})
}

func copyNode(virtOS vos.VOS, src, dst string) error {
	stat, err := virtOS.Stat(src)
	if err != nil {
		return err
	}

	if !stat.IsDir() {
		return copyFile(virtOS, src, dst)
	}

	if err := virtOS.Mkdir(dst, 0755); err != nil {
		return err
	}

	entries, err := afero.ReadDir(virtOS, src)
	if err != nil {
		return err
	}
	for _, entry := range entries {
		if err := copyNode(virtOS, path.Join(src, entry.Name()), path.Join(dst, entry.Name())); err != nil {
			return err
		}
	}
	return nil
}

func copyFile(virtOS vos.VOS, src, dst string) error {
	stat, err := virtOS.Stat(src)
	if err != nil {
		return err
	}

	data, err := afero.ReadFile(virtOS, src)
	if err != nil {
		return err
	}
	return afero.WriteFile(virtOS, dst, data, stat.Mode().Perm())
}

var _ vos.ProcessFunc = Cp

func init() {
	mustAddBinCmd("cp", Cp)
}
