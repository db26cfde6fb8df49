package commands

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/josephlewis42/vshell/core/vos"
)

// Ls implements a minimal UNIX ls command over the virtual filesystem.
//
// Directories get a trailing slash so listings read well without color,
// entries sort case-insensitively and print on a single line.
func Ls(virtOS vos.VOS) int {
	cmd := &SimpleCommand{
		Use:   "ls [OPTION]... [FILE]...",
		Short: "List information about the FILEs (the current directory by default).",
	}

	listAll := cmd.Flags().Bool('a', "don't ignore entries starting with .")

	var color ColorPrinter
	color.Init(cmd.Flags(), virtOS)

	return cmd.Run(virtOS, func() int {
		pathsToList := cmd.Flags().Args()
		if len(pathsToList) == 0 {
			pathsToList = append(pathsToList, ".")
		}
		sort.Strings(pathsToList)

		showDirectoryNames := len(pathsToList) > 1

		exitCode := 0
		for i, listPath := range pathsToList {
			stat, err := virtOS.Stat(listPath)
			if err != nil {
				fmt.Fprintf(virtOS.Stderr(), "ls: %s: no such file or directory\n", listPath)
				exitCode = 1
				continue
			}

			// ls of a file prints its bare name.
			if !stat.IsDir() {
				fmt.Fprintln(virtOS.Stdout(), displayName(&color, stat))
				continue
			}

			file, err := virtOS.Open(listPath)
			if err != nil {
				fmt.Fprintf(virtOS.Stderr(), "ls: %s: %v\n", listPath, err)
				exitCode = 1
				continue
			}
			entries, err := file.Readdir(-1)
			file.Close()
			if err != nil {
				fmt.Fprintf(virtOS.Stderr(), "ls: %s: %v\n", listPath, err)
				exitCode = 1
				continue
			}

			var kept []os.FileInfo
			for _, entry := range entries {
				if !*listAll && strings.HasPrefix(entry.Name(), ".") {
					continue
				}
				kept = append(kept, entry)
			}
			sort.Slice(kept, func(i, j int) bool {
				return strings.ToLower(kept[i].Name()) < strings.ToLower(kept[j].Name())
			})

			var names []string
			for _, entry := range kept {
				names = append(names, displayName(&color, entry))
			}

			if showDirectoryNames {
				if i > 0 {
					fmt.Fprintln(virtOS.Stdout())
				}
				fmt.Fprintf(virtOS.Stdout(), "%s:\n", listPath)
			}
			fmt.Fprintln(virtOS.Stdout(), strings.Join(names, "  "))
		}

		return exitCode
	})
}

func displayName(color *ColorPrinter, entry os.FileInfo) string {
	switch {
	case entry.IsDir():
		return color.Sprintf(ColorBoldBlue, "%s/", entry.Name())
	case entry.Mode().Perm()&0111 > 0:
		return color.Sprintf(ColorBoldGreen, "%s", entry.Name())
	default:
		return entry.Name()
	}
}

var _ vos.ProcessFunc = Ls

func init() {
	mustAddBinCmd("ls", Ls)
}
