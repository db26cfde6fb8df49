package commands

import (
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/afero"

	"github.com/josephlewis42/vshell/core/vos"
)

// Find implements a subset of the POSIX find command.
//
// Predicates use find's traditional single-dash long options so they're
// parsed by hand rather than with getopt:
//
//	find [path] [-name PATTERN] [-type f|d] [-maxdepth N]
func Find(virtOS vos.VOS) int {
	args := virtOS.Args()[1:]

	startArg := "."
	sawStart := false
	var namePattern string
	hasNamePattern := false
	var typeFilter string
	maxDepth := -1

	usageErr := func(format string, a ...interface{}) int {
		err := fmt.Errorf(format, a...)
		virtOS.LogInvalidInvocation(err)
		fmt.Fprintf(virtOS.Stderr(), "find: %v\n", err)
		return 1
	}

	for i := 0; i < len(args); i++ {
		arg := args[i]
		switch {
		case !strings.HasPrefix(arg, "-") && !sawStart:
			startArg = arg
			sawStart = true

		case arg == "-name" && i+1 < len(args):
			namePattern = args[i+1]
			hasNamePattern = true
			i++

		case arg == "-type" && i+1 < len(args):
			typeFilter = args[i+1]
			if typeFilter != "f" && typeFilter != "d" {
				return usageErr("-type expects f or d")
			}
			i++

		case arg == "-maxdepth" && i+1 < len(args):
			depth, err := strconv.Atoi(args[i+1])
			if err != nil || depth < 0 {
				return usageErr("-maxdepth expects a non-negative integer")
			}
			maxDepth = depth
			i++

		default:
			return usageErr("unknown predicate or argument %q", arg)
		}
	}

	if hasNamePattern {
		if _, err := path.Match(namePattern, "probe"); err != nil {
			return usageErr("invalid -name pattern %q", namePattern)
		}
	}

	start := vos.ResolvePath(virtOS.Getwd(), startArg)
	if _, err := virtOS.Stat(start); err != nil {
		fmt.Fprintf(virtOS.Stderr(), "find: %q: no such file or directory\n", startArg)
		return 1
	}

	match := func(info os.FileInfo) bool {
		switch {
		case typeFilter == "f" && info.IsDir():
			return false
		case typeFilter == "d" && !info.IsDir():
			return false
		}
		if hasNamePattern {
			name := info.Name()
			if name == "" {
				// The root reports an empty name in the in-memory filesystem.
				name = "/"
			}
			ok, _ := path.Match(namePattern, name)
			return ok
		}
		return true
	}

	err := afero.Walk(virtOS, start, func(walkPath string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		depth := pathDepth(start, walkPath)
		if maxDepth >= 0 && depth > maxDepth {
			if info.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		if match(info) {
			fmt.Fprintln(virtOS.Stdout(), walkPath)
		}
		return nil
	})
	if err != nil {
		fmt.Fprintf(virtOS.Stderr(), "find: %v\n", err)
		return 1
	}

	return 0
}

// pathDepth counts the path components of walkPath below start.
func pathDepth(start, walkPath string) int {
	if walkPath == start {
		return 0
	}
	rel := strings.TrimPrefix(walkPath, strings.TrimSuffix(start, "/")+"/")
	return strings.Count(rel, "/") + 1
}

var _ vos.ProcessFunc = Find

func init() {
	mustAddBinCmd("find", Find)
}
