package commands

import (
	"fmt"
	"io"
	"path"
	"sort"
	"strings"

	"github.com/fatih/color"
	getopt "github.com/pborman/getopt/v2"
	"github.com/spf13/afero"

	"github.com/josephlewis42/vshell/core/vos"
)

// AllCommands holds all registered commands keyed by install path.
var AllCommands = make(map[string]vos.ProcessFunc)

// addBinCmd adds a command under /bin and /usr/bin.
func addBinCmd(name string, cmd vos.ProcessFunc) {
	AllCommands[path.Join("/bin", name)] = cmd
	AllCommands[path.Join("/usr/bin", name)] = cmd
}

// mustAddBinCmd is like addBinCmd but panics if the name is taken.
func mustAddBinCmd(name string, cmd vos.ProcessFunc) {
	if _, ok := AllCommands[path.Join("/bin", name)]; ok {
		panic(fmt.Sprintf("duplicate command: %q", name))
	}

	addBinCmd(name, cmd)
}

// BuiltinProcessResolver resolves commands registered in AllCommands.
// Bare names fall back to a /bin lookup so resolution works even before
// the PATH is populated.
func BuiltinProcessResolver(progPath string) vos.ProcessFunc {
	if cmd, ok := AllCommands[progPath]; ok {
		return cmd
	}

	if !strings.Contains(progPath, "/") {
		if cmd, ok := AllCommands[path.Join("/bin", progPath)]; ok {
			return cmd
		}
	}

	return nil
}

var _ vos.ProcessResolver = BuiltinProcessResolver

// CommandEntry describes one registered command.
type CommandEntry struct {
	// Name is the bare command name.
	Name string
	// Paths are the locations the command is installed at.
	Paths []string
	Proc  vos.ProcessFunc
}

// ListBuiltinCommands returns all registered commands sorted by name.
func ListBuiltinCommands() []CommandEntry {
	byName := make(map[string]*CommandEntry)
	for installPath, proc := range AllCommands {
		name := path.Base(installPath)
		entry, ok := byName[name]
		if !ok {
			entry = &CommandEntry{Name: name, Proc: proc}
			byName[name] = entry
		}
		entry.Paths = append(entry.Paths, installPath)
	}

	var out []CommandEntry
	for _, entry := range byName {
		sort.Strings(entry.Paths)
		out = append(out, *entry)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Name < out[j].Name
	})
	return out
}

// InstallCommands creates executable stub files in the VFS for every
// registered command so path lookups and directory listings see them.
func InstallCommands(fs vos.VFS) error {
	for installPath := range AllCommands {
		if exists, _ := afero.Exists(fs, installPath); exists {
			continue
		}
		if err := fs.MkdirAll(path.Dir(installPath), 0755); err != nil {
			return err
		}
		if err := afero.WriteFile(fs, installPath, []byte("#!/bin/sh\n"), 0755); err != nil {
			return err
		}
	}
	return nil
}

type SimpleCommand struct {
	// Use holds a one line usage string.
	Use string
	// Short holds a one line description of the command.
	Short string
	// ShowHelp sets whether help is displayed or not.
	// If this is non-nil when Run() is called, then the default help flag
	// isn't added.
	ShowHelp *bool
	// NeverBail skips interacting with stdout/stderr on failure and
	// always runs the callback.
	NeverBail bool

	flags *getopt.Set
}

// Flags gets the command's flag set.
func (s *SimpleCommand) Flags() *getopt.Set {
	if s.flags == nil {
		s.flags = getopt.New()
	}

	return s.flags
}

// PrintHelp writes help for the command to the given writer.
func (s *SimpleCommand) PrintHelp(w io.Writer) {
	fmt.Fprint(w, "usage: ")
	fmt.Fprintln(w, s.Use)
	fmt.Fprintln(w, s.Short)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	s.Flags().PrintOptions(w)
}

// Run the command, if flag parsing was successful call the callback.
func (s *SimpleCommand) Run(virtOS vos.VOS, callback func() int) int {
	opts := s.Flags()

	// Add help flag if not overridden.
	if s.ShowHelp == nil {
		s.ShowHelp = opts.BoolLong("help", 'h', "show this help and exit")
	}

	err := opts.Getopt(virtOS.Args(), nil)
	if err != nil {
		virtOS.LogInvalidInvocation(err)
	}

	if err != nil && !s.NeverBail {
		fmt.Fprintf(virtOS.Stderr(), "error: %s\n\n", err)

		s.PrintHelp(virtOS.Stdout())
		return 1
	}

	if *s.ShowHelp {
		s.PrintHelp(virtOS.Stdout())
		return 0
	}

	return callback()
}

// RunE is like Run for callbacks that return errors. Errors are reported on
// stderr under the command's name and become exit status 1.
func (s *SimpleCommand) RunE(virtOS vos.VOS, callback func() error) int {
	return s.Run(virtOS, func() int {
		if err := callback(); err != nil {
			name := strings.SplitN(s.Use, " ", 2)[0]
			fmt.Fprintf(virtOS.Stderr(), "%s: %v\n", name, err)
			return 1
		}
		return 0
	})
}

const (
	colorAlways = "always"
	colorAuto   = "auto"
	colorNever  = "never"
)

var (
	ColorBoldBlue  = color.New(color.FgBlue, color.Bold)
	ColorBoldGreen = color.New(color.FgGreen, color.Bold)
)

type ColorPrinter struct {
	value  *string
	virtOS vos.VOS
}

// Init sets up the flag and virtual OS to determine the color output.
func (c *ColorPrinter) Init(flags *getopt.Set, virtOS vos.VOS) {
	c.virtOS = virtOS
	c.value = flags.EnumLong(
		"color",
		rune(0), // No short flag.
		[]string{colorAlways, colorAuto, colorNever},
		colorAuto,
		"colorize the output (always|auto|never)")
}

func (c *ColorPrinter) ShouldColor() bool {
	switch {
	case *c.value == colorNever:
		return false
	case *c.value == colorAlways:
		return true
	default:
		return c.virtOS.GetPTY().IsPTY
	}
}

func (c *ColorPrinter) Sprintf(color *color.Color, format string, a ...interface{}) string {
	if c.ShouldColor() {
		return color.Sprintf(format, a...)
	}
	return fmt.Sprintf(format, a...)
}
