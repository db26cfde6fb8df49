// Package vostest provides a deterministic virtual OS for command tests.
package vostest

import (
	"bytes"
	"io"
	"time"

	"github.com/spf13/afero"

	"github.com/josephlewis42/vshell/core/logger"
	"github.com/josephlewis42/vshell/core/vos"
)

type NopEventRecorder struct{}

func (*NopEventRecorder) Record(event logger.Event) error {
	return nil
}

func SingleProcessResolver(process vos.ProcessFunc) vos.ProcessResolver {
	return func(path string) vos.ProcessFunc {
		return process
	}
}

// Utsname is the fixed system identification deterministic OSes report.
func Utsname() vos.Utsname {
	return vos.Utsname{
		Sysname:         "Linux",
		Nodename:        "vshell-test",
		Release:         "5.4.0-81-generic",
		Version:         "#91-Ubuntu SMP Thu Jul 15 19:09:17 UTC 2021",
		Machine:         "x86_64",
		OperatingSystem: "GNU/Linux",
	}
}

// NewDeterministicOS creates a VOS with a fixed clock, utsname and user so
// command output can be compared against golden files.
func NewDeterministicOS(resolver vos.ProcessResolver) vos.VOS {
	timeSource := func() time.Time {
		// Go's reference timestamp with a different value in each position.
		return time.Date(2006, 1, 2, 3, 4, 5, 0, time.UTC)
	}

	sysOS := vos.NewSystemOS(afero.NewMemMapFs(), Utsname(), "testuser", resolver, &NopEventRecorder{}, timeSource)
	sysOS.SetPTY(vos.PTY{})

	return sysOS.InitProc()
}

// Cmd is similar to exec.Cmd.
type Cmd struct {
	// Process function
	Process vos.ProcessFunc
	// Process arguments, the first argument should be the process name.
	Argv []string
	// If Dir is non-empty, the child changes into the directory before
	// creating the process.
	Dir string
	// If Env is non-empty, it gives the environment variables for the
	// new process in the form returned by Environ.
	// If it is nil, the result of Environ will be used.
	Env []string

	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer

	// Resolver looks up programs the command starts. The default resolves
	// every path to Process.
	Resolver vos.ProcessResolver

	ExitStatus int

	// Setup runs against the new process before it starts, useful for
	// seeding the filesystem.
	Setup func(vos.VOS) error
}

func Command(process vos.ProcessFunc, name string, arg ...string) *Cmd {
	return &Cmd{
		Process: process,
		Argv:    append([]string{name}, arg...),
	}
}

func (c *Cmd) CombinedOutput() ([]byte, error) {
	// stdout, stderr
	buf := &bytes.Buffer{}
	c.Stdout = buf
	c.Stderr = buf

	err := c.Run()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Run starts the command and waits for it to complete.
func (c *Cmd) Run() error {
	resolver := c.Resolver
	if resolver == nil {
		resolver = SingleProcessResolver(c.Process)
	}

	deterministicOS := NewDeterministicOS(resolver)
	runner, err := deterministicOS.StartProcess(c.Argv[0], c.Argv, &vos.ProcAttr{
		Dir:   c.Dir,
		Env:   c.Env,
		Files: vos.NewVIOAdapter(c.Stdin, c.Stdout, c.Stderr),
	})
	if err != nil {
		return err
	}

	if c.Setup != nil {
		if err := c.Setup(runner); err != nil {
			return err
		}
	}

	c.ExitStatus = runner.Run()
	return nil
}
