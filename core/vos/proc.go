package vos

import (
	"errors"
	"fmt"
	"io/fs"
	"os/exec"
	"path/filepath"
	"runtime/debug"
	"strings"
	"sync/atomic"
	"time"

	"github.com/josephlewis42/vshell/core/logger"
)

// ProcessFunc is a "process" that can be run.
type ProcessFunc func(VOS) int

// ProcessResolver looks up an emulated process by path, it returns nil if
// no process was found.
type ProcessResolver func(path string) ProcessFunc

// EventRecorder stores emulator events in an external sink.
type EventRecorder interface {
	Record(event logger.Event) error
}

// TimeSource provides the system clock, swappable for deterministic tests.
type TimeSource func() time.Time

// SystemOS is the machine-wide state every emulated process shares.
type SystemOS struct {
	// fs holds the filesystem that is shared between ALL processes.
	fs VFS
	// utsname holds the displayed OS info including hostname.
	utsname Utsname
	// username is the name of the emulated login user.
	username string
	// pid contains the last allocated PID of the system.
	pid int32
	// processResolver looks up emulated programs.
	processResolver ProcessResolver
	// eventRecorder logs events.
	eventRecorder EventRecorder
	timeSource    TimeSource
	// Connected terminal information.
	pty PTY
}

func NewSystemOS(baseFS VFS, utsname Utsname, username string, resolver ProcessResolver, recorder EventRecorder, timeSource TimeSource) *SystemOS {
	return &SystemOS{
		fs:              baseFS,
		utsname:         utsname,
		username:        username,
		processResolver: resolver,
		eventRecorder:   recorder,
		timeSource:      timeSource,
	}
}

func (s *SystemOS) Hostname() string {
	return s.utsname.Nodename
}

func (s *SystemOS) Uname() Utsname {
	return s.utsname
}

func (s *SystemOS) Username() string {
	return s.username
}

func (s *SystemOS) Now() time.Time {
	return s.timeSource()
}

// NextPID gets a monotonically increasing PID.
func (s *SystemOS) NextPID() int {
	return int(atomic.AddInt32(&s.pid, 1))
}

// LogEvent implements VOS.LogEvent.
func (s *SystemOS) LogEvent(event logger.Event) {
	s.eventRecorder.Record(event)
}

func (s *SystemOS) SetPTY(pty PTY) {
	s.pty = pty
}

func (s *SystemOS) GetPTY() PTY {
	return s.pty
}

// InitProc creates the root process all others descend from.
func (s *SystemOS) InitProc() *ProcOS {
	return &ProcOS{
		SystemOS:       s,
		VFS:            s.fs,
		VIO:            NewNullIO(),
		VEnv:           NewMapEnv(),
		ExecutablePath: "/sbin/init",
		ProcArgs:       []string{"/sbin/init"},
		PID:            0,
		UID:            0,
		Dir:            "/",
		exec: func(_ VOS) int {
			return 0
		},
	}
}

// ProcOS is a single emulated process's view of the system.
type ProcOS struct {
	*SystemOS

	VEnv

	VFS

	VIO

	// Path to the executable that started the process, errors if blank.
	ExecutablePath string
	// ProcArgs holds command line arguments, including the command as
	// ProcArgs[0].
	ProcArgs []string
	// The process ID of the process.
	PID int
	// The user ID of the process.
	UID int
	// Dir specifies the working directory of the command.
	Dir string

	exec ProcessFunc
}

var _ VOS = (*ProcOS)(nil)

// Args implements VOS.Args.
func (p *ProcOS) Args() []string {
	return p.ProcArgs
}

// Getpid implements VOS.Getpid.
func (p *ProcOS) Getpid() int {
	return p.PID
}

// Getuid implements VOS.Getuid.
func (p *ProcOS) Getuid() int {
	return p.UID
}

// Getwd implements VOS.Getwd.
func (p *ProcOS) Getwd() string {
	return p.Dir
}

// Chdir implements VOS.Chdir.
func (p *ProcOS) Chdir(dir string) error {
	resolved := ResolvePath(p.Dir, dir)

	stat, err := p.Stat(resolved)
	switch {
	case err != nil:
		return fmt.Errorf("%s: no such file or directory", dir)
	case !stat.IsDir():
		return fmt.Errorf("%s: not a directory", dir)
	default:
		p.Dir = resolved
		return nil
	}
}

// LogInvalidInvocation implements VOS.LogInvalidInvocation.
func (p *ProcOS) LogInvalidInvocation(err error) {
	p.eventRecorder.Record(&logger.InvalidInvocation{
		Command: p.ProcArgs,
		Error:   err.Error(),
	})
}

// Run executes the process function and returns its exit status.
func (p *ProcOS) Run() (status int) {
	defer func() {
		if r := recover(); r != nil {
			p.eventRecorder.Record(&logger.Panic{
				Context:    strings.Join(p.ProcArgs, " "),
				Stacktrace: string(debug.Stack()),
			})
			fmt.Fprintf(p.Stderr(), "%s: internal error\n", p.ProcArgs[0])
			status = 2
		}

		p.eventRecorder.Record(&logger.CommandRun{
			Command:    p.ProcArgs,
			ExitStatus: status,
		})
	}()

	return p.exec(p)
}

type ProcAttr struct {
	// If Dir is non-empty, the child changes into the directory before
	// creating the process.
	Dir string
	// If Env is non-nil, it gives the environment variables for the
	// new process in the form returned by Environ.
	// If it is nil, the result of Environ will be used.
	Env []string

	// Files specifies the open files inherited by the new process.
	Files VIO
}

// StartProcess starts a new process with the program, arguments and
// attributes specified by name, argv and attr. The argv slice will become
// Args in the new process, so it normally starts with the program name.
func (p *ProcOS) StartProcess(name string, argv []string, attr *ProcAttr) (VOS, error) {
	if attr == nil {
		attr = &ProcAttr{}
	}

	if argv == nil {
		argv = []string{name}
	}

	proc := p.processResolver(name)
	if proc == nil {
		return nil, fmt.Errorf("%s: command not found", name)
	}

	var env VEnv
	if attr.Env == nil {
		env = NewMapEnvFrom(p.VEnv)
	} else {
		env = NewMapEnvFromEnvList(attr.Env)
	}

	out := &ProcOS{
		SystemOS:       p.SystemOS,
		VEnv:           env,
		ExecutablePath: name,
		ProcArgs:       argv,
		PID:            p.NextPID(),
		UID:            p.UID,
		Dir:            p.Dir,
		exec:           proc,
	}

	out.VFS = NewRelativeFs(p.SystemOS.fs, out.Getwd)

	if attr.Files == nil {
		out.VIO = NewNullIO()
	} else {
		out.VIO = attr.Files
	}

	if attr.Dir != "" {
		if err := out.Chdir(attr.Dir); err != nil {
			return nil, err
		}
	}

	return out, nil
}

// ErrNotFound is the error resulting if a path search failed to find an
// executable file.
var ErrNotFound = exec.ErrNotFound

func findExecutable(vos VOS, file string) error {
	d, err := vos.Stat(file)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return ErrNotFound
	case err != nil:
		return err
	}
	if m := d.Mode(); !m.IsDir() && m&0111 != 0 {
		return nil
	}
	return fs.ErrPermission
}

// LookPath searches for an executable named file in the directories named by
// the PATH environment variable. If file contains a slash, it is tried
// directly and the PATH is not consulted. The result may be an absolute path
// or a path relative to the current directory.
func LookPath(vos VOS, file string) (string, error) {
	if strings.Contains(file, "/") {
		err := findExecutable(vos, file)
		if err == nil {
			return file, nil
		}
		return "", err
	}
	path := vos.Getenv("PATH")
	for _, dir := range filepath.SplitList(path) {
		if dir == "" {
			// Unix shell semantics: path element "" means "."
			dir = "."
		}
		path := filepath.Join(dir, file)
		if err := findExecutable(vos, path); err == nil {
			return path, nil
		}
	}
	return "", ErrNotFound
}
