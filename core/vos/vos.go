package vos

import (
	"time"

	"github.com/josephlewis42/vshell/core/logger"
)

// Utsname mirrors the fields of the POSIX utsname struct for the
// emulated machine.
type Utsname struct {
	// Sysname is the kernel name e.g. "Linux".
	Sysname string
	// Nodename is the hostname of the emulated machine.
	Nodename string
	// Release is the kernel release e.g. "4.15.0-147-generic".
	Release string
	// Version is the kernel version string.
	Version string
	// Machine is the hardware name e.g. "x86_64".
	Machine string
	// OperatingSystem e.g. "GNU/Linux".
	OperatingSystem string
}

// PTY holds information about the attached terminal, if any.
type PTY struct {
	Width  int
	Height int
	Term   string
	IsPTY  bool
}

// VOS provides a virtual OS interface that emulated commands run against.
type VOS interface {
	VEnv
	VIO
	VFS
	VProc

	// Uname returns the emulated system identification.
	Uname() Utsname
	// Hostname returns the emulated machine's hostname.
	Hostname() string
	// Username returns the name of the emulated login user.
	Username() string
	// Now returns the current time from the system clock, which may be
	// fixed for tests.
	Now() time.Time

	SetPTY(PTY)
	GetPTY() PTY

	// LogInvalidInvocation records arguments that commands couldn't
	// understand, usually signaling gaps in the emulation.
	LogInvalidInvocation(err error)
	// LogEvent records a structured emulator event.
	LogEvent(event logger.Event)

	StartProcess(name string, argv []string, attr *ProcAttr) (VOS, error)
}

// VProc holds the process-local state of an emulated command.
type VProc interface {
	// Args holds command line arguments, including the command as Args[0].
	Args() []string
	// Getpid returns the process ID of the emulated process.
	Getpid() int
	// Getuid returns the user ID of the emulated process.
	Getuid() int
	// Getwd returns the working directory of the process.
	Getwd() string
	// Chdir changes the working directory of the process.
	Chdir(dir string) error
	// Run executes the process and returns its exit code.
	Run() int
}
