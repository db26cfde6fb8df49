package commands

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"regexp"
	"strings"

	"github.com/abiosoft/readline"
	shlex "github.com/anmitsu/go-shlex"

	"github.com/josephlewis42/vshell/core/logger"
	"github.com/josephlewis42/vshell/core/vos"
)

const (
	EnvHome            = "HOME"
	EnvPWD             = "PWD"
	EnvPath            = "PATH"
	EnvPrompt          = "PS1"
	EnvHostname        = "HOSTNAME"
	EnvUser            = "USER"
	EnvUID             = "UID"
	DefaultColorPrompt = `\033[01;32m\u@\h\033[00m:\033[01;34m\w\033[00m\$ `
	DefaultPrompt      = `\u@\h:\w\$ `
	DefaultPath        = "/usr/local/bin:/usr/bin:/bin"
)

var (
	envRegex = regexp.MustCompile(`(\$\$|\$\?|\$\w+)`)
)

type Shell struct {
	VirtualOS vos.VOS
	Readline  *readline.Instance

	lastRet int
	history []string

	// Set to true to quit the shell
	Quit bool
}

func RunShell(virtualOS vos.VOS) int {

	s, err := NewShell(virtualOS)
	if err != nil {
		fmt.Fprintf(virtualOS.Stderr(), "sh: %s\n", err)
		return 1
	}

	cmd := &SimpleCommand{
		Use:       "sh [options] [script]",
		Short:     "Standard command interpreter for the system. Currently being changed to conform with the POSIX 1003.2 standard.",
		NeverBail: true,
	}
	commandFlag := cmd.Flags().String('c', "", "Command")

	return cmd.Run(virtualOS, func() int {
		if *commandFlag != "" {
			return s.RunCommand(*commandFlag)
		}

		if scripts := cmd.Flags().Args(); len(scripts) > 0 {
			return s.RunScript(scripts[0])
		}

		return s.runInteractive()
	})
}

func NewShell(virtualOS vos.VOS) (*Shell, error) {

	cfg := &readline.Config{
		Stdin:  readline.NewCancelableStdin(virtualOS.Stdin()),
		Stdout: virtualOS.Stdout(),
		Stderr: virtualOS.Stderr(),
		FuncGetWidth: func() int {
			return virtualOS.GetPTY().Width
		},
		FuncIsTerminal: func() bool {
			return virtualOS.GetPTY().IsPTY
		},
	}

	if err := cfg.Init(); err != nil {
		return nil, err
	}

	readline, err := readline.NewEx(cfg)
	if err != nil {
		return nil, err
	}

	shell := &Shell{
		VirtualOS: virtualOS,
		Readline:  readline,
	}

	shell.Init(virtualOS.Username())

	return shell, nil
}

// Init sets up the environment similar to login + source ~/.bashrc.
func (s *Shell) Init(username string) {
	var homedir string
	if s.VirtualOS.Getuid() == 0 {
		homedir = "/root"
	} else {
		homedir = fmt.Sprintf("/home/%s", username)
	}
	s.VirtualOS.Setenv(EnvHome, homedir)

	// Use chdir in case the dir doesn't exist.
	_ = s.VirtualOS.Chdir(homedir)
	host := s.VirtualOS.Hostname()
	s.VirtualOS.Setenv(EnvHostname, host)
	if s.VirtualOS.Getenv(EnvPrompt) == "" {
		if s.VirtualOS.GetPTY().IsPTY {
			s.VirtualOS.Setenv(EnvPrompt, DefaultColorPrompt)
		} else {
			s.VirtualOS.Setenv(EnvPrompt, DefaultPrompt)
		}
	}
	s.VirtualOS.Setenv(EnvPWD, s.VirtualOS.Getwd())
	s.VirtualOS.Setenv(EnvUser, username)
	s.VirtualOS.Setenv(EnvUID, fmt.Sprintf("%d", s.VirtualOS.Getuid()))
	if s.VirtualOS.Getenv(EnvPath) == "" {
		s.VirtualOS.Setenv(EnvPath, DefaultPath)
	}
}

func (s *Shell) prompt() string {
	prompt := s.VirtualOS.Getenv(EnvPrompt)
	if prompt == "" {
		prompt = DefaultPrompt
	}
	prompt = strings.ReplaceAll(prompt, `\u`, s.VirtualOS.Getenv(EnvUser))
	prompt = strings.ReplaceAll(prompt, `\h`, s.VirtualOS.Getenv(EnvHostname))

	pwd := s.VirtualOS.Getwd()
	home := s.VirtualOS.Getenv(EnvHome)
	if strings.HasPrefix(pwd, home) {
		pwd = "~" + strings.TrimPrefix(pwd, home)
	}

	prompt = strings.ReplaceAll(prompt, `\w`, pwd)

	if s.VirtualOS.Getuid() == 0 {
		prompt = strings.ReplaceAll(prompt, `\$`, "#")
	} else {
		prompt = strings.ReplaceAll(prompt, `\$`, "$")
	}

	return unescape(prompt)
}

func (s *Shell) runInteractive() int {
	for !s.Quit {
		s.Readline.SetPrompt(s.prompt())
		line, err := s.Readline.Readline()

		switch {
		case err == io.EOF:
			return s.lastRet // Input closed, quit.

		case err == readline.ErrInterrupt:
			// Interrupt clears line.
			continue
		case err != nil:
			log.Printf("Error readline: %v", err)
			continue

		case len(strings.TrimSpace(line)) == 0:
			continue // empty line

		default:
			s.RunCommand(line)
		}
	}
	return s.lastRet
}

// RunCommand interprets a single command line: the first token names a
// builtin or an executable on the PATH, the rest become its arguments.
func (s *Shell) RunCommand(line string) int {
	s.history = append(s.history, line)

	tokens, err := shlex.Split(line, true)
	if err != nil {
		fmt.Fprintf(s.VirtualOS.Stderr(), "sh: syntax error: %v\n", err)
		s.lastRet = 2
		return s.lastRet
	}

	args := s.expandArgs(tokens)
	if len(args) == 0 || args[0] == "" {
		return s.lastRet
	}

	// Execute builtins
	if builtin, ok := AllBuiltins[args[0]]; ok {
		s.lastRet = builtin.Main(s, args)
		return s.lastRet
	}

	// Execute program
	execPath := args[0]
	if !strings.Contains(execPath, "/") {
		// Resolve bare names against the PATH; unresolvable names still go
		// to the process table so the error reads "command not found".
		if found, err := vos.LookPath(s.VirtualOS, execPath); err == nil {
			execPath = found
		}
	}

	proc, err := s.VirtualOS.StartProcess(execPath, args, &vos.ProcAttr{
		Env:   s.VirtualOS.Environ(),
		Files: vos.NewVIOAdapter(s.VirtualOS.Stdin(), s.VirtualOS.Stdout(), s.VirtualOS.Stderr()),
	})
	if err != nil {
		s.VirtualOS.LogEvent(&logger.UnknownCommand{Command: args})
		fmt.Fprintf(s.VirtualOS.Stderr(), "sh: %s\n", err)
		s.lastRet = 127
		return s.lastRet
	}

	s.lastRet = proc.Run()
	return s.lastRet
}

// RunScript executes a script line by line, echoing each command after the
// prompt the way an interactive user would see it. Execution stops at the
// first command that exits nonzero.
func (s *Shell) RunScript(path string) int {
	fd, err := s.VirtualOS.Open(path)
	if err != nil {
		fmt.Fprintf(s.VirtualOS.Stderr(), "sh: %s: no such file or directory\n", path)
		return 127
	}
	defer fd.Close()

	scanner := bufio.NewScanner(fd)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		fmt.Fprintf(s.VirtualOS.Stdout(), "%s%s\n", s.prompt(), line)

		s.RunCommand(line)
		switch {
		case s.Quit:
			return s.lastRet

		case s.lastRet != 0:
			fmt.Fprintf(s.VirtualOS.Stderr(), "sh: %s: stopping at line %d\n", path, lineNo)
			s.VirtualOS.LogEvent(&logger.ScriptStop{
				Path:       path,
				Line:       lineNo,
				ExitStatus: s.lastRet,
			})
			return s.lastRet
		}
	}
	if err := scanner.Err(); err != nil {
		fmt.Fprintf(s.VirtualOS.Stderr(), "sh: %s: %v\n", path, err)
		return 1
	}

	return 0
}

// expandArgs substitutes environment variables in each token. Quote removal
// already happened during splitting, so expansion applies uniformly.
func (s *Shell) expandArgs(tokens []string) []string {
	env := s.cmdEnv()

	var out []string
	for _, token := range tokens {
		out = append(out, envRegex.ReplaceAllStringFunc(token, func(match string) string {
			return env.Getenv(strings.TrimPrefix(match, "$"))
		}))
	}
	return out
}

// cmdEnv returns a new copy of the VOS environment with special variables set
// for shell expansion.
func (s *Shell) cmdEnv() vos.VEnv {
	mapEnv := vos.NewMapEnvFromEnvList(s.VirtualOS.Environ())

	// Shell only arguments
	mapEnv.Setenv("$", fmt.Sprintf("%d", s.VirtualOS.Getpid()))
	mapEnv.Setenv("?", fmt.Sprintf("%d", uint8(s.lastRet)))
	mapEnv.Setenv("WIDTH", fmt.Sprintf("%d", s.VirtualOS.GetPTY().Width))
	mapEnv.Setenv("HEIGHT", fmt.Sprintf("%d", s.VirtualOS.GetPTY().Height))

	return mapEnv
}

func init() {
	mustAddBinCmd("sh", RunShell)
}
