package cmd

import (
	"fmt"
	"io"
	"io/ioutil"
	"log"
	"os"
	"path"
	"path/filepath"
	"time"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/josephlewis42/vshell/commands"
	"github.com/josephlewis42/vshell/core/config"
	"github.com/josephlewis42/vshell/core/logger"
	"github.com/josephlewis42/vshell/core/vfs"
	"github.com/josephlewis42/vshell/core/vos"
)

type osVIO struct {
}

func (c *osVIO) Stderr() io.WriteCloser {
	return os.Stderr
}

func (c *osVIO) Stdout() io.WriteCloser {
	return os.Stdout
}

func (c *osVIO) Stdin() io.ReadCloser {
	return os.Stdin
}

var _ vos.VIO = (*osVIO)(nil)

var (
	vfsPath     string
	scriptPath  string
	logPath     string
	interactive bool
)

// loadVFS builds the emulated filesystem from the --vfs flag, falling back
// to the compiled-in default when the source can't be loaded.
func loadVFS(cfg *config.Configuration, session *logger.SessionLogger, warnLog *log.Logger) vos.VFS {
	if vfsPath == "" {
		session.Record(&logger.VFSLoad{Source: "default"})
		return vfs.Default(cfg.Username)
	}

	load := vfs.LoadXML
	if stat, err := os.Stat(vfsPath); err == nil && stat.IsDir() {
		load = vfs.ImportDir
	}

	fs, err := load(vfsPath)
	if err != nil {
		warnLog.Printf("couldn't load %s: %v; using the default filesystem", vfsPath, err)
		session.Record(&logger.VFSLoad{Source: vfsPath, Error: err.Error(), Fallback: true})
		return vfs.Default(cfg.Username)
	}

	session.Record(&logger.VFSLoad{Source: vfsPath})
	return fs
}

func utsnameFromConfig(cfg *config.Configuration) vos.Utsname {
	return vos.Utsname{
		Sysname:         cfg.Uname.KernelName,
		Nodename:        cfg.Uname.Nodename,
		Release:         cfg.Uname.KernelRelease,
		Version:         cfg.Uname.KernelVersion,
		Machine:         cfg.Uname.HardwarePlatform,
		OperatingSystem: cfg.Uname.OperatingSystem,
	}
}

// runCmd starts the emulator, optionally executing a startup script.
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the shell emulator.",
	Args:  cobra.ExactArgs(0),
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true

		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		warnLog := log.New(cmd.ErrOrStderr(), "vshell: ", 0)

		logRecorder := logger.NewNopLogRecorder()
		if logPath != "" {
			logFd, err := os.OpenFile(logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
			if err != nil {
				return err
			}
			defer logFd.Close()
			logRecorder = logger.NewJsonLinesLogRecorder(logFd)
		}
		session := logRecorder.NewSession()
		session.Record(&logger.SessionStart{
			User:     cfg.Username,
			Hostname: cfg.Uname.Nodename,
		})

		fs := loadVFS(cfg, session, warnLog)
		if err := commands.InstallCommands(fs); err != nil {
			return err
		}

		sysOS := vos.NewSystemOS(fs, utsnameFromConfig(cfg), cfg.Username, commands.BuiltinProcessResolver, session, time.Now)
		if interactive || scriptPath == "" {
			sysOS.SetPTY(vos.PTY{
				Width:  80,
				Height: 40,
				Term:   "xterm",
				IsPTY:  true,
			})
		}

		initProc := sysOS.InitProc()
		if cfg.Username != "root" {
			initProc.UID = 1000
		}

		env := initProc.Environ()
		if cfg.Prompt != "" {
			env = append(env, commands.EnvPrompt+"="+cfg.Prompt)
		}

		status, err := runScript(cfg, fs, initProc, env, cmd.OutOrStdout())
		if err != nil {
			return err
		}

		if status == 0 && (interactive || scriptPath == "") {
			if cfg.Motd != "" {
				fmt.Fprintln(cmd.OutOrStdout(), cfg.Motd)
			}
			status, err = runShell(initProc, env, nil)
			if err != nil {
				return err
			}
		}

		if status != 0 {
			cmd.SilenceErrors = true
			return &exitError{status: status}
		}
		return nil
	},
}

// runScript copies the host-side startup script into the emulated
// filesystem and executes it there. The emulated shell never touches the
// host directly.
func runScript(cfg *config.Configuration, fs vos.VFS, initProc *vos.ProcOS, env []string, stdout io.Writer) (int, error) {
	if scriptPath == "" {
		return 0, nil
	}

	contents, err := ioutil.ReadFile(scriptPath)
	if err != nil {
		return 0, err
	}

	vfsScriptPath := path.Join("/tmp", filepath.Base(scriptPath))
	if err := fs.MkdirAll("/tmp", 0755); err != nil {
		return 0, err
	}
	if err := afero.WriteFile(fs, vfsScriptPath, contents, 0755); err != nil {
		return 0, err
	}

	return runShell(initProc, env, []string{"sh", vfsScriptPath})
}

// runShell starts /bin/sh in the emulator. A nil argv runs it
// interactively.
func runShell(initProc *vos.ProcOS, env []string, argv []string) (int, error) {
	if argv == nil {
		argv = []string{"sh"}
	}

	proc, err := initProc.StartProcess("/bin/sh", argv, &vos.ProcAttr{
		Env:   env,
		Files: &osVIO{},
	})
	if err != nil {
		return 0, err
	}

	return proc.Run(), nil
}

func init() {
	runCmd.Flags().StringVar(&vfsPath, "vfs", "", "XML filesystem descriptor or host directory to import")
	runCmd.Flags().StringVar(&scriptPath, "script", "", "startup script to execute in the emulator")
	runCmd.Flags().StringVar(&logPath, "log", "", "append interaction events to this newline delimited JSON file")
	runCmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "start an interactive shell after the startup script")

	rootCmd.AddCommand(runCmd)
}
