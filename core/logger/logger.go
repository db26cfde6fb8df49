// Package logger captures emulator interaction events as newline delimited
// JSON so sessions can be audited after the fact.
package logger

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
)

// Event is a typed payload recorded in a LogEntry.
type Event interface {
	// EventType names the event for the log entry envelope.
	EventType() string
}

// LogEntry is the envelope for a single logged event.
type LogEntry struct {
	// TimestampMicros is the time of the event in microseconds since
	// the unix epoch.
	TimestampMicros int64  `json:"timestamp_micros"`
	SessionID       string `json:"session_id,omitempty"`
	EventType       string `json:"event_type"`
	Event           Event  `json:"event"`
}

// SessionStart records the beginning of an emulator session.
type SessionStart struct {
	User     string `json:"user"`
	Hostname string `json:"hostname"`
}

func (*SessionStart) EventType() string { return "session_start" }

// VFSLoad records the result of loading the virtual filesystem.
type VFSLoad struct {
	Source string `json:"source"`
	Error  string `json:"error,omitempty"`
	// Fallback is true when the default filesystem was used instead.
	Fallback bool `json:"fallback,omitempty"`
}

func (*VFSLoad) EventType() string { return "vfs_load" }

// CommandRun records a completed emulated process.
type CommandRun struct {
	Command    []string `json:"command"`
	ExitStatus int      `json:"exit_status"`
}

func (*CommandRun) EventType() string { return "command_run" }

// InvalidInvocation records arguments a command couldn't understand.
type InvalidInvocation struct {
	Command []string `json:"command"`
	Error   string   `json:"error"`
}

func (*InvalidInvocation) EventType() string { return "invalid_invocation" }

// UnknownCommand records a lookup for a program the emulator doesn't have.
type UnknownCommand struct {
	Command []string `json:"command"`
}

func (*UnknownCommand) EventType() string { return "unknown_command" }

// ScriptStop records a startup script aborting at a failing line.
type ScriptStop struct {
	Path string `json:"path"`
	// Line is 1-based.
	Line       int `json:"line"`
	ExitStatus int `json:"exit_status"`
}

func (*ScriptStop) EventType() string { return "script_stop" }

// Panic records a crash inside an emulated command.
type Panic struct {
	Context    string `json:"context"`
	Stacktrace string `json:"stacktrace"`
}

func (*Panic) EventType() string { return "panic" }

// LogRecorder is a callback that stores entries in an external datastore.
type LogRecorder func(le *LogEntry) error

// Logger captures interaction event logs for the emulator.
type Logger struct {
	Record     LogRecorder
	timeSource func() time.Time
}

// NewJsonLinesLogRecorder creates a Logger that exports logs in newline
// delimited JSON object format.
func NewJsonLinesLogRecorder(w io.Writer) *Logger {
	return &Logger{
		Record: func(le *LogEntry) error {
			entry, err := json.Marshal(le)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(w, string(entry))
			return err
		},
		timeSource: time.Now,
	}
}

// NewNopLogRecorder creates a Logger that discards everything.
func NewNopLogRecorder() *Logger {
	return &Logger{
		Record:     func(le *LogEntry) error { return nil },
		timeSource: time.Now,
	}
}

func (l *Logger) recordEvent(sessionID string, event Event) error {
	return l.Record(&LogEntry{
		TimestampMicros: l.timeSource().UnixNano() / int64(time.Microsecond),
		SessionID:       sessionID,
		EventType:       event.EventType(),
		Event:           event,
	})
}

// NewSession creates a logger with an attached unique session ID.
func (l *Logger) NewSession() *SessionLogger {
	return &SessionLogger{Logger: l, sessionID: uuid.NewString()}
}

// SessionLogger logs events with a shared session ID.
type SessionLogger struct {
	*Logger
	sessionID string
}

// SessionID returns the unique ID of the session.
func (l *SessionLogger) SessionID() string {
	return l.sessionID
}

func (l *SessionLogger) Record(event Event) error {
	return l.recordEvent(l.sessionID, event)
}

// ReadJSONLinesLog parses a newline delimited JSON log. Event payloads are
// delivered as raw JSON because entries are decoded by type at read time.
func ReadJSONLinesLog(r io.Reader, handler func(le *RawLogEntry)) error {
	decoder := json.NewDecoder(r)
	for decoder.More() {
		var entry RawLogEntry
		if err := decoder.Decode(&entry); err != nil {
			return err
		}

		handler(&entry)
	}
	return nil
}

// RawLogEntry is the read-side counterpart of LogEntry.
type RawLogEntry struct {
	TimestampMicros int64           `json:"timestamp_micros"`
	SessionID       string          `json:"session_id,omitempty"`
	EventType       string          `json:"event_type"`
	Event           json.RawMessage `json:"event"`
}
