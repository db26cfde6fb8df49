package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJsonLinesRoundTrip(t *testing.T) {
	buf := &bytes.Buffer{}
	log := NewJsonLinesLogRecorder(buf)

	session := log.NewSession()
	require.NoError(t, session.Record(&SessionStart{User: "user", Hostname: "host"}))
	require.NoError(t, session.Record(&CommandRun{Command: []string{"ls", "-a"}, ExitStatus: 0}))
	require.NoError(t, session.Record(&ScriptStop{Path: "/tmp/test.emu", Line: 4, ExitStatus: 127}))

	var entries []*RawLogEntry
	require.NoError(t, ReadJSONLinesLog(buf, func(le *RawLogEntry) {
		entries = append(entries, le)
	}))

	require.Len(t, entries, 3)
	assert.Equal(t, "session_start", entries[0].EventType)
	assert.Equal(t, "command_run", entries[1].EventType)
	assert.Equal(t, "script_stop", entries[2].EventType)

	// All entries carry the session's ID.
	for _, entry := range entries {
		assert.Equal(t, session.SessionID(), entry.SessionID)
		assert.NotZero(t, entry.TimestampMicros)
	}

	var stop ScriptStop
	require.NoError(t, json.Unmarshal(entries[2].Event, &stop))
	assert.Equal(t, 4, stop.Line)
	assert.Equal(t, 127, stop.ExitStatus)
}

func TestSessionIDsAreUnique(t *testing.T) {
	log := NewNopLogRecorder()

	a := log.NewSession()
	b := log.NewSession()
	assert.NotEqual(t, a.SessionID(), b.SessionID())
}

func TestNopLogRecorder(t *testing.T) {
	log := NewNopLogRecorder()
	assert.NoError(t, log.NewSession().Record(&Panic{Context: "x"}))
}
