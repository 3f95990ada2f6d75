package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJSONLinesRecorder(t *testing.T) {
	var buf bytes.Buffer
	l := NewJSONLinesRecorder(&buf)

	l.LineExecuted("echo hi")
	l.CommandStarted([]string{"echo", "hi"}, 42)
	l.BackgroundReaped(42, 1)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)

	var first Event
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &first))
	assert.Equal(t, "line", first.Type)
	assert.Equal(t, "echo hi", first.Line)
	assert.NotZero(t, first.TimestampMicros)

	var second Event
	require.NoError(t, json.Unmarshal([]byte(lines[1]), &second))
	assert.Equal(t, "command_start", second.Type)
	assert.Equal(t, []string{"echo", "hi"}, second.Argv)
	assert.Equal(t, 42, second.Pid)

	var third Event
	require.NoError(t, json.Unmarshal([]byte(lines[2]), &third))
	assert.Equal(t, "background_exit", third.Type)
	assert.Equal(t, 1, third.Status)
}

func TestRecorderErrorsIgnored(t *testing.T) {
	l := &Logger{Record: func(e *Event) error { return errors.New("disk full") }}

	// Must not panic or propagate.
	l.ParseError("bad line", errors.New("syntax error"))
}

func TestNopLogger(t *testing.T) {
	l := NewNopLogger()
	l.BackgroundStarted(1)
	l.JobTableFull(2)
}
