// Package logger is a standardized event logging framework for the
// interpreter. Events are interpreter activity, not command output; they are
// meant for later analysis of a session.
package logger

import (
	"encoding/json"
	"fmt"
	"io"
	"time"
)

// Event is one interpreter activity record.
type Event struct {
	TimestampMicros int64  `json:"timestamp_micros"`
	Type            string `json:"type"`

	Line   string   `json:"line,omitempty"`
	Argv   []string `json:"argv,omitempty"`
	Pid    int      `json:"pid,omitempty"`
	Status int      `json:"status,omitempty"`
	Error  string   `json:"error,omitempty"`
}

// Recorder is a callback that stores events in an external datastore.
type Recorder func(e *Event) error

// Logger captures interpreter activity events.
type Logger struct {
	Record Recorder
}

// NewJSONLinesRecorder creates a Logger that exports events in newline
// delimited JSON object format.
func NewJSONLinesRecorder(w io.Writer) *Logger {
	return &Logger{
		Record: func(e *Event) error {
			entry, err := json.Marshal(e)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(w, string(entry))
			return err
		},
	}
}

// NewNopLogger creates a Logger that discards all events.
func NewNopLogger() *Logger {
	return &Logger{
		Record: func(e *Event) error { return nil },
	}
}

// record stamps and stores the event. Storage failures are ignored; logging
// is best-effort and must never abort the session.
func (l *Logger) record(e *Event) {
	e.TimestampMicros = time.Now().UnixNano() / int64(time.Microsecond)
	_ = l.Record(e)
}

// LineExecuted records a successfully parsed input line.
func (l *Logger) LineExecuted(line string) {
	l.record(&Event{Type: "line", Line: line})
}

// ParseError records a line the parser rejected.
func (l *Logger) ParseError(line string, err error) {
	l.record(&Event{Type: "parse_error", Line: line, Error: err.Error()})
}

// CommandStarted records a spawned process.
func (l *Logger) CommandStarted(argv []string, pid int) {
	l.record(&Event{Type: "command_start", Argv: argv, Pid: pid})
}

// BackgroundStarted records a process dispatched without waiting.
func (l *Logger) BackgroundStarted(pid int) {
	l.record(&Event{Type: "background_start", Pid: pid})
}

// BackgroundReaped records the asynchronous completion of a background job.
func (l *Logger) BackgroundReaped(pid, status int) {
	l.record(&Event{Type: "background_exit", Pid: pid, Status: status})
}

// JobTableFull records a background pid that could not be tracked.
func (l *Logger) JobTableFull(pid int) {
	l.record(&Event{Type: "job_table_full", Pid: pid})
}
