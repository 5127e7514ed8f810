package logger

import (
	"io"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Event types written in the "event" field.
const (
	EventSessionStarted    = "session_started"
	EventSessionEnded      = "session_ended"
	EventLoginAttempt      = "login_attempt"
	EventRunCommand        = "run_command"
	EventUnknownCommand    = "unknown_command"
	EventInvalidInvocation = "invalid_invocation"
	EventToolInvoked       = "tool_invoked"
	EventPanic             = "panic"
)

// Logger captures interaction events for simulator sessions.
type Logger struct {
	zl zerolog.Logger
}

// NewJSONLinesLogger creates a Logger that exports events in newline
// delimited JSON object format.
func NewJSONLinesLogger(w io.Writer) *Logger {
	return &Logger{zl: zerolog.New(w).With().Timestamp().Logger()}
}

// NewNop creates a Logger that discards everything.
func NewNop() *Logger {
	return &Logger{zl: zerolog.Nop()}
}

// NewSession creates a logger with a fresh session ID. Source names the front
// end the session came from, e.g. "ssh" or "playground".
func (l *Logger) NewSession(source string) *SessionLogger {
	id := uuid.NewString()
	return &SessionLogger{
		id: id,
		zl: l.zl.With().Str("session_id", id).Str("source", source).Logger(),
	}
}

// Sessionless creates a logger for events outside any session.
func (l *Logger) Sessionless() *SessionLogger {
	return &SessionLogger{zl: l.zl}
}

// SessionLogger logs events with a shared session ID.
type SessionLogger struct {
	id string
	zl zerolog.Logger
}

// ID returns the session ID, empty for sessionless loggers.
func (s *SessionLogger) ID() string {
	return s.id
}

func (s *SessionLogger) event(level zerolog.Level, name string) *zerolog.Event {
	return s.zl.WithLevel(level).Str("event", name)
}

// SessionStarted records a new interactive session.
func (s *SessionLogger) SessionStarted(user, remoteAddr string) {
	s.event(zerolog.InfoLevel, EventSessionStarted).
		Str("username", user).
		Str("remote_addr", remoteAddr).
		Msg("session started")
}

// SessionEnded records the end of a session and how many lines it processed.
func (s *SessionLogger) SessionEnded(lines int) {
	s.event(zerolog.InfoLevel, EventSessionEnded).
		Int("lines", lines).
		Msg("session ended")
}

// LoginAttempt describes an SSH authentication. Passwords are never recorded.
type LoginAttempt struct {
	Username    string
	RemoteAddr  string
	Method      string
	Fingerprint string
	Accepted    bool
}

// LoginAttempt records an authentication attempt.
func (s *SessionLogger) LoginAttempt(la LoginAttempt) {
	result := "rejected"
	if la.Accepted {
		result = "accepted"
	}
	s.event(zerolog.InfoLevel, EventLoginAttempt).
		Str("username", la.Username).
		Str("remote_addr", la.RemoteAddr).
		Str("method", la.Method).
		Str("fingerprint", la.Fingerprint).
		Str("result", result).
		Msg("login attempt")
}

// RunCommand records a dispatched command. Only the name and argument count
// are kept so typed secrets don't end up in the log.
func (s *SessionLogger) RunCommand(name string, argCount int) {
	s.event(zerolog.InfoLevel, EventRunCommand).
		Str("command", name).
		Int("arg_count", argCount).
		Msg("command executed")
}

// UnknownCommand records a command that isn't in the dispatch table.
func (s *SessionLogger) UnknownCommand(name string) {
	s.event(zerolog.InfoLevel, EventUnknownCommand).
		Str("command", name).
		Msg("unknown command")
}

// InvalidInvocation records a command that was run with arguments it couldn't
// handle.
func (s *SessionLogger) InvalidInvocation(name string, err error) {
	s.event(zerolog.WarnLevel, EventInvalidInvocation).
		Str("command", name).
		AnErr("error", err).
		Msg("invalid invocation")
}

// ToolInvoked records a call to a network tool.
func (s *SessionLogger) ToolInvoked(tool string, failed bool) {
	s.event(zerolog.InfoLevel, EventToolInvoked).
		Str("tool", tool).
		Bool("failed", failed).
		Msg("tool invoked")
}

// Panic records a recovered panic.
func (s *SessionLogger) Panic(context string, recovered interface{}) {
	s.event(zerolog.ErrorLevel, EventPanic).
		Str("context", context).
		Interface("recovered", recovered).
		Msg("recovered panic")
}
