package logger

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"time"
)

// LogEntry is a decoded event line.
type LogEntry struct {
	Time      time.Time `json:"time"`
	Level     string    `json:"level"`
	Event     string    `json:"event"`
	SessionID string    `json:"session_id,omitempty"`
	Source    string    `json:"source,omitempty"`
	Message   string    `json:"message,omitempty"`

	Username    string `json:"username,omitempty"`
	RemoteAddr  string `json:"remote_addr,omitempty"`
	Method      string `json:"method,omitempty"`
	Fingerprint string `json:"fingerprint,omitempty"`
	Result      string `json:"result,omitempty"`

	Command  string `json:"command,omitempty"`
	ArgCount int    `json:"arg_count,omitempty"`
	Tool     string `json:"tool,omitempty"`
	Failed   bool   `json:"failed,omitempty"`
	Error    string `json:"error,omitempty"`
	Context  string `json:"context,omitempty"`
	Lines    int    `json:"lines,omitempty"`
}

// ReadJSONLinesLog parses a newline delimited JSON log.
func ReadJSONLinesLog(r io.Reader, handler func(le *LogEntry)) error {
	decoder := json.NewDecoder(r)
	for decoder.More() {
		var logEntry LogEntry
		if err := decoder.Decode(&logEntry); err != nil {
			return fmt.Errorf("decoding log entry: %w", err)
		}

		handler(&logEntry)
	}
	return nil
}

// Report holds statistics about the logged events.
type Report struct {
	LogEntries     int        `json:"log_entries"`
	Sessions       StrCounter `json:"sessions_by_source"`
	InvalidEntries StrCounter `json:"unknown_log_entries,omitempty"`

	LoginAttempt      LoginAttemptReport      `json:"login_attempt_report"`
	RunCommand        StrCounter              `json:"run_command_report"`
	UnknownCommand    StrCounter              `json:"unknown_command_report"`
	InvalidInvocation InvalidInvocationReport `json:"invalid_invocation_report"`
	Tools             ToolReport              `json:"tool_report"`
	Panics            []string                `json:"panics,omitempty"`
}

// Update adds the entry to the report.
func (r *Report) Update(le *LogEntry) {
	r.LogEntries++

	switch le.Event {
	case EventSessionStarted:
		r.Sessions.Increment(le.Source)
	case EventLoginAttempt:
		r.LoginAttempt.update(le)
	case EventRunCommand:
		r.RunCommand.Increment(le.Command)
	case EventUnknownCommand:
		r.UnknownCommand.Increment(le.Command)
	case EventInvalidInvocation:
		r.InvalidInvocation.update(le)
	case EventToolInvoked:
		r.Tools.update(le)
	case EventPanic:
		r.Panics = append(r.Panics, le.Context)
	case EventSessionEnded:
		// Ignore
	default:
		r.InvalidEntries.Increment(le.Event)
	}
}

type LoginAttemptReport struct {
	// List of usernames and their counts.
	Usernames StrCounter `json:"usernames"`
	// List of authentication methods and their counts.
	Methods StrCounter `json:"methods"`
	// List of login attempt results and their counts.
	Results StrCounter `json:"results"`
}

func (r *LoginAttemptReport) update(le *LogEntry) {
	r.Usernames.Increment(le.Username)
	r.Methods.Increment(le.Method)
	r.Results.Increment(le.Result)
}

type InvalidInvocationReport struct {
	CommandNames StrCounter   `json:"command_counts"`
	Errors       *PathCounter `json:"errors"`
}

func (r *InvalidInvocationReport) update(le *LogEntry) {
	if r.Errors == nil {
		r.Errors = NewPathCounter("command", "error")
	}
	r.CommandNames.Increment(le.Command)
	r.Errors.Increment(le.Command, le.Error)
}

type ToolReport struct {
	Invocations StrCounter `json:"invocations"`
	Failures    StrCounter `json:"failures"`
}

func (r *ToolReport) update(le *LogEntry) {
	r.Invocations.Increment(le.Tool)
	if le.Failed {
		r.Failures.Increment(le.Tool)
	}
}

// InteractionReport groups commands by session.
type InteractionReport struct {
	// Map of sessionID -> interactions
	interactions map[string]*InteractiveSession
}

type InteractiveSession struct {
	Source     string   `json:"source"`
	Username   string   `json:"username,omitempty"`
	RemoteAddr string   `json:"remote_addr,omitempty"`
	LogEntries int      `json:"log_entries"`
	Commands   []string `json:"commands"`
	Tools      []string `json:"tools,omitempty"`
}

func (i *InteractiveSession) Update(le *LogEntry) {
	i.LogEntries++
	i.Source = le.Source

	switch le.Event {
	case EventSessionStarted, EventLoginAttempt:
		i.Username = le.Username
		i.RemoteAddr = le.RemoteAddr
	case EventRunCommand, EventUnknownCommand:
		i.Commands = append(i.Commands, le.Command)
	case EventToolInvoked:
		i.Tools = append(i.Tools, le.Tool)
	}
}

func (i *InteractionReport) init() {
	if i.interactions == nil {
		i.interactions = make(map[string]*InteractiveSession)
	}
}

// MarshalJSON implements custom JSON marshaler.
func (i *InteractionReport) MarshalJSON() ([]byte, error) {
	i.init()

	return json.Marshal(i.interactions)
}

func (i *InteractionReport) Update(le *LogEntry) {
	i.init()

	if le.SessionID == "" {
		return
	}
	report, ok := i.interactions[le.SessionID]
	if !ok {
		report = &InteractiveSession{}
		i.interactions[le.SessionID] = report
	}

	report.Update(le)
}

// Session returns the interactions of one session.
func (i *InteractionReport) Session(id string) (*InteractiveSession, bool) {
	i.init()
	session, ok := i.interactions[id]
	return session, ok
}

// StrCounter counts the number of strings seen.
type StrCounter struct {
	internal map[string]int
}

// Increment adds one to the given key.
func (s *StrCounter) Increment(toAdd string) {
	if s.internal == nil {
		s.internal = make(map[string]int)
	}

	s.internal[toAdd]++
}

// Count returns the number of times key was seen.
func (s *StrCounter) Count(key string) int {
	return s.internal[key]
}

// MarshalJSON implements custom JSON marshaler.
func (s StrCounter) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.internal)
}

func NewPathCounter(cols ...string) *PathCounter {
	return &PathCounter{
		cols:     cols,
		internal: make(map[string]int),
	}
}

// PathCounter counts the number of tuples seen.
type PathCounter struct {
	cols     []string
	internal map[string]int
}

// Increment adds one to the given key.
func (ctr *PathCounter) Increment(toAdd ...string) {
	if len(toAdd) != len(ctr.cols) {
		panic("wrong number of columns to add")
	}

	ctr.internal[toKey(toAdd...)]++
}

// MarshalJSON implements custom JSON marshaler.
func (ctr *PathCounter) MarshalJSON() ([]byte, error) {
	type Count struct {
		Count  int               `json:"count"`
		Fields map[string]string `json:"event"`
		Path   string            `json:"-"`
	}

	var out []Count
	for k, v := range ctr.internal {
		count := Count{
			Count:  v,
			Path:   k,
			Fields: make(map[string]string),
		}

		splitPath := fromKey(k)
		for colNum, colVal := range ctr.cols {
			count.Fields[colVal] = splitPath[colNum]
		}

		out = append(out, count)
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Count == out[j].Count {
			return out[i].Path < out[j].Path
		}
		return out[i].Count > out[j].Count
	})

	return json.Marshal(out)
}

func toKey(vals ...string) string {
	key, _ := json.Marshal(vals)
	return string(key)
}

func fromKey(key string) (out []string) {
	json.Unmarshal([]byte(key), &out)
	return
}
