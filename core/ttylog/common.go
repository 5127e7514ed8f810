// Package ttylog records terminal sessions and plays them back.
package ttylog

import (
	"io"
	"regexp"
	"sync"
	"time"

	"github.com/natcat-sim/natcat/core/transcript"
)

var (
	crlf = regexp.MustCompile(`\r?\n`)
)

// FD identifies the stream an entry was seen on.
type FD int

const (
	FDStdout FD = iota
	FDStdin
)

// Entry is a single chunk of terminal IO.
type Entry struct {
	TimestampMicros int64
	FD              FD
	Data            []byte
}

// LogSink receives log events.
type LogSink func(e *Entry) error

// LogSource adapts log readers.
type LogSource interface {
	// Next fetches the next available log entry. It returns io.EOF if the source
	// has no more log entries.
	Next() (*Entry, error)
}

// NewRealTimePlayback plays back the results in real-time.
// If maxSleep > 0, it's used as the maximum duration to pause.
func NewRealTimePlayback(maxSleep time.Duration, next LogSink) LogSink {
	var once sync.Once
	var prevTimeMicros int64

	return func(logEntry *Entry) error {
		once.Do(func() {
			prevTimeMicros = logEntry.TimestampMicros
		})

		delta := logEntry.TimestampMicros - prevTimeMicros
		prevTimeMicros = logEntry.TimestampMicros

		if maxSleep > 0 {
			sleepDuration := time.Duration(delta) * time.Microsecond
			if sleepDuration > maxSleep {
				sleepDuration = maxSleep
			}
			time.Sleep(sleepDuration)
		}

		return next(logEntry)
	}
}

// NewCRLFAdapter rewrites bare \n to \r\n so playback on a raw terminal
// doesn't creep across the screen.
func NewCRLFAdapter(next LogSink) LogSink {
	return func(logEntry *Entry) error {
		logEntry.Data = crlf.ReplaceAll(logEntry.Data, []byte("\r\n"))
		return next(logEntry)
	}
}

// NewClientOutput writes what the user saw to the given writer.
func NewClientOutput(w io.Writer) LogSink {
	return func(logEntry *Entry) error {
		if logEntry.FD == FDStdin {
			return nil
		}
		_, err := w.Write(logEntry.Data)
		return err
	}
}

// Replay reads a stream of events to a callback.
func Replay(recording LogSource, callback LogSink) (err error) {
	for {
		logEntry, err := recording.Next()
		switch {
		case err == io.EOF:
			return nil
		case err != nil:
			return err
		}

		if err := callback(logEntry); err != nil {
			return err
		}
	}
}

// Recorder turns transcript changes into log entries. Output is rendered the
// way a terminal shows it; typed input is also recorded on FDStdin.
type Recorder struct {
	mutex  sync.Mutex
	output LogSink
	now    func() time.Time
	err    error

	writer *transcript.Writer
}

var _ transcript.Subscriber = (*Recorder)(nil)

// NewRecorder creates a recorder that forwards all events to output.
func NewRecorder(output LogSink, prompt transcript.PromptFunc) *Recorder {
	recorder := &Recorder{
		output: output,
		now:    time.Now,
	}
	recorder.writer = transcript.NewWriter(
		recorderWriter{recorder},
		transcript.WithPrompt(prompt),
		transcript.WithEchoInput(true),
		transcript.WithCRLF())
	return recorder
}

// Appended implements transcript.Subscriber.
func (r *Recorder) Appended(line transcript.Line) {
	if line.Kind == transcript.KindInput {
		r.record(FDStdin, []byte(line.Content+"\r"))
	}
	r.writer.Appended(line)
}

// Cleared implements transcript.Subscriber.
func (r *Recorder) Cleared() {
	r.writer.Cleared()
}

// Err returns the first error from the sink, if any. Recording stops after
// an error.
func (r *Recorder) Err() error {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	return r.err
}

func (r *Recorder) record(fd FD, data []byte) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	if r.err != nil {
		return
	}
	r.err = r.output(&Entry{
		TimestampMicros: r.now().UnixMicro(),
		FD:              fd,
		Data:            data,
	})
}

type recorderWriter struct {
	r *Recorder
}

func (rw recorderWriter) Write(p []byte) (int, error) {
	rw.r.record(FDStdout, append([]byte(nil), p...))
	return len(p), nil
}
