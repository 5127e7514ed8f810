package transcript

import (
	"fmt"
	"io"
	"strings"
	"sync"
)

// ClearScreen moves the cursor home and erases the display.
const ClearScreen = "\033[H\033[2J"

// PromptFunc renders the prompt displayed before an input line.
type PromptFunc func(cwd string) string

// Prompt renders `user@host:cwd$ ` with the home directory shortened to ~.
func Prompt(user, host, home string) PromptFunc {
	return func(cwd string) string {
		return fmt.Sprintf("%s@%s:%s$ ", user, host, ShortenHome(cwd, home))
	}
}

// ShortenHome replaces a leading home directory in cwd with ~.
func ShortenHome(cwd, home string) string {
	switch {
	case home == "" || home == "/":
		return cwd
	case cwd == home:
		return "~"
	case strings.HasPrefix(cwd, home+"/"):
		return "~" + strings.TrimPrefix(cwd, home)
	default:
		return cwd
	}
}

// Writer renders transcript lines as terminal text.
type Writer struct {
	mu        sync.Mutex
	w         io.Writer
	prompt    PromptFunc
	echoInput bool
	newline   string
	err       error
}

var _ Subscriber = (*Writer)(nil)

// WriterOption configures a Writer.
type WriterOption func(*Writer)

// WithPrompt sets the prompt rendered before echoed input.
func WithPrompt(prompt PromptFunc) WriterOption {
	return func(w *Writer) {
		w.prompt = prompt
	}
}

// WithEchoInput renders input lines, interactive front ends leave this off
// because the line editor already displayed them.
func WithEchoInput(echo bool) WriterOption {
	return func(w *Writer) {
		w.echoInput = echo
	}
}

// WithCRLF terminates lines with \r\n for raw terminals.
func WithCRLF() WriterOption {
	return func(w *Writer) {
		w.newline = "\r\n"
	}
}

// NewWriter creates a renderer writing to w.
func NewWriter(w io.Writer, opts ...WriterOption) *Writer {
	out := &Writer{
		w:       w,
		prompt:  func(string) string { return "$ " },
		newline: "\n",
	}
	for _, opt := range opts {
		opt(out)
	}
	return out
}

// Appended implements Subscriber.
func (w *Writer) Appended(line Line) {
	w.mu.Lock()
	defer w.mu.Unlock()

	var text string
	switch line.Kind {
	case KindInput:
		if !w.echoInput {
			return
		}
		text = w.prompt(line.Cwd) + line.Content
	default:
		text = line.Content
	}

	if w.newline != "\n" {
		text = strings.ReplaceAll(text, "\n", w.newline)
	}
	w.write(text + w.newline)
}

// Cleared implements Subscriber.
func (w *Writer) Cleared() {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.write(ClearScreen)
}

func (w *Writer) write(s string) {
	if w.err != nil {
		return
	}
	_, w.err = io.WriteString(w.w, s)
}

// Err returns the first write error, if any.
func (w *Writer) Err() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.err
}
