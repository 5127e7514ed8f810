// Package transcript stores the ordered lines shown by a terminal and fans
// them out to renderers.
package transcript

import "sync"

// Kind distinguishes lines typed by the user from lines printed by commands.
type Kind int

const (
	KindOutput Kind = iota
	KindInput
)

func (k Kind) String() string {
	if k == KindInput {
		return "input"
	}
	return "output"
}

// Line is a single transcript entry. Cwd is only set for input lines.
type Line struct {
	Kind    Kind   `json:"kind"`
	Content string `json:"content"`
	Cwd     string `json:"cwd,omitempty"`
}

// Input creates an input line typed in the given directory.
func Input(content, cwd string) Line {
	return Line{Kind: KindInput, Content: content, Cwd: cwd}
}

// Output creates an output line.
func Output(content string) Line {
	return Line{Kind: KindOutput, Content: content}
}

// Subscriber is notified of changes to a transcript in order.
type Subscriber interface {
	Appended(Line)
	Cleared()
}

// Transcript is an ordered, append-only list of lines that can be cleared.
type Transcript struct {
	mu          sync.Mutex
	lines       []Line
	subscribers []Subscriber
}

// New creates an empty transcript.
func New() *Transcript {
	return &Transcript{}
}

// Append adds a line and notifies subscribers.
func (t *Transcript) Append(line Line) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.lines = append(t.lines, line)
	for _, s := range t.subscribers {
		s.Appended(line)
	}
}

// Println appends an output line.
func (t *Transcript) Println(content string) {
	t.Append(Output(content))
}

// Clear removes every line and notifies subscribers.
func (t *Transcript) Clear() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.lines = nil
	for _, s := range t.subscribers {
		s.Cleared()
	}
}

// Lines returns a copy of the current lines.
func (t *Transcript) Lines() []Line {
	t.mu.Lock()
	defer t.mu.Unlock()

	return append([]Line(nil), t.lines...)
}

// Subscribe registers s for future changes. The returned function removes it.
func (t *Transcript) Subscribe(s Subscriber) (unsubscribe func()) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.subscribers = append(t.subscribers, s)
	return func() {
		t.mu.Lock()
		defer t.mu.Unlock()

		for i, sub := range t.subscribers {
			if sub == s {
				t.subscribers = append(t.subscribers[:i], t.subscribers[i+1:]...)
				return
			}
		}
	}
}
