package commands

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/natcat-sim/natcat/core/logger"
	"github.com/natcat-sim/natcat/core/nettools"
	"github.com/natcat-sim/natcat/core/session"
	"github.com/natcat-sim/natcat/core/transcript"
	getopt "github.com/pborman/getopt/v2"
)

// HandlerFunc runs a command and returns its exit status.
type HandlerFunc func(p *Proc) int

// CommandEntry describes a registered command.
type CommandEntry struct {
	Name  string
	Use   string
	Short string
	Proc  HandlerFunc
}

// AllCommands holds every registered command by name.
var AllCommands = make(map[string]*CommandEntry)

// mustAddCmd registers a command, duplicate names are a programming error.
func mustAddCmd(entry CommandEntry) {
	if _, ok := AllCommands[entry.Name]; ok {
		panic(fmt.Sprintf("duplicate command: %q", entry.Name))
	}
	if entry.Proc == nil {
		panic(fmt.Sprintf("nil command: %q", entry.Name))
	}
	AllCommands[entry.Name] = &entry
}

// Lookup finds a command by name.
func Lookup(name string) (*CommandEntry, bool) {
	entry, ok := AllCommands[name]
	return entry, ok
}

// ListBuiltinCommands returns all commands sorted by name.
func ListBuiltinCommands() []CommandEntry {
	var out []CommandEntry
	for _, entry := range AllCommands {
		out = append(out, *entry)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Name < out[j].Name
	})
	return out
}

// Output receives the lines a command prints.
type Output interface {
	Append(transcript.Line)
	Println(string)
	Clear()
}

// Proc is a single command invocation.
type Proc struct {
	ctx     context.Context
	Args    []string
	Session *session.Session

	tools nettools.Runner
	out   Output
	log   *logger.SessionLogger
}

// Context is cancelled when the session ends.
func (p *Proc) Context() context.Context {
	return p.ctx
}

// Name is the command name.
func (p *Proc) Name() string {
	return p.Args[0]
}

// Arg returns the nth positional argument or the empty string.
func (p *Proc) Arg(n int) string {
	if n < len(p.Args) {
		return p.Args[n]
	}
	return ""
}

// Println appends an output line. Empty strings are skipped so silent
// successes don't produce blank lines.
func (p *Proc) Println(line string) {
	if line != "" {
		p.out.Println(line)
	}
}

// Clear empties the transcript.
func (p *Proc) Clear() {
	p.out.Clear()
}

// LogInvalidInvocation records that the command got arguments it couldn't
// handle.
func (p *Proc) LogInvalidInvocation(err error) {
	p.log.InvalidInvocation(p.Name(), err)
}

// RunTool prints progress, then runs the network tool and prints its result.
// The progress line is always appended before the result.
func (p *Proc) RunTool(progress string, req nettools.Request) nettools.Response {
	p.Println(progress)

	resp := p.callTool(req)
	p.Println(resp.Text)
	return resp
}

func (p *Proc) callTool(req nettools.Request) nettools.Response {
	resp := p.tools.Run(p.ctx, req)
	p.log.ToolInvoked(string(req.Tool), resp.Failed)
	return resp
}

// requirePackage prints an install hint and returns false if the package
// manager hasn't installed name.
func (p *Proc) requirePackage(name string) bool {
	if p.Session.Packages.IsInstalled(name) {
		return true
	}
	p.Println(notFoundHint(p.Name(), "pkg install "+name))
	return false
}

// requireRuntime prints an install hint and returns false if npm hasn't
// installed a runnable name.
func (p *Proc) requireRuntime(name string) bool {
	if p.Session.CanExecute(name) {
		return true
	}
	p.Println(notFoundHint(p.Name(), "npm install "+name))
	return false
}

func notFoundHint(command, install string) string {
	return fmt.Sprintf("Command '%s' not found. Install it with: %s", command, install)
}

type SimpleCommand struct {
	// Use holds a one line usage string
	Use string
	// Short holds a one line description of the command.
	Short string
	// Usage replaces the generated help text when set.
	Usage string
	// ShowHelp sets whether help is displayed or not.
	// If this is non-nil when Run() is called, then the default help flag isn't
	// added.
	ShowHelp *bool
	// NeverBail skips printing errors on failure and always runs the callback.
	NeverBail bool
	// Interspersed allows options after positional arguments, like GNU tools.
	Interspersed bool

	flags *getopt.Set
	args  []string
}

// Flags gets the command's flag set.
func (s *SimpleCommand) Flags() *getopt.Set {
	if s.flags == nil {
		s.flags = getopt.New()
	}

	return s.flags
}

// Help renders help for the command.
func (s *SimpleCommand) Help() string {
	if s.Usage != "" {
		return s.Usage
	}

	w := &strings.Builder{}
	fmt.Fprint(w, "usage: ")
	fmt.Fprintln(w, s.Use)
	fmt.Fprintln(w, s.Short)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	s.Flags().PrintOptions(w)
	return strings.TrimRight(w.String(), "\n")
}

// Run the command, if flag parsing was successful call the callback.
func (s *SimpleCommand) Run(p *Proc, callback func() int) int {
	opts := s.Flags()

	// Add help flag if not overridden.
	if s.ShowHelp == nil {
		s.ShowHelp = opts.BoolLong("help", 'h', "show this help and exit")
	}

	err := s.parse(p.Args)
	if err != nil {
		p.LogInvalidInvocation(err)
	}

	if err != nil && !s.NeverBail {
		p.Println(fmt.Sprintf("%s: %s", p.Name(), err))
		return 1
	}

	if *s.ShowHelp {
		p.Println(s.Help())
		return 0
	}

	return callback()
}

// Args holds the positional arguments left after parsing.
func (s *SimpleCommand) Args() []string {
	return s.args
}

func (s *SimpleCommand) parse(args []string) error {
	opts := s.Flags()
	for {
		if err := opts.Getopt(args, nil); err != nil {
			s.args = append(s.args, opts.Args()...)
			return err
		}

		rest := opts.Args()
		consumed := len(args) - 1 - len(rest)
		if !s.Interspersed || len(rest) == 0 || (consumed > 0 && args[consumed] == "--") {
			s.args = append(s.args, rest...)
			return nil
		}

		s.args = append(s.args, rest[0])
		args = append([]string{args[0]}, rest[1:]...)
	}
}

// withOperand runs op on the first argument and prints its result, or
// reports the missing operand.
func withOperand(p *Proc, op func(string) string) int {
	if p.Arg(1) == "" {
		p.Println(fmt.Sprintf("%s: missing operand", p.Name()))
		return 1
	}

	out := op(p.Arg(1))
	p.Println(out)
	return statusFor(out, p.Name()+": ")
}

// statusFor derives an exit status from a filesystem display line, failures
// are the lines carrying the command's error prefix.
func statusFor(out, errPrefix string) int {
	if strings.HasPrefix(out, errPrefix) || strings.HasPrefix(out, "bash: ") {
		return 1
	}
	return 0
}
