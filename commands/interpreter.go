package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/natcat-sim/natcat/core/logger"
	"github.com/natcat-sim/natcat/core/nettools"
	"github.com/natcat-sim/natcat/core/session"
	"github.com/natcat-sim/natcat/core/transcript"
)

// Interpreter turns input lines into command invocations against a session.
// It isn't safe for concurrent use, callers serialize Execute.
type Interpreter struct {
	session *session.Session
	out     Output
	tools   nettools.Runner
	log     *logger.SessionLogger
}

// InterpreterOption configures an Interpreter.
type InterpreterOption func(*Interpreter)

// WithTools sets the runner used by the network commands.
func WithTools(tools nettools.Runner) InterpreterOption {
	return func(in *Interpreter) {
		in.tools = tools
	}
}

// WithLogger sets where session events are recorded.
func WithLogger(log *logger.SessionLogger) InterpreterOption {
	return func(in *Interpreter) {
		in.log = log
	}
}

// NewInterpreter creates an interpreter writing to out. Network tools are
// disabled unless WithTools is given.
func NewInterpreter(s *session.Session, out Output, opts ...InterpreterOption) *Interpreter {
	in := &Interpreter{
		session: s,
		out:     out,
		tools:   nettools.NewService(nettools.DisabledBackend{}),
		log:     logger.NewNop().Sessionless(),
	}
	for _, opt := range opts {
		opt(in)
	}
	return in
}

// Session returns the state the interpreter mutates.
func (in *Interpreter) Session() *session.Session {
	return in.session
}

// Execute processes one line of user input.
//
// If a privileged command is pending the line is a credential: it is
// discarded without being displayed or logged and the pending command runs.
func (in *Interpreter) Execute(ctx context.Context, line string) int {
	if pending, ok := in.session.TakePending(); ok {
		return in.run(ctx, pending)
	}

	trimmed := strings.TrimSpace(line)
	in.out.Append(transcript.Input(trimmed, in.session.Cwd()))
	return in.run(ctx, trimmed)
}

func (in *Interpreter) run(ctx context.Context, line string) (status int) {
	args := strings.Fields(line)
	if len(args) == 0 {
		return 0
	}

	entry, ok := Lookup(args[0])
	if !ok {
		in.log.UnknownCommand(args[0])
		in.out.Println(fmt.Sprintf("Command not found: %s", args[0]))
		return 127
	}

	in.log.RunCommand(entry.Name, len(args)-1)

	defer func() {
		if r := recover(); r != nil {
			in.log.Panic(entry.Name, r)
			in.out.Println(fmt.Sprintf("%s: internal error", entry.Name))
			status = 1
		}
	}()

	return entry.Proc(&Proc{
		ctx:     ctx,
		Args:    args,
		Session: in.session,
		tools:   in.tools,
		out:     in.out,
		log:     in.log,
	})
}
