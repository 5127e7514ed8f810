package core

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync/atomic"

	"github.com/abiosoft/readline"
	"github.com/natcat-sim/natcat/commands"
	"github.com/natcat-sim/natcat/core/logger"
	"github.com/natcat-sim/natcat/core/nettools"
	"github.com/natcat-sim/natcat/core/session"
	"github.com/natcat-sim/natcat/core/terminal"
	"github.com/natcat-sim/natcat/core/transcript"
)

// ShellConfig describes the terminal a shell is attached to. Zero values use
// the process's stdio.
type ShellConfig struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer

	// Width reports the terminal width for line editing.
	Width func() int
	// IsTerminal is false when input is piped.
	IsTerminal func() bool

	// CRLF terminates output lines with \r\n, needed for raw remote terminals.
	CRLF bool
	// Color forces a colored prompt.
	Color bool
	// Motd is printed before the first prompt.
	Motd string
}

// Shell connects a line editor to a session's interpreter.
type Shell struct {
	session    *session.Session
	transcript *transcript.Transcript
	terminal   *terminal.Terminal
	readline   *readline.Instance
	prompt     transcript.PromptFunc
	writer     *transcript.Writer
	motd       string

	submitted int64
}

// NewShell creates a shell for the session. Subscribers receive every
// transcript change, for example to record the session.
func NewShell(
	ctx context.Context,
	cfg ShellConfig,
	s *session.Session,
	tools nettools.Runner,
	log *logger.SessionLogger,
	subscribers ...transcript.Subscriber,
) (*Shell, error) {
	rlConfig := &readline.Config{
		Stdout:         cfg.Stdout,
		Stderr:         cfg.Stderr,
		FuncGetWidth:   cfg.Width,
		FuncIsTerminal: cfg.IsTerminal,
	}
	if cfg.Stdin != nil {
		rlConfig.Stdin = readline.NewCancelableStdin(cfg.Stdin)
	}

	if err := rlConfig.Init(); err != nil {
		return nil, err
	}

	rl, err := readline.NewEx(rlConfig)
	if err != nil {
		return nil, err
	}

	var writerOpts []transcript.WriterOption
	if cfg.CRLF {
		writerOpts = append(writerOpts, transcript.WithCRLF())
	}

	tr := transcript.New()
	writer := transcript.NewWriter(rl.Stdout(), writerOpts...)
	tr.Subscribe(writer)
	for _, sub := range subscribers {
		tr.Subscribe(sub)
	}

	interp := commands.NewInterpreter(s, tr, commands.WithTools(tools), commands.WithLogger(log))

	return &Shell{
		session:    s,
		transcript: tr,
		terminal:   terminal.New(ctx, interp),
		readline:   rl,
		prompt:     ColorPrompt(s.User, s.Hostname, s.HomePath(), cfg.Color),
		writer:     writer,
		motd:       cfg.Motd,
	}, nil
}

// Transcript returns the lines shown so far.
func (s *Shell) Transcript() *transcript.Transcript {
	return s.transcript
}

// Submitted returns the number of lines the user entered.
func (s *Shell) Submitted() int {
	return int(atomic.LoadInt64(&s.submitted))
}

// Run reads lines until the input closes or the user exits.
func (s *Shell) Run() error {
	defer s.readline.Close()
	defer s.terminal.Close()

	if motd := strings.TrimRight(s.motd, "\n"); motd != "" {
		s.transcript.Println(motd)
	}

	for flush := true; ; {
		// Slow commands keep running while the next line is typed. Commands
		// that change the prompt or start a credential read finish first.
		if flush {
			s.terminal.Flush()
		}

		line, err := s.readLine()
		switch {
		case err == io.EOF:
			return nil // Input closed, quit.

		case err == readline.ErrInterrupt:
			continue

		case err != nil:
			return fmt.Errorf("reading input: %w", err)
		}

		if !s.session.AwaitingCredential() && isExit(line) {
			return nil
		}

		flush = s.session.AwaitingCredential() || changesPrompt(line)
		atomic.AddInt64(&s.submitted, 1)
		if err := s.terminal.Submit(line); err != nil {
			return err
		}
	}
}

// Abort stops a running command without waiting for queued input.
func (s *Shell) Abort() {
	s.terminal.Abort()
}

func (s *Shell) readLine() (string, error) {
	if s.session.AwaitingCredential() {
		password, err := s.readline.ReadPassword("")
		return string(password), err
	}

	s.readline.SetPrompt(s.prompt(s.session.Cwd()))
	return s.readline.Readline()
}

// changesPrompt reports whether line may change the working directory, clear
// the screen or leave a credential pending.
func changesPrompt(line string) bool {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return false
	}
	switch fields[0] {
	case "cd", "sudo", "clear":
		return true
	}
	return false
}

func isExit(line string) bool {
	switch strings.TrimSpace(line) {
	case "exit", "logout":
		return true
	}
	return false
}

// RunCommand executes a single line without a line editor, as for
// `ssh host command`. Output is written to w.
func RunCommand(
	ctx context.Context,
	w io.Writer,
	line string,
	s *session.Session,
	tools nettools.Runner,
	log *logger.SessionLogger,
	subscribers ...transcript.Subscriber,
) error {
	tr := transcript.New()
	writer := transcript.NewWriter(w)
	tr.Subscribe(writer)
	for _, sub := range subscribers {
		tr.Subscribe(sub)
	}

	term := terminal.New(ctx, commands.NewInterpreter(s, tr, commands.WithTools(tools), commands.WithLogger(log)))
	if err := term.Submit(line); err != nil {
		return err
	}
	term.Close()
	return writer.Err()
}
