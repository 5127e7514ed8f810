package core

import (
	"context"
	"fmt"
	"io"
	"log"
	"net"
	"sync"
	"time"

	"github.com/gliderlabs/ssh"
	"github.com/natcat-sim/natcat/core/config"
	"github.com/natcat-sim/natcat/core/logger"
	"github.com/natcat-sim/natcat/core/nettools"
	"github.com/natcat-sim/natcat/core/session"
	"github.com/natcat-sim/natcat/core/transcript"
	"github.com/natcat-sim/natcat/core/ttylog"
	"github.com/puzpuzpuz/xsync/v3"
	gossh "golang.org/x/crypto/ssh"
)

type sshContextKey struct {
	name string
}

var (
	// contextSessionLogger holds the event logger for a connection, it's
	// created on the first authentication attempt.
	contextSessionLogger = sshContextKey{"session-logger"}
)

// LiveSession describes a connected client.
type LiveSession struct {
	ID         string
	User       string
	RemoteAddr string
	Started    time.Time

	cancel context.CancelFunc
}

// Server exposes one isolated simulator session per SSH connection.
type Server struct {
	configuration *config.Configuration
	tools         nettools.Runner
	events        *logger.Logger
	appLog        *log.Logger
	sessions      *xsync.MapOf[string, *LiveSession]
	sshServer     *ssh.Server

	// loggerMu guards creating a connection's session logger, auth callbacks
	// for one connection may race.
	loggerMu sync.Mutex
}

// NewServer creates a server from the configuration. Session events go to
// events, diagnostics go to appLog.
func NewServer(configuration *config.Configuration, events *logger.Logger, appLog *log.Logger) (*Server, error) {
	tools, err := nettools.New(configuration.NetworkOptions())
	if err != nil {
		return nil, err
	}

	keyPem, err := configuration.PrivateKeyPem()
	if err != nil {
		return nil, fmt.Errorf("reading host key: %w", err)
	}
	signer, err := gossh.ParsePrivateKey(keyPem)
	if err != nil {
		return nil, fmt.Errorf("parsing host key: %w", err)
	}

	server := &Server{
		configuration: configuration,
		tools:         tools,
		events:        events,
		appLog:        appLog,
		sessions:      xsync.NewMapOf[string, *LiveSession](),
	}

	server.sshServer = &ssh.Server{
		Addr: fmt.Sprintf(":%d", configuration.SSHPort),
		Handler: func(s ssh.Session) {
			if err := server.HandleConnection(s); err != nil {
				appLog.Printf("session error: %v", err)
			}
		},
		PublicKeyHandler: func(ctx ssh.Context, key ssh.PublicKey) bool {
			server.logLogin(ctx, "publickey", gossh.FingerprintSHA256(key))
			return true
		},
		PasswordHandler: func(ctx ssh.Context, _ string) bool {
			server.logLogin(ctx, "password", "")
			return true
		},
	}
	server.sshServer.AddHostKey(signer)

	return server, nil
}

// sessionLogger returns the connection's logger, creating it if needed.
func (s *Server) sessionLogger(ctx ssh.Context) *logger.SessionLogger {
	s.loggerMu.Lock()
	defer s.loggerMu.Unlock()

	if l, ok := ctx.Value(contextSessionLogger).(*logger.SessionLogger); ok {
		return l
	}
	l := s.events.NewSession("ssh")
	ctx.SetValue(contextSessionLogger, l)
	return l
}

// logLogin records an authentication attempt. Every login is accepted and
// passwords are never recorded.
func (s *Server) logLogin(ctx ssh.Context, method, fingerprint string) {
	s.sessionLogger(ctx).LoginAttempt(logger.LoginAttempt{
		Username:    ctx.User(),
		RemoteAddr:  ctx.RemoteAddr().String(),
		Method:      method,
		Fingerprint: fingerprint,
		Accepted:    true,
	})
}

// Sessions returns a snapshot of the connected clients.
func (s *Server) Sessions() []LiveSession {
	var out []LiveSession
	s.sessions.Range(func(_ string, live *LiveSession) bool {
		out = append(out, *live)
		return true
	})
	return out
}

// HandleConnection runs a simulator session over an SSH channel.
func (s *Server) HandleConnection(sshSession ssh.Session) error {
	sessionLogger := s.sessionLogger(sshSession.Context())
	ctx, cancel := context.WithCancel(sshSession.Context())
	defer cancel()

	live := &LiveSession{
		ID:         sessionLogger.ID(),
		User:       sshSession.User(),
		RemoteAddr: sshSession.RemoteAddr().String(),
		Started:    time.Now(),
		cancel:     cancel,
	}
	s.sessions.Store(live.ID, live)
	defer s.sessions.Delete(live.ID)

	sessionLogger.SessionStarted(live.User, live.RemoteAddr)

	state := session.New(s.configuration.SessionOptions())

	// Start recording the terminal interactions.
	var subscribers []transcript.Subscriber
	logFd, err := s.configuration.CreateSessionLog(fmt.Sprintf("%s.%s", live.ID, ttylog.AsciicastFileExt))
	if err != nil {
		s.appLog.Printf("couldn't create session recording: %v", err)
	} else {
		defer logFd.Close()
		title := fmt.Sprintf("%s@%s from %s", live.User, state.Hostname, live.RemoteAddr)
		recorder := ttylog.NewRecorder(
			ttylog.NewAsciicastLogSink(logFd, title),
			transcript.Prompt(state.User, state.Hostname, state.HomePath()))
		subscribers = append(subscribers, recorder)
	}

	ptyInfo, winch, isPTY := sshSession.Pty()

	if raw := sshSession.RawCommand(); raw != "" {
		err := RunCommand(ctx, crlfWriter(sshSession, isPTY), raw, state, s.tools, sessionLogger, subscribers...)
		sessionLogger.SessionEnded(1)
		sshSession.Exit(0)
		return err
	}

	// Watch for window changes.
	var widthMu sync.Mutex
	windowWidth := ptyInfo.Window.Width
	if isPTY {
		go (func() {
			for window := range winch {
				widthMu.Lock()
				windowWidth = window.Width
				widthMu.Unlock()
			}
		})()
	}

	shell, err := NewShell(ctx, ShellConfig{
		Stdin:  sshSession,
		Stdout: sshSession,
		Stderr: sshSession.Stderr(),
		Width: func() int {
			widthMu.Lock()
			defer widthMu.Unlock()
			return windowWidth
		},
		IsTerminal: func() bool {
			return isPTY
		},
		CRLF:  isPTY,
		Color: isPTY,
		Motd:  s.configuration.Motd,
	}, state, s.tools, sessionLogger, subscribers...)
	if err != nil {
		sshSession.Exit(1)
		return err
	}

	go func() {
		<-ctx.Done()
		shell.Abort()
	}()

	err = shell.Run()
	sessionLogger.SessionEnded(shell.Submitted())
	sshSession.Exit(0)
	return err
}

// crlfWriter converts newlines for clients with a raw terminal.
func crlfWriter(w io.Writer, isPTY bool) io.Writer {
	if !isPTY {
		return w
	}
	return &newlineWriter{w: w}
}

type newlineWriter struct {
	w io.Writer
}

func (n *newlineWriter) Write(p []byte) (int, error) {
	out := make([]byte, 0, len(p))
	for _, b := range p {
		if b == '\n' {
			out = append(out, '\r')
		}
		out = append(out, b)
	}
	if _, err := n.w.Write(out); err != nil {
		return 0, err
	}
	return len(p), nil
}

// ErrServerClosed is returned by Serve and ListenAndServe after Shutdown.
var ErrServerClosed = ssh.ErrServerClosed

// ListenAndServe accepts connections on the configured port.
func (s *Server) ListenAndServe() error {
	s.appLog.Printf("- Starting SSH server on %s\n", s.sshServer.Addr)
	return s.sshServer.ListenAndServe()
}

// Serve accepts connections on l.
func (s *Server) Serve(l net.Listener) error {
	return s.sshServer.Serve(l)
}

// Shutdown stops accepting connections and ends every live session.
func (s *Server) Shutdown(ctx context.Context) error {
	s.sessions.Range(func(_ string, live *LiveSession) bool {
		live.cancel()
		return true
	})
	return s.sshServer.Shutdown(ctx)
}
