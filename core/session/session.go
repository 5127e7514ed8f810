// Package session holds the mutable state of one simulated terminal.
package session

import (
	"sync"

	"github.com/natcat-sim/natcat/core/pkg"
	"github.com/natcat-sim/natcat/core/vfs"
)

const (
	DefaultHostname = "natcat"
	DefaultIdentity = "root"
)

// DefaultNpmExecutables can be run as commands once installed with npm.
var DefaultNpmExecutables = []string{"cowsay", "figlet"}

// Options configures a new Session, zero values fall back to defaults.
type Options struct {
	User           string
	Hostname       string
	Identity       string
	HomeFiles      []vfs.File
	Packages       []string
	NpmExecutables []string
}

// Session is the state a command interpreter mutates. Apart from the pending
// privileged command it must only be used by one goroutine at a time.
type Session struct {
	FS       *vfs.FS
	Packages *pkg.Registry
	Runtime  *pkg.Registry

	User     string
	Hostname string
	Identity string

	npmExecutables map[string]bool

	mu      sync.Mutex
	pending *string
}

// New creates an isolated session.
func New(opts Options) *Session {
	if opts.User == "" {
		opts.User = vfs.DefaultUser
	}
	if opts.Hostname == "" {
		opts.Hostname = DefaultHostname
	}
	if opts.Identity == "" {
		opts.Identity = DefaultIdentity
	}
	if opts.HomeFiles == nil {
		opts.HomeFiles = vfs.DefaultHomeFiles
	}
	if opts.Packages == nil {
		opts.Packages = pkg.DefaultPackages
	}
	if opts.NpmExecutables == nil {
		opts.NpmExecutables = DefaultNpmExecutables
	}

	s := &Session{
		FS:             vfs.New(opts.User, opts.HomeFiles),
		Packages:       pkg.NewRegistry(opts.Packages...),
		Runtime:        pkg.NewOpenRegistry(),
		User:           opts.User,
		Hostname:       opts.Hostname,
		Identity:       opts.Identity,
		npmExecutables: make(map[string]bool),
	}
	for _, name := range opts.NpmExecutables {
		s.npmExecutables[name] = true
	}
	return s
}

// NewDefault creates a session with the default user, files and packages.
func NewDefault() *Session {
	return New(Options{})
}

// Cwd is the absolute path of the current directory.
func (s *Session) Cwd() string {
	return s.FS.PrintWorkingDirectory()
}

// HomePath is the absolute path of the home directory.
func (s *Session) HomePath() string {
	return s.FS.Path(s.FS.Home())
}

// IsNpmExecutable returns true if the npm package provides a runnable command.
func (s *Session) IsNpmExecutable(name string) bool {
	return s.npmExecutables[name]
}

// CanExecute returns true if name was installed through npm and is runnable.
func (s *Session) CanExecute(name string) bool {
	return s.IsNpmExecutable(name) && s.Runtime.IsInstalled(name)
}

// SetPending stores a command to run once a credential has been entered.
func (s *Session) SetPending(command string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending = &command
}

// TakePending returns and clears the pending command.
func (s *Session) TakePending() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.pending == nil {
		return "", false
	}
	command := *s.pending
	s.pending = nil
	return command, true
}

// AwaitingCredential returns true if the next line is a credential.
func (s *Session) AwaitingCredential() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pending != nil
}
