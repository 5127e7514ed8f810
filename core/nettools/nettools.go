// Package nettools runs the network diagnostic tools exposed to the
// simulated shell.
//
// A Service validates every request before handing it to a backend so
// backends never see input that could reach a real shell or local network.
package nettools

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Tool names a network tool.
type Tool string

const (
	Ping  Tool = "ping"
	Dig   Tool = "dig"
	Whois Tool = "whois"
	Nmap  Tool = "nmap"
	Curl  Tool = "curl"
	Wget  Tool = "wget"
)

// Request asks a Runner to execute a tool. Ping, Dig, Whois and the fetch
// tools use the first argument, Nmap uses all of them.
type Request struct {
	Tool Tool
	Args []string
}

// Target returns the first argument or the empty string.
func (r Request) Target() string {
	if len(r.Args) == 0 {
		return ""
	}
	return r.Args[0]
}

// Response is the result of a tool run. Text is displayed to the user, Body
// holds the complete retrieved content for fetch tools.
type Response struct {
	Text   string
	Body   string
	Failed bool
}

// Failure creates a failed response displaying msg.
func Failure(msg string) Response {
	return Response{Text: msg, Failed: true}
}

// Runner executes network tools. Errors are reported in the Response and
// never returned.
type Runner interface {
	Run(ctx context.Context, req Request) Response
}

// RunnerFunc adapts a function to a Runner.
type RunnerFunc func(ctx context.Context, req Request) Response

// Run implements Runner.
func (f RunnerFunc) Run(ctx context.Context, req Request) Response {
	return f(ctx, req)
}

var (
	hostPattern   = regexp.MustCompile(`^[a-zA-Z0-9.:-]+$`)
	domainPattern = regexp.MustCompile(`^[a-zA-Z0-9.-]+$`)
	nmapPattern   = regexp.MustCompile(`^[a-zA-Z0-9\s.\-:,]+$`)
	schemePattern = regexp.MustCompile(`(?i)^https?://`)

	nmapAllowedFlags = map[string]bool{
		"-F": true, "-sV": true, "-A": true, "-v": true, "-Pn": true,
		"-sS": true, "-sT": true, "-sU": true, "-O": true,
	}
	nmapPortsFlag  = regexp.MustCompile(`^-p[0-9,\-:a-zA-Z]*$`)
	nmapTimingFlag = regexp.MustCompile(`^-T[0-5]$`)

	localHosts = []string{"localhost", "127.0.0.1", "::1"}
)

const (
	msgInvalidHost   = "Invalid host format. Only alphanumeric characters, dots, hyphens, and colons are allowed."
	msgInvalidDomain = "Invalid domain format."
	msgInvalidNmap   = "Invalid characters in arguments."
	msgNmapFlag      = "Flag not allowed: %s. Allowed flags: -F, -sV, -A, -v, -Pn, -sS, -sT, -sU, -O, -p<ports>, -T<0-5>"
)

// Service validates requests and forwards them to a backend.
type Service struct {
	backend  Runner
	validate *validator.Validate
}

var _ Runner = (*Service)(nil)

// NewService wraps backend with input validation.
func NewService(backend Runner) *Service {
	return &Service{
		backend:  backend,
		validate: validator.New(),
	}
}

// Run implements Runner.
func (s *Service) Run(ctx context.Context, req Request) Response {
	switch req.Tool {
	case Ping:
		if !hostPattern.MatchString(req.Target()) || isOption(req.Target()) {
			return Failure(msgInvalidHost)
		}

	case Dig, Whois:
		if !domainPattern.MatchString(req.Target()) || isOption(req.Target()) {
			return Failure(msgInvalidDomain)
		}

	case Nmap:
		if msg, ok := ValidateNmapArgs(req.Args); !ok {
			return Failure(msg)
		}
		req.Args = strings.Fields(strings.Join(req.Args, " "))

	case Curl, Wget:
		target, msg, ok := s.normalizeURL(req.Tool, req.Target())
		if !ok {
			return Failure(msg)
		}
		req.Args = []string{target}

	default:
		return Failure(fmt.Sprintf("%s: unsupported tool", req.Tool))
	}

	return s.backend.Run(ctx, req)
}

// ValidateNmapArgs checks the character set and flag allow-list. On failure
// it returns the message to display.
func ValidateNmapArgs(args []string) (string, bool) {
	joined := strings.Join(args, " ")
	if !nmapPattern.MatchString(joined) {
		return msgInvalidNmap, false
	}

	for _, token := range strings.Fields(joined) {
		if !isOption(token) || nmapAllowedFlags[token] {
			continue
		}
		if nmapPortsFlag.MatchString(token) || nmapTimingFlag.MatchString(token) {
			continue
		}
		return fmt.Sprintf(msgNmapFlag, token), false
	}

	return "", true
}

// isOption reports whether a real tool would parse arg as a flag.
func isOption(arg string) bool {
	return strings.HasPrefix(arg, "-")
}

func (s *Service) normalizeURL(tool Tool, raw string) (string, string, bool) {
	if raw == "" {
		return "", fmt.Sprintf("%s: no URL specified!", tool), false
	}

	target := raw
	if !schemePattern.MatchString(target) {
		target = "http://" + target
	}

	for _, local := range localHosts {
		if strings.Contains(target, local) {
			return "", fmt.Sprintf("%s: access to local network denied.", tool), false
		}
	}

	if err := s.validate.Var(target, "required,url"); err != nil {
		return "", fmt.Sprintf("%s: (3) URL using bad/illegal format or missing URL", tool), false
	}

	return target, "", true
}
