package nettools

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"time"
)

// DefaultNmapTimeout bounds a single nmap scan.
const DefaultNmapTimeout = 30 * time.Second

// CommandFunc runs a program without a shell and returns its output.
type CommandFunc func(ctx context.Context, name string, args ...string) (stdout, stderr string, err error)

// RunCommand executes a real program with os/exec.
func RunCommand(ctx context.Context, name string, args ...string) (string, string, error) {
	var stdout, stderr bytes.Buffer

	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	err := cmd.Run()

	return stdout.String(), stderr.String(), err
}

// ExecBackend runs the host's ping, dig, whois and nmap binaries and fetches
// URLs over HTTP. Requests must be validated by a Service first.
type ExecBackend struct {
	Command     CommandFunc
	NmapTimeout time.Duration
	Fetcher     *Fetcher
}

var _ Runner = (*ExecBackend)(nil)

// NewExecBackend creates a backend using real binaries.
func NewExecBackend(nmapTimeout time.Duration, fetcher *Fetcher) *ExecBackend {
	if nmapTimeout <= 0 {
		nmapTimeout = DefaultNmapTimeout
	}
	return &ExecBackend{
		Command:     RunCommand,
		NmapTimeout: nmapTimeout,
		Fetcher:     fetcher,
	}
}

// Run implements Runner.
func (b *ExecBackend) Run(ctx context.Context, req Request) Response {
	switch req.Tool {
	case Ping:
		stdout, stderr, err := b.Command(ctx, "ping", "-c", "4", req.Target())
		return commandResponse(stdout, stderr, err, "An error occurred while pinging.")

	case Dig:
		stdout, stderr, err := b.Command(ctx, "dig", "+short", req.Target())
		if err == nil && stderr == "" && stdout == "" {
			return Response{Text: "No records found."}
		}
		return commandResponse(stdout, stderr, err, "Error executing dig.")

	case Whois:
		stdout, stderr, err := b.Command(ctx, "whois", req.Target())
		return commandResponse(stdout, stderr, err, "Error executing whois.")

	case Nmap:
		return b.nmap(ctx, req.Args)

	case Curl, Wget:
		if b.Fetcher == nil {
			return Failure(fmt.Sprintf("%s: fetching is not configured.", req.Tool))
		}
		return b.Fetcher.Fetch(ctx, req.Tool, req.Target())
	}

	return Failure(fmt.Sprintf("%s: unsupported tool", req.Tool))
}

func (b *ExecBackend) nmap(ctx context.Context, args []string) Response {
	ctx, cancel := context.WithTimeout(ctx, b.NmapTimeout)
	defer cancel()

	stdout, stderr, err := b.Command(ctx, "nmap", args...)
	switch {
	case errors.Is(ctx.Err(), context.DeadlineExceeded):
		return Failure(fmt.Sprintf("Nmap scan timed out (limit: %s).", b.NmapTimeout))
	case err != nil && stdout != "":
		// nmap exits non-zero for partial scans that still produced a report.
		return Response{Text: stdout, Failed: true}
	case err != nil:
		return Failure(errorText(err, "Error executing nmap."))
	case stdout == "":
		// Status lines go to stderr when there's no report.
		return Response{Text: stderr}
	}
	return Response{Text: stdout}
}

func commandResponse(stdout, stderr string, err error, fallback string) Response {
	switch {
	case err != nil && stderr != "":
		return Failure(stderr)
	case err != nil:
		return Failure(errorText(err, fallback))
	case stderr != "":
		return Response{Text: stderr}
	}
	return Response{Text: stdout}
}

func errorText(err error, fallback string) string {
	if msg := err.Error(); msg != "" {
		return msg
	}
	return fallback
}
