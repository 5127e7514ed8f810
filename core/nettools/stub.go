package nettools

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"
)

// Backend modes.
const (
	ModeExec     = "exec"
	ModeStub     = "stub"
	ModeDisabled = "disabled"
)

// Options selects and configures a backend.
type Options struct {
	Mode                string
	NmapTimeout         time.Duration
	FetchLimit          int
	FetchBytesPerSecond int64
}

// New creates a validating Service for the configured backend.
func New(opts Options) (*Service, error) {
	switch opts.Mode {
	case ModeExec:
		fetcher := NewFetcher(opts.FetchLimit, opts.FetchBytesPerSecond)
		return NewService(NewExecBackend(opts.NmapTimeout, fetcher)), nil
	case ModeStub, "":
		return NewService(&StubBackend{}), nil
	case ModeDisabled:
		return NewService(DisabledBackend{}), nil
	}
	return nil, fmt.Errorf("unknown network mode %q", opts.Mode)
}

// DisabledBackend refuses every request.
type DisabledBackend struct{}

// Run implements Runner.
func (DisabledBackend) Run(_ context.Context, req Request) Response {
	return Failure(fmt.Sprintf("%s: network access is disabled in this simulator.", req.Tool))
}

const stubAddress = "203.0.113.10"

// StubBackend returns canned, deterministic output and remembers requests.
type StubBackend struct {
	mu    sync.Mutex
	calls []Request
}

// Calls returns the requests received so far.
func (b *StubBackend) Calls() []Request {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]Request(nil), b.calls...)
}

// Run implements Runner.
func (b *StubBackend) Run(_ context.Context, req Request) Response {
	b.mu.Lock()
	b.calls = append(b.calls, req)
	b.mu.Unlock()

	target := req.Target()
	switch req.Tool {
	case Ping:
		var sb strings.Builder
		fmt.Fprintf(&sb, "PING %s (%s) 56(84) bytes of data.\n", target, stubAddress)
		for seq := 1; seq <= 4; seq++ {
			fmt.Fprintf(&sb, "64 bytes from %s: icmp_seq=%d ttl=56 time=1%d.4 ms\n", stubAddress, seq, seq)
		}
		fmt.Fprintf(&sb, "\n--- %s ping statistics ---\n", target)
		sb.WriteString("4 packets transmitted, 4 received, 0% packet loss, time 3004ms\n")
		sb.WriteString("rtt min/avg/max/mdev = 11.400/12.900/14.400/1.118 ms")
		return Response{Text: sb.String()}

	case Dig:
		return Response{Text: stubAddress}

	case Whois:
		domain := strings.ToUpper(target)
		return Response{Text: strings.Join([]string{
			"   Domain Name: " + domain,
			"   Registry Domain ID: 2336799_DOMAIN_COM-VRSN",
			"   Registrar: Example Registrar, Inc.",
			"   Creation Date: 1995-08-14T04:00:00Z",
			"   Name Server: A.IANA-SERVERS.NET",
			"   Name Server: B.IANA-SERVERS.NET",
		}, "\n")}

	case Nmap:
		scanTarget := ""
		if len(req.Args) > 0 {
			scanTarget = req.Args[len(req.Args)-1]
		}
		return Response{Text: strings.Join([]string{
			"Starting Nmap 7.80 ( https://nmap.org )",
			fmt.Sprintf("Nmap scan report for %s (%s)", scanTarget, stubAddress),
			"Host is up (0.012s latency).",
			"Not shown: 998 closed ports",
			"PORT   STATE SERVICE",
			"22/tcp open  ssh",
			"80/tcp open  http",
			"",
			"Nmap done: 1 IP address (1 host up) scanned in 0.42 seconds",
		}, "\n")}

	case Curl, Wget:
		body := fmt.Sprintf("<html><head><title>Example Domain</title></head><body><h1>Example Domain</h1><p>Fetched %s</p></body></html>", target)
		return Response{Text: body, Body: body}
	}

	return Failure(fmt.Sprintf("%s: unsupported tool", req.Tool))
}
