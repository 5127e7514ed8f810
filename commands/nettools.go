package commands

import (
	"fmt"
	"strings"

	"github.com/natcat-sim/natcat/core/nettools"
)

// toolCommand builds a command that prints a progress line and then the
// network tool's result. An argument is required.
func toolCommand(tool nettools.Tool, usage, progress string) HandlerFunc {
	return func(p *Proc) int {
		if len(p.Args) < 2 {
			p.Println(usage)
			return 1
		}

		return runTool(p, progress, nettools.Request{Tool: tool, Args: p.Args[1:2]})
	}
}

func runTool(p *Proc, progress string, req nettools.Request) int {
	resp := p.RunTool(fmt.Sprintf(progress, strings.Join(req.Args, " ")), req)
	if resp.Failed {
		return 1
	}
	return 0
}

// Nmap passes all arguments through, the tool checks them against an
// allow-list.
func Nmap(p *Proc) int {
	if len(p.Args) < 2 {
		p.Println("usage: nmap [flags] [target]")
		return 1
	}

	return runTool(p, "Starting Nmap scan on %s...", nettools.Request{Tool: nettools.Nmap, Args: p.Args[1:]})
}

func init() {
	mustAddCmd(CommandEntry{
		Name:  "ping",
		Use:   "ping [host]",
		Short: "Send ICMP ECHO_REQUEST to network hosts.",
		Proc:  toolCommand(nettools.Ping, "usage: ping [host]", "Pinging %s..."),
	})
	mustAddCmd(CommandEntry{
		Name:  "dig",
		Use:   "dig [domain]",
		Short: "DNS lookup utility.",
		Proc:  toolCommand(nettools.Dig, "usage: dig [domain]", "Querying %s..."),
	})
	mustAddCmd(CommandEntry{
		Name:  "whois",
		Use:   "whois [domain]",
		Short: "Client for the whois directory service.",
		Proc:  toolCommand(nettools.Whois, "usage: whois [domain]", "Querying whois for %s..."),
	})
	mustAddCmd(CommandEntry{
		Name:  "nmap",
		Use:   "nmap [flags] [target]",
		Short: "Network exploration tool and security / port scanner.",
		Proc:  Nmap,
	})
}
