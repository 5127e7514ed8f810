package commands

import (
	"github.com/natcat-sim/natcat/core/nettools"
)

// Curl prints the body of a URL, it must be installed first.
func Curl(p *Proc) int {
	if !p.requirePackage("curl") {
		return 127
	}

	if len(p.Args) < 2 {
		p.Println("usage: curl [url]")
		return 1
	}

	return runTool(p, "Fetching %s...", nettools.Request{Tool: nettools.Curl, Args: p.Args[1:2]})
}

func init() {
	mustAddCmd(CommandEntry{Name: "curl", Use: "curl [url]", Short: "Transfer a URL.", Proc: Curl})
}
