package commands

import (
	"fmt"
	"strings"
)

// Sudo stores the rest of the line and asks for a password. Whatever is
// typed next is accepted and the stored command runs.
func Sudo(p *Proc) int {
	if len(p.Args) < 2 {
		p.Println("usage: sudo [command]")
		return 1
	}

	p.Session.SetPending(strings.Join(p.Args[1:], " "))
	p.Println(fmt.Sprintf("[sudo] password for %s:", p.Session.User))
	return 0
}

func init() {
	mustAddCmd(CommandEntry{Name: "sudo", Use: "sudo [command]", Short: "Execute a command as another user.", Proc: Sudo})
}
