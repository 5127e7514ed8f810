package commands

// Whoami prints the configured identity, arguments are ignored.
func Whoami(p *Proc) int {
	p.Println(p.Session.Identity)
	return 0
}

func init() {
	mustAddCmd(CommandEntry{Name: "whoami", Use: "whoami", Short: "Print the current user.", Proc: Whoami})
}
