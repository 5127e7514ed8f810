package commands

// Ls implements the UNIX ls command for a single optional path.
func Ls(p *Proc) int {
	out := p.Session.FS.List(p.Arg(1))
	p.Println(out)
	return statusFor(out, "ls: ")
}

func init() {
	mustAddCmd(CommandEntry{Name: "ls", Use: "ls [path]", Short: "List directory contents.", Proc: Ls})
}
