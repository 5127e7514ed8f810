package commands

// Cd changes the working directory, with no argument it goes home.
func Cd(p *Proc) int {
	out := p.Session.FS.ChangeDirectory(p.Arg(1))
	p.Println(out)
	return statusFor(out, "bash: cd: ")
}

func init() {
	mustAddCmd(CommandEntry{Name: "cd", Use: "cd [path]", Short: "Change the working directory.", Proc: Cd})
}
