package commands

// Pwd implements the POSIX pwd command.
func Pwd(p *Proc) int {
	p.Println(p.Session.FS.PrintWorkingDirectory())
	return 0
}

func init() {
	mustAddCmd(CommandEntry{Name: "pwd", Use: "pwd", Short: "Print the name of the current working directory.", Proc: Pwd})
}
