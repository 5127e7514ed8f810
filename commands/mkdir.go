package commands

// Mkdir creates a directory in the working directory.
func Mkdir(p *Proc) int {
	return withOperand(p, p.Session.FS.MakeDirectory)
}

func init() {
	mustAddCmd(CommandEntry{Name: "mkdir", Use: "mkdir <name>", Short: "Make a directory.", Proc: Mkdir})
}
