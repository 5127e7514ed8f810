package commands

// Cat prints the contents of a file.
func Cat(p *Proc) int {
	return withOperand(p, p.Session.FS.ReadFile)
}

func init() {
	mustAddCmd(CommandEntry{Name: "cat", Use: "cat <path>", Short: "Print a file.", Proc: Cat})
}
