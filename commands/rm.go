package commands

// Rm removes a single file.
func Rm(p *Proc) int {
	return withOperand(p, p.Session.FS.Remove)
}

func init() {
	mustAddCmd(CommandEntry{Name: "rm", Use: "rm <path>", Short: "Remove a file.", Proc: Rm})
}
