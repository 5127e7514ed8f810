package commands

// Touch creates an empty file, existing files are left alone.
func Touch(p *Proc) int {
	return withOperand(p, p.Session.FS.CreateEmptyFile)
}

func init() {
	mustAddCmd(CommandEntry{Name: "touch", Use: "touch <name>", Short: "Create an empty file.", Proc: Touch})
}
