package commands

// Clear implements the UNIX clear command. Nothing is appended afterwards,
// including the command itself.
func Clear(p *Proc) int {
	p.Clear()
	return 0
}

func init() {
	mustAddCmd(CommandEntry{Name: "clear", Use: "clear", Short: "Clear the terminal screen.", Proc: Clear})
}
