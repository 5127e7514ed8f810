package commands

const helpText = "Available commands: help, clear, nc, echo, whoami, ls, cd, pwd, mkdir, touch, cat, rm, ping, dig, whois, nmap, pkg, curl, npm, cowsay, figlet, sudo"

// Help lists the available commands.
func Help(p *Proc) int {
	p.Println(helpText)
	return 0
}

func init() {
	mustAddCmd(CommandEntry{Name: "help", Use: "help", Short: "List the available commands.", Proc: Help})
}
