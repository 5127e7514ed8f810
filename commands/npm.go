package commands

import (
	"fmt"
)

// Npm installs runtime packages. Only allow-listed packages become commands,
// anything else is recorded but stays unrunnable.
func Npm(p *Proc) int {
	if !p.requirePackage("npm") {
		return 127
	}

	if len(p.Args) < 3 || p.Args[1] != "install" {
		p.Println("usage: npm install <package>")
		return 1
	}

	name := p.Args[2]
	p.Println(fmt.Sprintf("npm: installing %s...", name))
	p.Session.Runtime.Install(name)

	if p.Session.IsNpmExecutable(name) {
		p.Println(fmt.Sprintf("+ %s@1.0.0\nadded 1 package in 0.5s", name))
	} else {
		p.Println(fmt.Sprintf("+ %s@latest\nadded 1 package in 0.5s\n(Note: This package is installed but cannot be executed in this simulator)", name))
	}
	return 0
}

func init() {
	mustAddCmd(CommandEntry{Name: "npm", Use: "npm install <package>", Short: "Install node packages.", Proc: Npm})
}
