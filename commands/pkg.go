package commands

import (
	"fmt"
	"strings"
)

// Pkg manages the simulated system packages.
func Pkg(p *Proc) int {
	if len(p.Args) < 2 {
		p.Println("usage: pkg [install|list] [package]")
		return 1
	}

	registry := p.Session.Packages
	switch sub := p.Args[1]; sub {
	case "list":
		installed := registry.List()
		if len(installed) == 0 {
			p.Println("No packages installed.")
			return 0
		}
		p.Println("Installed packages:\n" + strings.Join(installed, "\n"))
		return 0

	case "search":
		available := registry.Available()
		if len(available) == 0 {
			p.Println("No packages available.")
			return 0
		}
		p.Println("Available packages:\n" + strings.Join(available, "\n"))
		return 0

	case "install":
		name := p.Arg(2)
		switch {
		case name == "":
			p.Println("pkg install: missing package name")
			return 1
		case registry.IsInstalled(name):
			p.Println(fmt.Sprintf("pkg: %s is already installed.", name))
			return 0
		case !registry.IsAvailable(name):
			p.Println(fmt.Sprintf("pkg: package '%s' not found in repositories.", name))
			return 1
		}

		p.Println(fmt.Sprintf("Downloading %s...", name))
		registry.Install(name)
		p.Println(fmt.Sprintf("Successfully installed %s.", name))
		return 0

	default:
		p.Println(fmt.Sprintf("pkg: unknown subcommand '%s'", sub))
		return 1
	}
}

func init() {
	mustAddCmd(CommandEntry{Name: "pkg", Use: "pkg [install|list|search] [package]", Short: "Install and list packages.", Proc: Pkg})
}
