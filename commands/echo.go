package commands

import (
	"strings"
)

const redirectOp = ">"

// Echo prints its arguments. A literal ">" token redirects the text into a
// file in the working directory.
func Echo(p *Proc) int {
	redirect := -1
	for i, arg := range p.Args {
		if arg == redirectOp {
			redirect = i
			break
		}
	}

	if redirect < 0 {
		p.Println(strings.Join(p.Args[1:], " "))
		return 0
	}

	if redirect == 1 || redirect == len(p.Args)-1 {
		p.Println(`usage: echo "text" > file`)
		return 1
	}

	content := stripQuotes(strings.Join(p.Args[1:redirect], " "))
	out := p.Session.FS.WriteFile(p.Args[redirect+1], content)
	p.Println(out)
	return statusFor(out, "bash: ")
}

// stripQuotes removes one leading and one trailing double quote.
func stripQuotes(s string) string {
	s = strings.TrimPrefix(s, `"`)
	return strings.TrimSuffix(s, `"`)
}

func init() {
	mustAddCmd(CommandEntry{Name: "echo", Use: `echo <text> [> file]`, Short: "Display a line of text.", Proc: Echo})
}
