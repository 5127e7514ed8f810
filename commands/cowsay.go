package commands

import (
	"strings"
	"unicode/utf8"
)

const cow = `        \   ^__^
         \  (oo)\_______
            (__)\       )\/\
                ||----w |
                ||     ||`

// Cowsay draws a cow saying the arguments.
func Cowsay(p *Proc) int {
	if !p.requireRuntime("cowsay") {
		return 127
	}

	text := strings.Join(p.Args[1:], " ")
	if text == "" {
		text = "Moo!"
	}

	p.Println(cowsay(text))
	return 0
}

func cowsay(text string) string {
	width := utf8.RuneCountInString(text) + 2

	var b strings.Builder
	b.WriteString(" " + strings.Repeat("_", width) + "\n")
	b.WriteString("< " + text + " >\n")
	b.WriteString(" " + strings.Repeat("-", width) + "\n")
	b.WriteString(cow)
	return b.String()
}

func init() {
	mustAddCmd(CommandEntry{Name: "cowsay", Use: "cowsay [text]", Short: "A talking cow.", Proc: Cowsay})
}
