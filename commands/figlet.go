package commands

import (
	"strings"

	figure "github.com/common-nighthawk/go-figure"
)

// Figlet renders the arguments as large ASCII letters.
func Figlet(p *Proc) int {
	if !p.requireRuntime("figlet") {
		return 127
	}

	text := strings.Join(p.Args[1:], " ")
	if text == "" {
		text = "Hello"
	}

	p.Println(figlet(text))
	return 0
}

// figlet renders text in the standard font. Characters the font can't draw
// become question marks.
func figlet(text string) string {
	rows := figure.NewFigure(text, "", false).Slicify()
	return strings.TrimRight(strings.Join(rows, "\n"), "\n")
}

func init() {
	mustAddCmd(CommandEntry{Name: "figlet", Use: "figlet [text]", Short: "Display large characters made up of ordinary screen characters.", Proc: Figlet})
}
