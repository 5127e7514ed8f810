package commands

// NoOpCommand is a command that only prints canned output once its package is
// installed.
type NoOpCommand struct {
	Name     string
	Use      string
	Short    string
	Package  string
	Stdout   string
	ExitCode int
}

// ToCommand converts the no-op command description to a functioning command.
func (c *NoOpCommand) ToCommand() HandlerFunc {
	return func(p *Proc) int {
		if !p.requirePackage(c.Package) {
			return 127
		}

		cmd := &SimpleCommand{
			Use:   c.Use,
			Short: c.Short,
			// Never bail, even if args are bad.
			NeverBail: true,
		}

		return cmd.Run(p, func() int {
			p.Println(c.Stdout)
			return c.ExitCode
		})
	}
}

var noOpCommands = []NoOpCommand{
	{
		Name:     "htop",
		Use:      "htop [-dCFhpustvH]",
		Short:    "Interactive process viewer.",
		Package:  "htop",
		Stdout:   "Error opening terminal: unknown.",
		ExitCode: 1,
	},
	{
		Name:     "vim",
		Use:      "vim [arguments] [file ..]",
		Short:    "Vi IMproved, a programmer's text editor.",
		Package:  "vim",
		Stdout:   "Vim: Warning: Output is not to a terminal",
		ExitCode: 1,
	},
	{
		Name:    "node",
		Use:     "node [options] [ script.js ] [arguments]",
		Short:   "Server-side JavaScript runtime.",
		Package: "node",
		Stdout:  "Welcome to Node.js v18.19.0.\nType \".help\" for more information.",
	},
}

func init() {
	for i := range noOpCommands {
		cmd := noOpCommands[i]
		mustAddCmd(CommandEntry{Name: cmd.Name, Use: cmd.Use, Short: cmd.Short, Proc: cmd.ToCommand()})
	}
}
