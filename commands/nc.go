package commands

import (
	"fmt"
)

const ncUsage = `OpenBSD netcat (Debian patch); -h for help
usage: nc [-46CDdFhklNnrStUuvZz] [-I length] [-i interval] [-M ttl]
          [-m minttl] [-O length] [-P proxy_username] [-p source_port]
          [-q seconds] [-s source] [-T keyword] [-V rtable] [-W recvlimit]
          [-w timeout] [-X proxy_protocol] [-x proxy_address[:port]]
          [destination] [port]`

const (
	ncBoolFlags  = "46CDdFkNnrStUuvZz"
	ncValueFlags = "IiMmOPqsTVWwXx"
)

// Nc parses netcat's options but never opens a socket.
func Nc(p *Proc) int {
	cmd := &SimpleCommand{
		Use:   "nc [options] [destination] [port]",
		Short: "Arbitrary TCP and UDP connections and listens.",
		Usage: ncUsage,

		// Real nc prints its usage for bad options, which is the same path
		// as no options.
		NeverBail:    true,
		Interspersed: true,
	}

	flags := cmd.Flags()
	cmd.ShowHelp = flags.Bool('h', "show this help and exit")
	listen := flags.Bool('l', "listen mode, for inbound connects")
	port := flags.String('p', "", "local port number")
	for _, r := range ncBoolFlags {
		flags.Bool(r)
	}
	for _, r := range ncValueFlags {
		flags.String(r, "")
	}

	return cmd.Run(p, func() int {
		switch {
		case len(p.Args) == 1:
			p.Println(ncUsage)
			return 1
		case *listen:
			listenPort := *port
			if listenPort == "" {
				listenPort = "any"
			}
			p.Println(fmt.Sprintf("Listening on [0.0.0.0] (family 0, port %s)", listenPort))
			return 0
		default:
			p.Println("nc: missing port number")
			return 1
		}
	})
}

func init() {
	mustAddCmd(CommandEntry{Name: "nc", Use: "nc [options] [destination] [port]", Short: "Arbitrary TCP and UDP connections and listens.", Proc: Nc})
}
