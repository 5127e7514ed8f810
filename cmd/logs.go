package cmd

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/natcat-sim/natcat/core/ttylog"
	"github.com/spf13/cobra"
)

var (
	fixLineEndings bool
	idleTimeLimit  time.Duration
)

var logsCmd = &cobra.Command{
	Use:     "logs",
	Aliases: []string{"log"},
	Short:   "Explore the recorded sessions.",
}

// listCommand lists the recordings the server stored
var listCommand = &cobra.Command{
	Use:   "list",
	Short: "List the recorded sessions in the config directory.",
	Args:  cobra.ExactArgs(0),
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true

		config, err := loadConfig()
		if err != nil {
			return err
		}

		names, err := config.ListSessionLogs()
		if err != nil {
			return err
		}
		for _, name := range names {
			fmt.Fprintln(cmd.OutOrStdout(), name)
		}
		return nil
	},
}

// playCommand plays a recording in real time
var playCommand = &cobra.Command{
	Use:   "play",
	Short: "Replay a recorded interactive session in the terminal.",
	Long:  `Plays a recorded interactive session back to the current terminal.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true

		sink := ttylog.NewClientOutput(cmd.OutOrStdout())
		sink = ttylog.NewRealTimePlayback(idleTimeLimit, sink)
		return replayFile(args[0], sink)
	},
}

// catCommand prints a recording without delays
var catCommand = &cobra.Command{
	Use:   "cat",
	Short: "Print full output of recorded log to a terminal.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true

		return replayFile(args[0], ttylog.NewClientOutput(cmd.OutOrStdout()))
	},
}

// replayFile plays the recording at path into sink. Bare names are looked up
// in the config directory's recordings.
func replayFile(path string, sink ttylog.LogSink) error {
	fd, err := openRecording(path)
	if err != nil {
		return err
	}
	defer fd.Close()

	return ttylog.Replay(ttylog.NewAsciicastLogSource(fd), applyMiddleware(sink))
}

func openRecording(path string) (io.ReadCloser, error) {
	fd, err := os.Open(path)
	if err == nil || !os.IsNotExist(err) {
		return fd, err
	}

	config, cfgErr := loadConfig()
	if cfgErr != nil {
		return nil, err
	}
	return config.OpenSessionLog(path)
}

func applyMiddleware(sink ttylog.LogSink) ttylog.LogSink {
	if fixLineEndings {
		sink = ttylog.NewCRLFAdapter(sink)
	}

	return sink
}

func init() {
	rootCmd.AddCommand(logsCmd)
	logsCmd.AddCommand(listCommand)
	logsCmd.AddCommand(playCommand)
	logsCmd.AddCommand(catCommand)

	for _, cmd := range []*cobra.Command{playCommand, catCommand} {
		cmd.Flags().BoolVar(&fixLineEndings, "crlf", false, "Convert bare newlines to CRLF for raw terminals.")
	}

	// cat doesn't allow idle time
	for _, cmd := range []*cobra.Command{playCommand} {
		cmd.Flags().DurationVarP(&idleTimeLimit, "idle-time-limit", "i", 3*time.Second, "Maximum time output can be idle. (e.g. 3s, 2m, 100ms)")
	}
}
