package cmd

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/natcat-sim/natcat/core"
	"github.com/natcat-sim/natcat/core/config"
	"github.com/natcat-sim/natcat/core/logger"
	"github.com/natcat-sim/natcat/core/nettools"
	"github.com/natcat-sim/natcat/core/session"
	"github.com/natcat-sim/natcat/core/transcript"
	"github.com/natcat-sim/natcat/core/ttylog"
	"github.com/spf13/cobra"
)

var (
	playgroundRecordPath  string
	playgroundNetworkMode string
)

// playgroundCmd runs the simulator in the local terminal
var playgroundCmd = &cobra.Command{
	Use:   "playground",
	Short: "Run the simulator in this terminal without starting a server.",
	Args:  cobra.ExactArgs(0),
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true

		dir, err := os.MkdirTemp("", "playground")
		if err != nil {
			return err
		}
		defer os.RemoveAll(dir)

		playgroundLogger := log.New(cmd.ErrOrStderr(), "[playground] ", 0)
		if err := config.Initialize(dir, playgroundLogger); err != nil {
			return err
		}
		cfg, err := config.Load(dir)
		if err != nil {
			return err
		}

		networkOpts := cfg.NetworkOptions()
		if playgroundNetworkMode != "" {
			networkOpts.Mode = playgroundNetworkMode
		}
		tools, err := nettools.New(networkOpts)
		if err != nil {
			return err
		}

		logFd, err := cfg.OpenEventLog()
		if err != nil {
			return err
		}
		defer logFd.Close()
		sessionLogger := logger.NewJSONLinesLogger(logFd).NewSession("playground")

		playgroundLogger.Printf("Logging to: file://%s\n", dir)
		playgroundLogger.Printf("See logs with: tail -f %s\n", filepath.Join(dir, config.EventLogName))
		playgroundLogger.Println(strings.Repeat("=", 80))

		state := session.New(cfg.SessionOptions())

		var subscribers []transcript.Subscriber
		if playgroundRecordPath != "" {
			recordFd, err := os.Create(playgroundRecordPath)
			if err != nil {
				return err
			}
			defer recordFd.Close()

			recorder := ttylog.NewRecorder(
				ttylog.NewAsciicastLogSink(recordFd, "natcat playground"),
				transcript.Prompt(state.User, state.Hostname, state.HomePath()))
			subscribers = append(subscribers, recorder)
		}

		shell, err := core.NewShell(context.Background(), core.ShellConfig{
			Stdout: cmd.OutOrStdout(),
			Stderr: cmd.ErrOrStderr(),
			Color:  !color.NoColor,
			Motd:   cfg.Motd,
		}, state, tools, sessionLogger, subscribers...)
		if err != nil {
			return err
		}

		sessionLogger.SessionStarted(state.User, "")
		err = shell.Run()
		sessionLogger.SessionEnded(shell.Submitted())

		fmt.Fprintln(cmd.OutOrStdout(), "Goodbye!")
		return err
	},
}

func init() {
	rootCmd.AddCommand(playgroundCmd)

	playgroundCmd.Flags().StringVar(&playgroundRecordPath, "record", "", "Record the session to an asciicast file.")
	playgroundCmd.Flags().StringVar(&playgroundNetworkMode, "network", "", "Override the network mode: exec, stub or disabled.")
}
