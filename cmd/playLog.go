/*
Copyright © 2021 Joseph Lewis <joseph@josephlewis.net>

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"fmt"
	"time"

	"github.com/natcat-sim/natcat/core/ttylog"
	"github.com/spf13/cobra"
)

// replayCmd represents the replay command
var replayCmd = &cobra.Command{
	Use:   "replay FILE.cast",
	Short: "Play a recorded interactive session.",
	Long:  `Prints the recording's title, then plays it back to the current terminal in real time.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true
		fd, err := openRecording(args[0])
		if err != nil {
			return err
		}
		defer fd.Close()

		source := ttylog.NewAsciicastLogSource(fd)
		header, err := source.Header()
		if err != nil {
			return err
		}
		if header.Title != "" {
			fmt.Fprintf(cmd.ErrOrStderr(), "Replaying %q\n", header.Title)
		}

		sink := ttylog.NewRealTimePlayback(idleTimeLimit, ttylog.NewClientOutput(cmd.OutOrStdout()))
		return ttylog.Replay(source, sink)
	},
}

func init() {
	rootCmd.AddCommand(replayCmd)

	replayCmd.Flags().DurationVarP(&idleTimeLimit, "idle-time-limit", "i", 3*time.Second, "Maximum time output can be idle. (e.g. 3s, 2m, 100ms)")
}
