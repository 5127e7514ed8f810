package core

import (
	"github.com/fatih/color"
	"github.com/natcat-sim/natcat/core/transcript"
)

// ColorPrompt renders a bash style `user@host:cwd$ ` prompt. When colored is
// set the user and directory are highlighted even if the local stdout isn't a
// terminal, which is the case for remote sessions.
func ColorPrompt(user, host, home string, colored bool) transcript.PromptFunc {
	if !colored {
		return transcript.Prompt(user, host, home)
	}

	userHost := color.New(color.FgGreen, color.Bold)
	userHost.EnableColor()
	dir := color.New(color.FgBlue, color.Bold)
	dir.EnableColor()

	return func(cwd string) string {
		return userHost.Sprint(user+"@"+host) + ":" + dir.Sprint(transcript.ShortenHome(cwd, home)) + "$ "
	}
}
