package commands

import (
	"bytes"
	"context"
	"fmt"
	"testing"

	"github.com/natcat-sim/natcat/core/logger"
	"github.com/natcat-sim/natcat/core/nettools"
	"github.com/natcat-sim/natcat/core/session"
	"github.com/natcat-sim/natcat/core/transcript"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ctx() context.Context {
	return context.Background()
}

func contents(tr *transcript.Transcript) []string {
	var out []string
	for _, line := range tr.Lines() {
		out = append(out, line.Content)
	}
	return out
}

func ExampleInterpreter_Execute() {
	tr := transcript.New()
	in := NewInterpreter(session.NewDefault(), tr)

	in.Execute(context.Background(), "pwd")
	in.Execute(context.Background(), "sudo whoami")
	in.Execute(context.Background(), "hunter2")

	for _, line := range tr.Lines() {
		fmt.Printf("%s: %s\n", line.Kind, line.Content)
	}

	// Output: input: pwd
	// output: /home/user
	// input: sudo whoami
	// output: [sudo] password for user:
	// output: root
}

func TestInterpreter_sudo(t *testing.T) {
	logBuf := &bytes.Buffer{}
	tr := transcript.New()
	s := session.NewDefault()
	in := NewInterpreter(s, tr, WithLogger(logger.NewJSONLinesLogger(logBuf).NewSession("test")))

	in.Execute(ctx(), "sudo pkg install curl")
	assert.True(t, s.AwaitingCredential())

	in.Execute(ctx(), "s3cret-password")
	assert.False(t, s.AwaitingCredential())

	assert.Equal(t, []string{
		"sudo pkg install curl",
		"[sudo] password for user:",
		"Downloading curl...",
		"Successfully installed curl.",
	}, contents(tr))
	assert.True(t, s.Packages.IsInstalled("curl"))
	assert.NotContains(t, logBuf.String(), "s3cret-password")

	// The next line is a normal command again.
	in.Execute(ctx(), "whoami")
	assert.Equal(t, "root", tr.Lines()[len(tr.Lines())-1].Content)
}

func TestInterpreter_sudoUsage(t *testing.T) {
	in, tr, _ := testInterpreter(t)
	in.Execute(ctx(), "sudo")

	assert.Equal(t, []string{"sudo", "usage: sudo [command]"}, contents(tr))
	assert.False(t, in.Session().AwaitingCredential())
}

func TestInterpreter_sudoUnknownCommand(t *testing.T) {
	in, tr, _ := testInterpreter(t)
	in.Execute(ctx(), "sudo reboot now")
	in.Execute(ctx(), "")

	assert.Equal(t, []string{
		"sudo reboot now",
		"[sudo] password for user:",
		"Command not found: reboot",
	}, contents(tr))
}

func TestInterpreter_emptyInput(t *testing.T) {
	in, tr, _ := testInterpreter(t)
	status := in.Execute(ctx(), "   \t ")

	assert.Equal(t, 0, status)
	require.Len(t, tr.Lines(), 1)
	assert.Equal(t, transcript.Input("", "/home/user"), tr.Lines()[0])
}

func TestInterpreter_inputRecordsCwd(t *testing.T) {
	in, tr, _ := testInterpreter(t)
	in.Execute(ctx(), "  cd /home  ")
	in.Execute(ctx(), "pwd")

	lines := tr.Lines()
	assert.Equal(t, transcript.Input("cd /home", "/home/user"), lines[0])
	assert.Equal(t, transcript.Input("pwd", "/home"), lines[1])
	assert.Equal(t, "/home", lines[2].Content)
}

func TestInterpreter_unknownCommand(t *testing.T) {
	logBuf := &bytes.Buffer{}
	tr := transcript.New()
	in := NewInterpreter(session.NewDefault(), tr, WithLogger(logger.NewJSONLinesLogger(logBuf).NewSession("test")))

	status := in.Execute(ctx(), "telnet example.com")

	assert.Equal(t, 127, status)
	assert.Equal(t, []string{"telnet example.com", "Command not found: telnet"}, contents(tr))
	assert.Contains(t, logBuf.String(), `"event":"unknown_command"`)
}

func TestInterpreter_clear(t *testing.T) {
	in, tr, _ := testInterpreter(t)
	in.Execute(ctx(), "ls")
	in.Execute(ctx(), "clear")

	assert.Empty(t, tr.Lines())

	in.Execute(ctx(), "pwd")
	assert.Equal(t, []string{"pwd", "/home/user"}, contents(tr))
}

func TestInterpreter_panic(t *testing.T) {
	mustAddCmd(CommandEntry{Name: "explode", Use: "explode", Short: "Panic.", Proc: func(p *Proc) int {
		panic("boom")
	}})
	defer delete(AllCommands, "explode")

	logBuf := &bytes.Buffer{}
	tr := transcript.New()
	in := NewInterpreter(session.NewDefault(), tr, WithLogger(logger.NewJSONLinesLogger(logBuf).NewSession("test")))

	var status int
	assert.NotPanics(t, func() {
		status = in.Execute(ctx(), "explode")
	})
	assert.Equal(t, 1, status)
	assert.Equal(t, []string{"explode", "explode: internal error"}, contents(tr))
	assert.Contains(t, logBuf.String(), `"event":"panic"`)
}

func TestInterpreter_progressBeforeResult(t *testing.T) {
	tr := transcript.New()
	tools := nettools.RunnerFunc(func(_ context.Context, req nettools.Request) nettools.Response {
		// The progress line must already be visible while the tool runs.
		lines := tr.Lines()
		assert.Equal(t, "Pinging example.com...", lines[len(lines)-1].Content)
		return nettools.Response{Text: "pong"}
	})
	in := NewInterpreter(session.NewDefault(), tr, WithTools(tools))

	in.Execute(ctx(), "ping example.com")

	assert.Equal(t, []string{"ping example.com", "Pinging example.com...", "pong"}, contents(tr))
}

func TestInterpreter_defaultToolsDisabled(t *testing.T) {
	tr := transcript.New()
	in := NewInterpreter(session.NewDefault(), tr)

	status := in.Execute(ctx(), "dig example.com")

	assert.Equal(t, 1, status)
	assert.Equal(t, "dig: network access is disabled in this simulator.", tr.Lines()[2].Content)
}

func TestInterpreter_logsRunCommand(t *testing.T) {
	logBuf := &bytes.Buffer{}
	in := NewInterpreter(session.NewDefault(), transcript.New(), WithLogger(logger.NewJSONLinesLogger(logBuf).NewSession("test")))
	in.Execute(ctx(), "ls /home /tmp")

	var entries []*logger.LogEntry
	require.NoError(t, logger.ReadJSONLinesLog(logBuf, func(le *logger.LogEntry) {
		entries = append(entries, le)
	}))
	require.Len(t, entries, 1)
	assert.Equal(t, logger.EventRunCommand, entries[0].Event)
	assert.Equal(t, "ls", entries[0].Command)
	assert.Equal(t, 2, entries[0].ArgCount)
}

func TestInterpreter_isolation(t *testing.T) {
	a, _, _ := testInterpreter(t)
	b, trB, _ := testInterpreter(t)

	a.Execute(ctx(), "mkdir only-in-a")
	a.Execute(ctx(), "pkg install curl")
	a.Execute(ctx(), "sudo ls")

	b.Execute(ctx(), "ls")
	assert.Equal(t, "welcome.txt  notes.txt", trB.Lines()[1].Content)
	assert.False(t, b.Session().Packages.IsInstalled("curl"))
	assert.False(t, b.Session().AwaitingCredential())
}
