package cmd

import (
	"bytes"
	"io/ioutil"
	"log"
	"testing"

	"github.com/natcat-sim/natcat/core/config"
	"github.com/natcat-sim/natcat/core/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) string {
	t.Helper()

	out := &bytes.Buffer{}
	rootCmd.SetOut(out)
	rootCmd.SetErr(out)
	rootCmd.SetArgs(args)
	require.NoError(t, rootCmd.Execute())
	return out.String()
}

func initializedDir(t *testing.T) (string, *config.Configuration) {
	t.Helper()

	dir := t.TempDir()
	require.NoError(t, config.Initialize(dir, log.New(ioutil.Discard, "", 0)))
	cfg, err := config.Load(dir)
	require.NoError(t, err)
	return dir, cfg
}

func TestBuiltins(t *testing.T) {
	out := execute(t, "builtins")

	assert.Contains(t, out, "nc")
	assert.Contains(t, out, "cowsay")
	assert.Contains(t, out, "List the available commands.")
}

func TestEvents(t *testing.T) {
	dir, cfg := initializedDir(t)

	fd, err := cfg.OpenEventLog()
	require.NoError(t, err)
	session := logger.NewJSONLinesLogger(fd).NewSession("playground")
	session.SessionStarted("user", "")
	session.RunCommand("nc", 1)
	session.UnknownCommand("telnet")
	session.SessionEnded(3)
	require.NoError(t, fd.Close())

	t.Run("report", func(t *testing.T) {
		out := execute(t, "events", "report", "--config", dir)

		assert.Contains(t, out, "log_entries: 4")
		assert.Contains(t, out, "telnet: 1")
	})

	t.Run("sessions", func(t *testing.T) {
		out := execute(t, "events", "sessions", "--config", dir)

		assert.Contains(t, out, session.ID())
		assert.Contains(t, out, "- nc")
		assert.Contains(t, out, "- telnet")
	})
}

func TestLogsList(t *testing.T) {
	dir, cfg := initializedDir(t)

	fd, err := cfg.CreateSessionLog("abc.cast")
	require.NoError(t, err)
	require.NoError(t, fd.Close())

	assert.Equal(t, "abc.cast\n", execute(t, "logs", "list", "--config", dir))
}
