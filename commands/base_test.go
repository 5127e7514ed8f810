package commands

import (
	"bytes"
	"context"
	"path/filepath"
	"sort"
	"strings"
	"testing"

	"github.com/natcat-sim/natcat/core/nettools"
	"github.com/natcat-sim/natcat/core/session"
	"github.com/natcat-sim/natcat/core/transcript"
	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAllCommands(t *testing.T) {
	for _, cmdEntry := range ListBuiltinCommands() {
		t.Run(cmdEntry.Name, func(t *testing.T) {
			if cmdEntry.Proc == nil {
				t.Fatal("nil command", cmdEntry.Name)
			}
			assert.NotEmpty(t, cmdEntry.Use)
			assert.NotEmpty(t, cmdEntry.Short)
		})
	}
}

func TestListBuiltinCommands_sorted(t *testing.T) {
	entries := ListBuiltinCommands()
	assert.True(t, sort.SliceIsSorted(entries, func(i, j int) bool {
		return entries[i].Name < entries[j].Name
	}))
}

func TestHelpText_registered(t *testing.T) {
	names := strings.Split(strings.TrimPrefix(helpText, "Available commands: "), ", ")
	require.Len(t, names, 22)

	for _, name := range names {
		_, ok := Lookup(name)
		assert.True(t, ok, "help lists unregistered command %q", name)
	}
}

func TestMustAddCmd_duplicate(t *testing.T) {
	assert.Panics(t, func() {
		mustAddCmd(CommandEntry{Name: "ls", Proc: Ls})
	})
	assert.Panics(t, func() {
		mustAddCmd(CommandEntry{Name: "not-a-command"})
	})
}

func TestSimpleCommand_help(t *testing.T) {
	cmd := &SimpleCommand{Use: "demo [-x]", Short: "Demonstrate help."}
	cmd.Flags().Bool('x', "an option")

	tr := transcript.New()
	in := NewInterpreter(session.NewDefault(), tr)
	p := &Proc{ctx: context.Background(), Args: []string{"demo", "--help"}, Session: in.session, tools: in.tools, out: tr, log: in.log}

	called := false
	status := cmd.Run(p, func() int {
		called = true
		return 0
	})

	assert.Equal(t, 0, status)
	assert.False(t, called)
	require.Len(t, tr.Lines(), 1)
	help := tr.Lines()[0].Content
	assert.True(t, strings.HasPrefix(help, "usage: demo [-x]\nDemonstrate help.\n\nFlags:\n"), help)
	assert.Contains(t, help, "an option")
}

func TestSimpleCommand_badFlag(t *testing.T) {
	tr := transcript.New()
	in := NewInterpreter(session.NewDefault(), tr)
	p := &Proc{ctx: context.Background(), Args: []string{"demo", "-q"}, Session: in.session, tools: in.tools, out: tr, log: in.log}

	cmd := &SimpleCommand{Use: "demo", Short: "Demonstrate errors."}
	status := cmd.Run(p, func() int {
		t.Fatal("callback ran after a parse error")
		return 0
	})

	assert.Equal(t, 1, status)
	require.Len(t, tr.Lines(), 1)
	assert.True(t, strings.HasPrefix(tr.Lines()[0].Content, "demo: "))
}

// testInterpreter creates an interpreter on a fresh session that uses the
// stub network backend.
func testInterpreter(t *testing.T) (*Interpreter, *transcript.Transcript, *nettools.StubBackend) {
	t.Helper()

	stub := &nettools.StubBackend{}
	tr := transcript.New()
	in := NewInterpreter(session.NewDefault(), tr, WithTools(nettools.NewService(stub)))
	return in, tr, stub
}

// run executes each line and renders the transcript the way a terminal would.
func run(t *testing.T, lines ...string) string {
	t.Helper()

	in, tr, _ := testInterpreter(t)
	s := in.Session()

	out := &bytes.Buffer{}
	w := transcript.NewWriter(out,
		transcript.WithEchoInput(true),
		transcript.WithPrompt(transcript.Prompt(s.User, s.Hostname, s.HomePath())))
	tr.Subscribe(w)

	for _, line := range lines {
		in.Execute(context.Background(), line)
	}
	require.NoError(t, w.Err())
	return out.String()
}

type goldenTestSuite map[string]goldenTest

type goldenTest struct {
	Lines []string
}

func (gts goldenTestSuite) Run(t *testing.T) {
	t.Helper()

	g := goldie.New(
		t,
		goldie.WithFixtureDir(filepath.Join("testdata", "golden")),
		goldie.WithDiffEngine(goldie.ColoredDiff),
		goldie.WithTestNameForDir(true),
	)

	for tn, tc := range gts {
		t.Run(tn, func(t *testing.T) {
			g.Assert(t, tn, []byte(run(t, tc.Lines...)))
		})
	}
}
