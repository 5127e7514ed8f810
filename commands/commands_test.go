package commands

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWhoami(t *testing.T) {
	cases := goldenTestSuite{
		"no-arg":       {[]string{"whoami"}},
		"ignores-args": {[]string{"whoami --help"}},
	}

	cases.Run(t)
}

func TestFilesystem(t *testing.T) {
	cases := goldenTestSuite{
		"tour": {[]string{
			"ls",
			"cat welcome.txt",
			"mkdir projects",
			"cd projects",
			"pwd",
			`echo "hello world" > a.txt`,
			"cat a.txt",
			"ls",
			"cd ..",
			"rm projects",
			"cd /nope",
			"touch",
			"cd /",
			"ls",
		}},
		"missing-operand": {[]string{"mkdir", "touch", "cat", "rm"}},
		"errors": {[]string{
			"mkdir notes.txt",
			"cat nope.txt",
			"cat /home",
			"rm /home/user/nope",
			"cd notes.txt",
			"ls /nope",
		}},
	}

	cases.Run(t)
}

func TestEcho(t *testing.T) {
	cases := goldenTestSuite{
		"plain":    {[]string{`echo "hi there"`, "echo"}},
		"redirect": {[]string{`echo "a b" > out.txt`, "cat out.txt", "echo again > out.txt", "cat out.txt"}},
		"usage":    {[]string{"echo > file", "echo text >"}},
	}

	cases.Run(t)
}

func TestPkg(t *testing.T) {
	cases := goldenTestSuite{
		"usage":              {[]string{"pkg"}},
		"list-empty":         {[]string{"pkg list"}},
		"install":            {[]string{"pkg install curl", "pkg install curl", "pkg list"}},
		"not-found":          {[]string{"pkg install emacs"}},
		"missing-name":       {[]string{"pkg install"}},
		"unknown-subcommand": {[]string{"pkg remove curl"}},
		"search":             {[]string{"pkg search"}},
	}

	cases.Run(t)
}

func TestNpm(t *testing.T) {
	cases := goldenTestSuite{
		"not-installed": {[]string{"npm install cowsay"}},
		"usage":         {[]string{"pkg install npm", "npm", "npm update cowsay"}},
		"unsupported":   {[]string{"pkg install npm", "npm install left-pad", "npm install left-pad", "left-pad"}},
	}

	cases.Run(t)
}

func TestCowsay(t *testing.T) {
	cases := goldenTestSuite{
		"not-installed": {[]string{"cowsay"}},
		"default":       {[]string{"pkg install npm", "npm install cowsay", "cowsay"}},
	}

	cases.Run(t)
}

func TestNc(t *testing.T) {
	cases := goldenTestSuite{
		"no-arg":      {[]string{"nc"}},
		"help":        {[]string{"nc -h"}},
		"listen":      {[]string{"nc -l"}},
		"listen-port": {[]string{"nc -l -p 4444", "nc -lvp 8080"}},
		"connect":     {[]string{"nc example.com 80", "nc -y"}},
		"flags-last":  {[]string{"nc example.com -h", "nc example.com -l -p 9000", "nc -- host -l"}},
	}

	cases.Run(t)
}

func TestNettools(t *testing.T) {
	cases := goldenTestSuite{
		"usage":        {[]string{"ping", "dig", "whois", "nmap"}},
		"ping":         {[]string{"ping example.com"}},
		"ping-invalid": {[]string{"ping exa$mple.com"}},
		"dig":          {[]string{"dig example.com"}},
		"nmap-flag":    {[]string{"nmap -sC example.com"}},
		"option-host":  {[]string{"ping -f", "dig -fwelcome.txt", "whois --version"}},
	}

	cases.Run(t)
}

func TestCurl(t *testing.T) {
	cases := goldenTestSuite{
		"not-installed": {[]string{"curl example.com"}},
		"fetch":         {[]string{"pkg install curl", "curl", "curl example.com", "curl localhost:8080"}},
	}

	cases.Run(t)
}

func TestFiglet(t *testing.T) {
	in, tr, _ := testInterpreter(t)
	for _, line := range []string{"figlet", "pkg install npm", "npm install figlet", "figlet", "figlet Hi"} {
		in.Execute(ctx(), line)
	}

	lines := tr.Lines()
	assert.Equal(t, "Command 'figlet' not found. Install it with: npm install figlet", lines[1].Content)

	hello := lines[len(lines)-3].Content
	assert.Equal(t, figlet("Hello"), hello)
	assert.Greater(t, strings.Count(hello, "\n"), 2)
	assert.False(t, strings.HasSuffix(hello, "\n"))

	assert.Equal(t, figlet("Hi"), lines[len(lines)-1].Content)
}

func TestFiglet_unsupportedCharacters(t *testing.T) {
	assert.NotPanics(t, func() {
		figlet("héllo ☃")
	})
}

func TestCowsay_bubbleWidth(t *testing.T) {
	out := cowsay("héllo")
	rows := strings.Split(out, "\n")

	assert.Equal(t, " _______", rows[0])
	assert.Equal(t, "< héllo >", rows[1])
	assert.Equal(t, " -------", rows[2])
}

func TestWget(t *testing.T) {
	in, tr, stub := testInterpreter(t)
	for _, line := range []string{"wget example.com", "pkg install wget", "wget", "wget example.com/files/page.html", "wget example.com"} {
		in.Execute(ctx(), line)
	}

	var out []string
	for _, line := range tr.Lines() {
		out = append(out, line.Content)
	}
	assert.Equal(t, []string{
		"wget example.com",
		"Command 'wget' not found. Install it with: pkg install wget",
		"pkg install wget",
		"Downloading wget...",
		"Successfully installed wget.",
		"wget",
		"usage: wget [url]",
		"wget example.com/files/page.html",
		"Fetching example.com/files/page.html...",
		"'page.html' saved [140]",
		"wget example.com",
		"Fetching example.com...",
		"'index.html' saved [124]",
	}, out)

	assert.Len(t, stub.Calls(), 2)
	fs := in.Session().FS
	assert.Equal(t, "welcome.txt  notes.txt  page.html  index.html", fs.List(""))
	assert.Contains(t, fs.ReadFile("page.html"), "Fetched http://example.com/files/page.html")
}

func TestRemoteFilename(t *testing.T) {
	cases := map[string]string{
		"example.com":                    "index.html",
		"example.com/":                   "index.html",
		"https://example.com/a/b.tar.gz": "b.tar.gz",
		"http://example.com/x?y=z":       "x",
		"%zz":                            "index.html",
	}

	for in, want := range cases {
		t.Run(in, func(t *testing.T) {
			assert.Equal(t, want, remoteFilename(in))
		})
	}
}

func TestNoOpCommands(t *testing.T) {
	in, tr, _ := testInterpreter(t)
	in.Execute(ctx(), "vim")
	in.Execute(ctx(), "pkg install vim")
	status := in.Execute(ctx(), "vim notes.txt")

	lines := tr.Lines()
	assert.Equal(t, "Command 'vim' not found. Install it with: pkg install vim", lines[1].Content)
	assert.Equal(t, "Vim: Warning: Output is not to a terminal", lines[len(lines)-1].Content)
	assert.Equal(t, 1, status)
}
