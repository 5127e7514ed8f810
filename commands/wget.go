package commands

import (
	"fmt"
	"net/url"
	"path"
	"strings"

	"github.com/natcat-sim/natcat/core/nettools"
)

const defaultRemoteFilename = "index.html"

// remoteFilename picks the name a download is saved under.
func remoteFilename(rawURL string) string {
	if !strings.Contains(rawURL, "://") {
		rawURL = "http://" + rawURL
	}

	u, err := url.Parse(rawURL)
	if err != nil {
		return defaultRemoteFilename
	}

	_, file := path.Split(u.Path)
	if file == "" {
		return defaultRemoteFilename
	}
	return file
}

// Wget downloads a URL into the working directory.
func Wget(p *Proc) int {
	if !p.requirePackage("wget") {
		return 127
	}

	if len(p.Args) < 2 {
		p.Println("usage: wget [url]")
		return 1
	}

	rawURL := p.Args[1]
	p.Println(fmt.Sprintf("Fetching %s...", rawURL))

	resp := p.callTool(nettools.Request{Tool: nettools.Wget, Args: []string{rawURL}})
	if resp.Failed {
		p.Println(resp.Text)
		return 1
	}

	name := remoteFilename(rawURL)
	if out := p.Session.FS.WriteFile(name, resp.Body); out != "" {
		p.Println(out)
		return 1
	}

	p.Println(fmt.Sprintf("'%s' saved [%d]", name, len(resp.Body)))
	return 0
}

func init() {
	mustAddCmd(CommandEntry{Name: "wget", Use: "wget [url]", Short: "The non-interactive network downloader.", Proc: Wget})
}
