// Package vfs implements the in-memory filesystem the simulator runs against.
//
// Every operation returns the line the shell should display, on success that
// is usually the empty string. Failures are rendered as Unix style messages
// rather than returned as errors.
package vfs

import (
	"fmt"
	"strings"
)

// File is a file seeded into the home directory at construction.
type File struct {
	Name    string `json:"name" validate:"required,excludes=/"`
	Content string `json:"content"`
}

// DefaultHomeFiles are placed in the home directory of a fresh filesystem.
var DefaultHomeFiles = []File{
	{Name: "welcome.txt", Content: "Welcome to Netcat Simulator!"},
	{Name: "notes.txt", Content: "Remember to check out the cheatsheet."},
}

// DefaultUser owns the home directory when none is configured.
const DefaultUser = "user"

// FS is a tree of nodes plus a cursor pointing at the current directory.
type FS struct {
	root    *Node
	home    *Node
	current *Node
}

// New creates a filesystem with /home/<user> populated with the given files.
// The cursor starts in the home directory.
func New(user string, files []File) *FS {
	if user == "" {
		user = DefaultUser
	}

	root := newDirectory("/")
	homeDir := newDirectory("home")
	root.setChild(homeDir)
	userDir := newDirectory(user)
	homeDir.setChild(userDir)

	for _, f := range files {
		userDir.setChild(newFile(f.Name, f.Content))
	}

	return &FS{
		root:    root,
		home:    userDir,
		current: userDir,
	}
}

// NewDefault creates a filesystem for the default user and files.
func NewDefault() *FS {
	return New(DefaultUser, DefaultHomeFiles)
}

// Root returns the root directory.
func (fs *FS) Root() *Node {
	return fs.root
}

// Home returns the user's home directory.
func (fs *FS) Home() *Node {
	return fs.home
}

// Current returns the directory the cursor points at.
func (fs *FS) Current() *Node {
	return fs.current
}

// Resolve walks path from the root (absolute) or the cursor (relative).
func (fs *FS) Resolve(path string) (*Node, bool) {
	node := fs.current
	if strings.HasPrefix(path, "/") {
		node = fs.root
	}

	for _, part := range strings.Split(path, "/") {
		if part == "" {
			continue
		}
		if !node.IsDir() {
			return nil, false
		}

		switch part {
		case ".":
			continue
		case "..":
			if node.parent != nil {
				node = node.parent
			}
			continue
		}

		child, ok := node.Child(part)
		if !ok {
			return nil, false
		}
		node = child
	}

	return node, true
}

// Path renders the absolute path of the node.
func (fs *FS) Path(node *Node) string {
	var segments []string
	for curr := node; curr != nil && curr.parent != nil; curr = curr.parent {
		segments = append([]string{curr.name}, segments...)
	}
	return "/" + strings.Join(segments, "/")
}

// List shows the names in a directory or the name of a file. An empty path
// lists the current directory.
func (fs *FS) List(path string) string {
	target := fs.current
	if path != "" {
		var ok bool
		if target, ok = fs.Resolve(path); !ok {
			return fmt.Sprintf("ls: cannot access '%s': No such file or directory", path)
		}
	}

	if !target.IsDir() {
		return target.name
	}
	return strings.Join(target.order, "  ")
}

// ChangeDirectory moves the cursor, an empty path returns home.
func (fs *FS) ChangeDirectory(path string) string {
	if path == "" {
		fs.current = fs.home
		return ""
	}

	target, ok := fs.Resolve(path)
	switch {
	case !ok:
		return fmt.Sprintf("bash: cd: %s: No such file or directory", path)
	case !target.IsDir():
		return fmt.Sprintf("bash: cd: %s: Not a directory", path)
	}

	fs.current = target
	return ""
}

// PrintWorkingDirectory renders the absolute path of the cursor.
func (fs *FS) PrintWorkingDirectory() string {
	return fs.Path(fs.current)
}

// isDotName returns true for the names that always refer to a directory.
func isDotName(name string) bool {
	return name == "." || name == ".."
}

// MakeDirectory creates an empty directory in the current directory. Callers
// validate that name is non-empty.
func (fs *FS) MakeDirectory(name string) string {
	if _, exists := fs.current.Child(name); exists || isDotName(name) {
		return fmt.Sprintf("mkdir: cannot create directory '%s': File exists", name)
	}
	if strings.Contains(name, "/") {
		return fmt.Sprintf("mkdir: cannot create directory '%s': No such file or directory", name)
	}

	fs.current.setChild(newDirectory(name))
	return ""
}

// CreateEmptyFile creates an empty file, existing entries are left untouched.
// Names are single path segments.
func (fs *FS) CreateEmptyFile(name string) string {
	if _, exists := fs.current.Child(name); exists || isDotName(name) {
		return ""
	}
	if strings.Contains(name, "/") {
		return fmt.Sprintf("touch: cannot touch '%s': No such file or directory", name)
	}

	fs.current.setChild(newFile(name, ""))
	return ""
}

// ReadFile returns the contents of a file.
func (fs *FS) ReadFile(path string) string {
	target, ok := fs.Resolve(path)
	switch {
	case !ok:
		return fmt.Sprintf("cat: %s: No such file or directory", path)
	case target.IsDir():
		return fmt.Sprintf("cat: %s: Is a directory", path)
	}

	return target.content
}

// Remove detaches a file from its parent. Directories can't be removed.
func (fs *FS) Remove(path string) string {
	target, ok := fs.Resolve(path)
	switch {
	case !ok:
		return fmt.Sprintf("rm: cannot remove '%s': No such file or directory", path)
	case target.IsDir():
		return fmt.Sprintf("rm: cannot remove '%s': Is a directory", path)
	}

	target.parent.removeChild(target.name)
	return ""
}

// WriteFile creates or replaces a file in the current directory. Directories
// are never replaced so the home directory can't be destroyed by a redirect.
// Names are single path segments.
func (fs *FS) WriteFile(name, content string) string {
	if existing, ok := fs.current.Child(name); (ok && existing.IsDir()) || isDotName(name) {
		return fmt.Sprintf("bash: %s: Is a directory", name)
	}
	if strings.Contains(name, "/") {
		return fmt.Sprintf("bash: %s: No such file or directory", name)
	}

	fs.current.setChild(newFile(name, content))
	return ""
}

// WalkFunc is called for every node reachable from the root.
type WalkFunc func(path string, node *Node) error

// Walk visits every node depth-first in listing order, stopping at the first
// error.
func (fs *FS) Walk(fn WalkFunc) error {
	return fs.walk(fs.root, fn)
}

func (fs *FS) walk(node *Node, fn WalkFunc) error {
	if err := fn(fs.Path(node), node); err != nil {
		return err
	}

	for _, child := range node.Children() {
		if err := fs.walk(child, fn); err != nil {
			return err
		}
	}
	return nil
}
