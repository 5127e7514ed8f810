package vfs

// Kind is the type of a filesystem node, it never changes after creation.
type Kind int

const (
	KindFile Kind = iota
	KindDirectory
)

func (k Kind) String() string {
	switch k {
	case KindDirectory:
		return "directory"
	default:
		return "file"
	}
}

// Node is a single file or directory in the tree.
//
// A directory exclusively owns its children. The parent pointer is only used
// for navigation (.., path rendering) and is nil for the root.
type Node struct {
	kind    Kind
	name    string
	content string

	children map[string]*Node
	// order holds child names in insertion order for stable listings.
	order []string

	parent *Node
}

func newDirectory(name string) *Node {
	return &Node{
		kind:     KindDirectory,
		name:     name,
		children: make(map[string]*Node),
	}
}

func newFile(name, content string) *Node {
	return &Node{
		kind:    KindFile,
		name:    name,
		content: content,
	}
}

// Name returns the final path segment of the node.
func (n *Node) Name() string {
	return n.name
}

// Kind returns the node kind.
func (n *Node) Kind() Kind {
	return n.kind
}

// IsDir returns true if the node is a directory.
func (n *Node) IsDir() bool {
	return n.kind == KindDirectory
}

// Content returns the content of a file, directories have none.
func (n *Node) Content() string {
	return n.content
}

// Parent returns the containing directory, or nil for the root.
func (n *Node) Parent() *Node {
	return n.parent
}

// Child looks up a direct child by name.
func (n *Node) Child(name string) (*Node, bool) {
	if n.children == nil {
		return nil, false
	}
	child, ok := n.children[name]
	return child, ok
}

// Children returns the direct children in insertion order.
func (n *Node) Children() []*Node {
	out := make([]*Node, 0, len(n.order))
	for _, name := range n.order {
		out = append(out, n.children[name])
	}
	return out
}

// ChildNames returns the names of the direct children in insertion order.
func (n *Node) ChildNames() []string {
	return append([]string(nil), n.order...)
}

// setChild links child under n, replacing any existing child with the same
// name while keeping its listing position.
func (n *Node) setChild(child *Node) {
	if old, exists := n.children[child.name]; exists {
		old.parent = nil
	} else {
		n.order = append(n.order, child.name)
	}
	n.children[child.name] = child
	child.parent = n
}

// removeChild detaches the named child.
func (n *Node) removeChild(name string) {
	child, ok := n.children[name]
	if !ok {
		return
	}
	delete(n.children, name)
	for i, v := range n.order {
		if v == name {
			n.order = append(n.order[:i], n.order[i+1:]...)
			break
		}
	}
	child.parent = nil
}
