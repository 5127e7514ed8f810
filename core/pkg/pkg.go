// Package pkg tracks which simulated packages are installable and installed.
package pkg

import "sort"

// DefaultPackages are installable with `pkg install`.
var DefaultPackages = []string{"curl", "wget", "htop", "vim", "npm", "node"}

// Registry holds a fixed set of available names and the names installed so
// far, in installation order.
type Registry struct {
	available map[string]bool
	// open registries accept any name as available.
	open bool

	installed []string
	index     map[string]bool
}

// NewRegistry creates a registry where only the given names can be installed.
func NewRegistry(available ...string) *Registry {
	r := &Registry{
		available: make(map[string]bool),
		index:     make(map[string]bool),
	}
	for _, name := range available {
		r.available[name] = true
	}
	return r
}

// NewOpenRegistry creates a registry that accepts any non-empty name.
func NewOpenRegistry() *Registry {
	r := NewRegistry()
	r.open = true
	return r
}

// IsAvailable returns true if the name can be installed.
func (r *Registry) IsAvailable(name string) bool {
	if r.open {
		return name != ""
	}
	return r.available[name]
}

// IsInstalled returns true if the name has been installed.
func (r *Registry) IsInstalled(name string) bool {
	return r.index[name]
}

// Install adds name to the installed set. It returns true only if the name
// was available and not already installed.
func (r *Registry) Install(name string) bool {
	if !r.IsAvailable(name) || r.IsInstalled(name) {
		return false
	}

	r.index[name] = true
	r.installed = append(r.installed, name)
	return true
}

// List returns the installed names in installation order.
func (r *Registry) List() []string {
	return append([]string(nil), r.installed...)
}

// Available returns the sorted list of installable names. Open registries
// return nil.
func (r *Registry) Available() []string {
	var out []string
	for name := range r.available {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}
