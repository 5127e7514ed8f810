package pkg

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func ExampleRegistry_Install() {
	r := NewRegistry(DefaultPackages...)

	fmt.Println(r.Install("curl"))
	fmt.Println(r.Install("curl"))
	fmt.Println(r.Install("emacs"))
	fmt.Println(r.List())

	// Output: true
	// false
	// false
	// [curl]
}

func TestRegistry(t *testing.T) {
	r := NewRegistry("curl", "npm", "vim")

	assert.True(t, r.IsAvailable("curl"))
	assert.False(t, r.IsAvailable("emacs"))
	assert.False(t, r.IsInstalled("curl"))
	assert.Empty(t, r.List())

	assert.True(t, r.Install("vim"))
	assert.True(t, r.Install("curl"))
	assert.False(t, r.Install("emacs"))
	assert.False(t, r.IsInstalled("emacs"))

	assert.True(t, r.IsInstalled("curl"))
	assert.Equal(t, []string{"vim", "curl"}, r.List(), "insertion order")
	assert.Equal(t, []string{"curl", "npm", "vim"}, r.Available())
}

func TestRegistry_idempotent(t *testing.T) {
	r := NewRegistry(DefaultPackages...)
	r.Install("npm")
	before := r.List()

	r.Install("npm")
	assert.Equal(t, before, r.List())
}

func TestRegistry_listIsCopy(t *testing.T) {
	r := NewRegistry("a")
	r.Install("a")

	list := r.List()
	list[0] = "mutated"
	assert.Equal(t, []string{"a"}, r.List())
}

func TestNewOpenRegistry(t *testing.T) {
	r := NewOpenRegistry()

	assert.True(t, r.IsAvailable("left-pad"))
	assert.False(t, r.IsAvailable(""))
	assert.True(t, r.Install("left-pad"))
	assert.False(t, r.Install(""))
	assert.Equal(t, []string{"left-pad"}, r.List())
	assert.Nil(t, r.Available())
}
