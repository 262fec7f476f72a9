package rules

import (
	_ "embed"
	"sync"
)

//go:embed builtin.yaml
var builtinYAML []byte

var loadBuiltin = sync.OnceValues(func() (*Catalog, error) {
	return Parse(builtinYAML)
})

// Default returns the built-in UNOMI catalog. It is compiled on first use
// and the same instance is returned on every call.
func Default() (*Catalog, error) {
	return loadBuiltin()
}
