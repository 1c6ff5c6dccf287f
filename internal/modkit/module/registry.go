package module

import (
	"slices"
	"sync"
)

// process registry of port bundles, filled by api.Mount at startup
var (
	mu  sync.RWMutex
	reg = map[string]any{}
)

// Register stores ports under name; a later call for the same name wins
func Register(name string, ports any) {
	mu.Lock()
	defer mu.Unlock()
	reg[name] = ports
}

// PortsAs fetches the bundle stored under name as a T
func PortsAs[T any](name string) (T, bool) {
	mu.RLock()
	v, ok := reg[name]
	mu.RUnlock()
	if !ok {
		var zero T
		return zero, false
	}
	return find[T](v)
}

// Names lists registered module names, sorted
func Names() []string {
	mu.RLock()
	defer mu.RUnlock()
	out := make([]string, 0, len(reg))
	for k := range reg {
		out = append(out, k)
	}
	slices.Sort(out)
	return out
}

// Reset clears the registry for tests
func Reset() {
	mu.Lock()
	defer mu.Unlock()
	reg = map[string]any{}
}
