package rule

import (
	"fmt"
	"sort"
	"sync"
)

var globalRegistry = NewRegistry()

// Registry is a collection of rules keyed by name. It is safe for
// concurrent use; after startup registration it is effectively read-only.
type Registry struct {
	mu    sync.RWMutex
	rules map[string]Rule
}

func NewRegistry() *Registry {
	return &Registry{rules: make(map[string]Rule)}
}

// GlobalRegistry returns the process-wide registry that Register populates.
// The engine never reads it implicitly; callers pass it in explicitly.
func GlobalRegistry() *Registry {
	return globalRegistry
}

// Register adds a rule to the global registry. Rule packages call this from
// init, so duplicates are a programming error and panic.
func Register(r Rule) {
	globalRegistry.Register(r)
}

func (reg *Registry) Register(r Rule) {
	reg.mu.Lock()
	defer reg.mu.Unlock()
	name := r.Name()
	if _, exists := reg.rules[name]; exists {
		panic(fmt.Sprintf("lintel: duplicate rule registration: %s", name))
	}
	reg.rules[name] = r
}

func (reg *Registry) Get(name string) (Rule, bool) {
	reg.mu.RLock()
	defer reg.mu.RUnlock()
	r, ok := reg.rules[name]
	return r, ok
}

// All returns the registered rules sorted by name, so callers that iterate
// the registry behave the same on every run.
func (reg *Registry) All() []Rule {
	reg.mu.RLock()
	defer reg.mu.RUnlock()
	out := make([]Rule, 0, len(reg.rules))
	for _, r := range reg.rules {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name() < out[j].Name() })
	return out
}

// Names returns all registered rule names in sorted order.
func (reg *Registry) Names() []string {
	reg.mu.RLock()
	defer reg.mu.RUnlock()
	out := make([]string, 0, len(reg.rules))
	for name := range reg.rules {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}
