package commands

import (
	"fmt"
	"sort"
	"sync"
)

// Registry maps command names and aliases to commands.
type Registry struct {
	mu      sync.RWMutex
	byName  map[string]Command
	primary []string
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{byName: make(map[string]Command)}
}

// Register adds c under its name and aliases. Names must be non-empty,
// unique, and must not read as a task reference ("3", "a3"), so that
// `todoctl a3` can never be mistaken for a command.
func (r *Registry) Register(c Command) error {
	keys := append([]string{c.Name()}, c.Aliases()...)

	r.mu.Lock()
	defer r.mu.Unlock()

	for _, key := range keys {
		if key == "" {
			return fmt.Errorf("command %q: empty name or alias", c.Name())
		}
		if looksLikeTaskRef(key) {
			return fmt.Errorf("command %q: %q reads as a task reference", c.Name(), key)
		}
		if _, taken := r.byName[key]; taken {
			return fmt.Errorf("command %q: %q already registered", c.Name(), key)
		}
	}

	for _, key := range keys {
		r.byName[key] = c
	}
	r.primary = append(r.primary, c.Name())
	return nil
}

// Find looks up a command by name or alias.
func (r *Registry) Find(name string) (Command, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.byName[name]
	return c, ok
}

// All returns every command once, sorted by name.
func (r *Registry) All() []Command {
	r.mu.RLock()
	names := append([]string(nil), r.primary...)
	r.mu.RUnlock()

	sort.Strings(names)
	out := make([]Command, 0, len(names))
	for _, name := range names {
		c, _ := r.Find(name)
		out = append(out, c)
	}
	return out
}

// Groups splits All into commands that talk to the backend and local ones
// (help, version, login, logout, config).
func (r *Registry) Groups() (backend, local []Command) {
	for _, c := range r.All() {
		if c.NeedsService() {
			backend = append(backend, c)
		} else {
			local = append(local, c)
		}
	}
	return backend, local
}

// looksLikeTaskRef reports whether s has the N or aN shape.
func looksLikeTaskRef(s string) bool {
	if s[0] >= 'a' && s[0] <= 'z' {
		s = s[1:]
	}
	return isAllDigits(s)
}

// DefaultRegistry holds the commands registered by init functions.
var DefaultRegistry = NewRegistry()

// Register adds c to DefaultRegistry and panics on conflict.
func Register(c Command) {
	if err := DefaultRegistry.Register(c); err != nil {
		panic(err)
	}
}
