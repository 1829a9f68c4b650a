// Package registry keeps each ingested Dataset reachable under every alias
// spelling of its original and stored names.
package registry

import (
	"sort"
	"sync"

	"ppi/domain/core"
	"ppi/domain/dataset"
	"ppi/internal"
	"ppi/internal/naming"
)

// AliasEntry is one alias binding as reported by List.
type AliasEntry struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// Registry maps alias strings to shared Datasets. It is the sole owner of the
// bindings; a Dataset lives until Evict removes its aliases.
type Registry struct {
	mu      sync.RWMutex
	aliases map[string]*dataset.Dataset
	logger  *internal.Logger
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{
		aliases: make(map[string]*dataset.Dataset),
		logger:  internal.NewComponentLogger("Registry"),
	}
}

// Register binds ds under the union of both names' candidates and returns the
// aliases written. Existing bindings are overwritten.
func (r *Registry) Register(originalName, storedName string, ds *dataset.Dataset) []string {
	keys := naming.Union(originalName, storedName)

	r.mu.Lock()
	defer r.mu.Unlock()
	for _, k := range keys {
		if prev, ok := r.aliases[k]; ok && prev != ds {
			r.logger.Debug("alias %q rebound to a new dataset", k)
		}
		r.aliases[k] = ds
	}
	r.logger.Debug("registered %d aliases for %q (%q)", len(keys), originalName, storedName)
	return keys
}

// Resolve is an exact alias lookup.
func (r *Registry) Resolve(name string) (*dataset.Dataset, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ds, ok := r.aliases[name]
	if !ok {
		return nil, core.NewNotFoundError("list", name)
	}
	return ds, nil
}

// Evict finds the dataset bound to the first spelling of storedName and
// removes every alias bound to it, returning how many were removed. Aliases
// of other datasets stay, even other spellings of storedName.
func (r *Registry) Evict(storedName string) int {
	candidates := naming.Candidates(storedName)

	r.mu.Lock()
	defer r.mu.Unlock()

	var target *dataset.Dataset
	for _, c := range candidates {
		if ds, ok := r.aliases[c]; ok {
			target = ds
			break
		}
	}
	if target == nil {
		return 0
	}

	removed := 0
	for alias, ds := range r.aliases {
		if ds == target {
			delete(r.aliases, alias)
			removed++
		}
	}

	r.logger.Debug("evicted %d aliases for %q", removed, storedName)
	return removed
}

// List returns every binding, one entry per alias, sorted by alias.
func (r *Registry) List() []AliasEntry {
	r.mu.RLock()
	entries := make([]AliasEntry, 0, len(r.aliases))
	for alias, ds := range r.aliases {
		entries = append(entries, AliasEntry{Name: alias, Count: ds.Len()})
	}
	r.mu.RUnlock()

	sort.Slice(entries, func(i, j int) bool { return entries[i].Name < entries[j].Name })
	return entries
}

// Len returns the number of alias bindings.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.aliases)
}
