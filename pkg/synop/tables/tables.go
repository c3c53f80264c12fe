package tables

import (
	_ "embed"
	"fmt"
	"sort"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed data/tables.yaml
var embeddedTables []byte

// Entry is a single code-table entry. Label carries the resolved semantic
// meaning of a code; Category and Unit are optional refinements (e.g. the
// present-weather phenomenon class, or a radiation unit).
type Entry struct {
	Label    string `yaml:"label"`
	Category string `yaml:"category,omitempty"`
	Unit     string `yaml:"unit,omitempty"`
}

// Registry holds the loaded code tables, keyed by (table name, code).
// A Registry is immutable after Load and safe for concurrent lookups.
type Registry struct {
	tables map[string]map[string]Entry
}

// Load parses table data from YAML bytes and returns a Registry.
func Load(data []byte) (*Registry, error) {
	tables := make(map[string]map[string]Entry)
	if err := yaml.Unmarshal(data, &tables); err != nil {
		return nil, fmt.Errorf("parsing table data: %w", err)
	}
	for name, entries := range tables {
		if len(entries) == 0 {
			return nil, fmt.Errorf("table %q has no entries", name)
		}
	}
	return &Registry{tables: tables}, nil
}

var (
	defaultOnce     sync.Once
	defaultRegistry *Registry
)

// Default returns the registry built from the embedded WMO table data.
// The registry is loaded once per process and shared; it is read-only.
func Default() *Registry {
	defaultOnce.Do(func() {
		r, err := Load(embeddedTables)
		if err != nil {
			// Embedded data ships with the binary; failing to parse it
			// is a build defect, not a runtime condition.
			panic(fmt.Sprintf("tables: embedded table data invalid: %v", err))
		}
		defaultRegistry = r
	})
	return defaultRegistry
}

// Lookup returns the entry for code in the named table.
// The second return value reports whether the entry exists.
func (r *Registry) Lookup(table, code string) (Entry, bool) {
	entries, ok := r.tables[table]
	if !ok {
		return Entry{}, false
	}
	e, ok := entries[code]
	return e, ok
}

// Has returns true if the registry contains the named table.
func (r *Registry) Has(table string) bool {
	_, ok := r.tables[table]
	return ok
}

// Names returns the sorted names of all loaded tables.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.tables))
	for name := range r.tables {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Len returns the number of entries in the named table, or 0 if absent.
func (r *Registry) Len(table string) int {
	return len(r.tables[table])
}
