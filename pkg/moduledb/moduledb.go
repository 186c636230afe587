package moduledb

import (
	"sort"
	"sync"

	"github.com/goliatone/go-pvsim/pkg/pvsystem"
)

// Entry is one database record: a hardware name plus its coefficient set.
type Entry struct {
	// Name is the record key, e.g. "Frontier_ML_220W".
	Name string
	// Technology is an informational label for modules, e.g. "mono-Si".
	Technology string
	// Source records which table the entry came from.
	Source string
	// Parameters is the coefficient set, keyed by publication names.
	Parameters pvsystem.Parameters
}

// Database holds module and inverter records keyed by name. Lookups return
// copies, so callers may mutate parameter sets freely.
type Database struct {
	modules   map[string]Entry
	inverters map[string]Entry
}

var (
	defaultOnce sync.Once
	defaultDB   *Database
	defaultErr  error
)

// Default returns the database built from the embedded tables. The tables
// are parsed once; subsequent calls share the same database.
func Default() (*Database, error) {
	defaultOnce.Do(func() {
		defaultDB, defaultErr = LoadFS(EmbeddedFS())
	})

	if defaultErr != nil {
		return nil, defaultErr
	}
	return defaultDB, nil
}

// Module returns the module record for name.
func (d *Database) Module(name string) (Entry, bool) {
	if d == nil {
		return Entry{}, false
	}
	entry, ok := d.modules[name]
	if !ok {
		return Entry{}, false
	}
	return entry.clone(), true
}

// Inverter returns the inverter record for name.
func (d *Database) Inverter(name string) (Entry, bool) {
	if d == nil {
		return Entry{}, false
	}
	entry, ok := d.inverters[name]
	if !ok {
		return Entry{}, false
	}
	return entry.clone(), true
}

// ModuleNames returns all module names, sorted.
func (d *Database) ModuleNames() []string {
	return sortedKeys(d.modules)
}

// InverterNames returns all inverter names, sorted.
func (d *Database) InverterNames() []string {
	return sortedKeys(d.inverters)
}

func sortedKeys(entries map[string]Entry) []string {
	names := make([]string, 0, len(entries))
	for name := range entries {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (e Entry) clone() Entry {
	e.Parameters = e.Parameters.Clone()
	return e
}
