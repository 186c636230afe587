package moduledb

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-pvsim/pkg/pvsystem"
)

// LoadFS walks the provided filesystem and parses every YAML parameter table
// it finds. When fsys is nil or no tables are present, the returned database
// is empty. Names must be unique across all files of the filesystem.
func LoadFS(fsys fs.FS) (*Database, error) {
	db := &Database{
		modules:   make(map[string]Entry),
		inverters: make(map[string]Entry),
	}
	if fsys == nil {
		return db, nil
	}

	err := fs.WalkDir(fsys, ".", func(path string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if entry.IsDir() {
			return nil
		}
		if !isTableFile(path) {
			return nil
		}

		data, err := fs.ReadFile(fsys, path)
		if err != nil {
			return fmt.Errorf("moduledb: read %s: %w", path, err)
		}

		var doc document
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return fmt.Errorf("moduledb: parse %s: %w", path, err)
		}

		if err := addEntries(db.modules, doc.Modules, doc.Source, path, "module"); err != nil {
			return err
		}
		return addEntries(db.inverters, doc.Inverters, doc.Source, path, "inverter")
	})
	if err != nil {
		return nil, err
	}

	return db, nil
}

// document mirrors the on-disk table layout: an optional provenance note and
// two name-keyed record maps.
type document struct {
	Source    string              `yaml:"source"`
	Modules   map[string]entryDoc `yaml:"modules"`
	Inverters map[string]entryDoc `yaml:"inverters"`
}

type entryDoc struct {
	Technology string             `yaml:"technology"`
	Parameters map[string]float64 `yaml:"parameters"`
}

func addEntries(dst map[string]Entry, src map[string]entryDoc, source, path, kind string) error {
	for name, doc := range src {
		name = strings.TrimSpace(name)
		if name == "" {
			return fmt.Errorf("moduledb: file %s defines an empty %s name", path, kind)
		}
		if _, exists := dst[name]; exists {
			return fmt.Errorf("moduledb: duplicate %s %q (file %s)", kind, name, path)
		}
		if len(doc.Parameters) == 0 {
			return fmt.Errorf("moduledb: %s %q has no parameters (file %s)", kind, name, path)
		}

		params := make(pvsystem.Parameters, len(doc.Parameters))
		for key, value := range doc.Parameters {
			params[key] = value
		}
		dst[name] = Entry{
			Name:       name,
			Technology: doc.Technology,
			Source:     source,
			Parameters: params,
		}
	}
	return nil
}

func isTableFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	default:
		return false
	}
}
