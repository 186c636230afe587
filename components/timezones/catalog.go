package timezones

import (
	"bufio"
	"embed"
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"
)

//go:embed data/iana_timezones.txt
var dataFS embed.FS

const defaultListPath = "data/iana_timezones.txt"

// Catalog is an immutable, sorted collection of timezone names.
type Catalog struct {
	zones []string
}

var (
	defaultOnce    sync.Once
	defaultCatalog *Catalog
	defaultErr     error
)

// Default returns the catalog backed by the embedded IANA list. The list is
// parsed once; subsequent calls share the same catalog.
func Default() (*Catalog, error) {
	defaultOnce.Do(func() {
		f, err := dataFS.Open(defaultListPath)
		if err != nil {
			defaultErr = err
			return
		}
		defer func() { _ = f.Close() }()

		defaultCatalog, defaultErr = Load(f)
	})

	if defaultErr != nil {
		return nil, defaultErr
	}
	return defaultCatalog, nil
}

// Load reads one zone name per line, skipping blank lines and # comments.
// Duplicates are dropped and the result is sorted.
func Load(r io.Reader) (*Catalog, error) {
	if r == nil {
		return nil, fmt.Errorf("timezones: missing reader")
	}

	scanner := bufio.NewScanner(r)
	zones := make([]string, 0, 512)
	seen := map[string]struct{}{}

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, "#") {
			continue
		}
		if _, ok := seen[line]; ok {
			continue
		}
		seen[line] = struct{}{}
		zones = append(zones, line)
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}

	sort.Strings(zones)
	return &Catalog{zones: zones}, nil
}

// New builds a catalog from the given names, deduplicated and sorted.
func New(zones []string) *Catalog {
	seen := map[string]struct{}{}
	out := make([]string, 0, len(zones))
	for _, zone := range zones {
		zone = strings.TrimSpace(zone)
		if zone == "" {
			continue
		}
		if _, ok := seen[zone]; ok {
			continue
		}
		seen[zone] = struct{}{}
		out = append(out, zone)
	}
	sort.Strings(out)
	return &Catalog{zones: out}
}

// Zones returns a copy of the catalog contents in sorted order.
func (c *Catalog) Zones() []string {
	return append([]string{}, c.zones...)
}

// Len reports the number of zones in the catalog.
func (c *Catalog) Len() int { return len(c.zones) }

// Has reports whether name is present, matched exactly.
func (c *Catalog) Has(name string) bool {
	i := sort.SearchStrings(c.zones, name)
	return i < len(c.zones) && c.zones[i] == name
}
