// Package catalog lists the metro areas and election years that data files
// are published for.
package catalog

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/canadavotes/canadavotes/internal/election"
	"github.com/canadavotes/canadavotes/internal/testable"
)

// FileName is the catalog file looked up in a data directory.
const FileName = "catalog.toml"

//go:embed default.toml
var defaultTOML []byte

// City is a metro area with published data.
type City struct {
	ID   string `toml:"id"`
	Name string `toml:"name"`
}

// Jurisdiction lists the datasets of one kind of election.
type Jurisdiction struct {
	DefaultCity string   `toml:"default_city"`
	Years       []int    `toml:"years"`
	Parties     []string `toml:"parties"`
	Cities      []City   `toml:"cities"`
}

// Catalog holds the federal and Ontario provincial datasets.
type Catalog struct {
	Federal Jurisdiction `toml:"federal"`
	Ontario Jurisdiction `toml:"ontario"`
}

// Pair is one city and election year.
type Pair struct {
	City string
	Year int
}

// Default returns the built-in catalog.
func Default() *Catalog {
	c, err := Parse(defaultTOML)
	if err != nil {
		panic(fmt.Sprintf("built-in catalog: %v", err))
	}
	return c
}

// Parse decodes and validates a TOML catalog. Unknown keys are errors.
func Parse(data []byte) (*Catalog, error) {
	var c Catalog
	md, err := toml.Decode(string(data), &c)
	if err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, fmt.Errorf("parse catalog: unknown keys: %s", strings.Join(keys, ", "))
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	for _, j := range []*Jurisdiction{&c.Federal, &c.Ontario} {
		slices.Sort(j.Years)
	}
	return &c, nil
}

// Load reads dir/catalog.toml, falling back to the built-in catalog when the
// file does not exist.
func Load(fsys testable.FileSystem, dir string) (*Catalog, error) {
	if fsys == nil {
		fsys = testable.DefaultFS
	}
	data, err := fsys.ReadFile(filepath.Join(dir, FileName))
	if errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	return Parse(data)
}

// Validate checks both jurisdictions and reports every problem at once.
func (c *Catalog) Validate() error {
	var errs []string
	for _, named := range []struct {
		name string
		j    Jurisdiction
	}{{"federal", c.Federal}, {"ontario", c.Ontario}} {
		j := named.j
		if len(j.Years) == 0 {
			errs = append(errs, fmt.Sprintf("%s: no election years", named.name))
		}
		if len(j.Cities) == 0 {
			errs = append(errs, fmt.Sprintf("%s: no cities", named.name))
		}
		seen := make(map[string]bool, len(j.Cities))
		for _, city := range j.Cities {
			if city.ID == "" {
				errs = append(errs, fmt.Sprintf("%s: city with empty id", named.name))
				continue
			}
			if seen[city.ID] {
				errs = append(errs, fmt.Sprintf("%s: duplicate city %q", named.name, city.ID))
			}
			seen[city.ID] = true
		}
		if j.DefaultCity != "" && !seen[j.DefaultCity] {
			errs = append(errs, fmt.Sprintf("%s: default_city %q is not a listed city", named.name, j.DefaultCity))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("catalog validation failed:\n  %s", strings.Join(errs, "\n  "))
	}
	return nil
}

// For returns the jurisdiction a mode's data files belong to.
func (c *Catalog) For(mode election.Mode) *Jurisdiction {
	if mode.Ontario {
		return &c.Ontario
	}
	return &c.Federal
}

// HasCity reports whether id is a listed city.
func (j *Jurisdiction) HasCity(id string) bool {
	return j.City(id) != nil
}

// City returns the listed city with id, or nil.
func (j *Jurisdiction) City(id string) *City {
	for i := range j.Cities {
		if j.Cities[i].ID == id {
			return &j.Cities[i]
		}
	}
	return nil
}

// CityName returns a city's display name, or its id when unlisted.
func (j *Jurisdiction) CityName(id string) string {
	if c := j.City(id); c != nil && c.Name != "" {
		return c.Name
	}
	return id
}

// HasYear reports whether year is a listed election year.
func (j *Jurisdiction) HasYear(year int) bool {
	return slices.Contains(j.Years, year)
}

// LatestYear returns the most recent listed election year.
func (j *Jurisdiction) LatestYear() int {
	if len(j.Years) == 0 {
		return 0
	}
	return j.Years[len(j.Years)-1]
}

// Default returns the city used when a selection names none or an unknown
// one: DefaultCity, or the first listed city.
func (j *Jurisdiction) Default() string {
	if j.DefaultCity != "" {
		return j.DefaultCity
	}
	if len(j.Cities) > 0 {
		return j.Cities[0].ID
	}
	return ""
}

// Resolve replaces an unknown city with the default city and an unknown year
// with the latest year. changed reports whether either was replaced.
func (c *Catalog) Resolve(mode election.Mode, city string, year int) (resolvedCity string, resolvedYear int, changed bool) {
	j := c.For(mode)
	resolvedCity, resolvedYear = city, year
	if !j.HasCity(city) {
		resolvedCity = j.Default()
		changed = true
	}
	if !j.HasYear(year) {
		resolvedYear = j.LatestYear()
		changed = true
	}
	return resolvedCity, resolvedYear, changed
}

// Pairs returns every city and year combination of a mode's jurisdiction.
func (c *Catalog) Pairs(mode election.Mode) []Pair {
	j := c.For(mode)
	out := make([]Pair, 0, len(j.Cities)*len(j.Years))
	for _, city := range j.Cities {
		for _, year := range j.Years {
			out = append(out, Pair{City: city.ID, Year: year})
		}
	}
	return out
}

// Next returns the entry after cur in list, wrapping around. An unknown cur
// yields the first entry.
func Next[T comparable](list []T, cur T) T {
	var zero T
	if len(list) == 0 {
		return zero
	}
	i := slices.Index(list, cur)
	return list[(i+1)%len(list)]
}

// CityIDs returns the ids of the listed cities.
func (j *Jurisdiction) CityIDs() []string {
	ids := make([]string, len(j.Cities))
	for i, c := range j.Cities {
		ids[i] = c.ID
	}
	return ids
}
