// ABOUTME: Metric catalog mapping identifiers to display names, units, and groups.
// ABOUTME: Immutable after construction; safe for concurrent reads.
package catalog

import (
	"fmt"
	"sort"
	"strings"

	"github.com/gosimple/slug"
	"github.com/harperreed/healthlens/internal/models"
)

// UnknownLabel is the category label for metrics missing from the catalog.
const UnknownLabel = "Unknown"

// Metric describes one exportable quantity.
type Metric struct {
	ID   models.MetricID `json:"id"`
	Name string          `json:"name"`
	// Unit is the canonical unit symbol samples are recorded in.
	Unit string `json:"unit"`
}

// Group is a named collection of metrics. Groups may overlap.
type Group struct {
	Name    string            `json:"name"`
	Metrics []models.MetricID `json:"metrics"`
}

// Catalog is a read-only registry of metrics and groups.
type Catalog struct {
	metrics []Metric
	byID    map[models.MetricID]Metric
	groups  []Group
}

var defaultCatalog = mustNew(metricTable, groupTable)

// Default returns the built-in catalog.
func Default() *Catalog {
	return defaultCatalog
}

// New builds a catalog from a metric table and group list. Every group
// member must be present in the metric table.
func New(metrics []Metric, groups []Group) (*Catalog, error) {
	c := &Catalog{
		metrics: make([]Metric, len(metrics)),
		byID:    make(map[models.MetricID]Metric, len(metrics)),
		groups:  make([]Group, len(groups)),
	}
	copy(c.metrics, metrics)

	for _, m := range metrics {
		if _, dup := c.byID[m.ID]; dup {
			return nil, fmt.Errorf("duplicate metric id: %s", m.ID)
		}
		c.byID[m.ID] = m
	}

	for i, g := range groups {
		for _, id := range g.Metrics {
			if _, ok := c.byID[id]; !ok {
				return nil, fmt.Errorf("group %q references unknown metric %s", g.Name, id)
			}
		}
		c.groups[i] = Group{Name: g.Name, Metrics: append([]models.MetricID(nil), g.Metrics...)}
	}

	return c, nil
}

func mustNew(metrics []Metric, groups []Group) *Catalog {
	c, err := New(metrics, groups)
	if err != nil {
		panic(err)
	}
	return c
}

func ids(names ...string) []models.MetricID {
	out := make([]models.MetricID, len(names))
	for i, n := range names {
		out[i] = models.MetricID(n)
	}
	return out
}

// Lookup returns the metric with the given id.
func (c *Catalog) Lookup(id models.MetricID) (Metric, bool) {
	m, ok := c.byID[id]
	return m, ok
}

// Label returns the display name for id, or UnknownLabel.
func (c *Catalog) Label(id models.MetricID) string {
	if m, ok := c.byID[id]; ok {
		return m.Name
	}
	return UnknownLabel
}

// All returns every metric in table order.
func (c *Catalog) All() []Metric {
	out := make([]Metric, len(c.metrics))
	copy(out, c.metrics)
	return out
}

// IDs returns every metric id in table order.
func (c *Catalog) IDs() []models.MetricID {
	out := make([]models.MetricID, len(c.metrics))
	for i, m := range c.metrics {
		out[i] = m.ID
	}
	return out
}

// Len returns the number of metrics.
func (c *Catalog) Len() int {
	return len(c.metrics)
}

// Groups returns the category groups in display order.
func (c *Catalog) Groups() []Group {
	out := make([]Group, len(c.groups))
	copy(out, c.groups)
	return out
}

// Group finds a group by case-insensitive name or slug.
func (c *Catalog) Group(name string) (Group, bool) {
	for _, g := range c.groups {
		if strings.EqualFold(g.Name, name) || slug.Make(g.Name) == slug.Make(name) {
			return g, true
		}
	}
	return Group{}, false
}

// Find resolves user input to a metric. It accepts the id, the display
// name, or the slug of the display name, all case-insensitively.
func (c *Catalog) Find(s string) (Metric, bool) {
	if m, ok := c.byID[models.MetricID(s)]; ok {
		return m, true
	}
	want := slug.Make(s)
	for _, m := range c.metrics {
		if strings.EqualFold(string(m.ID), s) || strings.EqualFold(m.Name, s) || slug.Make(m.Name) == want {
			return m, true
		}
	}
	return Metric{}, false
}

// CoversAll reports whether selected includes every metric in the catalog.
func (c *Catalog) CoversAll(selected []models.MetricID) bool {
	seen := make(map[models.MetricID]bool, len(selected))
	for _, id := range selected {
		if _, ok := c.byID[id]; ok {
			seen[id] = true
		}
	}
	return len(seen) == len(c.metrics)
}

// Names returns the sorted display names of the selected metrics.
func (c *Catalog) Names(selected []models.MetricID) []string {
	seen := make(map[models.MetricID]bool, len(selected))
	names := make([]string, 0, len(selected))
	for _, id := range selected {
		if seen[id] {
			continue
		}
		seen[id] = true
		names = append(names, c.Label(id))
	}
	sort.Strings(names)
	return names
}

// Describe returns the selection as a comma separated list of display names.
func (c *Catalog) Describe(selected []models.MetricID) string {
	return strings.Join(c.Names(selected), ", ")
}
