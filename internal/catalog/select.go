// ABOUTME: Resolves user metric selections into catalog identifiers.
// ABOUTME: Supports explicit names, whole groups, and the full catalog.
package catalog

import (
	"errors"
	"fmt"
	"strings"

	"github.com/harperreed/healthlens/internal/models"
)

// ErrEmptySelection is returned when a selection names no metrics.
var ErrEmptySelection = errors.New("no metrics selected")

// Selection describes which metrics a user asked for.
type Selection struct {
	Names []string
	Group string
	All   bool
}

// Select resolves s into metric identifiers in catalog order, without
// duplicates. Unknown names are reported together.
func (c *Catalog) Select(s Selection) ([]models.MetricID, error) {
	if s.All {
		return c.IDs(), nil
	}

	want := make(map[models.MetricID]bool)

	if s.Group != "" {
		g, ok := c.Group(s.Group)
		if !ok {
			return nil, fmt.Errorf("unknown group: %s", s.Group)
		}
		for _, id := range g.Metrics {
			want[id] = true
		}
	}

	var unknown []string
	for _, name := range s.Names {
		m, ok := c.Find(name)
		if !ok {
			unknown = append(unknown, name)
			continue
		}
		want[m.ID] = true
	}
	if len(unknown) > 0 {
		return nil, fmt.Errorf("unknown metrics: %s", strings.Join(unknown, ", "))
	}
	if len(want) == 0 {
		return nil, ErrEmptySelection
	}

	ids := make([]models.MetricID, 0, len(want))
	for _, m := range c.metrics {
		if want[m.ID] {
			ids = append(ids, m.ID)
		}
	}
	return ids, nil
}
