// ABOUTME: Suggested export file names derived from the metric selection.
// ABOUTME: Also produces filesystem-safe names for artifacts written to disk.
package export

import (
	"strings"

	"github.com/gosimple/slug"
	"github.com/harperreed/healthlens/internal/catalog"
	"github.com/harperreed/healthlens/internal/models"
)

const (
	AllHealthDataName  = "all-health-data"
	emptySelectionName = "health-data"
)

// SuggestedFileName names an export of selected. Selecting the whole
// catalog yields "all-health-data". Otherwise the display names are sorted,
// stripped of spaces, lower-cased, and joined with "-".
func SuggestedFileName(cat *catalog.Catalog, selected []models.MetricID) string {
	if len(selected) == 0 {
		return emptySelectionName
	}
	if cat.CoversAll(selected) {
		return AllHealthDataName
	}

	names := cat.Names(selected)
	for i, n := range names {
		names[i] = strings.ToLower(strings.ReplaceAll(n, " ", ""))
	}
	return strings.Join(names, "-")
}

// SafeFileName returns a name for a that is safe on any filesystem. Display
// names may carry characters such as "/" and "(" that slug rewrites.
func SafeFileName(a *models.Artifact) string {
	name := slug.Make(a.SuggestedName)
	if name == "" {
		name = emptySelectionName
	}
	return name + a.Format.Extension()
}
