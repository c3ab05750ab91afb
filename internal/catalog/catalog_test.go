// ABOUTME: Tests for the metric catalog.
// ABOUTME: Validates the data table, group membership, lookup, and selection helpers.
package catalog

import (
	"testing"

	"github.com/harperreed/healthlens/internal/models"
	"github.com/harperreed/healthlens/internal/units"
)

func TestDefaultCatalogUnitsParse(t *testing.T) {
	for _, m := range Default().All() {
		if _, err := units.Parse(m.Unit); err != nil {
			t.Errorf("metric %s has unparseable unit %q: %v", m.ID, m.Unit, err)
		}
		if m.Name == "" {
			t.Errorf("metric %s has empty name", m.ID)
		}
	}
}

func TestDefaultGroupsReferenceKnownMetrics(t *testing.T) {
	c := Default()
	for _, g := range c.Groups() {
		if len(g.Metrics) == 0 {
			t.Errorf("group %q is empty", g.Name)
		}
		for _, id := range g.Metrics {
			if _, ok := c.Lookup(id); !ok {
				t.Errorf("group %q references unknown metric %s", g.Name, id)
			}
		}
	}
}

func TestGroupOverlapIsAllowed(t *testing.T) {
	c := Default()
	memberOf := map[models.MetricID]int{}
	for _, g := range c.Groups() {
		for _, id := range g.Metrics {
			memberOf[id]++
		}
	}
	if memberOf["basalBodyTemperature"] != 2 {
		t.Errorf("basalBodyTemperature in %d groups, want 2", memberOf["basalBodyTemperature"])
	}
}

func TestLabel(t *testing.T) {
	c := Default()
	if got := c.Label("bodyMass"); got != "Weight" {
		t.Errorf("Label(bodyMass) = %s, want Weight", got)
	}
	if got := c.Label("notAMetric"); got != UnknownLabel {
		t.Errorf("Label(notAMetric) = %s, want %s", got, UnknownLabel)
	}
}

func TestFind(t *testing.T) {
	c := Default()
	tests := []struct {
		input string
		want  models.MetricID
		found bool
	}{
		{"bodyMass", "bodyMass", true},
		{"bodymass", "bodyMass", true},
		{"Weight", "bodyMass", true},
		{"body-mass-index-bmi", "bodyMassIndex", true},
		{"Heart Rate Variability (SDNN)", "heartRateVariabilitySDNN", true},
		{"wingspan", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			m, ok := c.Find(tt.input)
			if ok != tt.found {
				t.Fatalf("Find(%q) found = %v, want %v", tt.input, ok, tt.found)
			}
			if m.ID != tt.want {
				t.Errorf("Find(%q) = %s, want %s", tt.input, m.ID, tt.want)
			}
		})
	}
}

func TestGroupLookup(t *testing.T) {
	c := Default()
	for _, name := range []string{"Heart", "heart", "vital-signs", "Body Measurements"} {
		if _, ok := c.Group(name); !ok {
			t.Errorf("Group(%q) not found", name)
		}
	}
	if _, ok := c.Group("Symptoms"); ok {
		t.Error("Group(Symptoms) should not exist")
	}
}

func TestCoversAll(t *testing.T) {
	c := Default()
	if !c.CoversAll(c.IDs()) {
		t.Error("CoversAll(IDs()) = false, want true")
	}
	if c.CoversAll(c.IDs()[1:]) {
		t.Error("CoversAll(missing one) = true, want false")
	}

	// Duplicates and unknown ids do not count toward coverage.
	partial := append([]models.MetricID{"bogus", "bodyMass"}, c.IDs()[2:]...)
	partial = append(partial, "bodyMass")
	if c.CoversAll(partial) {
		t.Error("CoversAll with duplicates = true, want false")
	}
}

func TestDescribe(t *testing.T) {
	c := Default()
	got := c.Describe([]models.MetricID{"height", "bodyMass", "height"})
	if got != "Height, Weight" {
		t.Errorf("Describe = %q, want %q", got, "Height, Weight")
	}
}

func TestNewRejectsUnknownGroupMember(t *testing.T) {
	_, err := New(
		[]Metric{{ID: "bodyMass", Name: "Weight", Unit: "kg"}},
		[]Group{{Name: "Heart", Metrics: []models.MetricID{"heartRate"}}},
	)
	if err == nil {
		t.Fatal("expected error for unknown group member")
	}
}

func TestNewRejectsDuplicateMetric(t *testing.T) {
	_, err := New([]Metric{
		{ID: "bodyMass", Name: "Weight", Unit: "kg"},
		{ID: "bodyMass", Name: "Mass", Unit: "kg"},
	}, nil)
	if err == nil {
		t.Fatal("expected error for duplicate metric")
	}
}
