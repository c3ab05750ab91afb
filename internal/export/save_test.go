// ABOUTME: Tests for moving artifacts into the output directory.
// ABOUTME: Covers default names, explicit names, and collision suffixes.
package export

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/harperreed/healthlens/internal/models"
)

func tempArtifact(t *testing.T, name string, format models.Format) *models.Artifact {
	t.Helper()

	path := filepath.Join(t.TempDir(), "HealthData"+format.Extension())
	if err := os.WriteFile(path, []byte("Datetime,Category,Unit,Value\n"), 0600); err != nil {
		t.Fatal(err)
	}
	return &models.Artifact{Path: path, SuggestedName: name, Format: format}
}

func TestSaveDefaultName(t *testing.T) {
	out := t.TempDir()
	a := tempArtifact(t, "Distance Walking/Running", models.FormatCSV)
	src := a.Path

	dest, err := Save(a, out, "")
	if err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if want := filepath.Join(out, "distance-walking-running.csv"); dest != want {
		t.Errorf("dest = %q, want %q", dest, want)
	}
	if a.Path != dest {
		t.Errorf("artifact path not updated: %q", a.Path)
	}
	if _, err := os.Stat(src); !os.IsNotExist(err) {
		t.Error("temp file still present after save")
	}
	data, err := os.ReadFile(dest)
	if err != nil || string(data) != "Datetime,Category,Unit,Value\n" {
		t.Errorf("saved content = %q, %v", data, err)
	}
}

func TestSaveExplicitName(t *testing.T) {
	out := t.TempDir()
	a := tempArtifact(t, "weight", models.FormatXLSX)

	dest, err := Save(a, out, "march")
	if err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if want := filepath.Join(out, "march.xlsx"); dest != want {
		t.Errorf("dest = %q, want %q", dest, want)
	}
}

func TestSaveDoesNotOverwrite(t *testing.T) {
	out := t.TempDir()
	existing := filepath.Join(out, "weight.csv")
	if err := os.WriteFile(existing, []byte("keep"), 0600); err != nil {
		t.Fatal(err)
	}

	dest, err := Save(tempArtifact(t, "weight", models.FormatCSV), out, "")
	if err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if want := filepath.Join(out, "weight-2.csv"); dest != want {
		t.Errorf("dest = %q, want %q", dest, want)
	}
	if data, _ := os.ReadFile(existing); string(data) != "keep" {
		t.Error("existing file was overwritten")
	}
}

func TestSaveMissingSource(t *testing.T) {
	a := &models.Artifact{Path: filepath.Join(t.TempDir(), "gone.csv"), SuggestedName: "weight", Format: models.FormatCSV}
	out := t.TempDir()

	if _, err := Save(a, out, ""); err == nil {
		t.Fatal("expected error for missing artifact")
	}
	if entries, _ := os.ReadDir(out); len(entries) != 0 {
		t.Errorf("left %d files behind", len(entries))
	}
}
