// ABOUTME: Tests for CLI helper functions and command execution.
// ABOUTME: Runs add, list, export, history, and migrate against temp data dirs.
package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/harperreed/healthlens/internal/config"
)

func TestTruncate(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		maxLen int
		want   string
	}{
		{
			name:   "short string no truncation",
			input:  "hello",
			maxLen: 10,
			want:   "hello",
		},
		{
			name:   "exact length",
			input:  "hello",
			maxLen: 5,
			want:   "hello",
		},
		{
			name:   "needs truncation",
			input:  "hello world this is a long string",
			maxLen: 10,
			want:   "hello w...",
		},
		{
			name:   "multibyte runes",
			input:  "Größe und Gewicht",
			maxLen: 8,
			want:   "Größe...",
		},
		{
			name:   "empty string",
			input:  "",
			maxLen: 10,
			want:   "",
		},
		{
			name:   "very short maxLen",
			input:  "hello",
			maxLen: 3,
			want:   "...",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := truncate(tt.input, tt.maxLen)
			if got != tt.want {
				t.Errorf("truncate(%q, %d) = %q, want %q", tt.input, tt.maxLen, got, tt.want)
			}
		})
	}
}

func TestPadRight(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		length int
		want   string
	}{
		{"needs padding", "hi", 5, "hi   "},
		{"exact length", "hello", 5, "hello"},
		{"longer than length", "hello world", 5, "hello world"},
		{"empty string", "", 5, "     "},
		{"multibyte", "größe", 6, "größe "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := padRight(tt.input, tt.length)
			if got != tt.want {
				t.Errorf("padRight(%q, %d) = %q, want %q", tt.input, tt.length, got, tt.want)
			}
		})
	}
}

func TestShortID(t *testing.T) {
	id := uuid.MustParse("0123abcd-0000-4000-8000-000000000000")
	if got := shortID(id); got != "0123abcd" {
		t.Errorf("shortID = %q, want 0123abcd", got)
	}
}

func TestNewLogger(t *testing.T) {
	tests := []struct {
		format  string
		debug   bool
		want    string
		wantErr bool
	}{
		{format: "text", want: "level=WARN"},
		{format: "json", want: `"level":"WARN"`},
		{format: "", debug: true, want: "level=DEBUG"},
		{format: "xml", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			var buf bytes.Buffer
			l, err := newLogger(&buf, tt.format, tt.debug)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("newLogger failed: %v", err)
			}

			l.Info("hidden unless debug")
			if tt.debug {
				l.Debug("probe")
			} else {
				l.Warn("probe")
			}
			if !strings.Contains(buf.String(), tt.want) {
				t.Errorf("log output %q does not contain %q", buf.String(), tt.want)
			}
			if !tt.debug && strings.Contains(buf.String(), "hidden") {
				t.Error("info message logged at warn level")
			}
		})
	}
}

func TestCommandsRegistered(t *testing.T) {
	want := []string{"add", "list", "delete", "catalog", "export", "history", "migrate", "serve", "mcp", "version"}

	names := make(map[string]bool)
	for _, cmd := range rootCmd.Commands() {
		names[cmd.Name()] = true
	}
	for _, name := range want {
		if !names[name] {
			t.Errorf("command %q not registered", name)
		}
	}
}

func TestExportCmdFlags(t *testing.T) {
	for _, name := range []string{"all", "group", "format", "from", "to", "output-dir", "name", "fallback-only"} {
		if exportCmd.Flags().Lookup(name) == nil {
			t.Errorf("expected --%s flag on export command", name)
		}
	}

	if f := exportCmd.Flags().Lookup("format"); f.DefValue != "csv" {
		t.Errorf("default format = %q, want csv", f.DefValue)
	}
}

func TestListCmdAliases(t *testing.T) {
	expected := map[string]bool{"ls": false, "l": false}

	for _, alias := range listCmd.Aliases {
		if _, ok := expected[alias]; ok {
			expected[alias] = true
		}
	}

	for alias, found := range expected {
		if !found {
			t.Errorf("Expected alias %q for listCmd", alias)
		}
	}
}

// isolate points config and data at fresh temp dirs, clears any
// HEALTHLENS_* overrides, and pins the C locale.
func isolate(t *testing.T) string {
	t.Helper()

	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	for _, key := range []string{
		"HEALTHLENS_BACKEND", "HEALTHLENS_DATA_DIR", "HEALTHLENS_OUTPUT_DIR",
		"HEALTHLENS_LOCALE", "HEALTHLENS_MIN_RANGE", "HEALTHLENS_HTTP_ADDR",
		"HEALTHLENS_SAMPLE_LIMIT",
	} {
		t.Setenv(key, "")
		_ = os.Unsetenv(key)
	}
	t.Setenv("LC_ALL", "C")
	t.Setenv("HEALTHLENS_TIMEZONE", "UTC")
	t.Setenv("HEALTHLENS_TEMP_DIR", t.TempDir())

	return t.TempDir()
}

// run executes the root command with args and resets flag state afterwards.
func run(t *testing.T, args ...string) error {
	t.Helper()

	t.Cleanup(func() {
		if repo != nil {
			_ = repo.Close()
			repo = nil
		}
		configPath, backendFlag, dataDirFlag = "", "", ""
		addUnit, addAt, addSource, addNotes = "", "", "", ""
		listMetric, listLimit = "", 20
		exportAll, exportGroup, exportFormat = false, "", "csv"
		exportFrom, exportTo, exportOutputDir, exportName = "", "", "", ""
		exportFallbackOnly = false
		migrateTo, migrateDest, migrateForce = "", "", false
	})

	rootCmd.SetArgs(args)
	return rootCmd.Execute()
}

func TestAddAndExport(t *testing.T) {
	dataDir := isolate(t)
	outDir := t.TempDir()

	if err := run(t, "--data-dir", dataDir, "add", "Weight", "70.5", "--at", "2024-03-01 08:30"); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if err := run(t, "--data-dir", dataDir, "add", "height", "180", "--unit", "cm", "--at", "2024-03-01 08:31"); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if err := run(t, "--data-dir", dataDir, "list"); err != nil {
		t.Fatalf("list failed: %v", err)
	}

	if err := run(t, "--data-dir", dataDir, "export", "bodyMass", "height", "--output-dir", outDir); err != nil {
		t.Fatalf("export failed: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(outDir, "height-weight.csv"))
	if err != nil {
		t.Fatalf("read export: %v", err)
	}
	want := "Datetime,Category,Unit,Value\n" +
		"2024-03-01 08:31:00,Height,cm,180.00\n" +
		"2024-03-01 08:30:00,Weight,kg,70.50\n"
	if string(data) != want {
		t.Errorf("export mismatch\ngot:\n%q\nwant:\n%q", string(data), want)
	}

	// A second export never overwrites the first.
	if err := run(t, "--data-dir", dataDir, "export", "bodyMass", "height", "--output-dir", outDir); err != nil {
		t.Fatalf("second export failed: %v", err)
	}
	if _, err := os.Stat(filepath.Join(outDir, "height-weight-2.csv")); err != nil {
		t.Errorf("expected numbered second export: %v", err)
	}

	if err := run(t, "--data-dir", dataDir, "history"); err != nil {
		t.Fatalf("history failed: %v", err)
	}

	repo, err := config.OpenBackend(config.BackendSQLite, dataDir, nil)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	defer func() { _ = repo.Close() }()

	exports, err := repo.ListExports(0)
	if err != nil {
		t.Fatalf("ListExports failed: %v", err)
	}
	if len(exports) != 2 {
		t.Errorf("got %d export records, want 2", len(exports))
	}
}

func TestAddRejectsBadInput(t *testing.T) {
	dataDir := isolate(t)

	tests := []struct {
		name string
		args []string
	}{
		{"unknown metric", []string{"add", "notAMetric", "1"}},
		{"bad value", []string{"add", "bodyMass", "heavy"}},
		{"unknown unit", []string{"add", "bodyMass", "1", "--unit", "furlong"}},
		{"incompatible unit", []string{"add", "bodyMass", "1", "--unit", "m"}},
		{"infinite value", []string{"add", "bodyMass", "Inf"}},
		{"NaN value", []string{"add", "bodyMass", "NaN"}},
		{"bad timestamp", []string{"add", "bodyMass", "1", "--at", "yesterday"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := append([]string{"--data-dir", dataDir}, tt.args...)
			if err := run(t, args...); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestExportRejectsBadSelection(t *testing.T) {
	dataDir := isolate(t)

	tests := []struct {
		name string
		args []string
	}{
		{"nothing selected", []string{"export"}},
		{"unknown metric", []string{"export", "notAMetric"}},
		{"unknown group", []string{"export", "--group", "Nope"}},
		{"unknown format", []string{"export", "bodyMass", "-f", "pdf"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := append([]string{"--data-dir", dataDir}, tt.args...)
			if err := run(t, args...); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestMigrateToBadger(t *testing.T) {
	dataDir := isolate(t)

	if err := run(t, "--data-dir", dataDir, "add", "bodyMass", "70.5"); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if err := run(t, "--data-dir", dataDir, "migrate", "--to", "badger"); err != nil {
		t.Fatalf("migrate failed: %v", err)
	}

	// The destination now has data, so a second run must refuse.
	if err := run(t, "--data-dir", dataDir, "migrate", "--to", "badger"); err == nil {
		t.Error("expected error migrating into a non-empty store")
	}

	dst, err := config.OpenBackend(config.BackendBadger, dataDir, nil)
	if err != nil {
		t.Fatalf("open badger: %v", err)
	}
	defer func() { _ = dst.Close() }()

	counts, err := dst.CountSamples()
	if err != nil {
		t.Fatalf("CountSamples failed: %v", err)
	}
	if counts["bodyMass"] != 1 {
		t.Errorf("badger bodyMass count = %d, want 1", counts["bodyMass"])
	}
}

func TestMigrateSameStore(t *testing.T) {
	dataDir := isolate(t)

	if err := run(t, "--data-dir", dataDir, "migrate", "--to", "sqlite"); err == nil {
		t.Error("expected error migrating a store onto itself")
	}
}
