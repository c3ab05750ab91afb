// ABOUTME: Healthlens configuration management with backend selection.
// ABOUTME: Loads YAML settings, applies environment overrides, and opens storage.

package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/harperreed/healthlens/internal/catalog"
	"github.com/harperreed/healthlens/internal/export"
	"github.com/harperreed/healthlens/internal/models"
	"github.com/harperreed/healthlens/internal/normalize"
	"github.com/harperreed/healthlens/internal/storage"
	"github.com/harperreed/healthlens/internal/units"
	"gopkg.in/yaml.v3"
)

// Storage backends
const (
	BackendSQLite = "sqlite"
	BackendBadger = "badger"
)

// DefaultHTTPAddr is the listen address for the HTTP API.
const DefaultHTTPAddr = "127.0.0.1:8417"

// Config stores healthlens configuration.
type Config struct {
	// Backend selects the storage backend: "sqlite" (default) or "badger".
	Backend string `yaml:"backend,omitempty"`

	// DataDir is the root directory for data storage.
	// SQLite puts healthlens.db here. Badger keeps its files under badger/.
	// Supports ~ expansion for home directory. Defaults to ~/.local/share/healthlens.
	DataDir string `yaml:"data_dir,omitempty"`

	// OutputDir is where finished exports are copied. Defaults to the working directory.
	OutputDir string `yaml:"output_dir,omitempty"`

	// TempDir holds in-progress export artifacts. Defaults to os.TempDir().
	TempDir string `yaml:"temp_dir,omitempty"`

	Locale   string `yaml:"locale,omitempty"`
	Timezone string `yaml:"timezone,omitempty"`

	SampleLimit int    `yaml:"sample_limit,omitempty"`
	MinRange    string `yaml:"min_range,omitempty"`

	// Units maps a metric id to the unit symbol it is exported in.
	Units map[string]string `yaml:"units,omitempty"`

	HTTP HTTPConfig `yaml:"http,omitempty"`
}

// HTTPConfig configures the HTTP API server.
type HTTPConfig struct {
	Addr string `yaml:"addr,omitempty"`
}

// GetBackend returns the configured backend, defaulting to "sqlite".
func (c *Config) GetBackend() string {
	if c.Backend == "" {
		return BackendSQLite
	}
	return c.Backend
}

// GetDataDir returns the configured data directory with ~ expanded,
// defaulting to the standard XDG data directory.
func (c *Config) GetDataDir() string {
	if c.DataDir == "" {
		return storage.DataDir()
	}
	return ExpandPath(c.DataDir)
}

// GetOutputDir returns the directory exports are saved to.
func (c *Config) GetOutputDir() string {
	if c.OutputDir == "" {
		return "."
	}
	return ExpandPath(c.OutputDir)
}

// GetTempDir returns the directory for in-progress artifacts.
func (c *Config) GetTempDir() string {
	if c.TempDir == "" {
		return os.TempDir()
	}
	return ExpandPath(c.TempDir)
}

// GetHTTPAddr returns the HTTP listen address.
func (c *Config) GetHTTPAddr() string {
	if c.HTTP.Addr == "" {
		return DefaultHTTPAddr
	}
	return c.HTTP.Addr
}

// Policy returns the export fetch policy with configured overrides.
func (c *Config) Policy() (export.Policy, error) {
	p := export.DefaultPolicy()
	if c.SampleLimit > 0 {
		p.SampleLimit = c.SampleLimit
	}
	if c.MinRange != "" {
		d, err := time.ParseDuration(c.MinRange)
		if err != nil {
			return p, fmt.Errorf("parse min_range: %w", err)
		}
		if d < 0 {
			return p, fmt.Errorf("min_range must not be negative: %s", c.MinRange)
		}
		p.MinRange = d
	}
	return p, nil
}

// LoadLocale returns the configured formatting locale. Without a configured
// locale the POSIX locale environment decides, and an unusable environment
// value selects the ISO fallback.
func (c *Config) LoadLocale() (*normalize.Locale, error) {
	if c.Locale != "" {
		return normalize.LoadLocale(c.Locale)
	}
	l, err := normalize.LoadLocale(EnvLocale())
	if err != nil {
		return normalize.ISOLocale(), nil
	}
	return l, nil
}

// EnvLocale returns the first set of LC_ALL, LC_TIME and LANG as a BCP 47
// tag. "en_US.UTF-8" becomes "en-US". C and POSIX yield "".
func EnvLocale() string {
	for _, key := range []string{"LC_ALL", "LC_TIME", "LANG"} {
		v := os.Getenv(key)
		if v == "" {
			continue
		}
		if i := strings.IndexAny(v, ".@"); i >= 0 {
			v = v[:i]
		}
		if v == "C" || v == "POSIX" {
			return ""
		}
		return strings.ReplaceAll(v, "_", "-")
	}
	return ""
}

// Location returns the configured time zone, defaulting to the local zone.
func (c *Config) Location() (*time.Location, error) {
	if c.Timezone == "" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("load timezone: %w", err)
	}
	return loc, nil
}

// UnitPreferences returns the unit each metric is exported in: the
// catalog's canonical unit, replaced by any configured override.
func (c *Config) UnitPreferences(cat *catalog.Catalog) models.UnitPreferences {
	prefs := make(models.UnitPreferences, cat.Len()+len(c.Units))
	for _, m := range cat.All() {
		prefs[m.ID] = m.Unit
	}
	for id, symbol := range c.Units {
		prefs[models.MetricID(id)] = symbol
	}
	return prefs
}

// Validate reports every problem with the configuration.
func (c *Config) Validate(cat *catalog.Catalog) error {
	var errs []error

	switch c.GetBackend() {
	case BackendSQLite, BackendBadger:
	default:
		errs = append(errs, fmt.Errorf("unknown backend: %q", c.Backend))
	}

	if c.SampleLimit < 0 {
		errs = append(errs, fmt.Errorf("sample_limit must not be negative: %d", c.SampleLimit))
	}
	if _, err := c.Policy(); err != nil {
		errs = append(errs, err)
	}
	if _, err := c.LoadLocale(); err != nil {
		errs = append(errs, err)
	}
	if _, err := c.Location(); err != nil {
		errs = append(errs, err)
	}

	for id, symbol := range c.Units {
		u, err := units.Parse(symbol)
		if err != nil {
			errs = append(errs, fmt.Errorf("units.%s: %w", id, err))
			continue
		}
		m, ok := cat.Lookup(models.MetricID(id))
		if !ok {
			errs = append(errs, fmt.Errorf("units.%s: unknown metric", id))
			continue
		}
		canonical, err := units.Parse(m.Unit)
		if err != nil {
			continue
		}
		if !units.Compatible(u, canonical) {
			errs = append(errs, fmt.Errorf("units.%s: %s is not compatible with %s", id, symbol, m.Unit))
		}
	}

	return errors.Join(errs...)
}

// ExpandPath expands a leading ~ to the user's home directory.
func ExpandPath(path string) string {
	if path == "" {
		return ""
	}
	if path == "~" {
		home, _ := os.UserHomeDir()
		return home
	}
	if strings.HasPrefix(path, "~/") {
		home, _ := os.UserHomeDir()
		return filepath.Join(home, path[2:])
	}
	return path
}

// OpenStorage creates a Repository implementation based on the configured backend.
func (c *Config) OpenStorage(logger *slog.Logger) (storage.Repository, error) {
	return OpenBackend(c.GetBackend(), c.GetDataDir(), logger)
}

// OpenBackend opens the named backend rooted at dataDir.
func OpenBackend(backend, dataDir string, logger *slog.Logger) (storage.Repository, error) {
	switch backend {
	case BackendSQLite:
		return storage.Open(filepath.Join(dataDir, "healthlens.db"))
	case BackendBadger:
		return storage.NewBadgerStore(storage.BadgerConfig{
			Path:   filepath.Join(dataDir, "badger"),
			Logger: logger,
		})
	default:
		return nil, fmt.Errorf("unknown backend: %q", backend)
	}
}

// GetConfigPath returns the config file path.
func GetConfigPath() string {
	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		homeDir, _ := os.UserHomeDir()
		configDir = filepath.Join(homeDir, ".config")
	}
	return filepath.Join(configDir, "healthlens", "config.yaml")
}

// Load reads config from the default path and applies environment overrides.
func Load() (*Config, error) {
	return LoadFrom(GetConfigPath())
}

// LoadFrom reads config from path and applies environment overrides.
// A missing file yields the defaults.
func LoadFrom(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyEnv overrides fields from HEALTHLENS_* environment variables.
func (c *Config) applyEnv() error {
	strs := map[string]*string{
		"HEALTHLENS_BACKEND":    &c.Backend,
		"HEALTHLENS_DATA_DIR":   &c.DataDir,
		"HEALTHLENS_OUTPUT_DIR": &c.OutputDir,
		"HEALTHLENS_TEMP_DIR":   &c.TempDir,
		"HEALTHLENS_LOCALE":     &c.Locale,
		"HEALTHLENS_TIMEZONE":   &c.Timezone,
		"HEALTHLENS_MIN_RANGE":  &c.MinRange,
		"HEALTHLENS_HTTP_ADDR":  &c.HTTP.Addr,
	}
	for key, field := range strs {
		if v, ok := os.LookupEnv(key); ok {
			*field = v
		}
	}

	if v, ok := os.LookupEnv("HEALTHLENS_SAMPLE_LIMIT"); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("HEALTHLENS_SAMPLE_LIMIT: %w", err)
		}
		c.SampleLimit = n
	}
	return nil
}

// Save writes config to disk.
func (c *Config) Save() error {
	return c.SaveTo(GetConfigPath())
}

// SaveTo writes config to path.
func (c *Config) SaveTo(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		return err
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0600)
}
