package config

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/lucianorarrua/cosquin-rock-lineup/internal/model"
)

// DatasetConfig describes where the raw lineup records come from.
// Exactly one of URL or Path is normally set; when both are empty the
// embedded default dataset is used.
type DatasetConfig struct {
	// URL is a remote lineup JSON endpoint, fetched with conditional
	// requests and a disk cache.
	URL string `yaml:"url" json:"url"`
	// Path is a local lineup JSON file.
	Path string `yaml:"path" json:"path"`
	// CacheDir holds the HTTP cache for URL-based datasets.
	CacheDir string `yaml:"cache_dir" json:"cache_dir"`
}

// Config is the top-level application configuration.
type Config struct {
	// Listen is the HTTP listen address for the UI and API.
	Listen string `yaml:"listen" json:"listen"`

	// UTCOffsetHours is the fixed festival-local offset from UTC. The
	// event window never crosses a DST transition, so a constant is
	// deliberately used instead of an IANA timezone rule.
	UTCOffsetHours int `yaml:"utc_offset_hours" json:"utc_offset_hours"`

	// GridStartHour is the local hour the daily grid starts at; times
	// earlier than this are treated as a continuation of the previous
	// evening.
	GridStartHour int `yaml:"grid_start_hour" json:"grid_start_hour"`

	// PixelsPerMinute and MinEventHeight control the rendered geometry.
	PixelsPerMinute int `yaml:"pixels_per_minute" json:"pixels_per_minute"`
	MinEventHeight  int `yaml:"min_event_height" json:"min_event_height"`

	// StrictIngest rejects the dataset on the first malformed record
	// instead of skipping it.
	StrictIngest bool `yaml:"strict_ingest" json:"strict_ingest"`

	// RefreshCron re-fetches a URL-based dataset on this schedule
	// (e.g. "*/30 * * * *"). Empty disables periodic refresh.
	RefreshCron string `yaml:"refresh" json:"refresh"`

	// Days is the fixed set of festival days shown in the UI, listed in
	// display order.
	Days []model.DayInfo `yaml:"days" json:"days"`

	// StagePriority is the curated stage display order; stages not on
	// the list render after all known ones.
	StagePriority []string `yaml:"stage_priority" json:"stage_priority"`

	// Dataset selects the raw lineup source.
	Dataset DatasetConfig `yaml:"dataset" json:"dataset"`
}

// DefaultConfig returns an in-memory default configuration.
func DefaultConfig() *Config {
	return &Config{
		Listen:          "127.0.0.1:8080",
		UTCOffsetHours:  -3,
		GridStartHour:   14,
		PixelsPerMinute: 2,
		MinEventHeight:  48,
		StrictIngest:    false,
		RefreshCron:     "",
		Days: []model.DayInfo{
			{Day: 1, Label: "Día 1", Date: "2026-02-14"},
			{Day: 2, Label: "Día 2", Date: "2026-02-15"},
		},
		StagePriority: []string{
			"Norte",
			"Sur",
			"Montaña",
			"Boomerang",
			"Paraguay",
			"La Casita del Blues",
		},
		Dataset: DatasetConfig{
			CacheDir: "./cache/lineup",
		},
	}
}

// Normalize fills in missing/zero values with sensible defaults so that
// partially-filled configs still behave correctly.
func (c *Config) Normalize() {
	def := DefaultConfig()

	if c.Listen == "" {
		c.Listen = def.Listen
	}
	if c.GridStartHour <= 0 || c.GridStartHour > 23 {
		c.GridStartHour = def.GridStartHour
	}
	if c.PixelsPerMinute <= 0 {
		c.PixelsPerMinute = def.PixelsPerMinute
	}
	if c.MinEventHeight <= 0 {
		c.MinEventHeight = def.MinEventHeight
	}
	if len(c.Days) == 0 {
		c.Days = def.Days
	}
	if c.StagePriority == nil {
		c.StagePriority = def.StagePriority
	}
	if c.Dataset.CacheDir == "" {
		c.Dataset.CacheDir = def.Dataset.CacheDir
	}
	// UTCOffsetHours zero is a valid offset; leave it alone.
}

// Load loads configuration from the given YAML path.
//
// If the file does not exist, a default config is written there (0600)
// and returned, so a first run produces an editable file.
func Load(path string) (*Config, error) {
	if path == "" {
		return nil, errors.New("config path is empty")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg := DefaultConfig()
			if err := Save(path, cfg); err != nil {
				return cfg, err
			}
			return cfg, nil
		}
		return nil, errors.Wrap(err, "read config")
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, errors.Wrap(err, "parse config")
	}
	cfg.Normalize()

	return &cfg, nil
}

// Save writes the configuration atomically (temp file + rename) with
// 0600 permissions.
func Save(path string, cfg *Config) error {
	if path == "" {
		return errors.New("config path is empty")
	}
	if cfg == nil {
		return errors.New("config is nil")
	}

	cfg.Normalize()

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, ".lineup-config-*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmpName, 0o600); err != nil {
		return err
	}

	return os.Rename(tmpName, path)
}
