package configs

import (
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Settings holds business knobs that are not secrets.
type Settings struct {
	Timezone   string             `yaml:"timezone"`
	Pagination PaginationSettings `yaml:"pagination"`
	Upload     UploadSettings     `yaml:"upload"`
	Auth       AuthSettings       `yaml:"auth"`
}

type PaginationSettings struct {
	DefaultPerPage int `yaml:"default_per_page"`
	MaxPerPage     int `yaml:"max_per_page"`
}

type UploadSettings struct {
	MaxSizeMB     int `yaml:"max_size_mb"`
	PhotoMaxWidth int `yaml:"photo_max_width"`
	PhotoQuality  int `yaml:"photo_quality"`
}

type AuthSettings struct {
	AccessTTL  time.Duration `yaml:"access_ttl"`
	RefreshTTL time.Duration `yaml:"refresh_ttl"`
}

var App = DefaultSettings()

func DefaultSettings() Settings {
	return Settings{
		Timezone: "UTC",
		Pagination: PaginationSettings{
			DefaultPerPage: 15,
			MaxPerPage:     100,
		},
		Upload: UploadSettings{
			MaxSizeMB:     10,
			PhotoMaxWidth: 800,
			PhotoQuality:  80,
		},
		Auth: AuthSettings{
			AccessTTL:  time.Hour,
			RefreshTTL: 7 * 24 * time.Hour,
		},
	}
}

// LoadSettings overlays the YAML file at path on top of the defaults.
// A missing file is reported but leaves the defaults in place.
func LoadSettings(path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	s := DefaultSettings()
	if err := yaml.Unmarshal(raw, &s); err != nil {
		return err
	}
	if tz := GetEnv("APP_TIMEZONE"); tz != "" {
		s.Timezone = tz
	}
	App = s
	return nil
}

// Location resolves the configured timezone, falling back to UTC.
func (s Settings) Location() *time.Location {
	if s.Timezone == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(s.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}
