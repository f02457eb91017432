// Package config loads pdfdigest settings from defaults, an optional TOML file and the environment.
package config

import (
	"errors"
	"fmt"
	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"
	"os"
	"pdfdigest/internal/keywords"
	"pdfdigest/internal/summary"
	"time"
)

// Environment variables read after the optional .env file.
const (
	EnvSummarizerURL   = "SUMMARIZER_URL"
	EnvSummarizerToken = "SUMMARIZER_TOKEN"
	EnvSummarizerModel = "SUMMARIZER_MODEL"
)

type Config struct {
	Summary  SummaryConfig  `toml:"summary"`
	Remote   RemoteConfig   `toml:"remote"`
	Keywords KeywordsConfig `toml:"keywords"`
	Export   ExportConfig   `toml:"export"`
	Server   ServerConfig   `toml:"server"`
}

type SummaryConfig struct {
	// Backend is remote, textrank or lexrank.
	Backend          string `toml:"backend"`
	MinWords         int    `toml:"min_words"`
	SingleChunkWords int    `toml:"single_chunk_words"`
	LargeDocWords    int    `toml:"large_doc_words"`
	MediumChunkSize  int    `toml:"medium_chunk_size"`
	LargeChunkSize   int    `toml:"large_chunk_size"`
	MaxDepth         int    `toml:"max_depth"`
}

type RemoteConfig struct {
	URL               string   `toml:"url"`
	Token             string   `toml:"token"`
	Model             string   `toml:"model"`
	Timeout           Duration `toml:"timeout"`
	RequestsPerSecond float64  `toml:"requests_per_second"`
}

type KeywordsConfig struct {
	// Generator is rake, textrank, prose or frequency.
	Generator string   `toml:"generator"`
	Count     int      `toml:"count"`
	MinLength int      `toml:"min_length"`
	MaxLength int      `toml:"max_length"`
	Sites     []string `toml:"sites"`
}

type ExportConfig struct {
	// FontPath is a TrueType font used for word clouds. Clouds are skipped when empty.
	FontPath    string `toml:"font_path"`
	CloudWidth  int    `toml:"cloud_width"`
	CloudHeight int    `toml:"cloud_height"`
}

type ServerConfig struct {
	Addr           string   `toml:"addr"`
	DBPath         string   `toml:"db_path"`
	MaxUploadMB    int64    `toml:"max_upload_mb"`
	RequestTimeout Duration `toml:"request_timeout"`
	Theme          string   `toml:"theme"`
}

// Duration is a time.Duration written as a string such as "90s" in TOML.
type Duration struct {
	time.Duration
}

// UnmarshalText parses a duration string.
func (d *Duration) UnmarshalText(b []byte) error {
	v, err := time.ParseDuration(string(b))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// MarshalText formats the duration.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Summary: SummaryConfig{
			Backend:          summary.BackendRemote,
			MinWords:         120,
			SingleChunkWords: summary.DefaultSingleChunkWords,
			LargeDocWords:    summary.DefaultLargeDocWords,
			MediumChunkSize:  summary.DefaultMediumChunkSize,
			LargeChunkSize:   summary.DefaultLargeChunkSize,
			MaxDepth:         summary.DefaultMaxDepth,
		},
		Remote: RemoteConfig{
			Model:   summary.DefaultRemoteModel,
			Timeout: Duration{summary.DefaultRemoteTimeout},
		},
		Keywords: KeywordsConfig{
			Generator: keywords.GeneratorRAKE,
			Count:     10,
			MinLength: keywords.DefaultMinLength,
			MaxLength: keywords.DefaultMaxLength,
			Sites:     append([]string{}, keywords.DefaultSites...),
		},
		Export: ExportConfig{
			CloudWidth:  800,
			CloudHeight: 400,
		},
		Server: ServerConfig{
			Addr:           ":8080",
			DBPath:         "pdfdigest.db",
			MaxUploadMB:    10,
			RequestTimeout: Duration{5 * time.Minute},
			Theme:          "classic",
		},
	}
}

// Load returns the defaults overlaid with the TOML file at path (when path is set),
// then with the environment. A .env file in the working directory is loaded first if present.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	cfg := Default()
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := toml.Unmarshal(b, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}
	cfg.applyEnv()
	return cfg, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv(EnvSummarizerURL); v != "" {
		c.Remote.URL = v
	}
	if v := os.Getenv(EnvSummarizerToken); v != "" {
		c.Remote.Token = v
	}
	if v := os.Getenv(EnvSummarizerModel); v != "" {
		c.Remote.Model = v
	}
}

// Validate reports the first setting that cannot work.
func (c *Config) Validate() error {
	switch {
	case c.Summary.MinWords < 1:
		return fmt.Errorf("summary.min_words must be positive, got %d", c.Summary.MinWords)
	case c.Summary.SingleChunkWords < 1 || c.Summary.LargeDocWords < c.Summary.SingleChunkWords:
		return fmt.Errorf("summary thresholds must satisfy 0 < single_chunk_words <= large_doc_words")
	case c.Summary.MediumChunkSize < 1 || c.Summary.LargeChunkSize < 1:
		return fmt.Errorf("summary chunk sizes must be positive")
	case c.Summary.MaxDepth < 0:
		return fmt.Errorf("summary.max_depth must not be negative")
	case c.Keywords.Count < 0:
		return fmt.Errorf("keywords.count must not be negative")
	case c.Keywords.MinLength < 1 || c.Keywords.MaxLength < c.Keywords.MinLength:
		return fmt.Errorf("keywords length bounds must satisfy 0 < min_length <= max_length")
	case c.Summary.Backend == summary.BackendRemote && c.Remote.URL == "" && c.Remote.Token == "":
		return fmt.Errorf("remote summarizer needs %s or %s", EnvSummarizerURL, EnvSummarizerToken)
	case c.Remote.RequestsPerSecond < 0:
		return fmt.Errorf("remote.requests_per_second must not be negative")
	case c.Server.MaxUploadMB < 1:
		return fmt.Errorf("server.max_upload_mb must be positive")
	}
	return nil
}
