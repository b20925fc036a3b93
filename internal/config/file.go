package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/dmitrijs2005/docsim/internal/flagx"
	"github.com/dmitrijs2005/docsim/internal/timex"
	"gopkg.in/yaml.v3"
)

// FileConfig is the on-disk shape of the configuration. Durations go through
// timex.Duration so "24h" and integer nanoseconds are both accepted.
type FileConfig struct {
	StorageEngine      string         `json:"storage_engine" yaml:"storage_engine"`
	DatabaseDSN        string         `json:"database_dsn" yaml:"database_dsn"`
	BadgerDir          string         `json:"badger_dir" yaml:"badger_dir"`
	SessionTTL         timex.Duration `json:"session_ttl" yaml:"session_ttl"`
	BcryptCost         int            `json:"bcrypt_cost" yaml:"bcrypt_cost"`
	SimilarityWorkers  int            `json:"similarity_workers" yaml:"similarity_workers"`
	SimilarityCacheTTL timex.Duration `json:"similarity_cache_ttl" yaml:"similarity_cache_ttl"`
	FetchTimeout       timex.Duration `json:"fetch_timeout" yaml:"fetch_timeout"`
	LogLevel           string         `json:"log_level" yaml:"log_level"`
	LogFormat          string         `json:"log_format" yaml:"log_format"`
	LogFile            string         `json:"log_file" yaml:"log_file"`
}

// parseFile overlays cfg with the file named by -c/-config. Files ending in
// .yaml or .yml are decoded as YAML, anything else as JSON. Only keys present
// with a non-zero value override cfg. Read or decode errors panic, the same
// way flag errors do.
func parseFile(cfg *Config) {
	path := flagx.ConfigFileFlag()
	if path == "" {
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	var fc FileConfig
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &fc)
	default:
		err = json.Unmarshal(data, &fc)
	}
	if err != nil {
		panic(err)
	}

	fc.overlay(cfg)
}

func (fc *FileConfig) overlay(cfg *Config) {
	setString(&cfg.StorageEngine, fc.StorageEngine)
	setString(&cfg.DatabaseDSN, fc.DatabaseDSN)
	setString(&cfg.BadgerDir, fc.BadgerDir)
	setString(&cfg.LogLevel, fc.LogLevel)
	setString(&cfg.LogFormat, fc.LogFormat)
	setString(&cfg.LogFile, fc.LogFile)

	if fc.SessionTTL.Duration > 0 {
		cfg.SessionTTL = fc.SessionTTL.Duration
	}
	if fc.SimilarityCacheTTL.Duration > 0 {
		cfg.SimilarityCacheTTL = fc.SimilarityCacheTTL.Duration
	}
	if fc.FetchTimeout.Duration > 0 {
		cfg.FetchTimeout = fc.FetchTimeout.Duration
	}
	if fc.BcryptCost > 0 {
		cfg.BcryptCost = fc.BcryptCost
	}
	if fc.SimilarityWorkers > 0 {
		cfg.SimilarityWorkers = fc.SimilarityWorkers
	}
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
