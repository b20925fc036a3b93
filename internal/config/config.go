// Package config assembles docsim runtime settings from defaults, an optional
// JSON or YAML file and command-line flags, in that order of precedence.
package config

import (
	"time"

	"github.com/dmitrijs2005/docsim/internal/common"
)

// Storage engines understood by repomanager.New.
const (
	EngineSQLite = "sqlite"
	EngineBadger = "badger"
	EngineMemory = "memory"
)

// Config holds runtime settings for docsim.
//
// Fields:
//   - StorageEngine: one of EngineSQLite, EngineBadger, EngineMemory.
//   - DatabaseDSN: SQLite file path or DSN (modernc.org/sqlite).
//   - BadgerDir: directory of the badger value log and LSM tree.
//   - SessionTTL: lifetime of a session issued by login.
//   - BcryptCost: bcrypt work factor for password hashes.
//   - SimilarityWorkers: goroutines used for all-pairs comparison (1 = sequential).
//   - SimilarityCacheTTL: how long computed pair scores are memoised (0 disables).
//   - FetchTimeout: HTTP timeout for the fetch command.
//   - LogLevel / LogFormat / LogFile: logging setup; empty LogFile means stderr.
type Config struct {
	StorageEngine      string
	DatabaseDSN        string
	BadgerDir          string
	SessionTTL         time.Duration
	BcryptCost         int
	SimilarityWorkers  int
	SimilarityCacheTTL time.Duration
	FetchTimeout       time.Duration
	LogLevel           string
	LogFormat          string
	LogFile            string
}

// LoadDefaults populates c with settings suitable for a single local user.
func (c *Config) LoadDefaults() {
	c.StorageEngine = EngineSQLite
	c.DatabaseDSN = "docsim.db"
	c.BadgerDir = "docsim.badger"
	c.SessionTTL = common.DefaultSessionLifetime
	c.BcryptCost = 10
	c.SimilarityWorkers = 1
	c.SimilarityCacheTTL = 10 * time.Minute
	c.FetchTimeout = 30 * time.Second
	c.LogLevel = "info"
	c.LogFormat = "text"
	c.LogFile = "docsim.log"
}

// LoadConfig builds a Config by applying defaults, then overlaying values
// from an optional config file and finally from command-line flags.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseFile(cfg)
	parseFlags(cfg)
	return cfg
}
