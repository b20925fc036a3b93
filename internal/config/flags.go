package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/docsim/internal/flagx"
)

// parseFlags populates Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-e string   storage engine: sqlite, badger or memory
//	-d string   SQLite DSN
//	-b string   badger directory
//	-s int      session lifetime, minutes
//	-k int      bcrypt cost
//	-w int      similarity workers
//	-l string   log level (debug, info, warn, error)
//	-f string   log file ("" or "-" for stderr)
//
// -s is given in whole minutes and only overrides SessionTTL when passed, so
// a sub-minute lifetime from the config file survives.
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-e", "-d", "-b", "-s", "-k", "-w", "-l", "-f"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.StorageEngine, "e", config.StorageEngine, "storage engine (sqlite, badger, memory)")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "sqlite database DSN")
	fs.StringVar(&config.BadgerDir, "b", config.BadgerDir, "badger database directory")
	sessionTTL := fs.Int("s", int(config.SessionTTL.Minutes()), "session lifetime (in minutes)")
	fs.IntVar(&config.BcryptCost, "k", config.BcryptCost, "bcrypt cost")
	fs.IntVar(&config.SimilarityWorkers, "w", config.SimilarityWorkers, "similarity workers")
	fs.StringVar(&config.LogLevel, "l", config.LogLevel, "log level")
	fs.StringVar(&config.LogFile, "f", config.LogFile, "log file")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	fs.Visit(func(f *flag.Flag) {
		if f.Name == "s" {
			config.SessionTTL = time.Duration(*sessionTTL) * time.Minute
		}
	})
	if config.LogFile == "-" {
		config.LogFile = ""
	}
}
