package main

import (
	"context"
	"log"
	"log/slog"
	"os"

	"github.com/dmitrijs2005/docsim/internal/buildinfo"
	"github.com/dmitrijs2005/docsim/internal/cli"
	"github.com/dmitrijs2005/docsim/internal/config"
	"github.com/dmitrijs2005/docsim/internal/filex"
	"github.com/dmitrijs2005/docsim/internal/logging"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	ctx := context.Background()

	cfg := config.LoadConfig()

	if cfg.LogFile != "" {
		if err := filex.EnsureParentDir(cfg.LogFile); err != nil {
			log.Fatalf("%v", err)
		}
	}
	logger := logging.New(logging.Options{Level: cfg.LogLevel, Format: cfg.LogFormat, File: cfg.LogFile})
	slog.SetDefault(logger.Slog())

	app, err := cli.NewApp(ctx, cfg, logger)
	if err != nil {
		log.Printf("%v", err)
		return
	}
	defer func() {
		if err := app.Close(); err != nil {
			logger.Error(ctx, "close store", "error", err)
		}
	}()

	app.Run(ctx)

}
