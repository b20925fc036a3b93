// Package cli is the interactive docsim front end: a line-oriented REPL over
// the user, auth and document services.
package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/dmitrijs2005/docsim/internal/common"
	"github.com/dmitrijs2005/docsim/internal/config"
	"github.com/dmitrijs2005/docsim/internal/logging"
	"github.com/dmitrijs2005/docsim/internal/netx"
	"github.com/dmitrijs2005/docsim/internal/repositories/repomanager"
	"github.com/dmitrijs2005/docsim/internal/services"
	"github.com/dmitrijs2005/docsim/internal/similarity"
	"github.com/patrickmn/go-cache"
)

type App struct {
	repos   repomanager.RepositoryManager
	users   *services.UserService
	auth    *services.AuthService
	docs    *services.DocumentService
	fetcher *netx.Fetcher
	log     logging.Logger

	reader *bufio.Reader
	out    io.Writer

	sessionID string
	email     string
}

// NewApp opens the configured store and wires the services on top of it.
func NewApp(ctx context.Context, cfg *config.Config, log logging.Logger) (*App, error) {
	repos, err := repomanager.New(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("error opening store: %w", err)
	}
	log.Info(ctx, "store opened", "engine", cfg.StorageEngine)

	return newApp(cfg, repos, log, bufio.NewReader(os.Stdin), os.Stdout), nil
}

func newApp(cfg *config.Config, repos repomanager.RepositoryManager, log logging.Logger, reader *bufio.Reader, out io.Writer) *App {
	opts := []similarity.Option{similarity.WithWorkers(cfg.SimilarityWorkers)}
	if cfg.SimilarityCacheTTL > 0 {
		opts = append(opts, similarity.WithCache(cache.New(cfg.SimilarityCacheTTL, 2*cfg.SimilarityCacheTTL)))
	}

	users := services.NewUserService(repos, cfg, log)
	return &App{
		repos:   repos,
		users:   users,
		auth:    services.NewAuthService(repos, users, cfg, log),
		docs:    services.NewDocumentService(repos, similarity.NewEngine(opts...), log),
		fetcher: netx.NewFetcher(cfg.FetchTimeout),
		log:     log,
		reader:  reader,
		out:     out,
	}
}

// Run blocks in the REPL until the user quits, stdin ends or ctx is done.
func (a *App) Run(ctx context.Context) {
	printlnFn("Welcome to docsim (type 'help' for commands)")
	runREPL(ctx, a, a.status, a.reader)
}

func (a *App) Close() error {
	return a.repos.Close()
}

func (a *App) isLoggedIn() bool {
	return a.sessionID != ""
}

func (a *App) status() string {
	if a.email == "" {
		return ""
	}
	return "(" + a.email + ")"
}

// principal re-validates the current session. An expired session logs the
// user out locally.
func (a *App) principal(ctx context.Context) (*services.Principal, error) {
	p, err := a.auth.Authenticate(ctx, a.sessionID)
	if err != nil {
		if errors.Is(err, common.ErrorNotAuthenticated) && a.isLoggedIn() {
			a.sessionID, a.email = "", ""
			printlnFn("Your session has expired, please log in again.")
		}
		return nil, err
	}
	return p, nil
}

// report prints a user-facing message for err and logs unexpected ones.
func (a *App) report(ctx context.Context, op string, err error) error {
	var dup *services.DuplicateDocumentError

	switch {
	case errors.Is(err, common.ErrorInvalidCredentials):
		printlnFn(errorColor.Sprint("Invalid email or password."))
	case errors.Is(err, common.ErrorNotAuthenticated):
		printlnFn(errorColor.Sprint("Please log in first."))
	case errors.As(err, &dup):
		printlnFn(errorColor.Sprint(dup.Error()))
	case errors.Is(err, common.ErrorDuplicateKey):
		printlnFn(errorColor.Sprint("That email is already registered."))
	case errors.Is(err, common.ErrorValidation):
		printlnFn(errorColor.Sprint(err.Error()))
	case errors.Is(err, common.ErrorNotFound):
		printlnFn(errorColor.Sprint("Not found."))
	default:
		a.log.Error(ctx, op+" failed", "error", err)
		printlnFn(errorColor.Sprint("Error: " + err.Error()))
	}
	return err
}
