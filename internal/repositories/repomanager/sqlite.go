package repomanager

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/docsim/internal/migrations"
	"github.com/dmitrijs2005/docsim/internal/repositories/documents"
	"github.com/dmitrijs2005/docsim/internal/repositories/sessions"
	"github.com/dmitrijs2005/docsim/internal/repositories/users"
	_ "modernc.org/sqlite"
)

// busyTimeoutPragma makes a locked database wait instead of failing at once.
const busyTimeoutPragma = "_pragma=busy_timeout(5000)"

// SQLiteRepositoryManager vends SQLite-backed repositories sharing one pool.
type SQLiteRepositoryManager struct {
	db        *sql.DB
	users     *users.SQLiteRepository
	documents *documents.SQLiteRepository
	sessions  *sessions.SQLiteRepository
}

// runMigrations is a seam for testing migrations.Up.
var runMigrations = migrations.Up

// NewSQLiteRepositoryManager opens dsn and applies pending migrations.
// The pool is limited to a single connection: SQLite serialises writers
// anyway and this keeps :memory: databases on one connection.
func NewSQLiteRepositoryManager(ctx context.Context, dsn string) (*SQLiteRepositoryManager, error) {
	if !strings.Contains(dsn, "?") {
		dsn += "?" + busyTimeoutPragma
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}

	if err := runMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return &SQLiteRepositoryManager{
		db:        db,
		users:     users.NewSQLiteRepository(db),
		documents: documents.NewSQLiteRepository(db),
		sessions:  sessions.NewSQLiteRepository(db),
	}, nil
}

func (m *SQLiteRepositoryManager) Users() users.Repository         { return m.users }
func (m *SQLiteRepositoryManager) Documents() documents.Repository { return m.documents }
func (m *SQLiteRepositoryManager) Sessions() sessions.Repository   { return m.sessions }

func (m *SQLiteRepositoryManager) Close() error {
	return m.db.Close()
}
