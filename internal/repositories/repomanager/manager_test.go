package repomanager

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/dmitrijs2005/docsim/internal/common"
	"github.com/dmitrijs2005/docsim/internal/config"
	"github.com/dmitrijs2005/docsim/internal/kvx"
	"github.com/dmitrijs2005/docsim/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func managers(t *testing.T) map[string]RepositoryManager {
	t.Helper()
	ctx := context.Background()

	sqliteMgr, err := NewSQLiteRepositoryManager(ctx, filepath.Join(t.TempDir(), "docsim.db"))
	require.NoError(t, err)

	badgerMgr, err := NewBadgerRepositoryManager(kvx.Config{InMemory: true})
	require.NoError(t, err)

	out := map[string]RepositoryManager{
		"sqlite": sqliteMgr,
		"badger": badgerMgr,
		"memory": NewInMemoryRepositoryManager(),
	}
	t.Cleanup(func() {
		for _, m := range out {
			_ = m.Close()
		}
	})
	return out
}

func doc(owner, name, content string) *models.Document {
	return &models.Document{
		Name:        name,
		Content:     content,
		UploadDate:  time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		OwnerUserID: owner,
		Path:        models.DocumentPath(owner, name),
	}
}

func TestManagers_DuplicateEmail(t *testing.T) {
	for name, m := range managers(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			u := &models.User{ID: "u-1", Email: "a@example.com", PasswordHash: "h", Name: "A", CreatedAt: time.Now().UTC()}
			require.NoError(t, m.Users().Create(ctx, u))

			dup := *u
			dup.ID = "u-2"
			assert.ErrorIs(t, m.Users().Create(ctx, &dup), common.ErrorDuplicateKey)

			got, err := m.Users().GetByEmail(ctx, "a@example.com")
			require.NoError(t, err)
			assert.Equal(t, "u-1", got.ID)
		})
	}
}

func TestManagers_ConcurrentDuplicateUpload(t *testing.T) {
	const racers = 8

	for name, m := range managers(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			var wg sync.WaitGroup
			errs := make([]error, racers)
			for i := range racers {
				wg.Add(1)
				go func() {
					defer wg.Done()
					_, errs[i] = m.Documents().Create(ctx, doc("u-1", "same.txt", fmt.Sprintf("content %d", i)))
				}()
			}
			wg.Wait()

			var ok, dup int
			for _, err := range errs {
				switch {
				case err == nil:
					ok++
				case errors.Is(err, common.ErrorDuplicateKey):
					dup++
				default:
					t.Fatalf("unexpected error: %v", err)
				}
			}
			assert.Equal(t, 1, ok)
			assert.Equal(t, racers-1, dup)

			docs, err := m.Documents().List(ctx, "u-1")
			require.NoError(t, err)
			assert.Len(t, docs, 1)
		})
	}
}

func TestManagers_DocumentListing(t *testing.T) {
	for name, m := range managers(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			repo := m.Documents()

			var ids []int64
			for _, d := range []*models.Document{
				doc("u-1", "a.txt", "alpha"),
				doc("u-2", "b.txt", "beta"),
				doc("u-1", "c.txt", "gamma"),
			} {
				id, err := repo.Create(ctx, d)
				require.NoError(t, err)
				ids = append(ids, id)
			}
			assert.IsIncreasing(t, ids)

			all, err := repo.List(ctx, "")
			require.NoError(t, err)
			require.Len(t, all, 3)

			mine, err := repo.List(ctx, "u-1")
			require.NoError(t, err)
			require.Len(t, mine, 2)
			assert.Equal(t, "a.txt", mine[0].Name)
			assert.Equal(t, "c.txt", mine[1].Name)
			assert.Equal(t, "/documents/u-1/c.txt", mine[1].Path)

			none, err := repo.List(ctx, "nobody")
			require.NoError(t, err)
			assert.Empty(t, none)

			require.NoError(t, repo.Delete(ctx, ids[0]))
			require.NoError(t, repo.Delete(ctx, ids[0]))
			require.NoError(t, repo.Delete(ctx, 9999))

			mine, err = repo.List(ctx, "u-1")
			require.NoError(t, err)
			require.Len(t, mine, 1)
			assert.Equal(t, ids[2], mine[0].ID)
		})
	}
}

func TestManagers_Sessions(t *testing.T) {
	for name, m := range managers(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			s := &models.Session{ID: "s-1", UserID: "u-1", ExpiresAt: time.Now().Add(time.Hour).UTC()}
			require.NoError(t, m.Sessions().Create(ctx, s))

			got, err := m.Sessions().Get(ctx, "s-1")
			require.NoError(t, err)
			assert.Equal(t, "u-1", got.UserID)

			require.NoError(t, m.Sessions().Delete(ctx, "s-1"))
			_, err = m.Sessions().Get(ctx, "s-1")
			assert.ErrorIs(t, err, common.ErrorNotFound)
		})
	}
}

func TestNew_SelectsEngine(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	tests := []struct {
		engine string
		want   any
	}{
		{config.EngineSQLite, &SQLiteRepositoryManager{}},
		{config.EngineBadger, &BadgerRepositoryManager{}},
		{config.EngineMemory, &InMemoryRepositoryManager{}},
	}

	for _, tt := range tests {
		t.Run(tt.engine, func(t *testing.T) {
			cfg := &config.Config{
				StorageEngine: tt.engine,
				DatabaseDSN:   filepath.Join(dir, "new.db"),
				BadgerDir:     filepath.Join(dir, "badger"),
			}
			m, err := New(ctx, cfg)
			require.NoError(t, err)
			defer m.Close()
			assert.IsType(t, tt.want, m)
		})
	}
}

func TestNew_UnknownEngine(t *testing.T) {
	_, err := New(context.Background(), &config.Config{StorageEngine: "floppy"})
	assert.EqualError(t, err, `unknown storage engine "floppy"`)
}

func TestNewSQLiteRepositoryManager_MigrationError(t *testing.T) {
	orig := runMigrations
	defer func() { runMigrations = orig }()

	runMigrations = func(context.Context, *sql.DB) error { return errors.New("bad schema") }

	_, err := NewSQLiteRepositoryManager(context.Background(), filepath.Join(t.TempDir(), "x.db"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "migrate: bad schema")
}

func TestNewBadgerRepositoryManager_RequiresDir(t *testing.T) {
	_, err := NewBadgerRepositoryManager(kvx.Config{})
	assert.Error(t, err)
}
