package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/dmitrijs2005/docsim/internal/config"
	"github.com/dmitrijs2005/docsim/internal/logging"
	"github.com/dmitrijs2005/docsim/internal/repositories/repomanager"
	"github.com/dmitrijs2005/docsim/internal/similarity"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(d)
}

type testEnv struct {
	repos repomanager.RepositoryManager
	users *UserService
	auth  *AuthService
	docs  *DocumentService
	clock *fakeClock
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	cfg := &config.Config{}
	cfg.LoadDefaults()
	cfg.BcryptCost = 4
	cfg.SessionTTL = time.Hour

	clock := &fakeClock{t: time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)}
	m := repomanager.NewInMemoryRepositoryManager()
	log := logging.Nop()

	users := NewUserService(m, cfg, log)
	users.now = clock.Now
	auth := NewAuthService(m, users, cfg, log)
	auth.now = clock.Now
	docs := NewDocumentService(m, similarity.NewEngine(similarity.WithWorkers(2)), log)
	docs.now = clock.Now

	return &testEnv{repos: m, users: users, auth: auth, docs: docs, clock: clock}
}

// login registers email and returns an authenticated principal.
func (e *testEnv) login(t *testing.T, email string) *Principal {
	t.Helper()
	ctx := context.Background()

	_, session, err := e.auth.Register(ctx, email, []byte("secret-pw"), "User "+email)
	require.NoError(t, err)

	p, err := e.auth.Authenticate(ctx, session.ID)
	require.NoError(t, err)
	return p
}
