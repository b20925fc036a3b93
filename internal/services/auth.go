package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/docsim/internal/common"
	"github.com/dmitrijs2005/docsim/internal/config"
	"github.com/dmitrijs2005/docsim/internal/cryptox"
	"github.com/dmitrijs2005/docsim/internal/logging"
	"github.com/dmitrijs2005/docsim/internal/models"
	"github.com/dmitrijs2005/docsim/internal/repositories/repomanager"
	"github.com/google/uuid"
)

// AuthService issues and checks sessions.
type AuthService struct {
	repomanager repomanager.RepositoryManager
	users       *UserService
	sessionTTL  time.Duration
	bcryptCost  int
	log         logging.Logger

	dummyOnce sync.Once
	dummyHash string

	now   func() time.Time
	newID func() string
}

func NewAuthService(m repomanager.RepositoryManager, users *UserService, cfg *config.Config, log logging.Logger) *AuthService {
	ttl := cfg.SessionTTL
	if ttl <= 0 {
		ttl = common.DefaultSessionLifetime
	}
	return &AuthService{
		repomanager: m,
		users:       users,
		sessionTTL:  ttl,
		bcryptCost:  cfg.BcryptCost,
		log:         log.With("service", "auth"),
		now:         time.Now,
		newID:       uuid.NewString,
	}
}

func (s *AuthService) dummy() string {
	s.dummyOnce.Do(func() {
		h, err := cryptox.DummyHash(s.bcryptCost)
		if err != nil {
			s.log.Warn(context.Background(), "dummy hash unavailable", "error", err)
			return
		}
		s.dummyHash = h
	})
	return s.dummyHash
}

// Login checks the credentials and opens a session. An unknown email and a
// wrong password both yield common.ErrorInvalidCredentials after a bcrypt
// comparison of similar cost.
func (s *AuthService) Login(ctx context.Context, email string, password []byte) (*models.Session, error) {
	user, err := s.repomanager.Users().GetByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			if h := s.dummy(); h != "" {
				cryptox.VerifyPassword(password, h)
			}
			s.log.Debug(ctx, "login failed", "reason", "unknown email")
			return nil, common.ErrorInvalidCredentials
		}
		return nil, fmt.Errorf("error searching user: %w", err)
	}

	if !cryptox.VerifyPassword(password, user.PasswordHash) {
		s.log.Debug(ctx, "login failed", "reason", "wrong password", "user_id", user.ID)
		return nil, common.ErrorInvalidCredentials
	}

	return s.createSession(ctx, user.ID)
}

func (s *AuthService) createSession(ctx context.Context, userID string) (*models.Session, error) {
	session := &models.Session{
		ID:        s.newID(),
		UserID:    userID,
		ExpiresAt: s.now().UTC().Add(s.sessionTTL),
	}

	if err := s.repomanager.Sessions().Create(ctx, session); err != nil {
		return nil, fmt.Errorf("error creating session: %w", err)
	}

	s.log.Info(ctx, "session opened", "user_id", userID)
	return session, nil
}

// Register creates the account and logs it in. The two steps are separate
// writes: if login fails the account still exists.
func (s *AuthService) Register(ctx context.Context, email string, password []byte, name string) (*models.Profile, *models.Session, error) {
	profile, err := s.users.CreateUser(ctx, email, password, name)
	if err != nil {
		return nil, nil, err
	}

	session, err := s.createSession(ctx, profile.ID)
	if err != nil {
		return profile, nil, err
	}

	return profile, session, nil
}

// Authenticate resolves a session ID into a Principal. Unknown and expired
// sessions yield common.ErrorNotAuthenticated; expired ones are removed.
func (s *AuthService) Authenticate(ctx context.Context, sessionID string) (*Principal, error) {
	if sessionID == "" {
		return nil, common.ErrorNotAuthenticated
	}

	session, err := s.repomanager.Sessions().Get(ctx, sessionID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorNotAuthenticated
		}
		return nil, fmt.Errorf("error loading session: %w", err)
	}

	if !session.IsValid(s.now()) {
		if err := s.repomanager.Sessions().Delete(ctx, sessionID); err != nil {
			s.log.Warn(ctx, "failed to drop expired session", "error", err)
		}
		return nil, common.ErrorNotAuthenticated
	}

	return &Principal{UserID: session.UserID, SessionID: session.ID, ExpiresAt: session.ExpiresAt}, nil
}

// Logout deletes the caller's session. Logging out twice is not an error.
func (s *AuthService) Logout(ctx context.Context, p *Principal) error {
	if p == nil {
		return common.ErrorNotAuthenticated
	}
	if err := s.repomanager.Sessions().Delete(ctx, p.SessionID); err != nil {
		return fmt.Errorf("error deleting session: %w", err)
	}
	s.log.Info(ctx, "session closed", "user_id", p.UserID)
	return nil
}
