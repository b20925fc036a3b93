package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/docsim/internal/common"
	"github.com/dmitrijs2005/docsim/internal/config"
	"github.com/dmitrijs2005/docsim/internal/cryptox"
	"github.com/dmitrijs2005/docsim/internal/logging"
	"github.com/dmitrijs2005/docsim/internal/models"
	"github.com/dmitrijs2005/docsim/internal/repositories/repomanager"
	"github.com/google/uuid"
)

// UserService manages accounts. Every value it returns is a models.Profile;
// password hashes stay inside.
type UserService struct {
	repomanager repomanager.RepositoryManager
	bcryptCost  int
	log         logging.Logger

	now   func() time.Time
	newID func() string
}

func NewUserService(m repomanager.RepositoryManager, cfg *config.Config, log logging.Logger) *UserService {
	return &UserService{
		repomanager: m,
		bcryptCost:  cfg.BcryptCost,
		log:         log.With("service", "users"),
		now:         time.Now,
		newID:       uuid.NewString,
	}
}

// CreateUser registers a new account. The email is stored as given apart
// from surrounding whitespace; comparisons are case-sensitive.
func (s *UserService) CreateUser(ctx context.Context, email string, password []byte, name string) (*models.Profile, error) {
	email = strings.TrimSpace(email)
	name = strings.TrimSpace(name)

	if err := validateRegistration(email, name, password); err != nil {
		return nil, err
	}

	hash, err := cryptox.HashPassword(password, s.bcryptCost)
	if err != nil {
		if cryptox.IsTooLong(err) {
			return nil, validationError(err)
		}
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	user := &models.User{
		ID:           s.newID(),
		Email:        email,
		PasswordHash: hash,
		Name:         name,
		CreatedAt:    s.now().UTC(),
	}

	if err := s.repomanager.Users().Create(ctx, user); err != nil {
		if errors.Is(err, common.ErrorDuplicateKey) {
			return nil, err
		}
		return nil, fmt.Errorf("error creating user: %w", err)
	}

	s.log.Info(ctx, "user created", "user_id", user.ID)
	return user.Profile(), nil
}

func (s *UserService) GetUser(ctx context.Context, id string) (*models.Profile, error) {
	user, err := s.repomanager.Users().GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return user.Profile(), nil
}

func (s *UserService) FindUserByEmail(ctx context.Context, email string) (*models.Profile, error) {
	user, err := s.repomanager.Users().GetByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		return nil, err
	}
	return user.Profile(), nil
}

// UpdateProfile merges patch into the caller's profile. Fields left nil are
// untouched; an empty AvatarURL removes the avatar.
func (s *UserService) UpdateProfile(ctx context.Context, p *Principal, patch models.UserPatch) (*models.Profile, error) {
	if err := p.check(s.now()); err != nil {
		return nil, err
	}
	if err := normalizePatch(&patch); err != nil {
		return nil, err
	}

	if patch.Empty() {
		return s.GetUser(ctx, p.UserID)
	}

	user, err := s.repomanager.Users().Update(ctx, p.UserID, patch)
	if err != nil {
		return nil, err
	}

	s.log.Info(ctx, "profile updated", "user_id", p.UserID)
	return user.Profile(), nil
}

// ChangePassword re-hashes the caller's password after checking the current one.
func (s *UserService) ChangePassword(ctx context.Context, p *Principal, current, next []byte) error {
	if err := p.check(s.now()); err != nil {
		return err
	}

	user, err := s.repomanager.Users().GetByID(ctx, p.UserID)
	if err != nil {
		return err
	}

	if !cryptox.VerifyPassword(current, user.PasswordHash) {
		return common.ErrorInvalidCredentials
	}

	if err := validatePassword(next); err != nil {
		return err
	}

	hash, err := cryptox.HashPassword(next, s.bcryptCost)
	if err != nil {
		return fmt.Errorf("error hashing password: %w", err)
	}

	if err := s.repomanager.Users().UpdatePasswordHash(ctx, p.UserID, hash); err != nil {
		return err
	}

	s.log.Info(ctx, "password changed", "user_id", p.UserID)
	return nil
}
