// Package users stores User records. Email is unique across all users; the
// uniqueness check is part of the same atomic write as the insert on every
// engine.
package users

import (
	"context"

	"github.com/dmitrijs2005/docsim/internal/models"
)

// Repository describes the persistence operations on users.
type Repository interface {
	// Create inserts u. It fails with common.ErrorDuplicateKey when the email
	// is already taken.
	Create(ctx context.Context, u *models.User) error

	// GetByID and GetByEmail return common.ErrorNotFound when absent.
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)

	// Update merges patch into the stored user atomically and returns the result.
	Update(ctx context.Context, id string, patch models.UserPatch) (*models.User, error)

	// UpdatePasswordHash replaces the stored hash.
	UpdatePasswordHash(ctx context.Context, id string, hash string) error
}
