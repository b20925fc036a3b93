// Package sessions stores login sessions. Expiry is not enforced here; the
// auth service checks Session.IsValid.
package sessions

import (
	"context"

	"github.com/dmitrijs2005/docsim/internal/models"
)

type Repository interface {
	Create(ctx context.Context, s *models.Session) error
	// Get returns common.ErrorNotFound for an unknown id.
	Get(ctx context.Context, id string) (*models.Session, error)
	// Delete is idempotent.
	Delete(ctx context.Context, id string) error
}
