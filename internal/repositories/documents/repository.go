// Package documents stores uploaded Document records. The pair (name, owner)
// is unique and document IDs increase monotonically without reuse.
package documents

import (
	"context"

	"github.com/dmitrijs2005/docsim/internal/models"
)

// Repository describes the persistence operations on documents.
type Repository interface {
	// Create inserts d and returns the assigned ID, which is also written back
	// to d.ID. A document with the same name and owner yields
	// common.ErrorDuplicateKey and leaves the stored one untouched.
	Create(ctx context.Context, d *models.Document) (int64, error)

	// List returns the documents of owner in ID order. An empty owner lists
	// every document.
	List(ctx context.Context, owner string) ([]*models.Document, error)

	// Delete removes the document with id. Deleting a missing id is not an error.
	Delete(ctx context.Context, id int64) error

	Exists(ctx context.Context, name, owner string) (bool, error)

	// GetByName returns common.ErrorNotFound when absent.
	GetByName(ctx context.Context, name, owner string) (*models.Document, error)
}
