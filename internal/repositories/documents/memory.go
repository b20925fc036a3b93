package documents

import (
	"context"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/docsim/internal/common"
	"github.com/dmitrijs2005/docsim/internal/models"
)

type nameKey struct {
	owner string
	name  string
}

// MemoryRepository keeps documents in insertion order. Insertion order and
// ID order coincide because IDs come from a counter under the same lock.
type MemoryRepository struct {
	mu     sync.RWMutex
	lastID int64
	docs   []models.Document
	byName map[nameKey]int64
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{byName: make(map[nameKey]int64)}
}

func (r *MemoryRepository) Create(_ context.Context, d *models.Document) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	k := nameKey{owner: d.OwnerUserID, name: d.Name}
	if _, ok := r.byName[k]; ok {
		return 0, fmt.Errorf("document %q: %w", d.Name, common.ErrorDuplicateKey)
	}

	r.lastID++
	d.ID = r.lastID
	r.docs = append(r.docs, *d)
	r.byName[k] = d.ID

	return d.ID, nil
}

func (r *MemoryRepository) List(_ context.Context, owner string) ([]*models.Document, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []*models.Document
	for i := range r.docs {
		if owner != "" && r.docs[i].OwnerUserID != owner {
			continue
		}
		d := r.docs[i]
		out = append(out, &d)
	}
	return out, nil
}

func (r *MemoryRepository) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.docs {
		if r.docs[i].ID == id {
			delete(r.byName, nameKey{owner: r.docs[i].OwnerUserID, name: r.docs[i].Name})
			r.docs = append(r.docs[:i], r.docs[i+1:]...)
			return nil
		}
	}
	return nil
}

func (r *MemoryRepository) Exists(_ context.Context, name, owner string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.byName[nameKey{owner: owner, name: name}]
	return ok, nil
}

func (r *MemoryRepository) GetByName(_ context.Context, name, owner string) (*models.Document, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byName[nameKey{owner: owner, name: name}]
	if !ok {
		return nil, common.ErrorNotFound
	}
	for i := range r.docs {
		if r.docs[i].ID == id {
			d := r.docs[i]
			return &d, nil
		}
	}
	return nil, common.ErrorNotFound
}
