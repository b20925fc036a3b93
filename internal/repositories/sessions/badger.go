package sessions

import (
	"context"
	"fmt"

	"github.com/dgraph-io/badger/v4"
	"github.com/dmitrijs2005/docsim/internal/common"
	"github.com/dmitrijs2005/docsim/internal/kvx"
	"github.com/dmitrijs2005/docsim/internal/models"
)

const prefix = "sessions/"

func key(id string) []byte { return []byte(prefix + id) }

type BadgerRepository struct {
	db *badger.DB
}

func NewBadgerRepository(db *badger.DB) *BadgerRepository {
	return &BadgerRepository{db: db}
}

func (r *BadgerRepository) Create(_ context.Context, s *models.Session) error {
	return kvx.Update(r.db, func(txn *badger.Txn) error {
		taken, err := kvx.Exists(txn, key(s.ID))
		if err != nil {
			return err
		}
		if taken {
			return fmt.Errorf("session %q: %w", s.ID, common.ErrorDuplicateKey)
		}
		return kvx.Put(txn, key(s.ID), s)
	})
}

func (r *BadgerRepository) Get(_ context.Context, id string) (*models.Session, error) {
	s := &models.Session{}
	err := r.db.View(func(txn *badger.Txn) error {
		return kvx.Get(txn, key(id), s)
	})
	if err != nil {
		return nil, err
	}
	s.ExpiresAt = s.ExpiresAt.UTC()
	return s, nil
}

func (r *BadgerRepository) Delete(_ context.Context, id string) error {
	return kvx.Update(r.db, func(txn *badger.Txn) error {
		return txn.Delete(key(id))
	})
}
