package users

import (
	"context"
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v4"
	"github.com/dmitrijs2005/docsim/internal/common"
	"github.com/dmitrijs2005/docsim/internal/kvx"
	"github.com/dmitrijs2005/docsim/internal/models"
)

// Key layout:
//
//	users/id/<id>       -> msgpack(User)
//	users/email/<email> -> <id>
const (
	idPrefix    = "users/id/"
	emailPrefix = "users/email/"
)

func idKey(id string) []byte       { return []byte(idPrefix + id) }
func emailKey(email string) []byte { return []byte(emailPrefix + email) }

// BadgerRepository keeps users in a badger database.
type BadgerRepository struct {
	db *badger.DB
}

func NewBadgerRepository(db *badger.DB) *BadgerRepository {
	return &BadgerRepository{db: db}
}

func (r *BadgerRepository) Create(_ context.Context, u *models.User) error {
	return kvx.Update(r.db, func(txn *badger.Txn) error {
		taken, err := kvx.Exists(txn, emailKey(u.Email))
		if err != nil {
			return err
		}
		if taken {
			return fmt.Errorf("email %q: %w", u.Email, common.ErrorDuplicateKey)
		}

		taken, err = kvx.Exists(txn, idKey(u.ID))
		if err != nil {
			return err
		}
		if taken {
			return fmt.Errorf("user %q: %w", u.ID, common.ErrorDuplicateKey)
		}

		if err := kvx.Put(txn, idKey(u.ID), u); err != nil {
			return err
		}
		return txn.Set(emailKey(u.Email), []byte(u.ID))
	})
}

func (r *BadgerRepository) GetByID(_ context.Context, id string) (*models.User, error) {
	var u models.User
	err := r.db.View(func(txn *badger.Txn) error {
		return kvx.Get(txn, idKey(id), &u)
	})
	if err != nil {
		return nil, err
	}
	u.CreatedAt = u.CreatedAt.UTC()
	return &u, nil
}

func (r *BadgerRepository) GetByEmail(_ context.Context, email string) (*models.User, error) {
	var u models.User
	err := r.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(emailKey(email))
		if err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return common.ErrorNotFound
			}
			return err
		}
		id, err := item.ValueCopy(nil)
		if err != nil {
			return err
		}
		return kvx.Get(txn, idKey(string(id)), &u)
	})
	if err != nil {
		return nil, err
	}
	u.CreatedAt = u.CreatedAt.UTC()
	return &u, nil
}

func (r *BadgerRepository) Update(_ context.Context, id string, patch models.UserPatch) (*models.User, error) {
	var u models.User
	err := kvx.Update(r.db, func(txn *badger.Txn) error {
		if err := kvx.Get(txn, idKey(id), &u); err != nil {
			return err
		}
		patch.Apply(&u)
		return kvx.Put(txn, idKey(id), &u)
	})
	if err != nil {
		return nil, err
	}
	u.CreatedAt = u.CreatedAt.UTC()
	return &u, nil
}

func (r *BadgerRepository) UpdatePasswordHash(_ context.Context, id string, hash string) error {
	return kvx.Update(r.db, func(txn *badger.Txn) error {
		var u models.User
		if err := kvx.Get(txn, idKey(id), &u); err != nil {
			return err
		}
		u.PasswordHash = hash
		return kvx.Put(txn, idKey(id), &u)
	})
}
