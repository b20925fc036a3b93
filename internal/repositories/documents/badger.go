package documents

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v4"
	"github.com/dmitrijs2005/docsim/internal/common"
	"github.com/dmitrijs2005/docsim/internal/kvx"
	"github.com/dmitrijs2005/docsim/internal/models"
)

// Key layout:
//
//	documents/id/<8-byte big-endian id>     -> msgpack(Document)
//	documents/name/<owner>\x00<name>        -> <8-byte big-endian id>
//	documents/seq                           -> badger sequence
//
// Big-endian IDs make prefix iteration return documents in ID order.
const (
	idPrefix   = "documents/id/"
	namePrefix = "documents/name/"
	seqKey     = "documents/seq"

	seqBandwidth = 64
)

func encodeID(id int64) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, uint64(id))
	return b
}

func idKey(id int64) []byte {
	return append([]byte(idPrefix), encodeID(id)...)
}

func nameIndexKey(owner, name string) []byte {
	return []byte(namePrefix + owner + "\x00" + name)
}

// BadgerRepository keeps documents in a badger database. Close must be called
// before the database is closed to return unused sequence numbers.
type BadgerRepository struct {
	db  *badger.DB
	seq *badger.Sequence
}

func NewBadgerRepository(db *badger.DB) (*BadgerRepository, error) {
	seq, err := db.GetSequence([]byte(seqKey), seqBandwidth)
	if err != nil {
		return nil, fmt.Errorf("document sequence: %w", err)
	}
	return &BadgerRepository{db: db, seq: seq}, nil
}

func (r *BadgerRepository) Close() error {
	return r.seq.Release()
}

func (r *BadgerRepository) Create(_ context.Context, d *models.Document) (int64, error) {
	n, err := r.seq.Next()
	if err != nil {
		return 0, fmt.Errorf("next document id: %w", err)
	}
	// Sequences start at zero; IDs start at one.
	id := int64(n) + 1

	stored := *d
	stored.ID = id

	err = kvx.Update(r.db, func(txn *badger.Txn) error {
		taken, err := kvx.Exists(txn, nameIndexKey(d.OwnerUserID, d.Name))
		if err != nil {
			return err
		}
		if taken {
			return fmt.Errorf("document %q: %w", d.Name, common.ErrorDuplicateKey)
		}

		if err := kvx.Put(txn, idKey(id), &stored); err != nil {
			return err
		}
		return txn.Set(nameIndexKey(d.OwnerUserID, d.Name), encodeID(id))
	})
	if err != nil {
		return 0, err
	}

	d.ID = id
	return id, nil
}

func (r *BadgerRepository) List(_ context.Context, owner string) ([]*models.Document, error) {
	var docs []*models.Document

	err := r.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(idPrefix)
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			d := &models.Document{}
			if err := it.Item().Value(func(val []byte) error {
				return kvx.Decode(val, d)
			}); err != nil {
				return err
			}
			if owner != "" && d.OwnerUserID != owner {
				continue
			}
			d.UploadDate = d.UploadDate.UTC()
			docs = append(docs, d)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return docs, nil
}

func (r *BadgerRepository) Delete(_ context.Context, id int64) error {
	return kvx.Update(r.db, func(txn *badger.Txn) error {
		var d models.Document
		if err := kvx.Get(txn, idKey(id), &d); err != nil {
			if errors.Is(err, common.ErrorNotFound) {
				return nil
			}
			return err
		}
		if err := txn.Delete(idKey(id)); err != nil {
			return err
		}
		return txn.Delete(nameIndexKey(d.OwnerUserID, d.Name))
	})
}

func (r *BadgerRepository) Exists(_ context.Context, name, owner string) (bool, error) {
	var exists bool
	err := r.db.View(func(txn *badger.Txn) error {
		var err error
		exists, err = kvx.Exists(txn, nameIndexKey(owner, name))
		return err
	})
	return exists, err
}

func (r *BadgerRepository) GetByName(_ context.Context, name, owner string) (*models.Document, error) {
	d := &models.Document{}
	err := r.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(nameIndexKey(owner, name))
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
		return kvx.Get(txn, append([]byte(idPrefix), id...), d)
	})
	if err != nil {
		return nil, err
	}
	d.UploadDate = d.UploadDate.UTC()
	return d, nil
}
