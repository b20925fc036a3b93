// Package kvx provides the helpers shared by the badger-backed repositories:
// opening the database, msgpack value codecs and conflict-retrying updates.
//
// Badger transactions are optimistic. A transaction that read a key another
// transaction committed in the meantime fails with badger.ErrConflict; Update
// reruns it so the loser observes the winner's write.
package kvx

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/dgraph-io/badger/v4"
	"github.com/dmitrijs2005/docsim/internal/common"
	"github.com/vmihailenco/msgpack/v5"
)

// MaxRetries bounds how often Update reruns a conflicting transaction.
const MaxRetries = 16

// Config holds configuration for a badger instance.
type Config struct {
	// Dir is the database directory. Ignored when InMemory is true.
	Dir string
	// InMemory keeps everything in RAM; used by tests and the memory-only mode.
	InMemory bool
	// SyncWrites fsyncs every commit.
	SyncWrites bool
	// Logger receives badger's internal messages; nil silences them.
	Logger *slog.Logger
}

// Open opens a badger database described by cfg.
func Open(cfg Config) (*badger.DB, error) {
	var opts badger.Options
	if cfg.InMemory {
		opts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		if cfg.Dir == "" {
			return nil, errors.New("badger directory is required")
		}
		if err := os.MkdirAll(cfg.Dir, 0o750); err != nil {
			return nil, fmt.Errorf("create badger directory %s: %w", cfg.Dir, err)
		}
		opts = badger.DefaultOptions(cfg.Dir)
	}

	opts = opts.WithSyncWrites(cfg.SyncWrites).WithNumVersionsToKeep(1)
	if cfg.Logger != nil {
		opts = opts.WithLogger(&badgerLogger{l: cfg.Logger})
	} else {
		opts = opts.WithLogger(nil)
	}

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger: %w", err)
	}
	return db, nil
}

// Update runs fn in a read-write transaction, retrying on conflicts.
func Update(db *badger.DB, fn func(txn *badger.Txn) error) error {
	var err error
	for range MaxRetries {
		err = db.Update(fn)
		if !errors.Is(err, badger.ErrConflict) {
			return err
		}
	}
	return fmt.Errorf("badger update: %w", err)
}

// Put encodes v with msgpack and stores it under key.
func Put(txn *badger.Txn, key []byte, v any) error {
	b, err := msgpack.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	return txn.Set(key, b)
}

// Get decodes the value at key into v. A missing key yields common.ErrorNotFound.
func Get(txn *badger.Txn, key []byte, v any) error {
	item, err := txn.Get(key)
	if err != nil {
		if errors.Is(err, badger.ErrKeyNotFound) {
			return common.ErrorNotFound
		}
		return err
	}
	return item.Value(func(val []byte) error {
		return Decode(val, v)
	})
}

// Decode unmarshals a msgpack value, as read from an iterator item.
func Decode(val []byte, v any) error {
	if err := msgpack.Unmarshal(val, v); err != nil {
		return fmt.Errorf("decode: %w", err)
	}
	return nil
}

// Exists reports whether key is present. The read is recorded by the
// transaction, so a concurrent writer of the same key causes a conflict.
func Exists(txn *badger.Txn, key []byte) (bool, error) {
	_, err := txn.Get(key)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, badger.ErrKeyNotFound) {
		return false, nil
	}
	return false, err
}

type badgerLogger struct {
	l *slog.Logger
}

func (b *badgerLogger) Errorf(format string, args ...any) {
	b.l.Error(fmt.Sprintf(format, args...))
}

func (b *badgerLogger) Warningf(format string, args ...any) {
	b.l.Warn(fmt.Sprintf(format, args...))
}

func (b *badgerLogger) Infof(format string, args ...any) {
	b.l.Info(fmt.Sprintf(format, args...))
}

func (b *badgerLogger) Debugf(format string, args ...any) {
	b.l.Debug(fmt.Sprintf(format, args...))
}
