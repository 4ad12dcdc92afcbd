package storage

import (
	"errors"
	"fmt"
	"os"

	"github.com/dgraph-io/badger/v4"

	"github.com/davidlugo/recetasworld/internal/domain"
	"github.com/davidlugo/recetasworld/internal/logger"
)

// Compile-time interface check.
var _ domain.KeyValue = (*BadgerStore)(nil)

// BadgerStore persists blobs in an embedded BadgerDB at a local path.
// This is the "survives reload" store the favorites and session slots
// live in.
type BadgerStore struct {
	db  *badger.DB
	log *logger.Logger
}

// OpenBadger opens (creating if needed) the database directory.
func OpenBadger(path string, log *logger.Logger) (*BadgerStore, error) {
	if err := os.MkdirAll(path, 0o755); err != nil {
		return nil, fmt.Errorf("creating state dir: %w", err)
	}

	opts := badger.DefaultOptions(path).
		WithLogger(badgerAdapter{log}).
		WithNumVersionsToKeep(1)

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("opening state db: %w", err)
	}
	return &BadgerStore{db: db, log: log}, nil
}

// Close releases the database. Call on shutdown.
func (s *BadgerStore) Close() error {
	return s.db.Close()
}

// Get returns the blob for key, or "" when absent.
func (s *BadgerStore) Get(key string) (string, error) {
	var out string
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			out = string(val)
			return nil
		})
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", key, err)
	}
	return out, nil
}

// Set stores a blob under key.
func (s *BadgerStore) Set(key, value string) error {
	err := s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), []byte(value))
	})
	if err != nil {
		return fmt.Errorf("writing %s: %w", key, err)
	}
	return nil
}

// Delete removes the blob for key. Absent keys are a no-op.
func (s *BadgerStore) Delete(key string) error {
	err := s.db.Update(func(txn *badger.Txn) error {
		return txn.Delete([]byte(key))
	})
	if err != nil && !errors.Is(err, badger.ErrKeyNotFound) {
		return fmt.Errorf("deleting %s: %w", key, err)
	}
	return nil
}

// badgerAdapter routes BadgerDB's internal logging through ours, at
// debug level so it stays out of normal runs.
type badgerAdapter struct {
	log *logger.Logger
}

func (a badgerAdapter) Errorf(format string, args ...any)   { a.log.Error(format, args...) }
func (a badgerAdapter) Warningf(format string, args ...any) { a.log.Warn(format, args...) }
func (a badgerAdapter) Infof(format string, args ...any)    { a.log.Debug(format, args...) }
func (a badgerAdapter) Debugf(format string, args ...any)   { a.log.Debug(format, args...) }
