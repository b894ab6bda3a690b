package cache

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/dgraph-io/badger/v4"
)

// BadgerCache stores entries in an embedded BadgerDB. Expiry is handled by
// badger's per-entry TTL.
//
// A badger directory can be opened by one process at a time; a second
// gedgraph run against the same directory fails to open it.
type BadgerCache struct {
	db  *badger.DB
	dir string
}

// NewBadgerCache opens (or creates) a badger database in dir. An empty dir
// opens an in-memory database, which is only useful in tests. A non-nil
// logger receives badger's warnings and errors.
func NewBadgerCache(dir string, logger *log.Logger) (*BadgerCache, error) {
	var opts badger.Options
	if dir == "" {
		opts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, err
		}
		opts = badger.DefaultOptions(dir)
	}
	opts = opts.WithNumVersionsToKeep(1)
	if logger != nil {
		opts = opts.WithLogger(badgerLogger{logger})
	} else {
		opts = opts.WithLogger(nil)
	}

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger cache %s: %w", dir, err)
	}
	return &BadgerCache{db: db, dir: dir}, nil
}

// Dir returns the database directory, empty for an in-memory cache.
func (c *BadgerCache) Dir() string { return c.dir }

// Get retrieves a value from the cache.
func (c *BadgerCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var data []byte
	err := c.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if err != nil {
			return err
		}
		data, err = item.ValueCopy(nil)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return data, true, nil
}

// Set stores a value in the cache.
func (c *BadgerCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	return c.db.Update(func(txn *badger.Txn) error {
		e := badger.NewEntry([]byte(key), data)
		if ttl > 0 {
			e = e.WithTTL(ttl)
		}
		return txn.SetEntry(e)
	})
}

// Delete removes a value from the cache.
func (c *BadgerCache) Delete(ctx context.Context, key string) error {
	return c.db.Update(func(txn *badger.Txn) error {
		return txn.Delete([]byte(key))
	})
}

// Clear drops every entry and returns how many live entries there were.
func (c *BadgerCache) Clear() (int, error) {
	count := 0
	err := c.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()
		for it.Rewind(); it.Valid(); it.Next() {
			count++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return count, c.db.DropAll()
}

// Close closes the database.
func (c *BadgerCache) Close() error {
	return c.db.Close()
}

// badgerLogger forwards badger's log output to a charm logger. Info and
// debug lines are demoted so they only show with -v.
type badgerLogger struct{ l *log.Logger }

func (b badgerLogger) Errorf(format string, args ...any)   { b.l.Errorf("badger: "+format, args...) }
func (b badgerLogger) Warningf(format string, args ...any) { b.l.Warnf("badger: "+format, args...) }
func (b badgerLogger) Infof(format string, args ...any)    { b.l.Debugf("badger: "+format, args...) }
func (b badgerLogger) Debugf(format string, args ...any)   { b.l.Debugf("badger: "+format, args...) }

var _ Cache = (*BadgerCache)(nil)
