package pagestore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/dgraph-io/badger/v4"

	"github.com/softpython2884/StudyVerse-sub000/pkg/diagerr"
)

const prefixPage = "page:"

// Badger is an embedded Store backed by BadgerDB.
type Badger struct {
	mu     sync.RWMutex
	db     *badger.DB
	logger *slog.Logger
}

// BadgerOptions configures OpenBadger. An empty Dir opens an in-memory
// database.
type BadgerOptions struct {
	Dir      string
	ReadOnly bool
	Logger   *slog.Logger
}

// OpenBadger opens or creates the database.
func OpenBadger(opts BadgerOptions) (*Badger, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	bo := badger.DefaultOptions(opts.Dir).
		WithNumCompactors(2).
		WithLoggingLevel(badger.ERROR)
	if opts.Dir == "" {
		bo = bo.WithInMemory(true)
	}
	if opts.ReadOnly {
		bo = bo.WithReadOnly(true)
	}
	db, err := badger.Open(bo)
	if err != nil {
		return nil, diagerr.Persistence("pagestore.OpenBadger", fmt.Errorf("opening badger DB: %w", err))
	}
	logger.Debug("page store opened", "backend", "badger", "dir", opts.Dir)
	return &Badger{db: db, logger: logger}, nil
}

// badgerRecord is the stored value.
type badgerRecord struct {
	Content   json.RawMessage `json:"content"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

func pageKey(id string) []byte { return []byte(prefixPage + id) }

// Save implements Store.
func (b *Badger) Save(ctx context.Context, pageID string, content []byte) error {
	const op = "pagestore.Badger.Save"
	if err := checkPageID(op, pageID); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	val, err := json.Marshal(badgerRecord{Content: content, UpdatedAt: time.Now().UTC()})
	if err != nil {
		return diagerr.Persistence(op, fmt.Errorf("marshaling page: %w", err))
	}

	b.mu.RLock()
	defer b.mu.RUnlock()
	if b.db == nil {
		return diagerr.Persistence(op, diagerr.ErrUnavailable)
	}
	if err := b.db.Update(func(txn *badger.Txn) error {
		return txn.Set(pageKey(pageID), val)
	}); err != nil {
		return diagerr.Persistence(op, fmt.Errorf("writing page %q: %w", pageID, err))
	}
	return nil
}

// Load implements Store.
func (b *Badger) Load(ctx context.Context, pageID string) (*Page, error) {
	const op = "pagestore.Badger.Load"
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	b.mu.RLock()
	defer b.mu.RUnlock()
	if b.db == nil {
		return nil, diagerr.Persistence(op, diagerr.ErrUnavailable)
	}
	var rec badgerRecord
	err := b.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(pageKey(pageID))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &rec)
		})
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, diagerr.Persistence(op, fmt.Errorf("reading page %q: %w", pageID, err))
	}
	return &Page{ID: pageID, Content: rec.Content, UpdatedAt: rec.UpdatedAt}, nil
}

// List returns the ids of all stored pages in key order.
func (b *Badger) List(ctx context.Context) ([]string, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if b.db == nil {
		return nil, diagerr.Persistence("pagestore.Badger.List", diagerr.ErrUnavailable)
	}
	var ids []string
	err := b.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(prefixPage)
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()
		for it.Rewind(); it.Valid(); it.Next() {
			if err := ctx.Err(); err != nil {
				return err
			}
			ids = append(ids, string(it.Item().Key()[len(prefixPage):]))
		}
		return nil
	})
	if err != nil {
		return nil, diagerr.Persistence("pagestore.Badger.List", err)
	}
	return ids, nil
}

// Close releases the database.
func (b *Badger) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.db == nil {
		return nil
	}
	err := b.db.Close()
	b.db = nil
	return err
}
