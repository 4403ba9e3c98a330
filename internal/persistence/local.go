package persistence

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CacheEntry is one local cache row: the full JSON-serialized collection
// stored under its collection name.
type CacheEntry struct {
	Key   string `gorm:"column:key;primaryKey"`
	Value string `gorm:"column:value;not null"`
}

// TableName implements gorm's table naming override.
func (CacheEntry) TableName() string {
	return "cache_entries"
}

// Local persists a collection as a single JSON value in the SQLite cache.
// Every mutation rewrites the whole collection (replace-whole-value,
// last-write-wins). It is the store of record while offline: a single-writer
// convenience cache, not a replica.
type Local[T Record] struct {
	db         *gorm.DB
	collection string
	mu         sync.Mutex
}

// NewLocal builds the local adapter for T, creating the cache table if needed.
func NewLocal[T Record](db *gorm.DB) (*Local[T], error) {
	if db == nil {
		return nil, fmt.Errorf("db is required")
	}
	if err := db.AutoMigrate(&CacheEntry{}); err != nil {
		return nil, fmt.Errorf("migrating cache table: %w", err)
	}
	var zero T
	return &Local[T]{db: db, collection: zero.Collection()}, nil
}

func (l *Local[T]) load(ctx context.Context) ([]T, error) {
	var entry CacheEntry
	err := l.db.WithContext(ctx).Where("key = ?", l.collection).First(&entry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("loading cache %s: %w", l.collection, err)
	}
	var recs []T
	if err := json.Unmarshal([]byte(entry.Value), &recs); err != nil {
		return nil, fmt.Errorf("decoding cache %s: %w", l.collection, err)
	}
	return recs, nil
}

func (l *Local[T]) save(ctx context.Context, recs []T) error {
	if recs == nil {
		recs = []T{}
	}
	raw, err := json.Marshal(recs)
	if err != nil {
		return fmt.Errorf("encoding cache %s: %w", l.collection, err)
	}
	entry := CacheEntry{Key: l.collection, Value: string(raw)}
	err = l.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value"}),
		}).
		Create(&entry).Error
	if err != nil {
		return fmt.Errorf("saving cache %s: %w", l.collection, err)
	}
	return nil
}

func (l *Local[T]) Create(ctx context.Context, rec T) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	recs, err := l.load(ctx)
	if err != nil {
		return err
	}
	return l.save(ctx, append(recs, rec))
}

func (l *Local[T]) Update(ctx context.Context, rec T) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	recs, err := l.load(ctx)
	if err != nil {
		return err
	}
	for i := range recs {
		if recs[i].RecordID() == rec.RecordID() {
			recs[i] = rec
			return l.save(ctx, recs)
		}
	}
	return fmt.Errorf("update %s %s: %w", l.collection, rec.RecordID(), gorm.ErrRecordNotFound)
}

func (l *Local[T]) Delete(ctx context.Context, id string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	recs, err := l.load(ctx)
	if err != nil {
		return err
	}
	kept := recs[:0]
	for _, rec := range recs {
		if rec.RecordID() != id {
			kept = append(kept, rec)
		}
	}
	return l.save(ctx, kept)
}

func (l *Local[T]) BatchCreate(ctx context.Context, recs []T) error {
	if len(recs) == 0 {
		return nil
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	existing, err := l.load(ctx)
	if err != nil {
		return err
	}
	return l.save(ctx, append(existing, recs...))
}

func (l *Local[T]) BatchDelete(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	drop := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		drop[id] = struct{}{}
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	recs, err := l.load(ctx)
	if err != nil {
		return err
	}
	kept := recs[:0]
	for _, rec := range recs {
		if _, gone := drop[rec.RecordID()]; !gone {
			kept = append(kept, rec)
		}
	}
	return l.save(ctx, kept)
}

func (l *Local[T]) ListAll(ctx context.Context) ([]T, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.load(ctx)
}

func (l *Local[T]) ListByShop(ctx context.Context, shopID string) ([]T, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	recs, err := l.load(ctx)
	if err != nil {
		return nil, err
	}
	var matched []T
	for _, rec := range recs {
		if rec.ShopRef() == shopID {
			matched = append(matched, rec)
		}
	}
	return matched, nil
}

func (l *Local[T]) Exists(ctx context.Context, id string) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	recs, err := l.load(ctx)
	if err != nil {
		return false, err
	}
	for _, rec := range recs {
		if rec.RecordID() == id {
			return true, nil
		}
	}
	return false, nil
}

// MaxBatch is unbounded: the cache rewrites the whole collection regardless.
func (l *Local[T]) MaxBatch() int {
	return 0
}

// Subscribe delivers the cached snapshot once. Offline mode has no remote
// writers, so there is nothing further to observe.
func (l *Local[T]) Subscribe(ctx context.Context, onSnapshot func([]T), _ func(error)) (func(), error) {
	recs, err := l.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	onSnapshot(recs)
	return func() {}, nil
}
