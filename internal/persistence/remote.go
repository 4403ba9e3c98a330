package persistence

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/luisherrera/shopdesk-backend/pkg/redis"
)

// Remote persists a collection in the authoritative Postgres store. Every
// committed mutation publishes a change signal so subscribers can re-list.
type Remote[T Record] struct {
	db         *gorm.DB
	notifier   *redis.Notifier
	collection string
	keyColumn  string
	maxBatch   int
}

// NewRemote builds the remote adapter for T. keyColumn is the primary key
// column of T's table; maxBatch caps operations per batch commit.
func NewRemote[T Record](db *gorm.DB, notifier *redis.Notifier, keyColumn string, maxBatch int) (*Remote[T], error) {
	if db == nil {
		return nil, fmt.Errorf("db is required")
	}
	if keyColumn == "" {
		return nil, fmt.Errorf("key column is required")
	}
	var zero T
	return &Remote[T]{
		db:         db,
		notifier:   notifier,
		collection: zero.Collection(),
		keyColumn:  keyColumn,
		maxBatch:   maxBatch,
	}, nil
}

func (r *Remote[T]) notify(ctx context.Context) {
	// Change signals are advisory; subscribers re-list on their own schedule
	// and callers already hold the committed result.
	_ = r.notifier.Publish(ctx, r.collection)
}

func (r *Remote[T]) Create(ctx context.Context, rec T) error {
	if err := r.db.WithContext(ctx).Create(&rec).Error; err != nil {
		return fmt.Errorf("create %s %s: %w", r.collection, rec.RecordID(), err)
	}
	r.notify(ctx)
	return nil
}

func (r *Remote[T]) Update(ctx context.Context, rec T) error {
	if err := r.db.WithContext(ctx).Save(&rec).Error; err != nil {
		return fmt.Errorf("update %s %s: %w", r.collection, rec.RecordID(), err)
	}
	r.notify(ctx)
	return nil
}

func (r *Remote[T]) Delete(ctx context.Context, id string) error {
	var zero T
	if err := r.db.WithContext(ctx).Where(r.keyColumn+" = ?", id).Delete(&zero).Error; err != nil {
		return fmt.Errorf("delete %s %s: %w", r.collection, id, err)
	}
	r.notify(ctx)
	return nil
}

func (r *Remote[T]) BatchCreate(ctx context.Context, recs []T) error {
	if len(recs) == 0 {
		return nil
	}
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(&recs).Error
	})
	if err != nil {
		return fmt.Errorf("batch create %d %s: %w", len(recs), r.collection, err)
	}
	r.notify(ctx)
	return nil
}

func (r *Remote[T]) BatchDelete(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	var zero T
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Where(r.keyColumn+" IN ?", ids).Delete(&zero).Error
	})
	if err != nil {
		return fmt.Errorf("batch delete %d %s: %w", len(ids), r.collection, err)
	}
	r.notify(ctx)
	return nil
}

func (r *Remote[T]) ListAll(ctx context.Context) ([]T, error) {
	var recs []T
	// Ordering by the key column keeps the collection tail the highest
	// generated id, which the id generator depends on.
	if err := r.db.WithContext(ctx).Order(r.keyColumn + " ASC").Find(&recs).Error; err != nil {
		return nil, fmt.Errorf("list %s: %w", r.collection, err)
	}
	return recs, nil
}

func (r *Remote[T]) ListByShop(ctx context.Context, shopID string) ([]T, error) {
	var recs []T
	if err := r.db.WithContext(ctx).Where("shop_id = ?", shopID).Order(r.keyColumn + " ASC").Find(&recs).Error; err != nil {
		return nil, fmt.Errorf("list %s for shop %s: %w", r.collection, shopID, err)
	}
	return recs, nil
}

func (r *Remote[T]) Exists(ctx context.Context, id string) (bool, error) {
	var zero T
	var count int64
	if err := r.db.WithContext(ctx).Model(&zero).Where(r.keyColumn+" = ?", id).Count(&count).Error; err != nil {
		return false, fmt.Errorf("exists %s %s: %w", r.collection, id, err)
	}
	return count > 0, nil
}

func (r *Remote[T]) MaxBatch() int {
	return r.maxBatch
}

func (r *Remote[T]) Subscribe(ctx context.Context, onSnapshot func([]T), onError func(error)) (func(), error) {
	snap, err := r.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	onSnapshot(snap)

	return r.notifier.Subscribe(ctx, r.collection, func() {
		recs, listErr := r.ListAll(ctx)
		if listErr != nil {
			if onError != nil {
				onError(listErr)
			}
			return
		}
		onSnapshot(recs)
	})
}
