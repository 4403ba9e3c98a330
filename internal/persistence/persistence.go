// Package persistence provides the storage strategy behind the records
// store. One interface, two implementations: Remote commits to the
// authoritative Postgres store and fans snapshots out over Redis; Local keeps
// whole collections as JSON values in a SQLite cache for offline operation.
// The strategy is chosen once at startup, never per call.
package persistence

import "context"

// Record is implemented by every persisted entity model.
type Record interface {
	// Collection names the record's collection; it keys both the remote
	// table mapping and the local cache entry.
	Collection() string
	// RecordID returns the record's unique id within its collection.
	RecordID() string
	// ShopRef returns the shop id the record belongs to.
	ShopRef() string
}

// Collection is the uniform persistence surface for one entity kind.
type Collection[T Record] interface {
	Create(ctx context.Context, rec T) error
	Update(ctx context.Context, rec T) error
	Delete(ctx context.Context, id string) error

	// BatchCreate commits recs as a single atomic batch. Callers are
	// responsible for honoring MaxBatch.
	BatchCreate(ctx context.Context, recs []T) error
	// BatchDelete removes the identified records as a single atomic batch.
	BatchDelete(ctx context.Context, ids []string) error

	ListAll(ctx context.Context) ([]T, error)
	ListByShop(ctx context.Context, shopID string) ([]T, error)
	Exists(ctx context.Context, id string) (bool, error)

	// MaxBatch returns the per-commit operation ceiling, or 0 when the
	// backend accepts arbitrarily large batches.
	MaxBatch() int

	// Subscribe delivers an immediate full snapshot, then a fresh full
	// snapshot after every observed change, until the returned cancel
	// function is called.
	Subscribe(ctx context.Context, onSnapshot func([]T), onError func(error)) (func(), error)
}
