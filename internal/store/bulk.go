package store

import (
	"context"
	"time"

	"github.com/luisherrera/shopdesk-backend/internal/persistence"
	"github.com/luisherrera/shopdesk-backend/pkg/metrics"
)

// chunk partitions recs into slices of at most limit elements, preserving
// input order. A limit of zero or less means a single chunk.
func chunk[T any](recs []T, limit int) [][]T {
	if len(recs) == 0 {
		return nil
	}
	if limit <= 0 || len(recs) <= limit {
		return [][]T{recs}
	}
	chunks := make([][]T, 0, (len(recs)+limit-1)/limit)
	for start := 0; start < len(recs); start += limit {
		end := start + limit
		if end > len(recs) {
			end = len(recs)
		}
		chunks = append(chunks, recs[start:end])
	}
	return chunks
}

// bulkCreate commits recs through col in sequential chunks bounded by the
// collection's batch ceiling. Chunks commit strictly in input order; the next
// chunk does not start until the previous commit resolves. Returns the number
// of commits issued.
func bulkCreate[T persistence.Record](ctx context.Context, col persistence.Collection[T], recs []T, m *metrics.RecordsMetrics) (int, error) {
	var zero T
	commits := 0
	for _, part := range chunk(recs, col.MaxBatch()) {
		start := time.Now()
		if err := col.BatchCreate(ctx, part); err != nil {
			return commits, err
		}
		commits++
		m.ObserveBatchCommit(zero.Collection(), time.Since(start))
	}
	return commits, nil
}

// bulkDelete removes ids through col in sequential chunks, mirroring
// bulkCreate's ordering guarantees.
func bulkDelete[T persistence.Record](ctx context.Context, col persistence.Collection[T], ids []string, m *metrics.RecordsMetrics) (int, error) {
	var zero T
	commits := 0
	for _, part := range chunk(ids, col.MaxBatch()) {
		start := time.Now()
		if err := col.BatchDelete(ctx, part); err != nil {
			return commits, err
		}
		commits++
		m.ObserveBatchCommit(zero.Collection(), time.Since(start))
	}
	return commits, nil
}
