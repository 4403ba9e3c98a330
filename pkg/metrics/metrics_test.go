package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestObserveImportRows(t *testing.T) {
	m := NewRecordsMetrics(prometheus.NewRegistry())

	m.ObserveImportRows("clients", 3, 1)
	m.ObserveImportRows("clients", 2, 0)

	assert.Equal(t, 5.0, testutil.ToFloat64(m.importRows.WithLabelValues("clients", "success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.importRows.WithLabelValues("clients", "error")))
}

func TestObserversAreNilSafe(t *testing.T) {
	var m *RecordsMetrics
	m.ObserveImportRows("clients", 1, 1)
	m.ObserveBatchCommit("deposits", time.Millisecond)
	m.ObserveCascadeDeletes("orders", 3)

	disabled := NewRecordsMetrics(nil)
	disabled.ObserveImportRows("clients", 1, 1)
}

func TestObserveBatchCommit(t *testing.T) {
	m := NewRecordsMetrics(prometheus.NewRegistry())
	m.ObserveBatchCommit("deposits", 10*time.Millisecond)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.batchCommits.WithLabelValues("deposits")))
}

func TestObserveCascadeDeletes(t *testing.T) {
	m := NewRecordsMetrics(prometheus.NewRegistry())
	m.ObserveCascadeDeletes("orders", 3)
	m.ObserveCascadeDeletes("orders", 0)
	assert.Equal(t, 3.0, testutil.ToFloat64(m.cascadeDeletes.WithLabelValues("orders")))
}
