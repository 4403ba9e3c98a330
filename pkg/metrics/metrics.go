package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// RecordsMetrics tracks the records layer: bulk imports, chunked batch
// commits and cascade deletes.
type RecordsMetrics struct {
	importRows     *prometheus.CounterVec
	batchCommits   *prometheus.CounterVec
	batchDuration  *prometheus.HistogramVec
	cascadeDeletes *prometheus.CounterVec
}

// NewRecordsMetrics registers the records metrics on the provided registerer.
func NewRecordsMetrics(reg prometheus.Registerer) *RecordsMetrics {
	if reg == nil {
		return &RecordsMetrics{}
	}
	importRows := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "import_rows_total",
		Help: "CSV import rows processed, by entity and result.",
	}, []string{"entity", "result"})
	batchCommits := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "batch_commits_total",
		Help: "Chunked batch commits issued against the remote store.",
	}, []string{"collection"})
	batchDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "batch_commit_duration_seconds",
		Help:    "Duration of a single batch commit.",
		Buckets: prometheus.DefBuckets,
	}, []string{"collection"})
	cascadeDeletes := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "cascade_deletes_total",
		Help: "Records removed by client cascade deletes, by collection.",
	}, []string{"collection"})
	reg.MustRegister(importRows, batchCommits, batchDuration, cascadeDeletes)
	return &RecordsMetrics{
		importRows:     importRows,
		batchCommits:   batchCommits,
		batchDuration:  batchDuration,
		cascadeDeletes: cascadeDeletes,
	}
}

// ObserveImportRows counts processed import rows by outcome.
func (m *RecordsMetrics) ObserveImportRows(entity string, successes, failures int) {
	if m == nil || m.importRows == nil {
		return
	}
	label := normalizeLabel(entity)
	if successes > 0 {
		m.importRows.WithLabelValues(label, "success").Add(float64(successes))
	}
	if failures > 0 {
		m.importRows.WithLabelValues(label, "error").Add(float64(failures))
	}
}

// ObserveBatchCommit counts one batch commit and its duration.
func (m *RecordsMetrics) ObserveBatchCommit(collection string, duration time.Duration) {
	if m == nil || m.batchCommits == nil {
		return
	}
	label := normalizeLabel(collection)
	m.batchCommits.WithLabelValues(label).Inc()
	m.batchDuration.WithLabelValues(label).Observe(duration.Seconds())
}

// ObserveCascadeDeletes counts records removed by a cascade.
func (m *RecordsMetrics) ObserveCascadeDeletes(collection string, count int) {
	if m == nil || m.cascadeDeletes == nil || count <= 0 {
		return
	}
	m.cascadeDeletes.WithLabelValues(normalizeLabel(collection)).Add(float64(count))
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}
