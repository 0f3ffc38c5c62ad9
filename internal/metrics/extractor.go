// Package metrics instruments the extraction pipeline. Collectors are
// registered on the default registry; the extractor itself exposes no
// HTTP listener, scraping is wired up by the deployment.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	extractorRunsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "zartrux",
		Subsystem: "nonce_extractor",
		Name:      "runs_total",
		Help:      "Count of extraction runs.",
	}, []string{"bucket", "status"})

	extractorRunDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "zartrux",
		Subsystem: "nonce_extractor",
		Name:      "run_duration_seconds",
		Help:      "Duration of a full extraction run.",
		Buckets:   prometheus.ExponentialBuckets(0.01, 4, 10),
	}, []string{"bucket", "status"})

	extractorRecordsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "zartrux",
		Subsystem: "nonce_extractor",
		Name:      "records_total",
		Help:      "Count of newly extracted ledger entries.",
	}, []string{"bucket"})

	extractorDuplicateSkipsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "zartrux",
		Subsystem: "nonce_extractor",
		Name:      "duplicate_skips_total",
		Help:      "Count of records skipped because their hash was inside the recent window.",
	}, []string{"bucket"})

	extractorCorruptRecordsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "zartrux",
		Subsystem: "nonce_extractor",
		Name:      "corrupt_records_total",
		Help:      "Count of records whose header could not be decoded.",
	}, []string{"bucket"})

	extractorStoreRetriesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "zartrux",
		Subsystem: "nonce_extractor",
		Name:      "store_retries_total",
		Help:      "Count of retried block store reads.",
	}, []string{"bucket"})

	ledgerAppendsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "zartrux",
		Subsystem: "nonce_extractor",
		Name:      "ledger_appends_total",
		Help:      "Count of ledger append batches.",
	}, []string{"bucket", "status"})

	ledgerBackupsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "zartrux",
		Subsystem: "nonce_extractor",
		Name:      "ledger_backups_total",
		Help:      "Count of ledger files rotated aside after a failed append.",
	}, []string{"bucket"})
)

// Extractor records pipeline observations for one store bucket.
type Extractor struct {
	bucket string
}

// NewExtractor builds the metrics recorder for a bucket.
func NewExtractor(bucket string) *Extractor {
	if bucket == "" {
		bucket = "unknown"
	}
	return &Extractor{bucket: bucket}
}

func statusOf(err error) string {
	if err != nil {
		return "error"
	}
	return "success"
}

// ObserveRun records the outcome and duration of one extraction run.
func (m *Extractor) ObserveRun(err error, started time.Time) {
	status := statusOf(err)
	extractorRunsTotal.WithLabelValues(m.bucket, status).Inc()
	extractorRunDuration.WithLabelValues(m.bucket, status).Observe(time.Since(started).Seconds())
}

// AddExtracted counts newly accepted ledger entries.
func (m *Extractor) AddExtracted(n int) {
	if n > 0 {
		extractorRecordsTotal.WithLabelValues(m.bucket).Add(float64(n))
	}
}

// IncDuplicateSkip counts a record suppressed by the hash window.
func (m *Extractor) IncDuplicateSkip() {
	extractorDuplicateSkipsTotal.WithLabelValues(m.bucket).Inc()
}

// IncCorruptRecord counts a record with an undecodable header.
func (m *Extractor) IncCorruptRecord() {
	extractorCorruptRecordsTotal.WithLabelValues(m.bucket).Inc()
}

// AddStoreRetries counts retried block store reads.
func (m *Extractor) AddStoreRetries(n int) {
	if n > 0 {
		extractorStoreRetriesTotal.WithLabelValues(m.bucket).Add(float64(n))
	}
}

// ObserveLedgerAppend records the outcome of a ledger batch append.
func (m *Extractor) ObserveLedgerAppend(err error) {
	ledgerAppendsTotal.WithLabelValues(m.bucket, statusOf(err)).Inc()
}

// IncLedgerBackup counts a backup rotation of the ledger file.
func (m *Extractor) IncLedgerBackup() {
	ledgerBackupsTotal.WithLabelValues(m.bucket).Inc()
}
