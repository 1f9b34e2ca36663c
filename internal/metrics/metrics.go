// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package metrics describes ranking runs as Prometheus metrics and writes
// them in the node-exporter textfile format.
package metrics

import (
	"os"
	"path/filepath"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/pdiddy/screening-engine/internal/screen"
)

// Metric names.
const (
	MetricDocumentsRanked = "screening_documents_ranked"
	MetricSeeds           = "screening_seeds"
	MetricVocabularySize  = "screening_vocabulary_size"
	MetricThreshold       = "screening_threshold_similarity"
	MetricThresholdFound  = "screening_threshold_found"
	MetricMaxWSS          = "screening_max_wss_percent"
	MetricRunDuration     = "screening_run_duration_seconds"
)

// Metrics holds the collectors for one ranking run, labeled by
// aggregation mode.
type Metrics struct {
	documents      *prometheus.GaugeVec
	seeds          *prometheus.GaugeVec
	vocabulary     *prometheus.GaugeVec
	threshold      *prometheus.GaugeVec
	thresholdFound *prometheus.GaugeVec
	maxWSS         *prometheus.GaugeVec
	duration       *prometheus.HistogramVec
}

// New creates unregistered collectors.
func New() *Metrics {
	labels := []string{"aggregation"}
	gauge := func(name, help string) *prometheus.GaugeVec {
		return prometheus.NewGaugeVec(prometheus.GaugeOpts{Name: name, Help: help}, labels)
	}
	return &Metrics{
		documents:      gauge(MetricDocumentsRanked, "Number of documents in the ranked corpus"),
		seeds:          gauge(MetricSeeds, "Number of seed documents"),
		vocabulary:     gauge(MetricVocabularySize, "Number of terms in the TF-IDF vocabulary"),
		threshold:      gauge(MetricThreshold, "Similarity threshold at the target recall"),
		thresholdFound: gauge(MetricThresholdFound, "1 if the target recall was reachable, else 0"),
		maxWSS:         gauge(MetricMaxWSS, "Largest work-saved-over-sampling percentage on the curve"),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    MetricRunDuration,
			Help:    "Ranking run duration in seconds",
			Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 5, 30},
		}, labels),
	}
}

// Register registers all collectors with reg.
func (m *Metrics) Register(reg prometheus.Registerer) error {
	collectors := []prometheus.Collector{
		m.documents, m.seeds, m.vocabulary, m.threshold,
		m.thresholdFound, m.maxWSS, m.duration,
	}
	for _, c := range collectors {
		if err := reg.Register(c); err != nil {
			return err
		}
	}
	return nil
}

// Observe records res under the given aggregation label.
func (m *Metrics) Observe(aggregation string, res *screen.Result, elapsed time.Duration) {
	m.documents.WithLabelValues(aggregation).Set(float64(res.Seeds + res.Candidates))
	m.seeds.WithLabelValues(aggregation).Set(float64(res.Seeds))
	m.vocabulary.WithLabelValues(aggregation).Set(float64(res.Vocabulary))
	if res.Threshold.Found {
		m.threshold.WithLabelValues(aggregation).Set(res.Threshold.Value)
		m.thresholdFound.WithLabelValues(aggregation).Set(1)
	} else {
		m.thresholdFound.WithLabelValues(aggregation).Set(0)
	}
	if res.Curve != nil {
		if best := res.Curve.Best(); best >= 0 {
			m.maxWSS.WithLabelValues(aggregation).Set(res.Curve.WSS[best])
		}
	}
	m.duration.WithLabelValues(aggregation).Observe(elapsed.Seconds())
}

// WriteTextfile registers m on a fresh registry and writes it to path,
// creating the parent directory if needed.
func (m *Metrics) WriteTextfile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	reg := prometheus.NewRegistry()
	if err := m.Register(reg); err != nil {
		return err
	}
	return prometheus.WriteToTextfile(path, reg)
}
