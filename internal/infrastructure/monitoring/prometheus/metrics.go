package prometheus

import (
	"time"
)

// HighlightMetrics holds the metrics recorded by a highlight run.
type HighlightMetrics struct {
	// Extraction
	EntitiesExtracted CounterVec
	OffsetCollisions  CounterVec

	// Segmentation
	OverlapsDropped CounterVec

	// Rendering
	RenderTotal CounterVec

	// Pipeline
	HighlightDuration HistogramVec

	// Batch
	BatchDocuments CounterVec
	BatchInFlight  GaugeVec
}

// DefaultHighlightDurationBuckets covers in-memory runs from 100µs to 1s.
var DefaultHighlightDurationBuckets = []float64{.0001, .0005, .001, .005, .01, .05, .1, .5, 1}

// Render statuses.
const (
	StatusOK    = "ok"
	StatusError = "error"
)

// NewHighlightMetrics registers every highlight metric on collector.
func NewHighlightMetrics(collector MetricsCollector) *HighlightMetrics {
	return &HighlightMetrics{
		EntitiesExtracted: collector.RegisterCounter("entities_extracted_total", "Entities produced per source and tag", "source", "tag"),
		OffsetCollisions:  collector.RegisterCounter("offset_collisions_total", "Offset collisions resolved during merge", "source"),
		OverlapsDropped:   collector.RegisterCounter("overlaps_dropped_total", "Entities dropped by segmentation because they overlap an earlier one"),
		RenderTotal:       collector.RegisterCounter("render_total", "Render calls by renderer and status", "renderer", "status"),
		HighlightDuration: collector.RegisterHistogram("highlight_duration_seconds", "Wall time of a highlight run", DefaultHighlightDurationBuckets),
		BatchDocuments:    collector.RegisterCounter("batch_documents_total", "Documents processed by batch runs by status", "status"),
		BatchInFlight:     collector.RegisterGauge("batch_inflight_documents", "Documents currently being highlighted by batch runs"),
	}
}

// NewNoopHighlightMetrics returns metrics that record nothing.
func NewNoopHighlightMetrics() *HighlightMetrics {
	return &HighlightMetrics{
		EntitiesExtracted: noopCounterVec{},
		OffsetCollisions:  noopCounterVec{},
		OverlapsDropped:   noopCounterVec{},
		RenderTotal:       noopCounterVec{},
		HighlightDuration: noopHistogramVec{},
		BatchDocuments:    noopCounterVec{},
		BatchInFlight:     noopGaugeVec{},
	}
}

// Helpers

func RecordExtraction(m *HighlightMetrics, source string, tagCounts map[string]int) {
	for tag, n := range tagCounts {
		m.EntitiesExtracted.WithLabelValues(source, tag).Add(float64(n))
	}
}

func RecordCollisions(m *HighlightMetrics, source string, n int) {
	if n > 0 {
		m.OffsetCollisions.WithLabelValues(source).Add(float64(n))
	}
}

func RecordDropped(m *HighlightMetrics, n int) {
	if n > 0 {
		m.OverlapsDropped.WithLabelValues().Add(float64(n))
	}
}

func RecordRender(m *HighlightMetrics, renderer string, err error) {
	status := StatusOK
	if err != nil {
		status = StatusError
	}
	m.RenderTotal.WithLabelValues(renderer, status).Inc()
}

func RecordHighlight(m *HighlightMetrics, d time.Duration) {
	m.HighlightDuration.WithLabelValues().Observe(d.Seconds())
}

// RecordBatchDocument counts one finished batch document.
func RecordBatchDocument(m *HighlightMetrics, err error) {
	status := StatusOK
	if err != nil {
		status = StatusError
	}
	m.BatchDocuments.WithLabelValues(status).Inc()
}

// TrackInFlight raises the in-flight gauge and returns the func that lowers it.
func TrackInFlight(m *HighlightMetrics) func() {
	g := m.BatchInFlight.WithLabelValues()
	g.Inc()
	return g.Dec
}
