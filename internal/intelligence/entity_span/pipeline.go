package entity_span

import (
	"time"

	"github.com/google/uuid"

	"github.com/turtacn/entitylens/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/entitylens/internal/infrastructure/monitoring/prometheus"
	"github.com/turtacn/entitylens/pkg/errors"
)

// ---------------------------------------------------------------------------
// Sources
// ---------------------------------------------------------------------------

// Source produces an entity mapping for a text.
type Source interface {
	Name() string
	Extract(text string) (*Mapping, error)
}

// NameListSource matches a fixed list of names, all tagged with Tag.
type NameListSource struct {
	Label      string
	Names      []string
	Tag        string
	Precedence Precedence
}

func (s *NameListSource) Name() string {
	if s.Label != "" {
		return s.Label
	}
	return "names:" + s.Tag
}

func (s *NameListSource) Extract(text string) (*Mapping, error) {
	if s.Tag == "" {
		return nil, errors.New(errors.ErrCodeInvalidSource, "name list source needs a tag")
	}
	return ExtractEntities(text, s.Names, s.Tag, WithPrecedence(s.Precedence)), nil
}

// InflectedNameListSource expands its names through an Inflector before
// matching, so "city" also finds "cities".
type InflectedNameListSource struct {
	NameListSource
	Inflector Inflector
}

func (s *InflectedNameListSource) Name() string {
	if s.Label != "" {
		return s.Label
	}
	return "inflected:" + s.Tag
}

func (s *InflectedNameListSource) Extract(text string) (*Mapping, error) {
	if s.Inflector == nil {
		return nil, errors.New(errors.ErrCodeInvalidSource, "inflected source needs an inflector")
	}
	expanded := s.NameListSource
	expanded.Names = ExpandInflections(s.Names, s.Inflector)
	return expanded.Extract(text)
}

// SemanticSource selects tagger tokens by category.  Token offsets must be
// byte offsets into the text passed to Extract.
type SemanticSource struct {
	Label      string
	Tokens     []TaggedToken
	Categories []string
	Predicate  TagPredicate
	Precedence Precedence
}

func (s *SemanticSource) Name() string {
	if s.Label != "" {
		return s.Label
	}
	return "semantic"
}

func (s *SemanticSource) Extract(_ string) (*Mapping, error) {
	return ExtractSemanticEntities(s.Tokens, s.Categories,
		WithPredicate(s.Predicate), WithPrecedence(s.Precedence)), nil
}

// ---------------------------------------------------------------------------
// Highlighter
// ---------------------------------------------------------------------------

// Result is the outcome of one highlight run.
type Result struct {
	ID       string       `json:"id"`
	Entities []Entity     `json:"entities"`
	Spans    []TaggedSpan `json:"spans"`
	Dropped  int          `json:"dropped"`
}

// Highlighter runs sources over a text, merges their mappings and segments
// the text.  It holds no per-run state and is safe for concurrent use.
type Highlighter struct {
	logger  logging.Logger
	metrics *prometheus.HighlightMetrics
	newID   func() string
}

// HighlighterOption configures a Highlighter.
type HighlighterOption func(*Highlighter)

// WithIDGenerator overrides the run ID generator.
func WithIDGenerator(fn func() string) HighlighterOption {
	return func(h *Highlighter) {
		if fn != nil {
			h.newID = fn
		}
	}
}

// NewHighlighter builds a Highlighter.  Nil logger or metrics are replaced by
// no-op implementations.
func NewHighlighter(logger logging.Logger, metrics *prometheus.HighlightMetrics, opts ...HighlighterOption) *Highlighter {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	if metrics == nil {
		metrics = prometheus.NewNoopHighlightMetrics()
	}
	h := &Highlighter{
		logger:  logger.Named("highlighter"),
		metrics: metrics,
		newID:   func() string { return uuid.New().String() },
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Highlight extracts every source, merges the mappings with earlier sources
// taking precedence and segments text with the merged result.
func (h *Highlighter) Highlight(text string, sources ...Source) (*Result, error) {
	start := time.Now()
	runID := h.newID()
	log := h.logger.With(logging.String("run_id", runID))

	merged := NewMapping()
	for i, src := range sources {
		if src == nil {
			return nil, errors.Newf(errors.ErrCodeInvalidSource, "source %d is nil", i)
		}
		name := src.Name()
		m, err := src.Extract(text)
		if err != nil {
			log.Warn("source extraction failed", logging.String("source", name), logging.Err(err))
			return nil, errors.Wrap(err, errors.CodeUnknown, "extract source").WithDetail("source=" + name)
		}

		collisions := sharedOffsets(merged, m) + m.Collisions()
		prometheus.RecordExtraction(h.metrics, name, m.TagCounts())
		prometheus.RecordCollisions(h.metrics, name, collisions)
		log.Debug("source extracted",
			logging.String("source", name),
			logging.Int("entities", m.Len()),
			logging.Int("collisions", collisions),
		)

		merged = Merge(merged, m)
	}

	spans, dropped, err := SegmentWithStats(text, merged)
	if err != nil {
		log.Warn("segmentation failed", logging.Err(err))
		return nil, err
	}
	prometheus.RecordDropped(h.metrics, dropped)

	elapsed := time.Since(start)
	prometheus.RecordHighlight(h.metrics, elapsed)
	log.Debug("highlight complete",
		logging.Int("entities", merged.Len()),
		logging.Int("spans", len(spans)),
		logging.Int("dropped", dropped),
		logging.Duration("elapsed", elapsed),
	)

	return &Result{
		ID:       runID,
		Entities: merged.Entities(),
		Spans:    spans,
		Dropped:  dropped,
	}, nil
}
