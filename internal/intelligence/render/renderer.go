package render

import (
	"strings"

	"github.com/turtacn/entitylens/internal/infrastructure/monitoring/prometheus"
	"github.com/turtacn/entitylens/internal/intelligence/entity_span"
	"github.com/turtacn/entitylens/pkg/errors"
)

// Renderer turns segmented spans into one markup string.
type Renderer interface {
	Name() string
	Render(spans []entity_span.TaggedSpan) (string, error)
}

// Format names accepted by New.
const (
	FormatHTML = "html"
	FormatANSI = "ansi"
	FormatJSON = "json"
)

// Formats lists every supported format.
var Formats = []string{FormatHTML, FormatANSI, FormatJSON}

// Options carries the per-format switches understood by New.
type Options struct {
	// RawText disables HTML escaping of span text and tags.
	RawText bool
	// Indent pretty-prints JSON output.
	Indent bool
}

// New builds the renderer for format.
func New(format string, palette *Palette, opts Options) (Renderer, error) {
	if palette == nil {
		palette = DefaultPalette()
	}
	switch strings.ToLower(format) {
	case FormatHTML:
		var hopts []HTMLOption
		if opts.RawText {
			hopts = append(hopts, WithRawText())
		}
		return NewHTMLRenderer(palette, hopts...), nil
	case FormatANSI:
		return NewANSIRenderer(palette), nil
	case FormatJSON:
		return NewJSONRenderer(palette, opts.Indent), nil
	default:
		return nil, errors.New(errors.ErrCodeBadRequest, "unsupported render format").
			WithDetail("format=" + format + " supported=" + strings.Join(Formats, ","))
	}
}

// instrumented records every Render call in the highlight metrics.
type instrumented struct {
	Renderer
	metrics *prometheus.HighlightMetrics
}

// Instrument wraps r so each call increments render_total.
func Instrument(r Renderer, m *prometheus.HighlightMetrics) Renderer {
	if m == nil {
		return r
	}
	return &instrumented{Renderer: r, metrics: m}
}

func (i *instrumented) Render(spans []entity_span.TaggedSpan) (string, error) {
	out, err := i.Renderer.Render(spans)
	prometheus.RecordRender(i.metrics, i.Name(), err)
	return out, err
}
