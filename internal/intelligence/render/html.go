package render

import (
	"fmt"
	"html"
	"strings"

	"github.com/turtacn/entitylens/internal/intelligence/entity_span"
)

const (
	htmlContainerOpen  = `<div class="entities" style="line-height: 2.5; direction: ltr">`
	htmlContainerClose = "\n</div>"
	htmlBadgeOpen      = `<bgr class="entity" style="background: %s; padding: 0.05em 0.05em; margin: 0 0.15em;  border-radius: 0.55em;">`
	htmlBadgeClose     = "\n</bgr>"
	htmlLabelOpen      = `<span style="font-size: 0.8em; font-weight: bold; border-radius: 0.35em; vertical-align: middle; margin-left: 0.5rem">`
	htmlLabelClose     = "\n</span>"
)

// HTMLRenderer wraps each tagged span in a colored badge carrying a small
// tag label.  Untagged text is emitted as is.
type HTMLRenderer struct {
	palette *Palette
	raw     bool
}

// HTMLOption configures an HTMLRenderer.
type HTMLOption func(*HTMLRenderer)

// WithRawText disables escaping, so text containing markup is injected
// verbatim.
func WithRawText() HTMLOption {
	return func(r *HTMLRenderer) { r.raw = true }
}

func NewHTMLRenderer(palette *Palette, opts ...HTMLOption) *HTMLRenderer {
	r := &HTMLRenderer{palette: palette}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *HTMLRenderer) Name() string { return FormatHTML }

func (r *HTMLRenderer) escape(s string) string {
	if r.raw {
		return s
	}
	return html.EscapeString(s)
}

func (r *HTMLRenderer) Render(spans []entity_span.TaggedSpan) (string, error) {
	var sb strings.Builder
	sb.WriteString(htmlContainerOpen)
	for _, s := range spans {
		if !s.Tagged() {
			sb.WriteString(r.escape(s.Text))
			continue
		}
		color, err := r.palette.Color(s.Tag)
		if err != nil {
			return "", err
		}
		fmt.Fprintf(&sb, htmlBadgeOpen, color)
		sb.WriteString(r.escape(s.Text))
		sb.WriteString(htmlLabelOpen)
		sb.WriteString(r.escape(s.Tag))
		sb.WriteString(htmlLabelClose)
		sb.WriteString(htmlBadgeClose)
	}
	sb.WriteString(htmlContainerClose)
	return sb.String(), nil
}
