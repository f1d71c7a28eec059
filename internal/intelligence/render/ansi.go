package render

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/turtacn/entitylens/internal/intelligence/entity_span"
)

// ANSIRenderer paints tagged spans with their palette color as background
// and appends a bold tag label, for terminal output.
type ANSIRenderer struct {
	palette  *Palette
	renderer *lipgloss.Renderer
}

// ANSIOption configures an ANSIRenderer.
type ANSIOption func(*ANSIRenderer)

// WithLipglossRenderer sets the lipgloss renderer, which decides the color
// profile.  The default targets stdout.
func WithLipglossRenderer(lr *lipgloss.Renderer) ANSIOption {
	return func(r *ANSIRenderer) {
		if lr != nil {
			r.renderer = lr
		}
	}
}

func NewANSIRenderer(palette *Palette, opts ...ANSIOption) *ANSIRenderer {
	r := &ANSIRenderer{palette: palette, renderer: lipgloss.DefaultRenderer()}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *ANSIRenderer) Name() string { return FormatANSI }

func (r *ANSIRenderer) Render(spans []entity_span.TaggedSpan) (string, error) {
	label := r.renderer.NewStyle().Bold(true).Foreground(lipgloss.Color("#1E1E2E"))

	var sb strings.Builder
	for _, s := range spans {
		if !s.Tagged() {
			sb.WriteString(s.Text)
			continue
		}
		color, err := r.palette.Color(s.Tag)
		if err != nil {
			return "", err
		}
		badge := r.renderer.NewStyle().
			Background(lipgloss.Color(color)).
			Foreground(lipgloss.Color("#1E1E2E"))
		// Styles pad multi-line blocks to equal width, so each line is
		// painted on its own.
		lines := strings.Split(s.Text, "\n")
		for i, line := range lines {
			if i > 0 {
				sb.WriteString("\n")
			}
			if i == len(lines)-1 {
				line += " " + label.Background(lipgloss.Color(color)).Render(s.Tag)
			}
			sb.WriteString(badge.Render(line))
		}
	}
	return sb.String(), nil
}
