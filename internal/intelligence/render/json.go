package render

import (
	"encoding/json"

	"github.com/turtacn/entitylens/internal/intelligence/entity_span"
	"github.com/turtacn/entitylens/pkg/errors"
)

// JSONRenderer emits the span list with resolved colors.
type JSONRenderer struct {
	palette *Palette
	indent  bool
}

type jsonSpan struct {
	Text  string `json:"text"`
	Tag   string `json:"tag,omitempty"`
	Color string `json:"color,omitempty"`
}

func NewJSONRenderer(palette *Palette, indent bool) *JSONRenderer {
	return &JSONRenderer{palette: palette, indent: indent}
}

func (r *JSONRenderer) Name() string { return FormatJSON }

func (r *JSONRenderer) Render(spans []entity_span.TaggedSpan) (string, error) {
	out := make([]jsonSpan, 0, len(spans))
	for _, s := range spans {
		js := jsonSpan{Text: s.Text, Tag: s.Tag}
		if s.Tagged() {
			color, err := r.palette.Color(s.Tag)
			if err != nil {
				return "", err
			}
			js.Color = color
		}
		out = append(out, js)
	}

	var (
		b   []byte
		err error
	)
	if r.indent {
		b, err = json.MarshalIndent(out, "", "  ")
	} else {
		b, err = json.Marshal(out)
	}
	if err != nil {
		return "", errors.Wrap(err, errors.ErrCodeRenderFailed, "marshal spans")
	}
	return string(b), nil
}
