package render

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/entitylens/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/entitylens/internal/infrastructure/monitoring/prometheus"
	"github.com/turtacn/entitylens/internal/intelligence/entity_span"
	"github.com/turtacn/entitylens/pkg/errors"
)

func sampleSpans() []entity_span.TaggedSpan {
	return []entity_span.TaggedSpan{
		{Text: "Visit "},
		{Text: "Paris", Tag: "GPE"},
		{Text: ", "},
		{Text: "France", Tag: "GPE"},
		{Text: "."},
	}
}

func badge(color, text, tag string) string {
	return `<bgr class="entity" style="background: ` + color +
		`; padding: 0.05em 0.05em; margin: 0 0.15em;  border-radius: 0.55em;">` +
		text +
		`<span style="font-size: 0.8em; font-weight: bold; border-radius: 0.35em; vertical-align: middle; margin-left: 0.5rem">` +
		tag + "\n</span>\n</bgr>"
}

func TestHTMLRenderer_ExactMarkup(t *testing.T) {
	out, err := NewHTMLRenderer(DefaultPalette()).Render(sampleSpans())
	require.NoError(t, err)

	want := `<div class="entities" style="line-height: 2.5; direction: ltr">` +
		"Visit " + badge("#feca74", "Paris", "GPE") + ", " + badge("#feca74", "France", "GPE") + "." +
		"\n</div>"
	assert.Equal(t, want, out)
}

func TestHTMLRenderer_Escaping(t *testing.T) {
	spans := []entity_span.TaggedSpan{
		{Text: "a<b> & "},
		{Text: "<script>", Tag: "ORG"},
	}
	out, err := NewHTMLRenderer(DefaultPalette()).Render(spans)
	require.NoError(t, err)
	assert.Contains(t, out, "a&lt;b&gt; &amp; ")
	assert.Contains(t, out, "&lt;script&gt;")
	assert.NotContains(t, out, "<script>")

	raw, err := NewHTMLRenderer(DefaultPalette(), WithRawText()).Render(spans)
	require.NoError(t, err)
	assert.Contains(t, raw, "a<b> & ")
	assert.Contains(t, raw, "<script>")
}

func TestHTMLRenderer_UnknownTag(t *testing.T) {
	_, err := NewHTMLRenderer(DefaultPalette()).Render([]entity_span.TaggedSpan{{Text: "x", Tag: "ALIEN"}})
	assert.True(t, errors.IsCode(err, errors.ErrCodeUnknownTag))

	p, err := DefaultPalette().With(nil, UnknownTagFallback, "#eeeeee")
	require.NoError(t, err)
	out, err := NewHTMLRenderer(p).Render([]entity_span.TaggedSpan{{Text: "x", Tag: "ALIEN"}})
	require.NoError(t, err)
	assert.Contains(t, out, "background: #eeeeee;")
}

func TestHTMLRenderer_EmptySpans(t *testing.T) {
	out, err := NewHTMLRenderer(DefaultPalette()).Render(nil)
	require.NoError(t, err)
	assert.Equal(t, `<div class="entities" style="line-height: 2.5; direction: ltr">`+"\n</div>", out)
}

func TestANSIRenderer(t *testing.T) {
	lr := lipgloss.NewRenderer(&bytes.Buffer{})
	r := NewANSIRenderer(DefaultPalette(), WithLipglossRenderer(lr))
	assert.Equal(t, FormatANSI, r.Name())

	out, err := r.Render(sampleSpans())
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "Visit "))
	assert.Contains(t, out, "Paris")
	assert.Contains(t, out, "France")
	assert.Contains(t, out, "GPE")
	assert.True(t, strings.HasSuffix(out, "."))

	_, err = r.Render([]entity_span.TaggedSpan{{Text: "x", Tag: "ALIEN"}})
	assert.True(t, errors.IsCode(err, errors.ErrCodeUnknownTag))
}

func TestANSIRenderer_MultiLineSpan(t *testing.T) {
	lr := lipgloss.NewRenderer(&bytes.Buffer{})
	out, err := NewANSIRenderer(DefaultPalette(), WithLipglossRenderer(lr)).
		Render([]entity_span.TaggedSpan{{Text: "New\nYork", Tag: "GPE"}})
	require.NoError(t, err)
	assert.Equal(t, 1, strings.Count(out, "\n"))
	assert.Contains(t, out, "York")
}

func TestJSONRenderer(t *testing.T) {
	out, err := NewJSONRenderer(DefaultPalette(), false).Render(sampleSpans())
	require.NoError(t, err)

	var got []map[string]string
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	require.Len(t, got, 5)
	assert.Equal(t, map[string]string{"text": "Visit "}, got[0])
	assert.Equal(t, map[string]string{"text": "Paris", "tag": "GPE", "color": "#feca74"}, got[1])

	indented, err := NewJSONRenderer(DefaultPalette(), true).Render(sampleSpans())
	require.NoError(t, err)
	assert.Contains(t, indented, "\n  {")
}

func TestNew_Formats(t *testing.T) {
	for _, f := range Formats {
		r, err := New(f, nil, Options{})
		require.NoError(t, err, f)
		assert.Equal(t, f, r.Name())
	}

	r, err := New("HTML", DefaultPalette(), Options{RawText: true})
	require.NoError(t, err)
	out, err := r.Render([]entity_span.TaggedSpan{{Text: "<b>"}})
	require.NoError(t, err)
	assert.Contains(t, out, "<b>")

	_, err = New("pdf", nil, Options{})
	assert.True(t, errors.IsCode(err, errors.ErrCodeBadRequest))
}

func TestInstrument_RecordsStatus(t *testing.T) {
	c, err := prometheus.NewMetricsCollector(prometheus.CollectorConfig{Namespace: "entitylens"}, logging.NewNopLogger())
	require.NoError(t, err)
	m := prometheus.NewHighlightMetrics(c)

	r := Instrument(NewHTMLRenderer(DefaultPalette()), m)
	assert.Equal(t, FormatHTML, r.Name())
	_, err = r.Render(sampleSpans())
	require.NoError(t, err)
	_, err = r.Render([]entity_span.TaggedSpan{{Text: "x", Tag: "ALIEN"}})
	require.Error(t, err)

	out, err := c.Gather()
	require.NoError(t, err)
	assert.Contains(t, out, `entitylens_render_total{renderer="html",status="ok"} 1`)
	assert.Contains(t, out, `entitylens_render_total{renderer="html",status="error"} 1`)

	plain := NewJSONRenderer(DefaultPalette(), false)
	assert.Same(t, plain, Instrument(plain, nil))
}
