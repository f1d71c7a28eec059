package cli

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/entitylens/internal/intelligence/render"
	"github.com/turtacn/entitylens/pkg/errors"
)

func TestPalette_SelectedTags(t *testing.T) {
	out, _, err := runCLI(t, "", "palette", "--tag", "GPE", "--tag", "TIME")
	require.NoError(t, err)
	assert.Equal(t, "GPE\t#feca74\nTIME\t#a9f5bc\n", out)
}

func TestPalette_UnknownTag(t *testing.T) {
	_, _, err := runCLI(t, "", "palette", "--tag", "NOPE")
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeUnknownTag))
}

func TestPalette_ConfigOverrides(t *testing.T) {
	cfg := writeConfig(t, quietConfig+
		"render:\n  colors:\n    - tag: GPE\n      color: \"#000000\"\n    - tag: CUSTOM\n      color: \"#abcdef\"\n")

	out, _, err := runCLI(t, "", "--config", cfg, "-o", "json", "palette")
	require.NoError(t, err)

	var view struct {
		Policy   string              `json:"unknown_tag_policy"`
		Fallback string              `json:"fallback_color"`
		Colors   []render.ColorEntry `json:"colors"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &view))
	assert.Equal(t, "fail", view.Policy)
	assert.Equal(t, "#FFFFFF", view.Fallback)
	require.Len(t, view.Colors, render.DefaultPalette().Len()+1)

	colors := make(map[string]string)
	for _, c := range view.Colors {
		colors[c.Tag] = c.Color
	}
	assert.Equal(t, "#000000", colors["GPE"])
	assert.Equal(t, "#abcdef", colors["CUSTOM"])
	assert.Equal(t, "CUSTOM", view.Colors[len(view.Colors)-1].Tag)
}

func TestPalette_Table(t *testing.T) {
	out, _, err := runCLI(t, "", "-o", "table", "palette", "--tag", "GPE")
	require.NoError(t, err)
	assert.Equal(t, "TAG  COLOR\n---  -------\nGPE  #feca74\n", out)
}
