package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/turtacn/entitylens/internal/intelligence/render"
)

// paletteView is the printable form of a palette.
type paletteView struct {
	Policy   string             `json:"unknown_tag_policy"`
	Fallback string             `json:"fallback_color"`
	Colors   []render.ColorEntry `json:"colors"`
}

func (v paletteView) TableHeaders() []string { return []string{"TAG", "COLOR"} }

func (v paletteView) TableRows() [][]string {
	rows := make([][]string, 0, len(v.Colors))
	for _, c := range v.Colors {
		rows = append(rows, []string{c.Tag, c.Color})
	}
	return rows
}

func (v paletteView) String() string {
	var sb strings.Builder
	for i, c := range v.Colors {
		if i > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(c.Tag)
		sb.WriteString("\t")
		sb.WriteString(c.Color)
	}
	return sb.String()
}

// NewPaletteCmd creates the palette command.
func NewPaletteCmd() *cobra.Command {
	var tags []string

	cmd := &cobra.Command{
		Use:   "palette",
		Short: "Show the effective tag palette",
		Long:  "Prints the default tag colors with any overrides from the configuration applied.",
		Example: "  entitylens palette\n" +
			"  entitylens palette --tag GPE --tag TIME -o json",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cliCtx, err := GetCLIContext(cmd)
			if err != nil {
				return err
			}
			palette, err := buildPalette(cliCtx.Config.Render)
			if err != nil {
				return err
			}

			view := paletteView{Policy: palette.Policy().String(), Fallback: palette.Fallback()}
			if len(tags) == 0 {
				view.Colors = palette.Entries()
			} else {
				for _, tag := range tags {
					color, err := palette.Color(tag)
					if err != nil {
						return err
					}
					view.Colors = append(view.Colors, render.ColorEntry{Tag: tag, Color: color})
				}
			}
			return PrintResult(cmd, view)
		},
	}

	cmd.Flags().StringSliceVar(&tags, "tag", nil, "only show these tags")
	return cmd
}
