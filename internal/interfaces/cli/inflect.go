package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/turtacn/entitylens/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/entitylens/internal/intelligence/entity_span"
)

type inflectView struct {
	Words []string `json:"words"`
	Forms []string `json:"forms"`
}

func (v inflectView) String() string { return strings.Join(v.Forms, "\n") }

func (v inflectView) TableHeaders() []string { return []string{"FORM"} }

func (v inflectView) TableRows() [][]string {
	rows := make([][]string, len(v.Forms))
	for i, f := range v.Forms {
		rows[i] = []string{f}
	}
	return rows
}

// NewInflectCmd creates the inflect command.
func NewInflectCmd() *cobra.Command {
	var noRules bool

	cmd := &cobra.Command{
		Use:   "inflect WORD...",
		Short: "Expand words with their plurals and lemmas",
		Long: "Prints the union of the given words and their inflected forms, as used by\n" +
			"highlight --inflect.  Forms come from the configured lexicon and, unless\n" +
			"--no-rules is set, regular English plural rules.",
		Example: "  entitylens inflect city harbour\n" +
			"  entitylens inflect --no-rules mouse",
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cliCtx, err := GetCLIContext(cmd)
			if err != nil {
				return err
			}
			lexicon := cliCtx.Config.Lexicon
			if noRules {
				lexicon.Rules = false
			}
			inflector := buildInflector(lexicon)
			forms := entity_span.ExpandInflections(args, inflector)
			cliCtx.Logger.Debug("inflected",
				logging.Strings("words", args),
				logging.Int("lexicon_entries", inflector.Len()),
				logging.Int("forms", len(forms)),
			)
			return PrintResult(cmd, inflectView{Words: args, Forms: forms})
		},
	}

	cmd.Flags().BoolVar(&noRules, "no-rules", false, "use only the configured lexicon")
	return cmd
}
