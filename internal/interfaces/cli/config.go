package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/turtacn/entitylens/internal/config"
	"github.com/turtacn/entitylens/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/entitylens/pkg/errors"
)

// configView is the printable summary of an effective configuration.
type configView struct {
	Path             string   `json:"path,omitempty"`
	LogLevel         string   `json:"log_level"`
	Precedence       string   `json:"precedence"`
	Predicate        string   `json:"predicate"`
	Categories       []string `json:"categories"`
	RenderFormat     string   `json:"render_format"`
	UnknownTagPolicy string   `json:"unknown_tag_policy"`
	ColorOverrides   int      `json:"color_overrides"`
	LexiconEntries   int      `json:"lexicon_entries"`
	MetricsEnabled   bool     `json:"metrics_enabled"`
}

func newConfigView(path string, cfg *config.Config) configView {
	return configView{
		Path:             path,
		LogLevel:         cfg.Log.Level,
		Precedence:       cfg.Extraction.Precedence,
		Predicate:        cfg.Extraction.Predicate,
		Categories:       cfg.Extraction.Categories,
		RenderFormat:     cfg.Render.Format,
		UnknownTagPolicy: cfg.Render.UnknownTagPolicy,
		ColorOverrides:   len(cfg.Render.Colors),
		LexiconEntries:   len(cfg.Lexicon.Entries),
		MetricsEnabled:   cfg.Metrics.Enabled,
	}
}

func (v configView) TableHeaders() []string { return []string{"KEY", "VALUE"} }

func (v configView) TableRows() [][]string {
	path := v.Path
	if path == "" {
		path = "(environment)"
	}
	return [][]string{
		{"path", path},
		{"log.level", v.LogLevel},
		{"extraction.precedence", v.Precedence},
		{"extraction.predicate", v.Predicate},
		{"extraction.categories", strings.Join(v.Categories, ",")},
		{"render.format", v.RenderFormat},
		{"render.unknown_tag_policy", v.UnknownTagPolicy},
		{"render.colors", strconv.Itoa(v.ColorOverrides)},
		{"lexicon.entries", strconv.Itoa(v.LexiconEntries)},
		{"metrics.enabled", strconv.FormatBool(v.MetricsEnabled)},
	}
}

func (v configView) String() string {
	var sb strings.Builder
	for i, row := range v.TableRows() {
		if i > 0 {
			sb.WriteString("\n")
		}
		fmt.Fprintf(&sb, "%s\t%s", row[0], row[1])
	}
	return sb.String()
}

// NewConfigCmd creates the config command.
func NewConfigCmd() *cobra.Command {
	var watch bool

	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show the effective configuration",
		Long: "Prints the configuration after file, environment and defaults are merged.\n" +
			"With --watch the config file is re-read on every change and each valid\n" +
			"reload is printed until the command is interrupted.",
		Example: "  entitylens config\n" +
			"  entitylens --config entitylens.yaml config --watch -o json",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cliCtx, err := GetCLIContext(cmd)
			if err != nil {
				return err
			}
			if err := PrintResult(cmd, newConfigView(cliCtx.ConfigPath, cliCtx.Config)); err != nil {
				return err
			}
			if !watch {
				return nil
			}
			return watchConfig(cmd, cliCtx)
		},
	}

	cmd.Flags().BoolVar(&watch, "watch", false, "keep running and print every valid reload of the config file")
	return cmd
}

// watchConfig prints each valid reload of the config file until the command
// context is done.  Rejected reloads are logged and skipped.
func watchConfig(cmd *cobra.Command, cliCtx *CLIContext) error {
	if cliCtx.ConfigPath == "" {
		return errors.InvalidParam("--watch needs a config file")
	}
	logger := cliCtx.Logger.With(logging.String("path", cliCtx.ConfigPath))

	reloads := make(chan *config.Config, 1)
	onChange := func(cfg *config.Config) {
		// Keep only the newest pending reload.
		select {
		case <-reloads:
		default:
		}
		reloads <- cfg
	}
	onError := func(err error) {
		logger.Warn("config reload rejected", logging.Err(err))
	}
	if err := config.Watch(cliCtx.ConfigPath, onChange, onError); err != nil {
		return err
	}
	logger.Info("watching config file")

	ctx := cmd.Context()
	for {
		select {
		case <-ctx.Done():
			logger.Debug("config watch stopped")
			return nil
		case cfg := <-reloads:
			logger.Info("config reloaded", logging.String("log_level", cfg.Log.Level))
			if err := PrintResult(cmd, newConfigView(cliCtx.ConfigPath, cfg)); err != nil {
				return err
			}
		}
	}
}
