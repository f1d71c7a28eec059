package cli

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/turtacn/entitylens/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/entitylens/internal/intelligence/entity_span"
	"github.com/turtacn/entitylens/internal/intelligence/render"
	"github.com/turtacn/entitylens/pkg/errors"
)

// HighlightOptions holds the highlight command flags.
type HighlightOptions struct {
	Text        string
	Files       []string
	Concurrency int
	Names       []string
	NamesFile   string
	NamesTag    string
	Inflect     bool
	TokensFile  string
	Categories  []string
	Format      string
	Precedence  string
	Raw         bool
}

// HighlightOutput is the structured result printed with --output json.
type HighlightOutput struct {
	*entity_span.Result
	Document string `json:"document,omitempty"`
	Format   string `json:"format"`
	Markup   string `json:"markup"`
}

func (o HighlightOutput) String() string { return o.Markup }

// BatchOutput is printed when several files are highlighted at once.
type BatchOutput struct {
	Documents []HighlightOutput `json:"documents"`
	Failed    []string          `json:"failed,omitempty"`
}

func (o BatchOutput) String() string {
	var sb strings.Builder
	for i, d := range o.Documents {
		if i > 0 {
			sb.WriteString("\n")
		}
		fmt.Fprintf(&sb, "==> %s <==\n%s\n", d.Document, d.Markup)
	}
	return strings.TrimSuffix(sb.String(), "\n")
}

// NewHighlightCmd creates the highlight command.
func NewHighlightCmd() *cobra.Command {
	opts := &HighlightOptions{}

	cmd := &cobra.Command{
		Use:   "highlight",
		Short: "Highlight entities in a text",
		Long: "Reads a text from --text, --file or stdin, matches the given names and\n" +
			"tagger tokens, and prints the annotated text.  --file may be repeated to\n" +
			"highlight several documents concurrently with the same names.\n\n" +
			"Token files are JSON arrays of {\"offset\", \"text\", \"tags\"} objects with\n" +
			"byte offsets into the same text.",
		Example: "  entitylens highlight --text 'Visit Paris, France.' --names Paris,France --names-tag GPE\n" +
			"  entitylens highlight --file story.txt --tokens story.tokens.json --categories TIME,MOVEMENT --format ansi\n" +
			"  entitylens highlight --file a.txt --file b.txt --names-file places.txt --concurrency 4",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHighlight(cmd, opts)
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.Text, "text", "", "text to highlight")
	f.StringArrayVarP(&opts.Files, "file", "f", nil, "read the text from a file, repeatable (\"-\" for stdin)")
	f.IntVar(&opts.Concurrency, "concurrency", 0, "documents highlighted in parallel with several --file (default GOMAXPROCS)")
	f.StringSliceVar(&opts.Names, "names", nil, "comma-separated names to match")
	f.StringVar(&opts.NamesFile, "names-file", "", "file with one name per line")
	f.StringVar(&opts.NamesTag, "names-tag", "", "tag for name matches (default from config)")
	f.BoolVar(&opts.Inflect, "inflect", false, "also match plurals and lemmas of the names")
	f.StringVar(&opts.TokensFile, "tokens", "", "JSON file of tagger tokens")
	f.StringSliceVar(&opts.Categories, "categories", nil, "semantic categories to extract from tokens (default from config)")
	f.StringVar(&opts.Format, "format", "", "render format: html, ansi or json (default from config)")
	f.StringVar(&opts.Precedence, "precedence", "", "offset collision policy: last, first or longest (default from config)")
	f.BoolVar(&opts.Raw, "raw", false, "do not HTML-escape text")
	cmd.MarkFlagsMutuallyExclusive("text", "file")

	return cmd
}

func runHighlight(cmd *cobra.Command, opts *HighlightOptions) error {
	cliCtx, err := GetCLIContext(cmd)
	if err != nil {
		return err
	}
	cfg := cliCtx.Config
	logger := cliCtx.Logger.Named("highlight")

	if len(opts.Files) > 1 && opts.TokensFile != "" {
		return errors.InvalidParam("--tokens applies to a single text").
			WithDetail(fmt.Sprintf("files=%d", len(opts.Files)))
	}

	sources, err := buildSources(cliCtx, opts)
	if err != nil {
		return err
	}

	palette, err := buildPalette(cfg.Render)
	if err != nil {
		return err
	}
	format := opts.Format
	if format == "" {
		format = cfg.Render.Format
	}
	r, err := render.New(format, palette, render.Options{RawText: opts.Raw || cfg.Render.RawText, Indent: true})
	if err != nil {
		return err
	}
	r = render.Instrument(r, cliCtx.Metrics)

	h := entity_span.NewHighlighter(cliCtx.Logger, cliCtx.Metrics)

	if len(opts.Files) > 1 {
		return runHighlightBatch(cmd, opts, h, r, sources, logger)
	}

	text, err := readText(cmd, opts)
	if err != nil {
		return err
	}
	logger.Debug("sources ready", logging.Int("count", len(sources)), logging.Int("text_bytes", len(text)))

	result, err := h.Highlight(text, sources...)
	if err != nil {
		return err
	}
	out, err := renderResult(r, result, logger)
	if err != nil {
		return err
	}
	return PrintResult(cmd, out)
}

func runHighlightBatch(cmd *cobra.Command, opts *HighlightOptions, h *entity_span.Highlighter,
	r render.Renderer, sources []entity_span.Source, logger logging.Logger) error {
	docs := make([]entity_span.Document, 0, len(opts.Files))
	for _, path := range opts.Files {
		text, err := readFile(cmd, path)
		if err != nil {
			return err
		}
		docs = append(docs, entity_span.Document{ID: path, Text: text, Sources: sources})
	}

	batch, err := h.HighlightBatch(cmd.Context(), docs, opts.Concurrency)
	if err != nil {
		// Cancelled documents are listed as failed below.
		logger.Warn("batch interrupted", logging.Err(err))
	}

	var out BatchOutput
	for _, d := range batch.Results {
		if d.Err != nil {
			logger.Warn("document failed", logging.String("document", d.ID), logging.Err(d.Err))
			out.Failed = append(out.Failed, d.ID)
			continue
		}
		ho, err := renderResult(r, d.Result, logger)
		if err != nil {
			return err
		}
		ho.Document = d.ID
		out.Documents = append(out.Documents, ho)
	}

	if err := PrintResult(cmd, out); err != nil {
		return err
	}
	if batch.Failed > 0 {
		return errors.Wrap(batch.FirstError(), errors.CodeUnknown,
			fmt.Sprintf("%d of %d documents failed", batch.Failed, len(docs)))
	}
	return nil
}

func renderResult(r render.Renderer, result *entity_span.Result, logger logging.Logger) (HighlightOutput, error) {
	markup, err := r.Render(result.Spans)
	if err != nil {
		logger.Error("render failed", logging.String("format", r.Name()), logging.Err(err))
		return HighlightOutput{}, err
	}
	logger.Info("highlighted",
		logging.String("run_id", result.ID),
		logging.Int("entities", len(result.Entities)),
		logging.Int("dropped", result.Dropped),
	)
	return HighlightOutput{Result: result, Format: r.Name(), Markup: markup}, nil
}

// readText returns --text, the --file contents or stdin, in that order.
func readText(cmd *cobra.Command, opts *HighlightOptions) (string, error) {
	if cmd.Flags().Changed("text") {
		return opts.Text, nil
	}
	path := "-"
	if len(opts.Files) == 1 {
		path = opts.Files[0]
	}
	return readFile(cmd, path)
}

// readFile reads path, or stdin for "-".
func readFile(cmd *cobra.Command, path string) (string, error) {
	if path != "-" {
		b, err := os.ReadFile(path)
		if err != nil {
			return "", errors.Wrap(err, errors.ErrCodeNotFound, "cannot read text file").WithDetail("path=" + path)
		}
		return string(b), nil
	}
	b, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return "", errors.Wrap(err, errors.ErrCodeBadRequest, "cannot read stdin")
	}
	return string(b), nil
}

// buildSources assembles name and token sources.  Name sources come first so
// they win offset collisions against tagger output.
func buildSources(cliCtx *CLIContext, opts *HighlightOptions) ([]entity_span.Source, error) {
	cfg := cliCtx.Config

	precedenceName := opts.Precedence
	if precedenceName == "" {
		precedenceName = cfg.Extraction.Precedence
	}
	precedence, err := parsePrecedence(precedenceName)
	if err != nil {
		return nil, err
	}

	names := append([]string(nil), opts.Names...)
	if opts.NamesFile != "" {
		fromFile, err := readNamesFile(opts.NamesFile)
		if err != nil {
			return nil, err
		}
		names = append(names, fromFile...)
	}

	var sources []entity_span.Source
	if len(names) > 0 {
		tag := opts.NamesTag
		if tag == "" {
			tag = cfg.Extraction.NamesTag
		}
		sources = append(sources, &entity_span.NameListSource{Names: names, Tag: tag, Precedence: precedence})

		if opts.Inflect {
			sources = append(sources, &entity_span.InflectedNameListSource{
				NameListSource: entity_span.NameListSource{
					Names:      names,
					Tag:        cfg.Extraction.InflectedTag,
					Precedence: precedence,
				},
				Inflector: buildInflector(cfg.Lexicon),
			})
		}
	}

	if opts.TokensFile != "" {
		tokens, err := readTokensFile(opts.TokensFile)
		if err != nil {
			return nil, err
		}
		predicate, err := parsePredicate(cfg.Extraction.Predicate)
		if err != nil {
			return nil, err
		}
		categories := opts.Categories
		if len(categories) == 0 {
			categories = cfg.Extraction.Categories
		}
		sources = append(sources, &entity_span.SemanticSource{
			Tokens:     tokens,
			Categories: categories,
			Predicate:  predicate,
			Precedence: precedence,
		})
	}

	if len(sources) == 0 {
		return nil, errors.InvalidParam("nothing to highlight").
			WithDetail("pass --names, --names-file or --tokens")
	}
	return sources, nil
}

// readNamesFile returns the non-blank lines of path.  Lines are kept
// untrimmed apart from the line break.
func readNamesFile(path string) ([]string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeNotFound, "cannot read names file").WithDetail("path=" + path)
	}
	var names []string
	sc := bufio.NewScanner(bytes.NewReader(b))
	for sc.Scan() {
		line := strings.TrimRight(sc.Text(), "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		names = append(names, line)
	}
	if err := sc.Err(); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeBadRequest, "cannot scan names file").WithDetail("path=" + path)
	}
	return names, nil
}

func readTokensFile(path string) ([]entity_span.TaggedToken, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeNotFound, "cannot read tokens file").WithDetail("path=" + path)
	}
	var tokens []entity_span.TaggedToken
	if err := json.Unmarshal(b, &tokens); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeTokenDecode, "cannot decode tokens file").WithDetail("path=" + path)
	}
	for i, t := range tokens {
		if t.Offset < 0 {
			return nil, errors.New(errors.ErrCodeTokenDecode, "negative token offset").
				WithDetail(fmt.Sprintf("path=%s index=%d", path, i))
		}
	}
	return tokens, nil
}
