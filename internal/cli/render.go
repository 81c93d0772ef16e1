package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/stratalog/pkg/config"
	"github.com/matzehuels/stratalog/pkg/errors"
	"github.com/matzehuels/stratalog/pkg/observability"
	"github.com/matzehuels/stratalog/pkg/pipeline"
	"github.com/matzehuels/stratalog/pkg/render"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output      string  // output file (single format) or base path (several)
	formats     string  // comma-separated output formats
	scale       float64 // PNG scale factor
	interactive bool    // hover highlighting in SVG
	noClasses   bool    // omit CSS classes from SVG
	title       string  // SVG document title
	delimiter   string  // forced delimiter for spreadsheet input
	refresh     bool    // bypass the cache
}

// renderCommand creates the render command.
func (c *CLI) renderCommand() *cobra.Command {
	var opts renderOpts

	cmd := &cobra.Command{
		Use:   "render <file>",
		Short: "Render a boring log diagram",
		Long: `Render a boring log diagram from a JSON record or a delimited spreadsheet
export (CSV, TSV, semicolon or pipe separated).

Examples:
  stratalog render B-1.csv                       # writes B-1.svg
  stratalog render B-1.json -f svg,pdf -o out/B-1
  stratalog render B-1.csv -c log.toml -f png --scale 3`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeInput,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runRender(cmd, args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&opts.formats, "format", "f", "", "output format(s): svg (default), png, pdf, json (comma-separated)")
	cmd.Flags().Float64Var(&opts.scale, "scale", pipeline.DefaultScale, "PNG scale factor")
	cmd.Flags().BoolVar(&opts.interactive, "interactive", false, "highlight record items on hover (SVG)")
	cmd.Flags().BoolVar(&opts.noClasses, "no-classes", false, "omit CSS classes from SVG output")
	cmd.Flags().StringVar(&opts.title, "title", "", "SVG document title (default \"Boring log <id>\")")
	cmd.Flags().StringVarP(&opts.delimiter, "delimiter", "d", "", "spreadsheet delimiter (detected if empty)")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "bypass the cache")

	_ = cmd.RegisterFlagCompletionFunc("format", completeFormats)
	_ = cmd.RegisterFlagCompletionFunc("delimiter", completeDelimiters)

	return cmd
}

// runRender resolves configuration, runs the pipeline and writes one file
// per format. Flags given on the command line win over the config file.
func (c *CLI) runRender(cmd *cobra.Command, input string, ro renderOpts) error {
	ctx := cmd.Context()

	cfg, out, err := config.Resolve(c.configPath)
	if err != nil {
		return err
	}
	delim, err := parseDelimiter(ro.delimiter)
	if err != nil {
		return err
	}

	opts := pipeline.Options{
		Input:       input,
		Delimiter:   delim,
		Refresh:     ro.refresh,
		Formats:     pipeline.ParseFormats(ro.formats),
		Config:      &cfg,
		Scale:       ro.scale,
		Interactive: ro.interactive,
		NoClasses:   ro.noClasses,
		Title:       ro.title,
		Logger:      c.Logger,
	}
	applyOutputConfig(&opts, out, cmd.Flags().Changed)

	if err := opts.ValidateAndSetDefaults(); err != nil {
		return err
	}
	if opts.NeedsConverter() && !render.Available() {
		return errors.New(errors.ErrCodeUnsupported, "png and pdf output need %s on PATH", render.ConverterBinary)
	}

	if c.Logger.GetLevel() <= LogDebug {
		hooks := observability.NewLogHooks(c.Logger)
		observability.SetPipelineHooks(hooks)
		observability.SetCacheHooks(hooks)
		defer observability.Reset()
	}

	runner, err := c.newRunner()
	if err != nil {
		return err
	}
	defer runner.Close()

	result, err := c.executeWithSpinner(ctx, runner, opts)
	if err != nil {
		return err
	}

	printSuccess("Rendered %s", StyleHighlight.Render(result.Record.Boring.ID))
	printStats(result.Stats.Layers, result.Stats.Samples, result.CacheInfo.RenderHit)
	return writeArtifacts(result.Artifacts, outputPaths(ro.output, input, opts.Formats), opts.Formats)
}

// applyOutputConfig fills render options from the config file's [output]
// section unless the matching flag was given.
func applyOutputConfig(opts *pipeline.Options, out config.Output, changed func(string) bool) {
	if out.Format != "" && !changed("format") {
		opts.Formats = pipeline.ParseFormats(out.Format)
	}
	if out.Scale != nil && !changed("scale") {
		opts.Scale = *out.Scale
	}
	if out.Interactive != nil && !changed("interactive") {
		opts.Interactive = *out.Interactive
	}
}

// executeWithSpinner runs the pipeline behind a spinner that tracks its
// stages. Debug logging would interleave with the animation, so the spinner
// is skipped there.
func (c *CLI) executeWithSpinner(ctx context.Context, runner *pipeline.Runner, opts pipeline.Options) (*pipeline.Result, error) {
	if c.Logger.GetLevel() <= LogDebug {
		return runner.Execute(ctx, opts)
	}
	spinner := newSpinner(ctx, c.stderr, "Starting...")
	observability.SetPipelineHooks(spinner)
	defer observability.Reset()

	spinner.Start()
	result, err := runner.Execute(ctx, opts)
	spinner.Stop()
	if err != nil && !spinner.Cancelled() {
		printError("Could not render %s", opts.Input)
	}
	return result, err
}

// writeArtifacts writes each artifact to its path in format order.
func writeArtifacts(artifacts map[string][]byte, paths map[string]string, formats []string) error {
	for _, format := range formats {
		data, ok := artifacts[format]
		if !ok {
			continue
		}
		path := paths[format]
		if err := writeFile(path, data); err != nil {
			return err
		}
		printFile(path)
	}
	return nil
}

// writeFile writes data to path.
func writeFile(path string, data []byte) error {
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// delimiterNames maps spellings usable on a command line to runes.
var delimiterNames = map[string]rune{
	",": ',', "comma": ',',
	"\t": '\t', `\t`: '\t', "tab": '\t',
	";": ';', "semicolon": ';',
	"|": '|', "pipe": '|',
}

// parseDelimiter resolves the --delimiter flag. Empty means detect.
func parseDelimiter(s string) (rune, error) {
	if s == "" {
		return 0, nil
	}
	if r, ok := delimiterNames[s]; ok {
		return r, nil
	}
	return 0, errors.New(errors.ErrCodeInvalidInput, "unknown delimiter %q (use comma, tab, semicolon or pipe)", s)
}
