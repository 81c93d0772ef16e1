package cli

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/matzehuels/stratalog/pkg/boring"
	"github.com/matzehuels/stratalog/pkg/config"
	recordio "github.com/matzehuels/stratalog/pkg/io"
	"github.com/matzehuels/stratalog/pkg/pipeline"
	"github.com/matzehuels/stratalog/pkg/render/borelog"
	"github.com/matzehuels/stratalog/pkg/render/borelog/scene"
)

// editOpts holds the command-line flags for the edit command.
type editOpts struct {
	record    string // where the edited JSON record is saved
	output    string // where the SVG is saved
	delimiter string // forced delimiter for spreadsheet input
}

// editCommand creates the edit command.
func (c *CLI) editCommand() *cobra.Command {
	var opts editOpts

	cmd := &cobra.Command{
		Use:   "edit <file>",
		Short: "Edit the layers of a boring in the terminal",
		Long: `Edit the layers of a boring in an interactive table. Each change is
validated and re-renders the diagram; saving writes the record as JSON and the
diagram as SVG.

By default the record is saved next to the input as <name>.json (overwriting a
JSON input) and the diagram as <name>.svg.`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeInput,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runEdit(cmd.Context(), args[0], opts)
		},
	}

	cmd.Flags().StringVar(&opts.record, "record", "", "save the edited record to this JSON file")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "save the diagram to this SVG file")
	cmd.Flags().StringVarP(&opts.delimiter, "delimiter", "d", "", "spreadsheet delimiter (detected if empty)")
	_ = cmd.RegisterFlagCompletionFunc("delimiter", completeDelimiters)

	return cmd
}

func (c *CLI) runEdit(ctx context.Context, input string, opts editOpts) error {
	rec, err := c.importRecord(input, opts.delimiter)
	if err != nil {
		return err
	}
	cfg, _, err := config.Resolve(c.configPath)
	if err != nil {
		return err
	}

	base := basePath("", input)
	if opts.record == "" {
		opts.record = base + ".json"
	}
	if opts.output == "" {
		opts.output = base + ".svg"
	}

	d := borelog.New(cfg, borelog.WithLogger(c.Logger))
	d.SetData(rec)

	model := NewEditorModel(d, c.editorSaver(ctx, cfg, opts))
	final, err := tea.NewProgram(model, tea.WithContext(ctx), tea.WithAltScreen()).Run()
	if err != nil {
		return fmt.Errorf("editor: %w", err)
	}

	m, ok := final.(EditorModel)
	if !ok || len(m.Saved) == 0 {
		printInfo("No changes saved")
		return nil
	}
	printSuccess("Saved %s", StyleHighlight.Render(displayID(m.record())))
	for _, p := range m.Saved {
		printFile(p)
	}
	if m.Dirty {
		printWarning("Unsaved changes since the last save were discarded")
	}
	return nil
}

// editorSaver writes the record as JSON and the displayed scene as SVG.
func (c *CLI) editorSaver(ctx context.Context, cfg borelog.Config, opts editOpts) saveFunc {
	return func(rec *boring.Record, s scene.Scene) ([]string, error) {
		if err := recordio.ExportJSON(rec, opts.record); err != nil {
			return nil, err
		}
		artifacts, err := pipeline.Serialize(ctx, s, rec, pipeline.Options{
			Formats: []string{pipeline.FormatSVG},
			Config:  &cfg,
			Logger:  c.Logger,
		})
		if err != nil {
			return nil, err
		}
		if err := writeFile(opts.output, artifacts[pipeline.FormatSVG]); err != nil {
			return nil, err
		}
		c.Logger.Debug("saved edited boring", "record", opts.record, "svg", opts.output)
		return []string{opts.record, opts.output}, nil
	}
}
