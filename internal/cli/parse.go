package cli

import (
	"bytes"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/stratalog/pkg/boring"
	"github.com/matzehuels/stratalog/pkg/ingest"
	recordio "github.com/matzehuels/stratalog/pkg/io"
)

// parseOpts holds the command-line flags for the parse command.
type parseOpts struct {
	output    string // output file path (stdout if empty)
	delimiter string // forced delimiter (detected if empty)
	table     bool   // print a layer table after writing
}

// parseCommand creates the parse command, which converts a spreadsheet
// export into a JSON record.
func (c *CLI) parseCommand() *cobra.Command {
	var opts parseOpts

	cmd := &cobra.Command{
		Use:   "parse <file>",
		Short: "Convert a spreadsheet export into a JSON boring record",
		Long: `Convert a delimited spreadsheet export into a JSON boring record.

Rows may carry metadata, one layer, one sample, groundwater and well fields in
any combination; they are folded into a single record. Header names are
matched case-insensitively and unknown columns are ignored.

Examples:
  stratalog parse B-1.csv                # JSON to stdout
  stratalog parse B-1.tsv -o B-1.json --table`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeInput,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runParse(args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (stdout if empty)")
	cmd.Flags().StringVarP(&opts.delimiter, "delimiter", "d", "", "field delimiter (detected if empty)")
	cmd.Flags().BoolVar(&opts.table, "table", false, "print the parsed layers as a table")
	_ = cmd.RegisterFlagCompletionFunc("delimiter", completeDelimiters)

	return cmd
}

func (c *CLI) runParse(input string, opts parseOpts) error {
	prog := newProgress(c.Logger)

	rec, err := c.importRecord(input, opts.delimiter)
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Parsed %s", input))

	var buf bytes.Buffer
	if err := recordio.WriteJSON(rec, &buf); err != nil {
		return err
	}

	if opts.output == "" {
		_, err := os.Stdout.Write(buf.Bytes())
		return err
	}
	if err := writeFile(opts.output, buf.Bytes()); err != nil {
		return err
	}

	printSuccess("Parsed %s", StyleHighlight.Render(displayID(rec)))
	printDetail("%s · %s", plural(len(rec.Layers), "layer"), plural(len(rec.Samples), "sample"))
	printFile(opts.output)
	if opts.table && len(rec.Layers) > 0 {
		fmt.Println(layerTable(rec, "ft"))
	}
	printNextStep("Render it", "stratalog render "+opts.output)
	return nil
}

// importRecord loads a JSON record or a delimited spreadsheet.
func (c *CLI) importRecord(path, delimiter string) (*boring.Record, error) {
	delim, err := parseDelimiter(delimiter)
	if err != nil {
		return nil, err
	}
	opts := []ingest.Option{ingest.WithLogger(c.Logger)}
	if delim != 0 {
		opts = append(opts, ingest.WithDelimiter(delim))
	}
	return recordio.Import(path, opts...)
}

// displayID names a record for status output.
func displayID(rec *boring.Record) string {
	if rec.Boring.ID == "" {
		return "(unnamed boring)"
	}
	return rec.Boring.ID
}
