package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sort"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	v1 "github.com/kubev2v/odata-sql/api/v1"
	"github.com/kubev2v/odata-sql/internal/config"
	"github.com/kubev2v/odata-sql/pkg/sqlformat"
)

const (
	outputText = "text"
	outputJSON = "json"
)

type translateOptions struct {
	table          string
	filter         string
	orderBy        string
	selection      string
	skip           int64
	top            int64
	id             string
	includeDeleted bool
	inlineCount    string
	stringID       bool
	binaryColumns  []string
	combined       bool
	output         string
}

func NewTranslateCommand(cfg *config.Configuration) *cobra.Command {
	opts := &translateOptions{output: outputText}

	cmd := &cobra.Command{
		Use:   "translate",
		Short: "Translate one OData query and print the SQL",
		Example: `  odata-sql translate --table books --filter "price lt 10" --orderby "title desc" --top 5
  odata-sql translate --table movies --flavor sqlite --skip 20 --top 10 --output json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			statements, err := opts.translate(cmd, cfg.Translator)
			if err != nil {
				return err
			}
			return opts.print(cmd.OutOrStdout(), statements)
		},
	}

	registerTranslatorFlags(cmd, &cfg.Translator)

	f := cmd.Flags()
	f.StringVar(&opts.table, "table", "", "table to query")
	f.StringVar(&opts.filter, "filter", "", "$filter expression")
	f.StringVar(&opts.orderBy, "orderby", "", "$orderby list")
	f.StringVar(&opts.selection, "select", "", "comma separated columns")
	f.Int64Var(&opts.skip, "skip", 0, "rows to skip")
	f.Int64Var(&opts.top, "top", 0, "rows to take")
	f.StringVar(&opts.id, "id", "", "restrict the query to one id")
	f.BoolVar(&opts.includeDeleted, "include-deleted", false, "keep soft deleted rows")
	f.StringVar(&opts.inlineCount, "inline-count", "", "set to allpages to add a count statement")
	f.BoolVar(&opts.stringID, "string-id", false, "the id column is a string")
	f.StringSliceVar(&opts.binaryColumns, "binary-columns", nil, "columns compared as base64 binary")
	f.BoolVar(&opts.combined, "combined", false, "also print all statements as one batch")
	f.StringVarP(&opts.output, "output", "o", outputText, "output format (text, json)")

	_ = cmd.MarkFlagRequired("table")

	return cmd
}

func (o *translateOptions) translate(cmd *cobra.Command, t config.Translator) ([]sqlformat.Statement, error) {
	if o.output != outputText && o.output != outputJSON {
		return nil, fmt.Errorf("invalid output: %s", o.output)
	}

	flavor, err := sqlformat.ParseFlavor(t.Flavor)
	if err != nil {
		return nil, err
	}

	query := sqlformat.Query{
		Table:          o.table,
		Filters:        o.filter,
		Ordering:       o.orderBy,
		Selections:     o.selection,
		IncludeDeleted: o.includeDeleted,
		InlineCount:    o.inlineCount,
	}
	if cmd.Flags().Changed("skip") {
		query.Skip = &o.skip
	}
	if cmd.Flags().Changed("top") {
		query.Take = &o.top
	}
	if t.ResultLimit > 0 {
		query.ResultLimit = &t.ResultLimit
	}
	if o.id != "" {
		query.ID = o.id
	}

	tableCfg := sqlformat.TableConfig{
		Flavor:        flavor,
		Schema:        t.Schema,
		SoftDelete:    t.SoftDelete,
		HasStringID:   o.stringID,
		BinaryColumns: o.binaryColumns,
	}

	return sqlformat.Format(query, tableCfg, sqlformat.WithParameterPrefix(t.ParameterPrefix))
}

func (o *translateOptions) print(w io.Writer, statements []sqlformat.Statement) error {
	if len(statements) == 0 {
		return errors.New("no statements produced")
	}

	if o.output == outputJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v1.NewTranslateResponse(statements, o.combined))
	}

	header := color.New(color.FgCyan, color.Bold)
	sqlText := color.New(color.FgGreen)
	param := color.New(color.FgYellow)

	for i, s := range statements {
		header.Fprintf(w, "-- statement %d\n", i+1)
		sqlText.Fprintln(w, s.SQL)
		printParameters(w, param, s.Parameters)
	}

	if o.combined {
		c := sqlformat.CombineStatements(statements)
		header.Fprintln(w, "-- combined")
		sqlText.Fprintln(w, c.SQL)
		printParameters(w, param, c.Parameters)
	}

	return nil
}

func printParameters(w io.Writer, c *color.Color, params []sqlformat.Parameter) {
	sorted := append([]sqlformat.Parameter(nil), params...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Position < sorted[j].Position })

	for _, p := range sorted {
		typ := fmt.Sprintf("%T", p.Value)
		if p.Type != "" {
			typ = p.Type
		}
		c.Fprintf(w, "   @%s = %v (%s)\n", p.Name, p.Value, typ)
	}
}
