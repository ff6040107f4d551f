// Package cli renders command results as tables, JSON or YAML.
package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"gopkg.in/yaml.v3"
)

// OutputFormat represents the output format for CLI commands
type OutputFormat string

const (
	OutputFormatTable OutputFormat = "table"
	OutputFormatJSON  OutputFormat = "json"
	OutputFormatYAML  OutputFormat = "yaml"
)

// ParseFormat validates a --output value.
func ParseFormat(s string) (OutputFormat, error) {
	switch f := OutputFormat(strings.ToLower(strings.TrimSpace(s))); f {
	case OutputFormatTable, OutputFormatJSON, OutputFormatYAML:
		return f, nil
	case "":
		return OutputFormatTable, nil
	default:
		return "", fmt.Errorf("unsupported output format %q (table, json, yaml)", s)
	}
}

// Table is the tabular rendering of a result.
type Table struct {
	Header []string
	Rows   [][]string
}

// Printer writes results in one output format.
type Printer struct {
	format OutputFormat
	out    io.Writer
}

// NewPrinter creates a printer writing to out.
func NewPrinter(format OutputFormat, out io.Writer) *Printer {
	return &Printer{format: format, out: out}
}

// Print writes v as JSON or YAML, or calls tbl for the table format.
func (p *Printer) Print(v interface{}, tbl func() Table) error {
	switch p.format {
	case OutputFormatJSON:
		data, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode JSON: %w", err)
		}
		_, err = fmt.Fprintln(p.out, string(data))
		return err
	case OutputFormatYAML:
		return p.printYAML(v)
	default:
		p.printTable(tbl())
		return nil
	}
}

// printYAML goes through JSON so field names follow the json tags of API types.
func (p *Printer) printYAML(v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode: %w", err)
	}
	var generic interface{}
	if err := json.Unmarshal(data, &generic); err != nil {
		return fmt.Errorf("failed to parse JSON: %w", err)
	}
	yamlData, err := yaml.Marshal(generic)
	if err != nil {
		return fmt.Errorf("failed to convert to YAML: %w", err)
	}
	_, err = fmt.Fprint(p.out, string(yamlData))
	return err
}

func (p *Printer) printTable(t Table) {
	if len(t.Rows) == 0 {
		fmt.Fprintln(p.out, text.FgYellow.Sprint("No items found"))
		return
	}

	w := table.NewWriter()
	w.SetOutputMirror(p.out)
	w.SetStyle(table.StyleRounded)

	header := make(table.Row, len(t.Header))
	for i, h := range t.Header {
		header[i] = h
	}
	w.AppendHeader(header)

	for _, r := range t.Rows {
		row := make(table.Row, len(r))
		for i, c := range r {
			row[i] = cellValue(c)
		}
		w.AppendRow(row)
	}
	w.Render()
}

func cellValue(s string) interface{} {
	if s == "" {
		return text.FgHiBlack.Sprint("-")
	}
	return s
}

// KeyValue builds a two column table from ordered pairs.
func KeyValue(pairs ...[2]string) Table {
	t := Table{Header: []string{"Field", "Value"}}
	for _, p := range pairs {
		t.Rows = append(t.Rows, []string{p[0], p[1]})
	}
	return t
}
