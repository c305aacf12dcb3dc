package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"gopkg.in/yaml.v3"
)

const (
	formatTable = "table"
	formatJSON  = "json"
	formatYAML  = "yaml"
)

type printer struct {
	format string
	out    io.Writer
}

func newPrinter(format string, out io.Writer) (*printer, error) {
	switch strings.ToLower(format) {
	case formatTable, formatJSON, formatYAML:
		return &printer{format: strings.ToLower(format), out: out}, nil
	default:
		return nil, fmt.Errorf("unknown output format %q (use table, json or yaml)", format)
	}
}

// print writes v as JSON or YAML, or as a table of header and rows
func (p *printer) print(v interface{}, header []string, rows [][]string) error {
	switch p.format {
	case formatJSON:
		enc := json.NewEncoder(p.out)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case formatYAML:
		// Round trip through JSON so the json tags and custom marshalers decide the keys
		data, err := json.Marshal(v)
		if err != nil {
			return err
		}
		var generic interface{}
		if err := yaml.Unmarshal(data, &generic); err != nil {
			return err
		}
		enc := yaml.NewEncoder(p.out)
		enc.SetIndent(2)
		defer enc.Close()
		return enc.Encode(generic)
	}

	w := tabwriter.NewWriter(p.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, strings.Join(header, "\t"))
	dashes := make([]string, len(header))
	for i, h := range header {
		dashes[i] = strings.Repeat("-", len(h))
	}
	fmt.Fprintln(w, strings.Join(dashes, "\t"))
	for _, row := range rows {
		fmt.Fprintln(w, strings.Join(row, "\t"))
	}
	return w.Flush()
}

// done reports a command without a payload
func (p *printer) done(format string, args ...interface{}) {
	if p.format == formatTable {
		fmt.Fprintf(p.out, format+"\n", args...)
		return
	}
	_ = p.print(map[string]string{"result": fmt.Sprintf(format, args...)}, nil, nil)
}

func optional(v *int64) string {
	if v == nil {
		return "-"
	}
	return fmt.Sprintf("%d", *v)
}
