// Package output writes selected rows in the formats the CLI supports.
package output

import (
	"encoding/base64"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/nsqlite/tsqlite/cell"
	"github.com/nsqlite/tsqlite/internal/tsqlite/styled"
	"github.com/orsinium-labs/enum"
	"github.com/vmihailenco/msgpack/v5"
	"gopkg.in/yaml.v3"
)

// Format is an output format for rows.
type Format enum.Member[string]

var (
	FormatTable   = Format{Value: "table"}
	FormatYAML    = Format{Value: "yaml"}
	FormatMsgpack = Format{Value: "msgpack"}

	Formats = enum.New(FormatTable, FormatYAML, FormatMsgpack)
)

// String returns the name of the format.
func (f Format) String() string {
	return f.Value
}

// ParseFormat returns the format with the given name, ignoring case and
// surrounding spaces.
func ParseFormat(name string) (Format, error) {
	format := Formats.Parse(strings.ToLower(strings.TrimSpace(name)))
	if format == nil {
		return Format{}, fmt.Errorf(
			"invalid output format %q, valid values are: %s",
			name, strings.Join(Formats.Values(), ", "),
		)
	}
	return *format, nil
}

// Write writes the rows selected from tableName to w.
//
// The YAML document has the same shape the load command reads, so a
// selection can be written to a file and loaded back. Blob cells are always
// written in full there; blob only affects the table format.
func Write(w io.Writer, format Format, tableName string, rows cell.Rows, blob cell.BlobFormat) error {
	switch format {
	case FormatTable:
		return writeTable(w, rows, blob)
	case FormatYAML:
		return writeYAML(w, tableName, rows)
	case FormatMsgpack:
		return writeMsgpack(w, tableName, rows)
	}
	return fmt.Errorf("unsupported output format %q", format.Value)
}

func writeTable(w io.Writer, rows cell.Rows, blob cell.BlobFormat) error {
	if len(rows) == 0 {
		_, err := styled.DimmedColor().Fprintln(w, "(no rows)")
		return err
	}

	tw := styled.NewTableWriter(w)

	header := table.Row{}
	for _, name := range rows[0].Columns() {
		header = append(header, name)
	}
	tw.AppendHeader(header)

	for _, row := range rows {
		tr := make(table.Row, 0, len(row))
		for _, f := range row {
			tr = append(tr, f.Value.Render(blob))
		}
		tw.AppendRow(tr)
	}

	tw.Render()
	_, err := styled.DimmedColor().Fprintf(w, "%d row(s)\n", len(rows))
	return err
}

func writeYAML(w io.Writer, tableName string, rows cell.Rows) error {
	seq := &yaml.Node{Kind: yaml.SequenceNode}
	for _, row := range rows {
		mapping := &yaml.Node{Kind: yaml.MappingNode}
		for _, f := range row {
			mapping.Content = append(mapping.Content,
				&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: f.Name},
				ValueNode(f.Value),
			)
		}
		seq.Content = append(seq.Content, mapping)
	}

	doc := &yaml.Node{Kind: yaml.MappingNode, Content: []*yaml.Node{
		{Kind: yaml.ScalarNode, Tag: "!!str", Value: "table"},
		{Kind: yaml.ScalarNode, Tag: "!!str", Value: tableName},
		{Kind: yaml.ScalarNode, Tag: "!!str", Value: "rows"},
		seq,
	}}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encoding yaml: %w", err)
	}
	return enc.Close()
}

// ValueNode returns the YAML scalar for v, tagged with the YAML type that
// loads back into the same kind.
func ValueNode(v cell.Value) *yaml.Node {
	node := &yaml.Node{Kind: yaml.ScalarNode}
	switch v.Kind() {
	case cell.KindInteger:
		node.Tag, node.Value = "!!int", strconv.FormatInt(v.AsInt64(), 10)
	case cell.KindReal:
		node.Tag, node.Value = "!!float", formatFloat(v.AsFloat64())
	case cell.KindText:
		node.Tag, node.Value = "!!str", v.AsText()
	case cell.KindBlob:
		node.Tag, node.Value = "!!binary", base64.StdEncoding.EncodeToString(v.AsBytes())
	default:
		node.Tag, node.Value = "!!null", "null"
	}
	return node
}

// formatFloat keeps a decimal point so the scalar never reads back as an
// integer.
func formatFloat(f float64) string {
	switch {
	case math.IsNaN(f):
		return ".nan"
	case math.IsInf(f, 1):
		return ".inf"
	case math.IsInf(f, -1):
		return "-.inf"
	}

	s := strconv.FormatFloat(f, 'g', -1, 64)
	if !strings.ContainsAny(s, ".e") {
		s += ".0"
	}
	return s
}

// Document is the msgpack representation of a selection.
type Document struct {
	Table   string   `msgpack:"table"`
	Columns []string `msgpack:"columns"`
	Rows    [][]any  `msgpack:"rows"`
}

func writeMsgpack(w io.Writer, tableName string, rows cell.Rows) error {
	doc := Document{Table: tableName, Columns: []string{}, Rows: make([][]any, 0, len(rows))}
	if len(rows) > 0 {
		doc.Columns = rows[0].Columns()
	}

	for _, row := range rows {
		values := make([]any, 0, len(row))
		for _, f := range row {
			values = append(values, nativeValue(f.Value))
		}
		doc.Rows = append(doc.Rows, values)
	}

	if err := msgpack.NewEncoder(w).Encode(doc); err != nil {
		return fmt.Errorf("encoding msgpack: %w", err)
	}
	return nil
}

func nativeValue(v cell.Value) any {
	switch v.Kind() {
	case cell.KindInteger:
		return v.AsInt64()
	case cell.KindReal:
		return v.AsFloat64()
	case cell.KindText:
		return v.AsText()
	case cell.KindBlob:
		return v.AsBytes()
	}
	return nil
}
