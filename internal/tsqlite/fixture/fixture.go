// Package fixture reads YAML table fixtures and inserts them row by row.
//
// A fixture file holds one or more YAML documents of the form
//
//	table: contacts
//	rows:
//	  - name: Mickey Mouse
//	    age: 12
//	    avatar: !!binary R0lGODlhAQABAAAAACw=
//	    notes: null
//
// Scalar tags decide the cell kind: !!int, !!float, !!str, !!binary and
// !!null map to the matching kind and !!bool is stored as 0 or 1. Any other
// scalar, such as a timestamp, is stored as text.
package fixture

import (
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/nsqlite/tsqlite/cell"
	"gopkg.in/yaml.v3"
)

// Fixture is the set of rows to insert into one table.
type Fixture struct {
	Table string
	Rows  []cell.Row
}

type document struct {
	Table string      `yaml:"table"`
	Rows  []yaml.Node `yaml:"rows"`
}

// ReadFile reads every fixture in the YAML file at path.
func ReadFile(path string) ([]Fixture, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	fixtures, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}
	return fixtures, nil
}

// Read reads every fixture document in r.
func Read(r io.Reader) ([]Fixture, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	fixtures := []Fixture{}
	for {
		var doc document
		if err := dec.Decode(&doc); err != nil {
			if errors.Is(err, io.EOF) {
				return fixtures, nil
			}
			return nil, err
		}

		fixture, err := doc.fixture(len(fixtures))
		if err != nil {
			return nil, err
		}
		fixtures = append(fixtures, fixture)
	}
}

func (doc document) fixture(index int) (Fixture, error) {
	if strings.TrimSpace(doc.Table) == "" {
		return Fixture{}, fmt.Errorf("document %d: missing table", index)
	}

	fixture := Fixture{Table: doc.Table, Rows: make([]cell.Row, 0, len(doc.Rows))}
	for i := range doc.Rows {
		row, err := decodeRow(&doc.Rows[i])
		if err != nil {
			return Fixture{}, fmt.Errorf("table %s row %d: %w", doc.Table, i, err)
		}
		fixture.Rows = append(fixture.Rows, row)
	}
	return fixture, nil
}

func decodeRow(node *yaml.Node) (cell.Row, error) {
	node = resolveAlias(node)
	if node.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("line %d: expected a mapping of column to value", node.Line)
	}
	if len(node.Content) == 0 {
		return nil, fmt.Errorf("line %d: empty row", node.Line)
	}

	row := make(cell.Row, 0, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		key := resolveAlias(node.Content[i])
		if key.Kind != yaml.ScalarNode || key.Value == "" {
			return nil, fmt.Errorf("line %d: invalid column name", key.Line)
		}

		value, err := DecodeValue(node.Content[i+1])
		if err != nil {
			return nil, fmt.Errorf("column %s: %w", key.Value, err)
		}
		row = append(row, cell.F(key.Value, value))
	}
	return row, nil
}

// DecodeValue converts a YAML scalar into a cell value according to its tag.
func DecodeValue(node *yaml.Node) (cell.Value, error) {
	node = resolveAlias(node)
	if node.Kind != yaml.ScalarNode {
		return cell.Value{}, fmt.Errorf("line %d: nested values are not supported", node.Line)
	}

	switch node.ShortTag() {
	case "!!int":
		var i int64
		if err := node.Decode(&i); err != nil {
			return cell.Value{}, err
		}
		return cell.Int(i), nil

	case "!!float":
		var f float64
		if err := node.Decode(&f); err != nil {
			return cell.Value{}, err
		}
		return cell.Real(f), nil

	case "!!bool":
		var b bool
		if err := node.Decode(&b); err != nil {
			return cell.Value{}, err
		}
		if b {
			return cell.Int(1), nil
		}
		return cell.Int(0), nil

	case "!!binary":
		data, err := base64.StdEncoding.DecodeString(strings.Join(strings.Fields(node.Value), ""))
		if err != nil {
			return cell.Value{}, fmt.Errorf("line %d: invalid base64: %w", node.Line, err)
		}
		return cell.Blob(data), nil

	case "!!null":
		return cell.Null(), nil
	}

	return cell.Text(node.Value), nil
}

func resolveAlias(node *yaml.Node) *yaml.Node {
	for node.Kind == yaml.AliasNode && node.Alias != nil {
		node = node.Alias
	}
	return node
}
