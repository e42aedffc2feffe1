// Package fieldarg parses command line field arguments into cell fields.
//
// A field argument has the form name=kind:value where kind is one of int,
// real, text, hex, file or null. Without a known kind prefix the whole value
// is text, so url=http://example.com is the text "http://example.com".
//
//	age=int:42
//	ratio=real:0.5
//	name=Mickey Mouse
//	avatar=file:./mickey.png
//	checksum=hex:de ad be ef
//	notes=null:
package fieldarg

import (
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/nsqlite/tsqlite/cell"
)

// Kind prefixes accepted before the value.
const (
	KindInt  = "int"
	KindReal = "real"
	KindText = "text"
	KindHex  = "hex"
	KindFile = "file"
	KindNull = "null"
)

var errMissingName = errors.New("missing field name")

// Parse parses one field argument.
func Parse(arg string) (cell.Field, error) {
	name, raw, ok := strings.Cut(arg, "=")
	name = strings.TrimSpace(name)
	if !ok {
		return cell.Field{}, fmt.Errorf("field %q: expected name=value", arg)
	}
	if name == "" {
		return cell.Field{}, fmt.Errorf("field %q: %w", arg, errMissingName)
	}

	value, err := parseValue(raw)
	if err != nil {
		return cell.Field{}, fmt.Errorf("field %q: %w", name, err)
	}
	return cell.F(name, value), nil
}

// ParseAll parses every argument, stopping at the first invalid one.
func ParseAll(args []string) ([]cell.Field, error) {
	fields := make([]cell.Field, 0, len(args))
	for _, arg := range args {
		f, err := Parse(arg)
		if err != nil {
			return nil, err
		}
		fields = append(fields, f)
	}
	return fields, nil
}

func parseValue(raw string) (cell.Value, error) {
	kind, value, ok := strings.Cut(raw, ":")
	if !ok {
		return cell.Text(raw), nil
	}

	switch kind {
	case KindInt:
		i, err := parseInt(strings.TrimSpace(value))
		if err != nil {
			return cell.Value{}, fmt.Errorf("invalid int %q", value)
		}
		return cell.Int(i), nil

	case KindReal:
		f, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
		if err != nil {
			return cell.Value{}, fmt.Errorf("invalid real %q", value)
		}
		return cell.Real(f), nil

	case KindText:
		return cell.Text(value), nil

	case KindHex:
		digits := strings.Join(strings.Fields(value), "")
		digits = strings.TrimPrefix(strings.TrimPrefix(digits, "0x"), "0X")
		data, err := hex.DecodeString(digits)
		if err != nil {
			return cell.Value{}, fmt.Errorf("invalid hex %q: %w", value, err)
		}
		return cell.Blob(data), nil

	case KindFile:
		data, err := os.ReadFile(value)
		if err != nil {
			return cell.Value{}, fmt.Errorf("reading blob: %w", err)
		}
		return cell.Blob(data), nil

	case KindNull:
		if value != "" {
			return cell.Value{}, fmt.Errorf("null takes no value, got %q", value)
		}
		return cell.Null(), nil
	}

	return cell.Text(raw), nil
}

// parseInt reads a decimal integer, or hexadecimal after a 0x prefix. A
// leading zero stays decimal.
func parseInt(s string) (int64, error) {
	sign, digits := "", s
	if strings.HasPrefix(digits, "-") || strings.HasPrefix(digits, "+") {
		sign, digits = digits[:1], digits[1:]
	}
	if strings.HasPrefix(digits, "0x") || strings.HasPrefix(digits, "0X") {
		return strconv.ParseInt(sign+digits[2:], 16, 64)
	}
	return strconv.ParseInt(s, 10, 64)
}
