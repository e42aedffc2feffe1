package cell

import (
	"fmt"
	"strings"

	"github.com/orsinium-labs/enum"
)

// BlobFormat selects how blob payloads are rendered for diagnostics.
type BlobFormat enum.Member[string]

var (
	// BlobRedacted renders every blob as "<blob>".
	BlobRedacted = BlobFormat{Value: "redacted"}
	// BlobHex renders every byte as two lowercase hex digits, space separated.
	BlobHex = BlobFormat{Value: "hex"}

	BlobFormats = enum.New(BlobRedacted, BlobHex)
)

// String returns the name of the format.
func (f BlobFormat) String() string {
	return f.Value
}

// ParseBlobFormat returns the BlobFormat with the given name.
func ParseBlobFormat(name string) (BlobFormat, error) {
	format := BlobFormats.Parse(strings.ToLower(strings.TrimSpace(name)))
	if format == nil {
		return BlobFormat{}, fmt.Errorf(
			"invalid blob format %q, valid values are: %s",
			name, strings.Join(BlobFormats.Values(), ", "),
		)
	}
	return *format, nil
}

func renderBlob(data []byte, format BlobFormat) string {
	if format != BlobHex {
		return "<blob>"
	}

	var sb strings.Builder
	sb.Grow(len(data) * 3)
	for i, b := range data {
		if i > 0 {
			sb.WriteByte(' ')
		}
		fmt.Fprintf(&sb, "%02x", b)
	}
	return sb.String()
}
