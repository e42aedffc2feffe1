package cell

import (
	"bytes"
	"strconv"
)

// Value is a single column value. Only the payload matching Kind is
// meaningful, the others stay at their zero values.
//
// A Value is immutable once constructed; the zero Value is Null.
type Value struct {
	kind Kind
	i64  int64
	f64  float64
	text string
	blob []byte
}

// Int returns an integer Value.
func Int(v int64) Value {
	return Value{kind: KindInteger, i64: v}
}

// Real returns a double precision Value.
func Real(v float64) Value {
	return Value{kind: KindReal, f64: v}
}

// Text returns a UTF-8 text Value.
func Text(v string) Value {
	return Value{kind: KindText, text: v}
}

// Blob returns a byte sequence Value. The input is copied, so the caller can
// reuse its buffer. A nil slice becomes an empty blob.
func Blob(v []byte) Value {
	return Value{kind: KindBlob, blob: append([]byte{}, v...)}
}

// Null returns the Value for SQL NULL.
func Null() Value {
	return Value{kind: KindNull}
}

// Kind returns which payload the value holds.
func (v Value) Kind() Kind {
	if v.kind == (Kind{}) {
		return KindNull
	}
	return v.kind
}

// IsNull reports whether the value is NULL.
func (v Value) IsNull() bool {
	return v.Kind() == KindNull
}

// AsInt64 returns the integer payload, 0 for other kinds.
func (v Value) AsInt64() int64 {
	return v.i64
}

// AsFloat64 returns the real payload, 0 for other kinds.
func (v Value) AsFloat64() float64 {
	return v.f64
}

// AsText returns the text payload, "" for other kinds.
func (v Value) AsText() string {
	return v.text
}

// AsBytes returns a copy of the blob payload, nil for other kinds.
func (v Value) AsBytes() []byte {
	if v.Kind() != KindBlob {
		return nil
	}
	return append([]byte{}, v.blob...)
}

// Len returns the blob length in bytes, 0 for other kinds.
func (v Value) Len() int {
	return len(v.blob)
}

// Equal reports whether v and other hold the same kind and the same payload.
// Values of different kinds are never equal, so Int(2) != Text("2").
func (v Value) Equal(other Value) bool {
	if v.Kind() != other.Kind() {
		return false
	}

	switch v.Kind() {
	case KindInteger:
		return v.i64 == other.i64
	case KindReal:
		return v.f64 == other.f64
	case KindText:
		return v.text == other.text
	case KindBlob:
		return bytes.Equal(v.blob, other.blob)
	case KindNull:
		return true
	}

	return false
}

// String returns the payload rendered for diagnostics, with blobs redacted.
func (v Value) String() string {
	return v.Render(BlobRedacted)
}

// Render returns the payload rendered for diagnostics using the given blob
// format.
func (v Value) Render(format BlobFormat) string {
	switch v.Kind() {
	case KindInteger:
		return strconv.FormatInt(v.i64, 10)
	case KindReal:
		return strconv.FormatFloat(v.f64, 'g', -1, 64)
	case KindText:
		return v.text
	case KindBlob:
		return renderBlob(v.blob, format)
	case KindNull:
		return "NULL"
	}

	return ""
}
