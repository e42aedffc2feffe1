package cell

import "fmt"

// Field is a column name paired with a value. It is used for the SET and
// VALUES lists of write statements and for the named bindings of a WHERE
// clause. Names must be unique within one list.
type Field struct {
	Name  string
	Value Value
}

// F is shorthand for Field{Name: name, Value: value}.
func F(name string, value Value) Field {
	return Field{Name: name, Value: value}
}

// Equal reports whether both fields have the same name and equal values.
func (f Field) Equal(other Field) bool {
	return f.Name == other.Name && f.Value.Equal(other.Value)
}

// String renders the field for diagnostics with blobs redacted.
func (f Field) String() string {
	return f.Render(BlobRedacted)
}

// Render renders the field for diagnostics:
//
//	name: age, value: 12 of type integer
func (f Field) Render(format BlobFormat) string {
	return fmt.Sprintf(
		"name: %s, value: %s of type %s",
		f.Name, f.Value.Render(format), f.Value.Kind(),
	)
}

// Names returns the field names in order.
func Names(fields []Field) []string {
	names := make([]string, len(fields))
	for i, f := range fields {
		names[i] = f.Name
	}
	return names
}
