package cell

import "github.com/orsinium-labs/enum"

// Kind represents which payload a Value holds.
type Kind enum.Member[string]

var (
	KindInteger = Kind{Value: "integer"}
	KindReal    = Kind{Value: "real"}
	KindText    = Kind{Value: "text"}
	KindBlob    = Kind{Value: "blob"}
	KindNull    = Kind{Value: "null"}

	// Kinds contains every Kind. Code that switches on a Kind is expected to
	// be tested against all of its members.
	Kinds = enum.New(KindInteger, KindReal, KindText, KindBlob, KindNull)
)

// String returns the name of the kind.
func (k Kind) String() string {
	return k.Value
}
