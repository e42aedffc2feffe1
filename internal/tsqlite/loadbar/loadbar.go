// Package loadbar provides the progress bar shown while fixture rows are
// inserted.
package loadbar

import (
	"io"

	"github.com/schollz/progressbar/v3"
)

// Bar counts inserted rows against a known total.
type Bar struct {
	pb *progressbar.ProgressBar
}

// New returns a bar for maxItems rows that renders to out.
func New(out io.Writer, description string, maxItems int) *Bar {
	pb := progressbar.NewOptions(
		maxItems,
		progressbar.OptionSetWriter(out),
		progressbar.OptionSetDescription(description),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWidth(30),
		progressbar.OptionClearOnFinish(),
	)
	_ = pb.Set(0)

	return &Bar{pb: pb}
}

// Inc marks one more row as inserted.
func (b *Bar) Inc() {
	_ = b.pb.Add(1)
}

// Count returns the number of rows marked so far.
func (b *Bar) Count() int {
	return int(b.pb.State().CurrentNum)
}

// Finish completes the bar, whether or not every row was inserted.
func (b *Bar) Finish() {
	_ = b.pb.Finish()
	_ = b.pb.Close()
}
