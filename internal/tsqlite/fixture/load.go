package fixture

import (
	"fmt"
	"io"

	"github.com/nsqlite/tsqlite/cell"
	"github.com/nsqlite/tsqlite/internal/tsqlite/loadbar"
)

// Inserter inserts one row into a table. *sqlite.Conn satisfies it.
type Inserter interface {
	Insert(table string, fields []cell.Field) error
}

// Load inserts every row of every fixture in order, rendering progress to
// progress. It stops at the first failed insert and returns the number of
// rows inserted before it.
func Load(db Inserter, fixtures []Fixture, progress io.Writer) (int, error) {
	inserted := 0
	for _, fixture := range fixtures {
		n, err := loadOne(db, fixture, progress)
		inserted += n
		if err != nil {
			return inserted, err
		}
	}
	return inserted, nil
}

func loadOne(db Inserter, fixture Fixture, progress io.Writer) (int, error) {
	bar := loadbar.New(progress, fixture.Table, len(fixture.Rows))
	defer bar.Finish()

	for i, row := range fixture.Rows {
		if err := db.Insert(fixture.Table, row); err != nil {
			return bar.Count(), fmt.Errorf("inserting row %d into %s: %w", i, fixture.Table, err)
		}
		bar.Inc()
	}
	return bar.Count(), nil
}
