package cell

// Row is one result row in select-list order. Duplicate column names, as
// produced by joins, are kept.
type Row []Field

// Get returns the value of the named column. When the name appears more than
// once the last occurrence wins, matching Map.
func (r Row) Get(name string) (Value, bool) {
	for i := len(r) - 1; i >= 0; i-- {
		if r[i].Name == name {
			return r[i].Value, true
		}
	}
	return Value{}, false
}

// Map returns the row keyed by column name. Duplicate names collapse and the
// last one wins.
func (r Row) Map() map[string]Value {
	m := make(map[string]Value, len(r))
	for _, f := range r {
		m[f.Name] = f.Value
	}
	return m
}

// Columns returns the column names in select-list order.
func (r Row) Columns() []string {
	return Names(r)
}

// Values returns the column values in select-list order.
func (r Row) Values() []Value {
	values := make([]Value, len(r))
	for i, f := range r {
		values[i] = f.Value
	}
	return values
}

// Rows is a result set in the order the engine produced it.
type Rows []Row

// Maps returns every row keyed by column name.
func (rs Rows) Maps() []map[string]Value {
	maps := make([]map[string]Value, len(rs))
	for i, r := range rs {
		maps[i] = r.Map()
	}
	return maps
}
