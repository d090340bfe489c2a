package model

// Row maps column names to scalar values.
type Row map[string]any

// RowSet is the fully materialized result of one SQL execution: an ordered
// sequence of rows sharing one ordered column list.
type RowSet struct {
	Columns []string
	Rows    []Row
}

// Len returns the number of rows.
func (rs *RowSet) Len() int {
	if rs == nil {
		return 0
	}
	return len(rs.Rows)
}

// Head returns a new RowSet holding at most n rows. The underlying rows are
// shared, not copied; callers must treat them as read-only.
func (rs *RowSet) Head(n int) *RowSet {
	if rs == nil {
		return &RowSet{}
	}
	if n < 0 {
		n = 0
	}
	if n > len(rs.Rows) {
		n = len(rs.Rows)
	}
	return &RowSet{Columns: rs.Columns, Rows: rs.Rows[:n]}
}
