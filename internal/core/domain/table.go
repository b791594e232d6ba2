package domain

// =============================================================================
// Table
// =============================================================================

// Table is the ordered, read-only set of records loaded at startup.
//
// Row order is fixed at construction and defines pagination order. A Table
// has no mutators, so it is safe to share between goroutines.
type Table struct {
	records []Record
}

// NewTable builds a table from records, copying them so later changes to
// the input do not leak into the table.
func NewTable(records []Record) *Table {
	rows := make([]Record, len(records))
	for i, r := range records {
		rows[i] = r.Clone()
	}
	return &Table{records: rows}
}

// Len returns the number of records. A nil table is empty.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.records)
}

// At returns the record at position i.
func (t *Table) At(i int) Record {
	return t.records[i]
}

// Records returns all records in table order.
func (t *Table) Records() []Record {
	return t.Filter(nil)
}

// Filter returns the records for which match returns true, in table order.
// A nil match selects every record. The returned slice is freshly
// allocated; Extra maps are shared with the table and must not be modified.
// Use Record.Clone before handing records to code that may change them.
func (t *Table) Filter(match func(Record) bool) []Record {
	if t == nil {
		return []Record{}
	}
	out := make([]Record, 0)
	for _, r := range t.records {
		if match == nil || match(r) {
			out = append(out, r)
		}
	}
	return out
}
