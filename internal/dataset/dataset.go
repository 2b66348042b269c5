package dataset

// ColumnType is the declared type of a column, fixed at load time from the
// content of its cells.
type ColumnType int

const (
	// TypeText means every non-missing cell is text.
	TypeText ColumnType = iota
	// TypeNumber means every non-missing cell is numeric.
	TypeNumber
	// TypeMixed means the column holds both text and numeric cells; its
	// role has to be decided by probing (the pandas "object" dtype case).
	TypeMixed
)

// Column is a named dataset column with its declared type.
type Column struct {
	Name string
	Type ColumnType
}

// Row holds one value per column, in column order.
type Row []Value

// Dataset is an ordered, column-homogeneous in-memory table. It is built
// once per analysis run and never mutated afterward.
type Dataset struct {
	Columns []Column
	Rows    []Row
}

// New creates an empty dataset with the given column names. Column types
// are resolved by Seal once rows are loaded.
func New(names []string) *Dataset {
	cols := make([]Column, len(names))
	for i, name := range names {
		cols[i] = Column{Name: name, Type: TypeText}
	}
	return &Dataset{Columns: cols}
}

// AppendRow adds a row. Short rows are padded with missing values so every
// row matches the column count.
func (d *Dataset) AppendRow(values []Value) {
	row := make(Row, len(d.Columns))
	for i := range row {
		if i < len(values) {
			row[i] = values[i]
		} else {
			row[i] = Missing()
		}
	}
	d.Rows = append(d.Rows, row)
}

// Seal resolves each column's declared type from its loaded cells.
func (d *Dataset) Seal() {
	for i := range d.Columns {
		d.Columns[i].Type = d.columnType(i)
	}
}

func (d *Dataset) columnType(idx int) ColumnType {
	var numbers, texts int
	for _, row := range d.Rows {
		switch row[idx].Kind {
		case KindNumber:
			numbers++
		case KindText:
			texts++
		}
	}
	switch {
	case numbers > 0 && texts > 0:
		return TypeMixed
	case numbers > 0:
		return TypeNumber
	default:
		return TypeText
	}
}

// ColumnIndex returns the position of the named column, or -1.
func (d *Dataset) ColumnIndex(name string) int {
	for i, col := range d.Columns {
		if col.Name == name {
			return i
		}
	}
	return -1
}

// Column returns the named column.
func (d *Dataset) Column(name string) (Column, bool) {
	idx := d.ColumnIndex(name)
	if idx < 0 {
		return Column{}, false
	}
	return d.Columns[idx], true
}

// ColumnNames returns the column names in original order.
func (d *Dataset) ColumnNames() []string {
	names := make([]string, len(d.Columns))
	for i, col := range d.Columns {
		names[i] = col.Name
	}
	return names
}

// Values returns the named column's cells in row order, or nil if the
// column does not exist.
func (d *Dataset) Values(name string) []Value {
	idx := d.ColumnIndex(name)
	if idx < 0 {
		return nil
	}
	values := make([]Value, len(d.Rows))
	for i, row := range d.Rows {
		values[i] = row[idx]
	}
	return values
}

// WithColumn returns a copy of the dataset with the column set. A column
// with the same name is replaced in place; otherwise the column is
// appended. The original dataset is left untouched. values must have one
// entry per row.
func (d *Dataset) WithColumn(col Column, values []Value) *Dataset {
	existing := d.ColumnIndex(col.Name)

	width := len(d.Columns)
	if existing < 0 {
		width++
	}
	out := &Dataset{
		Columns: make([]Column, width),
		Rows:    make([]Row, len(d.Rows)),
	}
	copy(out.Columns, d.Columns)

	target := existing
	if target < 0 {
		target = len(d.Columns)
	}
	out.Columns[target] = col

	for i, row := range d.Rows {
		newRow := make(Row, width)
		copy(newRow, row)
		if i < len(values) {
			newRow[target] = values[i]
		} else {
			newRow[target] = Missing()
		}
		out.Rows[i] = newRow
	}
	return out
}

// NumRows returns the number of rows.
func (d *Dataset) NumRows() int {
	return len(d.Rows)
}
