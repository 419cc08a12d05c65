package sqlitec

import "database/sql"

// Column is a single named value of a Row. SQL NULL, and values SQLite can not
// render as text, have Value.Valid set to false.
type Column struct {
	Name  string
	Value sql.NullString
}

// Row is one step of a statement, with its columns in statement order.
type Row []Column

// Get returns the value of the first column with the given name.
func (row Row) Get(name string) (sql.NullString, bool) {
	for _, col := range row {
		if col.Name == name {
			return col.Value, true
		}
	}
	return sql.NullString{}, false
}

// Names returns the column names of the row in order.
func (row Row) Names() []string {
	names := make([]string, len(row))
	for i, col := range row {
		names[i] = col.Name
	}
	return names
}

// Map returns the row as a mapping from column name to value. When a name is
// repeated the first column wins.
func (row Row) Map() map[string]sql.NullString {
	values := make(map[string]sql.NullString, len(row))
	for _, col := range row {
		if _, exists := values[col.Name]; !exists {
			values[col.Name] = col.Value
		}
	}
	return values
}

// ResultSet holds every row produced by a statement, in step order.
type ResultSet struct {
	// Columns are the result column names reported after preparing the
	// statement. Empty for statements that return no data.
	Columns []string
	Rows    []Row
}

// Len returns the number of rows.
func (rs ResultSet) Len() int {
	return len(rs.Rows)
}
