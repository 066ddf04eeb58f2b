package model

// FilterSelection maps a column name to the set of values the user wants to
// keep. A column absent from the map, or mapped to an empty slice, imposes
// no constraint on that column.
type FilterSelection map[string][]interface{}

// Active reports whether any column has a non-empty selection.
func (f FilterSelection) Active() bool {
	for _, vals := range f {
		if len(vals) > 0 {
			return true
		}
	}
	return false
}

// ColumnDomain describes one filterable column and its distinct values,
// sorted ascending.
type ColumnDomain struct {
	Name   string        `json:"name"`
	Values []interface{} `json:"values"`
}
