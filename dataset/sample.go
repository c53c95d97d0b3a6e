package dataset

import (
	"fmt"
)

/*
Row represents a configuration sample: the optional identifier of the
configuration and the values for its features and measured performance.
*/
type Row struct {
	ID     string
	Values map[string]float64
}

/*
NewRow takes an identifier (which may be empty) and a map of column names
to values and returns a Row with them.
*/
func NewRow(id string, values map[string]float64) Row {
	return Row{ID: id, Values: values}
}

// ValueFor returns the value of the row for the given column or
// an error if the row has no value for it.
func (r Row) ValueFor(name string) (float64, error) {
	v, ok := r.Values[name]
	if !ok {
		return 0, fmt.Errorf("no value for column %s", name)
	}
	return v, nil
}

func (r Row) String() string {
	if r.ID == "" {
		return fmt.Sprintf("[%v]", r.Values)
	}
	return fmt.Sprintf("[%s %v]", r.ID, r.Values)
}
