package dataset

import "fmt"

/*
MalformedRowError is the error returned when a row lacks a value for one
of the columns of its partition, or has a value other than 0 or 1 for a
binary feature.
*/
type MalformedRowError struct {
	Partition string
	Row       int
	Column    string
	Value     float64
	Missing   bool
}

func (e *MalformedRowError) Error() string {
	if e.Missing {
		return fmt.Sprintf("partition %s: row %d: missing value for column %s", e.Partition, e.Row, e.Column)
	}
	return fmt.Sprintf("partition %s: row %d: value %v for feature %s is neither 0 nor 1", e.Partition, e.Row, e.Value, e.Column)
}
