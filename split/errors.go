package split

import "fmt"

// Error represents an error evaluating a split
type Error string

/*
ErrColumnLengthMismatch is the error returned by Evaluate when the feature
and target columns do not have a value for the same number of samples.
*/
const ErrColumnLengthMismatch = Error("feature and target columns differ in length")

func (e Error) Error() string {
	return string(e)
}

/*
ValueError is the error returned by Evaluate when a feature column holds
a value that is not a binary one.
*/
type ValueError struct {
	Row   int
	Value float64
}

func (ve *ValueError) Error() string {
	return fmt.Sprintf("row %d: feature value %v is neither 0 nor 1", ve.Row, ve.Value)
}
