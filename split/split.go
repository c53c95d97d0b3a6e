package split

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pbanos/perfcart/feature"
	"gonum.org/v1/gonum/floats"
)

// Precision is the number of decimal digits means and errors are rounded to.
const Precision = 2

/*
Stats holds the statistics of the split of a target column in two groups:
L (samples with the feature enabled) and R (samples with the feature disabled).
*/
type Stats struct {
	CountL      int
	MeanL       float64
	SqErrL      float64
	CountR      int
	MeanR       float64
	SqErrR      float64
	MeanOverall float64
	SqErrTotal  float64
}

/*
Evaluate takes a feature column and a target column over the same samples
and returns the Stats of splitting the target by the feature values.

A group with no samples, or whose target values sum to zero, gets a mean
of 0. MeanOverall is the mean of both group means when both groups have
non-zero sums, and their sum otherwise.

An error is returned if the columns differ in length or if a feature value
is neither 0 nor 1.
*/
func Evaluate(featureColumn, targetColumn []float64) (Stats, error) {
	if len(featureColumn) != len(targetColumn) {
		return Stats{}, fmt.Errorf("%w: %d feature values, %d target values", ErrColumnLengthMismatch, len(featureColumn), len(targetColumn))
	}
	left := make([]float64, 0, len(targetColumn))
	right := make([]float64, 0, len(targetColumn))
	for i, v := range featureColumn {
		switch v {
		case feature.Enabled:
			left = append(left, targetColumn[i])
		case feature.Disabled:
			right = append(right, targetColumn[i])
		default:
			return Stats{}, &ValueError{Row: i, Value: v}
		}
	}
	sumL, sumR := floats.Sum(left), floats.Sum(right)
	s := Stats{CountL: len(left), CountR: len(right)}
	s.MeanL = Round(groupMean(sumL, len(left)))
	s.MeanR = Round(groupMean(sumR, len(right)))
	s.SqErrL = Round(squaredError(left, s.MeanL))
	s.SqErrR = Round(squaredError(right, s.MeanR))
	s.SqErrTotal = Round(s.SqErrL + s.SqErrR)
	if sumL == 0 || sumR == 0 {
		s.MeanOverall = Round(s.MeanL + s.MeanR)
	} else {
		s.MeanOverall = Round((s.MeanL + s.MeanR) / 2)
	}
	return s, nil
}

/*
Round returns x rounded to Precision decimal digits. The exact binary value
of x is rounded, so 2.675 (stored as 2.67499...) becomes 2.67, and exact
halves like 0.125 go to the even digit.
*/
func Round(x float64) float64 {
	r, err := strconv.ParseFloat(strconv.FormatFloat(x, 'f', Precision, 64), 64)
	if err != nil {
		return x
	}
	return r
}

// a zero sum counts as an empty group
func groupMean(sum float64, count int) float64 {
	if sum == 0 {
		return 0
	}
	return sum / float64(count)
}

func squaredError(values []float64, mean float64) float64 {
	if len(values) == 0 {
		return 0
	}
	dev := make([]float64, len(values))
	copy(dev, values)
	floats.AddConst(-mean, dev)
	return floats.Dot(dev, dev)
}

// Count returns the number of samples in both groups.
func (s Stats) Count() int {
	return s.CountL + s.CountR
}

// Balanced returns whether both groups have the same number of samples.
func (s Stats) Balanced() bool {
	return s.CountL == s.CountR
}

/*
Tuple returns the statistics as a slice in the order
countL, meanL, sqErrL, countR, meanR, sqErrR, meanOverall, sqErrTotal.
*/
func (s Stats) Tuple() []float64 {
	return []float64{
		float64(s.CountL), s.MeanL, s.SqErrL,
		float64(s.CountR), s.MeanR, s.SqErrR,
		s.MeanOverall, s.SqErrTotal,
	}
}

func (s Stats) String() string {
	values := []string{
		strconv.Itoa(s.CountL), FormatFloat(s.MeanL), FormatFloat(s.SqErrL),
		strconv.Itoa(s.CountR), FormatFloat(s.MeanR), FormatFloat(s.SqErrR),
		FormatFloat(s.MeanOverall), FormatFloat(s.SqErrTotal),
	}
	return fmt.Sprintf("[%s]", strings.Join(values, ", "))
}

/*
FormatFloat returns the shortest representation of v that has at least one
decimal digit, so 10 is formatted as "10.0" and 7.5 as "7.5".
*/
func FormatFloat(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.ContainsAny(s, ".NI") {
		s += ".0"
	}
	return s
}
