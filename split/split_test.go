package split

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvaluate(t *testing.T) {
	tests := []struct {
		name    string
		feature []float64
		target  []float64
		want    Stats
	}{
		{
			name:    "perfect separation",
			feature: []float64{1, 1, 0},
			target:  []float64{10, 10, 0},
			want:    Stats{CountL: 2, MeanL: 10, SqErrL: 0, CountR: 1, MeanR: 0, SqErrR: 0, MeanOverall: 10, SqErrTotal: 0},
		},
		{
			name:    "both groups with error",
			feature: []float64{1, 0, 0},
			target:  []float64{10, 10, 0},
			want:    Stats{CountL: 1, MeanL: 10, SqErrL: 0, CountR: 2, MeanR: 5, SqErrR: 50, MeanOverall: 7.5, SqErrTotal: 50},
		},
		{
			name:    "unweighted overall mean",
			feature: []float64{1, 0, 0, 0},
			target:  []float64{4, 1, 1, 1},
			want:    Stats{CountL: 1, MeanL: 4, SqErrL: 0, CountR: 3, MeanR: 1, SqErrR: 0, MeanOverall: 2.5, SqErrTotal: 0},
		},
		{
			name:    "errors against rounded mean",
			feature: []float64{1, 1, 1},
			target:  []float64{1, 2, 2},
			want:    Stats{CountL: 3, MeanL: 1.67, SqErrL: 0.67, CountR: 0, MeanR: 0, SqErrR: 0, MeanOverall: 1.67, SqErrTotal: 0.67},
		},
		{
			name:    "zero sum group counts as empty",
			feature: []float64{1, 1, 0, 0},
			target:  []float64{-1, 1, 3, 5},
			want:    Stats{CountL: 2, MeanL: 0, SqErrL: 2, CountR: 2, MeanR: 4, SqErrR: 2, MeanOverall: 4, SqErrTotal: 4},
		},
		{
			name:    "constant disabled feature",
			feature: []float64{0, 0},
			target:  []float64{3, 5},
			want:    Stats{CountL: 0, MeanL: 0, SqErrL: 0, CountR: 2, MeanR: 4, SqErrR: 2, MeanOverall: 4, SqErrTotal: 2},
		},
		{
			name:    "empty partition",
			feature: []float64{},
			target:  []float64{},
			want:    Stats{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Evaluate(tt.feature, tt.target)
			require.NoError(t, err)
			assert.Equal(t, tt.want.CountL, got.CountL)
			assert.Equal(t, tt.want.CountR, got.CountR)
			assert.InDelta(t, tt.want.MeanL, got.MeanL, 1e-9)
			assert.InDelta(t, tt.want.SqErrL, got.SqErrL, 1e-9)
			assert.InDelta(t, tt.want.MeanR, got.MeanR, 1e-9)
			assert.InDelta(t, tt.want.SqErrR, got.SqErrR, 1e-9)
			assert.InDelta(t, tt.want.MeanOverall, got.MeanOverall, 1e-9)
			assert.InDelta(t, tt.want.SqErrTotal, got.SqErrTotal, 1e-9)
			assert.Equal(t, len(tt.target), got.Count())
		})
	}
}

func TestEvaluateCountsCoverAllRows(t *testing.T) {
	target := []float64{3.2, 1.1, 7.9, 4.4, 0, 2.5, 9.75}
	columns := [][]float64{
		{1, 0, 1, 0, 1, 0, 1},
		{0, 0, 0, 0, 0, 0, 0},
		{1, 1, 1, 1, 1, 1, 1},
		{1, 1, 0, 0, 0, 1, 0},
	}
	for _, column := range columns {
		s, err := Evaluate(column, target)
		require.NoError(t, err)
		assert.Equal(t, len(target), s.CountL+s.CountR)
	}
}

func TestEvaluateErrors(t *testing.T) {
	_, err := Evaluate([]float64{1, 0}, []float64{1})
	assert.True(t, errors.Is(err, ErrColumnLengthMismatch))

	_, err = Evaluate([]float64{1, 2, 0}, []float64{1, 2, 3})
	var ve *ValueError
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, 1, ve.Row)
	assert.Equal(t, 2.0, ve.Value)
}

func TestRoundIsIdempotent(t *testing.T) {
	for _, x := range []float64{0, 1.666666, 2.675, 0.125, -3.14159, 1234.5678, 66.66666} {
		once := Round(x)
		assert.Equal(t, once, Round(once), "rounding %v", x)
	}
}

func TestRoundUsesExactBinaryValue(t *testing.T) {
	tests := []struct {
		x    float64
		want float64
	}{
		{1.666666, 1.67},
		{0.125, 0.12},
		{0.375, 0.38},
		{1.115, 1.11},
		{2.675, 2.67},
		{4.445, 4.45},
		{1.555, 1.55},
		{-3.14159, -3.14},
		{66.66666, 66.67},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Round(tt.x), "rounding %v", tt.x)
	}
}

func TestStatsFormatting(t *testing.T) {
	s := Stats{CountL: 1, MeanL: 10, SqErrL: 0, CountR: 2, MeanR: 5, SqErrR: 50, MeanOverall: 7.5, SqErrTotal: 50}
	assert.Equal(t, "[1, 10.0, 0.0, 2, 5.0, 50.0, 7.5, 50.0]", s.String())
	assert.Equal(t, []float64{1, 10, 0, 2, 5, 50, 7.5, 50}, s.Tuple())
	assert.False(t, s.Balanced())
	assert.Equal(t, "0.67", FormatFloat(0.67))
	assert.Equal(t, "-2.0", FormatFloat(-2))
	empty := Stats{CountR: 2, MeanR: 4, SqErrR: 2, MeanOverall: 4, SqErrTotal: 2}
	assert.Equal(t, "[0, 0.0, 0.0, 2, 4.0, 2.0, 4.0, 2.0]", empty.String())
}
