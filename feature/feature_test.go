package feature

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mapSample map[string]float64

func (ms mapSample) ValueFor(name string) (float64, error) {
	v, ok := ms[name]
	if !ok {
		return 0, fmt.Errorf("no value for %s", name)
	}
	return v, nil
}

func TestValid(t *testing.T) {
	for _, v := range []float64{Enabled, Disabled} {
		ok, err := Valid("A", v)
		assert.True(t, ok)
		assert.NoError(t, err)
	}
	ok, err := Valid("A", 2)
	assert.False(t, ok)
	assert.Error(t, err)
}

func TestSide(t *testing.T) {
	assert.Equal(t, "L", Side(Enabled))
	assert.Equal(t, "R", Side(Disabled))
}

func TestCriterionSatisfiedBy(t *testing.T) {
	c := NewCriterion("A", Enabled)
	ok, err := c.SatisfiedBy(mapSample{"A": 1})
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = c.SatisfiedBy(mapSample{"A": 0})
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = c.SatisfiedBy(mapSample{"B": 1})
	assert.Error(t, err)
	assert.Equal(t, "A is 1", c.String())
}
