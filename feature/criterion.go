package feature

import "fmt"

/*
Sample is an interface for something that can satisfy a Criterion.

Its ValueFor method returns the value corresponding to the feature
with the given name or an error if the sample has no such value.
*/
type Sample interface {
	ValueFor(name string) (float64, error)
}

/*
Criterion represents a constraint on a binary feature: the value it must take.
*/
type Criterion struct {
	Feature string
	Value   float64
}

/*
NewCriterion takes the name of a binary feature and a value and returns
a Criterion satisfied by samples having that value for the feature.
*/
func NewCriterion(name string, value float64) Criterion {
	return Criterion{Feature: name, Value: value}
}

/*
SatisfiedBy receives a sample and returns a boolean indicating if the sample
satisfies the criterion. An error is returned if the sample does not define
a value for the feature.
*/
func (c Criterion) SatisfiedBy(s Sample) (bool, error) {
	v, err := s.ValueFor(c.Feature)
	if err != nil {
		return false, err
	}
	return v == c.Value, nil
}

func (c Criterion) String() string {
	return fmt.Sprintf("%s is %v", c.Feature, c.Value)
}
