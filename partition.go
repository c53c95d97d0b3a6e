package perfcart

import (
	"github.com/pbanos/perfcart/dataset"
	"github.com/pbanos/perfcart/feature"
	"github.com/pbanos/perfcart/split"
)

/*
Candidate is a feature considered to split a partition together with
the statistics of splitting the partition on it.
*/
type Candidate struct {
	Feature string
	Stats   split.Stats
}

/*
Candidates takes a partition and returns a Candidate for every feature
available on it, in the order of its Features. It returns a
*dataset.MalformedRowError or a *split.ValueError if a row lacks a value or
has a non-binary value for a feature.
*/
func Candidates(p *dataset.Partition) ([]Candidate, error) {
	target, err := p.TargetColumn()
	if err != nil {
		return nil, err
	}
	candidates := make([]Candidate, 0, len(p.Features))
	for _, f := range p.Features {
		column, err := p.Column(f)
		if err != nil {
			return nil, err
		}
		s, err := split.Evaluate(column, target)
		if err != nil {
			return nil, err
		}
		candidates = append(candidates, Candidate{Feature: f, Stats: s})
	}
	return candidates, nil
}

/*
Select takes the candidates to split a partition and the number of rows
of the partition and returns the index of the selected candidate, or -1
if there are none.

The first candidate is selected unless a later one has a squared error
lower or equal to the selected one and the partition has more than 2
rows, or exactly 2 and the later candidate splits them one to each side.
Ties go to the last such candidate.
*/
func Select(candidates []Candidate, rows int) int {
	best := -1
	for i, c := range candidates {
		if best < 0 {
			best = i
			continue
		}
		if replaces(c.Stats, candidates[best].Stats, rows) {
			best = i
		}
	}
	return best
}

func replaces(candidate, best split.Stats, rows int) bool {
	if candidate.SqErrTotal > best.SqErrTotal {
		return false
	}
	return rows > 2 || (rows == 2 && candidate.Balanced())
}

/*
Children takes a partition and the name of a feature and returns the
partitions with the rows having the feature enabled (left) and disabled
(right), or a *DegenerateSplitError if either of them has no rows.
*/
func Children(p *dataset.Partition, f string) (*dataset.Partition, *dataset.Partition, error) {
	left, err := p.SubsetWith(feature.NewCriterion(f, feature.Enabled))
	if err != nil {
		return nil, nil, err
	}
	right, err := p.SubsetWith(feature.NewCriterion(f, feature.Disabled))
	if err != nil {
		return nil, nil, err
	}
	for _, c := range []*dataset.Partition{left, right} {
		if c.Count() == 0 {
			return nil, nil, &DegenerateSplitError{Partition: p.Label, Feature: f, Child: c.Label}
		}
	}
	return left, right, nil
}
