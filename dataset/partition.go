/*
Package dataset defines the partitions of configuration samples trees are
grown from, as well as interfaces to load and persist them.
*/
package dataset

import (
	"fmt"

	"github.com/pbanos/perfcart/feature"
	"github.com/pbanos/perfcart/split"
	"gonum.org/v1/gonum/floats"
)

/*
Partition is a set of rows together with the binary features still
available to split them and the name of the target column they measure.
It corresponds to a node of a tree: Label identifies the node and Depth
is its distance to the root.

Partitions are not modified once built: SubsetWith derives new ones.
*/
type Partition struct {
	Label    string
	Depth    int
	Features []string
	Target   string
	IDColumn string
	Rows     []Row
}

/*
New takes a label, a slice of feature names, a target name and a slice of rows
and returns a root partition with them, or an error if a row lacks a value
for a column or has a non-binary value for a feature.
*/
func New(label string, features []string, target string, rows []Row) (*Partition, error) {
	p := &Partition{
		Label:    label,
		Features: features,
		Target:   target,
		Rows:     rows,
	}
	err := p.Validate()
	if err != nil {
		return nil, err
	}
	return p, nil
}

/*
Validate checks every row has a value for all features and the target, and
that feature values are binary. It returns a *MalformedRowError for the first
row that does not.
*/
func (p *Partition) Validate() error {
	for i, r := range p.Rows {
		for _, f := range p.Features {
			v, ok := r.Values[f]
			if !ok {
				return &MalformedRowError{Partition: p.Label, Row: i, Column: f, Missing: true}
			}
			if ok, _ := feature.Valid(f, v); !ok {
				return &MalformedRowError{Partition: p.Label, Row: i, Column: f, Value: v}
			}
		}
		if _, ok := r.Values[p.Target]; !ok {
			return &MalformedRowError{Partition: p.Label, Row: i, Column: p.Target, Missing: true}
		}
	}
	return nil
}

// Count returns the number of rows in the partition
func (p *Partition) Count() int {
	return len(p.Rows)
}

/*
Column takes the name of a column and returns the values of all rows for it,
or a *MalformedRowError if a row has no value for it.
*/
func (p *Partition) Column(name string) ([]float64, error) {
	column := make([]float64, len(p.Rows))
	for i, r := range p.Rows {
		v, ok := r.Values[name]
		if !ok {
			return nil, &MalformedRowError{Partition: p.Label, Row: i, Column: name, Missing: true}
		}
		column[i] = v
	}
	return column, nil
}

// TargetColumn returns the values of all rows for the target.
func (p *Partition) TargetColumn() ([]float64, error) {
	return p.Column(p.Target)
}

/*
Mean returns the mean target value of the partition rounded like split
statistics, or 0 for an empty partition.
*/
func (p *Partition) Mean() (float64, error) {
	if len(p.Rows) == 0 {
		return 0, nil
	}
	target, err := p.TargetColumn()
	if err != nil {
		return 0, err
	}
	return split.Round(floats.Sum(target) / float64(len(target))), nil
}

/*
Columns returns the names of the columns persisted for the partition: the
identifier column if any, then the features and finally the target.
*/
func (p *Partition) Columns() []string {
	columns := make([]string, 0, len(p.Features)+2)
	if p.IDColumn != "" {
		columns = append(columns, p.IDColumn)
	}
	columns = append(columns, p.Features...)
	return append(columns, p.Target)
}

/*
SubsetWith takes a feature criterion and returns the child partition with
the rows that satisfy it. The child no longer has the criterion feature
available, its label is the partition label followed by the side of the
criterion value ("L" for 1, "R" for 0) and its depth is one more than the
partition's.
*/
func (p *Partition) SubsetWith(c feature.Criterion) (*Partition, error) {
	var rows []Row
	for i, r := range p.Rows {
		ok, err := c.SatisfiedBy(r)
		if err != nil {
			return nil, &MalformedRowError{Partition: p.Label, Row: i, Column: c.Feature, Missing: true}
		}
		if ok {
			rows = append(rows, r)
		}
	}
	return &Partition{
		Label:    p.Label + feature.Side(c.Value),
		Depth:    p.Depth + 1,
		Features: p.Without(c.Feature),
		Target:   p.Target,
		IDColumn: p.IDColumn,
		Rows:     rows,
	}, nil
}

// Without returns a new slice with the features of the partition except
// the one with the given name.
func (p *Partition) Without(name string) []string {
	features := make([]string, 0, len(p.Features))
	for _, f := range p.Features {
		if f != name {
			features = append(features, f)
		}
	}
	return features
}

func (p *Partition) String() string {
	return fmt.Sprintf("{Partition %s: %d rows, features %v}", p.Label, len(p.Rows), p.Features)
}
