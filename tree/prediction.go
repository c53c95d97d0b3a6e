package tree

import (
	"fmt"

	"github.com/pbanos/perfcart/split"
)

/*
Prediction represents a performance prediction made by a regression Tree:
the mean target value of the node reached by a sample.
*/
type Prediction struct {
	nodeID string
	mean   float64
	weight int
}

// PredictionError represents an error related with predictions
type PredictionError string

/*
ErrCannotPredictFromSample is the error returned by the Predict method of a tree
when the prediction cannot be made because the tree itself cannot make
a prediction for that kind of sample, as opposed to cases where values
for a feature cannot be obtained for example.
*/
const ErrCannotPredictFromSample = PredictionError("no prediction available for this kind of sample")

/*
ErrCannotPredictFromEmptySet is the error returned when trying to predict
from a node without rows.
*/
const ErrCannotPredictFromEmptySet = PredictionError("cannot make prediction for empty partition")

func (pe PredictionError) Error() string {
	return string(pe)
}

/*
NewPrediction takes the ID of a node, the mean of its target values and the
number of rows from which the mean was computed and returns a prediction
representing those values.
*/
func NewPrediction(nodeID string, mean float64, weight int) *Prediction {
	return &Prediction{nodeID: nodeID, mean: mean, weight: weight}
}

// NewPredictionFromNode returns the prediction of the given node
// or ErrCannotPredictFromEmptySet if it has no rows
func NewPredictionFromNode(n *Node) (*Prediction, error) {
	if n.Count == 0 {
		return nil, ErrCannotPredictFromEmptySet
	}
	return NewPrediction(n.ID, n.Mean, n.Count), nil
}

// PredictedValue returns the predicted performance
func (p *Prediction) PredictedValue() float64 {
	return p.mean
}

// NodeID returns the ID of the node the prediction was made from
func (p *Prediction) NodeID() string {
	return p.nodeID
}

/*
Weight returns the weight of the prediction: an
int equal to the number of rows in the partition from which
the prediction was made
*/
func (p *Prediction) Weight() int {
	return p.weight
}

func (p *Prediction) String() string {
	return fmt.Sprintf("%s (node %s, %d datapoints)", split.FormatFloat(p.mean), p.nodeID, p.weight)
}
