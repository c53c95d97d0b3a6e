package tree

import (
	"fmt"

	"github.com/pbanos/perfcart/feature"
	"github.com/pbanos/perfcart/split"
)

// LeafReason tells why a node was not split
type LeafReason string

const (
	// NoFeatures marks nodes whose partition had no features left to split on
	NoFeatures = LeafReason("no features")
	// SingleRow marks nodes whose partition had a single row
	SingleRow = LeafReason("single row")
)

/*
Node is a node of the tree
*/
type Node struct {
	// An ID to identify the node, the label of its partition
	ID string
	// The ID for the parent of the node in the tree
	ParentID string
	// The distance from the node to the root of the tree
	Depth int
	// An slice with the IDs of the nodes directly under this node,
	// the left subtree (feature enabled) first.
	SubtreeIDs []string
	// The number of rows in the partition of the node
	Count int
	// The mean target value of the rows in the partition of the node
	Mean float64
	// The constraint this node imposes on samples: the criterion that
	// applied to the parent node's partition produces this node's partition.
	// It is nil for the root.
	FeatureCriterion *feature.Criterion
	// The feature whose values split the node into its subtrees
	SplitFeature string
	// The statistics of the split on SplitFeature
	Stats *split.Stats
	// Why the node was not split, if it is a leaf
	LeafReason LeafReason
	// The error that aborted the exploration of the node, if any
	Error string
}

// IsLeaf returns whether the node has no subtrees
func (n *Node) IsLeaf() bool {
	return len(n.SubtreeIDs) == 0
}

// Summary returns a one-line description of the node
func (n *Node) Summary() string {
	var detail string
	switch {
	case n.Error != "":
		detail = fmt.Sprintf("error: %s", n.Error)
	case n.SplitFeature != "":
		detail = fmt.Sprintf("split by %s, error_of_split: %s", n.SplitFeature, split.FormatFloat(n.Stats.SqErrTotal))
	case n.LeafReason != "":
		detail = fmt.Sprintf("leaf (%s)", n.LeafReason)
	default:
		detail = "pending"
	}
	return fmt.Sprintf("%s: %s, datapoints: %d, mean: %s", n.ID, detail, n.Count, split.FormatFloat(n.Mean))
}

func (n *Node) String() string {
	return fmt.Sprintf("{Node %s}", n.ID)
}
