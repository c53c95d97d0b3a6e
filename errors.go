package perfcart

import "fmt"

/*
DegenerateSplitError is the error returned when the feature selected to
split a partition leaves one of the children without rows. It can only
happen when the feature is constant across the partition.
*/
type DegenerateSplitError struct {
	Partition string
	Feature   string
	Child     string
}

func (e *DegenerateSplitError) Error() string {
	return fmt.Sprintf("partition %s: split by %s leaves %s without rows", e.Partition, e.Feature, e.Child)
}

/*
NodeError is the error returned by BranchOut when the partition of a node
cannot be explored, as opposed to errors with the collaborators of a Pot.
It wraps the cause, a *DegenerateSplitError, a *dataset.MalformedRowError
or a *split.ValueError.
*/
type NodeError struct {
	NodeID string
	Err    error
}

func (e *NodeError) Error() string {
	return fmt.Sprintf("node %s: %v", e.NodeID, e.Err)
}

func (e *NodeError) Unwrap() error {
	return e.Err
}
