package queue

import (
	"fmt"

	"github.com/pbanos/perfcart/dataset"
)

// Task represents a partition waiting to be
// branched out into a node of a tree.
type Task struct {
	// The rows of the node together with the
	// features still available to split them.
	// It should exclude the features used in
	// ancestor nodes.
	Partition *dataset.Partition
}

// NewTask returns a task for the given partition.
func NewTask(p *dataset.Partition) *Task {
	return &Task{Partition: p}
}

// ID returns a string that identifies the
// task, the label of its partition.
func (t *Task) ID() string {
	return t.Partition.Label
}

// Depth returns the depth on the tree of the
// node the task will develop.
func (t *Task) Depth() int {
	return t.Partition.Depth
}

func (t *Task) String() string {
	return fmt.Sprintf("{Task %s}", t.Partition.Label)
}
