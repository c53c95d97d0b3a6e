/*
Package perfcart grows binary regression trees that predict the performance
of a configuration from its binary features.

Every node of a tree is split on the feature whose split yields the lowest
sum of squared errors of the measured performance, and the feature is not
considered again under that node. Nodes are developed depth first from a
queue.Queue, right subtrees before left ones.
*/
package perfcart

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/pbanos/perfcart/dataset"
	"github.com/pbanos/perfcart/feature"
	"github.com/pbanos/perfcart/queue"
	"github.com/pbanos/perfcart/report"
	"github.com/pbanos/perfcart/tree"
)

/*
Pot holds what is needed to grow a tree: the queue of partitions pending to
be developed, the store for the nodes of the tree, the writer for the
per-node report and the writer that persists the partitions of every node.
Nil Report, Partitions and Logger drop the report, drop the partitions and
log with slog.Default() respectively.

After growing a tree, Failures holds the errors of the nodes whose
exploration was aborted.
*/
type Pot struct {
	Queue      queue.Queue
	NodeStore  tree.NodeStore
	Report     *report.Writer
	Partitions dataset.Writer
	Logger     *slog.Logger
	Failures   []*NodeError
}

// New returns a Pot with an in-memory queue and node store.
func New(r *report.Writer, w dataset.Writer, logger *slog.Logger) *Pot {
	return &Pot{
		Queue:      queue.New(),
		NodeStore:  tree.NewMemoryNodeStore(),
		Report:     r,
		Partitions: w,
		Logger:     logger,
	}
}

/*
Grow takes a context and the root partition of a dataset and grows a tree
from it, returning the tree or an error. See Seed and Work.
*/
func (p *Pot) Grow(ctx context.Context, root *dataset.Partition) (*tree.Tree, error) {
	t, err := p.Seed(ctx, root)
	if err != nil {
		return nil, err
	}
	err = p.Work(ctx, t)
	if err != nil {
		return t, err
	}
	return t, nil
}

// Seed takes a context and the root partition of a dataset and sets
// everything up so that Work grows a tree from it.
// Specifically it will create the root node of the tree on the
// node store and push a task to branch it out on the queue.
// The function returns the tree that can be grown or an error
// if the node cannot be created on the store, or the task pushed
// to the queue (in the amount of time allowed by the given
// context).
func (p *Pot) Seed(ctx context.Context, root *dataset.Partition) (*tree.Tree, error) {
	n, err := newNode(root, nil, "")
	if err != nil {
		return nil, &NodeError{NodeID: root.Label, Err: err}
	}
	err = p.NodeStore.Create(ctx, n)
	if err != nil {
		return nil, fmt.Errorf("creating root node %s: %w", n.ID, err)
	}
	t := tree.New(n.ID, p.NodeStore, root.Target)
	err = p.Queue.Push(ctx, queue.NewTask(root))
	if err != nil {
		p.NodeStore.Delete(ctx, n)
		return nil, fmt.Errorf("pushing root task %s: %w", n.ID, err)
	}
	return t, nil
}

// Work takes a context and a tree and enters a loop in which
// it:
//   * pops the last pushed task from the queue,
//   * branches its node out into new subnodes using BranchOut
//   * pushes the tasks for the new subnodes into the queue, left first
//
// When no task can be popped from the queue, Work returns nil.
//
// If BranchOut returns a *NodeError, the error is recorded on the node,
// the report and the Pot Failures, and unless the node is the root the
// loop goes on without exploring the node further.
//
// Work will return a non-nil error if the given context
// times out or is cancelled, if BranchOut returns any other error or a
// *NodeError for the root node, or if an operation with the queue
// returns a non-nil error.
func (p *Pot) Work(ctx context.Context, t *tree.Tree) error {
	for {
		err := ctx.Err()
		if err != nil {
			return err
		}
		task, err := p.Queue.Pop(ctx)
		if err != nil {
			return fmt.Errorf("popping task: %w", err)
		}
		if task == nil {
			return nil
		}
		tasks, err := p.BranchOut(ctx, task, t)
		if err != nil {
			var ne *NodeError
			if !errors.As(err, &ne) {
				return err
			}
			ferr := p.fail(ctx, t, ne)
			if ferr != nil {
				return ferr
			}
			if task.ID() == t.RootID {
				return err
			}
			continue
		}
		for _, st := range tasks {
			err = p.Queue.Push(ctx, st)
			if err != nil {
				return fmt.Errorf("pushing task %s: %w", st.ID(), err)
			}
		}
	}
}

/*
BranchOut takes a context, a task and a tree, develops the node in the task
using the task's partition and returns a set of tasks to develop the
resulting children nodes with more than one row, or an error.

A partition without features, or with less than two rows, is a leaf. Otherwise it is split on the
candidate feature chosen by Select and both children are persisted and
created on the tree node store. Children with a single row are leaves.

Errors caused by the partition itself are returned as *NodeError.
*/
func (p *Pot) BranchOut(ctx context.Context, task *queue.Task, t *tree.Tree) ([]*queue.Task, error) {
	var tasks []*queue.Task
	part := task.Partition
	logger := p.logger().With(slog.String("node", part.Label), slog.Int("depth", part.Depth))
	n, err := t.NodeStore.Get(ctx, part.Label)
	if err != nil {
		return nil, fmt.Errorf("retrieving node %s: %w", part.Label, err)
	}
	if n == nil {
		return nil, fmt.Errorf("node %s not found", part.Label)
	}
	r := p.report()
	if err = r.Partition(part.Label); err != nil {
		return nil, err
	}
	if len(part.Features) == 0 || part.Count() <= 1 {
		logger.Debug("reached end node", slog.Int("datapoints", part.Count()))
		n.LeafReason = tree.NoFeatures
		if part.Count() <= 1 {
			n.LeafReason = tree.SingleRow
		}
		if err = r.EndNode(); err != nil {
			return nil, err
		}
		return nil, p.store(ctx, t, n)
	}
	if err = r.Header(); err != nil {
		return nil, err
	}
	candidates, err := Candidates(part)
	if err != nil {
		return nil, &NodeError{NodeID: n.ID, Err: err}
	}
	for _, c := range candidates {
		if err = r.Candidate(c.Feature, c.Stats); err != nil {
			return nil, err
		}
	}
	selected := candidates[Select(candidates, part.Count())]
	if err = r.Split(part.Label, part.Count(), selected.Feature, selected.Stats); err != nil {
		return nil, err
	}
	stats := selected.Stats
	n.SplitFeature = selected.Feature
	n.Stats = &stats
	left, right, err := Children(part, selected.Feature)
	if err != nil {
		return nil, &NodeError{NodeID: n.ID, Err: err}
	}
	logger.Debug("split node", slog.String("feature", selected.Feature), slog.Float64("error", stats.SqErrTotal))
	for i, c := range []*dataset.Partition{left, right} {
		err = p.partitions().WritePartition(ctx, c)
		if err != nil {
			return nil, fmt.Errorf("writing partition %s: %w", c.Label, err)
		}
		criterion := feature.NewCriterion(selected.Feature, []float64{feature.Enabled, feature.Disabled}[i])
		cn, err := newNode(c, &criterion, n.ID)
		if err != nil {
			return nil, &NodeError{NodeID: c.Label, Err: err}
		}
		if c.Count() == 1 {
			cn.LeafReason = tree.SingleRow
			if err = r.Partition(c.Label); err != nil {
				return nil, err
			}
			if err = r.EndNode(); err != nil {
				return nil, err
			}
		} else {
			tasks = append(tasks, queue.NewTask(c))
		}
		err = t.NodeStore.Create(ctx, cn)
		if err != nil {
			return nil, fmt.Errorf("creating node %s: %w", cn.ID, err)
		}
		n.SubtreeIDs = append(n.SubtreeIDs, cn.ID)
	}
	return tasks, p.store(ctx, t, n)
}

func (p *Pot) fail(ctx context.Context, t *tree.Tree, ne *NodeError) error {
	p.logger().Warn("aborted node exploration", slog.String("node", ne.NodeID), slog.String("error", ne.Err.Error()))
	p.Failures = append(p.Failures, ne)
	err := p.report().Error(ne.Err)
	if err != nil {
		return err
	}
	n, err := t.NodeStore.Get(ctx, ne.NodeID)
	if err != nil {
		return fmt.Errorf("retrieving node %s: %w", ne.NodeID, err)
	}
	if n == nil {
		return fmt.Errorf("node %s not found", ne.NodeID)
	}
	n.Error = ne.Err.Error()
	return p.store(ctx, t, n)
}

func (p *Pot) store(ctx context.Context, t *tree.Tree, n *tree.Node) error {
	err := t.NodeStore.Store(ctx, n)
	if err != nil {
		return fmt.Errorf("storing node %s: %w", n.ID, err)
	}
	return nil
}

func (p *Pot) logger() *slog.Logger {
	if p.Logger == nil {
		return slog.Default()
	}
	return p.Logger
}

func (p *Pot) report() *report.Writer {
	if p.Report == nil {
		p.Report = report.Discard()
	}
	return p.Report
}

func (p *Pot) partitions() dataset.Writer {
	if p.Partitions == nil {
		return dataset.Discard
	}
	return p.Partitions
}

func newNode(part *dataset.Partition, c *feature.Criterion, parentID string) (*tree.Node, error) {
	mean, err := part.Mean()
	if err != nil {
		return nil, err
	}
	return &tree.Node{
		ID:               part.Label,
		ParentID:         parentID,
		Depth:            part.Depth,
		Count:            part.Count(),
		Mean:             mean,
		FeatureCriterion: c,
	}, nil
}
