package tree

import (
	"context"
	"fmt"
	"strings"

	"github.com/pbanos/perfcart/feature"
)

// Indent is the string repeated once per level of depth
// before every node on the string representation of a tree.
const Indent = "|  "

// Tree represents a regression tree. It is composed of a
// NodeStore where all its nodes are stored, the id for the
// root node of the tree and the name of the target column
// whose values it predicts.
type Tree struct {
	NodeStore
	RootID string
	Target string
}

// New takes the ID for the root Node, a NodeStore and a target name and
// returns a tree composed of the nodes in the NodeStore connected to the
// node with the given root ID that predicts the given target.
func New(rootID string, nodeStore NodeStore, target string) *Tree {
	return &Tree{nodeStore, rootID, target}
}

// Predict takes a sample and returns a prediction according to the tree and an
// error if the prediction could not be made.
func (t *Tree) Predict(ctx context.Context, s feature.Sample) (*Prediction, error) {
	if t == nil {
		return nil, fmt.Errorf("nil tree cannot predict samples")
	}
	n, err := t.Get(ctx, t.RootID)
	if err != nil {
		return nil, fmt.Errorf("predicting sample: retrieving node %v: %v", t.RootID, err)
	}
	if n == nil {
		return nil, fmt.Errorf("predicting sample: root node %v not found", t.RootID)
	}
	for !n.IsLeaf() {
		var selectedNode *Node
		for _, nID := range n.SubtreeIDs {
			subnode, err := t.Get(ctx, nID)
			if err != nil {
				return nil, fmt.Errorf("predicting sample: retrieving node %v: %v", nID, err)
			}
			if subnode == nil {
				return nil, fmt.Errorf("predicting sample: node %v not found", nID)
			}
			if subnode.FeatureCriterion == nil {
				continue
			}
			ok, err := subnode.FeatureCriterion.SatisfiedBy(s)
			if err != nil {
				return nil, fmt.Errorf("predicting sample: %v", err)
			}
			if ok {
				selectedNode = subnode
				break
			}
		}
		if selectedNode == nil {
			return nil, fmt.Errorf("%w: no subtree of %s for its value of feature %s", ErrCannotPredictFromSample, n.ID, n.SplitFeature)
		}
		n = selectedNode
	}
	return NewPredictionFromNode(n)
}

// Traverse takes a context, bottomup boolean and an
// error-returning function that takes a context and a node
// as parameters, and goes through the tree running the
// function with the context and every traversed node.
// Traverse will call the function with a parent node before
// calling it for its children if bottomup is false, and
// call it after its children if bottomup is true. Left
// subtrees are traversed before right ones.
// If the given context times out or is cancelled, the context
// error is returned. If a node cannot be retrieved from the
// tree's node store, the obtained error is returned. If the
// call to the function returns an error, the traversing is
// aborted and the error is returned. Otherwise, when the
// traversing is over, nil is returned.
func (t *Tree) Traverse(ctx context.Context, bottomup bool, f func(context.Context, *Node) error) error {
	n, err := t.get(ctx, t.RootID)
	if err != nil {
		return err
	}
	return t.traverse(ctx, n, bottomup, f)
}

func (t *Tree) traverse(ctx context.Context, n *Node, bottomup bool, f func(context.Context, *Node) error) error {
	err := ctx.Err()
	if err != nil {
		return err
	}
	if !bottomup {
		err = f(ctx, n)
	}
	if err != nil {
		return err
	}
	for _, snID := range n.SubtreeIDs {
		sn, err := t.get(ctx, snID)
		if err != nil {
			return err
		}
		err = t.traverse(ctx, sn, bottomup, f)
		if err != nil {
			return err
		}
	}
	if bottomup {
		err = f(ctx, n)
	}
	return err
}

// Leaves returns the nodes of the tree without subtrees, left to right.
func (t *Tree) Leaves(ctx context.Context) ([]*Node, error) {
	var leaves []*Node
	err := t.Traverse(ctx, false, func(ctx context.Context, n *Node) error {
		if n.IsLeaf() {
			leaves = append(leaves, n)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return leaves, nil
}

// Structure returns the lines describing every node of the tree, top down,
// each indented with Indent repeated as many times as the node depth.
func (t *Tree) Structure(ctx context.Context) ([]string, error) {
	var lines []string
	err := t.Traverse(ctx, false, func(ctx context.Context, n *Node) error {
		lines = append(lines, strings.Repeat(Indent, n.Depth)+n.Summary())
		return nil
	})
	if err != nil {
		return nil, err
	}
	return lines, nil
}

func (t *Tree) String() string {
	lines, err := t.Structure(context.TODO())
	if err != nil {
		return fmt.Sprintf("ERROR: %s\n", err.Error())
	}
	return strings.Join(lines, "\n") + "\n"
}

func (t *Tree) get(ctx context.Context, id string) (*Node, error) {
	n, err := t.NodeStore.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if n == nil {
		return nil, fmt.Errorf("node %s not found", id)
	}
	return n, nil
}
