package tree

import (
	"context"
	"fmt"
	"io"

	"github.com/goccy/go-graphviz"
	"github.com/goccy/go-graphviz/cgraph"
	"github.com/pbanos/perfcart/split"
)

// Formats maps the names of the supported graph rendering formats to them.
var Formats = map[string]graphviz.Format{
	"dot": graphviz.XDOT,
	"svg": graphviz.SVG,
	"png": graphviz.PNG,
	"jpg": graphviz.JPG,
}

/*
Graph takes a context and returns a graphviz.Graphviz with a graph for the
tree: one node per tree node and one edge from every node to each of its
subtrees, labelled with the value of the split feature leading to it.
Leaves are drawn as boxes. Callers should close both returned values.
*/
func (t *Tree) Graph(ctx context.Context) (*graphviz.Graphviz, *cgraph.Graph, error) {
	gv := graphviz.New()
	graph, err := gv.Graph()
	if err != nil {
		gv.Close()
		return nil, nil, fmt.Errorf("creating graph: %v", err)
	}
	gnodes := make(map[string]*cgraph.Node)
	err = t.Traverse(ctx, false, func(ctx context.Context, n *Node) error {
		gn, err := graph.CreateNode(n.ID)
		if err != nil {
			return fmt.Errorf("creating graph node %s: %v", n.ID, err)
		}
		gn.Set("label", graphLabel(n))
		if n.IsLeaf() {
			gn.Set("shape", "box")
		}
		gnodes[n.ID] = gn
		parent, ok := gnodes[n.ParentID]
		if !ok || n.FeatureCriterion == nil {
			return nil
		}
		e, err := graph.CreateEdge("", parent, gn)
		if err != nil {
			return fmt.Errorf("creating graph edge %s-%s: %v", n.ParentID, n.ID, err)
		}
		e.SetLabel(fmt.Sprintf("%v", n.FeatureCriterion.Value))
		return nil
	})
	if err != nil {
		graph.Close()
		gv.Close()
		return nil, nil, err
	}
	return gv, graph, nil
}

// Render writes the graph of the tree on the given writer in the given format.
func (t *Tree) Render(ctx context.Context, w io.Writer, format graphviz.Format) error {
	gv, graph, err := t.Graph(ctx)
	if err != nil {
		return err
	}
	defer gv.Close()
	defer graph.Close()
	err = gv.Render(graph, format, w)
	if err != nil {
		return fmt.Errorf("rendering tree as %s: %v", format, err)
	}
	return nil
}

func graphLabel(n *Node) string {
	label := fmt.Sprintf("%s\nn=%d mean=%s", n.ID, n.Count, split.FormatFloat(n.Mean))
	switch {
	case n.Error != "":
		label += "\nerror"
	case n.SplitFeature != "":
		label += fmt.Sprintf("\n%s? err=%s", n.SplitFeature, split.FormatFloat(n.Stats.SqErrTotal))
	}
	return label
}
