/*
Package json serializes nodes and trees as JSON.
*/
package json

import (
	"encoding/json"
	"fmt"

	"github.com/pbanos/perfcart/feature"
	"github.com/pbanos/perfcart/split"
	"github.com/pbanos/perfcart/tree"
)

/*
NodeEncodeDecoder is an interface for objects
that allow encoding nodes into slices of
bytes and decoding them back to nodes.
*/
type NodeEncodeDecoder interface {

	//Encode receives a *tree.Node
	// and returns a slice of bytes with the node
	//encoded or an error if the encoding could not
	//be performed for some reason.
	Encode(*tree.Node) ([]byte, error)

	//Decode receives a slice of bytes
	//and returns a *tree.Node decoded from the
	//slice of bytes or an error if the decoding
	//could not be performed for some reason.
	Decode([]byte) (*tree.Node, error)
}

type nodeEncodeDecoder struct{}

type node struct {
	ID               string         `json:"id"`
	ParentID         string         `json:"pId,omitempty"`
	Depth            int            `json:"d"`
	SubtreeIDs       []string       `json:"stIds,omitempty"`
	Count            int            `json:"n"`
	Mean             float64        `json:"mean"`
	FeatureCriterion *jsonCriterion `json:"c,omitempty"`
	SplitFeature     string         `json:"f,omitempty"`
	Stats            []float64      `json:"stats,omitempty"`
	LeafReason       string         `json:"leaf,omitempty"`
	Error            string         `json:"err,omitempty"`
}

type jsonCriterion struct {
	Feature string  `json:"f"`
	Value   float64 `json:"v"`
}

/*
NewNodeEncodeDecoder returns a NodeEncodeDecoder that encodes nodes
as JSON objects. Split statistics are encoded as an array in the order
countL, meanL, sqErrL, countR, meanR, sqErrR, meanOverall, sqErrTotal.
*/
func NewNodeEncodeDecoder() NodeEncodeDecoder {
	return &nodeEncodeDecoder{}
}

func (ned *nodeEncodeDecoder) Encode(n *tree.Node) ([]byte, error) {
	jn := &node{
		ID:           n.ID,
		ParentID:     n.ParentID,
		Depth:        n.Depth,
		Count:        n.Count,
		Mean:         n.Mean,
		SplitFeature: n.SplitFeature,
		LeafReason:   string(n.LeafReason),
		Error:        n.Error,
	}
	if len(n.SubtreeIDs) > 0 {
		jn.SubtreeIDs = n.SubtreeIDs
	}
	if n.FeatureCriterion != nil {
		jn.FeatureCriterion = &jsonCriterion{Feature: n.FeatureCriterion.Feature, Value: n.FeatureCriterion.Value}
	}
	if n.Stats != nil {
		jn.Stats = n.Stats.Tuple()
	}
	return json.Marshal(jn)
}

func (ned *nodeEncodeDecoder) Decode(data []byte) (*tree.Node, error) {
	jn := &node{}
	err := json.Unmarshal(data, jn)
	if err != nil {
		return nil, err
	}
	n := &tree.Node{
		ID:           jn.ID,
		ParentID:     jn.ParentID,
		Depth:        jn.Depth,
		Count:        jn.Count,
		Mean:         jn.Mean,
		SplitFeature: jn.SplitFeature,
		LeafReason:   tree.LeafReason(jn.LeafReason),
		Error:        jn.Error,
	}
	if len(jn.SubtreeIDs) > 0 {
		n.SubtreeIDs = jn.SubtreeIDs
	}
	if jn.FeatureCriterion != nil {
		if ok, err := feature.Valid(jn.FeatureCriterion.Feature, jn.FeatureCriterion.Value); !ok {
			return nil, fmt.Errorf("unmarshalling node %v: %v", n.ID, err)
		}
		c := feature.NewCriterion(jn.FeatureCriterion.Feature, jn.FeatureCriterion.Value)
		n.FeatureCriterion = &c
	}
	if jn.Stats != nil {
		n.Stats, err = UnmarshalStats(jn.Stats)
		if err != nil {
			return nil, fmt.Errorf("unmarshalling node %v: %v", n.ID, err)
		}
	}
	return n, nil
}

/*
UnmarshalStats takes a slice of 8 float64 in the order returned by
split.Stats Tuple method and returns the split.Stats they represent
or an error if the slice does not have 8 elements.
*/
func UnmarshalStats(tuple []float64) (*split.Stats, error) {
	if len(tuple) != 8 {
		return nil, fmt.Errorf("expected 8 split statistics, got %d", len(tuple))
	}
	return &split.Stats{
		CountL:      int(tuple[0]),
		MeanL:       tuple[1],
		SqErrL:      tuple[2],
		CountR:      int(tuple[3]),
		MeanR:       tuple[4],
		SqErrR:      tuple[5],
		MeanOverall: tuple[6],
		SqErrTotal:  tuple[7],
	}, nil
}
