package json

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/pbanos/perfcart/feature"
	"github.com/pbanos/perfcart/split"
	"github.com/pbanos/perfcart/tree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNodeEncodeDecode(t *testing.T) {
	c := feature.NewCriterion("A", 1)
	n := &tree.Node{
		ID:               "XL",
		ParentID:         "X",
		Depth:            1,
		SubtreeIDs:       []string{"XLL", "XLR"},
		Count:            2,
		Mean:             10,
		FeatureCriterion: &c,
		SplitFeature:     "B",
		Stats:            &split.Stats{CountL: 1, MeanL: 10, CountR: 1, MeanR: 10, MeanOverall: 10},
	}
	ned := NewNodeEncodeDecoder()
	data, err := ned.Encode(n)
	require.NoError(t, err)
	decoded, err := ned.Decode(data)
	require.NoError(t, err)
	assert.Equal(t, n, decoded)
}

func TestDecodeLeafNode(t *testing.T) {
	n, err := NewNodeEncodeDecoder().Decode([]byte(`{"id":"XR","pId":"X","d":1,"n":1,"mean":0,"c":{"f":"A","v":0},"leaf":"single row"}`))
	require.NoError(t, err)
	assert.True(t, n.IsLeaf())
	assert.Equal(t, tree.SingleRow, n.LeafReason)
	assert.Nil(t, n.Stats)
	assert.Equal(t, "A is 0", n.FeatureCriterion.String())
}

func TestDecodeInvalidNodes(t *testing.T) {
	ned := NewNodeEncodeDecoder()
	for _, data := range []string{
		`{"id":"XR","c":{"f":"A","v":3}}`,
		`{"id":"X","stats":[1,2,3]}`,
		`{"id":`,
	} {
		_, err := ned.Decode([]byte(data))
		assert.Error(t, err, data)
	}
}

func TestWriteReadJSONTree(t *testing.T) {
	ctx := context.Background()
	ns := tree.NewMemoryNodeStore()
	cl, cr := feature.NewCriterion("A", 1), feature.NewCriterion("A", 0)
	require.NoError(t, ns.Create(ctx, &tree.Node{ID: "X", SubtreeIDs: []string{"XL", "XR"}, Count: 4, Mean: 5, SplitFeature: "A", Stats: &split.Stats{CountL: 2, MeanL: 5, CountR: 2, MeanR: 5, MeanOverall: 5}}))
	require.NoError(t, ns.Create(ctx, &tree.Node{ID: "XL", ParentID: "X", Depth: 1, Count: 2, Mean: 5, FeatureCriterion: &cl, LeafReason: tree.NoFeatures}))
	require.NoError(t, ns.Create(ctx, &tree.Node{ID: "XR", ParentID: "X", Depth: 1, Count: 2, Mean: 5, FeatureCriterion: &cr, LeafReason: tree.NoFeatures}))
	grown := tree.New("X", ns, "perf")

	var buf bytes.Buffer
	ned := NewNodeEncodeDecoder()
	require.NoError(t, WriteJSONTree(ctx, grown, ned, &buf))
	assert.True(t, strings.HasPrefix(buf.String(), `{"rootID":"X","target":"perf","nodes":[{"id":"X"`))

	read := tree.New("", tree.NewMemoryNodeStore(), "")
	require.NoError(t, ReadJSONTree(ctx, read, ned, &buf))
	assert.Equal(t, "X", read.RootID)
	assert.Equal(t, "perf", read.Target)
	assert.Equal(t, grown.String(), read.String())
}

func TestReadJSONTreeErrors(t *testing.T) {
	ctx := context.Background()
	ned := NewNodeEncodeDecoder()
	for _, data := range []string{
		`{"rootID":"X","nodes":[]}`,
		`{"target":"perf","nodes":[]}`,
		`not json`,
	} {
		read := tree.New("", tree.NewMemoryNodeStore(), "")
		assert.Error(t, ReadJSONTree(ctx, read, ned, strings.NewReader(data)), data)
	}
}
