package mongoset

import (
	"testing"

	"github.com/pbanos/perfcart/dataset"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/mgo.v2/bson"
)

func TestDocumentFor(t *testing.T) {
	p := &dataset.Partition{Label: "XL", Features: []string{"B"}, Target: "perf", IDColumn: "name"}
	doc, err := documentFor(p, dataset.NewRow("c1", map[string]float64{"A": 1, "B": 0, "perf": 10}))
	require.NoError(t, err)
	assert.Equal(t, bson.D{{Name: "name", Value: "c1"}, {Name: "B", Value: 0.0}, {Name: "perf", Value: 10.0}}, doc)

	_, err = documentFor(p, dataset.NewRow("c2", map[string]float64{"perf": 10}))
	assert.Error(t, err)
}

func TestRowFromDocument(t *testing.T) {
	doc := bson.D{
		{Name: "_id", Value: bson.NewObjectId()},
		{Name: "name", Value: "c1"},
		{Name: "A", Value: 1},
		{Name: "B", Value: int64(0)},
		{Name: "perf", Value: 10.5},
	}
	header := headerOf(doc)
	assert.Equal(t, []string{"name", "A", "B", "perf"}, header)
	row, err := rowFromDocument(doc, header, "name")
	require.NoError(t, err)
	assert.Equal(t, "c1", row.ID)
	assert.Equal(t, map[string]float64{"A": 1, "B": 0, "perf": 10.5}, row.Values)
}

func TestRowFromInvalidDocument(t *testing.T) {
	_, err := rowFromDocument(bson.D{{Name: "A", Value: "yes"}}, []string{"A"}, "")
	assert.Error(t, err)
	_, err = rowFromDocument(bson.D{{Name: "A", Value: 1}}, []string{"A", "perf"}, "")
	assert.Error(t, err)
}
