package json

import (
	"context"
	"testing"

	"github.com/pbanos/perfcart/dataset"
	"github.com/pbanos/perfcart/queue"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecodeTask(t *testing.T) {
	ctx := context.Background()
	p := &dataset.Partition{
		Label:    "XL",
		Depth:    1,
		Features: []string{"B"},
		Target:   "perf",
		IDColumn: "name",
		Rows: []dataset.Row{
			dataset.NewRow("c1", map[string]float64{"B": 1, "perf": 10}),
			dataset.NewRow("c2", map[string]float64{"B": 0, "perf": 10}),
		},
	}
	ted := New()
	data, err := ted.Encode(ctx, queue.NewTask(p))
	require.NoError(t, err)

	task, err := ted.Decode(ctx, data)
	require.NoError(t, err)
	assert.Equal(t, "XL", task.ID())
	assert.Equal(t, p, task.Partition)
}

func TestDecodeTaskWithMalformedRow(t *testing.T) {
	data := []byte(`{"id":"X","d":0,"fs":["A"],"t":"perf","rs":[{"v":{"A":2,"perf":1}}]}`)
	_, err := New().Decode(context.Background(), data)
	require.Error(t, err)
	var mre *dataset.MalformedRowError
	assert.ErrorAs(t, err, &mre)
}

func TestDecodeTaskWithoutLabel(t *testing.T) {
	_, err := New().Decode(context.Background(), []byte(`{"fs":[],"t":"perf","rs":[]}`))
	assert.Error(t, err)
}

func TestEncodeTaskWithoutPartition(t *testing.T) {
	_, err := New().Encode(context.Background(), &queue.Task{})
	assert.Error(t, err)
}
