package queue

import (
	"context"
	"testing"

	"github.com/pbanos/perfcart/dataset"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func taskFor(label string, depth int) *Task {
	return NewTask(&dataset.Partition{Label: label, Depth: depth, Target: "perf"})
}

func TestMemStackPopsLastPushedFirst(t *testing.T) {
	ctx := context.Background()
	q := New()
	for _, task := range []*Task{taskFor("X", 0), taskFor("XL", 1), taskFor("XR", 1)} {
		require.NoError(t, q.Push(ctx, task))
	}
	count, err := q.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, count)

	var popped []string
	for {
		task, err := q.Pop(ctx)
		require.NoError(t, err)
		if task == nil {
			break
		}
		popped = append(popped, task.ID())
	}
	assert.Equal(t, []string{"XR", "XL", "X"}, popped)

	count, err = q.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestMemStackPopOnEmpty(t *testing.T) {
	task, err := New().Pop(context.Background())
	assert.NoError(t, err)
	assert.Nil(t, task)
}

func TestMemStackInterleaved(t *testing.T) {
	ctx := context.Background()
	q := New()
	require.NoError(t, q.Push(ctx, taskFor("XL", 1)))
	require.NoError(t, q.Push(ctx, taskFor("XR", 1)))
	task, err := q.Pop(ctx)
	require.NoError(t, err)
	assert.Equal(t, "XR", task.ID())
	require.NoError(t, q.Push(ctx, taskFor("XRL", 2)))
	task, err = q.Pop(ctx)
	require.NoError(t, err)
	assert.Equal(t, "XRL", task.ID())
	assert.Equal(t, 2, task.Depth())
	task, err = q.Pop(ctx)
	require.NoError(t, err)
	assert.Equal(t, "XL", task.ID())
}

func TestMemStackStop(t *testing.T) {
	ctx := context.Background()
	q := New()
	require.NoError(t, q.Push(ctx, taskFor("X", 0)))
	require.NoError(t, q.Stop(ctx))
	count, err := q.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)
}
