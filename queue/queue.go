package queue

import (
	"context"
	"fmt"
	"sync"
)

// Queue represents the frontier of a growing tree, where
// tasks to develop tree nodes can be pushed and popped.
// Tasks are popped in the reverse order they were pushed.
//
// All its methods have a context.Context as first
// parameter that implementations may use to allow
// timeouts and cancellations on the Queue operations.
type Queue interface {
	// Push takes a task and stores it in the queue or
	// returns an error.
	Push(context.Context, *Task) error
	// Pop removes the most recently pushed task from
	// the queue and returns it, or returns an error.
	// If there are no tasks to pop, implementations
	// should not return an error, but 2 nil values.
	Pop(context.Context) (*Task, error)
	// Count returns the number of pending tasks in
	// the queue or an error
	Count(context.Context) (int, error)
	// Stop stops the queue. Implementations should use
	// the call to free resources.
	Stop(context.Context) error
}

type memStack struct {
	tasks []*Task
	lock  *sync.RWMutex
}

// New returns a queue backed only by the process memory
func New() Queue {
	return &memStack{lock: &sync.RWMutex{}}
}

func (ms *memStack) Push(ctx context.Context, t *Task) error {
	return ms.withLock(ctx, func(ctx context.Context) error {
		ms.tasks = append(ms.tasks, t)
		return nil
	})
}

func (ms *memStack) Pop(ctx context.Context) (*Task, error) {
	var task *Task
	err := ms.withLock(ctx, func(ctx context.Context) error {
		last := len(ms.tasks) - 1
		if last < 0 {
			return nil
		}
		task = ms.tasks[last]
		ms.tasks[last] = nil
		ms.tasks = ms.tasks[:last]
		return nil
	})
	if err != nil {
		return nil, err
	}
	return task, nil
}

func (ms *memStack) Count(ctx context.Context) (int, error) {
	var pending int
	err := ms.withRLock(ctx, func(ctx context.Context) error {
		pending = len(ms.tasks)
		return nil
	})
	if err != nil {
		return 0, err
	}
	return pending, nil
}

func (ms *memStack) Stop(ctx context.Context) error {
	return ms.withLock(ctx, func(ctx context.Context) error {
		ms.tasks = nil
		return nil
	})
}

func (ms *memStack) String() string {
	return fmt.Sprintf("{Queue pending: %d %v}", len(ms.tasks), ms.tasks)
}

func (ms *memStack) withLock(ctx context.Context, f func(ctx context.Context) error) error {
	gotLock := make(chan struct{})
	go func() {
		ms.lock.Lock()
		select {
		case <-ctx.Done():
			ms.lock.Unlock()
		case gotLock <- struct{}{}:
		}
	}()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-gotLock:
		defer ms.lock.Unlock()
	}
	return f(ctx)
}

func (ms *memStack) withRLock(ctx context.Context, f func(ctx context.Context) error) error {
	gotLock := make(chan struct{})
	go func() {
		ms.lock.RLock()
		select {
		case <-ctx.Done():
			ms.lock.RUnlock()
		case gotLock <- struct{}{}:
		}
	}()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-gotLock:
		defer ms.lock.RUnlock()
	}
	return f(ctx)
}
