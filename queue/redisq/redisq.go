/*
Package redisq implements a queue.Queue on a redis list, so the
frontier of a growing tree can outlive the process that grows it.
*/
package redisq

import (
	"context"
	"fmt"

	"github.com/pbanos/perfcart/queue"
	redis "gopkg.in/redis.v5"
)

/*
EncodeDecoder is an interface for objects
that allow encoding tasks as slices of bytes and decoding
them back to tasks. It is used to serialize tasks into a
representation to store on redis
*/
type EncodeDecoder interface {

	//Encode receives a *queue.Task
	// and returns a slice of bytes with the task encoded or an
	//error if the encoding could not be performed for
	//some reason. Its counterpart is Decode.
	Encode(context.Context, *queue.Task) ([]byte, error)

	//Decode receives a slice of bytes
	//and returns a *queue.Task decoded from the slice of bytes
	//or an error if the decoding could not be performed
	//for some reason.
	Decode(context.Context, []byte) (*queue.Task, error)
}

type redisQ struct {
	id string
	rc *redis.Client
	EncodeDecoder
}

/*
New returns a queue.Queue that uses the given redis client as a
backend. It uses the given id to prefix the key of the redis list
holding the encoded tasks, id:frontier. Tasks are pushed on the head
of the list and popped from it, so the last pushed task is the first
one popped. Tasks are encoded and decoded using the given EncodeDecoder.
*/
func New(id string, rc *redis.Client, encDec EncodeDecoder) queue.Queue {
	return &redisQ{
		id:            id,
		rc:            rc,
		EncodeDecoder: encDec,
	}
}

// Push takes a task and stores it on the head of the list or
// returns an error.
func (rq *redisQ) Push(ctx context.Context, t *queue.Task) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	data, err := rq.Encode(ctx, t)
	if err != nil {
		return fmt.Errorf("pushing task %s to queue: %v", t.ID(), err)
	}
	_, err = rq.rc.LPush(rq.frontierKey(), string(data)).Result()
	if err != nil {
		return fmt.Errorf("pushing task %s to queue %v: %v", t.ID(), rq, err)
	}
	return nil
}

// Pop removes the task on the head of the list and returns it.
// It returns 2 nil values when the list is empty.
func (rq *redisQ) Pop(ctx context.Context) (*queue.Task, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := rq.rc.LPop(rq.frontierKey()).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("popping task from queue %v: %v", rq, err)
	}
	t, err := rq.Decode(ctx, []byte(data))
	if err != nil {
		return nil, fmt.Errorf("popping task from queue %v: %v", rq, err)
	}
	return t, nil
}

// Count returns the length of the list or an error
func (rq *redisQ) Count(ctx context.Context) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	n, err := rq.rc.LLen(rq.frontierKey()).Result()
	if err != nil {
		return 0, fmt.Errorf("counting tasks: %v", err)
	}
	return int(n), nil
}

// Stop removes the list with any task left on it.
func (rq *redisQ) Stop(ctx context.Context) error {
	_, err := rq.rc.Del(rq.frontierKey()).Result()
	if err != nil {
		return fmt.Errorf("stopping queue %v: %v", rq, err)
	}
	return nil
}

func (rq *redisQ) String() string {
	return fmt.Sprintf("{redisQ %s}", rq.frontierKey())
}

func (rq *redisQ) frontierKey() string {
	return fmt.Sprintf("%s:frontier", rq.id)
}
