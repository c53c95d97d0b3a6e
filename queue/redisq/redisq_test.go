package redisq

import (
	"context"
	"testing"

	qjson "github.com/pbanos/perfcart/queue/json"
	"github.com/stretchr/testify/assert"
	redis "gopkg.in/redis.v5"
)

func TestFrontierKey(t *testing.T) {
	rq := New("run-1", nil, qjson.New()).(*redisQ)
	assert.Equal(t, "run-1:frontier", rq.frontierKey())
	assert.Equal(t, "{redisQ run-1:frontier}", rq.String())
}

func TestCancelledContextDoesNotReachRedis(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	// nothing listens on this address
	rc := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1"})
	defer rc.Close()
	q := New("run-1", rc, qjson.New())
	_, err := q.Pop(ctx)
	assert.Equal(t, context.Canceled, err)
	_, err = q.Count(ctx)
	assert.Equal(t, context.Canceled, err)
}
