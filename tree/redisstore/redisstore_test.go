package redisstore

import (
	"context"
	"testing"

	"github.com/pbanos/perfcart/tree"
	tjson "github.com/pbanos/perfcart/tree/json"
	"github.com/stretchr/testify/assert"
	"gopkg.in/redis.v5"
)

func TestKeyFor(t *testing.T) {
	rs := New(nil, "run-1", tjson.NewNodeEncodeDecoder()).(*redisStore)
	assert.Equal(t, "run-1:node:XLR", rs.keyFor("XLR"))
}

func TestCancelledContextDoesNotReachRedis(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	// nothing listens on this address
	rc := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1"})
	defer rc.Close()
	ns := New(rc, "run-1", tjson.NewNodeEncodeDecoder())
	_, err := ns.Get(ctx, "X")
	assert.Equal(t, context.Canceled, err)
	assert.Equal(t, context.Canceled, ns.Create(ctx, &tree.Node{ID: "X"}))
	assert.Equal(t, context.Canceled, ns.Store(ctx, &tree.Node{ID: "X"}))
}
