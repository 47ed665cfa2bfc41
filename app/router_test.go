package app

import (
	"context"
	"fmt"
	"testing"

	"github.com/iov-one/nftseries"
	"github.com/iov-one/nftseries/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testMsg struct {
	path string
}

func (m testMsg) Path() string    { return m.path }
func (m testMsg) Validate() error { return nil }

type countingHandler struct {
	count int
	err   error
}

func (h *countingHandler) Deliver(context.Context, nftseries.KVStore, nftseries.Msg) (*nftseries.Result, error) {
	h.count++
	if h.err != nil {
		return nil, h.err
	}
	return &nftseries.Result{Log: "counted"}, nil
}

func TestRouter(t *testing.T) {
	r := NewRouter()
	ctx := context.Background()

	counter := &countingHandler{}
	failing := &countingHandler{err: fmt.Errorf("foo")}
	r.Handle("test/good", counter)
	r.Handle("test/bad", failing)

	// make sure invalid registrations panic
	assert.Panics(t, func() { r.Handle("test/good", counter) })
	assert.Panics(t, func() { r.Handle("l:7", counter) })
	assert.Panics(t, func() { r.Handle("nomodule", counter) })

	_, err := r.Deliver(ctx, nil, testMsg{path: "test/good"})
	require.NoError(t, err)
	assert.Equal(t, 1, counter.count)

	_, err = r.Deliver(ctx, nil, testMsg{path: "test/bad"})
	require.Error(t, err)
	assert.Equal(t, "foo", err.Error())
	assert.Equal(t, 1, failing.count)

	// make sure not found returns an error handler as well
	_, err = r.Handler("test/missing").Deliver(ctx, nil, nil)
	assert.True(t, errors.ErrMsg.Is(err))
	_, err = r.Deliver(ctx, nil, testMsg{path: "test/missing"})
	assert.True(t, errors.ErrMsg.Is(err))
	_, err = r.Deliver(ctx, nil, nil)
	assert.True(t, errors.ErrEmpty.Is(err))
	assert.Equal(t, 1, counter.count)
}
