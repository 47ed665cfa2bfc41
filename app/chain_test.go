package app

import (
	"context"
	"testing"

	"github.com/iov-one/nftseries"
	"github.com/iov-one/nftseries/errors"
	"github.com/iov-one/nftseries/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// countingDecorator counts calls, once in and once out.
type countingDecorator struct {
	count int
}

func (d *countingDecorator) Deliver(ctx context.Context, db nftseries.KVStore, msg nftseries.Msg, next nftseries.Handler) (*nftseries.Result, error) {
	d.count++
	defer func() { d.count++ }()
	return next.Deliver(ctx, db, msg)
}

// panicDecorator panics for messages of given path.
type panicDecorator struct {
	path string
}

func (d panicDecorator) Deliver(ctx context.Context, db nftseries.KVStore, msg nftseries.Msg, next nftseries.Handler) (*nftseries.Result, error) {
	if msg.Path() == d.path {
		panic("boom")
	}
	return next.Deliver(ctx, db, msg)
}

func TestChain(t *testing.T) {
	c1 := &countingDecorator{}
	c2 := &countingDecorator{}
	c3 := &countingDecorator{}
	var nilDecorator *countingDecorator
	h := &countingHandler{}

	stack := ChainDecorators(
		c1,
		NewLogging(),
		NewRecovery(),
		c2,
		nilDecorator,
		panicDecorator{path: "test/panic"},
		c3,
	).WithHandler(h)

	ctx := context.Background()

	// make some calls, make sure it is fine
	_, err := stack.Deliver(ctx, nil, testMsg{path: "test/ok"})
	assert.NoError(t, err)
	_, err = stack.Deliver(ctx, nil, testMsg{path: "test/ok"})
	assert.NoError(t, err)

	// decorators are counted double, once in, once out
	assert.Equal(t, 4, c1.count)
	assert.Equal(t, 4, c2.count)
	assert.Equal(t, 4, c3.count)
	assert.Equal(t, 2, h.count)

	// now, let's trigger a panic
	_, err = stack.Deliver(ctx, nil, testMsg{path: "test/panic"})
	require.Error(t, err)
	assert.True(t, errors.ErrPanic.Is(err))

	assert.Equal(t, 6, c1.count)
	// c2 is left by the panic, so it is counted in and out
	assert.Equal(t, 6, c2.count)
	// and the call does not make it to c3
	assert.Equal(t, 4, c3.count)
	assert.Equal(t, 2, h.count)
}

// writeHandler writes a single key and then fails with err or panics.
type writeHandler struct {
	key, value []byte
	err        error
	panics     bool
}

func (h writeHandler) Deliver(ctx context.Context, db nftseries.KVStore, msg nftseries.Msg) (*nftseries.Result, error) {
	if err := db.Set(h.key, h.value); err != nil {
		return nil, err
	}
	if h.panics {
		panic("boom")
	}
	if h.err != nil {
		return nil, h.err
	}
	return &nftseries.Result{}, nil
}

func TestSavepoint(t *testing.T) {
	// always written before calling functions
	ok, ov := []byte("demo"), []byte("data")
	// some key, value to try to write
	nk, nv := []byte{1, 2, 3}, []byte{4, 5, 6}

	cases := map[string]struct {
		handler     nftseries.Handler
		wantErr     *errors.Error
		wantWritten [][]byte
		wantMissing [][]byte
	}{
		"rollback on error": {
			handler:     writeHandler{key: nk, value: nv, err: errors.ErrUnauthorized},
			wantErr:     errors.ErrUnauthorized,
			wantWritten: [][]byte{ok},
			wantMissing: [][]byte{nk},
		},
		"rollback on panic": {
			handler:     ChainDecorators(NewRecovery()).WithHandler(writeHandler{key: nk, value: nv, panics: true}),
			wantErr:     errors.ErrPanic,
			wantWritten: [][]byte{ok},
			wantMissing: [][]byte{nk},
		},
		"write on success": {
			handler:     writeHandler{key: nk, value: nv},
			wantWritten: [][]byte{ok, nk},
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			db := store.MemStore()
			require.NoError(t, db.Set(ok, ov))

			stack := ChainDecorators(NewSavepoint()).WithHandler(tc.handler)
			_, err := stack.Deliver(context.Background(), db, testMsg{path: "test/op"})
			assert.True(t, tc.wantErr.Is(err), "want %v, got %v", tc.wantErr, err)

			for _, k := range tc.wantWritten {
				has, err := db.Has(k)
				require.NoError(t, err)
				assert.True(t, has, "missing %x", k)
			}
			for _, k := range tc.wantMissing {
				has, err := db.Has(k)
				require.NoError(t, err)
				assert.False(t, has, "unexpected %x", k)
			}
		})
	}
}

func TestSavepointRequiresCacheableStore(t *testing.T) {
	stack := ChainDecorators(NewSavepoint()).WithHandler(&countingHandler{})
	_, err := stack.Deliver(context.Background(), store.EmptyKVStore{}, testMsg{path: "test/op"})
	assert.True(t, errors.ErrDatabase.Is(err))
}
