package orm

import (
	"testing"

	"github.com/iov-one/nftseries/errors"
	"github.com/iov-one/nftseries/seriestest/assert"
	"github.com/iov-one/nftseries/store"
)

// holding is a minimal model used to test buckets.
type holding struct {
	Owner  string `msgpack:"owner"`
	Series uint64 `msgpack:"series"`
}

func (h *holding) Marshal() ([]byte, error)   { return MarshalModel(h) }
func (h *holding) Unmarshal(raw []byte) error { return UnmarshalModel(raw, h) }

func (h *holding) Validate() error {
	if h.Owner == "" {
		return errors.Wrap(errors.ErrModel, "owner required")
	}
	return nil
}

type other struct {
	holding
}

func newHoldingBucket() ModelBucket {
	return NewModelBucket("holding", &holding{},
		WithIndex("owner", func(m Model) ([]byte, error) {
			h, ok := m.(*holding)
			if !ok {
				return nil, errors.Wrapf(errors.ErrType, "%T", m)
			}
			return []byte(h.Owner), nil
		}),
	)
}

func TestModelBucketPutOneDelete(t *testing.T) {
	db := store.MemStore()
	b := newHoldingBucket()

	assert.Nil(t, b.Put(db, []byte("a"), &holding{Owner: "alice", Series: 1}))

	var h holding
	assert.Nil(t, b.One(db, []byte("a"), &h))
	assert.Equal(t, holding{Owner: "alice", Series: 1}, h)
	assert.Nil(t, b.Has(db, []byte("a")))

	assert.IsErr(t, errors.ErrNotFound, b.One(db, []byte("b"), &h))
	assert.IsErr(t, errors.ErrNotFound, b.Has(db, []byte("b")))
	assert.IsErr(t, errors.ErrType, b.One(db, []byte("a"), &other{}))
	assert.IsErr(t, errors.ErrModel, b.Put(db, []byte("c"), &holding{}))
	assert.IsErr(t, errors.ErrEmpty, b.Put(db, nil, &holding{Owner: "bob"}))

	assert.Nil(t, b.Delete(db, []byte("a")))
	assert.IsErr(t, errors.ErrNotFound, b.One(db, []byte("a"), &h))
	assert.IsErr(t, errors.ErrNotFound, b.Delete(db, []byte("a")))
}

func TestModelBucketIndex(t *testing.T) {
	db := store.MemStore()
	b := newHoldingBucket()

	assert.Nil(t, b.Put(db, EncodeUint64(3), &holding{Owner: "alice", Series: 1}))
	assert.Nil(t, b.Put(db, EncodeUint64(1), &holding{Owner: "alice", Series: 2}))
	assert.Nil(t, b.Put(db, EncodeUint64(2), &holding{Owner: "bob", Series: 1}))
	// "ali" is a prefix of "alice" and must not match its references.
	assert.Nil(t, b.Put(db, EncodeUint64(4), &holding{Owner: "ali", Series: 1}))

	keys, err := b.IndexKeys(db, "owner", []byte("alice"))
	assert.Nil(t, err)
	assert.Equal(t, [][]byte{EncodeUint64(1), EncodeUint64(3)}, keys)

	// Moving an entity updates the index.
	assert.Nil(t, b.Put(db, EncodeUint64(3), &holding{Owner: "bob", Series: 1}))
	keys, err = b.IndexKeys(db, "owner", []byte("alice"))
	assert.Nil(t, err)
	assert.Equal(t, [][]byte{EncodeUint64(1)}, keys)

	it, err := b.IndexScan(db, "owner", []byte("bob"), true)
	assert.Nil(t, err)
	defer it.Release()
	var loaded []uint64
	for {
		var h holding
		key, err := it.LoadNext(&h)
		if errors.ErrIteratorDone.Is(err) {
			break
		}
		assert.Nil(t, err)
		assert.Equal(t, "bob", h.Owner)
		n, err := DecodeUint64(key)
		assert.Nil(t, err)
		loaded = append(loaded, n)
	}
	assert.Equal(t, []uint64{3, 2}, loaded)

	// Deleting removes the reference.
	assert.Nil(t, b.Delete(db, EncodeUint64(2)))
	keys, err = b.IndexKeys(db, "owner", []byte("bob"))
	assert.Nil(t, err)
	assert.Equal(t, [][]byte{EncodeUint64(3)}, keys)

	_, err = b.IndexKeys(db, "series", []byte("1"))
	assert.IsErr(t, ErrInvalidIndex, err)
}

func TestModelBucketPrefixScan(t *testing.T) {
	db := store.MemStore()
	b := newHoldingBucket()
	for i := uint64(1); i <= 5; i++ {
		assert.Nil(t, b.Put(db, EncodeUint64(i), &holding{Owner: "alice", Series: i}))
	}

	it, err := b.PrefixScan(db, nil, false)
	assert.Nil(t, err)
	defer it.Release()
	var series []uint64
	for {
		var h holding
		_, err := it.LoadNext(&h)
		if errors.ErrIteratorDone.Is(err) {
			break
		}
		assert.Nil(t, err)
		series = append(series, h.Series)
	}
	assert.Equal(t, []uint64{1, 2, 3, 4, 5}, series)
}

func TestModelBucketInvalidNames(t *testing.T) {
	assert.Panics(t, func() { NewModelBucket("X", &holding{}) })
	assert.Panics(t, func() { NewModelBucket("holding", (*holding)(nil), WithIndex("X", nil)) })
	assert.Panics(t, func() {
		NewModelBucket("holding", &holding{},
			WithIndex("owner", nil),
			WithIndex("owner", nil))
	})
}
