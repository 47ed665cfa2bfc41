package store

import (
	"bytes"
	"crypto/rand"
	"fmt"
	"sort"
	"testing"

	"github.com/iov-one/nftseries/errors"
	"github.com/stretchr/testify/require"
)

// TestSuite runs the same set of checks against any CacheableKVStore
// implementation. Each store package customizes only the constructor of the
// base store.
type TestSuite struct {
	makeBase TestStoreConstructor
}

// TestStoreConstructor returns a fresh, empty store and a function that
// releases it.
type TestStoreConstructor func() (base CacheableKVStore, cleanup func())

// NewTestSuite returns a suite that tests stores created by constructor.
func NewTestSuite(constructor TestStoreConstructor) *TestSuite {
	return &TestSuite{
		makeBase: constructor,
	}
}

// GetSet ensures that values written to a cache are only visible in the
// parent store after the cache was written.
func (s *TestSuite) GetSet(t *testing.T) {
	base, cleanup := s.makeBase()
	defer cleanup()

	owner, token := []byte("owner:alice"), []byte("token:1:1")
	s.AssertGetHas(t, base, owner, nil, false)
	require.NoError(t, base.Set(owner, []byte("1")))
	s.AssertGetHas(t, base, owner, []byte("1"), true)

	op := base.CacheWrap()
	s.AssertGetHas(t, op, owner, []byte("1"), true)
	require.NoError(t, op.Set(token, []byte("alice")))
	s.AssertGetHas(t, op, token, []byte("alice"), true)
	s.AssertGetHas(t, base, token, nil, false)

	require.NoError(t, op.Write())
	s.AssertGetHas(t, base, owner, []byte("1"), true)
	s.AssertGetHas(t, base, token, []byte("alice"), true)

	// A discarded cache leaves no trace.
	failed := base.CacheWrap()
	require.NoError(t, failed.Set([]byte("token:1:2"), []byte("bob")))
	require.NoError(t, failed.Delete(token))
	failed.Discard()
	s.AssertGetHas(t, base, []byte("token:1:2"), nil, false)
	s.AssertGetHas(t, base, token, []byte("alice"), true)

	burn := base.CacheWrap()
	require.NoError(t, burn.Delete(token))
	require.NoError(t, burn.Write())
	s.AssertGetHas(t, base, token, nil, false)
	s.AssertGetHas(t, base, owner, []byte("1"), true)
}

// CacheConflicts checks that a child cache can overwrite and delete values
// of its parent.
func (s *TestSuite) CacheConflicts(t *testing.T) {
	k := func(i int) []byte { return []byte(fmt.Sprintf("key-%02d", i)) }
	v := func(i int) []byte { return []byte(fmt.Sprintf("value-%02d", i)) }

	cases := map[string]struct {
		parentOps     []Op
		childOps      []Op
		parentQueries []Model
		childQueries  []Model
	}{
		"overwrite one, delete another, add a third": {
			parentOps:     []Op{SetOp(k(1), v(1)), SetOp(k(2), v(2))},
			childOps:      []Op{SetOp(k(1), v(11)), SetOp(k(3), v(7)), DelOp(k(2))},
			parentQueries: []Model{Pair(k(1), v(1)), Pair(k(2), v(2)), Pair(k(3), nil)},
			childQueries:  []Model{Pair(k(1), v(11)), Pair(k(2), nil), Pair(k(3), v(7))},
		},
		"delete and set again": {
			parentOps:     []Op{SetOp(k(4), v(4))},
			childOps:      []Op{DelOp(k(4)), SetOp(k(4), v(44))},
			parentQueries: []Model{Pair(k(4), v(4))},
			childQueries:  []Model{Pair(k(4), v(44))},
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			parent, cleanup := s.makeBase()
			defer cleanup()

			for _, op := range tc.parentOps {
				require.NoError(t, op.Apply(parent))
			}
			child := parent.CacheWrap()
			for _, op := range tc.childOps {
				require.NoError(t, op.Apply(child))
			}
			for _, q := range tc.parentQueries {
				s.AssertGetHas(t, parent, q.Key, q.Value, q.Value != nil)
			}
			for _, q := range tc.childQueries {
				s.AssertGetHas(t, child, q.Key, q.Value, q.Value != nil)
			}

			require.NoError(t, child.Write())
			for _, q := range tc.childQueries {
				s.AssertGetHas(t, parent, q.Key, q.Value, q.Value != nil)
			}
		})
	}
}

// Iterators ensures that iteration combines the cache with its parent in
// both directions and respects range limits.
func (s *TestSuite) Iterators(t *testing.T) {
	const size = 40

	parentSet := randModels(size, 8, 16)
	childSet := randModels(size, 8, 16)
	childDel := parentSet[:10]
	both := sortModels(append(append([]Model{}, parentSet[10:]...), childSet...))
	child := sortModels(childSet)

	cases := map[string]struct {
		pre     []Op
		child   []Op
		queries []rangeQuery
	}{
		"child with empty parent": {
			child: makeSetOps(childSet...),
			queries: []rangeQuery{
				{nil, nil, false, child},
				{child[10].Key, nil, false, child[10:]},
				{nil, child[size-8].Key, false, child[:size-8]},
				{child[17].Key, child[28].Key, false, child[17:28]},
				{nil, nil, true, reverse(child)},
				{child[34].Key, nil, true, reverse(child[34:])},
				{nil, child[19].Key, true, reverse(child[:19])},
				{child[6].Key, child[26].Key, true, reverse(child[6:26])},
			},
		},
		"child shadows parent": {
			pre:   makeSetOps(parentSet...),
			child: append(makeSetOps(childSet...), makeDelOps(childDel...)...),
			queries: []rangeQuery{
				{nil, nil, false, both},
				{both[10].Key, nil, false, both[10:]},
				{both[17].Key, both[48].Key, false, both[17:48]},
				{nil, nil, true, reverse(both)},
				{both[6].Key, both[26].Key, true, reverse(both[6:26])},
			},
		},
		"everything deleted": {
			pre:     makeSetOps(parentSet[:5]...),
			child:   makeDelOps(parentSet[:5]...),
			queries: []rangeQuery{{nil, nil, false, nil}, {nil, nil, true, nil}},
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			base, cleanup := s.makeBase()
			defer cleanup()

			for _, op := range tc.pre {
				require.NoError(t, op.Apply(base))
			}
			cache := base.CacheWrap()
			for _, op := range tc.child {
				require.NoError(t, op.Apply(cache))
			}
			for i, q := range tc.queries {
				q.verify(t, i, cache)
			}
		})
	}
}

// AssertGetHas checks both Get and Has results for given key.
func (s *TestSuite) AssertGetHas(t testing.TB, kv ReadOnlyKVStore, key, val []byte, has bool) {
	t.Helper()
	got, err := kv.Get(key)
	require.NoError(t, err)
	require.Equal(t, val, got)
	exists, err := kv.Has(key)
	require.NoError(t, err)
	require.Equal(t, has, exists)
}

type rangeQuery struct {
	start    []byte
	end      []byte
	reverse  bool
	expected []Model
}

func (q rangeQuery) verify(t testing.TB, n int, kv ReadOnlyKVStore) {
	t.Helper()

	var (
		iter Iterator
		err  error
	)
	if q.reverse {
		iter, err = kv.ReverseIterator(q.start, q.end)
	} else {
		iter, err = kv.Iterator(q.start, q.end)
	}
	require.NoError(t, err)
	defer iter.Release()

	for i, want := range q.expected {
		key, value, err := iter.Next()
		require.NoError(t, err, "query %d, element %d", n, i)
		if !bytes.Equal(want.Key, key) {
			t.Fatalf("query %d, element %d: want key %X, got %X", n, i, want.Key, key)
		}
		require.Equal(t, want.Value, value)
	}
	if _, _, err := iter.Next(); !errors.ErrIteratorDone.Is(err) {
		t.Fatalf("query %d: want iterator done, got %+v", n, err)
	}
}

func randBytes(length int) []byte {
	res := make([]byte, length)
	if _, err := rand.Read(res); err != nil {
		panic(err)
	}
	return res
}

func randModels(count, keySize, valueSize int) []Model {
	models := make([]Model, count)
	for i := range models {
		models[i] = Pair(randBytes(keySize), randBytes(valueSize))
	}
	return models
}

func reverse(models []Model) []Model {
	res := make([]Model, len(models))
	for i, m := range models {
		res[len(models)-1-i] = m
	}
	return res
}

func sortModels(models []Model) []Model {
	res := make([]Model, len(models))
	copy(res, models)
	sort.Slice(res, func(i, j int) bool {
		return bytes.Compare(res[i].Key, res[j].Key) < 0
	})
	return res
}

func makeSetOps(ms ...Model) []Op {
	res := make([]Op, len(ms))
	for i, m := range ms {
		res[i] = SetOp(m.Key, m.Value)
	}
	return res
}

func makeDelOps(ms ...Model) []Op {
	res := make([]Op, len(ms))
	for i, m := range ms {
		res[i] = DelOp(m.Key)
	}
	return res
}
