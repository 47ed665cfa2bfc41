package badgerdb

import (
	"testing"

	"github.com/iov-one/nftseries/store"
	"github.com/stretchr/testify/require"
	"github.com/tendermint/tendermint/libs/log"
)

func openInMemory(t testing.TB) *Store {
	t.Helper()
	s, err := Open("", true, log.NewNopLogger())
	require.NoError(t, err)
	return s
}

// cacheable exposes the committed store as a CacheableKVStore so the
// generic test suite can run against it. Writes go through an atomic batch.
type cacheable struct {
	*Store
}

func (c cacheable) Set(key, value []byte) error {
	b := c.NewBatch()
	if err := b.Set(key, value); err != nil {
		return err
	}
	return b.Write()
}

func (c cacheable) Delete(key []byte) error {
	b := c.NewBatch()
	if err := b.Delete(key); err != nil {
		return err
	}
	return b.Write()
}

func constructor(t *testing.T) store.TestStoreConstructor {
	return func() (store.CacheableKVStore, func()) {
		s := openInMemory(t)
		return cacheable{s}, func() { s.Close() }
	}
}

func TestBadgerGetSet(t *testing.T) {
	store.NewTestSuite(constructor(t)).GetSet(t)
}

func TestBadgerCacheConflicts(t *testing.T) {
	store.NewTestSuite(constructor(t)).CacheConflicts(t)
}

func TestBadgerIterators(t *testing.T) {
	store.NewTestSuite(constructor(t)).Iterators(t)
}

func TestCommitVersions(t *testing.T) {
	s := openInMemory(t)
	defer s.Close()

	last, err := s.LatestVersion()
	require.NoError(t, err)
	require.Equal(t, int64(0), last.Version)

	cache := s.CacheWrap()
	require.NoError(t, cache.Set([]byte("token:1:1"), []byte("alice")))
	require.NoError(t, cache.Write())

	first, err := s.Commit()
	require.NoError(t, err)
	require.Equal(t, int64(1), first.Version)
	require.Len(t, first.Hash, 32)

	// Committing without changes keeps the digest.
	second, err := s.Commit()
	require.NoError(t, err)
	require.Equal(t, int64(2), second.Version)
	require.Equal(t, first.Hash, second.Hash)

	latest, err := s.LatestVersion()
	require.NoError(t, err)
	require.Equal(t, second, latest)

	// Bookkeeping keys are never visible.
	it, err := s.Iterator(nil, nil)
	require.NoError(t, err)
	defer it.Release()
	key, _, err := it.Next()
	require.NoError(t, err)
	require.Equal(t, []byte("token:1:1"), key)
	_, _, err = it.Next()
	require.Error(t, err)
}

func TestPersistedBetweenRuns(t *testing.T) {
	dir := t.TempDir()

	s, err := Open(dir, false, nil)
	require.NoError(t, err)
	cache := s.CacheWrap()
	require.NoError(t, cache.Set([]byte("series:1"), []byte("badges")))
	require.NoError(t, cache.Write())
	id, err := s.Commit()
	require.NoError(t, err)
	require.NoError(t, s.Close())

	s, err = Open(dir, false, nil)
	require.NoError(t, err)
	defer s.Close()
	val, err := s.Get([]byte("series:1"))
	require.NoError(t, err)
	require.Equal(t, []byte("badges"), val)
	latest, err := s.LatestVersion()
	require.NoError(t, err)
	require.Equal(t, id, latest)
}
