package store

// Recorder is implemented by a store that keeps track of all changes
// written through it.
type Recorder interface {
	// KVPairs returns all changed keys. A deleted key maps to a nil
	// value.
	KVPairs() map[string][]byte
}

// RecordingStore wraps a cacheable store and records any change
// operation performed on it. Changes done through a cache wrap are
// recorded only when the cache is written.
type RecordingStore struct {
	CacheableKVStore
	changes map[string][]byte
}

var _ CacheableKVStore = (*RecordingStore)(nil)
var _ Recorder = (*RecordingStore)(nil)

// NewRecordingStore initializes a recording store wrapping given store.
func NewRecordingStore(db CacheableKVStore) *RecordingStore {
	return &RecordingStore{
		CacheableKVStore: db,
		changes:          make(map[string][]byte),
	}
}

// KVPairs implements Recorder.
func (r *RecordingStore) KVPairs() map[string][]byte {
	return r.changes
}

// Set records the change while performing it.
func (r *RecordingStore) Set(key, value []byte) error {
	if err := r.CacheableKVStore.Set(key, value); err != nil {
		return err
	}
	r.changes[string(key)] = value
	return nil
}

// Delete records the change while performing it.
func (r *RecordingStore) Delete(key []byte) error {
	if err := r.CacheableKVStore.Delete(key); err != nil {
		return err
	}
	r.changes[string(key)] = nil
	return nil
}

// NewBatch returns a batch that records operations once written.
func (r *RecordingStore) NewBatch() Batch {
	return NewNonAtomicBatch(r)
}

// CacheWrap returns a cache that writes through this recorder.
func (r *RecordingStore) CacheWrap() KVCacheWrap {
	return NewBTreeCacheWrap(r, r.NewBatch(), nil)
}
