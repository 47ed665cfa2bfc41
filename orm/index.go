package orm

import (
	"bytes"

	"github.com/iov-one/nftseries"
	"github.com/iov-one/nftseries/errors"
)

const nativeIdxPrefix = "_i."

// nativeIndex stores every reference under its own key:
//    _i.<bucket>_<index>:<len(value)><value><primary key>
// Index values are length prefixed, so that all references of a single
// value can be found using a prefix scan, ordered by the primary key.
type nativeIndex struct {
	id      []byte
	indexer Indexer
}

func newNativeIndex(bucket, name string, indexer Indexer) nativeIndex {
	return nativeIndex{
		id:      []byte(nativeIdxPrefix + bucket + "_" + name + ":"),
		indexer: indexer,
	}
}

func (idx nativeIndex) valuePrefix(value []byte) []byte {
	return append(append([]byte{}, idx.id...), CompositeKey(value)...)
}

func (idx nativeIndex) value(m Model) ([]byte, error) {
	if m == nil {
		return nil, nil
	}
	return idx.indexer(m)
}

// update moves the reference of given primary key from the value of the
// previous model to the value of the new one. A nil prev means insert, a
// nil next means delete.
func (idx nativeIndex) update(db nftseries.KVStore, key []byte, prev, next Model) error {
	if prev == nil && next == nil {
		return errors.Wrap(errors.ErrHuman, "update requires at least one model")
	}
	oldVal, err := idx.value(prev)
	if err != nil {
		return errors.Wrap(err, "previous index value")
	}
	newVal, err := idx.value(next)
	if err != nil {
		return errors.Wrap(err, "index value")
	}
	if prev != nil && next != nil && bytes.Equal(oldVal, newVal) {
		return nil
	}
	if oldVal != nil {
		if err := db.Delete(append(idx.valuePrefix(oldVal), key...)); err != nil {
			return err
		}
	}
	if newVal != nil {
		if err := db.Set(append(idx.valuePrefix(newVal), key...), []byte{}); err != nil {
			return err
		}
	}
	return nil
}

// keys returns all primary keys referenced under given value.
func (idx nativeIndex) keys(db nftseries.ReadOnlyKVStore, value []byte, reverse bool) ([][]byte, error) {
	prefix := idx.valuePrefix(value)
	start, end := prefixRange(prefix)
	var (
		it  nftseries.Iterator
		err error
	)
	if reverse {
		it, err = db.ReverseIterator(start, end)
	} else {
		it, err = db.Iterator(start, end)
	}
	if err != nil {
		return nil, errors.Wrap(err, "cannot create iterator")
	}
	defer it.Release()

	var keys [][]byte
	for {
		key, _, err := it.Next()
		if errors.ErrIteratorDone.Is(err) {
			return keys, nil
		}
		if err != nil {
			return nil, err
		}
		keys = append(keys, append([]byte{}, key[len(prefix):]...))
	}
}
