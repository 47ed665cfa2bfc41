package orm

import (
	"github.com/iov-one/nftseries"
	"github.com/iov-one/nftseries/errors"
)

// Counter keeps an unsigned tally for any number of keys, for example the
// number of tokens held by each account. A missing key counts as zero and a
// key that drops back to zero is removed from the store.
//
// Counter is using following pattern to construct a key:
//    _n.<bucket>:<name>:<key>
type Counter struct {
	prefix []byte
}

// NewCounter returns a counter stored under given bucket and name.
func NewCounter(bucket, name string) Counter {
	return Counter{
		prefix: []byte("_n." + bucket + ":" + name + ":"),
	}
}

func (c Counter) dbKey(key []byte) []byte {
	return append(append([]byte{}, c.prefix...), key...)
}

// Get returns the current value for given key.
func (c Counter) Get(db nftseries.ReadOnlyKVStore, key []byte) (uint64, error) {
	raw, err := db.Get(c.dbKey(key))
	if err != nil {
		return 0, errors.Wrap(err, "cannot load counter")
	}
	return DecodeUint64(raw)
}

// Add changes the value of given key by delta and returns the new value.
// Going below zero fails with ErrOverflow.
func (c Counter) Add(db nftseries.KVStore, key []byte, delta int64) (uint64, error) {
	val, err := c.Get(db, key)
	if err != nil {
		return 0, err
	}
	switch {
	case delta < 0 && uint64(-delta) > val:
		return 0, errors.Wrapf(errors.ErrOverflow, "counter %d cannot be decreased by %d", val, -delta)
	case delta < 0:
		val -= uint64(-delta)
	case val+uint64(delta) < val:
		return 0, errors.Wrapf(errors.ErrOverflow, "counter %d cannot be increased by %d", val, delta)
	default:
		val += uint64(delta)
	}

	if val == 0 {
		err = db.Delete(c.dbKey(key))
	} else {
		err = db.Set(c.dbKey(key), EncodeUint64(val))
	}
	if err != nil {
		return 0, errors.Wrap(err, "cannot store counter")
	}
	return val, nil
}
