package badgerdb

import (
	"bytes"

	"github.com/dgraph-io/badger/v3"
	"github.com/iov-one/nftseries/errors"
)

// iterator walks the keys of [start, end) of a read only badger
// transaction.
type iterator struct {
	txn     *badger.Txn
	it      *badger.Iterator
	start   []byte
	end     []byte
	reverse bool
	started bool
	done    bool
}

func (s *Store) newIterator(start, end []byte, reverse bool) *iterator {
	txn := s.db.NewTransaction(false)
	opts := badger.DefaultIteratorOptions
	opts.Reverse = reverse
	return &iterator{
		txn:     txn,
		it:      txn.NewIterator(opts),
		start:   start,
		end:     end,
		reverse: reverse,
	}
}

func (i *iterator) seek() {
	switch {
	case !i.reverse && i.start != nil:
		i.it.Seek(i.start)
	case i.reverse && i.end != nil:
		// In reverse mode this finds the largest key lower or equal to end.
		i.it.Seek(i.end)
	default:
		i.it.Rewind()
	}
}

// Next implements Iterator.
func (i *iterator) Next() (key, value []byte, err error) {
	if i.done {
		return nil, nil, errors.ErrIteratorDone
	}
	if i.started {
		i.it.Next()
	} else {
		i.seek()
		i.started = true
	}

	for ; i.it.Valid(); i.it.Next() {
		item := i.it.Item()
		k := item.KeyCopy(nil)
		if i.reverse {
			if i.start != nil && bytes.Compare(k, i.start) < 0 {
				break
			}
			if i.end != nil && bytes.Compare(k, i.end) >= 0 {
				continue
			}
		} else if i.end != nil && bytes.Compare(k, i.end) >= 0 {
			break
		}
		if bytes.HasPrefix(k, metaPrefix) {
			continue
		}
		v, err := item.ValueCopy(nil)
		if err != nil {
			return nil, nil, errors.Wrap(errors.ErrDatabase, err.Error())
		}
		return k, v, nil
	}
	i.done = true
	return nil, nil, errors.ErrIteratorDone
}

// Release implements Iterator.
func (i *iterator) Release() {
	i.it.Close()
	i.txn.Discard()
}
