package store

import (
	"bytes"

	"github.com/google/btree"
	"github.com/iov-one/nftseries/errors"
)

// ascendBtree collects all items of the range [start, end) in ascending
// order. Deleted items are kept so that they can shadow the parent.
func ascendBtree(bt *btree.BTree, start, end []byte) []entry {
	var res []entry
	insert := func(item btree.Item) bool {
		res = append(res, item.(entry))
		return true
	}
	switch {
	case start == nil && end == nil:
		bt.Ascend(insert)
	case start == nil:
		bt.AscendLessThan(entry{key: end}, insert)
	case end == nil:
		bt.AscendGreaterOrEqual(entry{key: start}, insert)
	default:
		bt.AscendRange(entry{key: start}, entry{key: end}, insert)
	}
	return res
}

// descendBtree collects all items of the range [start, end) in descending
// order.
func descendBtree(bt *btree.BTree, start, end []byte) []entry {
	var res []entry
	insert := func(item btree.Item) bool {
		k := item.(entry)
		// DescendLessOrEqual includes the end, which is exclusive.
		if end != nil && bytes.Equal(k.key, end) {
			return true
		}
		if start != nil && bytes.Compare(k.key, start) < 0 {
			return false
		}
		res = append(res, k)
		return true
	}
	if end == nil {
		bt.Descend(insert)
	} else {
		bt.DescendLessOrEqual(entry{key: end}, insert)
	}
	return res
}

// mergeIterator combines the cached items with the items of the parent
// store, taking into consideration overwrites and deletes.
type mergeIterator struct {
	ours    []entry
	parent  Iterator
	reverse bool

	// Look ahead of the parent iterator.
	pkey, pvalue []byte
	pdone        bool
	ploaded      bool
}

var _ Iterator = (*mergeIterator)(nil)

func newMergeIterator(ours []entry, parent Iterator, reverse bool) *mergeIterator {
	return &mergeIterator{
		ours:    ours,
		parent:  parent,
		reverse: reverse,
	}
}

func (m *mergeIterator) loadParent() error {
	if m.ploaded || m.pdone {
		return nil
	}
	k, v, err := m.parent.Next()
	if errors.ErrIteratorDone.Is(err) {
		m.pdone = true
		return nil
	}
	if err != nil {
		return err
	}
	m.pkey, m.pvalue, m.ploaded = k, v, true
	return nil
}

// first returns true if a comes before b in the iteration order.
func (m *mergeIterator) first(a, b []byte) bool {
	if m.reverse {
		return bytes.Compare(a, b) > 0
	}
	return bytes.Compare(a, b) < 0
}

// Next implements Iterator.
func (m *mergeIterator) Next() (key, value []byte, err error) {
	for {
		if err := m.loadParent(); err != nil {
			return nil, nil, err
		}

		if len(m.ours) == 0 {
			if m.pdone {
				return nil, nil, errors.ErrIteratorDone
			}
			m.ploaded = false
			return m.pkey, m.pvalue, nil
		}

		item := m.ours[0]
		if !m.pdone {
			switch {
			case m.first(m.pkey, item.key):
				m.ploaded = false
				return m.pkey, m.pvalue, nil
			case bytes.Equal(m.pkey, item.key):
				// Our value shadows the parent one.
				m.ploaded = false
			}
		}

		m.ours = m.ours[1:]
		if item.deleted {
			continue
		}
		return item.key, item.value, nil
	}
}

// Release implements Iterator.
func (m *mergeIterator) Release() {
	m.ours = nil
	m.parent.Release()
}
