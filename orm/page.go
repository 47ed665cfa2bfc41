package orm

import (
	"github.com/iov-one/nftseries/errors"
)

// DefaultPageLimit is the number of entities returned when a page does not
// declare its limit.
const DefaultPageLimit = 50

// Page selects a window of a listing. Zero values select the first
// DefaultPageLimit entities.
type Page struct {
	FromIndex uint64 `json:"from_index,omitempty"`
	Limit     uint64 `json:"limit,omitempty"`
}

func (p Page) limit() uint64 {
	if p.Limit == 0 {
		return DefaultPageLimit
	}
	return p.Limit
}

// Paginate walks the iterator and calls fn for each entity within the page.
// Every entity is loaded into dest before fn is called, so fn must copy
// anything it wants to keep. Paginate releases the iterator.
func Paginate(it ModelIterator, dest Model, page Page, fn func(key []byte) error) error {
	defer it.Release()

	limit := page.limit()
	for i := uint64(0); i < page.FromIndex+limit; i++ {
		key, err := it.LoadNext(dest)
		switch {
		case errors.ErrIteratorDone.Is(err):
			return nil
		case err != nil:
			return err
		case i < page.FromIndex:
			continue
		}
		if err := fn(key); err != nil {
			return err
		}
	}
	return nil
}
