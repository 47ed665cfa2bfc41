package app

import (
	"context"

	"github.com/iov-one/nftseries"
	"github.com/iov-one/nftseries/errors"
)

// Savepoint isolates all writes of an operation. The writes are applied
// only when the operation succeeds, otherwise they are dropped.
type Savepoint struct{}

var _ Decorator = Savepoint{}

// NewSavepoint creates a Savepoint decorator
func NewSavepoint() Savepoint {
	return Savepoint{}
}

// Deliver runs the next handler on a cache of the store. A store that
// cannot be cache wrapped is rejected, as the operation could not be rolled
// back.
func (s Savepoint) Deliver(ctx context.Context, db nftseries.KVStore, msg nftseries.Msg, next nftseries.Handler) (*nftseries.Result, error) {
	cstore, ok := db.(nftseries.CacheableKVStore)
	if !ok {
		return nil, errors.Wrapf(errors.ErrDatabase, "%T cannot be cache wrapped", db)
	}

	cache := cstore.CacheWrap()
	res, err := next.Deliver(ctx, cache, msg)
	if err != nil {
		cache.Discard()
		return nil, err
	}
	if err := cache.Write(); err != nil {
		return nil, errors.Wrap(err, "writing savepoint")
	}
	return res, nil
}
