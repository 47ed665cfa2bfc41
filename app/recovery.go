package app

import (
	"context"

	"github.com/iov-one/nftseries"
	"github.com/iov-one/nftseries/errors"
)

// Recovery is a decorator to recover from panics in handlers,
// so we can log them as errors
type Recovery struct{}

var _ Decorator = Recovery{}

// NewRecovery creates a Recovery decorator
func NewRecovery() Recovery {
	return Recovery{}
}

// Deliver turns panics into ErrPanic
func (r Recovery) Deliver(ctx context.Context, db nftseries.KVStore, msg nftseries.Msg, next nftseries.Handler) (_ *nftseries.Result, err error) {
	defer errors.Recover(&err)
	return next.Deliver(ctx, db, msg)
}
