package app

import (
	"context"
	"time"

	"github.com/iov-one/nftseries"
)

// Logging is a decorator to log operations as they pass through
type Logging struct{}

var _ Decorator = Logging{}

// NewLogging creates a Logging decorator
func NewLogging() Logging {
	return Logging{}
}

// Deliver logs error -> debug, success -> info. Every event of a
// successful operation is logged in its textual form.
func (l Logging) Deliver(ctx context.Context, db nftseries.KVStore, msg nftseries.Msg, next nftseries.Handler) (*nftseries.Result, error) {
	start := time.Now()
	res, err := next.Deliver(ctx, db, msg)

	logger := nftseries.GetLogger(ctx).With("duration", time.Since(start)/time.Microsecond)
	if err != nil {
		// Rejected operations are routine, for example a replayed
		// signature.
		logger.Debug("operation rejected", "err", err)
		return nil, err
	}
	logger.Info(res.Log, "events", len(res.Events))
	for _, e := range res.Events {
		logger.Info(e.String())
	}
	return res, nil
}
