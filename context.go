package nftseries

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/tendermint/tendermint/libs/log"
)

type contextKey int // local to the nftseries module

const (
	contextKeyCaller contextKey = iota
	contextKeyLogger
	contextKeyDeposit
)

// DefaultLogger is used for all context that have not
// set anything themselves
var DefaultLogger = log.NewNopLogger()

// WithCaller sets the immediate caller of an operation. This is the only
// identity that is authenticated by the execution environment itself.
func WithCaller(ctx context.Context, caller AccountID) context.Context {
	if _, ok := ctx.Value(contextKeyCaller).(AccountID); ok {
		panic("caller already set")
	}
	return context.WithValue(ctx, contextKeyCaller, caller)
}

// GetCaller returns the immediate caller of an operation, if set.
func GetCaller(ctx context.Context) (AccountID, bool) {
	c, ok := ctx.Value(contextKeyCaller).(AccountID)
	return c, ok
}

// WithLogger sets the logger for this context.
func WithLogger(ctx context.Context, logger log.Logger) context.Context {
	return context.WithValue(ctx, contextKeyLogger, logger)
}

// GetLogger returns the currently set logger, or DefaultLogger if none was
// set.
func GetLogger(ctx context.Context) log.Logger {
	if l, ok := ctx.Value(contextKeyLogger).(log.Logger); ok {
		return l
	}
	return DefaultLogger
}

// WithLogInfo accepts keyvalue pairs, and returns another context like this,
// after passing all the keyvals to the Logger.
func WithLogInfo(ctx context.Context, keyvals ...interface{}) context.Context {
	return WithLogger(ctx, GetLogger(ctx).With(keyvals...))
}

// WithDeposit sets the amount attached by the caller to an operation.
func WithDeposit(ctx context.Context, amount decimal.Decimal) context.Context {
	if _, ok := ctx.Value(contextKeyDeposit).(decimal.Decimal); ok {
		panic("deposit already set")
	}
	return context.WithValue(ctx, contextKeyDeposit, amount)
}

// GetDeposit returns the amount attached to an operation. Zero is returned
// if nothing was attached.
func GetDeposit(ctx context.Context) decimal.Decimal {
	if d, ok := ctx.Value(contextKeyDeposit).(decimal.Decimal); ok {
		return d
	}
	return decimal.Zero
}
