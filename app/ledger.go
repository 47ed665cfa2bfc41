package app

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/iov-one/nftseries"
	"github.com/iov-one/nftseries/errors"
	"github.com/sasha-s/go-deadlock"
	"github.com/shopspring/decimal"
	"github.com/tendermint/tendermint/libs/log"
)

// Call is a single operation submitted to the ledger.
type Call struct {
	// Caller is the immediate caller, authenticated by whoever submits
	// the call.
	Caller nftseries.AccountID
	// Deposit is the amount attached to the call.
	Deposit decimal.Decimal
	Msg     nftseries.Msg
}

// Response is the outcome of a single call.
type Response struct {
	Code   uint32            `json:"code"`
	Log    string            `json:"log,omitempty"`
	Data   json.RawMessage   `json:"data,omitempty"`
	Events []nftseries.Event `json:"events,omitempty"`
}

// NewResponse returns the response of a call that returned given result
// and error.
func NewResponse(res *nftseries.Result, err error) Response {
	if err != nil {
		return Response{Code: errors.Code(err), Log: err.Error()}
	}
	return Response{Log: res.Log, Data: res.Data, Events: res.Events}
}

// Ledger owns the whole ledger state. Calls are processed one at a time,
// each either applied in full or not at all.
type Ledger struct {
	mu      deadlock.Mutex
	store   nftseries.CommitKVStore
	handler nftseries.Handler
	queries nftseries.QueryRouter
	init    nftseries.Initializer
	logger  log.Logger
}

// NewLedger returns a ledger serving all operations over given store.
func NewLedger(store nftseries.CommitKVStore, logger log.Logger) *Ledger {
	router := NewRouter()
	Routes(router)
	return &Ledger{
		store: store,
		handler: ChainDecorators(
			NewLogging(),
			NewRecovery(),
			NewSavepoint(),
		).WithHandler(router),
		queries: Queries(),
		init:    Initializer(),
		logger:  logger.With("module", "ledger"),
	}
}

// ID returns the ledger id set at genesis, or an empty string if the
// ledger was not initialized.
func (l *Ledger) ID() (string, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return loadLedgerID(l.store)
}

// InitGenesis initializes a new ledger. It fails with ErrDuplicate if the
// ledger was already initialized.
func (l *Ledger) InitGenesis(ctx context.Context, gen Genesis) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	ctx = nftseries.WithLogger(ctx, l.logger)
	batch := l.store.CacheWrap()
	if err := saveLedgerID(batch, gen.LedgerID); err != nil {
		batch.Discard()
		return err
	}
	if err := l.init.FromGenesis(ctx, gen.AppState, batch); err != nil {
		batch.Discard()
		return errors.Wrap(err, "genesis")
	}
	if err := batch.Write(); err != nil {
		return errors.Wrap(err, "write genesis")
	}
	id, err := l.store.Commit()
	if err != nil {
		return errors.Wrap(err, "commit genesis")
	}
	l.logger.Info("ledger initialized", "ledger", gen.LedgerID, "version", id.Version, "hash", fmt.Sprintf("%X", id.Hash))
	return nil
}

// Deliver processes a single call and commits its changes.
func (l *Ledger) Deliver(ctx context.Context, call Call) (*nftseries.Result, error) {
	results, errs, err := l.exec(ctx, []Call{call})
	if err != nil {
		return nil, err
	}
	return results[0], errs[0]
}

// Exec processes calls in order and commits the changes of all successful
// ones together. A failed call does not affect any other call. The returned
// error is set only if the changes could not be committed.
func (l *Ledger) Exec(ctx context.Context, calls ...Call) ([]Response, error) {
	results, errs, err := l.exec(ctx, calls)
	if err != nil {
		return nil, err
	}
	resps := make([]Response, len(calls))
	for i := range calls {
		resps[i] = NewResponse(results[i], errs[i])
	}
	return resps, nil
}

func (l *Ledger) exec(ctx context.Context, calls []Call) ([]*nftseries.Result, []error, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if err := l.requireGenesis(); err != nil {
		return nil, nil, err
	}

	var (
		batch   = l.store.CacheWrap()
		results = make([]*nftseries.Result, len(calls))
		errs    = make([]error, len(calls))
	)
	var applied int
	for i, c := range calls {
		results[i], errs[i] = l.handler.Deliver(l.callContext(ctx, c), batch, c.Msg)
		if errs[i] == nil {
			applied++
		}
	}
	if applied == 0 {
		batch.Discard()
		return results, errs, nil
	}
	if err := batch.Write(); err != nil {
		return nil, nil, errors.Wrap(err, "write")
	}
	id, err := l.store.Commit()
	if err != nil {
		return nil, nil, errors.Wrap(err, "commit")
	}
	l.logger.Debug("committed", "version", id.Version, "hash", fmt.Sprintf("%X", id.Hash), "calls", len(calls), "applied", applied)
	return results, errs, nil
}

func (l *Ledger) requireGenesis() error {
	id, err := loadLedgerID(l.store)
	if err != nil {
		return err
	}
	if id == "" {
		return errors.Wrap(errors.ErrState, "ledger not initialized")
	}
	return nil
}

func (l *Ledger) callContext(ctx context.Context, c Call) context.Context {
	if c.Caller != "" {
		ctx = nftseries.WithCaller(ctx, c.Caller)
	}
	if c.Deposit.IsPositive() {
		ctx = nftseries.WithDeposit(ctx, c.Deposit)
	}
	var path string
	if c.Msg != nil {
		path = c.Msg.Path()
	}
	return nftseries.WithLogger(ctx, l.logger.With("op", path, "caller", c.Caller))
}

// Query answers a read only request against the latest committed state.
func (l *Ledger) Query(path string, data []byte) (interface{}, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if err := l.requireGenesis(); err != nil {
		return nil, err
	}
	h := l.queries.Handler(path)
	if h == nil {
		return nil, errors.Wrapf(errors.ErrMsg, "unknown query path %q", path)
	}
	return h.Query(l.store, data)
}

// Close releases the store.
func (l *Ledger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.store.Close()
}
