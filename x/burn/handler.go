package burn

import (
	"context"

	"github.com/iov-one/nftseries"
	"github.com/iov-one/nftseries/errors"
	"github.com/iov-one/nftseries/orm"
	"github.com/iov-one/nftseries/x/series"
	"github.com/iov-one/nftseries/x/sigs"
	"github.com/iov-one/nftseries/x/token"
)

// RegisterRoutes registers the burn handlers.
func RegisterRoutes(r nftseries.Registry) {
	r.Handle(pathBurn, &burnHandler{})
	r.Handle(pathBatchBurn, &batchBurnHandler{})
}

type burnHandler struct{}

func (h *burnHandler) Deliver(ctx context.Context, db nftseries.KVStore, msg nftseries.Msg) (*nftseries.Result, error) {
	var m BurnMsg
	if err := nftseries.LoadMsg(msg, &m); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}

	t, err := token.Get(db, m.TokenID)
	if err != nil {
		return nil, err
	}
	// A proof key can only act as the owner if it is the owner's key.
	grant, err := sigs.Authorize(ctx, db, t.Owner, m.Proof)
	if err != nil {
		return nil, err
	}

	if err := token.Remove(db, t); err != nil {
		return nil, err
	}
	if err := grant.Commit(db); err != nil {
		return nil, err
	}

	ids := []string{t.ID()}
	nftseries.GetLogger(ctx).Info("token burned", "token", m.TokenID, "owner", t.Owner, "delegated", grant.Delegated())
	return &nftseries.Result{
		Log:    "token burned",
		Events: []nftseries.Event{nftseries.NewBurnEvent(t.Owner, grant.Relayer, ids, m.Memo)},
	}, nil
}

type batchBurnHandler struct{}

func (h *batchBurnHandler) Deliver(ctx context.Context, db nftseries.KVStore, msg nftseries.Msg) (*nftseries.Result, error) {
	var m BatchBurnMsg
	if err := nftseries.LoadMsg(msg, &m); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	conf, err := series.LoadConfiguration(db)
	if err != nil {
		return nil, err
	}
	grant, err := sigs.Authorize(ctx, db, m.Owner, m.Proof)
	if err != nil {
		return nil, err
	}

	limit := conf.BatchLimit(m.Amount)
	tokens, err := token.ListForOwnerInSeries(db, grant.Account, m.SeriesID, orm.Page{Limit: limit})
	if err != nil {
		return nil, err
	}
	if len(tokens) == 0 {
		return nil, errors.Wrapf(errors.ErrNotFound, "%s holds no tokens of series %d", grant.Account, m.SeriesID)
	}

	ids := make([]string, 0, len(tokens))
	for _, t := range tokens {
		if err := token.Remove(db, t); err != nil {
			return nil, err
		}
		ids = append(ids, t.ID())
	}
	if err := grant.Commit(db); err != nil {
		return nil, err
	}

	nftseries.GetLogger(ctx).Info("tokens burned",
		"series", m.SeriesID, "owner", grant.Account, "amount", len(ids), "delegated", grant.Delegated())
	return &nftseries.Result{
		Log:    "tokens burned",
		Events: []nftseries.Event{nftseries.NewBurnEvent(grant.Account, grant.Relayer, ids, m.Memo)},
	}, nil
}
