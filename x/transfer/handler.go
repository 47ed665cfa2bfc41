package transfer

import (
	"context"

	"github.com/iov-one/nftseries"
	"github.com/iov-one/nftseries/errors"
	"github.com/iov-one/nftseries/orm"
	"github.com/iov-one/nftseries/x/series"
	"github.com/iov-one/nftseries/x/sigs"
	"github.com/iov-one/nftseries/x/token"
)

// RegisterRoutes registers the transfer handlers.
func RegisterRoutes(r nftseries.Registry) {
	r.Handle(pathTransfer, &transferHandler{})
	r.Handle(pathBatchTransfer, &batchTransferHandler{})
}

type transferHandler struct{}

func (h *transferHandler) Deliver(ctx context.Context, db nftseries.KVStore, msg nftseries.Msg) (*nftseries.Result, error) {
	var m TransferMsg
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
	grant, authorized, err := authorize(ctx, db, t, &m)
	if err != nil {
		return nil, err
	}

	from := t.Owner
	if err := token.Move(db, t, m.Receiver); err != nil {
		return nil, err
	}
	if err := grant.Commit(db); err != nil {
		return nil, err
	}

	nftseries.GetLogger(ctx).Info("token transferred",
		"token", m.TokenID, "from", from, "to", m.Receiver, "authorized", authorized)
	return &nftseries.Result{
		Log:    "token transferred",
		Events: []nftseries.Event{nftseries.NewTransferEvent(from, m.Receiver, authorized, []string{t.ID()}, m.Memo)},
	}, nil
}

// authorize returns the grant the transfer is executed with and the account
// that acted on behalf of the owner, if any. An approved caller without a
// proof does not consume a nonce.
func authorize(ctx context.Context, db nftseries.KVStore, t *token.Token, m *TransferMsg) (*sigs.Grant, nftseries.AccountID, error) {
	caller, _ := nftseries.GetCaller(ctx)
	if m.Proof.IsEmpty() && caller != "" && caller != t.Owner && t.IsApproved(caller, m.ApprovalID) {
		return &sigs.Grant{Account: t.Owner}, caller, nil
	}

	grant, err := sigs.Authorize(ctx, db, t.Owner, m.Proof)
	if err != nil {
		return nil, "", err
	}
	return grant, grant.Relayer, nil
}

type batchTransferHandler struct{}

func (h *batchTransferHandler) Deliver(ctx context.Context, db nftseries.KVStore, msg nftseries.Msg) (*nftseries.Result, error) {
	var m BatchTransferMsg
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
	if grant.Account == m.Receiver {
		return nil, errors.Field("Receiver", errors.ErrInput, "cannot transfer to the owner")
	}

	tokens, err := token.ListForOwnerInSeries(db, grant.Account, m.SeriesID, orm.Page{Limit: conf.BatchLimit(m.Amount)})
	if err != nil {
		return nil, err
	}
	if len(tokens) == 0 {
		return nil, errors.Wrapf(errors.ErrNotFound, "%s holds no tokens of series %d", grant.Account, m.SeriesID)
	}

	ids := make([]string, 0, len(tokens))
	for _, t := range tokens {
		if err := token.Move(db, t, m.Receiver); err != nil {
			return nil, err
		}
		ids = append(ids, t.ID())
	}
	if err := grant.Commit(db); err != nil {
		return nil, err
	}

	nftseries.GetLogger(ctx).Info("tokens transferred",
		"series", m.SeriesID, "from", grant.Account, "to", m.Receiver, "amount", len(ids), "delegated", grant.Delegated())
	return &nftseries.Result{
		Log:    "tokens transferred",
		Events: []nftseries.Event{nftseries.NewTransferEvent(grant.Account, m.Receiver, grant.Relayer, ids, m.Memo)},
	}, nil
}
