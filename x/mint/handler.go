package mint

import (
	"context"
	"encoding/json"

	"github.com/iov-one/nftseries"
	"github.com/iov-one/nftseries/crypto"
	"github.com/iov-one/nftseries/errors"
	"github.com/iov-one/nftseries/x/series"
	"github.com/iov-one/nftseries/x/sigs"
	"github.com/shopspring/decimal"
)

// RegisterRoutes registers the mint handlers.
func RegisterRoutes(r nftseries.Registry) {
	r.Handle(pathMint, &mintHandler{})
	r.Handle(pathBatchMint, &batchMintHandler{})
}

// Result is the data returned by a successful mint.
type Result struct {
	TokenIDs []string `json:"token_ids"`
	// Refund is the part of the deposit that was not spent.
	Refund string `json:"refund,omitempty"`
}

type mintHandler struct{}

func (h *mintHandler) Deliver(ctx context.Context, db nftseries.KVStore, msg nftseries.Msg) (*nftseries.Result, error) {
	var m MintMsg
	if err := nftseries.LoadMsg(msg, &m); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return mint(ctx, db, &mintRequest{seriesID: m.SeriesID, amount: 1, receiver: m.Receiver, proof: m.Proof, memo: m.Memo})
}

type batchMintHandler struct{}

func (h *batchMintHandler) Deliver(ctx context.Context, db nftseries.KVStore, msg nftseries.Msg) (*nftseries.Result, error) {
	var m BatchMintMsg
	if err := nftseries.LoadMsg(msg, &m); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return mint(ctx, db, &mintRequest{seriesID: m.SeriesID, amount: m.Amount, receiver: m.Receiver, proof: m.Proof, memo: m.Memo})
}

// mintRequest is the common form of single and batch mint messages.
type mintRequest struct {
	seriesID uint64
	amount   uint64
	receiver nftseries.AccountID
	proof    sigs.Proof
	memo     string
}

func mint(ctx context.Context, db nftseries.KVStore, req *mintRequest) (*nftseries.Result, error) {
	conf, err := series.LoadConfiguration(db)
	if err != nil {
		return nil, err
	}
	if req.amount > uint64(conf.MaxBatchSize) {
		return nil, errors.Wrapf(errors.ErrInput, "cannot mint more than %d tokens at once", conf.MaxBatchSize)
	}
	s, err := series.Get(db, req.seriesID)
	if err != nil {
		return nil, err
	}

	pub, sig, err := req.proof.Parse()
	if err != nil {
		return nil, err
	}
	caller, _ := nftseries.GetCaller(ctx)
	receiver := req.receiver
	switch {
	case receiver != "":
	case pub != nil:
		receiver = pub.Account()
	case caller != "":
		receiver = caller
	default:
		return nil, errors.Wrap(errors.ErrUnauthorized, "no receiver")
	}

	var (
		refund   decimal.Decimal
		grant    *sigs.Grant
		approver nftseries.AccountID
	)
	if s.HasPrice() {
		cost, err := s.PriceOf(req.amount)
		if err != nil {
			return nil, err
		}
		deposit := nftseries.GetDeposit(ctx)
		if deposit.LessThan(cost) {
			return nil, errors.Wrapf(errors.ErrAmount, "deposit %s does not cover the price %s", deposit, cost)
		}
		refund = deposit.Sub(cost)
		grant = &sigs.Grant{Account: caller}
	} else {
		grant, err = authorize(db, conf, caller, receiver, sig)
		if err != nil {
			return nil, err
		}
		if grant.Delegated() {
			approver = conf.Owner
		}
	}

	tokens, err := Issue(db, s, receiver, approver, req.amount)
	if err != nil {
		return nil, err
	}
	if err := grant.Commit(db); err != nil {
		return nil, err
	}

	ids := TokenIDs(tokens)
	data, err := json.Marshal(Result{TokenIDs: ids, Refund: refundString(refund)})
	if err != nil {
		return nil, errors.Wrap(errors.ErrHuman, err.Error())
	}
	nftseries.GetLogger(ctx).Info("tokens minted",
		"series", s.ID, "receiver", receiver, "amount", len(ids), "delegated", grant.Delegated())
	return &nftseries.Result{
		Data:   data,
		Log:    "tokens minted",
		Events: []nftseries.Event{nftseries.NewMintEvent(receiver, ids, req.memo)},
	}, nil
}

// authorize applies the gate of an unpriced series. An approved minter can
// mint directly. Anyone else needs a signature of the ledger owner key over
// the next nonce of the receiver.
func authorize(db nftseries.ReadOnlyKVStore, conf *series.Configuration, caller, receiver nftseries.AccountID, sig crypto.Signature) (*sigs.Grant, error) {
	ok, err := series.HasRole(db, series.RoleMinter, caller)
	if err != nil {
		return nil, err
	}
	if ok {
		return &sigs.Grant{Account: caller}, nil
	}
	if sig == nil {
		return nil, errors.Wrapf(errors.ErrUnauthorized, "%q is not an approved minter", caller)
	}
	ownerKey, err := conf.OwnerKey()
	if err != nil {
		return nil, err
	}
	return sigs.VerifySignature(db, receiver, ownerKey, sig)
}

func refundString(d decimal.Decimal) string {
	if d.IsZero() {
		return ""
	}
	return d.String()
}
