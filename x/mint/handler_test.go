package mint

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/iov-one/nftseries"
	"github.com/iov-one/nftseries/crypto"
	"github.com/iov-one/nftseries/errors"
	"github.com/iov-one/nftseries/seriestest"
	"github.com/iov-one/nftseries/seriestest/assert"
	"github.com/iov-one/nftseries/store"
	"github.com/iov-one/nftseries/x/series"
	"github.com/iov-one/nftseries/x/sigs"
	"github.com/iov-one/nftseries/x/token"
	"github.com/shopspring/decimal"
)

const (
	owner   nftseries.AccountID = "gateway.near"
	relayer nftseries.AccountID = "relayer.near"
	alice   nftseries.AccountID = "alice.near"
)

var ownerKey = seriestest.KeyFromSeed(1)

// newLedger returns a store with an initialized ledger and given series
// created by the owner.
func newLedger(t testing.TB, all ...*series.Series) nftseries.CacheableKVStore {
	t.Helper()
	db := store.MemStore()
	conf, err := json.Marshal(map[string]interface{}{
		series.ConfigurationPkg: map[string]interface{}{
			"owner":            owner,
			"owner_public_key": crypto.EncodePublicKey(ownerKey.PublicKey()),
			"max_batch_size":   10,
		},
	})
	assert.Nil(t, err)
	var init series.Initializer
	assert.Nil(t, init.FromGenesis(context.Background(), nftseries.Options{"conf": conf}, db))
	for _, s := range all {
		s.Owner = owner
		assert.Nil(t, series.Create(db, s))
	}
	return db
}

func copies(n uint64) *uint64 {
	return &n
}

type router map[string]nftseries.Handler

func (r router) Handle(path string, h nftseries.Handler) {
	r[path] = h
}

func deliver(ctx context.Context, db nftseries.CacheableKVStore, caller nftseries.AccountID, msg nftseries.Msg) (*nftseries.Result, error) {
	r := make(router)
	RegisterRoutes(r)
	if caller != "" {
		ctx = nftseries.WithCaller(ctx, caller)
	}
	cache := db.CacheWrap()
	res, err := r[msg.Path()].Deliver(ctx, cache, msg)
	if err != nil {
		cache.Discard()
		return nil, err
	}
	return res, cache.Write()
}

func TestMint(t *testing.T) {
	cases := map[string]struct {
		caller        nftseries.AccountID
		msg           nftseries.Msg
		wantErr       *errors.Error
		wantIDs       []string
		wantOwner     nftseries.AccountID
		wantNonce     uint64
		wantApprovals map[nftseries.AccountID]uint64
	}{
		"approved minter": {
			caller:    owner,
			msg:       &MintMsg{SeriesID: 1, Receiver: alice},
			wantIDs:   []string{"1:1"},
			wantOwner: alice,
		},
		"relayer with the owner signature": {
			caller:        relayer,
			msg:           &MintMsg{SeriesID: 1, Receiver: alice, Proof: sigs.Proof{Signature: sigs.SignNonce(ownerKey, 1)}},
			wantIDs:       []string{"1:1"},
			wantOwner:     alice,
			wantNonce:     1,
			wantApprovals: map[nftseries.AccountID]uint64{owner: 0},
		},
		"signature of the wrong nonce": {
			caller:  relayer,
			msg:     &MintMsg{SeriesID: 1, Receiver: alice, Proof: sigs.Proof{Signature: sigs.SignNonce(ownerKey, 2)}},
			wantErr: errors.ErrUnauthorized,
		},
		"signature of another key": {
			caller:  relayer,
			msg:     &MintMsg{SeriesID: 1, Receiver: alice, Proof: sigs.Proof{Signature: sigs.SignNonce(seriestest.KeyFromSeed(2), 1)}},
			wantErr: errors.ErrUnauthorized,
		},
		"no signature": {
			caller:  relayer,
			msg:     &MintMsg{SeriesID: 1, Receiver: alice},
			wantErr: errors.ErrUnauthorized,
		},
		"malformed signature": {
			caller:  relayer,
			msg:     &MintMsg{SeriesID: 1, Receiver: alice, Proof: sigs.Proof{Signature: []byte("short")}},
			wantErr: errors.ErrInput,
		},
		"unknown series": {
			caller:  owner,
			msg:     &MintMsg{SeriesID: 9, Receiver: alice},
			wantErr: errors.ErrNotFound,
		},
		"batch mint": {
			caller:    owner,
			msg:       &BatchMintMsg{SeriesID: 2, Amount: 3, Receiver: alice},
			wantIDs:   []string{"2:1", "2:2", "2:3"},
			wantOwner: alice,
		},
		"batch over the cap fails whole": {
			caller:  owner,
			msg:     &BatchMintMsg{SeriesID: 2, Amount: 6, Receiver: alice},
			wantErr: errors.ErrLimit,
		},
		"batch over the batch size": {
			caller:  owner,
			msg:     &BatchMintMsg{SeriesID: 1, Amount: 11, Receiver: alice},
			wantErr: errors.ErrInput,
		},
		"zero amount": {
			caller:  owner,
			msg:     &BatchMintMsg{SeriesID: 1, Receiver: alice},
			wantErr: errors.ErrInput,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			db := newLedger(t,
				&series.Series{Type: series.Unlimited, Metadata: &series.Metadata{Title: "open"}},
				&series.Series{Type: series.Limited, Metadata: &series.Metadata{Copies: copies(5)}},
			)

			res, err := deliver(context.Background(), db, tc.caller, tc.msg)
			assert.IsErr(t, tc.wantErr, err)
			if tc.wantErr != nil {
				supply, err := token.TotalSupply(db)
				assert.Nil(t, err)
				assert.Equal(t, uint64(0), supply)
				return
			}

			var got Result
			assert.Nil(t, json.Unmarshal(res.Data, &got))
			assert.Equal(t, tc.wantIDs, got.TokenIDs)
			assert.Equal(t, 1, len(res.Events))
			assert.Equal(t, nftseries.EventMint, res.Events[0].Kind)
			assert.Equal(t, tc.wantIDs, res.Events[0].TokenIDs())

			for _, id := range tc.wantIDs {
				tok, err := token.Get(db, id)
				assert.Nil(t, err)
				assert.Equal(t, tc.wantOwner, tok.Owner)
				assert.Equal(t, tc.wantApprovals, tok.Approvals)
			}
			supply, err := token.SupplyForOwner(db, tc.wantOwner)
			assert.Nil(t, err)
			assert.Equal(t, uint64(len(tc.wantIDs)), supply)

			nonce, err := sigs.CurrentNonce(db, tc.wantOwner)
			assert.Nil(t, err)
			assert.Equal(t, tc.wantNonce, nonce)
		})
	}
}

func TestMintSignatureIsSingleUse(t *testing.T) {
	db := newLedger(t, &series.Series{Type: series.Unlimited, Metadata: &series.Metadata{}})
	msg := &BatchMintMsg{SeriesID: 1, Amount: 4, Receiver: alice, Proof: sigs.Proof{Signature: sigs.SignNonce(ownerKey, 1)}}

	_, err := deliver(context.Background(), db, relayer, msg)
	assert.Nil(t, err)
	// A batch consumes a single nonce.
	nonce, err := sigs.CurrentNonce(db, alice)
	assert.Nil(t, err)
	assert.Equal(t, uint64(1), nonce)

	_, err = deliver(context.Background(), db, relayer, msg)
	assert.IsErr(t, errors.ErrUnauthorized, err)

	msg.Proof.Signature = sigs.SignNonce(ownerKey, 2)
	_, err = deliver(context.Background(), db, relayer, msg)
	assert.Nil(t, err)
	supply, err := token.SupplyForOwner(db, alice)
	assert.Nil(t, err)
	assert.Equal(t, uint64(8), supply)
}

func TestMintToImplicitAccount(t *testing.T) {
	db := newLedger(t, &series.Series{Type: series.Unlimited, Metadata: &series.Metadata{}})
	user, implicit := seriestest.NewImplicitAccount()

	msg := &MintMsg{SeriesID: 1, Proof: sigs.Proof{
		PublicKey: crypto.EncodePublicKey(user.PublicKey()),
		Signature: sigs.SignNonce(ownerKey, 1),
	}}
	_, err := deliver(context.Background(), db, relayer, msg)
	assert.Nil(t, err)

	tok, err := token.Get(db, "1:1")
	assert.Nil(t, err)
	assert.Equal(t, implicit, tok.Owner)
}

func TestEditionsAreNeverReused(t *testing.T) {
	db := newLedger(t, &series.Series{Type: series.Limited, Metadata: &series.Metadata{Copies: copies(2)}})

	_, err := deliver(context.Background(), db, owner, &BatchMintMsg{SeriesID: 1, Amount: 2, Receiver: alice})
	assert.Nil(t, err)

	tok, err := token.Get(db, "1:1")
	assert.Nil(t, err)
	assert.Nil(t, token.Remove(db, tok))

	// The burned edition does not free a slot.
	_, err = deliver(context.Background(), db, owner, &MintMsg{SeriesID: 1, Receiver: alice})
	assert.IsErr(t, errors.ErrLimit, err)
}

func TestPricedMint(t *testing.T) {
	db := newLedger(t, &series.Series{Type: series.Unlimited, Metadata: &series.Metadata{}, Price: "1.5"})

	// Without enough deposit.
	ctx := nftseries.WithDeposit(context.Background(), decimal.RequireFromString("4"))
	_, err := deliver(ctx, db, alice, &BatchMintMsg{SeriesID: 1, Amount: 3})
	assert.IsErr(t, errors.ErrAmount, err)

	// Approved minters pay too.
	_, err = deliver(context.Background(), db, owner, &MintMsg{SeriesID: 1, Receiver: alice})
	assert.IsErr(t, errors.ErrAmount, err)

	ctx = nftseries.WithDeposit(context.Background(), decimal.RequireFromString("5"))
	res, err := deliver(ctx, db, alice, &BatchMintMsg{SeriesID: 1, Amount: 3})
	assert.Nil(t, err)
	var got Result
	assert.Nil(t, json.Unmarshal(res.Data, &got))
	assert.Equal(t, "0.5", got.Refund)
	assert.Equal(t, []string{"1:1", "1:2", "1:3"}, got.TokenIDs)

	tok, err := token.Get(db, "1:3")
	assert.Nil(t, err)
	assert.Equal(t, alice, tok.Owner)
}

func TestMintHandlersRejectOtherMessages(t *testing.T) {
	db := newLedger(t, &series.Series{Type: series.Unlimited, Metadata: &series.Metadata{}})
	ctx := nftseries.WithCaller(context.Background(), owner)

	_, err := (&mintHandler{}).Deliver(ctx, db, &BatchMintMsg{SeriesID: 1, Amount: 1, Receiver: alice})
	assert.IsErr(t, errors.ErrType, err)
	_, err = (&batchMintHandler{}).Deliver(ctx, db, &MintMsg{SeriesID: 1, Receiver: alice})
	assert.IsErr(t, errors.ErrType, err)
	_, err = (&batchMintHandler{}).Deliver(ctx, db, nil)
	assert.IsErr(t, errors.ErrEmpty, err)

	supply, err := token.TotalSupply(db)
	assert.Nil(t, err)
	assert.Equal(t, uint64(0), supply)
}
