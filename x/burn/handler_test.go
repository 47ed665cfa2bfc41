package burn

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/iov-one/nftseries"
	"github.com/iov-one/nftseries/crypto"
	"github.com/iov-one/nftseries/errors"
	"github.com/iov-one/nftseries/orm"
	"github.com/iov-one/nftseries/seriestest"
	"github.com/iov-one/nftseries/seriestest/assert"
	"github.com/iov-one/nftseries/store"
	"github.com/iov-one/nftseries/x/mint"
	"github.com/iov-one/nftseries/x/series"
	"github.com/iov-one/nftseries/x/sigs"
	"github.com/iov-one/nftseries/x/token"
)

const (
	owner   nftseries.AccountID = "gateway.near"
	relayer nftseries.AccountID = "relayer.near"
	alice   nftseries.AccountID = "alice.near"
)

// newLedger returns a store with an initialized ledger and a single
// unlimited series. Given accounts receive the listed number of tokens of
// that series, in order.
func newLedger(t testing.TB, batchSize int, holdings ...interface{}) nftseries.CacheableKVStore {
	t.Helper()
	db := store.MemStore()
	conf, err := json.Marshal(map[string]interface{}{
		series.ConfigurationPkg: map[string]interface{}{
			"owner":            owner,
			"owner_public_key": crypto.EncodePublicKey(seriestest.KeyFromSeed(1).PublicKey()),
			"max_batch_size":   batchSize,
		},
	})
	assert.Nil(t, err)
	var init series.Initializer
	assert.Nil(t, init.FromGenesis(context.Background(), nftseries.Options{"conf": conf}, db))
	s := &series.Series{Owner: owner, Type: series.Unlimited, Metadata: &series.Metadata{}}
	assert.Nil(t, series.Create(db, s))
	for i := 0; i < len(holdings); i += 2 {
		_, err := mint.Issue(db, s, holdings[i].(nftseries.AccountID), "", uint64(holdings[i+1].(int)))
		assert.Nil(t, err)
	}
	return db
}

type router map[string]nftseries.Handler

func (r router) Handle(path string, h nftseries.Handler) {
	r[path] = h
}

func deliver(db nftseries.CacheableKVStore, caller nftseries.AccountID, msg nftseries.Msg) (*nftseries.Result, error) {
	r := make(router)
	RegisterRoutes(r)
	ctx := nftseries.WithCaller(context.Background(), caller)
	cache := db.CacheWrap()
	res, err := r[msg.Path()].Deliver(ctx, cache, msg)
	if err != nil {
		cache.Discard()
		return nil, err
	}
	return res, cache.Write()
}

func TestBurn(t *testing.T) {
	user := seriestest.KeyFromSeed(7)
	implicit := user.PublicKey().Account()
	userKey := crypto.EncodePublicKey(user.PublicKey())

	cases := map[string]struct {
		caller      nftseries.AccountID
		msg         *BurnMsg
		wantErr     *errors.Error
		wantOwner   nftseries.AccountID
		wantRelayer nftseries.AccountID
		wantNonce   uint64
	}{
		"owner burns": {
			caller:    alice,
			msg:       &BurnMsg{TokenID: "1:1"},
			wantOwner: alice,
		},
		"not the owner": {
			caller:  relayer,
			msg:     &BurnMsg{TokenID: "1:1"},
			wantErr: errors.ErrUnauthorized,
		},
		"ledger owner cannot burn user tokens": {
			caller:  owner,
			msg:     &BurnMsg{TokenID: "1:2"},
			wantErr: errors.ErrUnauthorized,
		},
		"relayer with the owner signature": {
			caller:      relayer,
			msg:         &BurnMsg{TokenID: "1:2", Proof: sigs.Proof{PublicKey: userKey, Signature: sigs.SignNonce(user, 1)}},
			wantOwner:   implicit,
			wantRelayer: relayer,
			wantNonce:   1,
		},
		"signature of a key that does not own the token": {
			caller:  relayer,
			msg:     &BurnMsg{TokenID: "1:1", Proof: sigs.Proof{PublicKey: userKey, Signature: sigs.SignNonce(user, 1)}},
			wantErr: errors.ErrUnauthorized,
		},
		"replayed signature": {
			caller:  relayer,
			msg:     &BurnMsg{TokenID: "1:2", Proof: sigs.Proof{PublicKey: userKey, Signature: sigs.SignNonce(user, 0)}},
			wantErr: errors.ErrUnauthorized,
		},
		"unknown token": {
			caller:  alice,
			msg:     &BurnMsg{TokenID: "1:9"},
			wantErr: errors.ErrNotFound,
		},
		"malformed token id": {
			caller:  alice,
			msg:     &BurnMsg{TokenID: "1-1"},
			wantErr: errors.ErrInput,
		},
		"malformed public key": {
			caller:  relayer,
			msg:     &BurnMsg{TokenID: "1:2", Proof: sigs.Proof{PublicKey: "ed25519:short"}},
			wantErr: errors.ErrInput,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			db := newLedger(t, 50, alice, 1, implicit, 1)

			res, err := deliver(db, tc.caller, tc.msg)
			assert.IsErr(t, tc.wantErr, err)
			if tc.wantErr != nil {
				supply, err := token.TotalSupply(db)
				assert.Nil(t, err)
				assert.Equal(t, uint64(2), supply)
				return
			}

			_, err = token.Get(db, tc.msg.TokenID)
			assert.IsErr(t, errors.ErrNotFound, err)
			supply, err := token.SupplyForOwner(db, tc.wantOwner)
			assert.Nil(t, err)
			assert.Equal(t, uint64(0), supply)
			supply, err = token.SupplyForSeries(db, 1)
			assert.Nil(t, err)
			assert.Equal(t, uint64(1), supply)

			want := nftseries.NewBurnEvent(tc.wantOwner, tc.wantRelayer, []string{tc.msg.TokenID}, "")
			assert.Equal(t, []nftseries.Event{want}, res.Events)

			nonce, err := sigs.CurrentNonce(db, tc.wantOwner)
			assert.Nil(t, err)
			assert.Equal(t, tc.wantNonce, nonce)
		})
	}
}

func TestBurnByOwnerIgnoresProof(t *testing.T) {
	stranger := seriestest.KeyFromSeed(9)
	proof := sigs.Proof{
		PublicKey: crypto.EncodePublicKey(stranger.PublicKey()),
		Signature: sigs.SignNonce(stranger, 1),
	}
	db := newLedger(t, 50, alice, 1)

	// The owner calling directly does not need the key to match.
	res, err := deliver(db, alice, &BurnMsg{TokenID: "1:1", Proof: proof})
	assert.Nil(t, err)
	want := nftseries.NewBurnEvent(alice, "", []string{"1:1"}, "")
	assert.Equal(t, []nftseries.Event{want}, res.Events)

	for _, acc := range []nftseries.AccountID{alice, stranger.PublicKey().Account()} {
		nonce, err := sigs.CurrentNonce(db, acc)
		assert.Nil(t, err)
		assert.Equal(t, uint64(0), nonce)
	}
}

func TestBatchBurn(t *testing.T) {
	user := seriestest.KeyFromSeed(7)
	implicit := user.PublicKey().Account()
	userKey := crypto.EncodePublicKey(user.PublicKey())

	// Tokens 1:1 - 1:3 are held by alice, 1:4 - 1:10 by the implicit
	// account, with a batch size of 5.
	db := newLedger(t, 5, alice, 3, implicit, 7)

	// Not held tokens.
	_, err := deliver(db, relayer, &BatchBurnMsg{SeriesID: 1})
	assert.IsErr(t, errors.ErrNotFound, err)
	_, err = deliver(db, alice, &BatchBurnMsg{SeriesID: 2})
	assert.IsErr(t, errors.ErrNotFound, err)

	// A named account requires the caller to be that account.
	_, err = deliver(db, relayer, &BatchBurnMsg{SeriesID: 1, Owner: alice})
	assert.IsErr(t, errors.ErrUnauthorized, err)

	res, err := deliver(db, alice, &BatchBurnMsg{SeriesID: 1, Owner: alice, Amount: 2})
	assert.Nil(t, err)
	assert.Equal(t, []string{"1:1", "1:2"}, res.Events[0].TokenIDs())

	// The batch size caps the request, a single nonce is used.
	proof := sigs.Proof{PublicKey: userKey, Signature: sigs.SignNonce(user, 1)}
	res, err = deliver(db, relayer, &BatchBurnMsg{SeriesID: 1, Amount: 100, Proof: proof})
	assert.Nil(t, err)
	assert.Equal(t, []string{"1:4", "1:5", "1:6", "1:7", "1:8"}, res.Events[0].TokenIDs())
	assert.Equal(t, relayer, res.Events[0].Data[0].AuthorizedID)
	nonce, err := sigs.CurrentNonce(db, implicit)
	assert.Nil(t, err)
	assert.Equal(t, uint64(1), nonce)

	_, err = deliver(db, relayer, &BatchBurnMsg{SeriesID: 1, Proof: proof})
	assert.IsErr(t, errors.ErrUnauthorized, err)

	left, err := token.ListForOwnerInSeries(db, implicit, 1, orm.Page{})
	assert.Nil(t, err)
	assert.Equal(t, 2, len(left))
	supply, err := token.TotalSupply(db)
	assert.Nil(t, err)
	assert.Equal(t, uint64(3), supply)
}
