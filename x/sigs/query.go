package sigs

import (
	"github.com/iov-one/nftseries"
	"github.com/iov-one/nftseries/crypto"
	"github.com/iov-one/nftseries/errors"
)

// RegisterQuery exposes the nonce registry.
func RegisterQuery(qr nftseries.QueryRouter) {
	qr.Register("/nonce", nftseries.QueryFunc(queryNonce))
}

// NonceQuery selects the account to return the current nonce of. When only
// the public key is given, its implicit account is used.
type NonceQuery struct {
	Account   nftseries.AccountID `json:"account_id,omitempty"`
	PublicKey string              `json:"public_key,omitempty"`
}

func queryNonce(db nftseries.ReadOnlyKVStore, data []byte) (interface{}, error) {
	var q NonceQuery
	if err := nftseries.LoadQuery(data, &q); err != nil {
		return nil, err
	}
	account := q.Account
	if account == "" && q.PublicKey != "" {
		pub, err := crypto.ParsePublicKey(q.PublicKey)
		if err != nil {
			return nil, errors.Field("PublicKey", err, "cannot decode")
		}
		account = pub.Account()
	}
	if err := account.Validate(); err != nil {
		return nil, errors.Field("Account", err, "invalid account")
	}
	return CurrentNonce(db, account)
}
