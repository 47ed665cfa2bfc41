package series

import (
	"github.com/iov-one/nftseries"
	"github.com/iov-one/nftseries/errors"
)

// RegisterQuery exposes the ledger configuration and role sets. Series
// views carry the token supply and are served by the token package.
func RegisterQuery(qr nftseries.QueryRouter) {
	qr.Register("/contract/metadata", nftseries.QueryFunc(queryMetadata))
	qr.Register("/contract/owner_public_key", nftseries.QueryFunc(queryOwnerKey))
	qr.Register("/contract/configuration", nftseries.QueryFunc(queryConfiguration))
	qr.Register("/series/count", nftseries.QueryFunc(queryCount))
	qr.Register("/roles/creator", roleQuery(RoleCreator))
	qr.Register("/roles/minter", roleQuery(RoleMinter))
}

func queryMetadata(db nftseries.ReadOnlyKVStore, _ []byte) (interface{}, error) {
	conf, err := LoadConfiguration(db)
	if err != nil {
		return nil, err
	}
	return conf.Metadata, nil
}

func queryOwnerKey(db nftseries.ReadOnlyKVStore, _ []byte) (interface{}, error) {
	conf, err := LoadConfiguration(db)
	if err != nil {
		return nil, err
	}
	return conf.OwnerPublicKey, nil
}

func queryConfiguration(db nftseries.ReadOnlyKVStore, _ []byte) (interface{}, error) {
	return LoadConfiguration(db)
}

func queryCount(db nftseries.ReadOnlyKVStore, _ []byte) (interface{}, error) {
	return Count(db)
}

// AccountQuery selects a single account.
type AccountQuery struct {
	Account nftseries.AccountID `json:"account_id"`
}

func roleQuery(role Role) nftseries.QueryFunc {
	return func(db nftseries.ReadOnlyKVStore, data []byte) (interface{}, error) {
		var q AccountQuery
		if err := nftseries.LoadQuery(data, &q); err != nil {
			return nil, err
		}
		if err := q.Account.Validate(); err != nil {
			return nil, errors.Field("Account", err, "invalid account")
		}
		return HasRole(db, role, q.Account)
	}
}
