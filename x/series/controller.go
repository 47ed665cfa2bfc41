package series

import (
	"github.com/iov-one/nftseries"
	"github.com/iov-one/nftseries/errors"
	"github.com/iov-one/nftseries/orm"
)

// Create assigns the next series id to given series and stores it.
func Create(db nftseries.KVStore, s *Series) error {
	id, err := seriesSeq.NextInt(db)
	if err != nil {
		return errors.Wrap(err, "series id")
	}
	s.ID = id
	s.Minted = 0
	return Save(db, s)
}

// Save stores an existing series.
func Save(db nftseries.KVStore, s *Series) error {
	if err := seriesBucket.Put(db, orm.EncodeUint64(s.ID), s); err != nil {
		return errors.Wrapf(err, "series %d", s.ID)
	}
	return nil
}

// Get returns the series with given id or ErrNotFound.
func Get(db nftseries.ReadOnlyKVStore, id uint64) (*Series, error) {
	var s Series
	if err := seriesBucket.One(db, orm.EncodeUint64(id), &s); err != nil {
		return nil, errors.Wrapf(err, "series %d", id)
	}
	return &s, nil
}

// Count returns the number of series ever created. Series are never
// deleted, so this is also the highest series id.
func Count(db nftseries.ReadOnlyKVStore) (uint64, error) {
	return seriesSeq.Latest(db)
}

// List returns a page of all series, ordered by their id.
func List(db nftseries.ReadOnlyKVStore, page orm.Page) ([]*Series, error) {
	it, err := seriesBucket.PrefixScan(db, nil, false)
	if err != nil {
		return nil, err
	}
	return collect(it, page)
}

// ListByType returns a page of series of given type, ordered by their id.
func ListByType(db nftseries.ReadOnlyKVStore, t Type, page orm.Page) ([]*Series, error) {
	it, err := seriesBucket.IndexScan(db, "type", []byte{byte(t)}, false)
	if err != nil {
		return nil, err
	}
	return collect(it, page)
}

// ListByOwner returns a page of series created by given account.
func ListByOwner(db nftseries.ReadOnlyKVStore, owner nftseries.AccountID, page orm.Page) ([]*Series, error) {
	it, err := seriesBucket.IndexScan(db, "owner", []byte(owner), false)
	if err != nil {
		return nil, err
	}
	return collect(it, page)
}

// ListByOwnerAndType returns a page of series of given type created by
// given account.
func ListByOwnerAndType(db nftseries.ReadOnlyKVStore, owner nftseries.AccountID, t Type, page orm.Page) ([]*Series, error) {
	it, err := seriesBucket.IndexScan(db, "owner_type", ownerTypeKey(owner, t), false)
	if err != nil {
		return nil, err
	}
	return collect(it, page)
}

func collect(it orm.ModelIterator, page orm.Page) ([]*Series, error) {
	var (
		res  []*Series
		dest Series
	)
	err := orm.Paginate(it, &dest, page, func([]byte) error {
		s := dest
		res = append(res, &s)
		dest = Series{}
		return nil
	})
	return res, err
}

// HasRole returns true if the account holds given role.
func HasRole(db nftseries.ReadOnlyKVStore, role Role, account nftseries.AccountID) (bool, error) {
	if err := role.Validate(); err != nil {
		return false, err
	}
	if account == "" {
		return false, nil
	}
	switch err := roleBuckets[role].Has(db, []byte(account)); {
	case err == nil:
		return true, nil
	case errors.ErrNotFound.Is(err):
		return false, nil
	default:
		return false, err
	}
}

// RequireRole returns ErrUnauthorized unless the account holds given role.
func RequireRole(db nftseries.ReadOnlyKVStore, role Role, account nftseries.AccountID) error {
	ok, err := HasRole(db, role, account)
	if err != nil {
		return err
	}
	if !ok {
		return errors.Wrapf(errors.ErrUnauthorized, "%q is not an approved %s", account, role)
	}
	return nil
}

// AddRole grants a role. Granting a held role is a no-op.
func AddRole(db nftseries.KVStore, role Role, account nftseries.AccountID) error {
	if err := role.Validate(); err != nil {
		return err
	}
	return roleBuckets[role].Put(db, []byte(account), &Member{Account: account})
}

// RemoveRole revokes a role. Revoking a role that is not held is a no-op.
func RemoveRole(db nftseries.KVStore, role Role, account nftseries.AccountID) error {
	if err := role.Validate(); err != nil {
		return err
	}
	err := roleBuckets[role].Delete(db, []byte(account))
	if errors.ErrNotFound.Is(err) {
		return nil
	}
	return err
}
