package token

import (
	"github.com/iov-one/nftseries"
	"github.com/iov-one/nftseries/errors"
	"github.com/iov-one/nftseries/orm"
)

// Get returns the token with given textual id.
func Get(db nftseries.ReadOnlyKVStore, id string) (*Token, error) {
	seriesID, edition, err := ParseID(id)
	if err != nil {
		return nil, err
	}
	var t Token
	if err := tokenBucket.One(db, tokenKey(seriesID, edition), &t); err != nil {
		return nil, errors.Wrapf(err, "token %s", id)
	}
	return &t, nil
}

// Insert stores a new token and adds it to the owner index. ErrDuplicate
// is returned if a token with the same id exists.
func Insert(db nftseries.KVStore, t *Token) error {
	switch err := tokenBucket.Has(db, t.Key()); {
	case err == nil:
		return errors.Wrapf(errors.ErrDuplicate, "token %s", t.ID())
	case !errors.ErrNotFound.Is(err):
		return err
	}
	if err := tokenBucket.Put(db, t.Key(), t); err != nil {
		return errors.Wrapf(err, "token %s", t.ID())
	}
	return count(db, t.Owner, t.SeriesID, 1, true)
}

// Remove deletes a token from the store and the owner index.
func Remove(db nftseries.KVStore, t *Token) error {
	if err := tokenBucket.Delete(db, t.Key()); err != nil {
		return errors.Wrapf(err, "token %s", t.ID())
	}
	return count(db, t.Owner, t.SeriesID, -1, true)
}

// Move changes the owner of a token. All approvals are cleared, the next
// approval id is kept so that a cleared approval id is never issued again.
func Move(db nftseries.KVStore, t *Token, to nftseries.AccountID) error {
	if t.Owner == to {
		return errors.Wrapf(errors.ErrInput, "token %s is already owned by %s", t.ID(), to)
	}
	if err := count(db, t.Owner, t.SeriesID, -1, false); err != nil {
		return err
	}
	t.Owner = to
	t.Approvals = nil
	if err := tokenBucket.Put(db, t.Key(), t); err != nil {
		return errors.Wrapf(err, "token %s", t.ID())
	}
	return count(db, t.Owner, t.SeriesID, 1, false)
}

// count updates the owner counters of a single token and, when the token is
// created or destroyed, the total and series supply as well.
func count(db nftseries.KVStore, owner nftseries.AccountID, seriesID uint64, delta int64, supply bool) error {
	if _, err := ownerSupply.Add(db, []byte(owner), delta); err != nil {
		return errors.Wrap(err, "owner supply")
	}
	if _, err := ownerSeriesSupply.Add(db, ownerSeriesKey(owner, seriesID), delta); err != nil {
		return errors.Wrap(err, "owner series supply")
	}
	if !supply {
		return nil
	}
	if _, err := seriesSupply.Add(db, orm.EncodeUint64(seriesID), delta); err != nil {
		return errors.Wrap(err, "series supply")
	}
	if _, err := totalSupply.Add(db, totalKey, delta); err != nil {
		return errors.Wrap(err, "total supply")
	}
	return nil
}

// TotalSupply returns the number of existing tokens.
func TotalSupply(db nftseries.ReadOnlyKVStore) (uint64, error) {
	return totalSupply.Get(db, totalKey)
}

// SupplyForOwner returns the number of tokens held by given account.
func SupplyForOwner(db nftseries.ReadOnlyKVStore, owner nftseries.AccountID) (uint64, error) {
	return ownerSupply.Get(db, []byte(owner))
}

// SupplyForSeries returns the number of existing tokens of given series.
func SupplyForSeries(db nftseries.ReadOnlyKVStore, seriesID uint64) (uint64, error) {
	return seriesSupply.Get(db, orm.EncodeUint64(seriesID))
}

// SupplyForOwnerInSeries returns the number of tokens of given series held
// by given account.
func SupplyForOwnerInSeries(db nftseries.ReadOnlyKVStore, owner nftseries.AccountID, seriesID uint64) (uint64, error) {
	return ownerSeriesSupply.Get(db, ownerSeriesKey(owner, seriesID))
}

// List returns a page of all tokens ordered by series id and edition.
func List(db nftseries.ReadOnlyKVStore, page orm.Page) ([]*Token, error) {
	it, err := tokenBucket.PrefixScan(db, nil, false)
	if err != nil {
		return nil, err
	}
	return collect(it, page)
}

// ListForSeries returns a page of tokens of given series ordered by
// edition.
func ListForSeries(db nftseries.ReadOnlyKVStore, seriesID uint64, page orm.Page) ([]*Token, error) {
	it, err := tokenBucket.PrefixScan(db, orm.EncodeUint64(seriesID), false)
	if err != nil {
		return nil, err
	}
	return collect(it, page)
}

// ListForOwner returns a page of tokens held by given account.
func ListForOwner(db nftseries.ReadOnlyKVStore, owner nftseries.AccountID, page orm.Page) ([]*Token, error) {
	it, err := tokenBucket.IndexScan(db, "owner", []byte(owner), false)
	if err != nil {
		return nil, err
	}
	return collect(it, page)
}

// ListForOwnerInSeries returns a page of tokens of given series held by
// given account, ordered by edition.
func ListForOwnerInSeries(db nftseries.ReadOnlyKVStore, owner nftseries.AccountID, seriesID uint64, page orm.Page) ([]*Token, error) {
	it, err := tokenBucket.IndexScan(db, "owner_series", ownerSeriesKey(owner, seriesID), false)
	if err != nil {
		return nil, err
	}
	return collect(it, page)
}

func collect(it orm.ModelIterator, page orm.Page) ([]*Token, error) {
	var (
		res  []*Token
		dest Token
	)
	err := orm.Paginate(it, &dest, page, func([]byte) error {
		t := dest
		res = append(res, &t)
		dest = Token{}
		return nil
	})
	return res, err
}
