package sigs

import (
	"github.com/iov-one/nftseries"
	"github.com/iov-one/nftseries/errors"
	"github.com/iov-one/nftseries/orm"
)

// BucketName is where we store the nonces
const BucketName = "sigs"

// maxSequenceValue is limited by the client. The greatest supported nonce
// value at client side is
//   Number.MAX_SAFE_INTEGER = 9007199254740991 = 2^53 - 1
const maxSequenceValue = (1 << 53) - 1

// UserData holds the signature related state of a single account.
type UserData struct {
	// Sequence is the nonce of the last signature authorized action.
	Sequence uint64 `msgpack:"sequence"`
}

var _ orm.Model = (*UserData)(nil)

func (u *UserData) Marshal() ([]byte, error) {
	return orm.MarshalModel(u)
}

func (u *UserData) Unmarshal(raw []byte) error {
	return orm.UnmarshalModel(raw, u)
}

func (u *UserData) Validate() error {
	if u.Sequence > maxSequenceValue {
		return errors.Field("Sequence", errors.ErrOverflow, "sequence out of range")
	}
	return nil
}

// CheckAndIncrementSequence implements check and increment operation.
// If current sequence value is the same as given expected value then it is
// incremented. Otherwise ErrUnauthorized is returned, as a signature for
// any other value cannot be used anymore.
func (u *UserData) CheckAndIncrementSequence(expected uint64) error {
	if u.Sequence != expected {
		return errors.Wrapf(errors.ErrUnauthorized, "nonce mismatch: expected %d, got %d", expected, u.Sequence)
	}
	next := u.Sequence + 1
	if next > maxSequenceValue {
		return errors.Wrap(errors.ErrOverflow, "sequence out of range")
	}
	u.Sequence = next
	return nil
}

// NewBucket returns a bucket storing UserData keyed by the account id.
func NewBucket() orm.ModelBucket {
	return orm.NewModelBucket(BucketName, &UserData{})
}

// CurrentNonce returns the nonce of the last signature authorized action of
// given account. Nonce counting starts with zero.
func CurrentNonce(db nftseries.ReadOnlyKVStore, account nftseries.AccountID) (uint64, error) {
	var u UserData
	switch err := NewBucket().One(db, []byte(account), &u); {
	case err == nil:
		return u.Sequence, nil
	case errors.ErrNotFound.Is(err):
		return 0, nil
	default:
		return 0, errors.Wrap(err, "bucket get")
	}
}

// NextNonce returns the nonce value that the next signature for given
// account must be created for.
func NextNonce(db nftseries.ReadOnlyKVStore, account nftseries.AccountID) (uint64, error) {
	n, err := CurrentNonce(db, account)
	if err != nil {
		return 0, err
	}
	return n + 1, nil
}
