package nftseries

import (
	"encoding/hex"
	"regexp"

	"github.com/iov-one/nftseries/errors"
)

const (
	minAccountLen = 2
	maxAccountLen = 64
)

var (
	isAccountID = regexp.MustCompile(`^(([a-z\d]+[-_])*[a-z\d]+\.)*([a-z\d]+[-_])*[a-z\d]+$`).MatchString
	isImplicit  = regexp.MustCompile(`^[0-9a-f]{64}$`).MatchString
)

// AccountID is the identifier of an account. It is either a registered name
// (alice.near) or an implicit account derived from a public key.
type AccountID string

// ImplicitAccount returns the self certifying account identifier of given
// public key: its lowercase hex representation.
func ImplicitAccount(pubkey []byte) AccountID {
	return AccountID(hex.EncodeToString(pubkey))
}

// Validate returns an error if this is not a well formed account id.
func (a AccountID) Validate() error {
	if n := len(a); n < minAccountLen || n > maxAccountLen {
		return errors.Wrapf(errors.ErrInput, "account id must be between %d and %d characters", minAccountLen, maxAccountLen)
	}
	if !isAccountID(string(a)) {
		return errors.Wrapf(errors.ErrInput, "malformed account id %q", string(a))
	}
	return nil
}

// IsImplicit returns true if this account id was derived from a public key.
func (a AccountID) IsImplicit() bool {
	return isImplicit(string(a))
}

func (a AccountID) String() string {
	return string(a)
}
