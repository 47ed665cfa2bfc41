package sigs

import (
	"github.com/iov-one/nftseries"
	"github.com/iov-one/nftseries/crypto"
	"github.com/iov-one/nftseries/errors"
)

// Identity is an account that an operation claims to act as. Exactly one of
// Named and Derived is set.
type Identity struct {
	// Named is an explicitly provided account.
	Named nftseries.AccountID
	// Derived is the public key of an implicit account.
	Derived crypto.PublicKey
}

// ResolveIdentity returns the identity declared by an operation. A named
// account takes precedence over the key. Without a named account the
// identity is derived from the key, and without both the immediate caller
// is the identity.
func ResolveIdentity(caller, named nftseries.AccountID, pubkey crypto.PublicKey) (Identity, error) {
	switch {
	case named != "":
		if err := named.Validate(); err != nil {
			return Identity{}, err
		}
		return Identity{Named: named}, nil
	case pubkey != nil:
		if err := pubkey.Validate(); err != nil {
			return Identity{}, err
		}
		return Identity{Derived: pubkey}, nil
	case caller != "":
		return Identity{Named: caller}, nil
	default:
		return Identity{}, errors.Wrap(errors.ErrUnauthorized, "no identity to act as")
	}
}

// Account returns the account represented by this identity.
func (i Identity) Account() nftseries.AccountID {
	if i.Named != "" {
		return i.Named
	}
	return i.Derived.Account()
}

// VerifiedBy returns true if a signature created by given key can prove
// control of this identity. A named account can be proven only if it is the
// implicit account of that key.
func (i Identity) VerifiedBy(pubkey crypto.PublicKey) bool {
	if pubkey == nil {
		return false
	}
	return pubkey.Account() == i.Account()
}
