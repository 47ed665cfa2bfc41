package seriestest

import (
	"github.com/iov-one/nftseries"
	"github.com/iov-one/nftseries/crypto"
)

// NewKey returns a random private key. It panics if the system source of
// randomness fails.
func NewKey() crypto.PrivateKey {
	key, err := crypto.GenPrivateKey()
	if err != nil {
		panic(err)
	}
	return key
}

// KeyFromSeed returns a deterministic private key. Keys returned for
// different numbers are different.
func KeyFromSeed(n byte) crypto.PrivateKey {
	seed := make([]byte, 32)
	for i := range seed {
		seed[i] = n
	}
	key, err := crypto.PrivateKeyFromSeed(seed)
	if err != nil {
		panic(err)
	}
	return key
}

// NewImplicitAccount returns a fresh key together with the implicit account
// it controls.
func NewImplicitAccount() (crypto.PrivateKey, nftseries.AccountID) {
	key := NewKey()
	return key, key.PublicKey().Account()
}
