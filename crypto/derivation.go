package crypto

import (
	"github.com/iov-one/nftseries/errors"
	"github.com/stellar/go/exp/crypto/derivation"
)

// DefaultDerivationPath is used when no path is given.
const DefaultDerivationPath = "m/44'/397'/0'"

// DerivePrivateKey derives an ed25519 private key from a master seed
// following SLIP-0010. An empty path uses the first 32 bytes of the seed
// directly.
func DerivePrivateKey(seed []byte, path string) (PrivateKey, error) {
	if path == "" {
		if len(seed) < 32 {
			return nil, errors.Wrap(errors.ErrInput, "seed must be at least 32 bytes")
		}
		return PrivateKeyFromSeed(seed[:32])
	}
	k, err := derivation.DeriveForPath(path, seed)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "derive %q: %s", path, err)
	}
	return PrivateKeyFromSeed(k.Key)
}
