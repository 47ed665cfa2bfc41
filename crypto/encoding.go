package crypto

import (
	"strings"

	"github.com/btcsuite/btcutil/base58"
	"github.com/btcsuite/btcutil/bech32"
	"github.com/iov-one/nftseries/errors"
)

// curvePrefix may precede the base58 form of a public key.
const curvePrefix = "ed25519:"

// EncodePublicKey returns the textual form of a public key.
func EncodePublicKey(p PublicKey) string {
	return curvePrefix + base58.Encode(p)
}

// ParsePublicKey decodes the textual form of a public key. The curve prefix
// is optional. Anything that does not decode to exactly 32 bytes fails with
// ErrInput.
func ParsePublicKey(s string) (PublicKey, error) {
	raw := strings.TrimPrefix(s, curvePrefix)
	if raw == "" {
		return nil, errors.Wrap(errors.ErrInput, "empty public key")
	}
	// base58.Decode returns an empty slice for any invalid character.
	key := PublicKey(base58.Decode(raw))
	if len(key) == 0 {
		return nil, errors.Wrap(errors.ErrInput, "public key is not base58 encoded")
	}
	if err := key.Validate(); err != nil {
		return nil, err
	}
	return key, nil
}

// ParseSignature checks that raw bytes form an ed25519 signature.
func ParseSignature(raw []byte) (Signature, error) {
	sig := Signature(raw)
	if err := sig.Validate(); err != nil {
		return nil, err
	}
	return sig, nil
}

// Bech32Address returns a human friendly form of a public key, for example
// to be displayed by wallets.
func Bech32Address(hrp string, p PublicKey) (string, error) {
	if err := p.Validate(); err != nil {
		return "", err
	}
	payload, err := bech32.ConvertBits(p, 8, 5, true)
	if err != nil {
		return "", errors.Wrap(errors.ErrInput, "convert bits")
	}
	raw, err := bech32.Encode(hrp, payload)
	if err != nil {
		return "", errors.Wrap(errors.ErrInput, "bech32 encode")
	}
	return raw, nil
}

// ParseBech32Address is the counterpart of Bech32Address.
func ParseBech32Address(raw string) (string, PublicKey, error) {
	hrp, payload, err := bech32.Decode(raw)
	if err != nil {
		return "", nil, errors.Wrapf(errors.ErrInput, "bech32 decode: %s", err)
	}
	payload, err = bech32.ConvertBits(payload, 5, 8, false)
	if err != nil {
		return "", nil, errors.Wrapf(errors.ErrInput, "convert bits: %s", err)
	}
	key := PublicKey(payload)
	if err := key.Validate(); err != nil {
		return "", nil, err
	}
	return hrp, key, nil
}
