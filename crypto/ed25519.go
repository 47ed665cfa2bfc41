package crypto

import (
	"crypto/rand"

	"github.com/iov-one/nftseries"
	"github.com/iov-one/nftseries/errors"
	"golang.org/x/crypto/ed25519"
)

const (
	// PublicKeySize is the size of an ed25519 public key in bytes.
	PublicKeySize = ed25519.PublicKeySize
	// SignatureSize is the size of an ed25519 signature in bytes.
	SignatureSize = ed25519.SignatureSize
)

// PublicKey is a raw ed25519 public key.
type PublicKey []byte

// Validate returns an error if this is not a well formed public key.
func (p PublicKey) Validate() error {
	if len(p) != PublicKeySize {
		return errors.Wrapf(errors.ErrInput, "public key must be %d bytes, got %d", PublicKeySize, len(p))
	}
	return nil
}

// Verify returns true if the signature was created for this message with
// the private key matching this public key.
func (p PublicKey) Verify(message []byte, sig Signature) bool {
	if p.Validate() != nil || sig.Validate() != nil {
		return false
	}
	return ed25519.Verify(ed25519.PublicKey(p), message, sig)
}

// Account returns the implicit account controlled by this key.
func (p PublicKey) Account() nftseries.AccountID {
	return nftseries.ImplicitAccount(p)
}

// String returns the base58 representation with the curve prefix.
func (p PublicKey) String() string {
	return EncodePublicKey(p)
}

// Signature is a raw ed25519 signature.
type Signature []byte

// Validate returns an error if this is not a well formed signature.
func (s Signature) Validate() error {
	if len(s) != SignatureSize {
		return errors.Wrapf(errors.ErrInput, "signature must be %d bytes, got %d", SignatureSize, len(s))
	}
	return nil
}

// PrivateKey is a raw ed25519 private key.
type PrivateKey []byte

// GenPrivateKey returns a random new private key.
func GenPrivateKey() (PrivateKey, error) {
	_, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return nil, errors.Wrap(errors.ErrHuman, err.Error())
	}
	return PrivateKey(priv), nil
}

// PrivateKeyFromSeed will deterministically generate a private key from
// a given 32 byte seed. Use if you have a strong source of external
// randomness, or for deterministic keys in test cases.
func PrivateKeyFromSeed(seed []byte) (PrivateKey, error) {
	if len(seed) != ed25519.SeedSize {
		return nil, errors.Wrapf(errors.ErrInput, "seed must be %d bytes", ed25519.SeedSize)
	}
	return PrivateKey(ed25519.NewKeyFromSeed(seed)), nil
}

// Sign returns a signature of the message.
func (p PrivateKey) Sign(message []byte) Signature {
	return Signature(ed25519.Sign(ed25519.PrivateKey(p), message))
}

// PublicKey returns the corresponding public key.
func (p PrivateKey) PublicKey() PublicKey {
	pub := ed25519.PrivateKey(p).Public().(ed25519.PublicKey)
	return PublicKey(pub)
}
