package sigs

import (
	"context"
	"crypto/sha256"
	"strconv"

	"github.com/iov-one/nftseries"
	"github.com/iov-one/nftseries/crypto"
	"github.com/iov-one/nftseries/errors"
)

// Proof is an optional delegated authorization attached to an operation.
type Proof struct {
	// PublicKey is the base58 encoded key the signature was created with.
	PublicKey string `json:"public_key,omitempty"`
	// Signature is a 64 byte ed25519 signature of the next nonce.
	Signature []byte `json:"signature,omitempty"`
}

// IsEmpty returns true if no proof was provided.
func (p Proof) IsEmpty() bool {
	return p.PublicKey == "" && len(p.Signature) == 0
}

// Parse decodes the proof. Any part that is not set is returned as nil.
// Malformed encoding fails with ErrInput.
func (p Proof) Parse() (crypto.PublicKey, crypto.Signature, error) {
	var (
		pub crypto.PublicKey
		sig crypto.Signature
		err error
	)
	if p.PublicKey != "" {
		if pub, err = crypto.ParsePublicKey(p.PublicKey); err != nil {
			return nil, nil, errors.Field("PublicKey", err, "cannot decode")
		}
	}
	if len(p.Signature) != 0 {
		if sig, err = crypto.ParseSignature(p.Signature); err != nil {
			return nil, nil, errors.Field("Signature", err, "cannot decode")
		}
	}
	return pub, sig, nil
}

// Validate returns an error if the proof cannot be decoded.
func (p Proof) Validate() error {
	_, _, err := p.Parse()
	return err
}

// Grant is a successful authorization of an account. A grant obtained with
// a signature must be committed after the authorized action completed, so
// that the signature cannot be used again.
type Grant struct {
	// Account is the identity the operation acts as.
	Account nftseries.AccountID
	// Nonce is the value the account nonce is advanced to by Commit. It
	// is zero when the account is the immediate caller.
	Nonce uint64
	// Relayer is the immediate caller that presented the signature.
	Relayer nftseries.AccountID

	committed bool
}

// Delegated returns true if the grant was obtained with a signature.
func (g *Grant) Delegated() bool {
	return g.Nonce != 0
}

// Commit advances the nonce of the granted account. It is a no-op for a
// direct caller grant. A grant can be committed only once.
func (g *Grant) Commit(db nftseries.KVStore) error {
	if !g.Delegated() {
		return nil
	}
	if g.committed {
		return errors.Wrap(errors.ErrState, "grant already committed")
	}

	bucket := NewBucket()
	var u UserData
	switch err := bucket.One(db, []byte(g.Account), &u); {
	case err == nil, errors.ErrNotFound.Is(err):
	default:
		return errors.Wrap(err, "load nonce")
	}
	if err := u.CheckAndIncrementSequence(g.Nonce - 1); err != nil {
		return err
	}
	if err := bucket.Put(db, []byte(g.Account), &u); err != nil {
		return errors.Wrap(err, "save nonce")
	}
	g.committed = true
	return nil
}

// BuildSignBytes returns the digest that a signature for given nonce is
// created over: sha256 of the decimal, unpadded nonce value.
func BuildSignBytes(nonce uint64) []byte {
	h := sha256.Sum256([]byte(strconv.FormatUint(nonce, 10)))
	return h[:]
}

// SignNonce creates a signature that authorizes a single action of the
// account whose next nonce is given.
func SignNonce(key crypto.PrivateKey, nonce uint64) crypto.Signature {
	return key.Sign(BuildSignBytes(nonce))
}

// VerifySignature checks that the signature was created by given key over
// the next nonce of the account. The store is not modified. The returned
// grant must be committed once the guarded action succeeded.
func VerifySignature(db nftseries.ReadOnlyKVStore, account nftseries.AccountID, pubkey crypto.PublicKey, sig crypto.Signature) (*Grant, error) {
	if err := pubkey.Validate(); err != nil {
		return nil, err
	}
	if err := sig.Validate(); err != nil {
		return nil, err
	}
	next, err := NextNonce(db, account)
	if err != nil {
		return nil, err
	}
	if !pubkey.Verify(BuildSignBytes(next), sig) {
		return nil, errors.Wrapf(errors.ErrUnauthorized, "invalid signature for nonce %d of %s", next, account)
	}
	return &Grant{Account: account, Nonce: next}, nil
}

// Authorize resolves the identity an operation acts as and checks that it
// is entitled to do so. The immediate caller acting as itself is always
// authorized. Otherwise the proof must carry a valid signature created by
// the key controlling the identity over its next nonce.
//
// The proof is decoded before anything else, so that a malformed key or
// signature always fails with ErrInput.
func Authorize(ctx context.Context, db nftseries.ReadOnlyKVStore, named nftseries.AccountID, proof Proof) (*Grant, error) {
	pub, sig, err := proof.Parse()
	if err != nil {
		return nil, err
	}
	caller, _ := nftseries.GetCaller(ctx)
	id, err := ResolveIdentity(caller, named, pub)
	if err != nil {
		return nil, err
	}
	account := id.Account()
	if caller != "" && caller == account {
		return &Grant{Account: account}, nil
	}

	if !id.VerifiedBy(pub) {
		return nil, errors.Wrapf(errors.ErrUnauthorized, "caller %q cannot act as %q", caller, account)
	}
	if sig == nil {
		return nil, errors.Wrap(errors.ErrUnauthorized, "missing signature")
	}
	grant, err := VerifySignature(db, account, pub, sig)
	if err != nil {
		return nil, err
	}
	grant.Relayer = caller
	nftseries.GetLogger(ctx).Debug("delegated authorization",
		"account", account, "caller", caller, "nonce", grant.Nonce)
	return grant, nil
}
