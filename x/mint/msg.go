package mint

import (
	"github.com/iov-one/nftseries"
	"github.com/iov-one/nftseries/errors"
	"github.com/iov-one/nftseries/x/sigs"
)

const (
	pathMint      = "mint/mint"
	pathBatchMint = "mint/batch_mint"
)

var (
	_ nftseries.Msg = (*MintMsg)(nil)
	_ nftseries.Msg = (*BatchMintMsg)(nil)
)

// MintMsg mints a single token.
type MintMsg struct {
	SeriesID uint64 `json:"series_id"`
	// Receiver of the token. When empty, the token is minted to the
	// implicit account of the proof public key or, without a proof, to
	// the caller.
	Receiver nftseries.AccountID `json:"receiver_id,omitempty"`
	// Proof carries the ledger owner signature of the receiver next
	// nonce.
	Proof sigs.Proof `json:"proof"`
	Memo  string     `json:"memo,omitempty"`
}

func (MintMsg) Path() string {
	return pathMint
}

func (m *MintMsg) Validate() error {
	return validate(m.SeriesID, 1, m.Receiver, m.Proof)
}

// BatchMintMsg mints amount tokens to a single receiver. Either all of them
// are minted or none.
type BatchMintMsg struct {
	SeriesID uint64              `json:"series_id"`
	Amount   uint64              `json:"amount"`
	Receiver nftseries.AccountID `json:"receiver_id,omitempty"`
	Proof    sigs.Proof          `json:"proof"`
	Memo     string              `json:"memo,omitempty"`
}

func (BatchMintMsg) Path() string {
	return pathBatchMint
}

func (m *BatchMintMsg) Validate() error {
	return validate(m.SeriesID, m.Amount, m.Receiver, m.Proof)
}

func validate(seriesID, amount uint64, receiver nftseries.AccountID, proof sigs.Proof) error {
	var errs error
	if seriesID == 0 {
		errs = errors.AppendField(errs, "SeriesID", errors.ErrEmpty)
	}
	if amount == 0 {
		errs = errors.AppendField(errs, "Amount", errors.ErrInput)
	}
	if receiver != "" {
		errs = errors.AppendField(errs, "Receiver", receiver.Validate())
	}
	errs = errors.Append(errs, proof.Validate())
	return errs
}
