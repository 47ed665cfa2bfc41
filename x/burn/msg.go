package burn

import (
	"github.com/iov-one/nftseries"
	"github.com/iov-one/nftseries/errors"
	"github.com/iov-one/nftseries/x/sigs"
	"github.com/iov-one/nftseries/x/token"
)

const (
	pathBurn      = "burn/burn"
	pathBatchBurn = "burn/batch_burn"
)

var (
	_ nftseries.Msg = (*BurnMsg)(nil)
	_ nftseries.Msg = (*BatchBurnMsg)(nil)
)

// BurnMsg burns a single token. The caller must be the token owner or
// present the owner signature.
type BurnMsg struct {
	TokenID string     `json:"token_id"`
	Proof   sigs.Proof `json:"proof"`
	Memo    string     `json:"memo,omitempty"`
}

func (BurnMsg) Path() string {
	return pathBurn
}

func (m *BurnMsg) Validate() error {
	var errs error
	if _, _, err := token.ParseID(m.TokenID); err != nil {
		errs = errors.AppendField(errs, "TokenID", err)
	}
	errs = errors.Append(errs, m.Proof.Validate())
	return errs
}

// BatchBurnMsg burns up to Amount tokens of a series held by the owner.
// The amount is capped by the ledger batch size, zero requests the cap.
type BatchBurnMsg struct {
	SeriesID uint64 `json:"series_id"`
	Amount   uint64 `json:"amount,omitempty"`
	// Owner is the named account whose tokens are burned. When empty, it
	// is the implicit account of the proof key or the caller.
	Owner nftseries.AccountID `json:"owner_id,omitempty"`
	Proof sigs.Proof          `json:"proof"`
	Memo  string              `json:"memo,omitempty"`
}

func (BatchBurnMsg) Path() string {
	return pathBatchBurn
}

func (m *BatchBurnMsg) Validate() error {
	var errs error
	if m.SeriesID == 0 {
		errs = errors.AppendField(errs, "SeriesID", errors.ErrEmpty)
	}
	if m.Owner != "" {
		errs = errors.AppendField(errs, "Owner", m.Owner.Validate())
	}
	errs = errors.Append(errs, m.Proof.Validate())
	return errs
}
