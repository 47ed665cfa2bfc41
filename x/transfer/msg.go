package transfer

import (
	"github.com/iov-one/nftseries"
	"github.com/iov-one/nftseries/errors"
	"github.com/iov-one/nftseries/x/sigs"
	"github.com/iov-one/nftseries/x/token"
)

const (
	pathTransfer      = "transfer/transfer"
	pathBatchTransfer = "transfer/batch_transfer"
)

var (
	_ nftseries.Msg = (*TransferMsg)(nil)
	_ nftseries.Msg = (*BatchTransferMsg)(nil)
)

// TransferMsg moves a single token to the receiver.
type TransferMsg struct {
	TokenID  string              `json:"token_id"`
	Receiver nftseries.AccountID `json:"receiver_id"`
	// ApprovalID, when set, must match the approval of the caller. It is
	// ignored when the token is moved by its owner.
	ApprovalID *uint64    `json:"approval_id,omitempty"`
	Proof      sigs.Proof `json:"proof"`
	Memo       string     `json:"memo,omitempty"`
}

func (TransferMsg) Path() string {
	return pathTransfer
}

func (m *TransferMsg) Validate() error {
	var errs error
	if _, _, err := token.ParseID(m.TokenID); err != nil {
		errs = errors.AppendField(errs, "TokenID", err)
	}
	errs = errors.AppendField(errs, "Receiver", m.Receiver.Validate())
	errs = errors.Append(errs, m.Proof.Validate())
	return errs
}

// BatchTransferMsg moves up to Amount tokens of a series held by the owner
// to the receiver. The amount is capped by the ledger batch size, zero
// requests the cap.
type BatchTransferMsg struct {
	SeriesID uint64              `json:"series_id"`
	Amount   uint64              `json:"amount,omitempty"`
	Receiver nftseries.AccountID `json:"receiver_id"`
	// Owner is the named account whose tokens are moved. When empty, it
	// is the implicit account of the proof key or the caller.
	Owner nftseries.AccountID `json:"owner_id,omitempty"`
	Proof sigs.Proof          `json:"proof"`
	Memo  string              `json:"memo,omitempty"`
}

func (BatchTransferMsg) Path() string {
	return pathBatchTransfer
}

func (m *BatchTransferMsg) Validate() error {
	var errs error
	if m.SeriesID == 0 {
		errs = errors.AppendField(errs, "SeriesID", errors.ErrEmpty)
	}
	errs = errors.AppendField(errs, "Receiver", m.Receiver.Validate())
	if m.Owner != "" {
		errs = errors.AppendField(errs, "Owner", m.Owner.Validate())
	}
	errs = errors.Append(errs, m.Proof.Validate())
	return errs
}
