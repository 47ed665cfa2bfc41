package series

import (
	"github.com/iov-one/nftseries"
	"github.com/iov-one/nftseries/crypto"
	"github.com/iov-one/nftseries/errors"
)

const (
	pathCreateSeries        = "series/create"
	pathUpdateSeriesMedia   = "series/update_media"
	pathAddRole             = "series/add_role"
	pathRemoveRole          = "series/remove_role"
	pathUpdateConfiguration = "series/update_configuration"
)

var (
	_ nftseries.Msg = (*CreateSeriesMsg)(nil)
	_ nftseries.Msg = (*UpdateSeriesMediaMsg)(nil)
	_ nftseries.Msg = (*AddRoleMsg)(nil)
	_ nftseries.Msg = (*RemoveRoleMsg)(nil)
	_ nftseries.Msg = (*UpdateConfigurationMsg)(nil)
)

// CreateSeriesMsg creates a new series owned by the caller.
type CreateSeriesMsg struct {
	// Type is the category code: 1 for unlimited, 2 for limited.
	Type     uint8     `json:"series_type"`
	Metadata *Metadata `json:"metadata"`
	Royalty  Royalty   `json:"royalty,omitempty"`
	Price    string    `json:"price,omitempty"`
}

func (CreateSeriesMsg) Path() string {
	return pathCreateSeries
}

func (m *CreateSeriesMsg) Validate() error {
	var errs error
	t, err := ParseType(m.Type)
	errs = errors.AppendField(errs, "Type", err)
	errs = errors.AppendField(errs, "Metadata", m.Metadata.Validate())
	if t == Limited && m.Metadata != nil && m.Metadata.Copies == nil {
		errs = errors.Append(errs, errors.Field("Metadata.Copies", errors.ErrEmpty, "limited series must declare copies"))
	}
	errs = errors.Append(errs, m.Royalty.Validate())
	errs = errors.AppendField(errs, "Price", ValidatePrice(m.Price))
	return errs
}

// UpdateSeriesMediaMsg replaces the media of a series. Empty values clear
// the media.
type UpdateSeriesMediaMsg struct {
	SeriesID  uint64 `json:"series_id"`
	Media     string `json:"media,omitempty"`
	MediaHash []byte `json:"media_hash,omitempty"`
}

func (UpdateSeriesMediaMsg) Path() string {
	return pathUpdateSeriesMedia
}

func (m *UpdateSeriesMediaMsg) Validate() error {
	var errs error
	if m.SeriesID == 0 {
		errs = errors.AppendField(errs, "SeriesID", errors.ErrEmpty)
	}
	if len(m.MediaHash) != 0 && m.Media == "" {
		errs = errors.Append(errs, errors.Field("MediaHash", errors.ErrInput, "media hash without media"))
	}
	return errs
}

// AddRoleMsg grants a role to an account.
type AddRoleMsg struct {
	Role    Role                `json:"role"`
	Account nftseries.AccountID `json:"account_id"`
}

func (AddRoleMsg) Path() string {
	return pathAddRole
}

func (m *AddRoleMsg) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Role", m.Role.Validate())
	errs = errors.AppendField(errs, "Account", m.Account.Validate())
	return errs
}

// RemoveRoleMsg revokes a role of an account.
type RemoveRoleMsg struct {
	Role    Role                `json:"role"`
	Account nftseries.AccountID `json:"account_id"`
}

func (RemoveRoleMsg) Path() string {
	return pathRemoveRole
}

func (m *RemoveRoleMsg) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Role", m.Role.Validate())
	errs = errors.AppendField(errs, "Account", m.Account.Validate())
	return errs
}

// UpdateConfigurationMsg patches the ledger configuration. Only non zero
// fields of the patch are applied.
type UpdateConfigurationMsg struct {
	Patch *Configuration `json:"patch"`
}

func (UpdateConfigurationMsg) Path() string {
	return pathUpdateConfiguration
}

func (m *UpdateConfigurationMsg) Validate() error {
	if m.Patch == nil {
		return errors.Field("Patch", errors.ErrEmpty, "")
	}
	var errs error
	if m.Patch.Owner != "" {
		errs = errors.AppendField(errs, "Patch.Owner", m.Patch.Owner.Validate())
	}
	if m.Patch.OwnerPublicKey != "" {
		_, err := crypto.ParsePublicKey(m.Patch.OwnerPublicKey)
		errs = errors.AppendField(errs, "Patch.OwnerPublicKey", err)
	}
	if m.Patch.Metadata != nil {
		errs = errors.AppendField(errs, "Patch.Metadata", m.Patch.Metadata.Validate())
	}
	return errs
}
