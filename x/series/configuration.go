package series

import (
	"github.com/iov-one/nftseries"
	"github.com/iov-one/nftseries/crypto"
	"github.com/iov-one/nftseries/errors"
	"github.com/iov-one/nftseries/gconf"
	"github.com/iov-one/nftseries/orm"
)

// ConfigurationPkg is the gconf package name of the ledger configuration.
const ConfigurationPkg = "series"

// DefaultMaxBatchSize is the most tokens a batch operation processes when
// not configured otherwise.
const DefaultMaxBatchSize = 50

// ContractMetadata describes the ledger itself.
type ContractMetadata struct {
	Spec          string `json:"spec" msgpack:"spec"`
	Name          string `json:"name" msgpack:"name"`
	Symbol        string `json:"symbol" msgpack:"symbol"`
	Icon          string `json:"icon,omitempty" msgpack:"icon,omitempty"`
	BaseURI       string `json:"base_uri,omitempty" msgpack:"base_uri,omitempty"`
	Reference     string `json:"reference,omitempty" msgpack:"reference,omitempty"`
	ReferenceHash []byte `json:"reference_hash,omitempty" msgpack:"reference_hash,omitempty"`
}

// DefaultContractMetadata is used when the genesis does not provide any.
func DefaultContractMetadata() *ContractMetadata {
	return &ContractMetadata{
		Spec:   "nft-1.0.0",
		Name:   "Gateway APP NFTs",
		Symbol: "GATEWAY",
	}
}

func (m *ContractMetadata) Validate() error {
	if m == nil {
		return errors.ErrEmpty
	}
	var errs error
	if m.Spec == "" {
		errs = errors.AppendField(errs, "Spec", errors.ErrEmpty)
	}
	if m.Name == "" {
		errs = errors.AppendField(errs, "Name", errors.ErrEmpty)
	}
	if m.Symbol == "" {
		errs = errors.AppendField(errs, "Symbol", errors.ErrEmpty)
	}
	return errs
}

// Configuration is the ledger wide configuration.
type Configuration struct {
	// Owner manages roles and the configuration.
	Owner nftseries.AccountID `json:"owner" msgpack:"owner"`
	// OwnerPublicKey is the base58 encoded key that signs mint
	// authorizations.
	OwnerPublicKey string            `json:"owner_public_key" msgpack:"owner_public_key"`
	MaxBatchSize   uint32            `json:"max_batch_size,omitempty" msgpack:"max_batch_size"`
	Metadata       *ContractMetadata `json:"metadata,omitempty" msgpack:"metadata"`
}

var _ gconf.OwnedConfig = (*Configuration)(nil)

func (c *Configuration) Marshal() ([]byte, error) {
	return orm.MarshalModel(c)
}

func (c *Configuration) Unmarshal(raw []byte) error {
	return orm.UnmarshalModel(raw, c)
}

func (c *Configuration) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Owner", c.Owner.Validate())
	if _, err := crypto.ParsePublicKey(c.OwnerPublicKey); err != nil {
		errs = errors.AppendField(errs, "OwnerPublicKey", err)
	}
	if c.MaxBatchSize == 0 {
		errs = errors.AppendField(errs, "MaxBatchSize", errors.ErrEmpty)
	}
	errs = errors.AppendField(errs, "Metadata", c.Metadata.Validate())
	return errs
}

// SetDefaults implements gconf.Defaulter.
func (c *Configuration) SetDefaults() {
	if c.MaxBatchSize == 0 {
		c.MaxBatchSize = DefaultMaxBatchSize
	}
	if c.Metadata == nil {
		c.Metadata = DefaultContractMetadata()
	}
}

func (c *Configuration) GetOwner() nftseries.AccountID {
	return c.Owner
}

// OwnerKey returns the decoded owner public key.
func (c *Configuration) OwnerKey() (crypto.PublicKey, error) {
	key, err := crypto.ParsePublicKey(c.OwnerPublicKey)
	if err != nil {
		return nil, errors.Wrap(errors.ErrState, "owner public key")
	}
	return key, nil
}

// BatchLimit clamps the requested number of tokens to the batch cap. Zero
// requests the cap.
func (c *Configuration) BatchLimit(requested uint64) uint64 {
	max := uint64(c.MaxBatchSize)
	if requested == 0 || requested > max {
		return max
	}
	return requested
}

// LoadConfiguration returns the ledger configuration.
func LoadConfiguration(db gconf.ReadStore) (*Configuration, error) {
	var conf Configuration
	if err := gconf.Load(db, ConfigurationPkg, &conf); err != nil {
		return nil, errors.Wrap(err, "ledger configuration")
	}
	return &conf, nil
}
