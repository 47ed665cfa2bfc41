package series

import (
	"github.com/iov-one/nftseries"
	"github.com/iov-one/nftseries/errors"
	"github.com/iov-one/nftseries/orm"
	"github.com/shopspring/decimal"
)

// Type tells if the number of editions of a series is bounded.
type Type uint8

const (
	// Unlimited series may declare copies, but do not have to.
	Unlimited Type = 1
	// Limited series must declare copies.
	Limited Type = 2
)

// ParseType returns the series type of given category code. Only codes 1
// and 2 are accepted.
func ParseType(code uint8) (Type, error) {
	switch t := Type(code); t {
	case Unlimited, Limited:
		return t, nil
	default:
		return 0, errors.Wrapf(errors.ErrInput, "invalid series type %d", code)
	}
}

func (t Type) String() string {
	switch t {
	case Unlimited:
		return "UNLIMITED"
	case Limited:
		return "LIMITED"
	default:
		return "INVALID"
	}
}

// maxRoyalty is the total royalty of a series, in basis points.
const maxRoyalty = 10000

// Metadata is shared by all tokens of a series.
type Metadata struct {
	Title         string  `json:"title,omitempty" msgpack:"title,omitempty"`
	Description   string  `json:"description,omitempty" msgpack:"description,omitempty"`
	Media         string  `json:"media,omitempty" msgpack:"media,omitempty"`
	MediaHash     []byte  `json:"media_hash,omitempty" msgpack:"media_hash,omitempty"`
	Copies        *uint64 `json:"copies,omitempty" msgpack:"copies,omitempty"`
	IssuedAt      string  `json:"issued_at,omitempty" msgpack:"issued_at,omitempty"`
	ExpiresAt     string  `json:"expires_at,omitempty" msgpack:"expires_at,omitempty"`
	StartsAt      string  `json:"starts_at,omitempty" msgpack:"starts_at,omitempty"`
	UpdatedAt     string  `json:"updated_at,omitempty" msgpack:"updated_at,omitempty"`
	Extra         string  `json:"extra,omitempty" msgpack:"extra,omitempty"`
	Reference     string  `json:"reference,omitempty" msgpack:"reference,omitempty"`
	ReferenceHash []byte  `json:"reference_hash,omitempty" msgpack:"reference_hash,omitempty"`
}

// Validate returns an error if the metadata is not well formed.
func (m *Metadata) Validate() error {
	if m == nil {
		return errors.ErrEmpty
	}
	var errs error
	if m.Copies != nil && *m.Copies == 0 {
		errs = errors.AppendField(errs, "Copies", errors.ErrInput)
	}
	if len(m.MediaHash) != 0 && m.Media == "" {
		errs = errors.Append(errs, errors.Field("MediaHash", errors.ErrInput, "media hash without media"))
	}
	if len(m.ReferenceHash) != 0 && m.Reference == "" {
		errs = errors.Append(errs, errors.Field("ReferenceHash", errors.ErrInput, "reference hash without reference"))
	}
	return errs
}

// Royalty maps accounts to their share of a payout in basis points.
type Royalty map[nftseries.AccountID]uint32

// Validate returns an error if any account is malformed or the shares sum
// to more than 100%.
func (r Royalty) Validate() error {
	var (
		errs  error
		total uint64
	)
	for acc, share := range r {
		if err := acc.Validate(); err != nil {
			errs = errors.AppendField(errs, "Royalty."+string(acc), err)
		}
		total += uint64(share)
	}
	if total > maxRoyalty {
		errs = errors.Append(errs, errors.Field("Royalty", errors.ErrInput, "total royalty %d exceeds %d", total, maxRoyalty))
	}
	return errs
}

// ValidatePrice returns an error if a non empty price is not a non negative
// decimal.
func ValidatePrice(price string) error {
	if price == "" {
		return nil
	}
	p, err := decimal.NewFromString(price)
	if err != nil {
		return errors.Wrapf(errors.ErrInput, "price %q", price)
	}
	if p.IsNegative() {
		return errors.Wrap(errors.ErrInput, "negative price")
	}
	return nil
}

// Series is a collection of tokens.
type Series struct {
	ID       uint64              `msgpack:"id"`
	Metadata *Metadata           `msgpack:"metadata"`
	Royalty  Royalty             `msgpack:"royalty,omitempty"`
	Owner    nftseries.AccountID `msgpack:"owner"`
	// Price per edition. When set, anyone can mint by paying it.
	Price string `msgpack:"price,omitempty"`
	Type  Type   `msgpack:"type"`
	// Minted is the number of editions ever issued. Burned editions are
	// counted as well, so an edition number is never used twice.
	Minted uint64 `msgpack:"minted"`
}

var _ orm.Model = (*Series)(nil)

func (s *Series) Marshal() ([]byte, error) {
	return orm.MarshalModel(s)
}

func (s *Series) Unmarshal(raw []byte) error {
	return orm.UnmarshalModel(raw, s)
}

func (s *Series) Validate() error {
	var errs error
	if s.ID == 0 {
		errs = errors.AppendField(errs, "ID", errors.ErrEmpty)
	}
	errs = errors.AppendField(errs, "Owner", s.Owner.Validate())
	errs = errors.AppendField(errs, "Metadata", s.Metadata.Validate())
	errs = errors.Append(errs, s.Royalty.Validate())
	errs = errors.AppendField(errs, "Price", ValidatePrice(s.Price))
	if _, err := ParseType(uint8(s.Type)); err != nil {
		errs = errors.AppendField(errs, "Type", err)
	} else if s.Type == Limited && (s.Metadata == nil || s.Metadata.Copies == nil) {
		errs = errors.Append(errs, errors.Field("Metadata.Copies", errors.ErrEmpty, "limited series must declare copies"))
	}
	if s.Metadata != nil && s.Metadata.Copies != nil && s.Minted > *s.Metadata.Copies {
		errs = errors.Append(errs, errors.Field("Minted", errors.ErrLimit, "%d editions of %d", s.Minted, *s.Metadata.Copies))
	}
	return errs
}

// HasPrice returns true if this series is open for paid minting.
func (s *Series) HasPrice() bool {
	return s.Price != ""
}

// PriceOf returns the cost of minting given number of editions.
func (s *Series) PriceOf(amount uint64) (decimal.Decimal, error) {
	price, err := decimal.NewFromString(s.Price)
	if err != nil {
		return decimal.Zero, errors.Wrapf(errors.ErrState, "price %q", s.Price)
	}
	return price.Mul(decimal.New(int64(amount), 0)), nil
}

// Issue allocates editions for amount new tokens and returns the first
// one. Editions are allocated sequentially starting at 1. ErrLimit is
// returned, and nothing is allocated, if the series cap does not allow all
// of them.
func (s *Series) Issue(amount uint64) (uint64, error) {
	if amount == 0 {
		return 0, errors.Wrap(errors.ErrInput, "zero editions")
	}
	if s.Metadata != nil && s.Metadata.Copies != nil {
		if copies := *s.Metadata.Copies; s.Minted >= copies || amount > copies-s.Minted {
			return 0, errors.Wrapf(errors.ErrLimit, "cannot mint %d editions: %d of %d minted", amount, s.Minted, copies)
		}
	}
	if s.Minted+amount < s.Minted {
		return 0, errors.Wrap(errors.ErrOverflow, "edition")
	}
	first := s.Minted + 1
	s.Minted += amount
	return first, nil
}

// Member is an account that holds a role.
type Member struct {
	Account nftseries.AccountID `msgpack:"account"`
}

var _ orm.Model = (*Member)(nil)

func (m *Member) Marshal() ([]byte, error) {
	return orm.MarshalModel(m)
}

func (m *Member) Unmarshal(raw []byte) error {
	return orm.UnmarshalModel(raw, m)
}

func (m *Member) Validate() error {
	return errors.Field("Account", m.Account.Validate(), "")
}

// Role is a permission granted by the ledger owner.
type Role string

const (
	// RoleCreator may create series and update their media.
	RoleCreator Role = "creator"
	// RoleMinter may mint tokens of any unpriced series.
	RoleMinter Role = "minter"
)

// Validate returns an error if this is not a known role.
func (r Role) Validate() error {
	switch r {
	case RoleCreator, RoleMinter:
		return nil
	default:
		return errors.Wrapf(errors.ErrInput, "unknown role %q", string(r))
	}
}

const bucketName = "series"

var (
	seriesBucket = orm.NewModelBucket(bucketName, &Series{},
		orm.WithIndex("type", typeIndexer),
		orm.WithIndex("owner", ownerIndexer),
		orm.WithIndex("owner_type", ownerTypeIndexer),
	)
	seriesSeq = orm.NewSequence(bucketName, "id")

	roleBuckets = map[Role]orm.ModelBucket{
		RoleCreator: orm.NewModelBucket("creators", &Member{}),
		RoleMinter:  orm.NewModelBucket("minters", &Member{}),
	}
)

func typeIndexer(m orm.Model) ([]byte, error) {
	s, ok := m.(*Series)
	if !ok {
		return nil, errors.Wrapf(errors.ErrType, "%T", m)
	}
	return []byte{byte(s.Type)}, nil
}

func ownerIndexer(m orm.Model) ([]byte, error) {
	s, ok := m.(*Series)
	if !ok {
		return nil, errors.Wrapf(errors.ErrType, "%T", m)
	}
	return []byte(s.Owner), nil
}

func ownerTypeIndexer(m orm.Model) ([]byte, error) {
	s, ok := m.(*Series)
	if !ok {
		return nil, errors.Wrapf(errors.ErrType, "%T", m)
	}
	return ownerTypeKey(s.Owner, s.Type), nil
}

func ownerTypeKey(owner nftseries.AccountID, t Type) []byte {
	return orm.CompositeKey([]byte(owner), []byte{byte(t)})
}

// View is the public representation of a series.
type View struct {
	SeriesID   uint64              `json:"series_id"`
	Metadata   *Metadata           `json:"metadata"`
	Royalty    Royalty             `json:"royalty,omitempty"`
	OwnerID    nftseries.AccountID `json:"owner_id"`
	SeriesType Type                `json:"series_type"`
	Price      string              `json:"price,omitempty"`
	Minted     uint64              `json:"minted"`
	// Supply is the number of existing, not burned, tokens.
	Supply uint64 `json:"supply"`
}

// View returns the public representation of this series.
func (s *Series) View(supply uint64) *View {
	return &View{
		SeriesID:   s.ID,
		Metadata:   s.Metadata,
		Royalty:    s.Royalty,
		OwnerID:    s.Owner,
		SeriesType: s.Type,
		Price:      s.Price,
		Minted:     s.Minted,
		Supply:     supply,
	}
}
