package token

import (
	"strconv"
	"strings"

	"github.com/iov-one/nftseries"
	"github.com/iov-one/nftseries/errors"
	"github.com/iov-one/nftseries/orm"
)

// Token is a single edition of a series.
type Token struct {
	SeriesID uint64              `msgpack:"series_id"`
	Edition  uint64              `msgpack:"edition"`
	Owner    nftseries.AccountID `msgpack:"owner"`
	// Approvals maps accounts allowed to transfer this token to their
	// approval id.
	Approvals      map[nftseries.AccountID]uint64 `msgpack:"approvals,omitempty"`
	NextApprovalID uint64                         `msgpack:"next_approval_id"`
}

var _ orm.Model = (*Token)(nil)

func (t *Token) Marshal() ([]byte, error) {
	return orm.MarshalModel(t)
}

func (t *Token) Unmarshal(raw []byte) error {
	return orm.UnmarshalModel(raw, t)
}

func (t *Token) Validate() error {
	var errs error
	if t.SeriesID == 0 {
		errs = errors.AppendField(errs, "SeriesID", errors.ErrEmpty)
	}
	if t.Edition == 0 {
		errs = errors.AppendField(errs, "Edition", errors.ErrEmpty)
	}
	errs = errors.AppendField(errs, "Owner", t.Owner.Validate())
	for acc, id := range t.Approvals {
		if err := acc.Validate(); err != nil {
			errs = errors.AppendField(errs, "Approvals."+string(acc), err)
		}
		if id >= t.NextApprovalID {
			errs = errors.Append(errs, errors.Field("Approvals."+string(acc), errors.ErrState, "approval id %d not issued", id))
		}
	}
	return errs
}

// ID returns the textual token id.
func (t *Token) ID() string {
	return FormatID(t.SeriesID, t.Edition)
}

// Key returns the primary key of this token.
func (t *Token) Key() []byte {
	return tokenKey(t.SeriesID, t.Edition)
}

// IsApproved returns true if the account may transfer this token on behalf
// of the owner. A nil approval id matches any approval.
func (t *Token) IsApproved(account nftseries.AccountID, approvalID *uint64) bool {
	id, ok := t.Approvals[account]
	if !ok {
		return false
	}
	return approvalID == nil || *approvalID == id
}

// FormatID returns the textual id of a token: "<series id>:<edition>",
// both decimal and unpadded.
func FormatID(seriesID, edition uint64) string {
	return strconv.FormatUint(seriesID, 10) + ":" + strconv.FormatUint(edition, 10)
}

// ParseID is the counterpart of FormatID. Anything that FormatID would not
// produce fails with ErrInput.
func ParseID(id string) (seriesID, edition uint64, err error) {
	parts := strings.Split(id, ":")
	if len(parts) != 2 {
		return 0, 0, errors.Wrapf(errors.ErrInput, "malformed token id %q", id)
	}
	seriesID, err1 := strconv.ParseUint(parts[0], 10, 64)
	edition, err2 := strconv.ParseUint(parts[1], 10, 64)
	if err1 != nil || err2 != nil || seriesID == 0 || edition == 0 || FormatID(seriesID, edition) != id {
		return 0, 0, errors.Wrapf(errors.ErrInput, "malformed token id %q", id)
	}
	return seriesID, edition, nil
}

func tokenKey(seriesID, edition uint64) []byte {
	return append(orm.EncodeUint64(seriesID), orm.EncodeUint64(edition)...)
}

func ownerSeriesKey(owner nftseries.AccountID, seriesID uint64) []byte {
	return orm.CompositeKey([]byte(owner), orm.EncodeUint64(seriesID))
}

const bucketName = "token"

var (
	tokenBucket = orm.NewModelBucket(bucketName, &Token{},
		orm.WithIndex("owner", ownerIndexer),
		orm.WithIndex("owner_series", ownerSeriesIndexer),
	)

	totalSupply       = orm.NewCounter(bucketName, "supply")
	ownerSupply       = orm.NewCounter(bucketName, "owner")
	seriesSupply      = orm.NewCounter(bucketName, "series")
	ownerSeriesSupply = orm.NewCounter(bucketName, "owner_series")

	totalKey = []byte("all")
)

func asToken(m orm.Model) (*Token, error) {
	t, ok := m.(*Token)
	if !ok {
		return nil, errors.Wrapf(errors.ErrType, "%T", m)
	}
	return t, nil
}

func ownerIndexer(m orm.Model) ([]byte, error) {
	t, err := asToken(m)
	if err != nil {
		return nil, err
	}
	return []byte(t.Owner), nil
}

func ownerSeriesIndexer(m orm.Model) ([]byte, error) {
	t, err := asToken(m)
	if err != nil {
		return nil, err
	}
	return ownerSeriesKey(t.Owner, t.SeriesID), nil
}
