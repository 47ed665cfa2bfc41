package token

import (
	"strconv"

	"github.com/iov-one/nftseries"
	"github.com/iov-one/nftseries/x/series"
)

// View is the public representation of a token. Metadata is inherited from
// its series.
type View struct {
	TokenID            string                         `json:"token_id"`
	OwnerID            nftseries.AccountID            `json:"owner_id"`
	SeriesID           uint64                         `json:"series_id"`
	Metadata           *series.Metadata               `json:"metadata"`
	ApprovedAccountIDs map[nftseries.AccountID]uint64 `json:"approved_account_ids"`
	Royalty            series.Royalty                 `json:"royalty,omitempty"`
}

// NewView returns the public representation of a token of given series.
// The title of the series becomes "<title> - <edition>", or
// "<series id> - <edition>" when the series has no title.
func NewView(t *Token, s *series.Series) *View {
	var meta series.Metadata
	if s.Metadata != nil {
		meta = *s.Metadata
	}
	edition := strconv.FormatUint(t.Edition, 10)
	if meta.Title != "" {
		meta.Title = meta.Title + " - " + edition
	} else {
		meta.Title = strconv.FormatUint(s.ID, 10) + " - " + edition
	}

	approvals := make(map[nftseries.AccountID]uint64, len(t.Approvals))
	for acc, id := range t.Approvals {
		approvals[acc] = id
	}
	return &View{
		TokenID:            t.ID(),
		OwnerID:            t.Owner,
		SeriesID:           t.SeriesID,
		Metadata:           &meta,
		ApprovedAccountIDs: approvals,
		Royalty:            s.Royalty,
	}
}
