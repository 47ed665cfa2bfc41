package mint

import (
	"github.com/iov-one/nftseries"
	"github.com/iov-one/nftseries/errors"
	"github.com/iov-one/nftseries/x/series"
	"github.com/iov-one/nftseries/x/token"
)

// Issue mints amount new editions of the series to the receiver and stores
// the updated series. Either all editions are minted or ErrLimit is
// returned. When approver is not empty, it is approved to transfer all
// minted tokens.
func Issue(db nftseries.KVStore, s *series.Series, receiver, approver nftseries.AccountID, amount uint64) ([]*token.Token, error) {
	first, err := s.Issue(amount)
	if err != nil {
		return nil, errors.Wrapf(err, "series %d", s.ID)
	}

	tokens := make([]*token.Token, 0, amount)
	for edition := first; edition < first+amount; edition++ {
		t := &token.Token{
			SeriesID: s.ID,
			Edition:  edition,
			Owner:    receiver,
		}
		if approver != "" {
			t.Approvals = map[nftseries.AccountID]uint64{approver: 0}
			t.NextApprovalID = 1
		}
		if err := token.Insert(db, t); err != nil {
			return nil, err
		}
		tokens = append(tokens, t)
	}
	if err := series.Save(db, s); err != nil {
		return nil, err
	}
	return tokens, nil
}

// TokenIDs returns the textual ids of given tokens.
func TokenIDs(tokens []*token.Token) []string {
	ids := make([]string, len(tokens))
	for i, t := range tokens {
		ids[i] = t.ID()
	}
	return ids
}
