package token

import (
	"github.com/iov-one/nftseries"
	"github.com/iov-one/nftseries/errors"
	"github.com/iov-one/nftseries/orm"
	"github.com/iov-one/nftseries/x/series"
)

// RegisterQuery exposes tokens, supplies and series views.
func RegisterQuery(qr nftseries.QueryRouter) {
	qr.Register("/token", nftseries.QueryFunc(queryToken))
	qr.Register("/tokens", nftseries.QueryFunc(queryTokens))
	qr.Register("/supply", nftseries.QueryFunc(querySupply))
	qr.Register("/series", nftseries.QueryFunc(querySeries))
	qr.Register("/series/list", nftseries.QueryFunc(querySeriesList))
}

// TokenQuery selects a single token.
type TokenQuery struct {
	TokenID string `json:"token_id"`
}

func queryToken(db nftseries.ReadOnlyKVStore, data []byte) (interface{}, error) {
	var q TokenQuery
	if err := nftseries.LoadQuery(data, &q); err != nil {
		return nil, err
	}
	t, err := Get(db, q.TokenID)
	if err != nil {
		return nil, err
	}
	s, err := series.Get(db, t.SeriesID)
	if err != nil {
		return nil, err
	}
	return NewView(t, s), nil
}

// ListQuery filters a token listing or a supply count. Both filters are
// optional. SeriesID zero does not filter by series.
type ListQuery struct {
	Owner    nftseries.AccountID `json:"owner_id,omitempty"`
	SeriesID uint64              `json:"series_id,omitempty"`
	orm.Page
}

func (q *ListQuery) validate() error {
	if q.Owner == "" {
		return nil
	}
	return errors.Field("Owner", q.Owner.Validate(), "invalid owner")
}

func queryTokens(db nftseries.ReadOnlyKVStore, data []byte) (interface{}, error) {
	var q ListQuery
	if err := nftseries.LoadQuery(data, &q); err != nil {
		return nil, err
	}
	if err := q.validate(); err != nil {
		return nil, err
	}

	var (
		tokens []*Token
		err    error
	)
	switch {
	case q.Owner != "" && q.SeriesID != 0:
		tokens, err = ListForOwnerInSeries(db, q.Owner, q.SeriesID, q.Page)
	case q.Owner != "":
		tokens, err = ListForOwner(db, q.Owner, q.Page)
	case q.SeriesID != 0:
		tokens, err = ListForSeries(db, q.SeriesID, q.Page)
	default:
		tokens, err = List(db, q.Page)
	}
	if err != nil {
		return nil, err
	}

	views := make([]*View, 0, len(tokens))
	known := make(map[uint64]*series.Series)
	for _, t := range tokens {
		s, ok := known[t.SeriesID]
		if !ok {
			if s, err = series.Get(db, t.SeriesID); err != nil {
				return nil, err
			}
			known[t.SeriesID] = s
		}
		views = append(views, NewView(t, s))
	}
	return views, nil
}

func querySupply(db nftseries.ReadOnlyKVStore, data []byte) (interface{}, error) {
	var q ListQuery
	if err := nftseries.LoadQuery(data, &q); err != nil {
		return nil, err
	}
	if err := q.validate(); err != nil {
		return nil, err
	}
	switch {
	case q.Owner != "" && q.SeriesID != 0:
		return SupplyForOwnerInSeries(db, q.Owner, q.SeriesID)
	case q.Owner != "":
		return SupplyForOwner(db, q.Owner)
	case q.SeriesID != 0:
		return SupplyForSeries(db, q.SeriesID)
	default:
		return TotalSupply(db)
	}
}

// SeriesQuery selects a single series.
type SeriesQuery struct {
	SeriesID uint64 `json:"series_id"`
}

func querySeries(db nftseries.ReadOnlyKVStore, data []byte) (interface{}, error) {
	var q SeriesQuery
	if err := nftseries.LoadQuery(data, &q); err != nil {
		return nil, err
	}
	s, err := series.Get(db, q.SeriesID)
	if err != nil {
		return nil, err
	}
	return seriesView(db, s)
}

// SeriesListQuery filters a series listing by category code, owner or
// both.
type SeriesListQuery struct {
	Type  uint8               `json:"series_type,omitempty"`
	Owner nftseries.AccountID `json:"owner_id,omitempty"`
	orm.Page
}

func querySeriesList(db nftseries.ReadOnlyKVStore, data []byte) (interface{}, error) {
	var q SeriesListQuery
	if err := nftseries.LoadQuery(data, &q); err != nil {
		return nil, err
	}

	var (
		t   series.Type
		err error
	)
	if q.Type != 0 {
		if t, err = series.ParseType(q.Type); err != nil {
			return nil, errors.Field("Type", err, "invalid series type")
		}
	}
	if q.Owner != "" {
		if err := q.Owner.Validate(); err != nil {
			return nil, errors.Field("Owner", err, "invalid owner")
		}
	}

	var all []*series.Series
	switch {
	case q.Owner != "" && t != 0:
		all, err = series.ListByOwnerAndType(db, q.Owner, t, q.Page)
	case q.Owner != "":
		all, err = series.ListByOwner(db, q.Owner, q.Page)
	case t != 0:
		all, err = series.ListByType(db, t, q.Page)
	default:
		all, err = series.List(db, q.Page)
	}
	if err != nil {
		return nil, err
	}

	views := make([]*series.View, 0, len(all))
	for _, s := range all {
		v, err := seriesView(db, s)
		if err != nil {
			return nil, err
		}
		views = append(views, v)
	}
	return views, nil
}

func seriesView(db nftseries.ReadOnlyKVStore, s *series.Series) (*series.View, error) {
	supply, err := SupplyForSeries(db, s.ID)
	if err != nil {
		return nil, err
	}
	return s.View(supply), nil
}
