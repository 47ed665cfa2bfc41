package series

import (
	"context"
	"strconv"

	"github.com/iov-one/nftseries"
	"github.com/iov-one/nftseries/errors"
	"github.com/iov-one/nftseries/gconf"
)

// RegisterRoutes registers handlers for series and role management.
func RegisterRoutes(r nftseries.Registry) {
	r.Handle(pathCreateSeries, &createSeriesHandler{})
	r.Handle(pathUpdateSeriesMedia, &updateSeriesMediaHandler{})
	r.Handle(pathAddRole, &roleHandler{grant: true})
	r.Handle(pathRemoveRole, &roleHandler{grant: false})
	r.Handle(pathUpdateConfiguration, gconf.NewUpdateConfigurationHandler(ConfigurationPkg, &Configuration{}))
}

type createSeriesHandler struct{}

func (h *createSeriesHandler) Deliver(ctx context.Context, db nftseries.KVStore, msg nftseries.Msg) (*nftseries.Result, error) {
	var m CreateSeriesMsg
	if err := nftseries.LoadMsg(msg, &m); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	caller, _ := nftseries.GetCaller(ctx)
	if err := RequireRole(db, RoleCreator, caller); err != nil {
		return nil, err
	}

	s := Series{
		Metadata: m.Metadata,
		Royalty:  m.Royalty,
		Owner:    caller,
		Price:    m.Price,
		Type:     Type(m.Type),
	}
	if err := Create(db, &s); err != nil {
		return nil, err
	}
	nftseries.GetLogger(ctx).Info("series created", "series", s.ID, "owner", caller, "type", s.Type)
	return &nftseries.Result{
		Data: []byte(strconv.FormatUint(s.ID, 10)),
		Log:  "series created",
	}, nil
}

type updateSeriesMediaHandler struct{}

func (h *updateSeriesMediaHandler) Deliver(ctx context.Context, db nftseries.KVStore, msg nftseries.Msg) (*nftseries.Result, error) {
	var m UpdateSeriesMediaMsg
	if err := nftseries.LoadMsg(msg, &m); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	caller, _ := nftseries.GetCaller(ctx)
	if err := RequireRole(db, RoleCreator, caller); err != nil {
		return nil, err
	}

	s, err := Get(db, m.SeriesID)
	if err != nil {
		return nil, err
	}
	s.Metadata.Media = m.Media
	s.Metadata.MediaHash = m.MediaHash
	if err := Save(db, s); err != nil {
		return nil, err
	}
	return &nftseries.Result{Log: "series media updated"}, nil
}

// roleHandler grants or revokes roles. Only the ledger owner can manage
// roles.
type roleHandler struct {
	grant bool
}

func (h *roleHandler) Deliver(ctx context.Context, db nftseries.KVStore, msg nftseries.Msg) (*nftseries.Result, error) {
	var (
		role    Role
		account nftseries.AccountID
	)
	switch m := msg.(type) {
	case *AddRoleMsg:
		role, account = m.Role, m.Account
	case *RemoveRoleMsg:
		role, account = m.Role, m.Account
	default:
		return nil, errors.Wrapf(errors.ErrType, "%T", msg)
	}
	if err := msg.Validate(); err != nil {
		return nil, err
	}

	conf, err := LoadConfiguration(db)
	if err != nil {
		return nil, err
	}
	if caller, _ := nftseries.GetCaller(ctx); caller != conf.Owner {
		return nil, errors.Wrap(errors.ErrUnauthorized, "only the ledger owner can manage roles")
	}

	if h.grant {
		err = AddRole(db, role, account)
	} else {
		err = RemoveRole(db, role, account)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "%s role of %s", role, account)
	}
	nftseries.GetLogger(ctx).Info("role changed", "role", role, "account", account, "granted", h.grant)
	return &nftseries.Result{Log: "role updated"}, nil
}
