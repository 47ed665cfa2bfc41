package series

import (
	"context"

	"github.com/iov-one/nftseries"
	"github.com/iov-one/nftseries/errors"
	"github.com/iov-one/nftseries/gconf"
)

// Initializer fulfils the Initializer interface to load data from the genesis
// file
type Initializer struct{}

var _ nftseries.Initializer = (*Initializer)(nil)

// FromGenesis stores the ledger configuration and grants the owner both
// creator and minter roles. Additional role holders can be declared under
// the "series" key.
func (*Initializer) FromGenesis(ctx context.Context, opts nftseries.Options, db nftseries.KVStore) error {
	var conf Configuration
	if err := gconf.InitConfig(ctx, db, opts, ConfigurationPkg, &conf); err != nil {
		return errors.Wrap(err, "init config")
	}

	var roles struct {
		Creators []nftseries.AccountID `json:"creators"`
		Minters  []nftseries.AccountID `json:"minters"`
	}
	if err := opts.ReadOptions("series", &roles); err != nil {
		return err
	}
	for _, acc := range append(roles.Creators, conf.Owner) {
		if err := AddRole(db, RoleCreator, acc); err != nil {
			return errors.Wrapf(err, "creator %q", acc)
		}
	}
	for _, acc := range append(roles.Minters, conf.Owner) {
		if err := AddRole(db, RoleMinter, acc); err != nil {
			return errors.Wrapf(err, "minter %q", acc)
		}
	}
	return nil
}
