package app

import (
	"github.com/iov-one/nftseries"
	"github.com/iov-one/nftseries/x/burn"
	"github.com/iov-one/nftseries/x/mint"
	"github.com/iov-one/nftseries/x/series"
	"github.com/iov-one/nftseries/x/sigs"
	"github.com/iov-one/nftseries/x/token"
	"github.com/iov-one/nftseries/x/transfer"
)

// Routes registers the handlers of all ledger operations.
func Routes(r nftseries.Registry) {
	series.RegisterRoutes(r)
	mint.RegisterRoutes(r)
	burn.RegisterRoutes(r)
	transfer.RegisterRoutes(r)
}

// Queries returns a router with all ledger queries registered.
func Queries() nftseries.QueryRouter {
	qr := nftseries.NewQueryRouter()
	qr.RegisterAll(
		sigs.RegisterQuery,
		series.RegisterQuery,
		token.RegisterQuery,
	)
	return qr
}

// Messages returns a codec of all ledger operations.
func Messages() *Codec {
	return NewCodec(
		&series.CreateSeriesMsg{},
		&series.UpdateSeriesMediaMsg{},
		&series.AddRoleMsg{},
		&series.RemoveRoleMsg{},
		&series.UpdateConfigurationMsg{},
		&mint.MintMsg{},
		&mint.BatchMintMsg{},
		&burn.BurnMsg{},
		&burn.BatchBurnMsg{},
		&transfer.TransferMsg{},
		&transfer.BatchTransferMsg{},
	)
}

// Initializer returns the genesis initializer of all modules.
func Initializer() nftseries.Initializer {
	return nftseries.ChainInitializers(
		&series.Initializer{},
	)
}
