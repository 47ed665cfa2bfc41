package app

import (
	"encoding/json"
	"os"
	"regexp"

	"github.com/iov-one/nftseries"
	"github.com/iov-one/nftseries/errors"
)

// Genesis is the file a ledger is initialized from.
type Genesis struct {
	LedgerID string            `json:"ledger_id"`
	AppState nftseries.Options `json:"app_state"`
}

// LoadGenesis reads a genesis file.
func LoadGenesis(filePath string) (Genesis, error) {
	var gen Genesis

	raw, err := os.ReadFile(filePath)
	if err != nil {
		return gen, errors.Wrap(errors.ErrInput, err.Error())
	}
	if err := json.Unmarshal(raw, &gen); err != nil {
		return gen, errors.Wrapf(errors.ErrInput, "cannot parse genesis: %s", err)
	}
	if !isLedgerID(gen.LedgerID) {
		return gen, errors.Wrapf(errors.ErrInput, "invalid ledger id %q", gen.LedgerID)
	}
	return gen, nil
}

const ledgerIDKey = "_ledger:id"

// loadLedgerID returns the ledger id stored if any
func loadLedgerID(db nftseries.ReadOnlyKVStore) (string, error) {
	v, err := db.Get([]byte(ledgerIDKey))
	if err != nil {
		return "", errors.Wrap(err, "ledger id")
	}
	return string(v), nil
}

// saveLedgerID stores a ledger id in the kv store.
// Returns error if already set, or invalid name
func saveLedgerID(db nftseries.KVStore, id string) error {
	if !isLedgerID(id) {
		return errors.Wrapf(errors.ErrInput, "invalid ledger id %q", id)
	}
	k := []byte(ledgerIDKey)
	switch ok, err := db.Has(k); {
	case err != nil:
		return errors.Wrap(err, "ledger id")
	case ok:
		return errors.Wrap(errors.ErrDuplicate, "ledger id already set")
	}
	return db.Set(k, []byte(id))
}

var isLedgerID = regexp.MustCompile(`^[a-zA-Z0-9_.-]{4,32}$`).MatchString
