package cash

import (
	"github.com/iov-one/coledger"
	"github.com/iov-one/coledger/errors"
)

const optKey = "cash"

// GenesisAccount is used to parse the json from genesis file. Address is
// hex encoded.
type GenesisAccount struct {
	Address coledger.Address `json:"address"`
	Amount  uint64           `json:"amount"`
}

// Initializer fulfils the Initializer interface to load data from the
// genesis file.
type Initializer struct{}

var _ coledger.Initializer = Initializer{}

// FromGenesis will parse initial wallet info from genesis and save it to
// the database.
func (Initializer) FromGenesis(opts coledger.Options, kv coledger.KVStore) error {
	var accts []GenesisAccount
	if err := opts.ReadOptions(optKey, &accts); err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}
	ctrl := NewController()
	for i, acct := range accts {
		if err := acct.Address.Validate(); err != nil {
			return errors.Wrapf(err, "wallet #%d", i)
		}
		if err := ctrl.IssueCoins(kv, acct.Address, acct.Amount); err != nil {
			return errors.Wrapf(err, "wallet #%d", i)
		}
	}
	return nil
}
