package jointaccount

import (
	"github.com/iov-one/coledger"
	"github.com/iov-one/coledger/errors"
)

const optKey = "jointaccount"

// GenesisAccount is used to parse the json from genesis file.
type GenesisAccount struct {
	Owners  []coledger.Address `json:"owners"`
	Balance uint64             `json:"balance"`
}

// Initializer fulfils the Initializer interface to load accounts from the
// genesis file. Accounts get IDs in the order they are listed, and their
// balance is issued to the account wallet.
type Initializer struct {
	Cash CashController
}

var _ coledger.Initializer = (*Initializer)(nil)

// FromGenesis will parse initial accounts from genesis and save them to the
// database. The same owner rules as for CreateAccount apply.
func (i *Initializer) FromGenesis(opts coledger.Options, db coledger.KVStore) error {
	var accts []GenesisAccount
	if err := opts.ReadOptions(optKey, &accts); err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}
	ctrl := NewController(i.Cash)
	for n, a := range accts {
		indexes, err := ctrl.validateCreate(db, a.Owners)
		if err != nil {
			return errors.Wrapf(err, "account #%d", n)
		}
		id, err := ctrl.create(db, a.Owners, indexes)
		if err != nil {
			return errors.Wrapf(err, "account #%d", n)
		}
		if a.Balance == 0 {
			continue
		}
		if err := i.Cash.IssueCoins(db, Condition(id).Address(), a.Balance); err != nil {
			return errors.Wrapf(err, "account #%d", n)
		}
		acc, err := loadAccount(db, id)
		if err != nil {
			return err
		}
		acc.Balance = a.Balance
		if err := accounts.Put(db, accountKey(id), acc); err != nil {
			return errors.Wrapf(err, "account #%d", n)
		}
	}
	return nil
}
