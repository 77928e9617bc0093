package cash

import (
	"github.com/iov-one/coledger"
	"github.com/iov-one/coledger/errors"
)

// Controller is the functionality needed by other extensions to move funds
// between wallets.
type Controller interface {
	// Balance returns the funds of given address. A principal without a
	// wallet has zero funds.
	Balance(db coledger.ReadOnlyKVStore, addr coledger.Address) (uint64, error)

	// MoveCoins moves the given amount from src to dst. If src doesn't
	// have sufficient funds, it fails with ErrInsufficientAmount.
	MoveCoins(db coledger.KVStore, src, dst coledger.Address, amount uint64) error

	// IssueCoins adds the given amount to the destination wallet.
	IssueCoins(db coledger.KVStore, dst coledger.Address, amount uint64) error

	// BurnCoins removes the given amount from the source wallet.
	BurnCoins(db coledger.KVStore, src coledger.Address, amount uint64) error
}

// BaseController is a simple implementation of controller. Wallets must
// have an address to be stored.
type BaseController struct{}

var _ Controller = BaseController{}

// NewController returns a controller operating on the wallet bucket.
func NewController() BaseController {
	return BaseController{}
}

func (BaseController) Balance(db coledger.ReadOnlyKVStore, addr coledger.Address) (uint64, error) {
	w, err := loadWallet(db, addr)
	if err != nil {
		return 0, err
	}
	return w.Amount, nil
}

// MoveCoins moves the given amount from src to dst. A zero move is a no-op.
func (c BaseController) MoveCoins(db coledger.KVStore, src, dst coledger.Address, amount uint64) error {
	if amount == 0 {
		return nil
	}
	if err := dst.Validate(); err != nil {
		return errors.Wrap(err, "invalid destination")
	}

	sender, err := loadWallet(db, src)
	if err != nil {
		return err
	}
	if sender.Amount < amount {
		return errors.Wrapf(errors.ErrInsufficientAmount, "wallet %s holds %d, want %d", src, sender.Amount, amount)
	}
	if src.Equals(dst) {
		return nil
	}

	recipient, err := loadWallet(db, dst)
	if err != nil {
		return err
	}
	if recipient.Amount+amount < recipient.Amount {
		return errors.Wrapf(errors.ErrOverflow, "wallet %s", dst)
	}

	sender.Amount -= amount
	recipient.Amount += amount
	if err := saveWallet(db, src, sender); err != nil {
		return err
	}
	return saveWallet(db, dst, recipient)
}

// IssueCoins adds funds to the destination wallet. Fails if it overflows
// the wallet.
func (BaseController) IssueCoins(db coledger.KVStore, dst coledger.Address, amount uint64) error {
	if err := dst.Validate(); err != nil {
		return errors.Wrap(err, "invalid destination")
	}
	w, err := loadWallet(db, dst)
	if err != nil {
		return err
	}
	if w.Amount+amount < w.Amount {
		return errors.Wrapf(errors.ErrOverflow, "wallet %s", dst)
	}
	w.Amount += amount
	return saveWallet(db, dst, w)
}

// BurnCoins removes funds from the source wallet. Fails if the wallet holds
// less than the amount.
func (BaseController) BurnCoins(db coledger.KVStore, src coledger.Address, amount uint64) error {
	w, err := loadWallet(db, src)
	if err != nil {
		return err
	}
	if w.Amount < amount {
		return errors.Wrapf(errors.ErrInsufficientAmount, "wallet %s holds %d, want %d", src, w.Amount, amount)
	}
	w.Amount -= amount
	return saveWallet(db, src, w)
}

func loadWallet(db coledger.ReadOnlyKVStore, addr coledger.Address) (*Wallet, error) {
	var w Wallet
	switch err := NewBucket().One(db, walletKey(addr), &w); {
	case err == nil:
		return &w, nil
	case errors.ErrNotFound.Is(err):
		return &Wallet{}, nil
	default:
		return nil, errors.Wrap(err, "cannot load wallet")
	}
}

func saveWallet(db coledger.KVStore, addr coledger.Address, w *Wallet) error {
	if err := NewBucket().Put(db, walletKey(addr), w); err != nil {
		return errors.Wrap(err, "cannot save wallet")
	}
	return nil
}
