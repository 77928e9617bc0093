package jointaccount

import (
	"github.com/iov-one/coledger"
	"github.com/iov-one/coledger/errors"
)

// CashController is the part of the cash extension needed to move funds
// between wallets and joint accounts.
type CashController interface {
	MoveCoins(db coledger.KVStore, src, dst coledger.Address, amount uint64) error
	IssueCoins(db coledger.KVStore, dst coledger.Address, amount uint64) error
}

// Controller implements all joint account operations. Every mutating
// operation first validates against the current state of the store and
// only then writes. A failed operation does not modify the store.
type Controller struct {
	cash CashController
}

// NewController returns a controller that uses given cash controller to
// move funds in and out of joint accounts.
func NewController(cash CashController) *Controller {
	return &Controller{cash: cash}
}

// CreateAccount creates a new account owned by the caller and given other
// owners. The caller is always the first owner. The new account ID is
// returned.
func (c *Controller) CreateAccount(db coledger.KVStore, caller coledger.Address, otherOwners []coledger.Address) (uint64, error) {
	owners := append([]coledger.Address{caller}, otherOwners...)
	indexes, err := c.validateCreate(db, owners)
	if err != nil {
		return 0, err
	}
	return c.create(db, owners, indexes)
}

// ValidateCreateAccount returns the error CreateAccount would fail with,
// without modifying the store.
func (c *Controller) ValidateCreateAccount(db coledger.ReadOnlyKVStore, caller coledger.Address, otherOwners []coledger.Address) error {
	owners := append([]coledger.Address{caller}, otherOwners...)
	_, err := c.validateCreate(db, owners)
	return err
}

func (c *Controller) validateCreate(db coledger.ReadOnlyKVStore, owners []coledger.Address) ([]*UserAccounts, error) {
	if err := validateOwners(owners); err != nil {
		return nil, err
	}
	indexes := make([]*UserAccounts, len(owners))
	for i, o := range owners {
		ua, err := loadUserAccounts(db, o)
		if err != nil {
			return nil, err
		}
		if len(ua.AccountIDs) >= MaxUserAccounts {
			return nil, errors.Wrapf(ErrTooManyAccounts, "owner %s", o)
		}
		indexes[i] = ua
	}
	return indexes, nil
}

func (c *Controller) create(db coledger.KVStore, owners []coledger.Address, indexes []*UserAccounts) (uint64, error) {
	id, err := accountSeq.NextInt(db)
	if err != nil {
		return 0, errors.Wrap(err, "account sequence")
	}
	acc := &Account{
		ID:      id,
		Owners:  cloneAddresses(owners),
		Balance: 0,
	}
	if err := accounts.Put(db, accountKey(id), acc); err != nil {
		return 0, errors.Wrap(err, "cannot save account")
	}
	for i, o := range owners {
		ua := indexes[i]
		ua.AccountIDs = append(ua.AccountIDs, id)
		if err := userAccounts.Put(db, o, ua); err != nil {
			return 0, errors.Wrap(err, "cannot save owner index")
		}
	}
	return id, nil
}

// Deposit moves amount from the caller's wallet into the account. Only an
// owner can deposit.
func (c *Controller) Deposit(db coledger.KVStore, caller coledger.Address, accountID, amount uint64) error {
	acc, err := c.validateDeposit(db, caller, accountID, amount)
	if err != nil {
		return err
	}
	if err := c.cash.MoveCoins(db, caller, Condition(accountID).Address(), amount); err != nil {
		return errors.Wrap(err, "cannot pay the deposit")
	}
	acc.Balance += amount
	if err := accounts.Put(db, accountKey(accountID), acc); err != nil {
		return errors.Wrap(err, "cannot save account")
	}
	return nil
}

// ValidateDeposit returns the error Deposit would fail with because of the
// account state. Wallet funds are not checked.
func (c *Controller) ValidateDeposit(db coledger.ReadOnlyKVStore, caller coledger.Address, accountID, amount uint64) error {
	_, err := c.validateDeposit(db, caller, accountID, amount)
	return err
}

func (c *Controller) validateDeposit(db coledger.ReadOnlyKVStore, caller coledger.Address, accountID, amount uint64) (*Account, error) {
	acc, err := c.ownedAccount(db, caller, accountID)
	if err != nil {
		return nil, err
	}
	if acc.Balance+amount < acc.Balance {
		return nil, errors.Wrapf(errors.ErrOverflow, "account %d balance", accountID)
	}
	return acc, nil
}

// RequestWithdraw creates a withdraw request for amount. The amount must be
// positive and covered by the account balance at the time of the request.
// The ID of the new request is returned.
func (c *Controller) RequestWithdraw(db coledger.KVStore, caller coledger.Address, accountID, amount uint64) (uint64, error) {
	if err := c.ValidateRequestWithdraw(db, caller, accountID, amount); err != nil {
		return 0, err
	}
	seq := withdrawSeq(accountID)
	id, err := seq.NextInt(db)
	if err != nil {
		return 0, errors.Wrap(err, "withdraw sequence")
	}
	w := &WithdrawRequest{
		AccountID: accountID,
		ID:        id,
		Requester: caller.Clone(),
		Amount:    amount,
	}
	if err := withdraws.Put(db, WithdrawKey(accountID, id), w); err != nil {
		return 0, errors.Wrap(err, "cannot save withdraw request")
	}
	return id, nil
}

// ValidateRequestWithdraw returns the error RequestWithdraw would fail
// with, without modifying the store.
func (c *Controller) ValidateRequestWithdraw(db coledger.ReadOnlyKVStore, caller coledger.Address, accountID, amount uint64) error {
	acc, err := c.ownedAccount(db, caller, accountID)
	if err != nil {
		return err
	}
	if amount == 0 {
		return errors.Wrap(errors.ErrAmount, "amount must be positive")
	}
	if amount > acc.Balance {
		return errors.Wrapf(ErrInsufficientFunds, "account %d holds %d, requested %d", accountID, acc.Balance, amount)
	}
	return nil
}

// ApproveWithdraw records the approval of the caller. The caller must be
// an owner other than the requester and can approve a request only once.
func (c *Controller) ApproveWithdraw(db coledger.KVStore, caller coledger.Address, accountID, withdrawID uint64) error {
	w, err := c.validateApprove(db, caller, accountID, withdrawID)
	if err != nil {
		return err
	}
	w.Approvals = append(w.Approvals, caller.Clone())
	if err := withdraws.Put(db, WithdrawKey(accountID, withdrawID), w); err != nil {
		return errors.Wrap(err, "cannot save withdraw request")
	}
	return nil
}

// ValidateApproveWithdraw returns the error ApproveWithdraw would fail
// with, without modifying the store.
func (c *Controller) ValidateApproveWithdraw(db coledger.ReadOnlyKVStore, caller coledger.Address, accountID, withdrawID uint64) error {
	_, err := c.validateApprove(db, caller, accountID, withdrawID)
	return err
}

func (c *Controller) validateApprove(db coledger.ReadOnlyKVStore, caller coledger.Address, accountID, withdrawID uint64) (*WithdrawRequest, error) {
	if _, err := c.ownedAccount(db, caller, accountID); err != nil {
		return nil, err
	}
	w, err := loadWithdraw(db, accountID, withdrawID)
	if err != nil {
		return nil, err
	}
	if w.Requester.Equals(caller) {
		return nil, errors.Wrap(ErrSelfApproval, "requester cannot approve")
	}
	if w.Executed {
		return nil, errors.Wrapf(ErrAlreadyExecuted, "request %d/%d", accountID, withdrawID)
	}
	if w.HasApproved(caller) {
		return nil, errors.Wrapf(ErrAlreadyApproved, "by %s", caller)
	}
	return w, nil
}

// WithdrawAmount executes an approved withdraw request. Only the requester
// can execute it, and only once. The requested amount is moved from the
// account to the requester's wallet.
func (c *Controller) WithdrawAmount(db coledger.KVStore, caller coledger.Address, withdrawID, accountID uint64) error {
	acc, w, err := c.validateWithdraw(db, caller, withdrawID, accountID)
	if err != nil {
		return err
	}
	if err := c.cash.MoveCoins(db, Condition(accountID).Address(), w.Requester, w.Amount); err != nil {
		return errors.Wrap(err, "cannot pay the requester")
	}
	w.Executed = true
	acc.Balance -= w.Amount
	if err := withdraws.Put(db, WithdrawKey(accountID, withdrawID), w); err != nil {
		return errors.Wrap(err, "cannot save withdraw request")
	}
	if err := accounts.Put(db, accountKey(accountID), acc); err != nil {
		return errors.Wrap(err, "cannot save account")
	}
	return nil
}

// ValidateWithdrawAmount returns the error WithdrawAmount would fail with
// because of the ledger state. Wallet limits are not checked.
func (c *Controller) ValidateWithdrawAmount(db coledger.ReadOnlyKVStore, caller coledger.Address, withdrawID, accountID uint64) error {
	_, _, err := c.validateWithdraw(db, caller, withdrawID, accountID)
	return err
}

func (c *Controller) validateWithdraw(db coledger.ReadOnlyKVStore, caller coledger.Address, withdrawID, accountID uint64) (*Account, *WithdrawRequest, error) {
	acc, err := loadAccount(db, accountID)
	if err != nil {
		return nil, nil, err
	}
	w, err := loadWithdraw(db, accountID, withdrawID)
	if err != nil {
		return nil, nil, err
	}
	// A second execution fails the same way for everyone.
	if w.Executed {
		return nil, nil, errors.Wrapf(ErrAlreadyExecuted, "request %d/%d", accountID, withdrawID)
	}
	if !w.Requester.Equals(caller) {
		return nil, nil, errors.Wrapf(ErrNotRequester, "request %d/%d", accountID, withdrawID)
	}
	if len(w.Approvals) < MinApprovals {
		return nil, nil, errors.Wrapf(ErrInsufficientApprovals, "%d of %d", len(w.Approvals), MinApprovals)
	}
	if w.Amount > acc.Balance {
		return nil, nil, errors.Wrapf(ErrInsufficientFunds, "account %d holds %d, requested %d", accountID, acc.Balance, w.Amount)
	}
	return acc, w, nil
}

// Account returns the account with given ID.
func (c *Controller) Account(db coledger.ReadOnlyKVStore, accountID uint64) (*Account, error) {
	return loadAccount(db, accountID)
}

// Balance returns the balance of an account. Only owners can see it.
func (c *Controller) Balance(db coledger.ReadOnlyKVStore, caller coledger.Address, accountID uint64) (uint64, error) {
	acc, err := c.ownedAccount(db, caller, accountID)
	if err != nil {
		return 0, err
	}
	return acc.Balance, nil
}

// RawBalance returns the balance of an account to anyone.
func (c *Controller) RawBalance(db coledger.ReadOnlyKVStore, accountID uint64) (uint64, error) {
	acc, err := loadAccount(db, accountID)
	if err != nil {
		return 0, err
	}
	return acc.Balance, nil
}

// Owners returns the owners of an account, the creator first.
func (c *Controller) Owners(db coledger.ReadOnlyKVStore, accountID uint64) ([]coledger.Address, error) {
	acc, err := loadAccount(db, accountID)
	if err != nil {
		return nil, err
	}
	return acc.Owners, nil
}

// UserAccounts returns the IDs of all accounts the caller owns, in creation
// order. The result is empty if the caller owns no account.
func (c *Controller) UserAccounts(db coledger.ReadOnlyKVStore, caller coledger.Address) ([]uint64, error) {
	ua, err := loadUserAccounts(db, caller)
	if err != nil {
		return nil, err
	}
	return ua.AccountIDs, nil
}

// WithdrawRequest returns a single withdraw request.
func (c *Controller) WithdrawRequest(db coledger.ReadOnlyKVStore, accountID, withdrawID uint64) (*WithdrawRequest, error) {
	return accountWithdraw(db, accountID, withdrawID)
}

// ApprovalCount returns the number of approvals a withdraw request has.
func (c *Controller) ApprovalCount(db coledger.ReadOnlyKVStore, accountID, withdrawID uint64) (uint64, error) {
	w, err := accountWithdraw(db, accountID, withdrawID)
	if err != nil {
		return 0, err
	}
	return uint64(len(w.Approvals)), nil
}

// HasApproved returns true if the caller approved given withdraw request.
func (c *Controller) HasApproved(db coledger.ReadOnlyKVStore, caller coledger.Address, accountID, withdrawID uint64) (bool, error) {
	w, err := accountWithdraw(db, accountID, withdrawID)
	if err != nil {
		return false, err
	}
	return w.HasApproved(caller), nil
}

func (c *Controller) ownedAccount(db coledger.ReadOnlyKVStore, caller coledger.Address, accountID uint64) (*Account, error) {
	acc, err := loadAccount(db, accountID)
	if err != nil {
		return nil, err
	}
	if !acc.IsOwner(caller) {
		return nil, errors.Wrapf(ErrNotOwner, "%s of account %d", caller, accountID)
	}
	return acc, nil
}

func loadAccount(db coledger.ReadOnlyKVStore, id uint64) (*Account, error) {
	var acc Account
	if err := accounts.One(db, accountKey(id), &acc); err != nil {
		return nil, errors.Wrapf(err, "account %d", id)
	}
	return &acc, nil
}

func loadWithdraw(db coledger.ReadOnlyKVStore, accountID, withdrawID uint64) (*WithdrawRequest, error) {
	var w WithdrawRequest
	switch err := withdraws.One(db, WithdrawKey(accountID, withdrawID), &w); {
	case err == nil:
		return &w, nil
	case errors.ErrNotFound.Is(err):
		return nil, errors.Wrapf(ErrUnknownRequest, "request %d/%d", accountID, withdrawID)
	default:
		return nil, err
	}
}

// accountWithdraw loads a withdraw request, failing with ErrNotFound when the
// account itself does not exist.
func accountWithdraw(db coledger.ReadOnlyKVStore, accountID, withdrawID uint64) (*WithdrawRequest, error) {
	if _, err := loadAccount(db, accountID); err != nil {
		return nil, err
	}
	return loadWithdraw(db, accountID, withdrawID)
}

func loadUserAccounts(db coledger.ReadOnlyKVStore, owner coledger.Address) (*UserAccounts, error) {
	var ua UserAccounts
	switch err := userAccounts.One(db, owner, &ua); {
	case err == nil:
		return &ua, nil
	case errors.ErrNotFound.Is(err):
		return &UserAccounts{}, nil
	default:
		return nil, err
	}
}

func cloneAddresses(addrs []coledger.Address) []coledger.Address {
	res := make([]coledger.Address, len(addrs))
	for i, a := range addrs {
		res[i] = a.Clone()
	}
	return res
}
