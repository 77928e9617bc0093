package jointaccount

import (
	"strconv"

	"github.com/iov-one/coledger"
	"github.com/iov-one/coledger/errors"
	"github.com/iov-one/coledger/orm"
)

const (
	// MaxOwners is the greatest number of owners an account can have,
	// including its creator.
	MaxOwners = 3

	// MaxUserAccounts is the number of accounts a single principal can
	// be an owner of.
	MaxUserAccounts = 4

	// MinApprovals is the number of co-owner approvals a withdraw request
	// needs before it can be executed, regardless of the owner count.
	MinApprovals = 1
)

// Account is a balance owned jointly by its owners.
type Account struct {
	ID      uint64             `json:"id"`
	Owners  []coledger.Address `json:"owners"`
	Balance uint64             `json:"balance"`
}

var _ orm.Model = (*Account)(nil)

// Validate ensures the owner set is well formed.
func (a *Account) Validate() error {
	return validateOwners(a.Owners)
}

// IsOwner returns true if given address is one of the account owners.
func (a *Account) IsOwner(addr coledger.Address) bool {
	for _, o := range a.Owners {
		if o.Equals(addr) {
			return true
		}
	}
	return false
}

// Condition returns the condition of the wallet holding the funds
// deposited into the account with given ID. Nobody can sign for it.
func Condition(accountID uint64) coledger.Condition {
	return coledger.NewCondition("jointacc", "account", orm.EncodeSequence(accountID))
}

// validateOwners checks the owner set in the order the failures are
// reported to the caller.
func validateOwners(owners []coledger.Address) error {
	if len(owners) == 0 {
		return errors.Wrap(errors.ErrEmpty, "owners")
	}
	for i, o := range owners {
		if err := o.Validate(); err != nil {
			return errors.Wrapf(err, "owner #%d", i)
		}
	}
	if len(owners) > MaxOwners {
		return errors.Wrapf(ErrTooManyOwners, "%d owners, at most %d allowed", len(owners), MaxOwners)
	}
	for i := range owners {
		for j := i + 1; j < len(owners); j++ {
			if owners[i].Equals(owners[j]) {
				return errors.Wrapf(ErrDuplicateOwner, "owner %s", owners[i])
			}
		}
	}
	return nil
}

// UserAccounts lists the accounts a principal is an owner of, in the order
// they were created.
type UserAccounts struct {
	AccountIDs []uint64 `json:"account_ids"`
}

var _ orm.Model = (*UserAccounts)(nil)

func (u *UserAccounts) Validate() error {
	if len(u.AccountIDs) > MaxUserAccounts {
		return errors.Wrapf(ErrTooManyAccounts, "%d accounts", len(u.AccountIDs))
	}
	return nil
}

// WithdrawRequest is a request of an owner to move funds out of an
// account.
type WithdrawRequest struct {
	AccountID uint64             `json:"account_id"`
	ID        uint64             `json:"id"`
	Requester coledger.Address   `json:"requester"`
	Amount    uint64             `json:"amount"`
	Approvals []coledger.Address `json:"approvals"`
	Executed  bool               `json:"executed"`
}

var _ orm.Model = (*WithdrawRequest)(nil)

func (w *WithdrawRequest) Validate() error {
	if err := w.Requester.Validate(); err != nil {
		return errors.Wrap(err, "requester")
	}
	if w.Amount == 0 {
		return errors.Wrap(errors.ErrAmount, "amount must be positive")
	}
	for i, a := range w.Approvals {
		if err := a.Validate(); err != nil {
			return errors.Wrapf(err, "approval #%d", i)
		}
		if a.Equals(w.Requester) {
			return errors.Wrap(ErrSelfApproval, "approval by requester")
		}
	}
	return nil
}

// HasApproved returns true if given address approved this request.
func (w *WithdrawRequest) HasApproved(addr coledger.Address) bool {
	for _, a := range w.Approvals {
		if a.Equals(addr) {
			return true
		}
	}
	return false
}

const (
	accountBucket      = "jointacc"
	userAccountsBucket = "useracc"
	withdrawBucket     = "withdraw"
)

var (
	accounts     = orm.NewModelBucket(accountBucket, &Account{})
	userAccounts = orm.NewModelBucket(userAccountsBucket, &UserAccounts{})
	withdraws    = orm.NewModelBucket(withdrawBucket, &WithdrawRequest{})

	accountSeq = orm.NewSequence(accountBucket, "id")
)

func accountKey(id uint64) []byte {
	return orm.EncodeSequence(id)
}

// WithdrawKey returns the key a withdraw request is stored under. Request
// IDs are scoped to the account.
func WithdrawKey(accountID, withdrawID uint64) []byte {
	return append(orm.EncodeSequence(accountID), orm.EncodeSequence(withdrawID)...)
}

func withdrawSeq(accountID uint64) orm.Sequence {
	return orm.NewSequence(withdrawBucket, strconv.FormatUint(accountID, 10))
}
