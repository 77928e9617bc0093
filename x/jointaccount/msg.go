package jointaccount

import (
	amino "github.com/tendermint/go-amino"

	"github.com/iov-one/coledger"
	"github.com/iov-one/coledger/errors"
)

const (
	pathCreateAccountMsg   = "jointaccount/create"
	pathDepositMsg         = "jointaccount/deposit"
	pathRequestWithdrawMsg = "jointaccount/request_withdraw"
	pathApproveWithdrawMsg = "jointaccount/approve_withdraw"
	pathWithdrawMsg        = "jointaccount/withdraw"
)

// RegisterCodec registers the messages of this extension with the
// transaction codec.
func RegisterCodec(cdc *amino.Codec) {
	cdc.RegisterConcrete(&CreateAccountMsg{}, pathCreateAccountMsg, nil)
	cdc.RegisterConcrete(&DepositMsg{}, pathDepositMsg, nil)
	cdc.RegisterConcrete(&RequestWithdrawMsg{}, pathRequestWithdrawMsg, nil)
	cdc.RegisterConcrete(&ApproveWithdrawMsg{}, pathApproveWithdrawMsg, nil)
	cdc.RegisterConcrete(&WithdrawMsg{}, pathWithdrawMsg, nil)
}

// CreateAccountMsg creates an account owned by the signer and the other
// owners.
type CreateAccountMsg struct {
	OtherOwners []coledger.Address `json:"other_owners"`
}

var _ coledger.Msg = (*CreateAccountMsg)(nil)

func (CreateAccountMsg) Path() string {
	return pathCreateAccountMsg
}

// Validate checks the owners that can be checked without knowing the
// signer.
func (m CreateAccountMsg) Validate() error {
	for i, o := range m.OtherOwners {
		if err := o.Validate(); err != nil {
			return errors.Wrapf(err, "owner #%d", i)
		}
	}
	if len(m.OtherOwners) > MaxOwners-1 {
		return errors.Wrapf(ErrTooManyOwners, "%d other owners", len(m.OtherOwners))
	}
	return nil
}

// DepositMsg moves funds from the signer's wallet into an account.
type DepositMsg struct {
	AccountID uint64 `json:"account_id"`
	Amount    uint64 `json:"amount"`
}

var _ coledger.Msg = (*DepositMsg)(nil)

func (DepositMsg) Path() string {
	return pathDepositMsg
}

func (m DepositMsg) Validate() error {
	if m.Amount == 0 {
		return errors.Wrap(errors.ErrAmount, "amount must be positive")
	}
	return nil
}

// RequestWithdrawMsg asks the co-owners to approve moving funds out of an
// account.
type RequestWithdrawMsg struct {
	AccountID uint64 `json:"account_id"`
	Amount    uint64 `json:"amount"`
}

var _ coledger.Msg = (*RequestWithdrawMsg)(nil)

func (RequestWithdrawMsg) Path() string {
	return pathRequestWithdrawMsg
}

func (m RequestWithdrawMsg) Validate() error {
	if m.Amount == 0 {
		return errors.Wrap(errors.ErrAmount, "amount must be positive")
	}
	return nil
}

// ApproveWithdrawMsg approves a withdraw request of another owner.
type ApproveWithdrawMsg struct {
	AccountID  uint64 `json:"account_id"`
	WithdrawID uint64 `json:"withdraw_id"`
}

var _ coledger.Msg = (*ApproveWithdrawMsg)(nil)

func (ApproveWithdrawMsg) Path() string {
	return pathApproveWithdrawMsg
}

func (ApproveWithdrawMsg) Validate() error {
	return nil
}

// WithdrawMsg executes an approved withdraw request.
type WithdrawMsg struct {
	WithdrawID uint64 `json:"withdraw_id"`
	AccountID  uint64 `json:"account_id"`
}

var _ coledger.Msg = (*WithdrawMsg)(nil)

func (WithdrawMsg) Path() string {
	return pathWithdrawMsg
}

func (WithdrawMsg) Validate() error {
	return nil
}
