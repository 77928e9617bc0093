package jointaccount

import (
	"github.com/iov-one/coledger"
	"github.com/iov-one/coledger/errors"
	"github.com/iov-one/coledger/orm"
	"github.com/iov-one/coledger/x"
)

const (
	createAccountCost   = 300
	depositCost         = 100
	requestWithdrawCost = 200
	approveWithdrawCost = 100
	withdrawCost        = 200
)

// RegisterRoutes will instantiate and register all handlers in this package.
func RegisterRoutes(r coledger.Registry, auth x.Authenticator, ctrl *Controller) {
	r.Handle(&CreateAccountMsg{}, &createAccountHandler{auth: auth, ctrl: ctrl})
	r.Handle(&DepositMsg{}, &depositHandler{auth: auth, ctrl: ctrl})
	r.Handle(&RequestWithdrawMsg{}, &requestWithdrawHandler{auth: auth, ctrl: ctrl})
	r.Handle(&ApproveWithdrawMsg{}, &approveWithdrawHandler{auth: auth, ctrl: ctrl})
	r.Handle(&WithdrawMsg{}, &withdrawHandler{auth: auth, ctrl: ctrl})
}

type createAccountHandler struct {
	auth x.Authenticator
	ctrl *Controller
}

var _ coledger.Handler = (*createAccountHandler)(nil)

func (h *createAccountHandler) Check(ctx coledger.Context, db coledger.KVStore, tx coledger.Tx) (*coledger.CheckResult, error) {
	var msg CreateAccountMsg
	caller, err := loadSigned(ctx, h.auth, tx, &msg)
	if err != nil {
		return nil, err
	}
	if err := h.ctrl.ValidateCreateAccount(db, caller, msg.OtherOwners); err != nil {
		return nil, err
	}
	return &coledger.CheckResult{GasAllocated: createAccountCost}, nil
}

func (h *createAccountHandler) Deliver(ctx coledger.Context, db coledger.KVStore, tx coledger.Tx) (*coledger.DeliverResult, error) {
	var msg CreateAccountMsg
	caller, err := loadSigned(ctx, h.auth, tx, &msg)
	if err != nil {
		return nil, err
	}
	now, err := coledger.BlockTime(ctx)
	if err != nil {
		return nil, err
	}
	id, err := h.ctrl.CreateAccount(db, caller, msg.OtherOwners)
	if err != nil {
		return nil, err
	}
	owners, err := h.ctrl.Owners(db, id)
	if err != nil {
		return nil, err
	}
	return &coledger.DeliverResult{
		Data: orm.EncodeSequence(id),
		Events: []coledger.Event{
			AccountCreatedEvent{Owners: owners, AccountID: id, Timestamp: now},
		},
	}, nil
}

type depositHandler struct {
	auth x.Authenticator
	ctrl *Controller
}

var _ coledger.Handler = (*depositHandler)(nil)

func (h *depositHandler) Check(ctx coledger.Context, db coledger.KVStore, tx coledger.Tx) (*coledger.CheckResult, error) {
	var msg DepositMsg
	caller, err := loadSigned(ctx, h.auth, tx, &msg)
	if err != nil {
		return nil, err
	}
	if err := h.ctrl.ValidateDeposit(db, caller, msg.AccountID, msg.Amount); err != nil {
		return nil, err
	}
	return &coledger.CheckResult{GasAllocated: depositCost}, nil
}

func (h *depositHandler) Deliver(ctx coledger.Context, db coledger.KVStore, tx coledger.Tx) (*coledger.DeliverResult, error) {
	var msg DepositMsg
	caller, err := loadSigned(ctx, h.auth, tx, &msg)
	if err != nil {
		return nil, err
	}
	if err := h.ctrl.Deposit(db, caller, msg.AccountID, msg.Amount); err != nil {
		return nil, err
	}
	return &coledger.DeliverResult{}, nil
}

type requestWithdrawHandler struct {
	auth x.Authenticator
	ctrl *Controller
}

var _ coledger.Handler = (*requestWithdrawHandler)(nil)

func (h *requestWithdrawHandler) Check(ctx coledger.Context, db coledger.KVStore, tx coledger.Tx) (*coledger.CheckResult, error) {
	var msg RequestWithdrawMsg
	caller, err := loadSigned(ctx, h.auth, tx, &msg)
	if err != nil {
		return nil, err
	}
	if err := h.ctrl.ValidateRequestWithdraw(db, caller, msg.AccountID, msg.Amount); err != nil {
		return nil, err
	}
	return &coledger.CheckResult{GasAllocated: requestWithdrawCost}, nil
}

func (h *requestWithdrawHandler) Deliver(ctx coledger.Context, db coledger.KVStore, tx coledger.Tx) (*coledger.DeliverResult, error) {
	var msg RequestWithdrawMsg
	caller, err := loadSigned(ctx, h.auth, tx, &msg)
	if err != nil {
		return nil, err
	}
	now, err := coledger.BlockTime(ctx)
	if err != nil {
		return nil, err
	}
	id, err := h.ctrl.RequestWithdraw(db, caller, msg.AccountID, msg.Amount)
	if err != nil {
		return nil, err
	}
	return &coledger.DeliverResult{
		Data: orm.EncodeSequence(id),
		Events: []coledger.Event{
			WithdrawRequestedEvent{
				Requester:  caller,
				AccountID:  msg.AccountID,
				WithdrawID: id,
				Amount:     msg.Amount,
				Timestamp:  now,
			},
		},
	}, nil
}

type approveWithdrawHandler struct {
	auth x.Authenticator
	ctrl *Controller
}

var _ coledger.Handler = (*approveWithdrawHandler)(nil)

func (h *approveWithdrawHandler) Check(ctx coledger.Context, db coledger.KVStore, tx coledger.Tx) (*coledger.CheckResult, error) {
	var msg ApproveWithdrawMsg
	caller, err := loadSigned(ctx, h.auth, tx, &msg)
	if err != nil {
		return nil, err
	}
	if err := h.ctrl.ValidateApproveWithdraw(db, caller, msg.AccountID, msg.WithdrawID); err != nil {
		return nil, err
	}
	return &coledger.CheckResult{GasAllocated: approveWithdrawCost}, nil
}

// Deliver records the approval. No event is emitted, approvals are
// observable through queries.
func (h *approveWithdrawHandler) Deliver(ctx coledger.Context, db coledger.KVStore, tx coledger.Tx) (*coledger.DeliverResult, error) {
	var msg ApproveWithdrawMsg
	caller, err := loadSigned(ctx, h.auth, tx, &msg)
	if err != nil {
		return nil, err
	}
	if err := h.ctrl.ApproveWithdraw(db, caller, msg.AccountID, msg.WithdrawID); err != nil {
		return nil, err
	}
	return &coledger.DeliverResult{}, nil
}

type withdrawHandler struct {
	auth x.Authenticator
	ctrl *Controller
}

var _ coledger.Handler = (*withdrawHandler)(nil)

func (h *withdrawHandler) Check(ctx coledger.Context, db coledger.KVStore, tx coledger.Tx) (*coledger.CheckResult, error) {
	var msg WithdrawMsg
	caller, err := loadSigned(ctx, h.auth, tx, &msg)
	if err != nil {
		return nil, err
	}
	if err := h.ctrl.ValidateWithdrawAmount(db, caller, msg.WithdrawID, msg.AccountID); err != nil {
		return nil, err
	}
	return &coledger.CheckResult{GasAllocated: withdrawCost}, nil
}

func (h *withdrawHandler) Deliver(ctx coledger.Context, db coledger.KVStore, tx coledger.Tx) (*coledger.DeliverResult, error) {
	var msg WithdrawMsg
	caller, err := loadSigned(ctx, h.auth, tx, &msg)
	if err != nil {
		return nil, err
	}
	now, err := coledger.BlockTime(ctx)
	if err != nil {
		return nil, err
	}
	if err := h.ctrl.WithdrawAmount(db, caller, msg.WithdrawID, msg.AccountID); err != nil {
		return nil, err
	}
	return &coledger.DeliverResult{
		Events: []coledger.Event{
			WithdrawExecutedEvent{WithdrawID: msg.WithdrawID, AccountID: msg.AccountID, Timestamp: now},
		},
	}, nil
}

// loadSigned loads the transaction message into msg and returns the
// address of the main signer.
func loadSigned(ctx coledger.Context, auth x.Authenticator, tx coledger.Tx, msg coledger.Msg) (coledger.Address, error) {
	if err := coledger.LoadMsg(tx, msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	return x.AnySigner(ctx, auth)
}
