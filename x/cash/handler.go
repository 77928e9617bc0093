package cash

import (
	"github.com/iov-one/coledger"
	"github.com/iov-one/coledger/errors"
	"github.com/iov-one/coledger/x"
)

const sendTxCost = 100

// RegisterRoutes will instantiate and register all handlers in this package.
func RegisterRoutes(r coledger.Registry, auth x.Authenticator, control Controller) {
	r.Handle(&SendMsg{}, NewSendHandler(auth, control))
}

// RegisterQuery will register wallet queries.
func RegisterQuery(qr coledger.QueryRouter) {
	qr.Register("/wallets", NewWalletQuery(NewController()))
}

// SendHandler will handle sending coins.
type SendHandler struct {
	auth    x.Authenticator
	control Controller
}

var _ coledger.Handler = SendHandler{}

// NewSendHandler creates a handler for SendMsg.
func NewSendHandler(auth x.Authenticator, control Controller) SendHandler {
	return SendHandler{
		auth:    auth,
		control: control,
	}
}

// Check just verifies it is properly formed and returns the cost of
// executing it.
func (h SendHandler) Check(ctx coledger.Context, db coledger.KVStore, tx coledger.Tx) (*coledger.CheckResult, error) {
	msg, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	balance, err := h.control.Balance(db, msg.Source)
	if err != nil {
		return nil, err
	}
	if balance < msg.Amount {
		return nil, errors.Wrapf(errors.ErrInsufficientAmount, "wallet %s holds %d", msg.Source, balance)
	}
	return &coledger.CheckResult{GasAllocated: sendTxCost}, nil
}

// Deliver moves the tokens from source to destination account.
func (h SendHandler) Deliver(ctx coledger.Context, db coledger.KVStore, tx coledger.Tx) (*coledger.DeliverResult, error) {
	msg, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	if err := h.control.MoveCoins(db, msg.Source, msg.Destination, msg.Amount); err != nil {
		return nil, err
	}
	return &coledger.DeliverResult{}, nil
}

func (h SendHandler) validate(ctx coledger.Context, db coledger.KVStore, tx coledger.Tx) (*SendMsg, error) {
	var msg SendMsg
	if err := coledger.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	if !h.auth.HasAddress(ctx, msg.Source) {
		return nil, errors.Wrap(errors.ErrUnauthorized, "source must sign the transaction")
	}
	return &msg, nil
}
