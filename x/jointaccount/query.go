package jointaccount

import (
	"github.com/iov-one/coledger"
	"github.com/iov-one/coledger/errors"
	"github.com/iov-one/coledger/orm"
)

// RegisterQuery registers the read operations of the controller. Account
// IDs and withdraw IDs are passed as 8 byte big endian values, addresses as
// raw bytes.
//
//   /accounts            id                               -> Account
//   /accounts/balance    id                               -> uint64
//   /accounts/owners     id                               -> []Address
//   /useraccounts        address                          -> []uint64
//   /withdraws           account id|withdraw id           -> WithdrawRequest
//   /withdraws/approvals account id|withdraw id           -> uint64
//   /withdraws/approved  account id|withdraw id|address   -> bool
//
// ABCI queries carry no authenticated caller, so the owner restricted
// Controller.Balance is not served here. Only the unrestricted
// /accounts/balance path is.
func RegisterQuery(qr coledger.QueryRouter, ctrl *Controller) {
	qr.Register("/accounts", queryFunc(func(db coledger.ReadOnlyKVStore, data []byte) (interface{}, error) {
		id, err := parseAccountID(data)
		if err != nil {
			return nil, err
		}
		return ctrl.Account(db, id)
	}))
	qr.Register("/accounts/balance", queryFunc(func(db coledger.ReadOnlyKVStore, data []byte) (interface{}, error) {
		id, err := parseAccountID(data)
		if err != nil {
			return nil, err
		}
		return ctrl.RawBalance(db, id)
	}))
	qr.Register("/accounts/owners", queryFunc(func(db coledger.ReadOnlyKVStore, data []byte) (interface{}, error) {
		id, err := parseAccountID(data)
		if err != nil {
			return nil, err
		}
		return ctrl.Owners(db, id)
	}))
	qr.Register("/useraccounts", queryFunc(func(db coledger.ReadOnlyKVStore, data []byte) (interface{}, error) {
		addr := coledger.Address(data)
		if err := addr.Validate(); err != nil {
			return nil, err
		}
		ids, err := ctrl.UserAccounts(db, addr)
		if err != nil {
			return nil, err
		}
		if ids == nil {
			ids = []uint64{}
		}
		return ids, nil
	}))
	qr.Register("/withdraws", queryFunc(func(db coledger.ReadOnlyKVStore, data []byte) (interface{}, error) {
		acc, wid, _, err := parseWithdrawKey(data, false)
		if err != nil {
			return nil, err
		}
		return ctrl.WithdrawRequest(db, acc, wid)
	}))
	qr.Register("/withdraws/approvals", queryFunc(func(db coledger.ReadOnlyKVStore, data []byte) (interface{}, error) {
		acc, wid, _, err := parseWithdrawKey(data, false)
		if err != nil {
			return nil, err
		}
		return ctrl.ApprovalCount(db, acc, wid)
	}))
	qr.Register("/withdraws/approved", queryFunc(func(db coledger.ReadOnlyKVStore, data []byte) (interface{}, error) {
		acc, wid, addr, err := parseWithdrawKey(data, true)
		if err != nil {
			return nil, err
		}
		return ctrl.HasApproved(db, addr, acc, wid)
	}))
}

type queryFunc = coledger.QueryHandlerFunc

func parseAccountID(data []byte) (uint64, error) {
	if len(data) != 8 {
		return 0, errors.Wrapf(errors.ErrInput, "account id must be 8 bytes, got %d", len(data))
	}
	return orm.DecodeSequence(data)
}

func parseWithdrawKey(data []byte, withAddress bool) (uint64, uint64, coledger.Address, error) {
	want := 16
	if withAddress {
		want += coledger.AddressLength
	}
	if len(data) != want {
		return 0, 0, nil, errors.Wrapf(errors.ErrInput, "query data must be %d bytes, got %d", want, len(data))
	}
	acc, err := orm.DecodeSequence(data[:8])
	if err != nil {
		return 0, 0, nil, err
	}
	wid, err := orm.DecodeSequence(data[8:16])
	if err != nil {
		return 0, 0, nil, err
	}
	var addr coledger.Address
	if withAddress {
		addr = coledger.Address(data[16:])
	}
	return acc, wid, addr, nil
}
