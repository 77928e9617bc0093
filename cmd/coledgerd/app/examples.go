package app

import (
	"github.com/iov-one/coledger"
	"github.com/iov-one/coledger/commands"
	"github.com/iov-one/coledger/crypto"
	"github.com/iov-one/coledger/x/cash"
	"github.com/iov-one/coledger/x/jointaccount"
)

// Examples generates some example structs to dump out with testgen.
func Examples() []commands.Example {
	key, err := crypto.PrivateKeyFromSeed(make([]byte, 32))
	if err != nil {
		panic(err)
	}
	owner := key.PublicKey().Address()
	coOwner := coledger.NewAddress([]byte("co-owner"))

	create := &jointaccount.CreateAccountMsg{OtherOwners: []coledger.Address{coOwner}}
	deposit := &jointaccount.DepositMsg{AccountID: 0, Amount: 250}
	request := &jointaccount.RequestWithdrawMsg{AccountID: 0, Amount: 100}
	approve := &jointaccount.ApproveWithdrawMsg{AccountID: 0, WithdrawID: 0}
	withdraw := &jointaccount.WithdrawMsg{AccountID: 0, WithdrawID: 0}
	send := &cash.SendMsg{Source: owner, Destination: coOwner, Amount: 10, Memo: "example"}

	tx := &Tx{Msg: create}
	if err := tx.Sign(key, "test-chain-123", 0); err != nil {
		panic(err)
	}

	return []commands.Example{
		{Filename: "create_account_msg", Obj: create},
		{Filename: "deposit_msg", Obj: deposit},
		{Filename: "request_withdraw_msg", Obj: request},
		{Filename: "approve_withdraw_msg", Obj: approve},
		{Filename: "withdraw_msg", Obj: withdraw},
		{Filename: "send_msg", Obj: send},
		{Filename: "account", Obj: &jointaccount.Account{ID: 0, Owners: []coledger.Address{owner, coOwner}, Balance: 250}},
		{Filename: "signed_tx", Obj: tx},
	}
}
