package main

import (
	"flag"
	"fmt"
	"io"

	"github.com/iov-one/coledger/cmd/coledgerd/app"
	"github.com/iov-one/coledger/x/jointaccount"
)

func cmdCreateAccount(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Create a transaction for opening a new joint account. The signer of the
transaction becomes an owner, together with all addresses given. Submitting
this transaction prints out the ID of the new account.
`)
		fl.PrintDefaults()
	}
	var (
		ownersFl = flAddressList(fl, "owners", "", "Comma separated addresses of the other account owners.")
	)
	fl.Parse(args)

	tx := &app.Tx{
		Msg: &jointaccount.CreateAccountMsg{
			OtherOwners: *ownersFl,
		},
	}
	_, err := writeTx(output, tx)
	return err
}

func cmdDeposit(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Create a transaction for moving funds from the signer wallet into a joint
account.
`)
		fl.PrintDefaults()
	}
	var (
		accountFl = fl.Uint64("account", 0, "ID of the account to deposit into.")
		amountFl  = fl.Uint64("amount", 0, "Amount to deposit.")
	)
	fl.Parse(args)

	tx := &app.Tx{
		Msg: &jointaccount.DepositMsg{
			AccountID: *accountFl,
			Amount:    *amountFl,
		},
	}
	_, err := writeTx(output, tx)
	return err
}

func cmdRequestWithdraw(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Create a transaction requesting to withdraw funds from a joint account. The
request must be approved by another owner before it can be executed.
Submitting this transaction prints out the ID of the new request.
`)
		fl.PrintDefaults()
	}
	var (
		accountFl = fl.Uint64("account", 0, "ID of the account to withdraw from.")
		amountFl  = fl.Uint64("amount", 0, "Amount to withdraw.")
	)
	fl.Parse(args)

	tx := &app.Tx{
		Msg: &jointaccount.RequestWithdrawMsg{
			AccountID: *accountFl,
			Amount:    *amountFl,
		},
	}
	_, err := writeTx(output, tx)
	return err
}

func cmdApproveWithdraw(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Create a transaction approving a withdraw request of another owner.
`)
		fl.PrintDefaults()
	}
	var (
		accountFl  = fl.Uint64("account", 0, "ID of the account the request belongs to.")
		withdrawFl = fl.Uint64("withdraw", 0, "ID of the withdraw request.")
	)
	fl.Parse(args)

	tx := &app.Tx{
		Msg: &jointaccount.ApproveWithdrawMsg{
			AccountID:  *accountFl,
			WithdrawID: *withdrawFl,
		},
	}
	_, err := writeTx(output, tx)
	return err
}

func cmdWithdraw(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Create a transaction executing an approved withdraw request. Only the
requester can execute it. Funds are moved to the requester wallet.
`)
		fl.PrintDefaults()
	}
	var (
		accountFl  = fl.Uint64("account", 0, "ID of the account the request belongs to.")
		withdrawFl = fl.Uint64("withdraw", 0, "ID of the withdraw request.")
	)
	fl.Parse(args)

	tx := &app.Tx{
		Msg: &jointaccount.WithdrawMsg{
			AccountID:  *accountFl,
			WithdrawID: *withdrawFl,
		},
	}
	_, err := writeTx(output, tx)
	return err
}
