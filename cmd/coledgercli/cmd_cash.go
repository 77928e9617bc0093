package main

import (
	"flag"
	"fmt"
	"io"

	"github.com/iov-one/coledger/cmd/coledgerd/app"
	"github.com/iov-one/coledger/x/cash"
)

func cmdSendTokens(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Create a transaction for transferring funds from the source wallet to the
destination wallet.
`)
		fl.PrintDefaults()
	}
	var (
		srcFl    = flAddress(fl, "src", "", "A source wallet address that the funds are sent from.")
		dstFl    = flAddress(fl, "dst", "", "A destination wallet address that the funds are sent to.")
		amountFl = fl.Uint64("amount", 1, "An amount that is to be transferred.")
		memoFl   = fl.String("memo", "", "A short message attached to the transfer operation.")
	)
	fl.Parse(args)

	tx := &app.Tx{
		Msg: &cash.SendMsg{
			Source:      *srcFl,
			Destination: *dstFl,
			Amount:      *amountFl,
			Memo:        *memoFl,
		},
	}
	_, err := writeTx(output, tx)
	return err
}
