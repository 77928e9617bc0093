package main

import (
	"context"
	"flag"
	"fmt"
	"io"

	"github.com/iov-one/coledger/client"
	"github.com/iov-one/coledger/orm"
	"github.com/iov-one/coledger/x/jointaccount"
)

func cmdSubmitTransaction(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Read a serialized transaction from standard input, submit it and wait until
it is included in a block.

For transactions creating an entity the ID of that entity is printed out.

Make sure to sign the transaction before submitting it.
`)
		fl.PrintDefaults()
	}
	var (
		tmAddrFl = fl.String("tm", env("COLEDGERCLI_TM_ADDR", "http://localhost:26657"),
			"Tendermint node address. You can use COLEDGERCLI_TM_ADDR environment variable to set it.")
	)
	fl.Parse(args)

	tx, _, err := readTx(input)
	if err != nil {
		return fmt.Errorf("cannot read transaction from input: %s", err)
	}
	raw, err := tx.Marshal()
	if err != nil {
		return fmt.Errorf("cannot serialize transaction: %s", err)
	}

	c := client.NewClient(client.NewHTTPConnection(*tmAddrFl))
	res, err := c.CommitTx(context.Background(), raw)
	if err != nil {
		return fmt.Errorf("cannot broadcast transaction: %s", err)
	}
	if res.Err != nil {
		return fmt.Errorf("transaction %s failed in block %d: %s", res.ID, res.Height, res.Err)
	}

	msg, err := tx.GetMsg()
	if err != nil {
		return err
	}
	format, ok := formatters[msg.Path()]
	if !ok {
		// If no formatter is registered, we do not print the result.
		return nil
	}
	pretty, err := format(res.Data)
	if err != nil {
		return fmt.Errorf("cannot format result data %x: %s", res.Data, err)
	}
	_, err = fmt.Fprintln(output, pretty)
	return err
}

// formatters contains a mapping of a message path to response parser.
// Response parse function accepts a raw bytes of serialized response and
// must return a human representation of that data.
var formatters = map[string]func([]byte) (string, error){
	jointaccount.CreateAccountMsg{}.Path():   fmtSequence,
	jointaccount.RequestWithdrawMsg{}.Path(): fmtSequence,
}

func fmtSequence(raw []byte) (string, error) {
	n, err := orm.DecodeSequence(raw)
	if err != nil {
		return "", fmt.Errorf("cannot parse sequence: %s", err)
	}
	return fmt.Sprint(n), nil
}
