package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/iov-one/coledger/client"
)

func cmdSignTransaction(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Sign given transaction. This is decoding a transaction data from standard
input, adds a signature and writes back to standard output signed transaction
content.

Chain ID and the signer sequence are fetched from the node unless provided.
`)
		fl.PrintDefaults()
	}
	var (
		tmAddrFl = fl.String("tm", env("COLEDGERCLI_TM_ADDR", "http://localhost:26657"),
			"Tendermint node address. You can use COLEDGERCLI_TM_ADDR environment variable to set it.")
		keyPathFl = fl.String("key", env("COLEDGERCLI_PRIV_KEY", os.ExpandEnv(defaultKeyPath)),
			"Path to the private key file that transaction should be signed with. You can use COLEDGERCLI_PRIV_KEY environment variable to set it.")
		chainFl = fl.String("chain", "", "Chain ID the transaction is signed for. Fetched from the node if not provided.")
		seqFl   = fl.Int64("seq", -1, "Sequence of the signer. Fetched from the node if negative.")
	)
	fl.Parse(args)

	if *keyPathFl == "" {
		return errors.New("private key is required")
	}
	key, err := loadPrivateKey(*keyPathFl)
	if err != nil {
		return err
	}

	tx, _, err := readTx(input)
	if err != nil {
		return fmt.Errorf("cannot read transaction: %s", err)
	}

	var c *client.Client
	if *chainFl == "" || *seqFl < 0 {
		c = client.NewClient(client.NewHTTPConnection(*tmAddrFl))
	}

	chainID := *chainFl
	if chainID == "" {
		status, err := c.Status(context.Background())
		if err != nil {
			return fmt.Errorf("cannot fetch chain ID: %s", err)
		}
		chainID = status.ChainID
	}

	var seq uint64
	if *seqFl < 0 {
		if seq, err = c.NextSequence(key.PublicKey().Address()); err != nil {
			return fmt.Errorf("cannot get the next sequence number: %s", err)
		}
	} else {
		seq = uint64(*seqFl)
	}

	if err := tx.Sign(key, chainID, seq); err != nil {
		return fmt.Errorf("cannot sign transaction: %s", err)
	}
	_, err = writeTx(output, tx)
	return err
}
