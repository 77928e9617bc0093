package main

import (
	"io"
	"os"

	"github.com/iov-one/coledger/cmd/coledgerd/app"
	"github.com/iov-one/coledger/errors"
)

// maxTxSize limits how much data is read when decoding a single
// transaction from the input.
const maxTxSize = 1 << 20

// writeTx serializes the transaction prefixed with its length, so that
// several transactions can be streamed through a pipe.
func writeTx(w io.Writer, tx *app.Tx) (int, error) {
	b, err := app.TxCodec.MarshalBinaryLengthPrefixed(tx)
	if err != nil {
		return 0, errors.Wrap(errors.ErrInput, err.Error())
	}
	return w.Write(b)
}

// readTx reads a single transaction written by writeTx.
func readTx(r io.Reader) (*app.Tx, int, error) {
	var tx app.Tx
	n, err := app.TxCodec.UnmarshalBinaryLengthPrefixedReader(r, &tx, maxTxSize)
	if err != nil {
		if err == io.EOF {
			return nil, int(n), errors.Wrap(errors.ErrEmpty, "no input data")
		}
		return nil, int(n), errors.Wrap(errors.ErrInput, err.Error())
	}
	return &tx, int(n), nil
}

// env returns the value of an environment variable if provided, otherwise
// the fallback value.
func env(name, fallback string) string {
	if v, ok := os.LookupEnv(name); ok {
		return v
	}
	return fallback
}
