package main

import (
	"bytes"
	"io/ioutil"
	"testing"

	"github.com/iov-one/coledger/cmd/coledgerd/app"
	"github.com/iov-one/coledger/coledgertest/assert"
	"github.com/iov-one/coledger/crypto"
	"github.com/iov-one/coledger/x/jointaccount"
	"github.com/iov-one/coledger/x/sigs"
)

func TestSignTransactionOffline(t *testing.T) {
	keyPath, cleanup := tempKeyPath(t)
	defer cleanup()
	key := crypto.GenPrivateKey()
	assert.Nil(t, ioutil.WriteFile(keyPath, []byte(key.Encode()+"\n"), 0600))

	var input bytes.Buffer
	_, err := writeTx(&input, &app.Tx{Msg: &jointaccount.DepositMsg{AccountID: 1, Amount: 10}})
	assert.Nil(t, err)

	var output bytes.Buffer
	args := []string{"-key", keyPath, "-chain", "test-chain-42", "-seq", "7"}
	if err := cmdSignTransaction(&input, &output, args); err != nil {
		t.Fatalf("cannot sign transaction: %s", err)
	}

	tx, _, err := readTx(&output)
	assert.Nil(t, err)
	if len(tx.Signatures) != 1 {
		t.Fatalf("want one signature, got %d", len(tx.Signatures))
	}
	sig := tx.Signatures[0]
	assert.Equal(t, uint64(7), sig.Sequence)
	assert.Equal(t, key.PublicKey().Address(), sig.Pubkey.Address())

	signBytes, err := sigs.BuildSignBytesTx(tx, "test-chain-42", 7)
	assert.Nil(t, err)
	if !sig.Pubkey.Verify(signBytes, sig.Signature) {
		t.Fatal("invalid signature")
	}
}
