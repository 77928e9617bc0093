package app

import (
	"github.com/iov-one/coledger"
	"github.com/iov-one/coledger/crypto"
	"github.com/iov-one/coledger/errors"
	"github.com/iov-one/coledger/x/cash"
	"github.com/iov-one/coledger/x/jointaccount"
	"github.com/iov-one/coledger/x/sigs"
	amino "github.com/tendermint/go-amino"
)

// Tx is the transaction format accepted by the application. It carries a
// single message and the signatures of everyone authorizing it.
type Tx struct {
	Msg        coledger.Msg         `json:"msg"`
	Signatures []*sigs.StdSignature `json:"signatures"`
}

var _ coledger.Tx = (*Tx)(nil)
var _ sigs.SignedTx = (*Tx)(nil)

// MakeCodec returns the codec able to serialize transactions and every
// message supported by the application.
func MakeCodec() *amino.Codec {
	cdc := amino.NewCodec()
	cdc.RegisterInterface((*coledger.Msg)(nil), nil)
	cash.RegisterCodec(cdc)
	jointaccount.RegisterCodec(cdc)
	cdc.Seal()
	return cdc
}

// TxCodec is the codec used to encode and decode transactions.
var TxCodec = MakeCodec()

// TxDecoder creates a Tx and unmarshals bytes into it.
func TxDecoder(bz []byte) (coledger.Tx, error) {
	var tx Tx
	if err := TxCodec.UnmarshalBinaryBare(bz, &tx); err != nil {
		return nil, errors.Wrap(errors.ErrInput, err.Error())
	}
	return &tx, nil
}

// Marshal serializes the transaction so it can be broadcasted.
func (tx *Tx) Marshal() ([]byte, error) {
	bz, err := TxCodec.MarshalBinaryBare(tx)
	if err != nil {
		return nil, errors.Wrap(errors.ErrInput, err.Error())
	}
	return bz, nil
}

// GetMsg returns the message carried by this transaction.
func (tx *Tx) GetMsg() (coledger.Msg, error) {
	if tx.Msg == nil {
		return nil, errors.Wrap(errors.ErrMsg, "missing message")
	}
	return tx.Msg, nil
}

// GetSignatures returns all signatures of this transaction.
func (tx *Tx) GetSignatures() []*sigs.StdSignature {
	return tx.Signatures
}

// GetSignBytes returns the bytes to sign. Signatures are not part of the
// signed content.
func (tx *Tx) GetSignBytes() ([]byte, error) {
	unsigned := Tx{Msg: tx.Msg}
	return unsigned.Marshal()
}

// Sign appends a signature of given key to the transaction. The sequence
// must be the next sequence of the signer.
func (tx *Tx) Sign(key *crypto.PrivateKey, chainID string, seq uint64) error {
	sig, err := sigs.SignTx(key, tx, chainID, seq)
	if err != nil {
		return err
	}
	tx.Signatures = append(tx.Signatures, sig)
	return nil
}
