package sigs

import (
	"crypto/sha512"
	"encoding/binary"

	"github.com/iov-one/coledger"
	"github.com/iov-one/coledger/crypto"
	"github.com/iov-one/coledger/errors"
)

// SignCodeV1 is the current way to prefix the bytes we use to build a
// signature.
var SignCodeV1 = []byte{0, 0xCA, 0xFE, 0}

// VerifyTxSignatures checks all the signatures on the tx.
//
// returns list of signer conditions (possibly empty), or error if any
// signature is invalid
func VerifyTxSignatures(db coledger.KVStore, tx SignedTx, chainID string) ([]coledger.Condition, error) {
	bz, err := tx.GetSignBytes()
	if err != nil {
		return nil, err
	}
	sigs := tx.GetSignatures()

	signers := make([]coledger.Condition, 0, len(sigs))
	for _, sig := range sigs {
		signer, err := VerifySignature(db, sig, bz, chainID)
		if err != nil {
			return nil, err
		}
		signers = append(signers, signer)
	}
	return signers, nil
}

// VerifySignature checks one signature against signbytes, check chain and
// updates state in the store.
func VerifySignature(db coledger.KVStore, sig *StdSignature, signBytes []byte, chainID string) (coledger.Condition, error) {
	if err := sig.Validate(); err != nil {
		return nil, err
	}

	addr := sig.Pubkey.Address()
	user, err := GetUser(db, addr)
	if err != nil {
		return nil, err
	}
	if user.Pubkey == nil {
		user.Pubkey = sig.Pubkey
	}

	toSign, err := BuildSignBytes(signBytes, chainID, sig.Sequence)
	if err != nil {
		return nil, err
	}
	if !user.Pubkey.Verify(toSign, sig.Signature) {
		return nil, errors.Wrap(errors.ErrUnauthorized, "invalid signature")
	}

	if err := user.CheckAndIncrementSequence(sig.Sequence); err != nil {
		return nil, err
	}
	if err := NewBucket().Put(db, addr, user); err != nil {
		return nil, err
	}
	return user.Pubkey.Condition(), nil
}

/*
BuildSignBytes combines all info on the actual tx before signing.

We use the following format:

version | len(chainID) | chainID      | nonce              | signBytes
4bytes  | uint8        | ascii string | uint64 (bigendian) | serialized transaction

This is then prehashed with sha512 before fed into the public key
signing/verification step.
*/
func BuildSignBytes(signBytes []byte, chainID string, seq uint64) ([]byte, error) {
	if !coledger.IsValidChainID(chainID) {
		return nil, errors.Wrapf(errors.ErrInput, "chain id: %v", chainID)
	}

	nonce := make([]byte, 8)
	binary.BigEndian.PutUint64(nonce, seq)

	output := make([]byte, 0, 4+1+len(chainID)+8+len(signBytes))
	output = append(output, SignCodeV1...)
	output = append(output, uint8(len(chainID)))
	output = append(output, chainID...)
	output = append(output, nonce...)
	output = append(output, signBytes...)

	// constant length output to feed into eddsa, so that hardware
	// wallets can support it as well
	hashed := sha512.Sum512(output)
	return hashed[:], nil
}

// BuildSignBytesTx calculates the sign bytes given a tx.
func BuildSignBytesTx(tx SignedTx, chainID string, seq uint64) ([]byte, error) {
	signBytes, err := tx.GetSignBytes()
	if err != nil {
		return nil, err
	}
	return BuildSignBytes(signBytes, chainID, seq)
}

// SignTx creates a signature for the given tx.
func SignTx(signer *crypto.PrivateKey, tx SignedTx, chainID string, seq uint64) (*StdSignature, error) {
	signBytes, err := BuildSignBytesTx(tx, chainID, seq)
	if err != nil {
		return nil, err
	}
	sig, err := signer.Sign(signBytes)
	if err != nil {
		return nil, err
	}
	pub := signer.PublicKey()
	return &StdSignature{
		Pubkey:    &pub,
		Sequence:  seq,
		Signature: sig,
	}, nil
}
