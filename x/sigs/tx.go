package sigs

import (
	"github.com/iov-one/coledger/crypto"
	"github.com/iov-one/coledger/errors"
)

// SignedTx represents a transaction that contains signatures, which can be
// verified by the sigs.Decorator.
type SignedTx interface {
	// GetSignBytes returns the canonical byte representation of the Msg.
	GetSignBytes() ([]byte, error)

	// GetSignatures returns the signature of signers who signed the Msg.
	GetSignatures() []*StdSignature
}

// StdSignature is a signature over a transaction together with the data
// needed to verify it.
type StdSignature struct {
	Pubkey    *crypto.PublicKey `json:"pubkey"`
	Sequence  uint64            `json:"sequence"`
	Signature []byte            `json:"signature"`
}

// Validate ensures the StdSignature meets basic standards.
func (s *StdSignature) Validate() error {
	if s.Pubkey == nil {
		return errors.Wrap(errors.ErrUnauthorized, "missing public key")
	}
	if err := s.Pubkey.Validate(); err != nil {
		return errors.Wrap(errors.ErrUnauthorized, err.Error())
	}
	if len(s.Signature) == 0 {
		return errors.Wrap(errors.ErrUnauthorized, "missing signature")
	}
	return nil
}
