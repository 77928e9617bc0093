package sigs

import "github.com/iov-one/coledger/errors"

// ErrInvalidSequence is returned when the signature sequence does not match
// the sequence stored for the signer.
var ErrInvalidSequence = errors.Register(1000, "invalid sequence number")
