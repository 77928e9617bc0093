package sigs

import (
	"github.com/iov-one/coledger"
	"github.com/iov-one/coledger/crypto"
	"github.com/iov-one/coledger/errors"
	"github.com/iov-one/coledger/orm"
)

// BucketName is where we store the accounts.
const BucketName = "sigs"

// maxSequenceValue is limited by javascript clients, the greatest safe
// integer value there is 2^53 - 1.
const maxSequenceValue = (1 << 53) - 1

// UserData stores the public key of a signer together with the sequence
// expected on the next signature.
type UserData struct {
	Pubkey   *crypto.PublicKey
	Sequence uint64
}

var _ orm.Model = (*UserData)(nil)

func (u *UserData) Validate() error {
	if u.Sequence > maxSequenceValue {
		return errors.Wrap(ErrInvalidSequence, "out of range")
	}
	if u.Sequence > 0 && u.Pubkey == nil {
		return errors.Wrap(ErrInvalidSequence, "needs Pubkey")
	}
	return nil
}

// CheckAndIncrementSequence implements check and increment operation. If
// current sequence value is the same as given expected value then it is
// incremented. Otherwise an error is returned.
func (u *UserData) CheckAndIncrementSequence(expected uint64) error {
	if u.Sequence != expected {
		return errors.Wrapf(ErrInvalidSequence, "mismatch expected %d, got %d", u.Sequence, expected)
	}
	if u.Sequence+1 > maxSequenceValue {
		return errors.Wrap(errors.ErrOverflow, "sequence out of range")
	}
	u.Sequence++
	return nil
}

// NewBucket creates the proper bucket for this extension. Users are keyed
// by the address of their public key.
func NewBucket() orm.ModelBucket {
	return orm.NewModelBucket(BucketName, &UserData{})
}

// GetUser loads the user data of given address. A user that never signed
// anything starts with sequence zero and no public key.
func GetUser(db coledger.ReadOnlyKVStore, addr coledger.Address) (*UserData, error) {
	var u UserData
	switch err := NewBucket().One(db, addr, &u); {
	case err == nil:
		return &u, nil
	case errors.ErrNotFound.Is(err):
		return &UserData{}, nil
	default:
		return nil, err
	}
}

// NextSequence returns the sequence number a transaction signed by given
// address must use.
func NextSequence(db coledger.ReadOnlyKVStore, addr coledger.Address) (uint64, error) {
	u, err := GetUser(db, addr)
	if err != nil {
		return 0, err
	}
	return u.Sequence, nil
}
