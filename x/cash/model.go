package cash

import (
	"github.com/iov-one/coledger"
	"github.com/iov-one/coledger/orm"
)

// BucketName is where we store the balances.
const BucketName = "cash"

// Wallet holds the funds of a single principal. It is stored under the
// principal address.
type Wallet struct {
	Amount uint64
}

var _ orm.Model = (*Wallet)(nil)

// Validate always succeeds: any amount is a valid balance.
func (*Wallet) Validate() error {
	return nil
}

// NewBucket returns a bucket for wallets, keyed by address.
func NewBucket() orm.ModelBucket {
	return orm.NewModelBucket(BucketName, &Wallet{})
}

func walletKey(addr coledger.Address) []byte {
	return addr
}
