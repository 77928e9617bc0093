package cash

import (
	"github.com/iov-one/coledger"
)

// NewWalletQuery returns a query handler reporting the funds held by the
// address given as query data.
func NewWalletQuery(control Controller) coledger.QueryHandler {
	return coledger.QueryHandlerFunc(func(db coledger.ReadOnlyKVStore, data []byte) (interface{}, error) {
		addr := coledger.Address(data)
		if err := addr.Validate(); err != nil {
			return nil, err
		}
		return control.Balance(db, addr)
	})
}
