package client

import (
	abci "github.com/tendermint/tendermint/abci/types"
	cmn "github.com/tendermint/tendermint/libs/common"
	tmtypes "github.com/tendermint/tendermint/types"
)

// TransactionID is the hash used to identify the transaction.
type TransactionID = cmn.HexBytes

// TxQuery is a tendermint tag query used to find transactions, for example
// "account_created.account_id='3'".
type TxQuery = string

// CommitResult is returned once a transaction is included in a block.
// Err is set if the transaction was rejected, in which case Data and Tags
// are empty.
type CommitResult struct {
	ID     TransactionID
	Height int64
	Data   []byte
	Tags   []cmn.KVPair
	Err    error
}

// Tag returns the value of the first tag with given key.
func (r *CommitResult) Tag(key string) (string, bool) {
	for _, t := range r.Tags {
		if string(t.Key) == key {
			return string(t.Value), true
		}
	}
	return "", false
}

// Status is the current status of the node we connect to.
type Status struct {
	ChainID    string
	Height     int64
	CatchingUp bool
}

// Header is a tendermint block header.
type Header = tmtypes.Header

// ResponseQuery mirrors the abci query response.
type ResponseQuery = abci.ResponseQuery
