/*
Package client provides a thin wrapper around the tendermint RPC client
that speaks the coledger transaction and query formats.
*/
package client

import (
	"context"
	"fmt"

	"github.com/iov-one/coledger"
	"github.com/iov-one/coledger/errors"
	"github.com/iov-one/coledger/orm"
	"github.com/iov-one/coledger/x/jointaccount"
	"github.com/iov-one/coledger/x/sigs"
	"github.com/tendermint/go-amino"
	abci "github.com/tendermint/tendermint/abci/types"
	rpcclient "github.com/tendermint/tendermint/rpc/client"
	ctypes "github.com/tendermint/tendermint/rpc/core/types"
	tmtypes "github.com/tendermint/tendermint/types"
)

const txPerPage = 50

// queryCdc decodes query results. The node serializes them with a plain
// amino codec as well.
var queryCdc = amino.NewCodec()

// Client is a tendermint client wrapped to provide simple access to the
// coledger state.
type Client struct {
	conn rpcclient.Client
}

// NewClient wraps a Client around an existing tendermint client connection.
func NewClient(conn rpcclient.Client) *Client {
	return &Client{conn: conn}
}

// NewHTTPConnection returns a connection to a remote node, for example
// "http://localhost:26657".
func NewHTTPConnection(remote string) rpcclient.Client {
	return rpcclient.NewHTTP(remote, "/websocket")
}

// Status returns current height and other (subjective) status info from
// this node.
func (c *Client) Status(ctx context.Context) (*Status, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	status, err := c.conn.Status()
	if err != nil {
		return nil, errors.Wrapf(errors.ErrNetwork, "status: %s", err)
	}
	return &Status{
		ChainID:    status.NodeInfo.Network,
		Height:     status.SyncInfo.LatestBlockHeight,
		CatchingUp: status.SyncInfo.CatchingUp,
	}, nil
}

// Header returns the block header at the given height.
func (c *Client) Header(ctx context.Context, height int64) (*Header, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	info, err := c.conn.BlockchainInfo(height, height)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrNetwork, "blockchain info: %s", err)
	}
	if len(info.BlockMetas) == 0 {
		return nil, errors.Wrapf(errors.ErrNotFound, "no header for height %d", height)
	}
	return &info.BlockMetas[0].Header, nil
}

// CommitTx submits a serialized transaction and waits until it is included
// in a block. A transaction rejected by the check phase returns an error.
// A transaction rejected when delivered returns a result with Err set.
func (c *Client) CommitTx(ctx context.Context, tx []byte) (*CommitResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	res, err := c.conn.BroadcastTxCommit(tmtypes.Tx(tx))
	if err != nil {
		return nil, errors.Wrapf(errors.ErrNetwork, "broadcast: %s", err)
	}
	if err := errors.ABCIError(res.CheckTx.Code, res.CheckTx.Log); err != nil {
		return nil, err
	}
	return deliverToCommitResult(res.Hash, res.Height, res.DeliverTx), nil
}

// SubmitTx places the transaction in the mempool of the node without
// waiting for it to be included in a block. Use GetTxByID to learn the
// result.
func (c *Client) SubmitTx(ctx context.Context, tx []byte) (TransactionID, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	res, err := c.conn.BroadcastTxSync(tmtypes.Tx(tx))
	if err != nil {
		return nil, errors.Wrapf(errors.ErrNetwork, "broadcast: %s", err)
	}
	if err := errors.ABCIError(res.Code, res.Log); err != nil {
		return nil, err
	}
	return res.Hash, nil
}

// GetTxByID returns the result of an already committed transaction.
func (c *Client) GetTxByID(ctx context.Context, id TransactionID) (*CommitResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	res, err := c.conn.Tx(id, false)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrNetwork, "get tx: %s", err)
	}
	return resultTxToCommitResult(res), nil
}

// SearchTx returns all committed transactions matching given tag query.
// Pages are fetched until all results are collected.
func (c *Client) SearchTx(ctx context.Context, query TxQuery) ([]*CommitResult, error) {
	var results []*CommitResult
	for page := 1; ; page++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		res, err := c.conn.TxSearch(query, false, page, txPerPage)
		if err != nil {
			return nil, errors.Wrapf(errors.ErrNetwork, "search tx: %s", err)
		}
		for _, tx := range res.Txs {
			results = append(results, resultTxToCommitResult(tx))
		}
		if len(res.Txs) < txPerPage || len(results) >= res.TotalCount {
			return results, nil
		}
	}
}

// TagQuery builds a query matching transactions that emitted an event of
// given kind with an attribute set to value.
func TagQuery(kind, attr, value string) TxQuery {
	return fmt.Sprintf("%s.%s='%s'", kind, attr, value)
}

// Query runs an abci query against the latest committed state and decodes
// the result into dest.
func (c *Client) Query(path string, data []byte, dest interface{}) error {
	res, err := c.conn.ABCIQuery(path, data)
	if err != nil {
		return errors.Wrapf(errors.ErrNetwork, "query %s: %s", path, err)
	}
	if err := errors.ABCIError(res.Response.Code, res.Response.Log); err != nil {
		return err
	}
	if err := queryCdc.UnmarshalJSON(res.Response.Value, dest); err != nil {
		return errors.Wrapf(errors.ErrType, "decode %s result: %s", path, err)
	}
	return nil
}

// NextSequence returns the sequence number the next transaction signed by
// given address must use.
func (c *Client) NextSequence(addr coledger.Address) (uint64, error) {
	var u sigs.UserData
	if err := c.Query("/auth", addr, &u); err != nil {
		return 0, err
	}
	return u.Sequence, nil
}

// WalletBalance returns the amount held by given wallet.
func (c *Client) WalletBalance(addr coledger.Address) (uint64, error) {
	var amount uint64
	err := c.Query("/wallets", addr, &amount)
	return amount, err
}

// Account returns the joint account with given ID.
func (c *Client) Account(id uint64) (*jointaccount.Account, error) {
	var acc jointaccount.Account
	if err := c.Query("/accounts", orm.EncodeSequence(id), &acc); err != nil {
		return nil, err
	}
	return &acc, nil
}

// AccountBalance returns the balance of the joint account with given ID.
func (c *Client) AccountBalance(id uint64) (uint64, error) {
	var amount uint64
	err := c.Query("/accounts/balance", orm.EncodeSequence(id), &amount)
	return amount, err
}

// AccountOwners returns the owners of the joint account with given ID.
func (c *Client) AccountOwners(id uint64) ([]coledger.Address, error) {
	var owners []coledger.Address
	err := c.Query("/accounts/owners", orm.EncodeSequence(id), &owners)
	return owners, err
}

// UserAccounts returns the IDs of all accounts given address owns.
func (c *Client) UserAccounts(addr coledger.Address) ([]uint64, error) {
	var ids []uint64
	err := c.Query("/useraccounts", addr, &ids)
	return ids, err
}

// WithdrawRequest returns a withdraw request of an account.
func (c *Client) WithdrawRequest(accountID, withdrawID uint64) (*jointaccount.WithdrawRequest, error) {
	var w jointaccount.WithdrawRequest
	if err := c.Query("/withdraws", jointaccount.WithdrawKey(accountID, withdrawID), &w); err != nil {
		return nil, err
	}
	return &w, nil
}

// ApprovalCount returns how many owners approved a withdraw request.
func (c *Client) ApprovalCount(accountID, withdrawID uint64) (uint64, error) {
	var n uint64
	err := c.Query("/withdraws/approvals", jointaccount.WithdrawKey(accountID, withdrawID), &n)
	return n, err
}

// HasApproved returns true if given owner approved a withdraw request.
func (c *Client) HasApproved(accountID, withdrawID uint64, owner coledger.Address) (bool, error) {
	var ok bool
	key := append(jointaccount.WithdrawKey(accountID, withdrawID), owner...)
	err := c.Query("/withdraws/approved", key, &ok)
	return ok, err
}

func resultTxToCommitResult(tx *ctypes.ResultTx) *CommitResult {
	return deliverToCommitResult(tx.Hash, tx.Height, tx.TxResult)
}

func deliverToCommitResult(id TransactionID, height int64, res abci.ResponseDeliverTx) *CommitResult {
	if err := errors.ABCIError(res.Code, res.Log); err != nil {
		return &CommitResult{ID: id, Height: height, Err: err}
	}
	return &CommitResult{
		ID:     id,
		Height: height,
		Data:   res.Data,
		Tags:   res.Tags,
	}
}
