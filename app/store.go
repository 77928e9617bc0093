package app

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/iov-one/coledger"
	"github.com/iov-one/coledger/errors"
	amino "github.com/tendermint/go-amino"
	abci "github.com/tendermint/tendermint/abci/types"
	"github.com/tendermint/tendermint/libs/log"
)

// queryCdc serializes query results. Models are plain structures, so no
// type registration is needed.
var queryCdc = amino.NewCodec()

// StoreApp contains a data store and all info needed to perform queries
// and handshakes.
//
// It should be embedded in another struct for CheckTx, DeliverTx and
// initializing state from the genesis.
//
// Errors on ABCI steps that do not take user input (Info, InitChain,
// BeginBlock, EndBlock, Commit) cannot be handled gracefully and panic.
type StoreApp struct {
	logger log.Logger

	// name is what is returned from abci.Info
	name string

	store *CommitStore

	initializer coledger.Initializer
	queryRouter coledger.QueryRouter

	// chainID is loaded from db in initialization, saved once in
	// parseAppState
	chainID string

	// baseContext contains context info that is valid for lifetime of
	// this app (eg. chainID)
	baseContext coledger.Context

	// blockContext contains context info that is valid for the current
	// block (eg. height, time), reset on BeginBlock
	blockContext coledger.Context

	debug bool
}

// NewStoreApp initializes this app into a ready state with some defaults.
func NewStoreApp(name string, store coledger.CommitKVStore, queryRouter coledger.QueryRouter, baseContext coledger.Context) (*StoreApp, error) {
	cs, err := NewCommitStore(store)
	if err != nil {
		return nil, err
	}
	s := &StoreApp{
		name:        name,
		store:       cs,
		queryRouter: queryRouter,
		baseContext: baseContext,
	}
	s = s.WithLogger(log.NewNopLogger())

	s.chainID, err = loadChainID(s.DeliverStore())
	if err != nil {
		return nil, err
	}
	if s.chainID != "" {
		s.baseContext = coledger.WithChainID(s.baseContext, s.chainID)
	}

	info, err := cs.CommitInfo()
	if err != nil {
		return nil, err
	}
	s.blockContext = coledger.WithHeight(s.baseContext, info.Version)
	return s, nil
}

// GetChainID returns the current chainID.
func (s *StoreApp) GetChainID() string {
	return s.chainID
}

// WithInit is used to set the init function we call.
func (s *StoreApp) WithInit(init coledger.Initializer) *StoreApp {
	s.initializer = init
	return s
}

// WithDebug enables full error information in query responses.
func (s *StoreApp) WithDebug(debug bool) *StoreApp {
	s.debug = debug
	return s
}

// parseAppState is called from InitChain, the first time the chain starts,
// and not on restarts.
func (s *StoreApp) parseAppState(data []byte, chainID string) error {
	if s.chainID != "" {
		return errors.Wrapf(errors.ErrState, "app state previously loaded for chain: %s", s.chainID)
	}
	if len(data) == 0 {
		return errors.Wrap(errors.ErrState, "app_state not set in genesis.json, please initialize application before launching the blockchain")
	}

	var appState coledger.Options
	if err := json.Unmarshal(data, &appState); err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}

	if err := s.storeChainID(chainID); err != nil {
		return err
	}
	if s.initializer == nil {
		s.logger.Info("No initializer set")
		return nil
	}
	return s.initializer.FromGenesis(appState, s.DeliverStore())
}

// storeChainID stores the chain id and updates the context.
func (s *StoreApp) storeChainID(chainID string) error {
	if err := saveChainID(s.DeliverStore(), chainID); err != nil {
		return err
	}
	s.chainID = chainID
	s.baseContext = coledger.WithChainID(s.baseContext, s.chainID)
	return nil
}

// WithLogger sets the logger on the StoreApp and returns it, to make it
// easy to chain in initialization. The base context logger is set as well.
func (s *StoreApp) WithLogger(logger log.Logger) *StoreApp {
	s.baseContext = coledger.WithLogger(s.baseContext, logger)
	if s.blockContext != nil {
		s.blockContext = coledger.WithLogger(s.blockContext, logger)
	}
	s.logger = logger
	return s
}

// Logger returns the application base logger.
func (s *StoreApp) Logger() log.Logger {
	return s.logger
}

// BlockContext returns the block context for public use.
func (s *StoreApp) BlockContext() coledger.Context {
	return s.blockContext
}

// DeliverStore returns the current DeliverTx cache for methods.
func (s *StoreApp) DeliverStore() coledger.CacheableKVStore {
	return s.store.DeliverStore()
}

// CheckStore returns the current CheckTx cache for methods.
func (s *StoreApp) CheckStore() coledger.CacheableKVStore {
	return s.store.CheckStore()
}

//----------------------- ABCI ---------------------

// Info implements abci.Application. It returns the height and hash, as
// well as the abci name and version.
func (s *StoreApp) Info(req abci.RequestInfo) abci.ResponseInfo {
	info, err := s.store.CommitInfo()
	if err != nil {
		panic(err)
	}

	s.logger.Info("Info synced",
		"height", info.Version,
		"hash", fmt.Sprintf("%X", info.Hash))

	return abci.ResponseInfo{
		Data:             s.name,
		LastBlockHeight:  info.Version,
		LastBlockAppHash: info.Hash,
	}
}

// SetOption - ABCI
func (s *StoreApp) SetOption(res abci.RequestSetOption) abci.ResponseSetOption {
	return abci.ResponseSetOption{Log: "Not Implemented"}
}

// Query gets data from the app store. A query request has the following
// elements:
//
//   Path   - the registered query handler, for example "/accounts"
//   Data   - what to query, interpreted based on Path
//   Height - must be zero or the latest height, historical queries are not
//            supported
//
// Any query modifier following "?" in the path is ignored. The result is
// returned as JSON in the Value field.
func (s *StoreApp) Query(req abci.RequestQuery) abci.ResponseQuery {
	path, _ := splitPath(req.Path)
	qh := s.queryRouter.Handler(path)
	if qh == nil {
		return queryError(errors.Wrapf(errors.ErrNotFound, "unexpected query path: %v", req.Path), s.debug)
	}

	info, err := s.store.CommitInfo()
	if err != nil {
		return queryError(err, s.debug)
	}
	if req.Height != 0 && req.Height != info.Version {
		return queryError(errors.Wrapf(errors.ErrInput, "only latest height %d can be queried", info.Version), s.debug)
	}

	res, err := qh.Query(s.store.QueryStore(), req.Data)
	if err != nil {
		return queryError(err, s.debug)
	}
	value, err := queryCdc.MarshalJSON(res)
	if err != nil {
		return queryError(errors.Wrap(err, "cannot serialize result"), s.debug)
	}
	return abci.ResponseQuery{
		Key:    req.Data,
		Value:  value,
		Height: info.Version,
	}
}

// splitPath splits out the real path along with the query modifier
// (everything after the ?).
func splitPath(path string) (string, string) {
	var mod string
	chunks := strings.SplitN(path, "?", 2)
	if len(chunks) == 2 {
		path = chunks[0]
		mod = chunks[1]
	}
	return path, mod
}

func queryError(err error, debug bool) abci.ResponseQuery {
	code, log := errors.ABCIInfo(err, debug)
	return abci.ResponseQuery{
		Log:  log,
		Code: code,
	}
}

// Commit implements abci.Application.
func (s *StoreApp) Commit() abci.ResponseCommit {
	commitID, err := s.store.Commit()
	if err != nil {
		panic(err)
	}

	s.logger.Debug("Commit synced",
		"height", commitID.Version,
		"hash", fmt.Sprintf("%X", commitID.Hash),
	)

	return abci.ResponseCommit{Data: commitID.Hash}
}

// InitChain implements ABCI. The app state of the genesis file is loaded
// through the initializer.
func (s *StoreApp) InitChain(req abci.RequestInitChain) abci.ResponseInitChain {
	if err := s.parseAppState(req.AppStateBytes, req.ChainId); err != nil {
		panic(err)
	}
	return abci.ResponseInitChain{}
}

// BeginBlock implements ABCI. It sets up the block context with the height
// and time of the block.
func (s *StoreApp) BeginBlock(req abci.RequestBeginBlock) abci.ResponseBeginBlock {
	ctx := coledger.WithHeight(s.baseContext, req.Header.GetHeight())
	ctx = coledger.WithBlockTime(ctx, req.Header.GetTime())
	s.blockContext = ctx
	return abci.ResponseBeginBlock{}
}

// EndBlock - ABCI
func (s *StoreApp) EndBlock(_ abci.RequestEndBlock) abci.ResponseEndBlock {
	return abci.ResponseEndBlock{}
}
