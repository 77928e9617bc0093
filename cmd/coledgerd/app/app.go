/*
Package app links together all the various components to construct the
coledger application.
*/
package app

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/iov-one/coledger"
	"github.com/iov-one/coledger/app"
	"github.com/iov-one/coledger/errors"
	"github.com/iov-one/coledger/store/iavl"
	"github.com/iov-one/coledger/x"
	"github.com/iov-one/coledger/x/cash"
	"github.com/iov-one/coledger/x/jointaccount"
	"github.com/iov-one/coledger/x/sigs"
	"github.com/iov-one/coledger/x/utils"
)

// Name is returned by the ABCI info call.
const Name = "coledger"

// Authenticator returns the typical authentication, just using public key
// signatures.
func Authenticator() x.Authenticator {
	return x.ChainAuth(sigs.Authenticate{})
}

// Chain returns a chain of decorators, to handle authentication, logging,
// and recovery.
func Chain() app.Decorators {
	return app.ChainDecorators(
		utils.NewLogging(),
		utils.NewRecovery(),
		// on CheckTx, bad tx don't affect state
		utils.NewSavepoint().OnCheck(),
		sigs.NewDecorator(),
		// on DeliverTx, bad tx will increment the signer sequence
		// even if the message fails
		utils.NewSavepoint().OnDeliver(),
	)
}

// Router returns a router dispatching to the cash and joint account
// handlers.
func Router(authFn x.Authenticator, wallets cash.Controller) *app.Router {
	r := app.NewRouter()
	cash.RegisterRoutes(r, authFn, wallets)
	jointaccount.RegisterRoutes(r, authFn, jointaccount.NewController(wallets))
	return r
}

// QueryRouter returns a default query router, allowing access to
// "/wallets", "/auth", "/accounts", "/useraccounts" and "/withdraws".
func QueryRouter() coledger.QueryRouter {
	r := coledger.NewQueryRouter()
	r.RegisterAll(
		cash.RegisterQuery,
		sigs.RegisterQuery,
		func(qr coledger.QueryRouter) {
			jointaccount.RegisterQuery(qr, jointaccount.NewController(cash.NewController()))
		},
	)
	return r
}

// Stack wires up a standard router with a standard decorator chain. This
// can be passed into BaseApp.
func Stack() coledger.Handler {
	authFn := Authenticator()
	return Chain().WithHandler(Router(authFn, cash.NewController()))
}

// Initializers returns the genesis initializers of all extensions.
func Initializers() coledger.Initializer {
	return app.ChainInitializers(
		cash.Initializer{},
		&jointaccount.Initializer{Cash: cash.NewController()},
	)
}

// Application constructs a basic ABCI application with the given
// arguments. If you are not sure what to use for the Handler, just use
// Stack().
func Application(name string, h coledger.Handler, tx coledger.TxDecoder, dbPath string, debug bool) (app.BaseApp, error) {
	kv, err := CommitKVStore(dbPath)
	if err != nil {
		return app.BaseApp{}, err
	}
	store, err := app.NewStoreApp(name, kv, QueryRouter(), context.Background())
	if err != nil {
		return app.BaseApp{}, err
	}
	store.WithInit(Initializers())
	return app.NewBaseApp(store, tx, h, debug), nil
}

// CommitKVStore returns an initialized KVStore that persists the data to
// the named path. An empty path returns an in memory store.
func CommitKVStore(dbPath string) (coledger.CommitKVStore, error) {
	if dbPath == "" {
		return iavl.MockCommitStore(), nil
	}

	path, err := filepath.Abs(dbPath)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "invalid database name: %s", dbPath)
	}

	// Some external calls accidentally add a ".db", which is now removed
	path = strings.TrimSuffix(path, filepath.Ext(path))

	dir := filepath.Dir(path)
	name := filepath.Base(path)
	return iavl.NewCommitStore(dir, name)
}
