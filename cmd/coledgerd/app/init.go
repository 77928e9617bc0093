package app

import (
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/iov-one/coledger"
	"github.com/iov-one/coledger/crypto"
	"github.com/iov-one/coledger/errors"
	"github.com/iov-one/coledger/x/cash"
	"github.com/iov-one/coledger/x/jointaccount"
	abci "github.com/tendermint/tendermint/abci/types"
	"github.com/tendermint/tendermint/libs/log"
)

// DefaultFunds is the amount every wallet created by GenInitOptions holds.
const DefaultFunds = 1000000

// GenInitOptions will produce the app state with the given addresses
// funded. If no address is provided a new key is generated and printed, so
// it can be used in dev mode.
func GenInitOptions(args []string) (json.RawMessage, error) {
	var addrs []coledger.Address
	for _, enc := range args {
		addr, err := coledger.ParseAddress(enc)
		if err != nil {
			return nil, errors.Wrapf(err, "address %q", enc)
		}
		addrs = append(addrs, addr)
	}
	if len(addrs) == 0 {
		key := crypto.GenPrivateKey()
		addrs = append(addrs, key.PublicKey().Address())
		fmt.Println(key.Encode())
	}

	state := struct {
		Cash         []cash.GenesisAccount         `json:"cash"`
		JointAccount []jointaccount.GenesisAccount `json:"jointaccount"`
	}{
		JointAccount: []jointaccount.GenesisAccount{},
	}
	for _, a := range addrs {
		state.Cash = append(state.Cash, cash.GenesisAccount{Address: a, Amount: DefaultFunds})
	}
	raw, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return nil, errors.Wrap(errors.ErrInput, err.Error())
	}
	return raw, nil
}

// GenerateApp is used to create a stub for server/start.go command.
func GenerateApp(home string, logger log.Logger, debug bool) (abci.Application, error) {
	// db goes in a subdir, but "" -> "" for memdb
	var dbPath string
	if home != "" {
		dbPath = filepath.Join(home, "coledger.db")
	}

	application, err := Application(Name, Stack(), TxDecoder, dbPath, debug)
	if err != nil {
		return nil, err
	}
	application.WithLogger(logger)
	return application, nil
}
