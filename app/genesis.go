package app

import (
	"encoding/json"
	"io/ioutil"

	"github.com/iov-one/coledger"
	"github.com/iov-one/coledger/errors"
)

// Genesis file format, designed to be overlayed with tendermint genesis.
type Genesis struct {
	ChainID  string           `json:"chain_id"`
	AppState coledger.Options `json:"app_state"`
}

// LoadGenesis tries to load a given file into a Genesis struct.
func LoadGenesis(filePath string) (Genesis, error) {
	var gen Genesis

	raw, err := ioutil.ReadFile(filePath)
	if err != nil {
		return gen, errors.Wrapf(errors.ErrInput, "cannot read genesis file: %s", err)
	}
	if err := json.Unmarshal(raw, &gen); err != nil {
		return gen, errors.Wrapf(errors.ErrInput, "cannot unmarshal genesis file: %s", err)
	}
	return gen, nil
}

// ChainInitializers lets you initialize many extensions with one function.
func ChainInitializers(inits ...coledger.Initializer) coledger.Initializer {
	return chainInitializer{inits: inits}
}

type chainInitializer struct {
	inits []coledger.Initializer
}

// FromGenesis will pass opts to all Initializers in the list, aborting at
// the first error.
func (c chainInitializer) FromGenesis(opts coledger.Options, kv coledger.KVStore) error {
	for _, i := range c.inits {
		if err := i.FromGenesis(opts, kv); err != nil {
			return err
		}
	}
	return nil
}
