package server

import (
	"encoding/json"
	"flag"
	"fmt"
	"io/ioutil"
	"os"
	"path/filepath"

	"github.com/iov-one/coledger/errors"
	"github.com/tendermint/tendermint/libs/log"
)

const (
	appStateKey = "app_state"
	dirConfig   = "config"
	genesisFile = "genesis.json"
)

// GenOptions can parse command-line and flag to generate default
// app_state for the genesis file. This is application-specific.
type GenOptions func(args []string) (json.RawMessage, error)

// GenesisPath returns the location of the tendermint genesis file for given
// home directory.
func GenesisPath(home string) string {
	return filepath.Join(home, dirConfig, genesisFile)
}

// InitCmd will add the app_state to the genesis file created by
// "tendermint init". The application passes in a function to generate the
// state. An existing app_state is never overwritten unless -i is given.
func InitCmd(gen GenOptions, logger log.Logger, home string, args []string) error {
	var overwrite bool
	initFlags := flag.NewFlagSet("init", flag.ExitOnError)
	initFlags.BoolVar(&overwrite, "i", false, "ignore existing app state and overwrite it")
	if err := initFlags.Parse(args); err != nil {
		return err
	}

	genFile := GenesisPath(home)
	if _, err := os.Stat(genFile); err != nil {
		return errors.Wrapf(errors.ErrInput, "cannot find %s, run \"tendermint init\" first: %s", genFile, err)
	}

	options, err := gen(initFlags.Args())
	if err != nil {
		return err
	}
	if err := addGenesisOptions(genFile, options, overwrite); err != nil {
		return err
	}
	logger.Info("App state written", "path", genFile)
	return nil
}

// GenesisDoc involves some tendermint-specific structures we don't want to
// parse, so we just grab it into a raw object format, so we can add one
// line.
type GenesisDoc map[string]json.RawMessage

func addGenesisOptions(filename string, options json.RawMessage, overwrite bool) error {
	raw, err := ioutil.ReadFile(filename)
	if err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}

	var doc GenesisDoc
	if err := json.Unmarshal(raw, &doc); err != nil {
		return errors.Wrapf(errors.ErrInput, "cannot parse %s: %s", filename, err)
	}

	if state, ok := doc[appStateKey]; ok && len(state) > 0 && string(state) != "null" && !overwrite {
		return errors.Wrap(errors.ErrState, fmt.Sprintf("%s already set in %s, use -i to overwrite", appStateKey, filename))
	}

	doc[appStateKey] = options
	out, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}
	return ioutil.WriteFile(filename, out, 0600)
}
