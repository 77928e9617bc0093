package main

import (
	"encoding/hex"
	"flag"
	"fmt"
	"io"
	"io/ioutil"
	"os"
	"strings"

	"github.com/iov-one/coledger/crypto"
)

const defaultKeyPath = "$HOME/.coledger.priv.key"

func cmdKeygen(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Generate a new private key.

When successful a new file containing the hex encoded private key seed is
created. This command fails if the private key file already exists.

A key can be derived from a hex encoded master seed by providing both the
-master and -path flags.
`)
		fl.PrintDefaults()
	}
	var (
		keyPathFl = fl.String("key", env("COLEDGERCLI_PRIV_KEY", os.ExpandEnv(defaultKeyPath)),
			"Path to the private key file. You can use COLEDGERCLI_PRIV_KEY environment variable to set it.")
		masterFl = fl.String("master", "", "Hex encoded master seed to derive the key from.")
		pathFl   = fl.String("path", "m/44'/234'/0'", "Derivation path used together with the master seed.")
	)
	fl.Parse(args)

	if _, err := os.Stat(*keyPathFl); !os.IsNotExist(err) {
		// Do not allow to overwrite already existing private key. User
		// must manually delete it first.
		return fmt.Errorf("private key file %q already exists, delete this file and try again", *keyPathFl)
	}

	var key *crypto.PrivateKey
	if *masterFl == "" {
		key = crypto.GenPrivateKey()
	} else {
		master, err := hex.DecodeString(*masterFl)
		if err != nil {
			return fmt.Errorf("cannot decode master seed: %s", err)
		}
		if key, err = crypto.DeriveKey(master, *pathFl); err != nil {
			return fmt.Errorf("cannot derive key: %s", err)
		}
	}

	fd, err := os.OpenFile(*keyPathFl, os.O_CREATE|os.O_WRONLY|os.O_EXCL, 0600)
	if err != nil {
		return fmt.Errorf("cannot create private key file: %s", err)
	}
	defer fd.Close()

	if _, err := fd.WriteString(key.Encode()); err != nil {
		return fmt.Errorf("cannot write private key: %s", err)
	}
	if err := fd.Close(); err != nil {
		return fmt.Errorf("cannot close private key file: %s", err)
	}
	return nil
}

func cmdKeyaddr(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Print out a hex-address associated with your private key.
`)
		fl.PrintDefaults()
	}
	var (
		keyPathFl = fl.String("key", env("COLEDGERCLI_PRIV_KEY", os.ExpandEnv(defaultKeyPath)),
			"Path to the private key file. You can use COLEDGERCLI_PRIV_KEY environment variable to set it.")
	)
	fl.Parse(args)

	key, err := loadPrivateKey(*keyPathFl)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(output, key.PublicKey().Address())
	return err
}

// loadPrivateKey reads a private key file created by the keygen command.
func loadPrivateKey(path string) (*crypto.PrivateKey, error) {
	raw, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read private key file: %s", err)
	}
	key, err := crypto.DecodePrivateKey(strings.TrimSpace(string(raw)))
	if err != nil {
		return nil, fmt.Errorf("cannot decode private key: %s", err)
	}
	return key, nil
}
