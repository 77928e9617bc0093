package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/iov-one/coledger"
)

// flAddress returns a value that is being initialized with given default
// value and optionally overwritten by a command line argument if provided.
// This function follows Go's flag package convention.
// If given value cannot be deserialized to required type, process is
// terminated.
func flAddress(fl *flag.FlagSet, name, defaultVal, usage string) *coledger.Address {
	var a flagaddr
	if defaultVal != "" {
		if err := a.Set(defaultVal); err != nil {
			flagDie("Cannot parse %q address flag value. %s", name, err)
		}
	}
	fl.Var(&a, name, usage)
	return (*coledger.Address)(&a)
}

type flagaddr coledger.Address

func (a flagaddr) String() string {
	return coledger.Address(a).String()
}

func (a *flagaddr) Set(raw string) error {
	addr, err := coledger.ParseAddress(raw)
	if err != nil {
		return err
	}
	*a = flagaddr(addr)
	return nil
}

// flAddressList returns a list of addresses parsed from a comma separated
// value. Each element accepts the same formats as flAddress.
func flAddressList(fl *flag.FlagSet, name, defaultVal, usage string) *[]coledger.Address {
	var l flagaddrs
	if defaultVal != "" {
		if err := l.Set(defaultVal); err != nil {
			flagDie("Cannot parse %q address list flag value. %s", name, err)
		}
	}
	fl.Var(&l, name, usage)
	return (*[]coledger.Address)(&l)
}

type flagaddrs []coledger.Address

func (l flagaddrs) String() string {
	enc := make([]string, len(l))
	for i, a := range l {
		enc[i] = a.String()
	}
	return strings.Join(enc, ",")
}

func (l *flagaddrs) Set(raw string) error {
	var addrs []coledger.Address
	for _, chunk := range strings.Split(raw, ",") {
		chunk = strings.TrimSpace(chunk)
		if chunk == "" {
			continue
		}
		addr, err := coledger.ParseAddress(chunk)
		if err != nil {
			return fmt.Errorf("%q: %s", chunk, err)
		}
		addrs = append(addrs, addr)
	}
	*l = addrs
	return nil
}

// flagDie terminates the program when an invalid flag value was provided.
func flagDie(description string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, description, args...)
	fmt.Fprintln(os.Stderr)
	os.Exit(2)
}
