package coledgertest

import (
	"encoding/binary"
	"sync/atomic"
	"testing"

	"github.com/iov-one/coledger"
)

var seq uint64

// NewCondition returns a unique condition on every call. Conditions are not
// bound to any key so they can only be authenticated using a mock.
func NewCondition() coledger.Condition {
	data := make([]byte, 8)
	binary.BigEndian.PutUint64(data, atomic.AddUint64(&seq, 1))
	return coledger.NewCondition("test", "mock", data)
}

// NewAddress returns the address of a fresh condition.
func NewAddress() coledger.Address {
	return NewCondition().Address()
}

// ParseAddress decodes an address in any notation understood by
// coledger.ParseAddress and fails the test if that is not possible.
func ParseAddress(t testing.TB, encodedAddress string) coledger.Address {
	t.Helper()

	addr, err := coledger.ParseAddress(encodedAddress)
	if err != nil {
		t.Fatalf("cannot parse %q address: %s", encodedAddress, err)
	}
	return addr
}
