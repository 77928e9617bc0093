package bech32

import (
	"bytes"
	"testing"
)

func TestRoundTrip(t *testing.T) {
	payload := []byte("twenty bytes payload")
	raw, err := Encode("cold", payload)
	if err != nil {
		t.Fatalf("cannot encode: %s", err)
	}
	hrp, got, err := Decode(string(raw))
	if err != nil {
		t.Fatalf("cannot decode: %s", err)
	}
	if hrp != "cold" {
		t.Fatalf("want cold prefix, got %q", hrp)
	}
	if !bytes.Equal(payload, got) {
		t.Fatalf("want %X, got %X", payload, got)
	}
}

func TestDecodeInvalid(t *testing.T) {
	if _, _, err := Decode("cold1notbech32!"); err == nil {
		t.Fatal("want an error")
	}
}
