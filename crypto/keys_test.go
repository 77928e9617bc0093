package crypto

import (
	"bytes"
	"testing"

	"github.com/iov-one/coledger/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignAndVerify(t *testing.T) {
	key := GenPrivateKey()
	msg := []byte("withdraw 100")

	sig, err := key.Sign(msg)
	require.NoError(t, err)

	pub := key.PublicKey()
	assert.NoError(t, pub.Validate())
	assert.True(t, pub.Verify(msg, sig))
	assert.False(t, pub.Verify([]byte("withdraw 1000"), sig))
	assert.False(t, GenPrivateKey().PublicKey().Verify(msg, sig))
}

func TestConditionAndAddress(t *testing.T) {
	pub := GenPrivateKey().PublicKey()
	cond := pub.Condition()
	require.NoError(t, cond.Validate())

	ext, typ, data, err := cond.Parse()
	require.NoError(t, err)
	assert.Equal(t, ExtensionName, ext)
	assert.Equal(t, "ed25519", typ)
	assert.Equal(t, pub.Ed25519, data)
	assert.Equal(t, cond.Address(), pub.Address())
	assert.NoError(t, pub.Address().Validate())
}

func TestEncodeDecode(t *testing.T) {
	key := GenPrivateKey()
	back, err := DecodePrivateKey(key.Encode())
	require.NoError(t, err)
	assert.Equal(t, key.Ed25519, back.Ed25519)

	_, err = DecodePrivateKey("zz")
	assert.True(t, errors.ErrInput.Is(err))

	_, err = DecodePrivateKey("abcd")
	assert.True(t, errors.ErrInput.Is(err))
}

func TestDeriveKeyIsDeterministic(t *testing.T) {
	seed := bytes.Repeat([]byte{7}, 64)

	a, err := DeriveKey(seed, DefaultDerivationPath)
	require.NoError(t, err)
	b, err := DeriveKey(seed, DefaultDerivationPath)
	require.NoError(t, err)
	assert.Equal(t, a.Ed25519, b.Ed25519)

	c, err := DeriveKey(seed, "m/44'/234'/1'")
	require.NoError(t, err)
	assert.NotEqual(t, a.Ed25519, c.Ed25519)

	_, err = DeriveKey(seed, "not a path")
	assert.True(t, errors.ErrInput.Is(err))
}
