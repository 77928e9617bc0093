package sigs

import (
	"context"
	"testing"

	"github.com/iov-one/coledger"
	"github.com/iov-one/coledger/coledgertest"
	"github.com/iov-one/coledger/crypto"
	"github.com/iov-one/coledger/errors"
	"github.com/iov-one/coledger/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// authTx is a signed transaction carrying a mock message.
type authTx struct {
	signedTx
}

func (*authTx) GetMsg() (coledger.Msg, error) {
	return &coledgertest.Msg{RoutePath: "test/auth"}, nil
}

// signerRecorder remembers the conditions it was called with.
type signerRecorder struct {
	signers []coledger.Condition
}

func (s *signerRecorder) Check(ctx coledger.Context, db coledger.KVStore, tx coledger.Tx) (*coledger.CheckResult, error) {
	s.signers = Authenticate{}.GetConditions(ctx)
	return &coledger.CheckResult{}, nil
}

func (s *signerRecorder) Deliver(ctx coledger.Context, db coledger.KVStore, tx coledger.Tx) (*coledger.DeliverResult, error) {
	s.signers = Authenticate{}.GetConditions(ctx)
	return &coledger.DeliverResult{}, nil
}

func TestDecorator(t *testing.T) {
	db := store.MemStore()
	ctx := coledger.WithChainID(context.Background(), chainID)
	key := crypto.GenPrivateKey()

	tx := &authTx{signedTx{data: []byte("payload")}}
	sig, err := SignTx(key, tx, chainID, 0)
	require.NoError(t, err)
	tx.sigs = []*StdSignature{sig}

	h := &signerRecorder{}
	res, err := NewDecorator().Check(ctx, db, tx, h)
	require.NoError(t, err)
	assert.Equal(t, int64(signatureVerifyCost), res.GasAllocated)
	assert.Equal(t, []coledger.Condition{key.PublicKey().Condition()}, h.signers)
	assert.True(t, Authenticate{}.HasAddress(withSigners(ctx, h.signers), key.PublicKey().Address()))

	// sequence was consumed by check
	sig, err = SignTx(key, tx, chainID, 1)
	require.NoError(t, err)
	tx.sigs = []*StdSignature{sig}
	_, err = NewDecorator().Deliver(ctx, db, tx, h)
	require.NoError(t, err)
}

func TestDecoratorMissingSignature(t *testing.T) {
	db := store.MemStore()
	ctx := coledger.WithChainID(context.Background(), chainID)
	tx := &authTx{}

	_, err := NewDecorator().Deliver(ctx, db, tx, &signerRecorder{})
	assert.True(t, errors.ErrUnauthorized.Is(err))

	// not a signed transaction at all
	_, err = NewDecorator().Deliver(ctx, db, &coledgertest.Tx{}, &signerRecorder{})
	assert.True(t, errors.ErrUnauthorized.Is(err))

	h := &signerRecorder{}
	_, err = NewDecorator().AllowMissingSigs().Deliver(ctx, db, tx, h)
	require.NoError(t, err)
	assert.Empty(t, h.signers)
}

func TestAuthQuery(t *testing.T) {
	db := store.MemStore()
	key := crypto.GenPrivateKey()
	tx := &signedTx{data: []byte("payload")}
	sig, err := SignTx(key, tx, chainID, 0)
	require.NoError(t, err)
	tx.sigs = []*StdSignature{sig}
	_, err = VerifyTxSignatures(db, tx, chainID)
	require.NoError(t, err)

	qr := coledger.NewQueryRouter()
	RegisterQuery(qr)
	res, err := qr.Handler("/auth").Query(db, key.PublicKey().Address())
	require.NoError(t, err)
	user := res.(*UserData)
	assert.Equal(t, uint64(1), user.Sequence)
	assert.Equal(t, key.PublicKey().Ed25519, user.Pubkey.Ed25519)
}
