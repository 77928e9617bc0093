package x_test

import (
	"context"
	"testing"

	"github.com/iov-one/coledger"
	"github.com/iov-one/coledger/coledgertest"
	"github.com/iov-one/coledger/errors"
	"github.com/iov-one/coledger/x"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChainAuth(t *testing.T) {
	a, b, c := coledgertest.NewCondition(), coledgertest.NewCondition(), coledgertest.NewCondition()

	ctxAuth := &coledgertest.CtxAuth{Key: "auth"}
	ctx := ctxAuth.SetConditions(context.Background(), a)
	auth := x.ChainAuth(ctxAuth, &coledgertest.Auth{Signer: b})

	assert.Equal(t, []coledger.Condition{a, b}, auth.GetConditions(ctx))
	assert.True(t, auth.HasAddress(ctx, a.Address()))
	assert.True(t, auth.HasAddress(ctx, b.Address()))
	assert.False(t, auth.HasAddress(ctx, c.Address()))
	assert.Equal(t, []coledger.Address{a.Address(), b.Address()}, x.GetAddresses(ctx, auth))

	assert.Equal(t, a, x.MainSigner(ctx, auth))
	signer, err := x.AnySigner(ctx, auth)
	require.NoError(t, err)
	assert.Equal(t, a.Address(), signer)
}

func TestAnySignerRequiresSignature(t *testing.T) {
	auth := &coledgertest.Auth{}
	ctx := context.Background()

	assert.Nil(t, x.MainSigner(ctx, auth))
	_, err := x.AnySigner(ctx, auth)
	assert.True(t, errors.ErrUnauthorized.Is(err))
}
