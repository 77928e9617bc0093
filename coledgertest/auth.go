package coledgertest

import (
	"context"
	"fmt"

	"github.com/iov-one/coledger"
)

// Auth is a mock implementing x.Authenticator interface.
//
// This structure authenticates any of referenced conditions. Signer is a
// shortcut for a single signer, all conditions from both attributes are
// considered.
type Auth struct {
	Signer  coledger.Condition
	Signers []coledger.Condition
}

func (a *Auth) GetConditions(coledger.Context) []coledger.Condition {
	if a.Signer != nil {
		return append([]coledger.Condition{a.Signer}, a.Signers...)
	}
	return a.Signers
}

func (a *Auth) HasAddress(ctx coledger.Context, addr coledger.Address) bool {
	for _, c := range a.GetConditions(ctx) {
		if addr.Equals(c.Address()) {
			return true
		}
	}
	return false
}

// CtxAuth is a mock implementing x.Authenticator interface.
//
// This implementation is using context to store and retrieve permissions.
type CtxAuth struct {
	// Key used to set and retrieve conditions from the context. For
	// convenience only string type keys are allowed.
	Key string
}

func (a *CtxAuth) SetConditions(ctx coledger.Context, permissions ...coledger.Condition) coledger.Context {
	return context.WithValue(ctx, a.Key, permissions)
}

func (a *CtxAuth) GetConditions(ctx coledger.Context) []coledger.Condition {
	val := ctx.Value(a.Key)
	if val == nil {
		return nil
	}
	conds, ok := val.([]coledger.Condition)
	if !ok {
		panic(fmt.Sprintf("instead of []coledger.Condition got %T", val))
	}
	return conds
}

func (a *CtxAuth) HasAddress(ctx coledger.Context, addr coledger.Address) bool {
	for _, c := range a.GetConditions(ctx) {
		if addr.Equals(c.Address()) {
			return true
		}
	}
	return false
}
