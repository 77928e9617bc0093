package app

import (
	"reflect"

	"github.com/iov-one/coledger"
)

// Decorators holds a chain of decorators, not yet resolved by a Handler.
type Decorators struct {
	chain []coledger.Decorator
}

// ChainDecorators takes a chain of decorators, and upon adding a final
// Handler (often a Router), returns a Handler that will execute this whole
// stack.
//
//   app.ChainDecorators(
//     utils.NewRecovery(),
//     utils.NewLogging(),
//     sigs.NewDecorator(),
//     utils.NewSavepoint().OnDeliver(),
//   ).WithHandler(
//     router,
//   )
func ChainDecorators(chain ...coledger.Decorator) Decorators {
	return Decorators{}.Chain(chain...)
}

// Chain allows us to keep adding more Decorators to the chain. Nil
// decorators are ignored.
func (d Decorators) Chain(chain ...coledger.Decorator) Decorators {
	next := make([]coledger.Decorator, 0, len(d.chain)+len(chain))
	next = append(next, d.chain...)
	for _, dec := range chain {
		if isNil(dec) {
			continue
		}
		next = append(next, dec)
	}
	return Decorators{chain: next}
}

func isNil(d coledger.Decorator) bool {
	if d == nil {
		return true
	}
	v := reflect.ValueOf(d)
	return v.Kind() == reflect.Ptr && v.IsNil()
}

// WithHandler resolves the stack and returns a concrete Handler that will
// pass through the chain of decorators before calling the final Handler.
func (d Decorators) WithHandler(h coledger.Handler) coledger.Handler {
	// the first decorator in the chain is the outermost one
	for i := len(d.chain) - 1; i >= 0; i-- {
		h = step{d: d.chain[i], next: h}
	}
	return h
}

// step captures one step executing a decorator around a specific Handler.
type step struct {
	d    coledger.Decorator
	next coledger.Handler
}

var _ coledger.Handler = step{}

func (s step) Check(ctx coledger.Context, store coledger.KVStore, tx coledger.Tx) (*coledger.CheckResult, error) {
	return s.d.Check(ctx, store, tx, s.next)
}

func (s step) Deliver(ctx coledger.Context, store coledger.KVStore, tx coledger.Tx) (*coledger.DeliverResult, error) {
	return s.d.Deliver(ctx, store, tx, s.next)
}
