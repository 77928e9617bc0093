/*
Package coledger defines the common interfaces used to tie together the
ledger extensions, the store and the ABCI host application, as well as
implementations of some of the simpler components (addresses, conditions,
context helpers).

We pass context through context.Context between app, middleware, and
handlers. coledger defines keys for the block height, block time, chain id
and logger. Extensions, such as x/sigs, add their own keys.

There exist two functions for every XYZ of type T that we want to support
in Context:

  WithXYZ(Context, T) Context
  GetXYZ(Context) (val T, ok bool)

WithXYZ panics if the value was previously set, so that lower level modules
cannot overwrite it.
*/
package coledger
