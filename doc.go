/*
Package nftseries defines the common interfaces of a series-scoped token
ledger, together with the few types every extension shares: account
identifiers, event records and the execution context.

A ledger keeps series of tokens, the tokens minted from them and an index of
who owns what. Every operation runs against its own cache wrap of the store
and is either written as a whole or discarded, so a failing operation never
leaves a partial change behind.

We pass context through context.Context between the dispatcher and the
handlers. There exist two functions for every XYZ of type T that we want to
support in Context:

  WithXYZ(Context, T) Context
  GetXYZ(Context) (val T, ok bool)

WithXYZ panics if the value was previously set, to avoid lower-level modules
overwriting the value (eg. the caller).
*/
package nftseries
