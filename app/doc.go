/*
Package app assembles all ledger modules into a single Ledger.

The Ledger owns the store and processes one call at a time. Every call runs
through a chain of decorators, the innermost of which isolates its writes,
so that a rejected call leaves no trace in the store.
*/
package app
