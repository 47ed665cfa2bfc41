/*
Package series implements the series registry.

A series is a collection of tokens that share metadata and, optionally, an
edition cap. Series are created by approved creators and are never deleted.
The package also keeps the ledger configuration and the approved creator and
minter role sets.
*/
package series
