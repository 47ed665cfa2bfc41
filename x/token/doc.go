/*
Package token implements the token store and the owner index.

Tokens are stored under a key built from the series id and the edition, both
big endian encoded, so listings are ordered numerically. The owner index is
kept as secondary indexes of the token bucket, and supply counters are kept
for the whole ledger, each owner, each series and each owner within a
series. Every function that changes a token updates all of them together.
*/
package token
