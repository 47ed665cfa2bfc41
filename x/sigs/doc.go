/*
Package sigs implements delegated authorization.

An account may act either by being the immediate caller of an operation, or
through a relayer that presents a one-time signature. Each account has a
nonce, starting at zero. A signature authorizes exactly one action: it is
created over sha256 of the decimal form of the next nonce value and it is
invalidated as soon as the nonce advances.

The identity acting is resolved once, by Authorize, and the nonce is always
read and advanced for that same identity.
*/
package sigs
