/*
Package crypto implements the ed25519 keys used to authorize ledger
operations, and the textual encodings these keys travel in.

Public keys are exchanged as base58 strings, optionally prefixed with the
"ed25519:" curve name. Signatures are the raw 64 byte ed25519 signatures.
*/
package crypto
