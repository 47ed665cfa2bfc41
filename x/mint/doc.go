/*
Package mint implements minting of series tokens.

Exactly one gate applies to a series. A series with a price is open: anyone
can mint by attaching a deposit that covers the price of all minted
editions. Tokens of a series without a price are minted either by an
approved minter calling directly, or by a relayer presenting a signature of
the ledger owner key over the next nonce of the receiver.
*/
package mint
