/*
Package transfer implements moving tokens between accounts.

A token may be moved by its owner, by a relayer presenting the owner
signature, or by an account the token approves. Moving a token clears all of
its approvals.
*/
package transfer
