/*
Package errors implements the error taxonomy of the ledger.

Every failure returned by an operation wraps one of the root errors declared
in this package. Root errors carry a stable numeric code, so a client can tell
apart a missing token from a failed signature check without parsing messages.

Wrap a root error at the point of failure to attach context and a stack trace:

	return errors.Wrapf(errors.ErrNotFound, "token %q", id)

and test for the class with the Is method:

	if errors.ErrNotFound.Is(err) { ... }

Use fmt "%+v" to print the full stack trace of an error created this way.

If an extension needs a custom class, use Register(code, description) during
program startup. Codes must be unique.
*/
package errors
