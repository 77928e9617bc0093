/*
Package errors implements the error model used across coledger.

Every failure returned to a client wraps one of the root errors declared
with Register. A root error carries an ABCI code, so clients can tell the
kind of a failure apart without parsing messages:

	var ErrNotOwner = errors.Register(1103, "not an owner")

	return errors.Wrapf(ErrNotOwner, "account %d", id)

Use Is to test the kind of an error, no matter how many times it was
wrapped:

	if ErrNotOwner.Is(err) { ... }

The most inner Wrap attaches a stack trace. Format an error with %+v to
print it.
*/
package errors
