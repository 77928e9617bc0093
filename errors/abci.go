package errors

import (
	"errors"
	"fmt"
)

const (
	// SuccessABCICode declares an ABCI response use 0 to signal that the
	// processing was successful and no error is returned.
	SuccessABCICode = 0

	// All errors that do not provide an ABCI code are reported under an
	// internal code and a generic message.
	internalABCICode uint32 = 1
	internalABCILog         = "internal error"
)

// ABCIInfo returns the ABCI error information as consumed by the tendermint
// client. Returned code and log message should be used as an ABCI response.
//
// When not running in a debug mode all messages of errors that do not provide
// ABCICode information are replaced with generic "internal error". Panics
// are always reported as internal errors unless in debug mode.
func ABCIInfo(err error, debug bool) (uint32, string) {
	if errIsNil(err) {
		return SuccessABCICode, ""
	}

	code := abciCode(err)
	if debug {
		return code, fmt.Sprintf("%+v", err)
	}
	if code == internalABCICode || code == ErrPanic.code {
		return internalABCICode, internalABCILog
	}
	return code, err.Error()
}

type coder interface {
	ABCICode() uint32
}

// abciCode returns the ABCI code of the first error in the wrapping chain
// that provides one.
func abciCode(err error) uint32 {
	if errIsNil(err) {
		return SuccessABCICode
	}
	for {
		if c, ok := err.(coder); ok {
			return c.ABCICode()
		}
		if c, ok := err.(causer); ok {
			err = c.Cause()
		} else {
			return internalABCICode
		}
	}
}

// Redact replaces all errors that do not wrap a registered error, as well as
// panics, with a generic internal error instance.
//
// This is a no-operation function when running in debug mode.
func Redact(err error, debug bool) error {
	if debug || errIsNil(err) {
		return err
	}
	if ErrPanic.Is(err) || abciCode(err) == internalABCICode {
		return errors.New(internalABCILog)
	}
	return err
}

// ABCIError returns an error instance for given code and log, as found in
// an ABCI response. The registered root error is restored when the code is
// known, so that Is works on the client side as well.
func ABCIError(code uint32, log string) error {
	if code == SuccessABCICode {
		return nil
	}
	root, ok := usedCodes[code]
	if !ok {
		root = &Error{code: code, desc: "unknown error"}
	}
	return &remoteError{root: root, log: log}
}

// remoteError carries the log of a failed ABCI call. The log already
// contains the root error description.
type remoteError struct {
	root *Error
	log  string
}

func (e *remoteError) Error() string {
	if e.log == "" {
		return e.root.Error()
	}
	return e.log
}

func (e *remoteError) Cause() error {
	return e.root
}

func (e *remoteError) ABCICode() uint32 {
	return e.root.code
}
