package jointaccount

import "github.com/iov-one/coledger/errors"

var (
	ErrTooManyOwners         = errors.Register(1100, "too many owners")
	ErrDuplicateOwner        = errors.Register(1101, "you can't have duplicated owners")
	ErrTooManyAccounts       = errors.Register(1102, "too many accounts")
	ErrNotOwner              = errors.Register(1103, "not an owner")
	ErrInsufficientFunds     = errors.Register(1104, "insufficient funds")
	ErrSelfApproval          = errors.Register(1105, "requester cannot approve own request")
	ErrUnknownRequest        = errors.Register(1106, "unknown withdraw request")
	ErrAlreadyExecuted       = errors.Register(1107, "withdraw request already executed")
	ErrAlreadyApproved       = errors.Register(1108, "withdraw request already approved")
	ErrNotRequester          = errors.Register(1109, "not the requester")
	ErrInsufficientApprovals = errors.Register(1110, "insufficient approvals")
)
