package jointaccount

import (
	"strconv"
	"strings"
	"time"

	"github.com/iov-one/coledger"
)

// AccountCreatedEvent is emitted when a new account is created.
type AccountCreatedEvent struct {
	Owners    []coledger.Address
	AccountID uint64
	Timestamp time.Time
}

var _ coledger.Event = AccountCreatedEvent{}

func (AccountCreatedEvent) Kind() string { return "account_created" }

func (e AccountCreatedEvent) Attributes() []coledger.Attribute {
	owners := make([]string, len(e.Owners))
	for i, o := range e.Owners {
		owners[i] = o.String()
	}
	return []coledger.Attribute{
		{Key: "owners", Value: strings.Join(owners, ",")},
		{Key: "account_id", Value: formatID(e.AccountID)},
		{Key: "timestamp", Value: formatTime(e.Timestamp)},
	}
}

// WithdrawRequestedEvent is emitted when an owner requests a withdrawal.
type WithdrawRequestedEvent struct {
	Requester  coledger.Address
	AccountID  uint64
	WithdrawID uint64
	Amount     uint64
	Timestamp  time.Time
}

var _ coledger.Event = WithdrawRequestedEvent{}

func (WithdrawRequestedEvent) Kind() string { return "withdraw_requested" }

func (e WithdrawRequestedEvent) Attributes() []coledger.Attribute {
	return []coledger.Attribute{
		{Key: "requester", Value: e.Requester.String()},
		{Key: "account_id", Value: formatID(e.AccountID)},
		{Key: "withdraw_id", Value: formatID(e.WithdrawID)},
		{Key: "amount", Value: formatID(e.Amount)},
		{Key: "timestamp", Value: formatTime(e.Timestamp)},
	}
}

// WithdrawExecutedEvent is emitted when a withdraw request is executed.
type WithdrawExecutedEvent struct {
	WithdrawID uint64
	AccountID  uint64
	Timestamp  time.Time
}

var _ coledger.Event = WithdrawExecutedEvent{}

func (WithdrawExecutedEvent) Kind() string { return "withdraw_executed" }

func (e WithdrawExecutedEvent) Attributes() []coledger.Attribute {
	return []coledger.Attribute{
		{Key: "withdraw_id", Value: formatID(e.WithdrawID)},
		{Key: "account_id", Value: formatID(e.AccountID)},
		{Key: "timestamp", Value: formatTime(e.Timestamp)},
	}
}

func formatID(n uint64) string {
	return strconv.FormatUint(n, 10)
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}
