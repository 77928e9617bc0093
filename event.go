package coledger

// Event is a notification emitted by a handler after a successful state
// transition. Events are observational only and never read back by the
// ledger.
type Event interface {
	// Kind is the name of the event, for example "account_created".
	Kind() string

	// Attributes returns the event payload as key value pairs.
	Attributes() []Attribute
}

// Attribute is a single key value pair of an Event.
type Attribute struct {
	Key   string
	Value string
}
