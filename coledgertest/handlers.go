package coledgertest

import "github.com/iov-one/coledger"

// Handler is a mock implementation of the coledger.Handler interface. It
// counts calls and returns the configured results.
type Handler struct {
	checkCall   int
	CheckResult coledger.CheckResult
	CheckErr    error

	deliverCall   int
	DeliverResult coledger.DeliverResult
	DeliverErr    error

	// Write if set is stored in the database on every call, before an
	// error is returned. Use it to test rollbacks.
	Write *Write
}

// Write is a single key value pair written by the Handler mock.
type Write struct {
	Key, Value []byte
}

var _ coledger.Handler = (*Handler)(nil)

func (h *Handler) Check(ctx coledger.Context, db coledger.KVStore, tx coledger.Tx) (*coledger.CheckResult, error) {
	h.checkCall++
	if h.Write != nil {
		if err := db.Set(h.Write.Key, h.Write.Value); err != nil {
			return nil, err
		}
	}
	if h.CheckErr != nil {
		return nil, h.CheckErr
	}
	res := h.CheckResult
	return &res, nil
}

func (h *Handler) Deliver(ctx coledger.Context, db coledger.KVStore, tx coledger.Tx) (*coledger.DeliverResult, error) {
	h.deliverCall++
	if h.Write != nil {
		if err := db.Set(h.Write.Key, h.Write.Value); err != nil {
			return nil, err
		}
	}
	if h.DeliverErr != nil {
		return nil, h.DeliverErr
	}
	res := h.DeliverResult
	return &res, nil
}

func (h *Handler) CheckCallCount() int {
	return h.checkCall
}

func (h *Handler) DeliverCallCount() int {
	return h.deliverCall
}

func (h *Handler) CallCount() int {
	return h.checkCall + h.deliverCall
}

// Decorator is a mock implementation of the coledger.Decorator interface.
//
// Set CheckErr or DeliverErr to force error response for corresponding
// method. If error attributes are not set then wrapped handler method is
// called and its result returned.
type Decorator struct {
	checkCall int
	CheckErr  error

	deliverCall int
	DeliverErr  error
}

var _ coledger.Decorator = (*Decorator)(nil)

func (d *Decorator) Check(ctx coledger.Context, db coledger.KVStore, tx coledger.Tx, next coledger.Checker) (*coledger.CheckResult, error) {
	d.checkCall++
	if d.CheckErr != nil {
		return nil, d.CheckErr
	}
	return next.Check(ctx, db, tx)
}

func (d *Decorator) Deliver(ctx coledger.Context, db coledger.KVStore, tx coledger.Tx, next coledger.Deliverer) (*coledger.DeliverResult, error) {
	d.deliverCall++
	if d.DeliverErr != nil {
		return nil, d.DeliverErr
	}
	return next.Deliver(ctx, db, tx)
}

func (d *Decorator) CallCount() int {
	return d.checkCall + d.deliverCall
}

// Decorate returns a handler that calls the decorator first.
func Decorate(h coledger.Handler, d coledger.Decorator) coledger.Handler {
	return &decoratedHandler{hn: h, dc: d}
}

type decoratedHandler struct {
	hn coledger.Handler
	dc coledger.Decorator
}

func (d *decoratedHandler) Check(ctx coledger.Context, db coledger.KVStore, tx coledger.Tx) (*coledger.CheckResult, error) {
	return d.dc.Check(ctx, db, tx, d.hn)
}

func (d *decoratedHandler) Deliver(ctx coledger.Context, db coledger.KVStore, tx coledger.Tx) (*coledger.DeliverResult, error) {
	return d.dc.Deliver(ctx, db, tx, d.hn)
}

// Tx represents a transaction holding a single message.
type Tx struct {
	Msg coledger.Msg
	// Err if set is returned by GetMsg.
	Err error
}

var _ coledger.Tx = (*Tx)(nil)

func (tx *Tx) GetMsg() (coledger.Msg, error) {
	return tx.Msg, tx.Err
}

// Msg is a message mock routed by its path.
type Msg struct {
	RoutePath string
	Err       error
}

var _ coledger.Msg = (*Msg)(nil)

func (m *Msg) Path() string {
	return m.RoutePath
}

func (m *Msg) Validate() error {
	return m.Err
}
