package cash

import (
	amino "github.com/tendermint/go-amino"

	"github.com/iov-one/coledger"
	"github.com/iov-one/coledger/errors"
)

const maxMemoSize = 128

// RegisterCodec registers the messages of this extension with the
// transaction codec.
func RegisterCodec(cdc *amino.Codec) {
	cdc.RegisterConcrete(&SendMsg{}, "cash/send", nil)
}

// SendMsg moves funds from the source wallet to the destination wallet. The
// source must sign the transaction.
type SendMsg struct {
	Source      coledger.Address `json:"source"`
	Destination coledger.Address `json:"destination"`
	Amount      uint64           `json:"amount"`
	Memo        string           `json:"memo,omitempty"`
}

var _ coledger.Msg = (*SendMsg)(nil)

// Path returns the routing path for this message.
func (SendMsg) Path() string {
	return "cash/send"
}

// Validate makes sure that this is sensible.
func (m SendMsg) Validate() error {
	if err := m.Source.Validate(); err != nil {
		return errors.Wrap(err, "source")
	}
	if err := m.Destination.Validate(); err != nil {
		return errors.Wrap(err, "destination")
	}
	if m.Amount == 0 {
		return errors.Wrap(errors.ErrAmount, "amount must be positive")
	}
	if len(m.Memo) > maxMemoSize {
		return errors.Wrapf(errors.ErrInput, "memo too long: %d", len(m.Memo))
	}
	return nil
}
