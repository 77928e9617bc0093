package orm

import (
	amino "github.com/tendermint/go-amino"

	"github.com/iov-one/coledger/errors"
)

// Model is implemented by any entity that can be stored using ModelBucket.
type Model interface {
	// Validate returns an error if the model is not in a state that can
	// be persisted.
	Validate() error
}

var cdc = amino.NewCodec()

// Marshal serializes given model using the amino binary encoding.
func Marshal(m Model) ([]byte, error) {
	raw, err := cdc.MarshalBinaryBare(m)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrModel, "cannot marshal %T: %s", m, err)
	}
	return raw, nil
}

// Unmarshal deserializes raw data into given model. Model must be a
// pointer.
func Unmarshal(raw []byte, m Model) error {
	if err := cdc.UnmarshalBinaryBare(raw, m); err != nil {
		return errors.Wrapf(errors.ErrModel, "cannot unmarshal %T: %s", m, err)
	}
	return nil
}
