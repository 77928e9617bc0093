package commands

import (
	"io/ioutil"
	"os"
	"path/filepath"

	"github.com/iov-one/coledger/errors"
	amino "github.com/tendermint/go-amino"
)

// Example will be written out to a file, .json and .bin
// Filename should have no path and no extension.
type Example struct {
	Filename string
	Obj      interface{}
}

// TestGenCmd generates sample binary and json encodings of various objects
// to test clients against.
func TestGenCmd(cdc *amino.Codec, examples []Example, args []string) error {
	outdir := "testdata"
	if len(args) > 0 {
		outdir = args[0]
	}
	if err := os.MkdirAll(outdir, 0755); err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}

	for _, ex := range examples {
		js, err := cdc.MarshalJSONIndent(ex.Obj, "", "  ")
		if err != nil {
			return errors.Wrapf(errors.ErrInput, "%s json: %s", ex.Filename, err)
		}
		if err := ioutil.WriteFile(filepath.Join(outdir, ex.Filename+".json"), js, 0644); err != nil {
			return errors.Wrap(errors.ErrInput, err.Error())
		}

		bin, err := cdc.MarshalBinaryBare(ex.Obj)
		if err != nil {
			return errors.Wrapf(errors.ErrInput, "%s binary: %s", ex.Filename, err)
		}
		if err := ioutil.WriteFile(filepath.Join(outdir, ex.Filename+".bin"), bin, 0644); err != nil {
			return errors.Wrap(errors.ErrInput, err.Error())
		}
	}
	return nil
}
