package utils

import (
	"context"
	"testing"

	"github.com/iov-one/coledger/coledgertest"
	"github.com/iov-one/coledger/errors"
	"github.com/iov-one/coledger/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSavepoint(t *testing.T) {
	key, value := []byte("jointacc:0"), []byte("balance")

	cases := map[string]struct {
		decorator Savepoint
		check     bool
		err       *errors.Error
		wantKey   bool
	}{
		"deliver success is written": {
			decorator: NewSavepoint().OnDeliver(),
			wantKey:   true,
		},
		"deliver failure is rolled back": {
			decorator: NewSavepoint().OnDeliver(),
			err:       errors.ErrInsufficientAmount,
			wantKey:   false,
		},
		"deliver failure without savepoint is not rolled back": {
			decorator: NewSavepoint().OnCheck(),
			err:       errors.ErrInsufficientAmount,
			wantKey:   true,
		},
		"check success is written": {
			decorator: NewSavepoint().OnCheck(),
			check:     true,
			wantKey:   true,
		},
		"check failure is rolled back": {
			decorator: NewSavepoint().OnCheck(),
			check:     true,
			err:       errors.ErrNotFound,
			wantKey:   false,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			db := store.MemStore()
			h := &coledgertest.Handler{
				Write: &coledgertest.Write{Key: key, Value: value},
			}
			if tc.err != nil {
				h.CheckErr = tc.err
				h.DeliverErr = tc.err
			}
			ctx := context.Background()
			tx := &coledgertest.Tx{}

			var err error
			if tc.check {
				_, err = tc.decorator.Check(ctx, db, tx, h)
			} else {
				_, err = tc.decorator.Deliver(ctx, db, tx, h)
			}
			if tc.err != nil {
				assert.True(t, tc.err.Is(err))
			} else {
				require.NoError(t, err)
			}

			has, err := db.Has(key)
			require.NoError(t, err)
			assert.Equal(t, tc.wantKey, has)
		})
	}
}
