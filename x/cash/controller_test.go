package cash

import (
	"math"
	"testing"

	"github.com/iov-one/coledger/coledgertest"
	"github.com/iov-one/coledger/errors"
	"github.com/iov-one/coledger/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssueAndMoveCoins(t *testing.T) {
	db := store.MemStore()
	ctrl := NewController()
	a, b := coledgertest.NewAddress(), coledgertest.NewAddress()

	balance, err := ctrl.Balance(db, a)
	require.NoError(t, err)
	assert.Equal(t, uint64(0), balance)

	require.NoError(t, ctrl.IssueCoins(db, a, 100))
	require.NoError(t, ctrl.MoveCoins(db, a, b, 30))

	balance, err = ctrl.Balance(db, a)
	require.NoError(t, err)
	assert.Equal(t, uint64(70), balance)
	balance, err = ctrl.Balance(db, b)
	require.NoError(t, err)
	assert.Equal(t, uint64(30), balance)

	require.NoError(t, ctrl.BurnCoins(db, b, 30))
	balance, err = ctrl.Balance(db, b)
	require.NoError(t, err)
	assert.Equal(t, uint64(0), balance)
}

func TestMoveCoinsFailures(t *testing.T) {
	a, b := coledgertest.NewAddress(), coledgertest.NewAddress()

	cases := map[string]struct {
		issueA  uint64
		issueB  uint64
		move    uint64
		wantErr *errors.Error
		wantA   uint64
		wantB   uint64
	}{
		"insufficient funds": {
			issueA:  10,
			move:    11,
			wantErr: errors.ErrInsufficientAmount,
			wantA:   10,
		},
		"recipient overflow": {
			issueA:  10,
			issueB:  math.MaxUint64,
			move:    1,
			wantErr: errors.ErrOverflow,
			wantA:   10,
			wantB:   math.MaxUint64,
		},
		"zero move is a noop": {
			move: 0,
		},
		"whole balance": {
			issueA: 5,
			move:   5,
			wantB:  5,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			db := store.MemStore()
			ctrl := NewController()
			require.NoError(t, ctrl.IssueCoins(db, a, tc.issueA))
			require.NoError(t, ctrl.IssueCoins(db, b, tc.issueB))

			err := ctrl.MoveCoins(db, a, b, tc.move)
			if tc.wantErr != nil {
				assert.True(t, tc.wantErr.Is(err), "got %+v", err)
			} else {
				assert.NoError(t, err)
			}

			got, err := ctrl.Balance(db, a)
			require.NoError(t, err)
			assert.Equal(t, tc.wantA, got)
			got, err = ctrl.Balance(db, b)
			require.NoError(t, err)
			assert.Equal(t, tc.wantB, got)
		})
	}
}

func TestIssueCoinsOverflow(t *testing.T) {
	db := store.MemStore()
	ctrl := NewController()
	a := coledgertest.NewAddress()

	require.NoError(t, ctrl.IssueCoins(db, a, math.MaxUint64))
	err := ctrl.IssueCoins(db, a, 1)
	assert.True(t, errors.ErrOverflow.Is(err))
	assert.True(t, errors.ErrInput.Is(ctrl.IssueCoins(db, nil, 1)))
}
