package jointaccount

import (
	"testing"

	"github.com/iov-one/coledger"
	"github.com/iov-one/coledger/coledgertest"
	"github.com/iov-one/coledger/errors"
	"github.com/iov-one/coledger/orm"
	"github.com/iov-one/coledger/store"
	"github.com/iov-one/coledger/x/cash"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueries(t *testing.T) {
	alice, bob, carol := coledgertest.NewAddress(), coledgertest.NewAddress(), coledgertest.NewAddress()

	db := store.MemStore()
	wallets := cash.NewController()
	require.NoError(t, wallets.IssueCoins(db, alice, 100))
	ctrl := NewController(wallets)
	id, err := ctrl.CreateAccount(db, alice, []coledger.Address{bob})
	require.NoError(t, err)
	require.NoError(t, ctrl.Deposit(db, alice, id, 60))
	wid, err := ctrl.RequestWithdraw(db, alice, id, 25)
	require.NoError(t, err)
	require.NoError(t, ctrl.ApproveWithdraw(db, bob, id, wid))

	qr := coledger.NewQueryRouter()
	RegisterQuery(qr, ctrl)

	withdrawKey := WithdrawKey(id, wid)

	cases := map[string]struct {
		path    string
		data    []byte
		want    interface{}
		wantErr *errors.Error
	}{
		"account": {
			path: "/accounts",
			data: orm.EncodeSequence(id),
			want: &Account{ID: id, Owners: []coledger.Address{alice, bob}, Balance: 60},
		},
		"unknown account": {
			path:    "/accounts",
			data:    orm.EncodeSequence(9),
			wantErr: errors.ErrNotFound,
		},
		"malformed account id": {
			path:    "/accounts",
			data:    []byte{1, 2},
			wantErr: errors.ErrInput,
		},
		"balance": {
			path: "/accounts/balance",
			data: orm.EncodeSequence(id),
			want: uint64(60),
		},
		"owners": {
			path: "/accounts/owners",
			data: orm.EncodeSequence(id),
			want: []coledger.Address{alice, bob},
		},
		"user accounts": {
			path: "/useraccounts",
			data: bob,
			want: []uint64{id},
		},
		"user without accounts": {
			path: "/useraccounts",
			data: carol,
			want: []uint64{},
		},
		"withdraw request": {
			path: "/withdraws",
			data: withdrawKey,
			want: &WithdrawRequest{
				AccountID: id,
				ID:        wid,
				Requester: alice,
				Amount:    25,
				Approvals: []coledger.Address{bob},
			},
		},
		"unknown withdraw request": {
			path:    "/withdraws",
			data:    WithdrawKey(id, 3),
			wantErr: ErrUnknownRequest,
		},
		"approval count": {
			path: "/withdraws/approvals",
			data: withdrawKey,
			want: uint64(1),
		},
		"approved by bob": {
			path: "/withdraws/approved",
			data: append(append([]byte{}, withdrawKey...), bob...),
			want: true,
		},
		"not approved by alice": {
			path: "/withdraws/approved",
			data: append(append([]byte{}, withdrawKey...), alice...),
			want: false,
		},
		"approved without address": {
			path:    "/withdraws/approved",
			data:    withdrawKey,
			wantErr: errors.ErrInput,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			h := qr.Handler(tc.path)
			require.NotNil(t, h, "no handler for %q", tc.path)

			res, err := h.Query(db, tc.data)
			if tc.wantErr != nil {
				assert.True(t, tc.wantErr.Is(err), "want %q, got %+v", tc.wantErr, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, res)
		})
	}
}
