package jointaccount

import (
	"encoding/json"
	"testing"

	"github.com/iov-one/coledger"
	"github.com/iov-one/coledger/errors"
	"github.com/iov-one/coledger/store"
	"github.com/iov-one/coledger/x/cash"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenesis(t *testing.T) {
	const genesis = `{
		"jointaccount": [
			{
				"owners": [
					"1111111111111111111111111111111111111111",
					"hex:2222222222222222222222222222222222222222"
				],
				"balance": 70
			},
			{
				"owners": ["2222222222222222222222222222222222222222"]
			}
		]
	}`
	var opts coledger.Options
	require.NoError(t, json.Unmarshal([]byte(genesis), &opts))

	db := store.MemStore()
	wallets := cash.NewController()
	require.NoError(t, (&Initializer{Cash: wallets}).FromGenesis(opts, db))

	first, err := coledger.ParseAddress("1111111111111111111111111111111111111111")
	require.NoError(t, err)
	second, err := coledger.ParseAddress("2222222222222222222222222222222222222222")
	require.NoError(t, err)

	ctrl := NewController(wallets)
	owners, err := ctrl.Owners(db, 0)
	require.NoError(t, err)
	assert.Equal(t, []coledger.Address{first, second}, owners)

	balance, err := ctrl.Balance(db, first, 0)
	require.NoError(t, err)
	assert.EqualValues(t, 70, balance)
	escrow, err := wallets.Balance(db, Condition(0).Address())
	require.NoError(t, err)
	assert.EqualValues(t, 70, escrow)

	ids, err := ctrl.UserAccounts(db, second)
	require.NoError(t, err)
	assert.Equal(t, []uint64{0, 1}, ids)

	// sequence continues after genesis accounts
	id, err := ctrl.CreateAccount(db, first, nil)
	require.NoError(t, err)
	assert.EqualValues(t, 2, id)
}

func TestGenesisRejectsInvalidAccounts(t *testing.T) {
	cases := map[string]struct {
		raw     string
		wantErr *errors.Error
	}{
		"no owners": {
			raw:     `[{"owners": [], "balance": 1}]`,
			wantErr: errors.ErrEmpty,
		},
		"duplicated owner": {
			raw: `[{"owners": [
				"1111111111111111111111111111111111111111",
				"1111111111111111111111111111111111111111"
			]}]`,
			wantErr: ErrDuplicateOwner,
		},
		"too many owners": {
			raw: `[{"owners": [
				"1111111111111111111111111111111111111111",
				"2222222222222222222222222222222222222222",
				"3333333333333333333333333333333333333333",
				"4444444444444444444444444444444444444444"
			]}]`,
			wantErr: ErrTooManyOwners,
		},
		"malformed": {
			raw:     `{"owners": 1}`,
			wantErr: errors.ErrInput,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			opts := coledger.Options{optKey: json.RawMessage(tc.raw)}
			err := (&Initializer{Cash: cash.NewController()}).FromGenesis(opts, store.MemStore())
			assert.True(t, tc.wantErr.Is(err), "want %q, got %+v", tc.wantErr, err)
		})
	}
}

func TestGenesisMissingKey(t *testing.T) {
	err := (&Initializer{Cash: cash.NewController()}).FromGenesis(coledger.Options{}, store.MemStore())
	assert.NoError(t, err)
}
