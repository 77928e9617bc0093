package main

import (
	"bytes"
	"io"
	"testing"

	"github.com/iov-one/coledger"
	"github.com/iov-one/coledger/coledgertest/assert"
	"github.com/iov-one/coledger/x/jointaccount"
)

func TestJointAccountCommands(t *testing.T) {
	bert, err := coledger.ParseAddress("b1ca7e78f74423ae01da3b51e676934d9105f282")
	assert.Nil(t, err)
	carl, err := coledger.ParseAddress("E28AE9A6EB94FC88B73EB7CBD6B87BF93EB9BEF0")
	assert.Nil(t, err)

	cases := map[string]struct {
		cmd     func(input io.Reader, output io.Writer, args []string) error
		args    []string
		wantMsg coledger.Msg
	}{
		"create account": {
			cmd:     cmdCreateAccount,
			args:    []string{"-owners", "b1ca7e78f74423ae01da3b51e676934d9105f282, E28AE9A6EB94FC88B73EB7CBD6B87BF93EB9BEF0"},
			wantMsg: &jointaccount.CreateAccountMsg{OtherOwners: []coledger.Address{bert, carl}},
		},
		"deposit": {
			cmd:     cmdDeposit,
			args:    []string{"-account", "3", "-amount", "120"},
			wantMsg: &jointaccount.DepositMsg{AccountID: 3, Amount: 120},
		},
		"request withdraw": {
			cmd:     cmdRequestWithdraw,
			args:    []string{"-account", "3", "-amount", "50"},
			wantMsg: &jointaccount.RequestWithdrawMsg{AccountID: 3, Amount: 50},
		},
		"approve withdraw": {
			cmd:     cmdApproveWithdraw,
			args:    []string{"-account", "3", "-withdraw", "1"},
			wantMsg: &jointaccount.ApproveWithdrawMsg{AccountID: 3, WithdrawID: 1},
		},
		"withdraw": {
			cmd:     cmdWithdraw,
			args:    []string{"-account", "3", "-withdraw", "1"},
			wantMsg: &jointaccount.WithdrawMsg{AccountID: 3, WithdrawID: 1},
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			var output bytes.Buffer
			if err := tc.cmd(nil, &output, tc.args); err != nil {
				t.Fatalf("cannot create transaction: %s", err)
			}
			tx, _, err := readTx(&output)
			if err != nil {
				t.Fatalf("cannot unmarshal created transaction: %s", err)
			}
			msg, err := tx.GetMsg()
			assert.Nil(t, err)
			assert.Equal(t, tc.wantMsg, msg)
			assert.Nil(t, msg.Validate())
		})
	}
}
