package jointaccount

import (
	"math"
	"testing"

	"github.com/iov-one/coledger"
	"github.com/iov-one/coledger/coledgertest"
	"github.com/iov-one/coledger/errors"
	"github.com/iov-one/coledger/store"
	"github.com/iov-one/coledger/x/cash"
	. "github.com/smartystreets/goconvey/convey"
)

// fixture funds every given principal with 1000 in its wallet.
func fixture(t testing.TB, principals ...coledger.Address) (coledger.CacheableKVStore, *Controller, cash.Controller) {
	t.Helper()
	db := store.MemStore()
	wallets := cash.NewController()
	for _, p := range principals {
		if err := wallets.IssueCoins(db, p, 1000); err != nil {
			t.Fatalf("cannot fund %s: %s", p, err)
		}
	}
	return db, NewController(wallets), wallets
}

func isErr(want *errors.Error) func(interface{}, ...interface{}) string {
	return func(actual interface{}, _ ...interface{}) string {
		err, _ := actual.(error)
		if want.Is(err) {
			return ""
		}
		return "want " + want.Error() + " error, got " + errString(err)
	}
}

func errString(err error) string {
	if err == nil {
		return "no error"
	}
	return err.Error()
}

func TestTwoOwnerWithdrawal(t *testing.T) {
	a, b := coledgertest.NewAddress(), coledgertest.NewAddress()

	Convey("Given an account owned by A and B", t, func() {
		db, ctrl, wallets := fixture(t, a, b)
		id, err := ctrl.CreateAccount(db, a, []coledger.Address{b})
		So(err, ShouldBeNil)
		So(id, ShouldEqual, 0)

		owners, err := ctrl.Owners(db, id)
		So(err, ShouldBeNil)
		So(owners, ShouldResemble, []coledger.Address{a, b})

		Convey("When A deposits 100 and requests all of it", func() {
			So(ctrl.Deposit(db, a, id, 100), ShouldBeNil)
			wid, err := ctrl.RequestWithdraw(db, a, id, 100)
			So(err, ShouldBeNil)
			So(wid, ShouldEqual, 0)

			balance, err := ctrl.Balance(db, a, id)
			So(err, ShouldBeNil)
			So(balance, ShouldEqual, 100)

			Convey("A cannot execute before B approves", func() {
				err := ctrl.WithdrawAmount(db, a, wid, id)
				So(err, isErr(ErrInsufficientApprovals))
			})

			Convey("And B approves", func() {
				So(ctrl.ApproveWithdraw(db, b, id, wid), ShouldBeNil)

				n, err := ctrl.ApprovalCount(db, id, wid)
				So(err, ShouldBeNil)
				So(n, ShouldEqual, 1)
				approved, err := ctrl.HasApproved(db, b, id, wid)
				So(err, ShouldBeNil)
				So(approved, ShouldBeTrue)
				approved, err = ctrl.HasApproved(db, a, id, wid)
				So(err, ShouldBeNil)
				So(approved, ShouldBeFalse)

				Convey("B cannot approve twice", func() {
					err := ctrl.ApproveWithdraw(db, b, id, wid)
					So(err, isErr(ErrAlreadyApproved))
				})

				Convey("B cannot execute the request of A", func() {
					err := ctrl.WithdrawAmount(db, b, wid, id)
					So(err, isErr(ErrNotRequester))
				})

				Convey("A executes the withdrawal", func() {
					So(ctrl.WithdrawAmount(db, a, wid, id), ShouldBeNil)

					balance, err := ctrl.RawBalance(db, id)
					So(err, ShouldBeNil)
					So(balance, ShouldEqual, 0)

					wallet, err := wallets.Balance(db, a)
					So(err, ShouldBeNil)
					So(wallet, ShouldEqual, 1000)

					w, err := ctrl.WithdrawRequest(db, id, wid)
					So(err, ShouldBeNil)
					So(w.Executed, ShouldBeTrue)

					Convey("A second execution fails for anyone", func() {
						So(ctrl.WithdrawAmount(db, a, wid, id), isErr(ErrAlreadyExecuted))
						So(ctrl.WithdrawAmount(db, b, wid, id), isErr(ErrAlreadyExecuted))
					})

					Convey("The requester check comes before the executed check", func() {
						So(ctrl.ApproveWithdraw(db, a, id, wid), isErr(ErrSelfApproval))
					})
				})
			})
		})
	})
}

func TestNonOwnerIsRejected(t *testing.T) {
	a, b := coledgertest.NewAddress(), coledgertest.NewAddress()

	Convey("Given an account owned by A only", t, func() {
		db, ctrl, wallets := fixture(t, a, b)
		id, err := ctrl.CreateAccount(db, a, nil)
		So(err, ShouldBeNil)
		So(ctrl.Deposit(db, a, id, 10), ShouldBeNil)

		Convey("B cannot deposit", func() {
			So(ctrl.Deposit(db, b, id, 50), isErr(ErrNotOwner))

			wallet, err := wallets.Balance(db, b)
			So(err, ShouldBeNil)
			So(wallet, ShouldEqual, 1000)
		})

		Convey("B cannot request a withdrawal", func() {
			_, err := ctrl.RequestWithdraw(db, b, id, 5)
			So(err, isErr(ErrNotOwner))
		})

		Convey("B cannot see the balance but anyone can see the raw balance", func() {
			_, err := ctrl.Balance(db, b, id)
			So(err, isErr(ErrNotOwner))

			balance, err := ctrl.RawBalance(db, id)
			So(err, ShouldBeNil)
			So(balance, ShouldEqual, 10)
		})

		Convey("A single owner can never have a request approved", func() {
			wid, err := ctrl.RequestWithdraw(db, a, id, 10)
			So(err, ShouldBeNil)
			So(ctrl.ApproveWithdraw(db, a, id, wid), isErr(ErrSelfApproval))
			So(ctrl.ApproveWithdraw(db, b, id, wid), isErr(ErrNotOwner))
			So(ctrl.WithdrawAmount(db, a, wid, id), isErr(ErrInsufficientApprovals))
		})
	})
}

func TestThreeOwnerWithdrawal(t *testing.T) {
	a, b, c := coledgertest.NewAddress(), coledgertest.NewAddress(), coledgertest.NewAddress()

	Convey("Given an account owned by A, B and C holding 80", t, func() {
		db, ctrl, _ := fixture(t, a, b, c)
		id, err := ctrl.CreateAccount(db, a, []coledger.Address{b, c})
		So(err, ShouldBeNil)
		So(ctrl.Deposit(db, c, id, 80), ShouldBeNil)

		Convey("A requests 50 and cannot approve it", func() {
			wid, err := ctrl.RequestWithdraw(db, a, id, 50)
			So(err, ShouldBeNil)
			So(ctrl.ApproveWithdraw(db, a, id, wid), isErr(ErrSelfApproval))

			Convey("A single approval of C is enough", func() {
				So(ctrl.ApproveWithdraw(db, c, id, wid), ShouldBeNil)
				So(ctrl.WithdrawAmount(db, a, wid, id), ShouldBeNil)

				balance, err := ctrl.RawBalance(db, id)
				So(err, ShouldBeNil)
				So(balance, ShouldEqual, 30)
			})

			Convey("The balance is checked again on execution", func() {
				wid2, err := ctrl.RequestWithdraw(db, b, id, 50)
				So(err, ShouldBeNil)
				So(ctrl.ApproveWithdraw(db, c, id, wid), ShouldBeNil)
				So(ctrl.ApproveWithdraw(db, a, id, wid2), ShouldBeNil)
				So(ctrl.WithdrawAmount(db, a, wid, id), ShouldBeNil)

				So(ctrl.WithdrawAmount(db, b, wid2, id), isErr(ErrInsufficientFunds))

				w, err := ctrl.WithdrawRequest(db, id, wid2)
				So(err, ShouldBeNil)
				So(w.Executed, ShouldBeFalse)
			})
		})
	})
}

func TestCreateAccount(t *testing.T) {
	a, b, c, d := coledgertest.NewAddress(), coledgertest.NewAddress(), coledgertest.NewAddress(), coledgertest.NewAddress()

	cases := map[string]struct {
		caller  coledger.Address
		others  []coledger.Address
		wantErr *errors.Error
	}{
		"single owner": {
			caller: a,
		},
		"three owners": {
			caller: a,
			others: []coledger.Address{b, c},
		},
		"four owners": {
			caller:  a,
			others:  []coledger.Address{b, c, d},
			wantErr: ErrTooManyOwners,
		},
		"four owners with a duplicate": {
			caller:  a,
			others:  []coledger.Address{b, b, c},
			wantErr: ErrTooManyOwners,
		},
		"caller listed again": {
			caller:  a,
			others:  []coledger.Address{a},
			wantErr: ErrDuplicateOwner,
		},
		"other owner listed twice": {
			caller:  a,
			others:  []coledger.Address{b, b},
			wantErr: ErrDuplicateOwner,
		},
		"invalid owner address": {
			caller:  a,
			others:  []coledger.Address{coledger.Address("short")},
			wantErr: errors.ErrInput,
		},
		"missing caller": {
			caller:  nil,
			wantErr: errors.ErrInput,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			db, ctrl, _ := fixture(t)
			err := ctrl.ValidateCreateAccount(db, tc.caller, tc.others)
			if tc.wantErr != nil && !tc.wantErr.Is(err) {
				t.Fatalf("validate: want %q, got %+v", tc.wantErr, err)
			}

			id, err := ctrl.CreateAccount(db, tc.caller, tc.others)
			if tc.wantErr != nil {
				if !tc.wantErr.Is(err) {
					t.Fatalf("want %q, got %+v", tc.wantErr, err)
				}
				if ids, _ := ctrl.UserAccounts(db, a); len(ids) != 0 {
					t.Fatalf("owner index modified: %v", ids)
				}
				if _, err := ctrl.Account(db, 0); !errors.ErrNotFound.Is(err) {
					t.Fatalf("account created: %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %+v", err)
			}
			owners, err := ctrl.Owners(db, id)
			if err != nil {
				t.Fatalf("cannot load owners: %s", err)
			}
			for _, o := range owners {
				ids, err := ctrl.UserAccounts(db, o)
				if err != nil || len(ids) != 1 || ids[0] != id {
					t.Fatalf("owner %s index: %v, %v", o, ids, err)
				}
			}
		})
	}
}

func TestOwnerIndexCapacity(t *testing.T) {
	a, b := coledgertest.NewAddress(), coledgertest.NewAddress()
	db, ctrl, _ := fixture(t)

	for i := uint64(0); i < MaxUserAccounts; i++ {
		id, err := ctrl.CreateAccount(db, a, nil)
		if err != nil {
			t.Fatalf("account %d: %+v", i, err)
		}
		if id != i {
			t.Fatalf("want account id %d, got %d", i, id)
		}
	}

	// A fifth membership fails, also when A is not the creator.
	if _, err := ctrl.CreateAccount(db, a, nil); !ErrTooManyAccounts.Is(err) {
		t.Fatalf("want too many accounts, got %+v", err)
	}
	if _, err := ctrl.CreateAccount(db, b, []coledger.Address{a}); !ErrTooManyAccounts.Is(err) {
		t.Fatalf("want too many accounts, got %+v", err)
	}

	// B was not added anywhere by the failed attempt.
	ids, err := ctrl.UserAccounts(db, b)
	if err != nil {
		t.Fatalf("cannot load index: %s", err)
	}
	if len(ids) != 0 {
		t.Fatalf("want no accounts for B, got %v", ids)
	}

	ids, err = ctrl.UserAccounts(db, a)
	if err != nil {
		t.Fatalf("cannot load index: %s", err)
	}
	want := []uint64{0, 1, 2, 3}
	for i := range want {
		if ids[i] != want[i] {
			t.Fatalf("want %v, got %v", want, ids)
		}
	}
}

func TestDeposit(t *testing.T) {
	a, b := coledgertest.NewAddress(), coledgertest.NewAddress()

	cases := map[string]struct {
		caller      coledger.Address
		accountID   uint64
		amount      uint64
		initBalance uint64
		wantErr     *errors.Error
		wantBalance uint64
	}{
		"owner deposits": {
			caller:      a,
			amount:      300,
			wantBalance: 300,
		},
		"zero deposit changes nothing": {
			caller: a,
		},
		"unknown account": {
			caller:    a,
			accountID: 7,
			amount:    1,
			wantErr:   errors.ErrNotFound,
		},
		"not an owner": {
			caller:  b,
			amount:  1,
			wantErr: ErrNotOwner,
		},
		"wallet too small": {
			caller:  a,
			amount:  1001,
			wantErr: errors.ErrInsufficientAmount,
		},
		"balance overflow": {
			caller:      a,
			amount:      1,
			initBalance: math.MaxUint64,
			wantErr:     errors.ErrOverflow,
			wantBalance: math.MaxUint64,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			db, ctrl, _ := fixture(t, a, b)
			id, err := ctrl.CreateAccount(db, a, nil)
			if err != nil {
				t.Fatalf("cannot create account: %s", err)
			}
			if tc.initBalance > 0 {
				acc, _ := ctrl.Account(db, id)
				acc.Balance = tc.initBalance
				if err := accounts.Put(db, accountKey(id), acc); err != nil {
					t.Fatalf("cannot set balance: %s", err)
				}
			}

			err = ctrl.Deposit(db, tc.caller, tc.accountID, tc.amount)
			if tc.wantErr != nil {
				if !tc.wantErr.Is(err) {
					t.Fatalf("want %q, got %+v", tc.wantErr, err)
				}
			} else if err != nil {
				t.Fatalf("unexpected error: %+v", err)
			}

			balance, err := ctrl.RawBalance(db, id)
			if err != nil {
				t.Fatalf("cannot get balance: %s", err)
			}
			if balance != tc.wantBalance {
				t.Fatalf("want balance %d, got %d", tc.wantBalance, balance)
			}
		})
	}
}

func TestRequestWithdraw(t *testing.T) {
	a, b := coledgertest.NewAddress(), coledgertest.NewAddress()

	cases := map[string]struct {
		caller    coledger.Address
		accountID uint64
		amount    uint64
		wantErr   *errors.Error
	}{
		"whole balance": {
			caller: a,
			amount: 100,
		},
		"unknown account": {
			caller:    a,
			accountID: 3,
			amount:    1,
			wantErr:   errors.ErrNotFound,
		},
		"not an owner is checked before the amount": {
			caller:  b,
			amount:  0,
			wantErr: ErrNotOwner,
		},
		"zero amount": {
			caller:  a,
			amount:  0,
			wantErr: errors.ErrAmount,
		},
		"more than the balance": {
			caller:  a,
			amount:  101,
			wantErr: ErrInsufficientFunds,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			db, ctrl, _ := fixture(t, a, b)
			id, err := ctrl.CreateAccount(db, a, nil)
			if err != nil {
				t.Fatalf("cannot create account: %s", err)
			}
			if err := ctrl.Deposit(db, a, id, 100); err != nil {
				t.Fatalf("cannot deposit: %s", err)
			}

			wid, err := ctrl.RequestWithdraw(db, tc.caller, tc.accountID, tc.amount)
			if tc.wantErr != nil {
				if !tc.wantErr.Is(err) {
					t.Fatalf("want %q, got %+v", tc.wantErr, err)
				}
				if _, err := ctrl.WithdrawRequest(db, id, 0); !ErrUnknownRequest.Is(err) {
					t.Fatalf("request was stored: %+v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %+v", err)
			}
			w, err := ctrl.WithdrawRequest(db, id, wid)
			if err != nil {
				t.Fatalf("cannot load request: %s", err)
			}
			if !w.Requester.Equals(a) || w.Amount != tc.amount || w.Executed || len(w.Approvals) != 0 {
				t.Fatalf("unexpected request: %+v", w)
			}
			// the balance is only deducted on execution
			if balance, _ := ctrl.RawBalance(db, id); balance != 100 {
				t.Fatalf("balance changed to %d", balance)
			}
		})
	}
}

func TestWithdrawIDsAreScopedToAccount(t *testing.T) {
	a := coledgertest.NewAddress()
	db, ctrl, _ := fixture(t, a)

	first, err := ctrl.CreateAccount(db, a, nil)
	if err != nil {
		t.Fatalf("cannot create account: %s", err)
	}
	second, err := ctrl.CreateAccount(db, a, nil)
	if err != nil {
		t.Fatalf("cannot create account: %s", err)
	}
	if second != first+1 {
		t.Fatalf("account ids not sequential: %d, %d", first, second)
	}
	for _, id := range []uint64{first, second} {
		if err := ctrl.Deposit(db, a, id, 10); err != nil {
			t.Fatalf("cannot deposit: %s", err)
		}
	}

	for want := uint64(0); want < 3; want++ {
		got, err := ctrl.RequestWithdraw(db, a, first, 1)
		if err != nil || got != want {
			t.Fatalf("first account: want %d, got %d, %v", want, got, err)
		}
	}
	got, err := ctrl.RequestWithdraw(db, a, second, 1)
	if err != nil || got != 0 {
		t.Fatalf("second account: want 0, got %d, %v", got, err)
	}
}

func TestApproveWithdraw(t *testing.T) {
	a, b, c := coledgertest.NewAddress(), coledgertest.NewAddress(), coledgertest.NewAddress()

	cases := map[string]struct {
		caller     coledger.Address
		accountID  uint64
		withdrawID uint64
		wantErr    *errors.Error
	}{
		"co-owner approves": {
			caller: b,
		},
		"unknown account": {
			caller:    b,
			accountID: 9,
			wantErr:   errors.ErrNotFound,
		},
		"not an owner": {
			caller:  c,
			wantErr: ErrNotOwner,
		},
		"unknown request": {
			caller:     b,
			withdrawID: 5,
			wantErr:    ErrUnknownRequest,
		},
		"requester": {
			caller:  a,
			wantErr: ErrSelfApproval,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			db, ctrl, _ := fixture(t, a, b, c)
			id, err := ctrl.CreateAccount(db, a, []coledger.Address{b})
			if err != nil {
				t.Fatalf("cannot create account: %s", err)
			}
			if err := ctrl.Deposit(db, a, id, 10); err != nil {
				t.Fatalf("cannot deposit: %s", err)
			}
			wid, err := ctrl.RequestWithdraw(db, a, id, 10)
			if err != nil {
				t.Fatalf("cannot request: %s", err)
			}

			err = ctrl.ApproveWithdraw(db, tc.caller, tc.accountID, tc.withdrawID)
			if tc.wantErr != nil {
				if !tc.wantErr.Is(err) {
					t.Fatalf("want %q, got %+v", tc.wantErr, err)
				}
			} else if err != nil {
				t.Fatalf("unexpected error: %+v", err)
			}

			n, err := ctrl.ApprovalCount(db, id, wid)
			if err != nil {
				t.Fatalf("cannot count approvals: %s", err)
			}
			want := uint64(1)
			if tc.wantErr != nil {
				want = 0
			}
			if n != want {
				t.Fatalf("want %d approvals, got %d", want, n)
			}
		})
	}
}

func TestApproveExecutedRequest(t *testing.T) {
	a, b, c := coledgertest.NewAddress(), coledgertest.NewAddress(), coledgertest.NewAddress()
	db, ctrl, _ := fixture(t, a, b, c)

	id, err := ctrl.CreateAccount(db, a, []coledger.Address{b, c})
	if err != nil {
		t.Fatalf("cannot create account: %s", err)
	}
	if err := ctrl.Deposit(db, a, id, 10); err != nil {
		t.Fatalf("cannot deposit: %s", err)
	}
	wid, err := ctrl.RequestWithdraw(db, a, id, 10)
	if err != nil {
		t.Fatalf("cannot request: %s", err)
	}
	if err := ctrl.ApproveWithdraw(db, b, id, wid); err != nil {
		t.Fatalf("cannot approve: %s", err)
	}
	if err := ctrl.WithdrawAmount(db, a, wid, id); err != nil {
		t.Fatalf("cannot withdraw: %s", err)
	}
	if err := ctrl.ApproveWithdraw(db, c, id, wid); !ErrAlreadyExecuted.Is(err) {
		t.Fatalf("want already executed, got %+v", err)
	}
}

func TestReadOperationsOnUnknownIDs(t *testing.T) {
	a := coledgertest.NewAddress()
	db, ctrl, _ := fixture(t, a)

	if _, err := ctrl.RawBalance(db, 0); !errors.ErrNotFound.Is(err) {
		t.Fatalf("want not found, got %+v", err)
	}
	if _, err := ctrl.Owners(db, 0); !errors.ErrNotFound.Is(err) {
		t.Fatalf("want not found, got %+v", err)
	}
	if _, err := ctrl.WithdrawRequest(db, 0, 0); !errors.ErrNotFound.Is(err) {
		t.Fatalf("want not found, got %+v", err)
	}
	if _, err := ctrl.ApprovalCount(db, 0, 0); !errors.ErrNotFound.Is(err) {
		t.Fatalf("want not found, got %+v", err)
	}
	if _, err := ctrl.HasApproved(db, a, 0, 0); !errors.ErrNotFound.Is(err) {
		t.Fatalf("want not found, got %+v", err)
	}
	if err := ctrl.WithdrawAmount(db, a, 0, 0); !errors.ErrNotFound.Is(err) {
		t.Fatalf("want not found, got %+v", err)
	}
	ids, err := ctrl.UserAccounts(db, a)
	if err != nil || len(ids) != 0 {
		t.Fatalf("want no accounts, got %v, %v", ids, err)
	}
}

func TestReadOperationsOnUnknownWithdraw(t *testing.T) {
	a := coledgertest.NewAddress()
	db, ctrl, _ := fixture(t, a)

	id, err := ctrl.CreateAccount(db, a, nil)
	if err != nil {
		t.Fatalf("cannot create account: %s", err)
	}
	if _, err := ctrl.WithdrawRequest(db, id, 7); !ErrUnknownRequest.Is(err) {
		t.Fatalf("want unknown request, got %+v", err)
	}
	if _, err := ctrl.ApprovalCount(db, id, 7); !ErrUnknownRequest.Is(err) {
		t.Fatalf("want unknown request, got %+v", err)
	}
	if _, err := ctrl.HasApproved(db, a, id, 7); !ErrUnknownRequest.Is(err) {
		t.Fatalf("want unknown request, got %+v", err)
	}
}
