package assert

import (
	"fmt"
	"testing"

	"github.com/iov-one/coledger/errors"
)

type tester struct {
	failed bool
}

func (t *tester) Helper() {}

func (t *tester) Fatal(...interface{}) {
	t.failed = true
}

func (t *tester) Fatalf(string, ...interface{}) {
	t.failed = true
}

func TestNil(t *testing.T) {
	var nilErr *errors.Error
	cases := map[string]struct {
		value    interface{}
		wantFail bool
	}{
		"nil":             {value: nil},
		"typed nil":       {value: nilErr},
		"nil slice":       {value: []byte(nil)},
		"error":           {value: fmt.Errorf("boom"), wantFail: true},
		"non nil integer": {value: 4, wantFail: true},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			var tt tester
			Nil(&tt, tc.value)
			if tt.failed != tc.wantFail {
				t.Fatalf("want fail %v, got %v", tc.wantFail, tt.failed)
			}
		})
	}
}

func TestEqual(t *testing.T) {
	var tt tester
	Equal(&tt, []int{1, 2}, []int{1, 2})
	if tt.failed {
		t.Fatal("equal slices reported as different")
	}
	Equal(&tt, uint64(1), 1)
	if !tt.failed {
		t.Fatal("values of different types reported as equal")
	}
}

func TestPanics(t *testing.T) {
	var tt tester
	Panics(&tt, func() { panic("boom") })
	if tt.failed {
		t.Fatal("panic not detected")
	}
	Panics(&tt, func() {})
	if !tt.failed {
		t.Fatal("missing panic not reported")
	}
}

func TestIsErr(t *testing.T) {
	IsErr(t, errors.ErrNotFound, errors.Wrap(errors.ErrNotFound, "account"))
	IsErr(t, nil, nil)
}
