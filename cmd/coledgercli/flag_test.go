package main

import (
	"flag"
	"io/ioutil"
	"testing"

	"github.com/iov-one/coledger"
	"github.com/iov-one/coledger/coledgertest/assert"
)

func TestAddressListFlag(t *testing.T) {
	a, err := coledger.ParseAddress("b1ca7e78f74423ae01da3b51e676934d9105f282")
	assert.Nil(t, err)
	b, err := coledger.ParseAddress("E28AE9A6EB94FC88B73EB7CBD6B87BF93EB9BEF0")
	assert.Nil(t, err)

	cases := map[string]struct {
		args    []string
		wantErr bool
		want    []coledger.Address
	}{
		"no value": {
			args: nil,
			want: nil,
		},
		"single address": {
			args: []string{"-x", "b1ca7e78f74423ae01da3b51e676934d9105f282"},
			want: []coledger.Address{a},
		},
		"list with spaces and trailing comma": {
			args: []string{"-x", "b1ca7e78f74423ae01da3b51e676934d9105f282 ,E28AE9A6EB94FC88B73EB7CBD6B87BF93EB9BEF0,"},
			want: []coledger.Address{a, b},
		},
		"invalid hex": {
			args:    []string{"-x", "b1ca7e78f74423ae01da3b51e676934d9105f282,zz"},
			wantErr: true,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			fl := flag.NewFlagSet("", flag.ContinueOnError)
			fl.SetOutput(ioutil.Discard)
			got := flAddressList(fl, "x", "", "")
			err := fl.Parse(tc.args)
			if tc.wantErr {
				if err == nil {
					t.Fatal("want error")
				}
				return
			}
			assert.Nil(t, err)
			assert.Equal(t, tc.want, *got)
		})
	}
}

func TestAddressFlag(t *testing.T) {
	fl := flag.NewFlagSet("", flag.ContinueOnError)
	fl.SetOutput(ioutil.Discard)
	got := flAddress(fl, "x", "b1ca7e78f74423ae01da3b51e676934d9105f282", "")
	assert.Equal(t, "B1CA7E78F74423AE01DA3B51E676934D9105F282", got.String())

	assert.Nil(t, fl.Parse([]string{"-x", "E28AE9A6EB94FC88B73EB7CBD6B87BF93EB9BEF0"}))
	assert.Equal(t, "E28AE9A6EB94FC88B73EB7CBD6B87BF93EB9BEF0", got.String())
}

func TestFmtSequence(t *testing.T) {
	s, err := fmtSequence([]byte{0, 0, 0, 0, 0, 0, 1, 2})
	assert.Nil(t, err)
	assert.Equal(t, "258", s)

	if _, err := fmtSequence([]byte{1}); err == nil {
		t.Fatal("invalid sequence must fail")
	}
}
