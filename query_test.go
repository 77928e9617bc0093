package coledger_test

import (
	"testing"

	"github.com/iov-one/coledger"
	"github.com/iov-one/coledger/coledgertest/assert"
	"github.com/iov-one/coledger/store"
)

func TestQueryRouter(t *testing.T) {
	echo := coledger.QueryHandlerFunc(func(db coledger.ReadOnlyKVStore, data []byte) (interface{}, error) {
		return db.Get(data)
	})

	qr := coledger.NewQueryRouter()
	qr.RegisterAll(func(r coledger.QueryRouter) {
		r.Register("/echo", echo)
	})

	assert.Panics(t, func() { qr.Register("/echo", echo) })

	if h := qr.Handler("/unknown"); h != nil {
		t.Fatalf("unexpected handler: %v", h)
	}

	db := store.MemStore()
	assert.Nil(t, db.Set([]byte("k"), []byte("v")))

	res, err := qr.Handler("/echo").Query(db, []byte("k"))
	assert.Nil(t, err)
	assert.Equal(t, []byte("v"), res)
}
