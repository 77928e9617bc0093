package store

import (
	"testing"

	"github.com/iov-one/coledger/coledgertest/assert"
)

// TestSuite provides checks that can be run against any CacheableKVStore
// implementation. It removes duplication between the btree and the iavl
// store tests.
type TestSuite struct {
	makeBase TestStoreConstructor
}

// TestStoreConstructor returns a fresh store and a function releasing its
// resources.
type TestStoreConstructor func() (base CacheableKVStore, cleanup func())

func NewTestSuite(constructor TestStoreConstructor) *TestSuite {
	return &TestSuite{
		makeBase: constructor,
	}
}

// GetSet does basic sanity checks on the store and its cache wraps.
func (s *TestSuite) GetSet(t *testing.T) {
	base, cleanup := s.makeBase()
	defer cleanup()

	k, v := []byte("french"), []byte("fry")
	s.AssertGetHas(t, base, k, nil, false)
	assert.Nil(t, base.Set(k, v))
	s.AssertGetHas(t, base, k, v, true)

	// now layer another btree on top and make sure that we get base
	// data
	cache := base.CacheWrap()
	s.AssertGetHas(t, cache, k, v, true)

	// writing more data is only visible in the cache
	k2, v2 := []byte("LA"), []byte("Dodgers")
	s.AssertGetHas(t, cache, k2, nil, false)
	assert.Nil(t, cache.Set(k2, v2))
	s.AssertGetHas(t, cache, k2, v2, true)
	s.AssertGetHas(t, base, k2, nil, false)

	// we can write the cache to the base layer...
	assert.Nil(t, cache.Write())
	s.AssertGetHas(t, base, k, v, true)
	s.AssertGetHas(t, base, k2, v2, true)

	// we can discard one
	k3, v3 := []byte("Bayern"), []byte("Munich")
	c2 := base.CacheWrap()
	s.AssertGetHas(t, c2, k, v, true)
	assert.Nil(t, c2.Set(k3, v3))
	c2.Discard()
	s.AssertGetHas(t, base, k3, nil, false)

	// and commit another
	c3 := base.CacheWrap()
	assert.Nil(t, c3.Delete(k))
	s.AssertGetHas(t, c3, k, nil, false)
	s.AssertGetHas(t, base, k, v, true)
	assert.Nil(t, c3.Write())

	s.AssertGetHas(t, base, k, nil, false)
	s.AssertGetHas(t, base, k2, v2, true)
	s.AssertGetHas(t, base, k3, nil, false)
}

// CacheConflicts checks that a child cache can overwrite and delete values
// of its parent without the parent noticing until written.
func (s *TestSuite) CacheConflicts(t *testing.T) {
	cases := map[string]struct {
		parentOps     []Op
		childOps      []Op
		parentQueries map[string][]byte
		childQueries  map[string][]byte
	}{
		"overwrite one, delete another, add a third": {
			parentOps: []Op{SetOp([]byte("a"), []byte("1")), SetOp([]byte("b"), []byte("2"))},
			childOps:  []Op{SetOp([]byte("a"), []byte("11")), SetOp([]byte("c"), []byte("7")), DelOp([]byte("b"))},
			parentQueries: map[string][]byte{
				"a": []byte("1"),
				"b": []byte("2"),
				"c": nil,
			},
			childQueries: map[string][]byte{
				"a": []byte("11"),
				"b": nil,
				"c": []byte("7"),
			},
		},
		"delete and set again": {
			parentOps: []Op{SetOp([]byte("a"), []byte("1"))},
			childOps:  []Op{DelOp([]byte("a")), SetOp([]byte("a"), []byte("2"))},
			parentQueries: map[string][]byte{
				"a": []byte("1"),
			},
			childQueries: map[string][]byte{
				"a": []byte("2"),
			},
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			base, cleanup := s.makeBase()
			defer cleanup()

			parent := base.CacheWrap()
			for _, op := range tc.parentOps {
				assert.Nil(t, op.Apply(parent))
			}
			child := parent.CacheWrap()
			for _, op := range tc.childOps {
				assert.Nil(t, op.Apply(child))
			}

			for key, want := range tc.parentQueries {
				s.AssertGetHas(t, parent, []byte(key), want, want != nil)
			}
			for key, want := range tc.childQueries {
				s.AssertGetHas(t, child, []byte(key), want, want != nil)
			}

			// writing the child makes the parent look like the child
			assert.Nil(t, child.Write())
			for key, want := range tc.childQueries {
				s.AssertGetHas(t, parent, []byte(key), want, want != nil)
			}
		})
	}
}

// AssertGetHas makes sure that both Get and Has return the expected values.
func (s *TestSuite) AssertGetHas(t testing.TB, kv ReadOnlyKVStore, key, val []byte, has bool) {
	t.Helper()
	got, err := kv.Get(key)
	assert.Nil(t, err)
	if val == nil {
		if len(got) != 0 {
			t.Fatalf("%q: want no value, got %q", key, got)
		}
	} else {
		assert.Equal(t, val, got)
	}
	exists, err := kv.Has(key)
	assert.Nil(t, err)
	assert.Equal(t, has, exists)
}
