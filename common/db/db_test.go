// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package db

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDBs(t *testing.T) map[string]DB {
	dir := t.TempDir()
	dbs := make(map[string]DB)
	for _, backend := range []string{MemDBBackendStr, GoLevelDBBackendStr, GoBadgerDBBackendStr} {
		d, err := NewDB(backend, backend, dir, 16)
		require.NoError(t, err, backend)
		dbs[backend] = d
	}
	t.Cleanup(func() {
		for _, d := range dbs {
			d.Close()
		}
	})
	return dbs
}

func TestNewDBUnknownBackend(t *testing.T) {
	_, err := NewDB("x", "nosuchdb", t.TempDir(), 16)
	assert.Error(t, err)
}

func TestGetSetDelete(t *testing.T) {
	for name, d := range newTestDBs(t) {
		_, err := d.Get([]byte("k1"))
		assert.Equal(t, ErrNotFoundInDb, err, name)

		require.NoError(t, d.Set([]byte("k1"), []byte("v1")), name)
		v, err := d.Get([]byte("k1"))
		require.NoError(t, err, name)
		assert.Equal(t, []byte("v1"), v, name)

		require.NoError(t, d.Set([]byte("k1"), nil), name)
		_, err = d.Get([]byte("k1"))
		assert.Equal(t, ErrNotFoundInDb, err, name)

		require.NoError(t, d.SetSync([]byte("k2"), []byte("v2")), name)
		require.NoError(t, d.Delete([]byte("k2")), name)
		_, err = d.Get([]byte("k2"))
		assert.Equal(t, ErrNotFoundInDb, err, name)
		assert.NotNil(t, d.Stats(), name)
	}
}

func TestBatch(t *testing.T) {
	for name, d := range newTestDBs(t) {
		require.NoError(t, d.Set([]byte("gone"), []byte("x")), name)
		b := d.NewBatch(true)
		b.Set([]byte("b1"), []byte("v1"))
		b.Set([]byte("b2"), []byte("v22"))
		b.Delete([]byte("gone"))
		assert.Equal(t, 6, b.ValueSize(), name)

		_, err := d.Get([]byte("b1"))
		assert.Equal(t, ErrNotFoundInDb, err, name)

		require.NoError(t, b.Write(), name)
		v, err := d.Get([]byte("b2"))
		require.NoError(t, err, name)
		assert.Equal(t, []byte("v22"), v, name)
		_, err = d.Get([]byte("gone"))
		assert.Equal(t, ErrNotFoundInDb, err, name)

		b.Reset()
		assert.Equal(t, 0, b.ValueSize(), name)
	}
}

func TestIterator(t *testing.T) {
	for name, d := range newTestDBs(t) {
		for _, k := range []string{"aaaaaa/1", "my_key/1", "my_key/2", "my_key/3", "my_key/4", "zzzzzz/1"} {
			require.NoError(t, d.Set([]byte(k), []byte(k)), name)
		}

		var keys []string
		it := d.Iterator([]byte("my_key/"), nil, false)
		for it.Rewind(); it.Valid(); it.Next() {
			keys = append(keys, string(it.Key()))
		}
		require.NoError(t, it.Error(), name)
		it.Close()
		assert.Equal(t, []string{"my_key/1", "my_key/2", "my_key/3", "my_key/4"}, keys, name)

		keys = nil
		it = d.Iterator([]byte("my_key/"), nil, true)
		for it.Rewind(); it.Valid(); it.Next() {
			keys = append(keys, string(it.ValueCopy()))
		}
		it.Close()
		assert.Equal(t, []string{"my_key/4", "my_key/3", "my_key/2", "my_key/1"}, keys, name)

		keys = nil
		it = d.Iterator([]byte("my_key/2"), []byte("zzzzzz/1"), false)
		for it.Rewind(); it.Valid(); it.Next() {
			keys = append(keys, string(it.Key()))
		}
		it.Close()
		assert.Equal(t, []string{"my_key/2", "my_key/3", "my_key/4"}, keys, name)

		it = d.Iterator([]byte("my_key/"), nil, true)
		assert.True(t, it.Seek([]byte("my_key/25")), name)
		assert.Equal(t, "my_key/2", string(it.Key()), name)
		it.Close()

		it = d.Iterator([]byte("my_key/"), nil, false)
		assert.True(t, it.Seek([]byte("my_key/25")), name)
		assert.Equal(t, "my_key/3", string(it.Key()), name)
		it.Close()
	}
}

func TestPrefixEnd(t *testing.T) {
	assert.Equal(t, []byte("ab"), prefixEnd([]byte("aa")))
	assert.Equal(t, []byte{0x02}, prefixEnd([]byte{0x01, 0xff}))
	assert.Nil(t, prefixEnd([]byte{0xff, 0xff}))
	assert.Nil(t, CopyBytes(nil))
}

// kvOnly 只实现 KV, BatchGet 逐个读取
type kvOnly struct {
	KV
}

// batchKV 自带 BatchGet
type batchKV struct {
	KV
	called bool
}

func (b *batchKV) BatchGet(keys [][]byte) ([][]byte, error) {
	b.called = true
	values := make([][]byte, len(keys))
	return values, nil
}

func TestBatchGet(t *testing.T) {
	db, err := NewDB("test", MemDBBackendStr, "", 0)
	require.NoError(t, err)
	require.NoError(t, db.Set([]byte("a"), []byte("1")))
	require.NoError(t, db.Set([]byte("c"), []byte("3")))

	keys := [][]byte{[]byte("a"), []byte("b"), []byte("c")}
	values, err := BatchGet(&kvOnly{db}, keys)
	require.NoError(t, err)
	assert.Equal(t, [][]byte{[]byte("1"), nil, []byte("3")}, values)

	b := &batchKV{KV: db}
	values, err = BatchGet(b, keys)
	require.NoError(t, err)
	assert.True(t, b.called)
	assert.Len(t, values, 3)
}
