// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package db

import (
	"bytes"
	"path"

	log "github.com/inconshreveable/log15"
	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/errors"
	"github.com/syndtr/goleveldb/leveldb/filter"
	"github.com/syndtr/goleveldb/leveldb/iterator"
	"github.com/syndtr/goleveldb/leveldb/opt"
	"github.com/syndtr/goleveldb/leveldb/util"
)

var llog = log.New("module", "db.goleveldb")

func init() {
	dbCreator := func(name string, dir string, cache int) (DB, error) {
		return NewGoLevelDB(name, dir, cache)
	}
	registerDBCreator(LevelDBBackendStr, dbCreator, false)
	registerDBCreator(GoLevelDBBackendStr, dbCreator, false)
}

// GoLevelDB db
type GoLevelDB struct {
	db *leveldb.DB
}

// NewGoLevelDB new
func NewGoLevelDB(name string, dir string, cache int) (*GoLevelDB, error) {
	dbPath := path.Join(dir, name+".db")
	if cache == 0 {
		cache = 64
	}
	handles := cache
	if handles < 16 {
		handles = 16
	}
	if cache < 4 {
		cache = 4
	}
	// Open the db and recover any potential corruptions
	db, err := leveldb.OpenFile(dbPath, &opt.Options{
		OpenFilesCacheCapacity: handles,
		BlockCacheCapacity:     cache / 2 * opt.MiB,
		WriteBuffer:            cache / 4 * opt.MiB, // Two of these are used internally
		Filter:                 filter.NewBloomFilter(10),
	})
	if _, corrupted := err.(*errors.ErrCorrupted); corrupted {
		db, err = leveldb.RecoverFile(dbPath, nil)
	}
	if err != nil {
		return nil, err
	}
	return &GoLevelDB{db: db}, nil
}

// Get get
func (db *GoLevelDB) Get(key []byte) ([]byte, error) {
	res, err := db.db.Get(key, nil)
	if err != nil {
		if err == errors.ErrNotFound {
			return nil, ErrNotFoundInDb
		}
		llog.Error("Get", "error", err)
		return nil, err
	}
	return res, nil
}

// Set set, value 为 nil 时删除
func (db *GoLevelDB) Set(key []byte, value []byte) error {
	return db.put(key, value, nil)
}

// SetSync set and sync
func (db *GoLevelDB) SetSync(key []byte, value []byte) error {
	return db.put(key, value, &opt.WriteOptions{Sync: true})
}

func (db *GoLevelDB) put(key []byte, value []byte, wo *opt.WriteOptions) error {
	var err error
	if value == nil {
		err = db.db.Delete(key, wo)
	} else {
		err = db.db.Put(key, value, wo)
	}
	if err != nil {
		llog.Error("Set", "error", err)
	}
	return err
}

// Delete delete
func (db *GoLevelDB) Delete(key []byte) error {
	err := db.db.Delete(key, nil)
	if err != nil {
		llog.Error("Delete", "error", err)
	}
	return err
}

// DB return leveldb
func (db *GoLevelDB) DB() *leveldb.DB {
	return db.db
}

// Close close
func (db *GoLevelDB) Close() {
	if err := db.db.Close(); err != nil {
		llog.Error("Close", "error", err)
	}
}

// Stats leveldb 属性
func (db *GoLevelDB) Stats() map[string]string {
	keys := []string{
		"leveldb.stats",
		"leveldb.sstables",
		"leveldb.blockpool",
		"leveldb.cachedblock",
		"leveldb.openedtables",
		"leveldb.alivesnaps",
		"leveldb.aliveiters",
	}

	stats := make(map[string]string)
	for _, key := range keys {
		str, err := db.db.GetProperty(key)
		if err == nil {
			stats[key] = str
		}
	}
	return stats
}

// Iterator 迭代器
func (db *GoLevelDB) Iterator(start []byte, end []byte, reverse bool) Iterator {
	var r *util.Range
	if end == nil {
		r = util.BytesPrefix(start)
	} else {
		r = &util.Range{Start: start, Limit: end}
	}
	it := db.db.NewIterator(r, nil)
	return &goLevelDBIt{Iterator: it, reverse: reverse}
}

type goLevelDBIt struct {
	iterator.Iterator
	reverse bool
}

func (dbit *goLevelDBIt) Close() {
	dbit.Iterator.Release()
}

func (dbit *goLevelDBIt) Rewind() bool {
	if dbit.reverse {
		return dbit.Iterator.Last() && dbit.Valid()
	}
	return dbit.Iterator.First() && dbit.Valid()
}

func (dbit *goLevelDBIt) Next() bool {
	if dbit.reverse {
		return dbit.Iterator.Prev() && dbit.Valid()
	}
	return dbit.Iterator.Next() && dbit.Valid()
}

// Seek 逆序时定位到最后一个 <= key 的位置
func (dbit *goLevelDBIt) Seek(key []byte) bool {
	ok := dbit.Iterator.Seek(key)
	if !dbit.reverse {
		return ok
	}
	if !ok {
		return dbit.Iterator.Last()
	}
	if !bytes.Equal(dbit.Key(), key) {
		return dbit.Iterator.Prev()
	}
	return true
}

func (dbit *goLevelDBIt) ValueCopy() []byte {
	return CopyBytes(dbit.Value())
}

// NewBatch new batch
func (db *GoLevelDB) NewBatch(sync bool) Batch {
	batch := new(leveldb.Batch)
	wop := &opt.WriteOptions{Sync: sync}
	return &goLevelDBBatch{db: db, batch: batch, wop: wop}
}

type goLevelDBBatch struct {
	db    *GoLevelDB
	batch *leveldb.Batch
	wop   *opt.WriteOptions
	size  int
}

func (mBatch *goLevelDBBatch) Set(key, value []byte) {
	if value == nil {
		mBatch.Delete(key)
		return
	}
	mBatch.batch.Put(key, value)
	mBatch.size += len(value)
}

func (mBatch *goLevelDBBatch) Delete(key []byte) {
	mBatch.batch.Delete(key)
	mBatch.size++
}

func (mBatch *goLevelDBBatch) Write() error {
	return mBatch.db.db.Write(mBatch.batch, mBatch.wop)
}

func (mBatch *goLevelDBBatch) ValueSize() int {
	return mBatch.size
}

func (mBatch *goLevelDBBatch) Reset() {
	mBatch.batch.Reset()
	mBatch.size = 0
}
