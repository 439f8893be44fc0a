// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package db

import (
	"fmt"
	"path"
	"strconv"

	"github.com/dgraph-io/badger"
	log "github.com/inconshreveable/log15"
)

var blog = log.New("module", "db.gobadgerdb")

func init() {
	dbCreator := func(name string, dir string, cache int) (DB, error) {
		return NewGoBadgerDB(name, dir, cache)
	}
	registerDBCreator(GoBadgerDBBackendStr, dbCreator, false)
}

// GoBadgerDB db
type GoBadgerDB struct {
	db *badger.DB
}

// NewGoBadgerDB new
func NewGoBadgerDB(name string, dir string, cache int) (*GoBadgerDB, error) {
	dbPath := path.Join(dir, name+".db")
	opts := badger.DefaultOptions(dbPath).WithLogger(badgerLogger{})
	db, err := badger.Open(opts)
	if err != nil {
		return nil, err
	}
	return &GoBadgerDB{db: db}, nil
}

// Get get
func (db *GoBadgerDB) Get(key []byte) ([]byte, error) {
	var val []byte
	err := db.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(key)
		if err != nil {
			return err
		}
		val, err = item.ValueCopy(nil)
		return err
	})
	if err == badger.ErrKeyNotFound {
		return nil, ErrNotFoundInDb
	}
	if err != nil {
		blog.Error("Get", "error", err)
		return nil, err
	}
	return val, nil
}

// Set set, value 为 nil 时删除
func (db *GoBadgerDB) Set(key []byte, value []byte) error {
	err := db.db.Update(func(txn *badger.Txn) error {
		if value == nil {
			return txn.Delete(key)
		}
		return txn.Set(key, value)
	})
	if err != nil {
		blog.Error("Set", "error", err)
	}
	return err
}

// SetSync badger 默认同步写
func (db *GoBadgerDB) SetSync(key []byte, value []byte) error {
	return db.Set(key, value)
}

// Delete delete
func (db *GoBadgerDB) Delete(key []byte) error {
	return db.Set(key, nil)
}

// DB return badger db
func (db *GoBadgerDB) DB() *badger.DB {
	return db.db
}

// Close close
func (db *GoBadgerDB) Close() {
	if err := db.db.Close(); err != nil {
		blog.Error("Close", "error", err)
	}
}

// Stats lsm 和 vlog 的大小
func (db *GoBadgerDB) Stats() map[string]string {
	lsm, vlog := db.db.Size()
	return map[string]string{
		"badger.lsm.size":  strconv.FormatInt(lsm, 10),
		"badger.vlog.size": strconv.FormatInt(vlog, 10),
	}
}

// Iterator 先把区间内的数据拷贝出来, 迭代期间不持有事务
func (db *GoBadgerDB) Iterator(start []byte, end []byte, reverse bool) Iterator {
	var items []kvPair
	err := db.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()
		for it.Seek(start); it.Valid(); it.Next() {
			item := it.Item()
			key := item.KeyCopy(nil)
			if !inRange(key, start, end) {
				break
			}
			value, err := item.ValueCopy(nil)
			if err != nil {
				return err
			}
			items = append(items, kvPair{key: key, value: value})
		}
		return nil
	})
	if err != nil {
		blog.Error("Iterator", "error", err)
		return &errIterator{err: err}
	}
	return newSliceIterator(items, reverse)
}

// NewBatch new batch
func (db *GoBadgerDB) NewBatch(sync bool) Batch {
	return &badgerBatch{db: db}
}

type badgerBatch struct {
	db     *GoBadgerDB
	writes []kvPair
	size   int
}

func (b *badgerBatch) Set(key, value []byte) {
	b.writes = append(b.writes, kvPair{CopyBytes(key), CopyBytes(value)})
	b.size += len(value)
}

func (b *badgerBatch) Delete(key []byte) {
	b.writes = append(b.writes, kvPair{CopyBytes(key), nil})
	b.size++
}

// Write 在一个事务中写入, 保证原子性
func (b *badgerBatch) Write() error {
	return b.db.db.Update(func(txn *badger.Txn) error {
		for _, kv := range b.writes {
			var err error
			if kv.value == nil {
				err = txn.Delete(kv.key)
			} else {
				err = txn.Set(kv.key, kv.value)
			}
			if err != nil {
				return err
			}
		}
		return nil
	})
}

func (b *badgerBatch) ValueSize() int {
	return b.size
}

func (b *badgerBatch) Reset() {
	b.writes = b.writes[:0]
	b.size = 0
}

type errIterator struct {
	sliceIterator
	err error
}

func (it *errIterator) Error() error {
	return it.err
}

// badgerLogger badger 的日志转到 log15
type badgerLogger struct{}

func (badgerLogger) Errorf(format string, args ...interface{}) {
	blog.Error(fmt.Sprintf(format, args...))
}

func (badgerLogger) Warningf(format string, args ...interface{}) {
	blog.Warn(fmt.Sprintf(format, args...))
}

func (badgerLogger) Infof(format string, args ...interface{}) {
	blog.Debug(fmt.Sprintf(format, args...))
}

func (badgerLogger) Debugf(format string, args ...interface{}) {
	blog.Debug(fmt.Sprintf(format, args...))
}
