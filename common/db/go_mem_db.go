// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package db

import (
	"strconv"
	"sync"

	log "github.com/inconshreveable/log15"
)

var mlog = log.New("module", "db.memdb")

// memdb 应该无需区分同步与异步操作

func init() {
	dbCreator := func(name string, dir string, cache int) (DB, error) {
		return NewGoMemDB(name, dir, cache)
	}
	registerDBCreator(MemDBBackendStr, dbCreator, false)
}

// GoMemDB 内存数据库, 测试和临时节点使用
type GoMemDB struct {
	db   map[string][]byte
	lock sync.RWMutex
}

// NewGoMemDB new
func NewGoMemDB(name string, dir string, cache int) (*GoMemDB, error) {
	// memdb 不需要创建文件，后续考虑增加缓存数目
	return &GoMemDB{
		db: make(map[string][]byte),
	}, nil
}

// Get get
func (db *GoMemDB) Get(key []byte) ([]byte, error) {
	db.lock.RLock()
	defer db.lock.RUnlock()

	if entry, ok := db.db[string(key)]; ok {
		return CopyBytes(entry), nil
	}
	return nil, ErrNotFoundInDb
}

// Set set, value 为 nil 时删除
func (db *GoMemDB) Set(key []byte, value []byte) error {
	db.lock.Lock()
	defer db.lock.Unlock()
	db.set(key, value)
	return nil
}

func (db *GoMemDB) set(key []byte, value []byte) {
	if value == nil {
		delete(db.db, string(key))
		return
	}
	db.db[string(key)] = CopyBytes(value)
}

// SetSync same as Set
func (db *GoMemDB) SetSync(key []byte, value []byte) error {
	return db.Set(key, value)
}

// Delete delete
func (db *GoMemDB) Delete(key []byte) error {
	db.lock.Lock()
	defer db.lock.Unlock()
	delete(db.db, string(key))
	return nil
}

// Close nothing to do
func (db *GoMemDB) Close() {
}

// Stats 只返回 key 的数目
func (db *GoMemDB) Stats() map[string]string {
	db.lock.RLock()
	defer db.lock.RUnlock()
	return map[string]string{"memdb.keys": strconv.Itoa(len(db.db))}
}

// Iterator 遍历的是创建时的快照
func (db *GoMemDB) Iterator(start []byte, end []byte, reverse bool) Iterator {
	db.lock.RLock()
	defer db.lock.RUnlock()
	var items []kvPair
	for k, v := range db.db {
		key := []byte(k)
		if inRange(key, start, end) {
			items = append(items, kvPair{key: key, value: CopyBytes(v)})
		}
	}
	return newSliceIterator(items, reverse)
}

// NewBatch new batch
func (db *GoMemDB) NewBatch(sync bool) Batch {
	return &memBatch{db: db}
}

type memBatch struct {
	db     *GoMemDB
	writes []kvPair
	size   int
}

func (b *memBatch) Set(key, value []byte) {
	b.writes = append(b.writes, kvPair{CopyBytes(key), CopyBytes(value)})
	b.size += len(value)
}

func (b *memBatch) Delete(key []byte) {
	b.writes = append(b.writes, kvPair{CopyBytes(key), nil})
	b.size++
}

func (b *memBatch) Write() error {
	b.db.lock.Lock()
	defer b.db.lock.Unlock()
	for _, kv := range b.writes {
		b.db.set(kv.key, kv.value)
	}
	mlog.Debug("memBatch.Write", "writes", len(b.writes))
	return nil
}

func (b *memBatch) ValueSize() int {
	return b.size
}

func (b *memBatch) Reset() {
	b.writes = b.writes[:0]
	b.size = 0
}
