// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package db 数据库接口以及 leveldb, badger, memdb 三种实现
package db

import (
	"errors"
	"fmt"
	"sync"
)

// ErrNotFoundInDb key 不存在
var ErrNotFoundInDb = errors.New("ErrNotFoundInDb")

// KV 读写接口, 执行器只依赖这个接口
type KV interface {
	Get(key []byte) ([]byte, error)
	Set(key []byte, value []byte) error
}

// KVDB 本地数据库, 带分页查询
type KVDB interface {
	KV
	List(prefix, key []byte, count, direction int32) ([][]byte, error)
	PrefixCount(prefix []byte) int64
}

// BatchGetter 批量读取, 不存在的 key 对应的 value 为 nil
type BatchGetter interface {
	BatchGet(keys [][]byte) ([][]byte, error)
}

// BatchGet db 支持 BatchGetter 时直接批量读取, 否则逐个读取
func BatchGet(db KV, keys [][]byte) ([][]byte, error) {
	if bdb, ok := db.(BatchGetter); ok {
		return bdb.BatchGet(keys)
	}
	values := make([][]byte, 0, len(keys))
	for _, key := range keys {
		v, err := db.Get(key)
		if err != nil && err != ErrNotFoundInDb {
			return nil, err
		}
		values = append(values, v)
	}
	return values, nil
}

// IteratorDB 迭代接口
type IteratorDB interface {
	Iterator(start []byte, end []byte, reverse bool) Iterator
}

// DB 数据库
type DB interface {
	KV
	IteratorDB
	SetSync([]byte, []byte) error
	Delete([]byte) error
	NewBatch(sync bool) Batch
	Stats() map[string]string
	Close()
}

// Batch 批量写, Write 之后才真正落盘
type Batch interface {
	Set(key, value []byte)
	Delete(key []byte)
	Write() error
	ValueSize() int
	Reset()
}

// Iterator end 为空时遍历 start 前缀下的所有 key, 否则遍历 [start, end)
type Iterator interface {
	Rewind() bool
	Next() bool
	Seek(key []byte) bool
	Valid() bool
	Key() []byte
	Value() []byte
	ValueCopy() []byte
	Error() error
	Close()
}

// backend names
const (
	LevelDBBackendStr    = "leveldb" // legacy, defaults to goleveldb.
	GoLevelDBBackendStr  = "goleveldb"
	MemDBBackendStr      = "memdb"
	GoBadgerDBBackendStr = "gobadgerdb"
)

type dbCreator func(name string, dir string, cache int) (DB, error)

var (
	backends   = map[string]dbCreator{}
	backendsMu sync.Mutex
)

func registerDBCreator(backend string, creator dbCreator, force bool) {
	backendsMu.Lock()
	defer backendsMu.Unlock()
	_, ok := backends[backend]
	if !force && ok {
		return
	}
	backends[backend] = creator
}

// NewDB 按 backend 名称创建数据库
func NewDB(name string, backend string, dir string, cache int32) (DB, error) {
	backendsMu.Lock()
	creator, ok := backends[backend]
	backendsMu.Unlock()
	if !ok {
		return nil, fmt.Errorf("unknown db backend %q", backend)
	}
	return creator(name, dir, int(cache))
}

// CopyBytes 复制, nil 返回 nil
func CopyBytes(b []byte) (copiedBytes []byte) {
	if b == nil {
		return nil
	}
	copiedBytes = make([]byte, len(b))
	copy(copiedBytes, b)
	return copiedBytes
}

func cloneByte(v []byte) []byte {
	value := make([]byte, len(v))
	copy(value, v)
	return value
}

// prefixEnd 前缀的上界, 全 0xff 返回 nil
func prefixEnd(prefix []byte) []byte {
	end := cloneByte(prefix)
	for i := len(end) - 1; i >= 0; i-- {
		if end[i] < 0xff {
			end[i]++
			return end[:i+1]
		}
	}
	return nil
}
