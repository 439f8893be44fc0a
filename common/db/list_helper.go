// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package db

import (
	"bytes"

	log "github.com/inconshreveable/log15"
)

// ListHelper 基于前缀的分页查询
type ListHelper struct {
	db IteratorDB
}

var listlog = log.New("module", "db.ListHelper")

// NewListHelper new
func NewListHelper(db IteratorDB) *ListHelper {
	return &ListHelper{db}
}

// 方向
const (
	ListDESC = int32(0)
	ListASC  = int32(1)
)

// List 分页, key 为空时从头(或尾)开始, 否则从 key 之后开始(不包含 key)
func (db *ListHelper) List(prefix, key []byte, count, direction int32) (values [][]byte) {
	if len(key) == 0 {
		if direction == ListASC {
			return db.IteratorScanFromFirst(prefix, count)
		}
		return db.IteratorScanFromLast(prefix, count)
	}
	return db.IteratorScan(prefix, key, count, direction)
}

// IteratorScan 从 key 之后迭代
func (db *ListHelper) IteratorScan(prefix []byte, key []byte, count int32, direction int32) (values [][]byte) {
	return db.scan(prefix, key, count, direction)
}

// IteratorScanFromFirst 从头迭代
func (db *ListHelper) IteratorScanFromFirst(prefix []byte, count int32) (values [][]byte) {
	return db.scan(prefix, nil, count, ListASC)
}

// IteratorScanFromLast 从尾迭代
func (db *ListHelper) IteratorScanFromLast(prefix []byte, count int32) (values [][]byte) {
	return db.scan(prefix, nil, count, ListDESC)
}

// PrefixCount 前缀数量
func (db *ListHelper) PrefixCount(prefix []byte) (count int64) {
	it := db.db.Iterator(prefix, nil, false)
	defer it.Close()
	for it.Rewind(); it.Valid(); it.Next() {
		if it.Error() != nil {
			listlog.Error("PrefixCount", "error", it.Error())
			return 0
		}
		count++
	}
	return count
}

// scan count <= 0 表示不限数量
func (db *ListHelper) scan(prefix, key []byte, count, direction int32) (values [][]byte) {
	it := db.db.Iterator(prefix, nil, direction == ListDESC)
	defer it.Close()

	if len(key) == 0 {
		it.Rewind()
	} else if it.Seek(key) && bytes.Equal(it.Key(), key) {
		it.Next()
	}
	var i int32
	for ; it.Valid(); it.Next() {
		value := it.ValueCopy()
		if it.Error() != nil {
			listlog.Error("scan", "prefix", string(prefix), "error", it.Error())
			return nil
		}
		values = append(values, value)
		i++
		if i == count {
			break
		}
	}
	return values
}
