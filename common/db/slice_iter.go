// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package db

import (
	"bytes"
	"sort"
)

type kvPair struct {
	key   []byte
	value []byte
}

// sliceIterator 基于有序快照的迭代器, memdb 和 badger 使用
type sliceIterator struct {
	items   []kvPair
	reverse bool
	idx     int
}

func newSliceIterator(items []kvPair, reverse bool) *sliceIterator {
	sort.Slice(items, func(i, j int) bool {
		return bytes.Compare(items[i].key, items[j].key) < 0
	})
	return &sliceIterator{items: items, reverse: reverse, idx: -1}
}

func (it *sliceIterator) item() *kvPair {
	if !it.Valid() {
		return nil
	}
	if it.reverse {
		return &it.items[len(it.items)-1-it.idx]
	}
	return &it.items[it.idx]
}

func (it *sliceIterator) Rewind() bool {
	it.idx = 0
	return it.Valid()
}

func (it *sliceIterator) Next() bool {
	if it.idx < len(it.items) {
		it.idx++
	}
	return it.Valid()
}

// Seek 正序定位到第一个 >= key 的位置, 逆序定位到最后一个 <= key 的位置
func (it *sliceIterator) Seek(key []byte) bool {
	n := len(it.items)
	if !it.reverse {
		it.idx = sort.Search(n, func(i int) bool {
			return bytes.Compare(it.items[i].key, key) >= 0
		})
		return it.Valid()
	}
	j := sort.Search(n, func(i int) bool {
		return bytes.Compare(it.items[i].key, key) > 0
	})
	it.idx = n - j
	return it.Valid()
}

func (it *sliceIterator) Valid() bool {
	return it.idx >= 0 && it.idx < len(it.items)
}

func (it *sliceIterator) Key() []byte {
	if kv := it.item(); kv != nil {
		return kv.key
	}
	return nil
}

func (it *sliceIterator) Value() []byte {
	if kv := it.item(); kv != nil {
		return kv.value
	}
	return nil
}

func (it *sliceIterator) ValueCopy() []byte {
	return CopyBytes(it.Value())
}

func (it *sliceIterator) Error() error {
	return nil
}

func (it *sliceIterator) Close() {
	it.items = nil
}

// inRange end 为空时按前缀判断
func inRange(key, start, end []byte) bool {
	if end == nil {
		return bytes.HasPrefix(key, start)
	}
	return bytes.Compare(key, start) >= 0 && bytes.Compare(key, end) < 0
}
