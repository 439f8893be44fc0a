// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package executor

import (
	dbm "github.com/33cn/rps/common/db"
	"github.com/33cn/rps/types"
	"github.com/pkg/errors"
)

// StateDB 交易执行期间的状态数据库
// 写入只进入 txcache, Commit 之后由执行器统一落盘, Rollback 丢弃本笔交易的全部修改
type StateDB struct {
	db      dbm.KV
	txcache map[string][]byte
	keys    []string
}

// NewStateDB new state db, db 为已经提交的状态
func NewStateDB(db dbm.KV) *StateDB {
	return &StateDB{
		db:      db,
		txcache: make(map[string][]byte),
	}
}

// Begin 开启内存事务处理
func (s *StateDB) Begin() {
	s.resetTx()
}

// Rollback reset tx
func (s *StateDB) Rollback() {
	s.resetTx()
}

// Commit 结束事务, 按照第一次写入的顺序返回修改过的 kv, value 为 nil 表示删除
func (s *StateDB) Commit() []*types.KeyValue {
	kvs := make([]*types.KeyValue, 0, len(s.keys))
	for _, k := range s.keys {
		kvs = append(kvs, &types.KeyValue{Key: []byte(k), Value: s.txcache[k]})
	}
	s.resetTx()
	return kvs
}

func (s *StateDB) resetTx() {
	s.txcache = make(map[string][]byte)
	s.keys = nil
}

// Get get value from state db
func (s *StateDB) Get(key []byte) ([]byte, error) {
	skey := string(key)
	if value, ok := s.txcache[skey]; ok {
		if value == nil {
			return nil, types.ErrNotFound
		}
		return value, nil
	}
	value, err := s.db.Get(key)
	if err == dbm.ErrNotFoundInDb || err == types.ErrNotFound {
		return nil, types.ErrNotFound
	}
	if err != nil {
		return nil, errors.Wrapf(err, "statedb get %s", skey)
	}
	return value, nil
}

// Set set key value to state db, 不在事务中也只写入内存
func (s *StateDB) Set(key []byte, value []byte) error {
	skey := string(key)
	if _, ok := s.txcache[skey]; !ok {
		s.keys = append(s.keys, skey)
	}
	s.txcache[skey] = dbm.CopyBytes(value)
	return nil
}

// BatchGet batch get keys from state db, 不存在的 key 返回 nil
func (s *StateDB) BatchGet(keys [][]byte) (values [][]byte, err error) {
	values = make([][]byte, 0, len(keys))
	for _, key := range keys {
		v, err := s.Get(key)
		if err != nil && err != types.ErrNotFound {
			return nil, err
		}
		values = append(values, v)
	}
	return values, nil
}
