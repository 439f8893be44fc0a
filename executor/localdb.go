// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package executor

import (
	dbm "github.com/33cn/rps/common/db"
	"github.com/33cn/rps/types"
	"github.com/pkg/errors"
)

// LocalDB 本地数据库，不参与状态的一致性检查
// 数据的 get set 主要经过 cache, List 只查询已经落盘的数据, cache 中的修改不影响 List
type LocalDB struct {
	db    dbm.DB
	cache map[string][]byte
	list  *dbm.ListHelper
}

// NewLocalDB 创建一个新的LocalDB
func NewLocalDB(db dbm.DB) *LocalDB {
	return &LocalDB{
		db:    db,
		cache: make(map[string][]byte),
		list:  dbm.NewListHelper(db),
	}
}

// Get 获取key
func (l *LocalDB) Get(key []byte) ([]byte, error) {
	if value, ok := l.cache[string(key)]; ok {
		if value == nil {
			return nil, types.ErrNotFound
		}
		return value, nil
	}
	value, err := l.db.Get(key)
	if err == dbm.ErrNotFoundInDb {
		return nil, types.ErrNotFound
	}
	if err != nil {
		return nil, errors.Wrapf(err, "localdb get %s", string(key))
	}
	return value, nil
}

// Set 只写入 cache
func (l *LocalDB) Set(key []byte, value []byte) error {
	l.cache[string(key)] = dbm.CopyBytes(value)
	return nil
}

// List 从数据库中查询数据列表
func (l *LocalDB) List(prefix, key []byte, count, direction int32) ([][]byte, error) {
	values := l.list.List(prefix, key, count, direction)
	if values == nil {
		return nil, types.ErrNotFound
	}
	return values, nil
}

// PrefixCount 从数据库中查询指定前缀的key的数量
func (l *LocalDB) PrefixCount(prefix []byte) (count int64) {
	return l.list.PrefixCount(prefix)
}
