// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package executor

import (
	dbm "github.com/33cn/rps/common/db"
	"github.com/33cn/rps/types"
	lru "github.com/hashicorp/golang-lru"
)

const defaultStateCacheSize = 1024

// stateCache 已经提交的状态数据, 读穿透到数据库, 写入数据库成功之后再更新
type stateCache struct {
	db    dbm.DB
	cache *lru.Cache
}

func newStateCache(db dbm.DB, size int) *stateCache {
	if size <= 0 {
		size = defaultStateCacheSize
	}
	cache, err := lru.New(size)
	if err != nil {
		panic(err)
	}
	return &stateCache{db: db, cache: cache}
}

// Get 返回的数据调用者可以修改
func (c *stateCache) Get(key []byte) ([]byte, error) {
	if v, ok := c.cache.Get(string(key)); ok {
		return dbm.CopyBytes(v.([]byte)), nil
	}
	value, err := c.db.Get(key)
	if err != nil {
		return nil, err
	}
	c.cache.Add(string(key), dbm.CopyBytes(value))
	return value, nil
}

// Set 直接写入数据库
func (c *stateCache) Set(key []byte, value []byte) error {
	if err := c.db.Set(key, value); err != nil {
		return err
	}
	c.update([]*types.KeyValue{{Key: key, Value: value}})
	return nil
}

func (c *stateCache) update(kvs []*types.KeyValue) {
	for _, kv := range kvs {
		if kv.Value == nil {
			c.cache.Remove(string(kv.Key))
			continue
		}
		c.cache.Add(string(kv.Key), dbm.CopyBytes(kv.Value))
	}
}

func (c *stateCache) purge() {
	c.cache.Purge()
}

func (c *stateCache) len() int {
	return c.cache.Len()
}
