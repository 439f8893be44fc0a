// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package drivers 执行器驱动的接口和公共实现
package drivers

import (
	"github.com/33cn/rps/account"
	dbm "github.com/33cn/rps/common/db"
	"github.com/33cn/rps/types"
)

// Driver 执行器驱动, 每笔交易或者查询都会加载一个新的实例
type Driver interface {
	SetStateDB(dbm.KV)
	GetStateDB() dbm.KV
	SetLocalDB(dbm.KVDB)
	GetLocalDB() dbm.KVDB
	SetEnv(height, blocktime int64)
	SetExecConfig(cfg *types.Exec)
	GetName() string
	GetDriverName() string
	GetActionName(tx *types.Transaction) string
	CheckTx(tx *types.Transaction, index int) error
	Exec(tx *types.Transaction, index int) (*types.Receipt, error)
	ExecLocal(tx *types.Transaction, receipt *types.Receipt, index int) ([]*types.KeyValue, error)
	// CheckState 每笔交易执行之后检查状态的一致性, 不满足时整笔交易回滚
	CheckState() error
	// Events 从回执中提取需要通知的事件
	Events(tx *types.Transaction, receipt *types.Receipt) []*types.Event
	Query(funcName string, params []byte) (interface{}, error)
}

// DriverBase 公共实现, 具体驱动嵌入后通过 SetChild 设置自身
type DriverBase struct {
	statedb      dbm.KV
	localdb      dbm.KVDB
	coinsAccount *account.DB
	height       int64
	blocktime    int64
	cfg          *types.Exec
	child        Driver
}

// SetEnv 设置交易执行时的序号和时间
func (d *DriverBase) SetEnv(height, blocktime int64) {
	d.height = height
	d.blocktime = blocktime
}

// SetChild 设置具体的驱动
func (d *DriverBase) SetChild(e Driver) {
	d.child = e
}

// GetName 执行器名称
func (d *DriverBase) GetName() string {
	return d.child.GetDriverName()
}

// GetDriverName 具体驱动需要覆盖
func (d *DriverBase) GetDriverName() string {
	return "driver"
}

// GetAddr 执行器地址
func (d *DriverBase) GetAddr() string {
	return ExecAddress(d.child.GetName())
}

// GetActionName 默认使用 types 中的名称
func (d *DriverBase) GetActionName(tx *types.Transaction) string {
	if tx.Action == nil {
		return "unknown"
	}
	return types.ActionName(tx.Action.Ty)
}

// CheckTx 检查交易的基本格式
func (d *DriverBase) CheckTx(tx *types.Transaction, index int) error {
	if tx.Action == nil {
		return types.ErrActionNotSupport
	}
	if err := types.CheckAddress(tx.From); err != nil {
		return err
	}
	if tx.Amount < 0 {
		return types.ErrAmount
	}
	return nil
}

// Exec 默认不支持任何 action
func (d *DriverBase) Exec(tx *types.Transaction, index int) (*types.Receipt, error) {
	return nil, types.ErrActionNotSupport
}

// ExecLocal 默认不生成本地索引
func (d *DriverBase) ExecLocal(tx *types.Transaction, receipt *types.Receipt, index int) ([]*types.KeyValue, error) {
	return nil, nil
}

// CheckState 默认不检查
func (d *DriverBase) CheckState() error {
	return nil
}

// Events 默认没有事件
func (d *DriverBase) Events(tx *types.Transaction, receipt *types.Receipt) []*types.Event {
	return nil
}

// Query 默认不支持查询
func (d *DriverBase) Query(funcName string, params []byte) (interface{}, error) {
	return nil, types.ErrActionNotSupport
}

// SetStateDB 设置状态数据库, 同时切换 coins 账户的数据库
func (d *DriverBase) SetStateDB(db dbm.KV) {
	d.statedb = db
	if d.coinsAccount == nil {
		d.coinsAccount = account.NewCoinsAccount(db)
		return
	}
	d.coinsAccount.SetDB(db)
}

// GetStateDB state db
func (d *DriverBase) GetStateDB() dbm.KV {
	return d.statedb
}

// SetLocalDB 设置本地数据库
func (d *DriverBase) SetLocalDB(db dbm.KVDB) {
	d.localdb = db
}

// GetLocalDB local db
func (d *DriverBase) GetLocalDB() dbm.KVDB {
	return d.localdb
}

// GetCoinsAccount 账户操作
func (d *DriverBase) GetCoinsAccount() *account.DB {
	return d.coinsAccount
}

// SetExecConfig 执行器配置
func (d *DriverBase) SetExecConfig(cfg *types.Exec) {
	d.cfg = cfg
}

// GetExecConfig 执行器配置, 未设置时返回默认值
func (d *DriverBase) GetExecConfig() *types.Exec {
	if d.cfg == nil {
		return &types.Exec{RevealTimeout: types.DefaultRevealTimeout}
	}
	return d.cfg
}

// GetHeight 交易序号
func (d *DriverBase) GetHeight() int64 {
	return d.height
}

// GetBlockTime 交易执行时间
func (d *DriverBase) GetBlockTime() int64 {
	return d.blocktime
}
