// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package account 实现 rps 节点的资产操作

coins 账户保存地址的可用余额, 执行器子账户保存地址存入某个执行器的资金,
子账户的 Frozen 部分就是该执行器托管的资金.
*/
package account

import (
	"strconv"

	dbm "github.com/33cn/rps/common/db"
	"github.com/33cn/rps/types"
	log "github.com/inconshreveable/log15"
)

var alog = log.New("module", "account")

// DB for account
type DB struct {
	db                   dbm.KV
	accountKeyPerfix     []byte
	execAccountKeyPerfix []byte
	frozenKeyPerfix      []byte
	symbol               string
}

// NewCoinsAccount 主币账户
func NewCoinsAccount(db dbm.KV) *DB {
	return NewAccountDB(types.RpsX, db)
}

// NewAccountDB symbol 决定 key 的前缀
func NewAccountDB(symbol string, db dbm.KV) *DB {
	prefix := SymbolPrefix(symbol)
	acc := &DB{symbol: symbol}
	acc.accountKeyPerfix = []byte(prefix)
	acc.execAccountKeyPerfix = append([]byte(prefix), []byte("exec-")...)
	acc.frozenKeyPerfix = append([]byte(prefix), []byte("frozen-")...)
	acc.SetDB(db)
	return acc
}

// SymbolPrefix 账户 key 前缀
func SymbolPrefix(symbol string) string {
	return "mavl-coins-" + symbol + "-"
}

// SetDB 执行交易时切换到带事务的 statedb
func (acc *DB) SetDB(db dbm.KV) *DB {
	acc.db = db
	return acc
}

// LoadAccount 不存在时返回空账户
func (acc *DB) LoadAccount(addr string) *types.Account {
	value, err := acc.db.Get(acc.AccountKey(addr))
	if err != nil {
		return &types.Account{Addr: addr}
	}
	var acc1 types.Account
	types.MustDecode(value, &acc1) //数据库已经损坏
	return &acc1
}

// LoadAccounts 批量查询
func (acc *DB) LoadAccounts(addrs []string) []*types.Account {
	accs := make([]*types.Account, 0, len(addrs))
	for _, addr := range addrs {
		accs = append(accs, acc.LoadAccount(addr))
	}
	return accs
}

// CheckTransfer 检查余额是否足够
func (acc *DB) CheckTransfer(from, to string, amount int64) error {
	if !types.CheckAmount(amount) {
		return types.ErrAmount
	}
	if from == to {
		return types.ErrSendSameToRecv
	}
	if acc.LoadAccount(from).Balance-amount < 0 {
		return types.ErrNoBalance
	}
	return nil
}

// Transfer coins 转账
func (acc *DB) Transfer(from, to string, amount int64) (*types.Receipt, error) {
	if err := acc.CheckTransfer(from, to, amount); err != nil {
		return nil, err
	}
	accFrom := acc.LoadAccount(from)
	accTo := acc.LoadAccount(to)
	copyfrom := *accFrom
	copyto := *accTo

	accFrom.Balance -= amount
	accTo.Balance += amount

	receiptBalanceFrom := &types.ReceiptAccountTransfer{Prev: &copyfrom, Current: accFrom}
	receiptBalanceTo := &types.ReceiptAccountTransfer{Prev: &copyto, Current: accTo}

	acc.SaveAccount(accFrom)
	acc.SaveAccount(accTo)
	kv := acc.GetKVSet(accFrom)
	kv = append(kv, acc.GetKVSet(accTo)...)
	return &types.Receipt{
		Ty: types.ExecOk,
		KV: kv,
		Logs: []*types.ReceiptLog{
			types.NewLog(types.TyLogTransfer, receiptBalanceFrom),
			types.NewLog(types.TyLogTransfer, receiptBalanceTo),
		},
	}, nil
}

// SaveAccount save
func (acc *DB) SaveAccount(acc1 *types.Account) {
	for _, kv := range acc.GetKVSet(acc1) {
		if err := acc.db.Set(kv.Key, kv.Value); err != nil {
			panic(err)
		}
	}
}

// GetKVSet 账户对应的 kv
func (acc *DB) GetKVSet(acc1 *types.Account) (kvset []*types.KeyValue) {
	return []*types.KeyValue{{Key: acc.AccountKey(acc1.Addr), Value: types.Encode(acc1)}}
}

// AccountKey return the key of address in DB
func (acc *DB) AccountKey(address string) (key []byte) {
	key = append(key, acc.accountKeyPerfix...)
	key = append(key, []byte(address)...)
	return key
}

// TotalFrozen 执行器托管的资金总额
func (acc *DB) TotalFrozen(execaddr string) int64 {
	value, err := acc.db.Get(acc.frozenKey(execaddr))
	if err != nil {
		return 0
	}
	total, err := strconv.ParseInt(string(value), 10, 64)
	if err != nil {
		panic(err)
	}
	return total
}

func (acc *DB) frozenKey(execaddr string) []byte {
	return append(append([]byte{}, acc.frozenKeyPerfix...), []byte(execaddr)...)
}

// addFrozen 维护执行器托管总额, 返回需要写入的 kv
func (acc *DB) addFrozen(execaddr string, delta int64) *types.KeyValue {
	total := acc.TotalFrozen(execaddr) + delta
	if total < 0 {
		alog.Crit("addFrozen total frozen below zero", "execaddr", execaddr, "total", total)
		panic(types.ErrEscrowInvariant)
	}
	kv := &types.KeyValue{Key: acc.frozenKey(execaddr), Value: []byte(strconv.FormatInt(total, 10))}
	if err := acc.db.Set(kv.Key, kv.Value); err != nil {
		panic(err)
	}
	return kv
}
