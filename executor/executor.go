// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package executor 交易执行引擎
//
// 所有修改状态的交易串行执行, 每笔交易在内存事务中执行, 失败时回滚,
// 成功时状态数据, 本地索引, 交易回执以及事件在一个 batch 中写入数据库.
package executor

import (
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/33cn/rps/account"
	dbm "github.com/33cn/rps/common/db"
	"github.com/33cn/rps/executor/drivers"
	"github.com/33cn/rps/types"
	log "github.com/inconshreveable/log15"
	"github.com/pkg/errors"
	"github.com/rcrowley/go-metrics"
)

var elog = log.New("module", "execs")

// DisableLog disable log
func DisableLog() {
	elog.SetHandler(log.DiscardHandler())
}

var (
	heightKey        = []byte("LODB-exec-height")
	receiptKeyPrefix = "LODB-exec-receipt-"
	eventKeyPrefix   = "LODB-exec-event-"
)

func calcReceiptKey(seq int64) []byte {
	return []byte(fmt.Sprintf("%s%020d", receiptKeyPrefix, seq))
}

func calcEventKey(seq int64, index int) []byte {
	return []byte(fmt.Sprintf("%s%020d-%04d", eventKeyPrefix, seq, index))
}

// Executor 交易执行器
type Executor struct {
	mu       sync.RWMutex
	cfg      *types.Exec
	db       dbm.DB
	state    *stateCache
	height   int64
	now      func() int64
	metrics  *execMetrics
	notifier *notifier
}

// New 创建执行器, 从数据库中恢复已经执行的交易序号
func New(cfg *types.Exec, db dbm.DB) *Executor {
	if cfg == nil {
		cfg = &types.Exec{RevealTimeout: types.DefaultRevealTimeout}
	}
	exec := &Executor{
		cfg:      cfg,
		db:       db,
		state:    newStateCache(db, int(cfg.GameCacheSize)),
		now:      func() int64 { return time.Now().Unix() },
		metrics:  newExecMetrics(),
		notifier: newNotifier(),
	}
	if value, err := db.Get(heightKey); err == nil {
		height, err := strconv.ParseInt(string(value), 10, 64)
		if err != nil {
			panic(err) //数据库已经损坏
		}
		exec.height = height
	}
	exec.metrics.height.Update(exec.height)
	elog.Info("executor start", "height", exec.height, "drivers", drivers.Names())
	return exec
}

// SetTimeFunc 设置时钟, 测试时使用
func (exec *Executor) SetTimeFunc(now func() int64) {
	exec.mu.Lock()
	defer exec.mu.Unlock()
	exec.now = now
}

// Height 最后一笔交易的序号
func (exec *Executor) Height() int64 {
	exec.mu.RLock()
	defer exec.mu.RUnlock()
	return exec.height
}

// Metrics 执行器的 metrics
func (exec *Executor) Metrics() metrics.Registry {
	return exec.metrics.registry
}

// Subscribe 订阅事件, 调用返回的函数取消订阅
func (exec *Executor) Subscribe(buf int) (<-chan *types.Event, func()) {
	return exec.notifier.subscribe(buf)
}

// Close 关闭所有订阅
func (exec *Executor) Close() {
	exec.notifier.close()
}

func (exec *Executor) loadDriver(name string, height, blocktime int64) (drivers.Driver, *StateDB, error) {
	driver, err := drivers.LoadDriver(name)
	if err != nil {
		return nil, nil, err
	}
	statedb := NewStateDB(exec.state)
	driver.SetStateDB(statedb)
	driver.SetLocalDB(NewLocalDB(exec.db))
	driver.SetEnv(height, blocktime)
	driver.SetExecConfig(exec.cfg)
	return driver, statedb, nil
}

// ExecTx 执行一笔交易, 要么全部生效, 要么没有任何修改.
// 执行的是 tx 的拷贝, 地址规范化不会写回调用者的 tx
func (exec *Executor) ExecTx(tx *types.Transaction) (*types.TxResult, error) {
	if tx == nil {
		return nil, types.ErrInvalidParam
	}
	txCopy := *tx
	tx = &txCopy
	start := time.Now()
	exec.mu.Lock()
	defer exec.mu.Unlock()

	height := exec.height + 1
	blocktime := exec.now()
	driver, statedb, err := exec.loadDriver(tx.Execer, height, blocktime)
	if err != nil {
		return nil, err
	}
	action := driver.GetActionName(tx)
	receipt, err := exec.execTx(driver, statedb, tx)
	if err != nil {
		statedb.Rollback()
		exec.metrics.fail(action, start)
		elog.Debug("ExecTx failed", "from", tx.From, "action", action, "err", err)
		return nil, err
	}
	kvs := statedb.Commit()

	localKV, err := driver.ExecLocal(tx, receipt, 0)
	if err != nil {
		exec.metrics.fail(action, start)
		return nil, errors.Wrap(err, "ExecLocal")
	}
	result := &types.TxResult{
		Seq:     height,
		Time:    blocktime,
		From:    tx.From,
		Execer:  tx.Execer,
		Action:  action,
		Receipt: receipt,
	}
	events := driver.Events(tx, receipt)
	for i, ev := range events {
		ev.ID = newEventID()
		ev.Seq = height
		ev.Index = i
		ev.Time = blocktime
	}

	batch := exec.db.NewBatch(true)
	for _, kv := range kvs {
		batch.Set(kv.Key, kv.Value)
	}
	for _, kv := range localKV {
		batch.Set(kv.Key, kv.Value)
	}
	batch.Set(calcReceiptKey(height), types.Encode(result))
	for i, ev := range events {
		batch.Set(calcEventKey(height, i), types.Encode(ev))
	}
	batch.Set(heightKey, []byte(strconv.FormatInt(height, 10)))
	if err := batch.Write(); err != nil {
		exec.state.purge()
		exec.metrics.fail(action, start)
		elog.Error("ExecTx write", "height", height, "err", err)
		return nil, errors.Wrap(err, "ExecTx write")
	}
	exec.state.update(kvs)
	exec.height = height
	exec.metrics.ok(action, height, start)
	exec.metrics.events.Mark(int64(len(events)))
	exec.notifier.publish(events)
	elog.Debug("ExecTx", "seq", height, "from", tx.From, "action", action, "kvs", len(kvs), "events", len(events))
	return result, nil
}

func (exec *Executor) execTx(driver drivers.Driver, statedb *StateDB, tx *types.Transaction) (*types.Receipt, error) {
	if err := driver.CheckTx(tx, 0); err != nil {
		return nil, err
	}
	from, err := types.NormalizeAddress(tx.From)
	if err != nil {
		return nil, err
	}
	tx.From = from
	statedb.Begin()
	receipt, err := driver.Exec(tx, 0)
	if err != nil {
		return nil, err
	}
	if err := driver.CheckState(); err != nil {
		elog.Crit("execTx state check failed", "from", tx.From, "action", driver.GetActionName(tx), "err", err)
		return nil, err
	}
	return receipt, nil
}

// Query 在已经提交的状态上查询
func (exec *Executor) Query(execer, funcName string, params []byte) (interface{}, error) {
	exec.mu.RLock()
	defer exec.mu.RUnlock()
	driver, _, err := exec.loadDriver(execer, exec.height, exec.now())
	if err != nil {
		return nil, err
	}
	return driver.Query(funcName, params)
}

// GetBalance coins 余额以及在执行器中的子账户
func (exec *Executor) GetBalance(addr, execer string) (*types.ReplyBalance, error) {
	replies, err := exec.GetBalances([]string{addr}, execer)
	if err != nil {
		return nil, err
	}
	return replies[0], nil
}

// GetBalances 批量查询, 返回顺序与 addrs 一致
func (exec *Executor) GetBalances(addrs []string, execer string) ([]*types.ReplyBalance, error) {
	if len(addrs) == 0 || len(addrs) > int(types.MaxListCount) {
		return nil, errors.Wrapf(types.ErrInvalidParam, "addrs count %d", len(addrs))
	}
	normalized := make([]string, 0, len(addrs))
	for _, addr := range addrs {
		a, err := types.NormalizeAddress(addr)
		if err != nil {
			return nil, err
		}
		normalized = append(normalized, a)
	}
	exec.mu.RLock()
	defer exec.mu.RUnlock()
	acc := account.NewCoinsAccount(NewStateDB(exec.state))
	coins := acc.LoadAccounts(normalized)
	execaddr := drivers.ExecAddress(execer)
	replies := make([]*types.ReplyBalance, 0, len(normalized))
	for i, addr := range normalized {
		replies = append(replies, &types.ReplyBalance{
			Addr:   addr,
			Coins:  coins[i],
			Escrow: acc.LoadExecAccount(addr, execaddr),
		})
	}
	return replies, nil
}

// GetReceipt 按照序号查询交易回执
func (exec *Executor) GetReceipt(seq int64) (*types.TxResult, error) {
	value, err := exec.db.Get(calcReceiptKey(seq))
	if err != nil {
		return nil, types.ErrNotFound
	}
	var result types.TxResult
	if err := types.Decode(value, &result); err != nil {
		return nil, errors.Wrap(err, "GetReceipt")
	}
	return &result, nil
}

// GetEvents 从序号 from 开始(包含)按顺序返回事件
func (exec *Executor) GetEvents(from int64, count int32) ([]*types.Event, error) {
	if count <= 0 {
		count = types.DefaultListCount
	}
	if count > types.MaxListCount {
		count = types.MaxListCount
	}
	prefix := []byte(eventKeyPrefix)
	it := exec.db.Iterator(prefix, nil, false)
	defer it.Close()
	events := make([]*types.Event, 0)
	for it.Seek(calcEventKey(from, 0)); it.Valid(); it.Next() {
		var ev types.Event
		if err := types.Decode(it.Value(), &ev); err != nil {
			return nil, errors.Wrap(err, "GetEvents")
		}
		events = append(events, &ev)
		if int32(len(events)) == count {
			break
		}
	}
	if err := it.Error(); err != nil {
		return nil, errors.Wrap(err, "GetEvents")
	}
	return events, nil
}
