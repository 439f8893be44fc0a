// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package executor

import (
	"strconv"
	"testing"
	"time"

	dbm "github.com/33cn/rps/common/db"
	"github.com/33cn/rps/executor/drivers"
	"github.com/33cn/rps/types"
	"github.com/pkg/errors"
	"github.com/rcrowley/go-metrics"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testExecer = "testexec"

const (
	testActionLock = iota + 1
	testActionFail
	testActionLeak
)

var (
	addr1 = "0x1111111111111111111111111111111111111111"
	addr2 = "0x2222222222222222222222222222222222222222"
)

var testSumKey = []byte("mavl-" + testExecer + "-sum")

func init() {
	DisableLog()
	drivers.Register(testExecer, newTestDriver)
}

// testDriver 冻结 tx.Amount, 用于测试执行框架本身
type testDriver struct {
	drivers.DriverBase
}

func newTestDriver() drivers.Driver {
	d := &testDriver{}
	d.SetChild(d)
	return d
}

func (d *testDriver) GetDriverName() string {
	return testExecer
}

func (d *testDriver) GetActionName(tx *types.Transaction) string {
	if tx.Action == nil {
		return "unknown"
	}
	switch tx.Action.Ty {
	case testActionLock:
		return "lock"
	case testActionFail:
		return "fail"
	case testActionLeak:
		return "leak"
	}
	return "unknown"
}

func (d *testDriver) sum() int64 {
	v, err := d.GetStateDB().Get(testSumKey)
	if err != nil {
		return 0
	}
	n, _ := strconv.ParseInt(string(v), 10, 64)
	return n
}

func (d *testDriver) Exec(tx *types.Transaction, index int) (*types.Receipt, error) {
	acc := d.GetCoinsAccount()
	receipt, err := acc.TransferToExec(tx.From, d.GetAddr(), tx.Amount)
	if err != nil {
		return nil, err
	}
	_ = d.GetStateDB().Set(testSumKey, []byte(strconv.FormatInt(d.sum()+tx.Amount, 10)))
	switch tx.Action.Ty {
	case testActionLock:
		r, err := acc.ExecFrozen(tx.From, d.GetAddr(), tx.Amount)
		if err != nil {
			return nil, err
		}
		return types.MergeReceipt(receipt, r), nil
	case testActionFail:
		return nil, types.ErrInvalidParam
	}
	return receipt, nil
}

func (d *testDriver) CheckState() error {
	if frozen := d.GetCoinsAccount().TotalFrozen(d.GetAddr()); frozen != d.sum() {
		return errors.Wrapf(types.ErrEscrowInvariant, "sum %d frozen %d", d.sum(), frozen)
	}
	return nil
}

func (d *testDriver) ExecLocal(tx *types.Transaction, receipt *types.Receipt, index int) ([]*types.KeyValue, error) {
	key := []byte("LODB-" + testExecer + "-" + strconv.FormatInt(d.GetHeight(), 10))
	return []*types.KeyValue{{Key: key, Value: []byte(tx.From)}}, nil
}

func (d *testDriver) Events(tx *types.Transaction, receipt *types.Receipt) []*types.Event {
	return []*types.Event{{Type: "lock", Addr: tx.From, Amount: tx.Amount}}
}

func (d *testDriver) Query(funcName string, params []byte) (interface{}, error) {
	if funcName != "Sum" {
		return nil, types.ErrActionNotSupport
	}
	return d.sum(), nil
}

func newTestTx(ty int32, from string, amount int64) *types.Transaction {
	return &types.Transaction{Execer: testExecer, From: from, Amount: amount, Action: &types.RpsAction{Ty: ty}}
}

func newTestExecutor(t *testing.T, db dbm.DB) *Executor {
	exec := New(&types.Exec{RevealTimeout: 10}, db)
	exec.SetTimeFunc(func() int64 { return 1000 })
	err := exec.Genesis([]*types.GenesisAccount{
		{Addr: addr1, Amount: 100 * types.Coin},
		{Addr: addr2, Amount: 100 * types.Coin},
	})
	require.NoError(t, err)
	return exec
}

func TestGenesisOnce(t *testing.T) {
	exec := newTestExecutor(t, newMemDB(t))
	err := exec.Genesis([]*types.GenesisAccount{{Addr: addr1, Amount: types.Coin}})
	assert.Equal(t, types.ErrGenesisDone, err)
	bal, err := exec.GetBalance(addr1, testExecer)
	require.NoError(t, err)
	assert.Equal(t, 100*types.Coin, bal.Coins.Balance)
	assert.Equal(t, int64(0), exec.Height())
}

func TestGenesisBadAddress(t *testing.T) {
	exec := New(nil, newMemDB(t))
	err := exec.Genesis([]*types.GenesisAccount{{Addr: addr1, Amount: types.Coin}, {Addr: "0x12", Amount: types.Coin}})
	assert.True(t, errors.Is(err, types.ErrInvalidAddress))
	// 失败不留下任何数据, 可以重新执行
	bal, err := exec.GetBalance(addr1, testExecer)
	require.NoError(t, err)
	assert.Equal(t, int64(0), bal.Coins.Balance)
	require.NoError(t, exec.Genesis([]*types.GenesisAccount{{Addr: addr1, Amount: types.Coin}}))
}

func TestExecTx(t *testing.T) {
	exec := newTestExecutor(t, newMemDB(t))
	sub, cancel := exec.Subscribe(4)
	defer cancel()

	result, err := exec.ExecTx(newTestTx(testActionLock, addr1, 10*types.Coin))
	require.NoError(t, err)
	assert.Equal(t, int64(1), result.Seq)
	assert.Equal(t, int64(1000), result.Time)
	assert.Equal(t, "lock", result.Action)
	assert.Equal(t, types.ExecOk, int(result.Receipt.Ty))
	assert.Equal(t, int64(1), exec.Height())

	bal, err := exec.GetBalance(addr1, testExecer)
	require.NoError(t, err)
	assert.Equal(t, 90*types.Coin, bal.Coins.Balance)
	assert.Equal(t, 10*types.Coin, bal.Escrow.Frozen)
	assert.Equal(t, int64(0), bal.Escrow.Balance)

	stored, err := exec.GetReceipt(1)
	require.NoError(t, err)
	assert.Equal(t, result.Action, stored.Action)
	assert.Equal(t, len(result.Receipt.Logs), len(stored.Receipt.Logs))
	_, err = exec.GetReceipt(2)
	assert.Equal(t, types.ErrNotFound, err)

	local, err := exec.db.Get([]byte("LODB-" + testExecer + "-1"))
	require.NoError(t, err)
	assert.Equal(t, addr1, string(local))

	select {
	case ev := <-sub:
		assert.Equal(t, "lock", ev.Type)
		assert.Equal(t, int64(1), ev.Seq)
		assert.Equal(t, 0, ev.Index)
		assert.NotEmpty(t, ev.ID)
	case <-time.After(time.Second):
		t.Fatal("no event")
	}

	sum, err := exec.Query(testExecer, "Sum", nil)
	require.NoError(t, err)
	assert.Equal(t, 10*types.Coin, sum)
	_, err = exec.Query(testExecer, "None", nil)
	assert.Equal(t, types.ErrActionNotSupport, err)
	_, err = exec.Query("none", "Sum", nil)
	assert.Equal(t, types.ErrUnknowDriver, err)

	assert.Equal(t, int64(1), metrics.GetOrRegisterCounter("exec.tx.ok", exec.Metrics()).Count())
	assert.Equal(t, int64(1), metrics.GetOrRegisterCounter("exec.action.lock", exec.Metrics()).Count())
}

func TestExecTxRollback(t *testing.T) {
	exec := newTestExecutor(t, newMemDB(t))

	_, err := exec.ExecTx(newTestTx(testActionFail, addr1, 10*types.Coin))
	assert.Equal(t, types.ErrInvalidParam, err)
	_, err = exec.ExecTx(newTestTx(testActionLeak, addr1, 10*types.Coin))
	assert.True(t, errors.Is(err, types.ErrEscrowInvariant))
	_, err = exec.ExecTx(newTestTx(testActionLock, addr1, 1000*types.Coin))
	assert.Equal(t, types.ErrNoBalance, err)

	assert.Equal(t, int64(0), exec.Height())
	bal, err := exec.GetBalance(addr1, testExecer)
	require.NoError(t, err)
	assert.Equal(t, 100*types.Coin, bal.Coins.Balance)
	assert.Equal(t, int64(0), bal.Escrow.Frozen)
	sum, err := exec.Query(testExecer, "Sum", nil)
	require.NoError(t, err)
	assert.Equal(t, int64(0), sum)
	assert.Equal(t, int64(3), metrics.GetOrRegisterCounter("exec.tx.fail", exec.Metrics()).Count())

	// 失败的交易不占用序号
	result, err := exec.ExecTx(newTestTx(testActionLock, addr2, types.Coin))
	require.NoError(t, err)
	assert.Equal(t, int64(1), result.Seq)
}

func TestExecTxCheck(t *testing.T) {
	exec := newTestExecutor(t, newMemDB(t))
	_, err := exec.ExecTx(nil)
	assert.Equal(t, types.ErrInvalidParam, err)
	_, err = exec.ExecTx(newTestTx(testActionLock, "0x1234", types.Coin))
	assert.Equal(t, types.ErrInvalidAddress, err)
	_, err = exec.ExecTx(newTestTx(testActionLock, addr1, -1))
	assert.Equal(t, types.ErrAmount, err)
	_, err = exec.ExecTx(&types.Transaction{Execer: testExecer, From: addr1})
	assert.Equal(t, types.ErrActionNotSupport, err)
	tx := newTestTx(testActionLock, addr1, types.Coin)
	tx.Execer = "none"
	_, err = exec.ExecTx(tx)
	assert.Equal(t, types.ErrUnknowDriver, err)
}

func TestGetEvents(t *testing.T) {
	exec := newTestExecutor(t, newMemDB(t))
	for i := 0; i < 5; i++ {
		_, err := exec.ExecTx(newTestTx(testActionLock, addr1, types.Coin))
		require.NoError(t, err)
	}
	events, err := exec.GetEvents(0, 0)
	require.NoError(t, err)
	require.Len(t, events, 5)
	for i, ev := range events {
		assert.Equal(t, int64(i+1), ev.Seq)
	}
	events, err = exec.GetEvents(3, 2)
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, int64(3), events[0].Seq)
	assert.Equal(t, int64(4), events[1].Seq)
	events, err = exec.GetEvents(6, 10)
	require.NoError(t, err)
	assert.Len(t, events, 0)
}

func TestExecutorReopen(t *testing.T) {
	dir := t.TempDir()
	db, err := dbm.NewDB("test", "goleveldb", dir, 16)
	require.NoError(t, err)
	exec := newTestExecutor(t, db)
	_, err = exec.ExecTx(newTestTx(testActionLock, addr1, types.Coin))
	require.NoError(t, err)
	exec.Close()
	db.Close()

	db, err = dbm.NewDB("test", "goleveldb", dir, 16)
	require.NoError(t, err)
	defer db.Close()
	exec = New(nil, db)
	assert.Equal(t, int64(1), exec.Height())
	assert.Equal(t, types.ErrGenesisDone, exec.Genesis(nil))
	bal, err := exec.GetBalance(addr1, testExecer)
	require.NoError(t, err)
	assert.Equal(t, 99*types.Coin, bal.Coins.Balance)
	assert.Equal(t, types.Coin, bal.Escrow.Frozen)
	result, err := exec.ExecTx(newTestTx(testActionLock, addr1, types.Coin))
	require.NoError(t, err)
	assert.Equal(t, int64(2), result.Seq)
}

func TestSubscribe(t *testing.T) {
	exec := newTestExecutor(t, newMemDB(t))
	sub1, cancel1 := exec.Subscribe(1)
	sub2, cancel2 := exec.Subscribe(1)
	defer cancel2()
	cancel1()
	cancel1()
	_, ok := <-sub1
	assert.False(t, ok)

	// 第二个事件因为缓冲区满被丢弃, 可以从 GetEvents 查到
	_, err := exec.ExecTx(newTestTx(testActionLock, addr1, types.Coin))
	require.NoError(t, err)
	_, err = exec.ExecTx(newTestTx(testActionLock, addr1, types.Coin))
	require.NoError(t, err)
	ev := <-sub2
	assert.Equal(t, int64(1), ev.Seq)
	select {
	case <-sub2:
		t.Fatal("event should be dropped")
	default:
	}
	events, err := exec.GetEvents(1, 10)
	require.NoError(t, err)
	assert.Len(t, events, 2)

	exec.Close()
	_, ok = <-sub2
	assert.False(t, ok)
}

func TestCancelAfterClose(t *testing.T) {
	exec := newTestExecutor(t, newMemDB(t))
	sub, cancel := exec.Subscribe(1)
	exec.Close()
	_, ok := <-sub
	assert.False(t, ok)
	assert.NotPanics(t, cancel)
	assert.NotPanics(t, cancel)
}

func TestGetEventsMaxCount(t *testing.T) {
	exec := newTestExecutor(t, newMemDB(t))
	for i := 0; i < types.MaxListCount+5; i++ {
		_, err := exec.ExecTx(newTestTx(testActionLock, addr1, types.Coin/1000))
		require.NoError(t, err)
	}
	events, err := exec.GetEvents(0, types.MaxListCount+5)
	require.NoError(t, err)
	assert.Len(t, events, types.MaxListCount)
	events, err = exec.GetEvents(0, 0)
	require.NoError(t, err)
	assert.Len(t, events, types.DefaultListCount)
}

func TestGetBalances(t *testing.T) {
	exec := newTestExecutor(t, newMemDB(t))
	_, err := exec.ExecTx(newTestTx(testActionLock, addr2, 3*types.Coin))
	require.NoError(t, err)
	replies, err := exec.GetBalances([]string{addr2, addr1, "0x3333333333333333333333333333333333333333"}, testExecer)
	require.NoError(t, err)
	require.Len(t, replies, 3)
	assert.Equal(t, addr2, replies[0].Addr)
	assert.Equal(t, 97*types.Coin, replies[0].Coins.Balance)
	assert.Equal(t, 3*types.Coin, replies[0].Escrow.Frozen)
	assert.Equal(t, 100*types.Coin, replies[1].Coins.Balance)
	assert.Equal(t, int64(0), replies[2].Coins.Balance)

	_, err = exec.GetBalances(nil, testExecer)
	assert.Equal(t, types.ErrInvalidParam, errors.Cause(err))
	_, err = exec.GetBalances([]string{addr1, "bad"}, testExecer)
	assert.Equal(t, types.ErrInvalidAddress, err)
}

func TestExecTxKeepsCallerTx(t *testing.T) {
	lower := "0xabcdefabcdefabcdefabcdefabcdefabcdefabcd"
	checksum := "0xABcdEFABcdEFabcdEfAbCdefabcdeFABcDEFabCD"
	exec := New(nil, newMemDB(t))
	require.NoError(t, exec.Genesis([]*types.GenesisAccount{{Addr: checksum, Amount: types.Coin}}))

	tx := newTestTx(testActionLock, lower, 2*types.Coin)
	_, err := exec.ExecTx(tx)
	assert.Equal(t, types.ErrNoBalance, errors.Cause(err))
	assert.Equal(t, lower, tx.From)

	tx = newTestTx(testActionLock, lower, types.Coin)
	result, err := exec.ExecTx(tx)
	require.NoError(t, err)
	assert.Equal(t, checksum, result.From)
	assert.Equal(t, lower, tx.From)
}
