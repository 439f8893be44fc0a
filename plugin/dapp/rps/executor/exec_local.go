// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package executor

import (
	"github.com/33cn/rps/types"
)

func isGameLog(ty int32) bool {
	switch ty {
	case types.TyLogRpsCreate, types.TyLogRpsJoin, types.TyLogRpsCommit, types.TyLogRpsReveal,
		types.TyLogRpsWithdraw, types.TyLogRpsTimeout:
		return true
	}
	return false
}

// ExecLocal 根据游戏日志维护本地索引
func (r *Rps) ExecLocal(tx *types.Transaction, receipt *types.Receipt, index int) ([]*types.KeyValue, error) {
	var kvs []*types.KeyValue
	if receipt.Ty != types.ExecOk {
		return kvs, nil
	}
	for _, item := range receipt.Logs {
		if !isGameLog(item.Ty) {
			continue
		}
		var gamelog types.ReceiptGame
		if err := types.Decode(item.Log, &gamelog); err != nil {
			panic(err) //数据错误了，已经被修改了
		}
		kvs = append(kvs, updateIndex(&gamelog)...)
	}
	return kvs, nil
}

// updateIndex 状态没有变化时不需要修改索引
func updateIndex(log *types.ReceiptGame) (kvs []*types.KeyValue) {
	cur := log.Current
	id := cur.ID
	if log.Prev == nil {
		kvs = append(kvs, &types.KeyValue{Key: calcStatusKey(cur.Status, id), Value: idValue(id)})
		kvs = append(kvs, &types.KeyValue{Key: calcAddrKey(cur.Owner.Addr, id), Value: idValue(id)})
		kvs = append(kvs, &types.KeyValue{Key: calcAddrStatusKey(cur.Owner.Addr, cur.Status, id), Value: idValue(id)})
		return kvs
	}
	prev := log.Prev
	if prev.Status == cur.Status {
		return nil
	}
	kvs = append(kvs, &types.KeyValue{Key: calcStatusKey(prev.Status, id), Value: nil})
	kvs = append(kvs, &types.KeyValue{Key: calcStatusKey(cur.Status, id), Value: idValue(id)})
	for _, addr := range []string{prev.Owner.Addr, prev.Challenger.Addr} {
		if addr == "" {
			continue
		}
		kvs = append(kvs, &types.KeyValue{Key: calcAddrStatusKey(addr, prev.Status, id), Value: nil})
	}
	if prev.Challenger.Addr == "" && cur.Challenger.Addr != "" {
		kvs = append(kvs, &types.KeyValue{Key: calcAddrKey(cur.Challenger.Addr, id), Value: idValue(id)})
	}
	for _, addr := range []string{cur.Owner.Addr, cur.Challenger.Addr} {
		if addr == "" {
			continue
		}
		kvs = append(kvs, &types.KeyValue{Key: calcAddrStatusKey(addr, cur.Status, id), Value: idValue(id)})
	}
	return kvs
}

// Events 获胜和平局需要通知外部
func (r *Rps) Events(tx *types.Transaction, receipt *types.Receipt) []*types.Event {
	var events []*types.Event
	for _, item := range receipt.Logs {
		switch item.Ty {
		case types.TyLogRpsWin:
			var win types.ReceiptWin
			types.MustDecode(item.Log, &win)
			events = append(events, &types.Event{
				Type:   types.LogName(item.Ty),
				GameID: win.GameID,
				Addr:   win.Winner,
				Amount: win.Amount,
			})
		case types.TyLogRpsDraw:
			var draw types.ReceiptDraw
			types.MustDecode(item.Log, &draw)
			events = append(events, &types.Event{
				Type:   types.LogName(item.Ty),
				GameID: draw.GameID,
				Amount: draw.Refund,
			})
		}
	}
	return events
}

// GameIDFromReceipt 从回执的游戏日志中取出游戏 id
func GameIDFromReceipt(receipt *types.Receipt) (uint64, error) {
	if receipt == nil {
		return 0, types.ErrNotFound
	}
	for _, item := range receipt.Logs {
		if !isGameLog(item.Ty) {
			continue
		}
		var gamelog types.ReceiptGame
		if err := types.Decode(item.Log, &gamelog); err != nil {
			return 0, err
		}
		return gamelog.GameID, nil
	}
	return 0, types.ErrNotFound
}
