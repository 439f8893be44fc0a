// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package types

import "encoding/json"

// KeyValue 状态数据
type KeyValue struct {
	Key   []byte `json:"key"`
	Value []byte `json:"value"`
}

// ReceiptLog 回执日志, Log 为 json 编码的具体日志结构
type ReceiptLog struct {
	Ty  int32           `json:"ty"`
	Log json.RawMessage `json:"log"`
}

// Receipt 交易执行结果, KV 由执行框架统一写入数据库
type Receipt struct {
	Ty   int32         `json:"ty"`
	KV   []*KeyValue   `json:"-"`
	Logs []*ReceiptLog `json:"logs"`
}

// MergeReceipt 合并两个回执
func MergeReceipt(receipt1, receipt2 *Receipt) *Receipt {
	if receipt1 == nil {
		return receipt2
	}
	if receipt2 != nil {
		receipt1.KV = append(receipt1.KV, receipt2.KV...)
		receipt1.Logs = append(receipt1.Logs, receipt2.Logs...)
	}
	return receipt1
}

// NewLog 编码日志
func NewLog(ty int32, log interface{}) *ReceiptLog {
	return &ReceiptLog{Ty: ty, Log: Encode(log)}
}

// Account 账户, Balance 为可用余额, Frozen 为冻结余额
type Account struct {
	Addr    string `json:"addr"`
	Balance int64  `json:"balance"`
	Frozen  int64  `json:"frozen"`
}

// ReceiptAccountTransfer 账户变化
type ReceiptAccountTransfer struct {
	Prev    *Account `json:"prev"`
	Current *Account `json:"current"`
}

// ReceiptExecAccountTransfer 执行器子账户变化
type ReceiptExecAccountTransfer struct {
	ExecAddr string   `json:"execAddr"`
	Prev     *Account `json:"prev"`
	Current  *Account `json:"current"`
}

// ReceiptGame 游戏状态变化
type ReceiptGame struct {
	GameID  uint64 `json:"gameID"`
	Action  string `json:"action"`
	Addr    string `json:"addr"`
	Prev    *Game  `json:"prev,omitempty"`
	Current *Game  `json:"current"`
}

// ReceiptWin 获胜通知
type ReceiptWin struct {
	GameID uint64 `json:"gameID"`
	Winner string `json:"winner"`
	Amount int64  `json:"amount"`
}

// ReceiptDraw 平局或者超时退款通知
type ReceiptDraw struct {
	GameID     uint64 `json:"gameID"`
	Owner      string `json:"owner"`
	Challenger string `json:"challenger"`
	Refund     int64  `json:"refund"`
}
