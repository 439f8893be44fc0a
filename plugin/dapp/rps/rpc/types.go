// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rpc

import "github.com/33cn/rps/types"

// CreateGameTx 创建游戏, Amount 单位为 1e-8 coin
type CreateGameTx struct {
	From   string `json:"from"`
	Amount int64  `json:"amount"`
}

// JoinGameTx 加入游戏
type JoinGameTx struct {
	From   string `json:"from"`
	GameID uint64 `json:"gameID"`
	Amount int64  `json:"amount"`
}

// SubmitMoveTx 提交承诺
type SubmitMoveTx struct {
	From       string `json:"from"`
	GameID     uint64 `json:"gameID"`
	Commitment string `json:"commitment"`
}

// RevealMoveTx 揭示, move 可以是数字或者名字
type RevealMoveTx struct {
	From   string     `json:"from"`
	GameID uint64     `json:"gameID"`
	Move   types.Move `json:"move"`
	Seed   string     `json:"seed"`
}

// GameTx 撤回和超时裁决共用
type GameTx struct {
	From   string `json:"from"`
	GameID uint64 `json:"gameID"`
}

// ReqAddr 地址
type ReqAddr struct {
	Addr string `json:"addr"`
}

// ReqAddrs 多个地址
type ReqAddrs struct {
	Addrs []string `json:"addrs"`
}

// ReqSeq 交易序号
type ReqSeq struct {
	Seq int64 `json:"seq"`
}

// ReqEvents 从 from 开始的事件
type ReqEvents struct {
	From  int64 `json:"from"`
	Count int32 `json:"count"`
}

// ReqCommitHash 计算承诺
type ReqCommitHash struct {
	Move types.Move `json:"move"`
	Seed string     `json:"seed"`
}

// ReqNil 空参数
type ReqNil struct{}
