// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package types

// RpsCreate 创建游戏, 押金由交易的 Amount 携带
type RpsCreate struct{}

// RpsJoin 加入游戏, 押金必须等于创建者的押金
type RpsJoin struct {
	GameID uint64 `json:"gameID"`
}

// RpsCommit 提交出拳承诺
type RpsCommit struct {
	GameID     uint64 `json:"gameID"`
	Commitment string `json:"commitment"`
}

// RpsReveal 揭示出拳
type RpsReveal struct {
	GameID uint64 `json:"gameID"`
	Move   Move   `json:"move"`
	Seed   string `json:"seed"`
}

// RpsWithdraw 开局前取回押金
type RpsWithdraw struct {
	GameID uint64 `json:"gameID"`
}

// RpsTimeout 超时裁决
type RpsTimeout struct {
	GameID uint64 `json:"gameID"`
}

// RpsAction 执行器 action, 按 Ty 只有一个字段有值
type RpsAction struct {
	Ty       int32        `json:"ty"`
	Create   *RpsCreate   `json:"create,omitempty"`
	Join     *RpsJoin     `json:"join,omitempty"`
	Commit   *RpsCommit   `json:"commit,omitempty"`
	Reveal   *RpsReveal   `json:"reveal,omitempty"`
	Withdraw *RpsWithdraw `json:"withdraw,omitempty"`
	Timeout  *RpsTimeout  `json:"timeout,omitempty"`
}

// Transaction 调用方已经完成身份认证, From 即调用者地址
type Transaction struct {
	Execer string     `json:"execer"`
	From   string     `json:"from"`
	Amount int64      `json:"amount"`
	Action *RpsAction `json:"action"`
}

// NewCreateTx create game tx
func NewCreateTx(from string, amount int64) *Transaction {
	return &Transaction{Execer: RpsX, From: from, Amount: amount,
		Action: &RpsAction{Ty: RpsActionCreate, Create: &RpsCreate{}}}
}

// NewJoinTx join game tx
func NewJoinTx(from string, gameID uint64, amount int64) *Transaction {
	return &Transaction{Execer: RpsX, From: from, Amount: amount,
		Action: &RpsAction{Ty: RpsActionJoin, Join: &RpsJoin{GameID: gameID}}}
}

// NewCommitTx submit move tx
func NewCommitTx(from string, gameID uint64, commitment string) *Transaction {
	return &Transaction{Execer: RpsX, From: from,
		Action: &RpsAction{Ty: RpsActionCommit, Commit: &RpsCommit{GameID: gameID, Commitment: commitment}}}
}

// NewRevealTx reveal move tx
func NewRevealTx(from string, gameID uint64, move Move, seed string) *Transaction {
	return &Transaction{Execer: RpsX, From: from,
		Action: &RpsAction{Ty: RpsActionReveal, Reveal: &RpsReveal{GameID: gameID, Move: move, Seed: seed}}}
}

// NewWithdrawTx withdraw before game start tx
func NewWithdrawTx(from string, gameID uint64) *Transaction {
	return &Transaction{Execer: RpsX, From: from,
		Action: &RpsAction{Ty: RpsActionWithdraw, Withdraw: &RpsWithdraw{GameID: gameID}}}
}

// NewTimeoutTx claim timeout tx
func NewTimeoutTx(from string, gameID uint64) *Transaction {
	return &Transaction{Execer: RpsX, From: from,
		Action: &RpsAction{Ty: RpsActionTimeout, Timeout: &RpsTimeout{GameID: gameID}}}
}

// ReqGame 查询单个游戏
type ReqGame struct {
	GameID uint64 `json:"gameID"`
}

// ReqListGames 按状态或者地址分页查询, PrimaryKey 为上一页最后一条的游戏 id
type ReqListGames struct {
	Status     Status `json:"status,omitempty"`
	Addr       string `json:"addr,omitempty"`
	PrimaryKey string `json:"primaryKey,omitempty"`
	Count      int32  `json:"count,omitempty"`
	Direction  int32  `json:"direction,omitempty"`
}

// ReplyGames 分页结果
type ReplyGames struct {
	Games      []*Game `json:"games"`
	PrimaryKey string  `json:"primaryKey,omitempty"`
	Total      int64   `json:"total"`
}

// ReplyBalance 账户余额及执行器子账户
type ReplyBalance struct {
	Addr   string   `json:"addr"`
	Coins  *Account `json:"coins"`
	Escrow *Account `json:"escrow"`
}

// TxResult 一笔已执行交易的结果
type TxResult struct {
	Seq     int64    `json:"seq"`
	Time    int64    `json:"time"`
	From    string   `json:"from"`
	Execer  string   `json:"execer"`
	Action  string   `json:"action"`
	Receipt *Receipt `json:"receipt"`
}

// Event 通知事件
type Event struct {
	ID     string `json:"id"`
	Seq    int64  `json:"seq"`
	Index  int    `json:"index"`
	Type   string `json:"type"`
	GameID uint64 `json:"gameID"`
	Addr   string `json:"addr,omitempty"`
	Amount int64  `json:"amount,omitempty"`
	Time   int64  `json:"time"`
}
