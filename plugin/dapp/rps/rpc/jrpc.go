// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rpc

import (
	"github.com/33cn/rps/common/version"
	"github.com/33cn/rps/types"
)

// CreateGame 创建游戏并锁定押金
func (c *Jrpc) CreateGame(parm *CreateGameTx, result *interface{}) error {
	if parm == nil {
		return types.ErrInvalidParam
	}
	reply, err := c.cli.sendTx(types.NewCreateTx(parm.From, parm.Amount))
	if err != nil {
		return err
	}
	*result = reply
	return nil
}

// JoinGame 加入游戏
func (c *Jrpc) JoinGame(parm *JoinGameTx, result *interface{}) error {
	if parm == nil {
		return types.ErrInvalidParam
	}
	reply, err := c.cli.sendTx(types.NewJoinTx(parm.From, parm.GameID, parm.Amount))
	if err != nil {
		return err
	}
	*result = reply
	return nil
}

// SubmitMove 提交承诺
func (c *Jrpc) SubmitMove(parm *SubmitMoveTx, result *interface{}) error {
	if parm == nil {
		return types.ErrInvalidParam
	}
	reply, err := c.cli.sendTx(types.NewCommitTx(parm.From, parm.GameID, parm.Commitment))
	if err != nil {
		return err
	}
	*result = reply
	return nil
}

// RevealMove 揭示, 双方都揭示后结算
func (c *Jrpc) RevealMove(parm *RevealMoveTx, result *interface{}) error {
	if parm == nil {
		return types.ErrInvalidParam
	}
	reply, err := c.cli.sendTx(types.NewRevealTx(parm.From, parm.GameID, parm.Move, parm.Seed))
	if err != nil {
		return err
	}
	*result = reply
	return nil
}

// Withdraw 开局前撤回
func (c *Jrpc) Withdraw(parm *GameTx, result *interface{}) error {
	if parm == nil {
		return types.ErrInvalidParam
	}
	reply, err := c.cli.sendTx(types.NewWithdrawTx(parm.From, parm.GameID))
	if err != nil {
		return err
	}
	*result = reply
	return nil
}

// ClaimTimeout 对方超时未操作
func (c *Jrpc) ClaimTimeout(parm *GameTx, result *interface{}) error {
	if parm == nil {
		return types.ErrInvalidParam
	}
	reply, err := c.cli.sendTx(types.NewTimeoutTx(parm.From, parm.GameID))
	if err != nil {
		return err
	}
	*result = reply
	return nil
}

// GetGame 查询游戏
func (c *Jrpc) GetGame(parm *types.ReqGame, result *interface{}) error {
	if parm == nil {
		return types.ErrInvalidParam
	}
	reply, err := c.cli.getGame(parm)
	if err != nil {
		return err
	}
	*result = reply
	return nil
}

// ListGames 分页查询
func (c *Jrpc) ListGames(parm *types.ReqListGames, result *interface{}) error {
	if parm == nil {
		return types.ErrInvalidParam
	}
	reply, err := c.cli.listGames(parm)
	if err != nil {
		return err
	}
	*result = reply
	return nil
}

// GetBalance coins 余额和押金子账户
func (c *Jrpc) GetBalance(parm *ReqAddr, result *interface{}) error {
	if parm == nil {
		return types.ErrInvalidParam
	}
	reply, err := c.cli.GetBalance(parm.Addr, c.cli.execer)
	if err != nil {
		return err
	}
	*result = reply
	return nil
}

// GetBalances 批量查询余额, 顺序与请求一致
func (c *Jrpc) GetBalances(parm *ReqAddrs, result *interface{}) error {
	if parm == nil {
		return types.ErrInvalidParam
	}
	reply, err := c.cli.GetBalances(parm.Addrs, c.cli.execer)
	if err != nil {
		return err
	}
	*result = reply
	return nil
}

// GetReceipt 按序号查询交易结果
func (c *Jrpc) GetReceipt(parm *ReqSeq, result *interface{}) error {
	if parm == nil {
		return types.ErrInvalidParam
	}
	reply, err := c.cli.GetReceipt(parm.Seq)
	if err != nil {
		return err
	}
	*result = c.cli.convert(reply)
	return nil
}

// GetEvents 事件流
func (c *Jrpc) GetEvents(parm *ReqEvents, result *interface{}) error {
	if parm == nil {
		return types.ErrInvalidParam
	}
	reply, err := c.cli.GetEvents(parm.From, parm.Count)
	if err != nil {
		return err
	}
	*result = reply
	return nil
}

// CommitHash 计算承诺, 方便客户端构造 SubmitMove
func (c *Jrpc) CommitHash(parm *ReqCommitHash, result *interface{}) error {
	if parm == nil {
		return types.ErrInvalidParam
	}
	if !parm.Move.Valid() {
		return types.ErrInvalidMove
	}
	*result = types.CommitHashHex(parm.Move, parm.Seed)
	return nil
}

// Version 版本号
func (c *Jrpc) Version(parm *ReqNil, result *interface{}) error {
	*result = version.GetVersion()
	return nil
}
