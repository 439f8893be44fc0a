// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rpc

import (
	rpsexec "github.com/33cn/rps/plugin/dapp/rps/executor"
	rpctypes "github.com/33cn/rps/rpc/types"
	"github.com/33cn/rps/types"
	log "github.com/inconshreveable/log15"
)

var rlog = log.New("module", "rps.rpc")

// ServiceName jsonrpc 服务名
const ServiceName = "Rps"

// Jrpc jsonrpc 接口
type Jrpc struct {
	cli *channelClient
}

type channelClient struct {
	rpctypes.ChannelClient
	execer string
}

// Init 注册 Rps 服务, name 为执行器名
func Init(name string, s rpctypes.RPCServer) {
	cli := &channelClient{execer: name}
	cli.Init(ServiceName, s, &Jrpc{cli: cli})
}

func (c *channelClient) sendTx(tx *types.Transaction) (*rpctypes.TxResultJSON, error) {
	tx.Execer = c.execer
	result, err := c.ExecTx(tx)
	if err != nil {
		return nil, err
	}
	return c.convert(result), nil
}

// convert 非游戏交易的回执没有游戏 id, 此时为 0
func (c *channelClient) convert(result *types.TxResult) *rpctypes.TxResultJSON {
	gameID, err := rpsexec.GameIDFromReceipt(result.Receipt)
	if err != nil {
		rlog.Debug("convert", "seq", result.Seq, "err", err)
	}
	return rpctypes.ConvertTxResult(result, gameID)
}

func (c *channelClient) getGame(req *types.ReqGame) (*types.Game, error) {
	reply, err := c.Query(c.execer, "GetGame", types.Encode(req))
	if err != nil {
		return nil, err
	}
	game, ok := reply.(*types.Game)
	if !ok {
		return nil, types.ErrInvalidParam
	}
	return game, nil
}

func (c *channelClient) listGames(req *types.ReqListGames) (*types.ReplyGames, error) {
	reply, err := c.Query(c.execer, "ListGames", types.Encode(req))
	if err != nil {
		return nil, err
	}
	games, ok := reply.(*types.ReplyGames)
	if !ok {
		return nil, types.ErrInvalidParam
	}
	return games, nil
}
