// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package executor

import (
	"fmt"

	dbm "github.com/33cn/rps/common/db"
	"github.com/33cn/rps/types"
	"github.com/pkg/errors"
)

// Query 查询函数, params 为 json 编码的请求
func (r *Rps) Query(funcName string, params []byte) (interface{}, error) {
	switch funcName {
	case "GetGame":
		var req types.ReqGame
		if err := types.Decode(params, &req); err != nil {
			return nil, errors.Wrap(types.ErrInvalidParam, err.Error())
		}
		return r.Query_GetGame(&req)
	case "ListGames":
		var req types.ReqListGames
		if err := types.Decode(params, &req); err != nil {
			return nil, errors.Wrap(types.ErrInvalidParam, err.Error())
		}
		return r.Query_ListGames(&req)
	}
	return nil, errors.Wrapf(types.ErrActionNotSupport, "query %s", funcName)
}

// Query_GetGame 查询一局游戏
func (r *Rps) Query_GetGame(req *types.ReqGame) (*types.Game, error) {
	return getGame(r.GetStateDB(), req.GameID)
}

// Query_ListGames 按状态或者地址分页查询
func (r *Rps) Query_ListGames(req *types.ReqListGames) (*types.ReplyGames, error) {
	var prefix []byte
	addr := req.Addr
	if addr != "" {
		var err error
		if addr, err = types.NormalizeAddress(addr); err != nil {
			return nil, err
		}
	}
	switch {
	case addr != "" && req.Status != types.StatusNone:
		prefix = calcAddrStatusPrefix(addr, req.Status)
	case addr != "":
		prefix = calcAddrPrefix(addr)
	case req.Status != types.StatusNone:
		prefix = calcStatusPrefix(req.Status)
	default:
		return nil, errors.Wrap(types.ErrInvalidParam, "status or addr is required")
	}
	count := req.Count
	if count <= 0 {
		count = types.DefaultListCount
	}
	if count > types.MaxListCount {
		count = types.MaxListCount
	}
	var key []byte
	if req.PrimaryKey != "" {
		key = append(append([]byte{}, prefix...), req.PrimaryKey...)
	}
	direction := dbm.ListDESC
	if req.Direction == types.ListASC {
		direction = dbm.ListASC
	}
	values, err := r.GetLocalDB().List(prefix, key, count, direction)
	if err != nil && errors.Cause(err) != types.ErrNotFound {
		return nil, err
	}
	ids := make([]uint64, 0, len(values))
	for _, value := range values {
		id, err := parseIDValue(value)
		if err != nil {
			return nil, errors.Wrapf(err, "index value %q", string(value))
		}
		ids = append(ids, id)
	}
	games, err := getGames(r.GetStateDB(), ids)
	if err != nil {
		return nil, err
	}
	reply := &types.ReplyGames{Games: games, Total: r.GetLocalDB().PrefixCount(prefix)}
	if int32(len(reply.Games)) == count {
		reply.PrimaryKey = fmt.Sprintf("%020d", reply.Games[len(reply.Games)-1].ID)
	}
	return reply, nil
}
