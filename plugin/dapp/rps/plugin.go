// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package rps 石头剪刀布插件: 执行器, 命令行, rpc
package rps

import (
	"github.com/33cn/rps/plugin/dapp/rps/commands"
	"github.com/33cn/rps/plugin/dapp/rps/executor"
	"github.com/33cn/rps/plugin/dapp/rps/rpc"
	"github.com/33cn/rps/pluginmgr"
	"github.com/33cn/rps/types"
)

func init() {
	pluginmgr.Register(&pluginmgr.PluginBase{
		Name:     types.RpsX,
		ExecName: executor.GetName(),
		Exec:     executor.Init,
		Cmd:      commands.RpsCmd,
		RPC:      rpc.Init,
	})
}
