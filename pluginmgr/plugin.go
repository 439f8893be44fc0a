// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package pluginmgr 插件管理, dapp 通过 init 注册自己的执行器, 命令行和 rpc
package pluginmgr

import (
	"github.com/33cn/rps/rpc/types"
	"github.com/spf13/cobra"
)

// Plugin 插件接口
type Plugin interface {
	// 获取整个插件的包名，用以计算唯一值、做前缀等
	GetName() string
	// 获取插件中执行器名
	GetExecutorName() string
	// 初始化执行器时会调用该接口
	InitExec()
	AddCmd(rootCmd *cobra.Command)
	AddRPC(s types.RPCServer)
}
