// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pluginmgr

import (
	"sort"
	"sync"

	"github.com/33cn/rps/common/log"
	"github.com/33cn/rps/rpc/types"
	"github.com/spf13/cobra"
)

var mgrlog = log.New("module", "pluginmgr")

var (
	pluginItems = make(map[string]Plugin)
	once        = &sync.Once{}
)

// InitExec 注册所有插件的执行器, 只执行一次
func InitExec() {
	once.Do(func() {
		for _, item := range items() {
			mgrlog.Debug("InitExec", "plugin", item.GetName(), "exec", item.GetExecutorName())
			item.InitExec()
		}
	})
}

// HasExec 是否有插件提供该执行器
func HasExec(name string) bool {
	for _, item := range pluginItems {
		if item.GetExecutorName() == name {
			return true
		}
	}
	return false
}

// Register 注册插件, 名字重复时 panic
func Register(p Plugin) {
	if p == nil {
		panic("plugin param is nil")
	}
	packageName := p.GetName()
	if len(packageName) == 0 {
		panic("plugin package name is empty")
	}
	if _, ok := pluginItems[packageName]; ok {
		panic("execute plugin item is existed. name = " + packageName)
	}
	pluginItems[packageName] = p
}

// AddCmd 把插件命令加到 rootCmd
func AddCmd(rootCmd *cobra.Command) {
	for _, item := range items() {
		item.AddCmd(rootCmd)
	}
}

// AddRPC 注册插件的 rpc 服务
func AddRPC(s types.RPCServer) {
	for _, item := range items() {
		item.AddRPC(s)
	}
}

// items 按名字排序, 保证注册顺序稳定
func items() []Plugin {
	names := make([]string, 0, len(pluginItems))
	for name := range pluginItems {
		names = append(names, name)
	}
	sort.Strings(names)
	list := make([]Plugin, 0, len(names))
	for _, name := range names {
		list = append(list, pluginItems[name])
	}
	return list
}
