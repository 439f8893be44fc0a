// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package cli rps-cli 的根命令
package cli

import (
	"fmt"
	"os"

	"github.com/33cn/rps/cli/commands"
	"github.com/33cn/rps/common/log"
	"github.com/33cn/rps/pluginmgr"
	"github.com/spf13/cobra"
)

// DefaultRPCAddr 默认节点地址
const DefaultRPCAddr = "http://localhost:8801"

// NewRootCmd 系统命令加上插件命令
func NewRootCmd(RPCAddr string) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "rps-cli",
		Short: "rps client tools",
	}
	rootCmd.AddCommand(
		commands.AccountCmd(),
		commands.TxCmd(),
		commands.VersionCmd(),
	)
	pluginmgr.AddCmd(rootCmd)
	rootCmd.PersistentFlags().String("rpc_laddr", RPCAddr, "http url")
	return rootCmd
}

// Run :
func Run(RPCAddr string) {
	log.SetLogLevel("error")
	if RPCAddr == "" {
		RPCAddr = DefaultRPCAddr
	}
	if err := NewRootCmd(RPCAddr).Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
