// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package types

import (
	"net/rpc"

	"github.com/33cn/rps/executor"
)

// RPCServer 插件通过它注册 jsonrpc 服务并访问执行器
type RPCServer interface {
	JRPC() *rpc.Server
	Executor() *executor.Executor
}

// ChannelClient 插件 rpc 的公共部分
type ChannelClient struct {
	*executor.Executor
	jrpc interface{}
}

// Init 以 name 注册 jrpc 服务
func (c *ChannelClient) Init(name string, s RPCServer, jrpc interface{}) {
	if c.Executor == nil {
		c.Executor = s.Executor()
	}
	if jrpc != nil {
		if err := s.JRPC().RegisterName(name, jrpc); err != nil {
			panic(err)
		}
	}
	c.jrpc = jrpc
}
