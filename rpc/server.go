// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rpc

import (
	"encoding/base64"
	"net"
	"net/http"
	"net/rpc"
	"strings"
	"time"

	"github.com/33cn/rps/common/log"
	"github.com/33cn/rps/executor"
	"github.com/33cn/rps/pluginmgr"
	"github.com/33cn/rps/types"
)

var (
	remoteIPWhitelist = make(map[string]bool)
	rpcCfg            *types.RPC
	jrpcFuncWhitelist = make(map[string]bool)
	jrpcFuncBlacklist = make(map[string]bool)
	rlog              = log.New("module", "rpc_server")
)

// JSONRPCServer  a json rpcserver object
type JSONRPCServer struct {
	s       *rpc.Server
	l       net.Listener
	srv     *http.Server
	handler http.Handler
}

// Close json rpcserver close
func (s *JSONRPCServer) Close() {
	if s.srv != nil {
		if err := s.srv.Close(); err != nil {
			rlog.Error("JSONRPCServer close", "err", err)
		}
		return
	}
	if s.l != nil {
		if err := s.l.Close(); err != nil {
			rlog.Error("JSONRPCServer close", "err", err)
		}
	}
}

func checkBasicAuth(r *http.Request) bool {
	if rpcCfg.JrpcUserName == "" && rpcCfg.JrpcUserPasswd == "" {
		return true
	}

	s := strings.SplitN(r.Header.Get("Authorization"), " ", 2)
	if len(s) != 2 {
		return false
	}

	b, err := base64.StdEncoding.DecodeString(s[1])
	if err != nil {
		return false
	}

	pair := strings.SplitN(string(b), ":", 2)
	if len(pair) != 2 {
		return false
	}
	return pair[0] == rpcCfg.JrpcUserName && pair[1] == rpcCfg.JrpcUserPasswd
}

func checkIPWhitelist(addr string) bool {
	//回环网络直接允许
	ip := net.ParseIP(addr)
	if ip.IsLoopback() {
		return true
	}
	ipv4 := ip.To4()
	if ipv4 != nil {
		addr = ipv4.String()
	}
	if _, ok := remoteIPWhitelist["0.0.0.0"]; ok {
		return true
	}
	if _, ok := remoteIPWhitelist[addr]; ok {
		return true
	}
	return false
}

func checkJrpcFuncWhitelist(funcName string) bool {
	if _, ok := jrpcFuncWhitelist["*"]; ok {
		return true
	}
	if _, ok := jrpcFuncWhitelist[funcName]; ok {
		return true
	}
	return false
}

func checkJrpcFuncBlacklist(funcName string) bool {
	if _, ok := jrpcFuncBlacklist[funcName]; ok {
		return true
	}
	return false
}

// NewJSONRPCServer new json rpcserver object
func NewJSONRPCServer() *JSONRPCServer {
	return &JSONRPCServer{s: rpc.NewServer()}
}

// RPC a type object
type RPC struct {
	cfg     *types.RPC
	metrics *types.Metrics
	exec    *executor.Executor
	japi    *JSONRPCServer
}

// InitCfg  interfaces
func InitCfg(rcfg *types.RPC) {
	rpcCfg = rcfg
	InitIPWhitelist(rcfg)
	InitJrpcFuncWhitelist(rcfg)
	InitJrpcFuncBlacklist(rcfg)
}

// New produce a rpc by cfg, 插件的 rpc 服务在这里注册
func New(cfg *types.Config, exec *executor.Executor) *RPC {
	InitCfg(cfg.RPC)
	r := &RPC{cfg: cfg.RPC, metrics: cfg.Metrics, exec: exec, japi: NewJSONRPCServer()}
	if r.metrics == nil {
		r.metrics = &types.Metrics{}
	}
	pluginmgr.AddRPC(r)
	r.japi.handler = r.newHandler()
	return r
}

// Listen jrpc 监听, 失败时重试
func (r *RPC) Listen() (port int, err error) {
	for i := 0; i < 10; i++ {
		port, err = r.japi.Listen(r.cfg.JrpcBindAddr)
		if err != nil {
			rlog.Error("Jrpc Listen", "err", err)
			time.Sleep(time.Second)
			continue
		}
		break
	}
	rlog.Info("rpc Listen port", "jrpc", port)
	return port, err
}

// Handler http handler, 测试时直接挂到 httptest
func (r *RPC) Handler() http.Handler {
	return r.japi.handler
}

// Executor return executor
func (r *RPC) Executor() *executor.Executor {
	return r.exec
}

// JRPC return jrpc
func (r *RPC) JRPC() *rpc.Server {
	return r.japi.s
}

// Close rpc close
func (r *RPC) Close() {
	if r.japi != nil {
		r.japi.Close()
	}
}

// InitIPWhitelist init ip whitelist
func InitIPWhitelist(cfg *types.RPC) {
	remoteIPWhitelist = make(map[string]bool)
	if len(cfg.Whitelist) == 0 {
		remoteIPWhitelist["127.0.0.1"] = true
		return
	}
	if len(cfg.Whitelist) == 1 && cfg.Whitelist[0] == "*" {
		remoteIPWhitelist["0.0.0.0"] = true
		return
	}
	for _, addr := range cfg.Whitelist {
		remoteIPWhitelist[addr] = true
	}
}

// InitJrpcFuncWhitelist init jrpc function whitelist
func InitJrpcFuncWhitelist(cfg *types.RPC) {
	jrpcFuncWhitelist = make(map[string]bool)
	if len(cfg.JrpcFuncWhitelist) == 0 {
		jrpcFuncWhitelist["*"] = true
		return
	}
	if len(cfg.JrpcFuncWhitelist) == 1 && cfg.JrpcFuncWhitelist[0] == "*" {
		jrpcFuncWhitelist["*"] = true
		return
	}
	for _, funcName := range cfg.JrpcFuncWhitelist {
		jrpcFuncWhitelist[funcName] = true
	}
}

// InitJrpcFuncBlacklist init jrpc function blacklist
func InitJrpcFuncBlacklist(cfg *types.RPC) {
	jrpcFuncBlacklist = make(map[string]bool)
	for _, funcName := range cfg.JrpcFuncBlacklist {
		jrpcFuncBlacklist[funcName] = true
	}
}
