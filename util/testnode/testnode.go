// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package testnode 提供一个通用的测试节点，用于单元测试和集成测试。
// 节点使用内存数据库, rpc 挂在 httptest 上, 插件需要调用方导入。
package testnode

import (
	"net/http/httptest"

	dbm "github.com/33cn/rps/common/db"
	"github.com/33cn/rps/common/log"
	"github.com/33cn/rps/executor"
	"github.com/33cn/rps/pluginmgr"
	"github.com/33cn/rps/rpc"
	"github.com/33cn/rps/rpc/jsonclient"
	"github.com/33cn/rps/types"
	"github.com/ethereum/go-ethereum/crypto"
	log15 "github.com/inconshreveable/log15"
)

var nodelog = log15.New("module", "testnode")

func init() {
	log.SetLogLevel("error")
}

// RpsMock 测试节点
type RpsMock struct {
	cfg    *types.Config
	db     dbm.DB
	exec   *executor.Executor
	rpc    *rpc.RPC
	server *httptest.Server
}

// GetDefaultConfig 默认配置, 存储为 memdb
func GetDefaultConfig() *types.Config {
	cfg, err := types.InitCfgString(types.GetDefaultCfgstring())
	if err != nil {
		panic(err)
	}
	cfg.Store.Driver = "memdb"
	return cfg
}

// New 用默认配置创建节点, genesis 给每个地址 amount
func New(amount int64, addrs ...string) *RpsMock {
	cfg := GetDefaultConfig()
	for _, addr := range addrs {
		cfg.Genesis = append(cfg.Genesis, &types.GenesisAccount{Addr: addr, Amount: amount})
	}
	return NewWithConfig(cfg)
}

// NewWithConfig 创建节点
func NewWithConfig(cfg *types.Config) *RpsMock {
	pluginmgr.InitExec()
	db, err := dbm.NewDB(cfg.Store.Name, cfg.Store.Driver, cfg.Store.DbPath, cfg.Store.DbCache)
	if err != nil {
		panic(err)
	}
	mock := &RpsMock{cfg: cfg, db: db}
	mock.exec = executor.New(cfg.Exec, db)
	if err := mock.exec.Genesis(cfg.Genesis); err != nil {
		panic(err)
	}
	mock.rpc = rpc.New(cfg, mock.exec)
	return mock
}

// Listen rpc 挂到 httptest server 上
func (mock *RpsMock) Listen() {
	mock.server = httptest.NewServer(mock.rpc.Handler())
	nodelog.Debug("Listen", "url", mock.server.URL)
}

// GetRPCAddr rpc 地址, 需要先 Listen
func (mock *RpsMock) GetRPCAddr() string {
	return mock.server.URL
}

// GetJSONC jsonrpc client
func (mock *RpsMock) GetJSONC() *jsonclient.JSONClient {
	client, err := jsonclient.NewJSONClient(mock.GetRPCAddr())
	if err != nil {
		panic(err)
	}
	return client
}

// GetExec 执行器
func (mock *RpsMock) GetExec() *executor.Executor {
	return mock.exec
}

// GetRPC rpc
func (mock *RpsMock) GetRPC() *rpc.RPC {
	return mock.rpc
}

// GetCfg 配置
func (mock *RpsMock) GetCfg() *types.Config {
	return mock.cfg
}

// Close 关闭节点
func (mock *RpsMock) Close() {
	if mock.server != nil {
		mock.server.Close()
	}
	mock.rpc.Close()
	mock.exec.Close()
	mock.db.Close()
}

// Genaddress 随机生成一个地址
func Genaddress() string {
	key, err := crypto.GenerateKey()
	if err != nil {
		panic(err)
	}
	return crypto.PubkeyToAddress(key.PublicKey).Hex()
}
