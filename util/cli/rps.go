// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package cli RunRps 加载各个模块, 组合成游戏节点:
// 存储, 执行器, rpc 服务, 插件在 main 中导入
package cli

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	dbm "github.com/33cn/rps/common/db"
	clog "github.com/33cn/rps/common/log"
	"github.com/33cn/rps/common/version"
	"github.com/33cn/rps/executor"
	"github.com/33cn/rps/pluginmgr"
	"github.com/33cn/rps/rpc"
	"github.com/33cn/rps/types"
	"github.com/33cn/rps/util"
	log "github.com/inconshreveable/log15"
	"github.com/pkg/errors"
)

var (
	configPath = flag.String("f", "", "configfile")
	datadir    = flag.String("datadir", "", "data dir of rps, include logs and datas")
	versionCmd = flag.Bool("v", false, "version")
)

// RunRps : run rps node
func RunRps(name string) {
	flag.Parse()
	if *versionCmd {
		fmt.Println(version.GetVersion())
		return
	}
	if *configPath == "" {
		if name == "" {
			*configPath = "rps.toml"
		} else {
			*configPath = name + ".toml"
		}
	}
	cfg, err := types.InitCfg(*configPath)
	if err != nil {
		panic(err)
	}
	if *datadir != "" {
		dir, err := util.ExpandDatadir(*datadir)
		if err != nil {
			panic(err)
		}
		if err := util.MakeDir(dir); err != nil {
			panic(err)
		}
		types.ResetDatadir(cfg, dir)
	}
	//set file log
	clog.SetFileLog(cfg.Log)
	defer clog.Close()

	node, err := NewNode(cfg)
	if err != nil {
		log.Crit("NewNode", "err", err)
		return
	}
	defer node.Close()
	if _, err := node.Listen(); err != nil {
		log.Crit("rpc Listen", "err", err)
		return
	}

	//set watching
	t := time.NewTicker(10 * time.Second)
	defer t.Stop()
	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, syscall.SIGINT, syscall.SIGTERM)
	for {
		select {
		case <-t.C:
			watching()
		case sig := <-interrupt:
			log.Info("receive signal", "signal", sig)
			return
		}
	}
}

// Node 游戏节点
type Node struct {
	db     dbm.DB
	exec   *executor.Executor
	rpcapi *rpc.RPC
}

// NewNode 打开数据库, 创建执行器并执行创世分配, 创建 rpc 服务
func NewNode(cfg *types.Config) (*Node, error) {
	log.Info(cfg.Title + " rps:" + version.GetVersion())
	pluginmgr.InitExec()

	log.Info("loading store module", "driver", cfg.Store.Driver, "path", cfg.Store.DbPath)
	db, err := dbm.NewDB(cfg.Store.Name, cfg.Store.Driver, cfg.Store.DbPath, cfg.Store.DbCache)
	if err != nil {
		return nil, errors.Wrap(err, "open store")
	}

	log.Info("loading execs module")
	exec := executor.New(cfg.Exec, db)
	err = exec.Genesis(cfg.Genesis)
	if err != nil && err != types.ErrGenesisDone {
		exec.Close()
		db.Close()
		return nil, errors.Wrap(err, "genesis")
	}

	log.Info("loading rpc module")
	rpcapi := rpc.New(cfg, exec)
	return &Node{db: db, exec: exec, rpcapi: rpcapi}, nil
}

// Listen rpc 监听
func (n *Node) Listen() (int, error) {
	return n.rpcapi.Listen()
}

// Executor 执行器
func (n *Node) Executor() *executor.Executor {
	return n.exec
}

// Close close all module,clean some resource
func (n *Node) Close() {
	log.Info("begin close rpc module")
	n.rpcapi.Close()
	log.Info("begin close execs module")
	n.exec.Close()
	log.Info("begin close store module")
	n.db.Close()
}

func watching() {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	log.Info("info:", "NumGoroutine:", runtime.NumGoroutine())
	log.Info("info:", "Mem:", m.Sys/(1024*1024))
	log.Info("info:", "HeapAlloc:", m.HeapAlloc/(1024*1024))
}
