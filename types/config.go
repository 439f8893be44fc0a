// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package types

import (
	"os"
	"path/filepath"

	tml "github.com/BurntSushi/toml"
	"github.com/caarlos0/env/v11"
	"github.com/pkg/errors"
)

// Config 节点配置
type Config struct {
	Title   string            `toml:"Title" env:"RPS_TITLE"`
	Log     *Log              `toml:"log"`
	Store   *Store            `toml:"store"`
	RPC     *RPC              `toml:"rpc"`
	Exec    *Exec             `toml:"exec"`
	Metrics *Metrics          `toml:"metrics"`
	Genesis []*GenesisAccount `toml:"genesis"`
}

// Log 日志配置
type Log struct {
	// 日志级别，支持debug(dbug)/info/warn/error(eror)/crit
	Loglevel        string `toml:"loglevel" env:"RPS_LOG_LEVEL"`
	LogConsoleLevel string `toml:"logConsoleLevel" env:"RPS_LOG_CONSOLE_LEVEL"`
	// 日志文件名，可带目录，所有生成的日志文件都放到此目录下
	LogFile string `toml:"logFile" env:"RPS_LOG_FILE"`
	// 单个日志文件的最大值（单位：兆）
	MaxFileSize uint32 `toml:"maxFileSize"`
	// 最多保存的历史日志文件个数
	MaxBackups uint32 `toml:"maxBackups"`
	// 最多保存的历史日志消息（单位：天）
	MaxAge uint32 `toml:"maxAge"`
	// 日志文件名是否使用本地事件（否则使用UTC时间）
	LocalTime bool `toml:"localTime"`
	// 历史日志文件是否压缩（压缩格式为gz）
	Compress bool `toml:"compress"`
	// 是否打印调用源文件和行号
	CallerFile bool `toml:"callerFile"`
	// 是否打印调用方法
	CallerFunction bool `toml:"callerFunction"`
}

// Store 存储配置
type Store struct {
	Name    string `toml:"name"`
	Driver  string `toml:"driver" env:"RPS_STORE_DRIVER"`
	DbPath  string `toml:"dbPath" env:"RPS_STORE_PATH"`
	DbCache int32  `toml:"dbCache"`
}

// RPC jsonrpc 配置
type RPC struct {
	JrpcBindAddr      string   `toml:"jrpcBindAddr" env:"RPS_RPC_ADDR"`
	Whitelist         []string `toml:"whitelist" env:"RPS_RPC_WHITELIST"`
	JrpcFuncWhitelist []string `toml:"jrpcFuncWhitelist"`
	JrpcFuncBlacklist []string `toml:"jrpcFuncBlacklist"`
	JrpcUserName      string   `toml:"jrpcUserName" env:"RPS_RPC_USER"`
	JrpcUserPasswd    string   `toml:"jrpcUserPasswd" env:"RPS_RPC_PASSWD"`
	CorsDomains       []string `toml:"corsDomains"`
}

// Exec 执行器配置
type Exec struct {
	// 揭示超时时间（单位：秒）
	RevealTimeout int64 `toml:"revealTimeout" env:"RPS_REVEAL_TIMEOUT"`
	MinStake      int64 `toml:"minStake"`
	MaxStake      int64 `toml:"maxStake"`
	GameCacheSize int   `toml:"gameCacheSize"`
}

// Metrics 统计配置
type Metrics struct {
	EnableMetrics bool `toml:"enableMetrics" env:"RPS_METRICS"`
}

// GenesisAccount 创世账户，只在第一次启动时写入
type GenesisAccount struct {
	Addr   string `toml:"addr"`
	Amount int64  `toml:"amount"`
}

// InitCfg 从文件加载配置
func InitCfg(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "read config %s", path)
	}
	return InitCfgString(string(data))
}

// InitCfgString 解析配置，环境变量 RPS_* 覆盖文件中的值
func InitCfgString(cfgstring string) (*Config, error) {
	var cfg Config
	if _, err := tml.Decode(cfgstring, &cfg); err != nil {
		return nil, errors.Wrap(err, "decode toml")
	}
	fillDefaultValue(&cfg)
	if err := env.Parse(&cfg); err != nil {
		return nil, errors.Wrap(err, "parse env")
	}
	if err := checkConfig(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func fillDefaultValue(cfg *Config) {
	if cfg.Title == "" {
		cfg.Title = "local"
	}
	if cfg.Log == nil {
		cfg.Log = &Log{}
	}
	if cfg.Store == nil {
		cfg.Store = &Store{}
	}
	if cfg.Store.Name == "" {
		cfg.Store.Name = RpsX
	}
	if cfg.Store.Driver == "" {
		cfg.Store.Driver = "leveldb"
	}
	if cfg.Store.DbPath == "" {
		cfg.Store.DbPath = "datadir"
	}
	if cfg.Store.DbCache == 0 {
		cfg.Store.DbCache = 128
	}
	if cfg.RPC == nil {
		cfg.RPC = &RPC{}
	}
	if cfg.RPC.JrpcBindAddr == "" {
		cfg.RPC.JrpcBindAddr = "localhost:8801"
	}
	if len(cfg.RPC.JrpcFuncWhitelist) == 0 {
		cfg.RPC.JrpcFuncWhitelist = []string{"*"}
	}
	if cfg.Exec == nil {
		cfg.Exec = &Exec{}
	}
	if cfg.Exec.RevealTimeout == 0 {
		cfg.Exec.RevealTimeout = DefaultRevealTimeout
	}
	if cfg.Exec.GameCacheSize == 0 {
		cfg.Exec.GameCacheSize = 1024
	}
	if cfg.Metrics == nil {
		cfg.Metrics = &Metrics{}
	}
}

func checkConfig(cfg *Config) error {
	if cfg.Exec.RevealTimeout < 0 {
		return errors.Wrapf(ErrInvalidParam, "revealTimeout=%d", cfg.Exec.RevealTimeout)
	}
	if cfg.Exec.MinStake < 0 || cfg.Exec.MaxStake < 0 {
		return errors.Wrapf(ErrInvalidParam, "minStake=%d maxStake=%d", cfg.Exec.MinStake, cfg.Exec.MaxStake)
	}
	if cfg.Exec.MaxStake > 0 && cfg.Exec.MinStake > cfg.Exec.MaxStake {
		return errors.Wrapf(ErrInvalidParam, "minStake=%d > maxStake=%d", cfg.Exec.MinStake, cfg.Exec.MaxStake)
	}
	for i, g := range cfg.Genesis {
		addr, err := NormalizeAddress(g.Addr)
		if err != nil {
			return errors.Wrapf(err, "genesis[%d] addr=%s", i, g.Addr)
		}
		if !CheckAmount(g.Amount) {
			return errors.Wrapf(ErrAmount, "genesis[%d] amount=%d", i, g.Amount)
		}
		g.Addr = addr
	}
	return nil
}

// ResetDatadir 把数据和日志目录放到 datadir 下面
func ResetDatadir(cfg *Config, datadir string) {
	if !filepath.IsAbs(cfg.Store.DbPath) {
		cfg.Store.DbPath = filepath.Join(datadir, cfg.Store.DbPath)
	}
	if cfg.Log.LogFile != "" && !filepath.IsAbs(cfg.Log.LogFile) {
		cfg.Log.LogFile = filepath.Join(datadir, cfg.Log.LogFile)
	}
}
