// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package types

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitCfgString(t *testing.T) {
	cfg, err := InitCfgString(GetDefaultCfgstring())
	require.NoError(t, err)
	assert.Equal(t, "local", cfg.Title)
	assert.Equal(t, "leveldb", cfg.Store.Driver)
	assert.Equal(t, "localhost:8801", cfg.RPC.JrpcBindAddr)
	assert.Equal(t, DefaultRevealTimeout, cfg.Exec.RevealTimeout)
	assert.True(t, cfg.Metrics.EnableMetrics)
}

func TestInitCfgDefaults(t *testing.T) {
	cfg, err := InitCfgString("")
	require.NoError(t, err)
	assert.Equal(t, RpsX, cfg.Store.Name)
	assert.Equal(t, "datadir", cfg.Store.DbPath)
	assert.Equal(t, []string{"*"}, cfg.RPC.JrpcFuncWhitelist)
	assert.Equal(t, 1024, cfg.Exec.GameCacheSize)
	assert.NotNil(t, cfg.Metrics)
}

func TestInitCfgEnv(t *testing.T) {
	t.Setenv("RPS_STORE_DRIVER", "memdb")
	t.Setenv("RPS_RPC_ADDR", "127.0.0.1:9901")
	t.Setenv("RPS_RPC_WHITELIST", "10.0.0.1,10.0.0.2")
	cfg, err := InitCfgString(GetDefaultCfgstring())
	require.NoError(t, err)
	assert.Equal(t, "memdb", cfg.Store.Driver)
	assert.Equal(t, "127.0.0.1:9901", cfg.RPC.JrpcBindAddr)
	assert.Equal(t, []string{"10.0.0.1", "10.0.0.2"}, cfg.RPC.Whitelist)
}

func TestInitCfgInvalid(t *testing.T) {
	_, err := InitCfgString("Title=")
	assert.Error(t, err)

	_, err = InitCfgString("[exec]\nminStake=10\nmaxStake=5\n")
	assert.Equal(t, ErrInvalidParam, errors.Cause(err))

	_, err = InitCfgString("[[genesis]]\naddr=\"bad\"\namount=1\n")
	assert.Equal(t, ErrInvalidAddress, errors.Cause(err))

	_, err = InitCfgString("[[genesis]]\naddr=\"0x1111111111111111111111111111111111111111\"\namount=0\n")
	assert.Equal(t, ErrAmount, errors.Cause(err))
}

func TestInitCfgGenesis(t *testing.T) {
	cfg, err := InitCfgString("[[genesis]]\naddr=\"0xabcdefabcdefabcdefabcdefabcdefabcdefabcd\"\namount=100\n")
	require.NoError(t, err)
	require.Len(t, cfg.Genesis, 1)
	assert.Equal(t, "0xABcdEFABcdEFabcdEfAbCdefabcdeFABcDEFabCD", cfg.Genesis[0].Addr)
}

func TestInitCfgFile(t *testing.T) {
	_, err := InitCfg(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "rps.toml")
	require.NoError(t, os.WriteFile(path, []byte(GetDefaultCfgstring()), 0600))
	cfg, err := InitCfg(path)
	require.NoError(t, err)
	ResetDatadir(cfg, "/data")
	assert.Equal(t, "/data/datadir", cfg.Store.DbPath)
	assert.Equal(t, "/data/logs/rps.log", cfg.Log.LogFile)
}
