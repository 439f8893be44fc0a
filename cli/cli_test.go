// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cli_test

import (
	"bytes"
	"encoding/json"
	"strconv"
	"testing"

	"github.com/33cn/rps/cli"
	"github.com/33cn/rps/cli/commands"
	"github.com/33cn/rps/common/version"
	rpctypes "github.com/33cn/rps/rpc/types"
	"github.com/33cn/rps/types"
	"github.com/33cn/rps/util/testnode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "github.com/33cn/rps/plugin"
)

// run 执行一条命令, 返回标准输出和错误输出
func run(t *testing.T, addr string, args ...string) (string, string) {
	var out, errOut bytes.Buffer
	root := cli.NewRootCmd(addr)
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(args)
	require.NoError(t, root.Execute())
	return out.String(), errOut.String()
}

func TestCliGame(t *testing.T) {
	owner, challenger := testnode.Genaddress(), testnode.Genaddress()
	mocker := testnode.New(10*types.Coin, owner, challenger)
	defer mocker.Close()
	mocker.Listen()
	addr := mocker.GetRPCAddr()

	out, errOut := run(t, addr, "game", "create", "-a", owner, "-m", "0.15")
	require.Empty(t, errOut)
	var res rpctypes.TxResultJSON
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.Equal(t, uint64(0), res.GameID)

	_, errOut = run(t, addr, "game", "join", "-a", challenger, "-g", "0", "-m", "0.1")
	assert.Contains(t, errOut, types.ErrStakeMismatch.Error())
	_, errOut = run(t, addr, "game", "join", "-a", challenger, "-g", "0", "-m", "0.15")
	require.Empty(t, errOut)

	_, errOut = run(t, addr, "game", "commit", "-a", owner, "-g", "0", "-v", "rock", "-s", "Frodo Beggins")
	require.Empty(t, errOut)
	hash, _ := run(t, addr, "game", "hash", "-v", "scissors", "-s", "Galadriel")
	assert.Equal(t, types.CommitHashHex(types.MoveScissors, "Galadriel")+"\n", hash)
	_, errOut = run(t, addr, "game", "commit", "-a", challenger, "-g", "0", "-c", hash[:len(hash)-1])
	require.Empty(t, errOut)

	_, errOut = run(t, addr, "game", "reveal", "-a", owner, "-g", "0", "-v", "rock", "-s", "Frodo Beggins")
	require.Empty(t, errOut)
	_, errOut = run(t, addr, "game", "reveal", "-a", challenger, "-g", "0", "-v", "ROCK", "-s", "Galadriel")
	assert.Contains(t, errOut, types.ErrRevealMismatch.Error())
	_, errOut = run(t, addr, "game", "reveal", "-a", challenger, "-g", "0", "-v", "scissors", "-s", "Galadriel")
	require.Empty(t, errOut)

	out, errOut = run(t, addr, "game", "show", "-g", "0")
	require.Empty(t, errOut)
	var game map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(out), &game))
	assert.Equal(t, "CLOSED", game["status"])
	assert.Equal(t, "OWNER_WIN", game["outcome"])
	assert.Equal(t, "0.15", game["stake"])
	assert.Equal(t, "0", game["locked"])
	assert.Equal(t, owner, game["winner"])

	out, errOut = run(t, addr, "account", "balance", "-a", owner)
	require.Empty(t, errOut)
	var balance commands.BalanceResult
	require.NoError(t, json.Unmarshal([]byte(out), &balance))
	assert.Equal(t, "10.15", balance.Coins.Balance)
	assert.Equal(t, "0", balance.Escrow.Frozen)

	out, errOut = run(t, addr, "game", "list", "-t", "closed", "-a", challenger)
	require.Empty(t, errOut)
	var games struct {
		Games []map[string]interface{} `json:"games"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &games))
	require.Len(t, games.Games, 1)

	out, errOut = run(t, addr, "tx", "events", "-f", "0")
	require.Empty(t, errOut)
	var events []*types.Event
	require.NoError(t, json.Unmarshal([]byte(out), &events))
	require.Len(t, events, 1)
	assert.Equal(t, "win", events[0].Type)

	out, errOut = run(t, addr, "tx", "receipt", "-s", strconv.FormatInt(events[0].Seq, 10))
	require.Empty(t, errOut)
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.Equal(t, "RevealMove", res.Action)
}

func TestCliWithdraw(t *testing.T) {
	owner := testnode.Genaddress()
	mocker := testnode.New(types.Coin, owner)
	defer mocker.Close()
	mocker.Listen()
	addr := mocker.GetRPCAddr()

	_, errOut := run(t, addr, "game", "create", "-a", owner, "-m", "0.5")
	require.Empty(t, errOut)
	_, errOut = run(t, addr, "game", "timeout", "-a", owner, "-g", "0")
	assert.Contains(t, errOut, "Game status should be READY to perform that action")
	_, errOut = run(t, addr, "game", "withdraw", "-a", owner, "-g", "0")
	require.Empty(t, errOut)

	out, _ := run(t, addr, "game", "show", "-g", "0")
	assert.Contains(t, out, "ABANDONED")

	other := testnode.Genaddress()
	out, errOut = run(t, addr, "account", "balance", "-a", owner+","+other)
	require.Empty(t, errOut)
	var balances []*commands.BalanceResult
	require.NoError(t, json.Unmarshal([]byte(out), &balances))
	require.Len(t, balances, 2)
	assert.Equal(t, owner, balances[0].Addr)
	assert.Equal(t, "1", balances[0].Coins.Balance)
	assert.Equal(t, other, balances[1].Addr)
	assert.Equal(t, "0", balances[1].Coins.Balance)
}

func TestCliBadInput(t *testing.T) {
	_, errOut := run(t, cli.DefaultRPCAddr, "game", "create", "-a", "x", "-m", "0.123456789")
	assert.Contains(t, errOut, types.ErrAmount.Error())
	_, errOut = run(t, cli.DefaultRPCAddr, "game", "hash", "-v", "lizard")
	assert.Contains(t, errOut, types.ErrInvalidMove.Error())
	_, errOut = run(t, cli.DefaultRPCAddr, "game", "list", "-t", "running")
	assert.Contains(t, errOut, types.ErrInvalidParam.Error())
}

func TestCliVersion(t *testing.T) {
	mocker := testnode.New(types.Coin)
	defer mocker.Close()
	mocker.Listen()

	out, errOut := run(t, mocker.GetRPCAddr(), "version")
	require.Empty(t, errOut)
	assert.Equal(t, "client: "+version.GetVersion()+"\n"+version.GetVersion()+"\n", out)
}
