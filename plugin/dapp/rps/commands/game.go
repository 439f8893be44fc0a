// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package commands rps 命令行
package commands

import (
	"fmt"

	rpsrpc "github.com/33cn/rps/plugin/dapp/rps/rpc"
	"github.com/33cn/rps/rpc/jsonclient"
	rpctypes "github.com/33cn/rps/rpc/types"
	"github.com/33cn/rps/types"
	"github.com/spf13/cobra"
)

// RpsCmd game 命令
func RpsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "game",
		Short: "Rock paper scissors game management",
		Args:  cobra.MinimumNArgs(1),
	}
	cmd.AddCommand(
		CreateGameCmd(),
		JoinGameCmd(),
		CommitMoveCmd(),
		RevealMoveCmd(),
		WithdrawGameCmd(),
		ClaimTimeoutCmd(),
		ShowGameCmd(),
		ListGamesCmd(),
		CommitHashCmd(),
	)
	return cmd
}

func method(name string) string {
	return rpsrpc.ServiceName + "." + name
}

// newCtx rpc 调用的输出跟随 cobra 的设置, 测试时可以截获
func newCtx(cmd *cobra.Command, name string, params, res interface{}) *jsonclient.RPCCtx {
	rpcLaddr, _ := cmd.Flags().GetString("rpc_laddr")
	ctx := jsonclient.NewRPCCtx(rpcLaddr, method(name), params, res)
	ctx.SetOutput(cmd.OutOrStdout(), cmd.ErrOrStderr())
	return ctx
}

func fail(cmd *cobra.Command, err error) {
	fmt.Fprintln(cmd.ErrOrStderr(), err)
}

func addAddrFlag(cmd *cobra.Command) {
	cmd.Flags().StringP("addr", "a", "", "player address")
	cmd.MarkFlagRequired("addr")
}

func addGameIDFlag(cmd *cobra.Command) {
	cmd.Flags().Uint64P("gameID", "g", 0, "game id")
	cmd.MarkFlagRequired("gameID")
}

// CreateGameCmd 创建游戏
func CreateGameCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a game and lock the stake",
		Run:   createGame,
	}
	addAddrFlag(cmd)
	cmd.Flags().StringP("amount", "m", "0", "stake in coins, e.g. 0.15")
	return cmd
}

func createGame(cmd *cobra.Command, args []string) {
	addr, _ := cmd.Flags().GetString("addr")
	amountStr, _ := cmd.Flags().GetString("amount")
	amount, err := types.ParseAmount(amountStr)
	if err != nil {
		fail(cmd, err)
		return
	}
	params := &rpsrpc.CreateGameTx{From: addr, Amount: amount}
	var res rpctypes.TxResultJSON
	newCtx(cmd, "CreateGame", params, &res).Run()
}

// JoinGameCmd 加入游戏
func JoinGameCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "join",
		Short: "Join an open game with the same stake",
		Run:   joinGame,
	}
	addAddrFlag(cmd)
	addGameIDFlag(cmd)
	cmd.Flags().StringP("amount", "m", "0", "stake in coins, must equal the owner's stake")
	return cmd
}

func joinGame(cmd *cobra.Command, args []string) {
	addr, _ := cmd.Flags().GetString("addr")
	gameID, _ := cmd.Flags().GetUint64("gameID")
	amountStr, _ := cmd.Flags().GetString("amount")
	amount, err := types.ParseAmount(amountStr)
	if err != nil {
		fail(cmd, err)
		return
	}
	params := &rpsrpc.JoinGameTx{From: addr, GameID: gameID, Amount: amount}
	var res rpctypes.TxResultJSON
	newCtx(cmd, "JoinGame", params, &res).Run()
}

// CommitMoveCmd 提交承诺, 可以直接给出承诺, 也可以给出出拳和种子在本地计算
func CommitMoveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "commit",
		Short: "Submit the commitment of a move",
		Run:   commitMove,
	}
	addAddrFlag(cmd)
	addGameIDFlag(cmd)
	cmd.Flags().StringP("commitment", "c", "", "keccak256 commitment hex")
	cmd.Flags().StringP("move", "v", "", "move: rock, paper or scissors")
	cmd.Flags().StringP("seed", "s", "", "secret seed")
	return cmd
}

func commitMove(cmd *cobra.Command, args []string) {
	addr, _ := cmd.Flags().GetString("addr")
	gameID, _ := cmd.Flags().GetUint64("gameID")
	commitment, _ := cmd.Flags().GetString("commitment")
	if commitment == "" {
		moveStr, _ := cmd.Flags().GetString("move")
		seed, _ := cmd.Flags().GetString("seed")
		move, err := parseMove(moveStr)
		if err != nil {
			fail(cmd, err)
			return
		}
		commitment = types.CommitHashHex(move, seed)
	}
	params := &rpsrpc.SubmitMoveTx{From: addr, GameID: gameID, Commitment: commitment}
	var res rpctypes.TxResultJSON
	newCtx(cmd, "SubmitMove", params, &res).Run()
}

// RevealMoveCmd 揭示
func RevealMoveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reveal",
		Short: "Reveal the committed move",
		Run:   revealMove,
	}
	addAddrFlag(cmd)
	addGameIDFlag(cmd)
	cmd.Flags().StringP("move", "v", "", "move: rock, paper or scissors")
	cmd.MarkFlagRequired("move")
	cmd.Flags().StringP("seed", "s", "", "secret seed used in commit")
	return cmd
}

func revealMove(cmd *cobra.Command, args []string) {
	addr, _ := cmd.Flags().GetString("addr")
	gameID, _ := cmd.Flags().GetUint64("gameID")
	moveStr, _ := cmd.Flags().GetString("move")
	seed, _ := cmd.Flags().GetString("seed")
	move, err := parseMove(moveStr)
	if err != nil {
		fail(cmd, err)
		return
	}
	params := &rpsrpc.RevealMoveTx{From: addr, GameID: gameID, Move: move, Seed: seed}
	var res rpctypes.TxResultJSON
	newCtx(cmd, "RevealMove", params, &res).Run()
}

// WithdrawGameCmd 开局前撤回
func WithdrawGameCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "withdraw",
		Short: "Withdraw the stake before anyone joins",
		Run:   withdrawGame,
	}
	addAddrFlag(cmd)
	addGameIDFlag(cmd)
	return cmd
}

func withdrawGame(cmd *cobra.Command, args []string) {
	addr, _ := cmd.Flags().GetString("addr")
	gameID, _ := cmd.Flags().GetUint64("gameID")
	var res rpctypes.TxResultJSON
	newCtx(cmd, "Withdraw", &rpsrpc.GameTx{From: addr, GameID: gameID}, &res).Run()
}

// ClaimTimeoutCmd 超时裁决
func ClaimTimeoutCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "timeout",
		Short: "Settle a game whose opponent stopped playing",
		Run:   claimTimeout,
	}
	addAddrFlag(cmd)
	addGameIDFlag(cmd)
	return cmd
}

func claimTimeout(cmd *cobra.Command, args []string) {
	addr, _ := cmd.Flags().GetString("addr")
	gameID, _ := cmd.Flags().GetUint64("gameID")
	var res rpctypes.TxResultJSON
	newCtx(cmd, "ClaimTimeout", &rpsrpc.GameTx{From: addr, GameID: gameID}, &res).Run()
}

// ShowGameCmd 查询游戏
func ShowGameCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show game info",
		Run:   showGame,
	}
	addGameIDFlag(cmd)
	return cmd
}

func showGame(cmd *cobra.Command, args []string) {
	gameID, _ := cmd.Flags().GetUint64("gameID")
	var res types.Game
	ctx := newCtx(cmd, "GetGame", &types.ReqGame{GameID: gameID}, &res)
	ctx.SetResultCb(parseGame)
	ctx.Run()
}

// ListGamesCmd 分页查询
func ListGamesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List games by status and/or address",
		Run:   listGames,
	}
	cmd.Flags().StringP("status", "t", "", "status: open, ready, closed, abandoned")
	cmd.Flags().StringP("addr", "a", "", "participant address")
	cmd.Flags().StringP("primaryKey", "p", "", "id of the last game of the previous page")
	cmd.Flags().Int32P("count", "n", types.DefaultListCount, "page size")
	cmd.Flags().Int32P("direction", "d", types.ListDESC, "0: newest first, 1: oldest first")
	return cmd
}

func listGames(cmd *cobra.Command, args []string) {
	statusStr, _ := cmd.Flags().GetString("status")
	addr, _ := cmd.Flags().GetString("addr")
	primaryKey, _ := cmd.Flags().GetString("primaryKey")
	count, _ := cmd.Flags().GetInt32("count")
	direction, _ := cmd.Flags().GetInt32("direction")
	req := &types.ReqListGames{Addr: addr, PrimaryKey: primaryKey, Count: count, Direction: direction}
	if statusStr != "" {
		status, err := types.ParseStatus(statusStr)
		if err != nil {
			fail(cmd, err)
			return
		}
		req.Status = status
	}
	var res types.ReplyGames
	ctx := newCtx(cmd, "ListGames", req, &res)
	ctx.SetResultCb(parseGames)
	ctx.Run()
}

// CommitHashCmd 本地计算承诺, 不访问节点
func CommitHashCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "hash",
		Short: "Compute keccak256(uint256(move), seed) locally",
		Run:   commitHash,
	}
	cmd.Flags().StringP("move", "v", "", "move: rock, paper or scissors")
	cmd.MarkFlagRequired("move")
	cmd.Flags().StringP("seed", "s", "", "secret seed")
	return cmd
}

func commitHash(cmd *cobra.Command, args []string) {
	moveStr, _ := cmd.Flags().GetString("move")
	seed, _ := cmd.Flags().GetString("seed")
	move, err := parseMove(moveStr)
	if err != nil {
		fail(cmd, err)
		return
	}
	fmt.Fprintln(cmd.OutOrStdout(), types.CommitHashHex(move, seed))
}

func parseMove(s string) (types.Move, error) {
	move, err := types.ParseMove(s)
	if err != nil {
		return types.MoveNone, err
	}
	if !move.Valid() {
		return types.MoveNone, types.ErrInvalidMove
	}
	return move, nil
}
