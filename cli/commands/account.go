// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package commands 系统命令
package commands

import (
	"github.com/33cn/rps/rpc/jsonclient"
	"github.com/33cn/rps/types"
	"github.com/spf13/cobra"
)

// AccountResult 金额以 coin 为单位展示
type AccountResult struct {
	Addr    string `json:"addr"`
	Balance string `json:"balance"`
	Frozen  string `json:"frozen"`
}

// BalanceResult coins 账户和执行器中的押金账户
type BalanceResult struct {
	Addr   string         `json:"addr"`
	Coins  *AccountResult `json:"coins"`
	Escrow *AccountResult `json:"escrow"`
}

// AccountCmd account command
func AccountCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "account",
		Short: "Account query",
		Args:  cobra.MinimumNArgs(1),
	}
	cmd.AddCommand(BalanceCmd())
	return cmd
}

// BalanceCmd get balance of an address
func BalanceCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "balance",
		Short: "Get coins balance and escrow of addresses",
		Run:   balance,
	}
	cmd.Flags().StringSliceP("addr", "a", nil, "account address, comma separated for several")
	cmd.MarkFlagRequired("addr")
	return cmd
}

func balance(cmd *cobra.Command, args []string) {
	rpcLaddr, _ := cmd.Flags().GetString("rpc_laddr")
	addrs, _ := cmd.Flags().GetStringSlice("addr")
	if len(addrs) == 1 {
		params := map[string]string{"addr": addrs[0]}
		var res types.ReplyBalance
		ctx := jsonclient.NewRPCCtx(rpcLaddr, "Rps.GetBalance", params, &res)
		ctx.SetOutput(cmd.OutOrStdout(), cmd.ErrOrStderr())
		ctx.SetResultCb(parseBalance)
		ctx.Run()
		return
	}
	params := map[string][]string{"addrs": addrs}
	var res []*types.ReplyBalance
	ctx := jsonclient.NewRPCCtx(rpcLaddr, "Rps.GetBalances", params, &res)
	ctx.SetOutput(cmd.OutOrStdout(), cmd.ErrOrStderr())
	ctx.SetResultCb(parseBalances)
	ctx.Run()
}

func parseBalances(res interface{}) (interface{}, error) {
	replies := *res.(*[]*types.ReplyBalance)
	result := make([]*BalanceResult, 0, len(replies))
	for _, reply := range replies {
		r, _ := parseBalance(reply)
		result = append(result, r.(*BalanceResult))
	}
	return result, nil
}

func parseBalance(res interface{}) (interface{}, error) {
	reply := res.(*types.ReplyBalance)
	return &BalanceResult{
		Addr:   reply.Addr,
		Coins:  convertAccount(reply.Coins),
		Escrow: convertAccount(reply.Escrow),
	}, nil
}

func convertAccount(acc *types.Account) *AccountResult {
	if acc == nil {
		return nil
	}
	return &AccountResult{
		Addr:    acc.Addr,
		Balance: types.FormatAmount(acc.Balance),
		Frozen:  types.FormatAmount(acc.Frozen),
	}
}
