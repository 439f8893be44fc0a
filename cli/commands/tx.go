// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package commands

import (
	"github.com/33cn/rps/rpc/jsonclient"
	rpctypes "github.com/33cn/rps/rpc/types"
	"github.com/33cn/rps/types"
	"github.com/spf13/cobra"
)

// TxCmd transaction command
func TxCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tx",
		Short: "Transaction receipts and notifications",
		Args:  cobra.MinimumNArgs(1),
	}
	cmd.AddCommand(
		ReceiptCmd(),
		EventsCmd(),
	)
	return cmd
}

// ReceiptCmd 按序号查询回执
func ReceiptCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "receipt",
		Short: "Get transaction result by sequence",
		Run:   receipt,
	}
	cmd.Flags().Int64P("seq", "s", 0, "transaction sequence")
	cmd.MarkFlagRequired("seq")
	return cmd
}

func receipt(cmd *cobra.Command, args []string) {
	rpcLaddr, _ := cmd.Flags().GetString("rpc_laddr")
	seq, _ := cmd.Flags().GetInt64("seq")
	params := map[string]int64{"seq": seq}
	var res rpctypes.TxResultJSON
	ctx := jsonclient.NewRPCCtx(rpcLaddr, "Rps.GetReceipt", params, &res)
	ctx.SetOutput(cmd.OutOrStdout(), cmd.ErrOrStderr())
	ctx.Run()
}

// EventsCmd 按序号读取事件
func EventsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "events",
		Short: "List win/draw notifications from a sequence",
		Run:   events,
	}
	cmd.Flags().Int64P("from", "f", 0, "start sequence (inclusive)")
	cmd.Flags().Int32P("count", "n", types.DefaultListCount, "max events")
	return cmd
}

func events(cmd *cobra.Command, args []string) {
	rpcLaddr, _ := cmd.Flags().GetString("rpc_laddr")
	from, _ := cmd.Flags().GetInt64("from")
	count, _ := cmd.Flags().GetInt32("count")
	params := map[string]interface{}{"from": from, "count": count}
	var res []*types.Event
	ctx := jsonclient.NewRPCCtx(rpcLaddr, "Rps.GetEvents", params, &res)
	ctx.SetOutput(cmd.OutOrStdout(), cmd.ErrOrStderr())
	ctx.Run()
}
