// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package commands

import (
	"fmt"

	"github.com/33cn/rps/common/version"
	"github.com/33cn/rps/rpc/jsonclient"
	"github.com/spf13/cobra"
)

// VersionCmd version command
func VersionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Get node and client version",
		Run:   showVersion,
	}
	return cmd
}

func showVersion(cmd *cobra.Command, args []string) {
	rpcLaddr, _ := cmd.Flags().GetString("rpc_laddr")
	fmt.Fprintln(cmd.OutOrStdout(), "client:", version.GetVersion())
	ctx := jsonclient.NewRPCCtx(rpcLaddr, "Rps.Version", nil, nil)
	ctx.SetOutput(cmd.OutOrStdout(), cmd.ErrOrStderr())
	ctx.RunWithoutMarshal()
}
