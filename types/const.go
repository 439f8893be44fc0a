// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package types

// RpsX 执行器名称
const RpsX = "rps"

// coin conversation
const (
	Coin    int64 = 1e8
	MaxCoin int64 = 1e17
)

// DefaultRevealTimeout 默认超时时间(秒)，超时后参与方可以申请裁决
const DefaultRevealTimeout int64 = 24 * 3600

// action type
const (
	RpsActionCreate = iota + 1
	RpsActionJoin
	RpsActionCommit
	RpsActionReveal
	RpsActionWithdraw
	RpsActionTimeout
)

// log type
const (
	TyLogRpsCreate   = 801
	TyLogRpsJoin     = 802
	TyLogRpsCommit   = 803
	TyLogRpsReveal   = 804
	TyLogRpsWin      = 805
	TyLogRpsDraw     = 806
	TyLogRpsWithdraw = 807
	TyLogRpsTimeout  = 808

	TyLogDeposit            = 901
	TyLogTransfer           = 902
	TyLogExecWithdraw       = 904
	TyLogExecDeposit        = 905
	TyLogExecFrozen         = 906
	TyLogExecActive         = 907
	TyLogExecTransferFrozen = 908
)

// receipt type
const (
	ExecErr  = 0
	ExecPack = 1
	ExecOk   = 2
)

// list direction
const (
	ListDESC = int32(0)
	ListASC  = int32(1)
)

// DefaultListCount 默认一次查询返回的条数
const DefaultListCount = 20

// MaxListCount 一次查询最多返回的条数
const MaxListCount = 100

var actionName = map[int32]string{
	RpsActionCreate:   "CreateGame",
	RpsActionJoin:     "JoinGame",
	RpsActionCommit:   "SubmitMove",
	RpsActionReveal:   "RevealMove",
	RpsActionWithdraw: "Withdraw",
	RpsActionTimeout:  "ClaimTimeout",
}

var logName = map[int32]string{
	TyLogRpsCreate:          "LogRpsCreate",
	TyLogRpsJoin:            "LogRpsJoin",
	TyLogRpsCommit:          "LogRpsCommit",
	TyLogRpsReveal:          "LogRpsReveal",
	TyLogRpsWin:             "win",
	TyLogRpsDraw:            "draw",
	TyLogRpsWithdraw:        "LogRpsWithdraw",
	TyLogRpsTimeout:         "LogRpsTimeout",
	TyLogDeposit:            "LogDeposit",
	TyLogTransfer:           "LogTransfer",
	TyLogExecWithdraw:       "LogExecWithdraw",
	TyLogExecDeposit:        "LogExecDeposit",
	TyLogExecFrozen:         "LogExecFrozen",
	TyLogExecActive:         "LogExecActive",
	TyLogExecTransferFrozen: "LogExecTransferFrozen",
}

// ActionName 返回action的名称
func ActionName(ty int32) string {
	if name, ok := actionName[ty]; ok {
		return name
	}
	return "unknown"
}

// LogName 返回日志类型的名称
func LogName(ty int32) string {
	if name, ok := logName[ty]; ok {
		return name
	}
	return "LogReserved"
}
