// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package types

import (
	"testing"

	"github.com/33cn/rps/types"
	"github.com/stretchr/testify/assert"
)

func TestDecodeLog(t *testing.T) {
	assert.Nil(t, DecodeLog(nil))

	receipt := &types.Receipt{
		Ty: types.ExecOk,
		Logs: []*types.ReceiptLog{
			types.NewLog(types.TyLogRpsWin, &types.ReceiptWin{GameID: 1, Winner: "a", Amount: 10}),
			{Ty: 12345, Log: []byte(`{}`)},
		},
	}
	rd := DecodeLog(receipt)
	assert.Equal(t, "ExecOk", rd.TyName)
	assert.Len(t, rd.Logs, 2)
	assert.Equal(t, "win", rd.Logs[0].TyName)
	assert.JSONEq(t, `{"gameID":1,"winner":"a","amount":10}`, string(rd.Logs[0].Log))
	assert.Equal(t, "LogReserved", rd.Logs[1].TyName)

	rd = DecodeLog(&types.Receipt{Ty: 99})
	assert.Equal(t, "Unknown", rd.TyName)
	assert.Nil(t, rd.Logs)
}

func TestConvertTxResult(t *testing.T) {
	assert.Nil(t, ConvertTxResult(nil, 0))
	in := &types.TxResult{
		Seq:     3,
		Time:    100,
		From:    "from",
		Execer:  types.RpsX,
		Action:  "JoinGame",
		Receipt: &types.Receipt{Ty: types.ExecOk},
	}
	out := ConvertTxResult(in, 7)
	assert.Equal(t, int64(3), out.Seq)
	assert.Equal(t, uint64(7), out.GameID)
	assert.Equal(t, "JoinGame", out.Action)
	assert.Equal(t, "ExecOk", out.Receipt.TyName)
}
