// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package types

import (
	"encoding/json"

	"github.com/33cn/rps/types"
)

// ReceiptLogResult 带名称的回执日志
type ReceiptLogResult struct {
	Ty     int32           `json:"ty"`
	TyName string          `json:"tyName"`
	Log    json.RawMessage `json:"log"`
}

// ReceiptDataResult 回执的 json 展示
type ReceiptDataResult struct {
	Ty     int32               `json:"ty"`
	TyName string              `json:"tyName"`
	Logs   []*ReceiptLogResult `json:"logs"`
}

// TxResultJSON 交易结果的 json 展示
type TxResultJSON struct {
	Seq     int64              `json:"seq"`
	Time    int64              `json:"time"`
	From    string             `json:"from"`
	Execer  string             `json:"execer"`
	Action  string             `json:"action"`
	GameID  uint64             `json:"gameID"`
	Receipt *ReceiptDataResult `json:"receipt"`
}

// DecodeLog decode log
func DecodeLog(receipt *types.Receipt) *ReceiptDataResult {
	if receipt == nil {
		return nil
	}
	var rTy string
	switch receipt.Ty {
	case types.ExecErr:
		rTy = "ExecErr"
	case types.ExecPack:
		rTy = "ExecPack"
	case types.ExecOk:
		rTy = "ExecOk"
	default:
		rTy = "Unknown"
	}
	rd := &ReceiptDataResult{Ty: receipt.Ty, TyName: rTy}
	for _, l := range receipt.Logs {
		rd.Logs = append(rd.Logs, &ReceiptLogResult{Ty: l.Ty, TyName: types.LogName(l.Ty), Log: l.Log})
	}
	return rd
}

// ConvertTxResult 转换成 json 展示, gameID 由调用方从回执里解析
func ConvertTxResult(in *types.TxResult, gameID uint64) *TxResultJSON {
	if in == nil {
		return nil
	}
	return &TxResultJSON{
		Seq:     in.Seq,
		Time:    in.Time,
		From:    in.From,
		Execer:  in.Execer,
		Action:  in.Action,
		GameID:  gameID,
		Receipt: DecodeLog(in.Receipt),
	}
}
