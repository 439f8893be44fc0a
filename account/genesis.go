// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package account

import (
	"github.com/33cn/rps/types"
)

func safeAdd(balance, amount int64) (int64, error) {
	if balance+amount < amount || balance+amount > types.MaxCoin {
		return balance, types.ErrAmount
	}
	return balance + amount, nil
}

// GenesisInit 创世分配
func (acc *DB) GenesisInit(addr string, amount int64) (receipt *types.Receipt, err error) {
	if !types.CheckAmount(amount) {
		return nil, types.ErrAmount
	}
	accTo := acc.LoadAccount(addr)
	copyto := *accTo
	accTo.Balance, err = safeAdd(accTo.Balance, amount)
	if err != nil {
		return nil, err
	}
	receiptBalanceTo := &types.ReceiptAccountTransfer{
		Prev:    &copyto,
		Current: accTo,
	}
	acc.SaveAccount(accTo)
	return &types.Receipt{
		Ty:   types.ExecOk,
		KV:   acc.GetKVSet(accTo),
		Logs: []*types.ReceiptLog{types.NewLog(types.TyLogDeposit, receiptBalanceTo)},
	}, nil
}
