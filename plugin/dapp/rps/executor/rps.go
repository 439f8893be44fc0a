// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package executor

import (
	"sync"

	"github.com/33cn/rps/executor/drivers"
	"github.com/33cn/rps/types"
	log "github.com/inconshreveable/log15"
	"github.com/pkg/errors"
)

var (
	rlog     = log.New("module", "execs.rps")
	initOnce sync.Once
)

// Init 注册执行器, 多次调用只注册一次
func Init(name string) {
	initOnce.Do(func() {
		drivers.Register(name, newRps)
	})
}

// Rps 石头剪刀布执行器
type Rps struct {
	drivers.DriverBase
}

func newRps() drivers.Driver {
	r := &Rps{}
	r.SetChild(r)
	return r
}

// GetName 执行器名称
func GetName() string {
	return newRps().GetName()
}

// GetDriverName 驱动名称
func (r *Rps) GetDriverName() string {
	return types.RpsX
}

// CheckTx 只有创建和加入可以携带资金, 每种 action 必须有对应的参数
func (r *Rps) CheckTx(tx *types.Transaction, index int) error {
	if err := r.DriverBase.CheckTx(tx, index); err != nil {
		return err
	}
	action := tx.Action
	var ok bool
	switch action.Ty {
	case types.RpsActionCreate:
		ok = action.Create != nil
	case types.RpsActionJoin:
		ok = action.Join != nil
	case types.RpsActionCommit:
		ok = action.Commit != nil
	case types.RpsActionReveal:
		ok = action.Reveal != nil
	case types.RpsActionWithdraw:
		ok = action.Withdraw != nil
	case types.RpsActionTimeout:
		ok = action.Timeout != nil
	default:
		return types.ErrActionNotSupport
	}
	if !ok {
		return errors.Wrapf(types.ErrInvalidParam, "action %s without payload", types.ActionName(action.Ty))
	}
	if action.Ty != types.RpsActionCreate && action.Ty != types.RpsActionJoin && tx.Amount != 0 {
		return errors.Wrapf(types.ErrAmount, "action %s does not accept value", types.ActionName(action.Ty))
	}
	return nil
}

// Exec 执行交易
func (r *Rps) Exec(tx *types.Transaction, index int) (*types.Receipt, error) {
	action := NewAction(r, tx, index)
	rlog.Debug("exec rps tx", "from", tx.From, "action", types.ActionName(tx.Action.Ty))
	switch tx.Action.Ty {
	case types.RpsActionCreate:
		return action.GameCreate(tx.Action.Create)
	case types.RpsActionJoin:
		return action.GameJoin(tx.Action.Join)
	case types.RpsActionCommit:
		return action.GameCommit(tx.Action.Commit)
	case types.RpsActionReveal:
		return action.GameReveal(tx.Action.Reveal)
	case types.RpsActionWithdraw:
		return action.GameWithdraw(tx.Action.Withdraw)
	case types.RpsActionTimeout:
		return action.GameTimeout(tx.Action.Timeout)
	}
	return nil, types.ErrActionNotSupport
}

// CheckState 所有游戏锁定的押金之和必须等于合约中冻结的资金
func (r *Rps) CheckState() error {
	escrow, err := getEscrow(r.GetStateDB())
	if err != nil {
		return err
	}
	frozen := r.GetCoinsAccount().TotalFrozen(r.GetAddr())
	if escrow != frozen {
		return errors.Wrapf(types.ErrEscrowInvariant, "game escrow %d, exec frozen %d", escrow, frozen)
	}
	return nil
}
