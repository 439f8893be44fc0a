// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package executor

import (
	"github.com/33cn/rps/account"
	"github.com/33cn/rps/types"
	"github.com/pkg/errors"
)

var genesisKey = []byte("mavl-exec-genesis")

// Genesis 创世分配, 只执行一次, 已经执行过返回 ErrGenesisDone
func (exec *Executor) Genesis(accs []*types.GenesisAccount) error {
	exec.mu.Lock()
	defer exec.mu.Unlock()

	statedb := NewStateDB(exec.state)
	if _, err := statedb.Get(genesisKey); err == nil {
		return types.ErrGenesisDone
	}
	statedb.Begin()
	acc := account.NewCoinsAccount(statedb)
	for _, g := range accs {
		addr, err := types.NormalizeAddress(g.Addr)
		if err != nil {
			statedb.Rollback()
			return errors.Wrapf(err, "genesis addr %s", g.Addr)
		}
		if _, err := acc.GenesisInit(addr, g.Amount); err != nil {
			statedb.Rollback()
			return errors.Wrapf(err, "genesis addr %s amount %d", addr, g.Amount)
		}
		elog.Info("genesis", "addr", addr, "amount", types.FormatAmount(g.Amount))
	}
	if err := statedb.Set(genesisKey, []byte("1")); err != nil {
		statedb.Rollback()
		return err
	}
	kvs := statedb.Commit()
	batch := exec.db.NewBatch(true)
	for _, kv := range kvs {
		batch.Set(kv.Key, kv.Value)
	}
	if err := batch.Write(); err != nil {
		exec.state.purge()
		return errors.Wrap(err, "genesis write")
	}
	exec.state.update(kvs)
	return nil
}
