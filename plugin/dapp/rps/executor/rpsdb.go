// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package executor

//database opeartion for executor rps
import (
	"strconv"

	"github.com/33cn/rps/account"
	dbm "github.com/33cn/rps/common/db"
	"github.com/33cn/rps/types"
	"github.com/pkg/errors"
)

// Action 一笔交易的执行上下文
type Action struct {
	coinsAccount *account.DB
	db           dbm.KV
	fromaddr     string
	amount       int64
	blocktime    int64
	height       int64
	execaddr     string
	index        int
	cfg          *types.Exec
}

// NewAction new action
func NewAction(r *Rps, tx *types.Transaction, index int) *Action {
	return &Action{
		coinsAccount: r.GetCoinsAccount(),
		db:           r.GetStateDB(),
		fromaddr:     tx.From,
		amount:       tx.Amount,
		blocktime:    r.GetBlockTime(),
		height:       r.GetHeight(),
		execaddr:     r.GetAddr(),
		index:        index,
		cfg:          r.GetExecConfig(),
	}
}

func getGame(db dbm.KV, id uint64) (*types.Game, error) {
	value, err := db.Get(Key(id))
	if isNotFound(err) {
		return nil, errors.Wrapf(types.ErrGameNotFound, "gameID=%d", id)
	}
	if err != nil {
		return nil, err
	}
	var game types.Game
	if err := types.Decode(value, &game); err != nil {
		//数据错误了，已经被修改了
		panic(err)
	}
	return &game, nil
}

// getGames 批量读取, 有一个不存在就报错
func getGames(db dbm.KV, ids []uint64) ([]*types.Game, error) {
	keys := make([][]byte, 0, len(ids))
	for _, id := range ids {
		keys = append(keys, Key(id))
	}
	values, err := dbm.BatchGet(db, keys)
	if err != nil {
		return nil, err
	}
	games := make([]*types.Game, 0, len(values))
	for i, value := range values {
		if value == nil {
			rlog.Error("getGames index without game", "gameID", ids[i])
			return nil, errors.Wrapf(types.ErrGameNotFound, "gameID=%d", ids[i])
		}
		var game types.Game
		if err := types.Decode(value, &game); err != nil {
			panic(err)
		}
		games = append(games, &game)
	}
	return games, nil
}

func isNotFound(err error) bool {
	cause := errors.Cause(err)
	return cause == types.ErrNotFound || cause == dbm.ErrNotFoundInDb
}

func getInt64(db dbm.KV, key []byte) (int64, error) {
	value, err := db.Get(key)
	if isNotFound(err) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	n, err := strconv.ParseInt(string(value), 10, 64)
	if err != nil {
		return 0, errors.Wrapf(err, "decode %s", string(key))
	}
	return n, nil
}

func getEscrow(db dbm.KV) (int64, error) {
	return getInt64(db, escrowKey)
}

func (action *Action) setInt64(key []byte, n int64) *types.KeyValue {
	kv := &types.KeyValue{Key: key, Value: []byte(strconv.FormatInt(n, 10))}
	if err := action.db.Set(kv.Key, kv.Value); err != nil {
		panic(err)
	}
	return kv
}

// nextGameID 游戏编号从 0 开始递增
func (action *Action) nextGameID() (uint64, *types.KeyValue, error) {
	count, err := getInt64(action.db, gameCountKey)
	if err != nil {
		return 0, nil, err
	}
	return uint64(count), action.setInt64(gameCountKey, count+1), nil
}

func (action *Action) addEscrow(delta int64) (*types.KeyValue, error) {
	escrow, err := getEscrow(action.db)
	if err != nil {
		return nil, err
	}
	escrow += delta
	if escrow < 0 {
		return nil, errors.Wrapf(types.ErrEscrowInvariant, "escrow below zero: %d", escrow)
	}
	return action.setInt64(escrowKey, escrow), nil
}

func (action *Action) saveGame(game *types.Game) *types.KeyValue {
	kv := &types.KeyValue{Key: Key(game.ID), Value: types.Encode(game)}
	if err := action.db.Set(kv.Key, kv.Value); err != nil {
		panic(err)
	}
	return kv
}

func (action *Action) gameLog(ty int32, prev, current *types.Game) *types.ReceiptLog {
	r := &types.ReceiptGame{
		GameID:  current.ID,
		Action:  types.LogName(ty),
		Addr:    action.fromaddr,
		Prev:    prev,
		Current: current,
	}
	return types.NewLog(ty, r)
}

// lockStake 押金从 coins 账户转入合约并冻结
func (action *Action) lockStake(addr string, amount int64) (*types.Receipt, error) {
	receipt, err := action.coinsAccount.TransferToExec(addr, action.execaddr, amount)
	if err != nil {
		rlog.Error("lockStake.TransferToExec", "addr", addr, "execaddr", action.execaddr, "amount", amount, "err", err)
		return nil, err
	}
	receipt2, err := action.coinsAccount.ExecFrozen(addr, action.execaddr, amount)
	if err != nil {
		rlog.Error("lockStake.ExecFrozen", "addr", addr, "execaddr", action.execaddr, "amount", amount, "err", err)
		return nil, err
	}
	return types.MergeReceipt(receipt, receipt2), nil
}

// unlockStake 解冻并取回到 coins 账户
func (action *Action) unlockStake(addr string, amount int64) (*types.Receipt, error) {
	receipt, err := action.coinsAccount.ExecActive(addr, action.execaddr, amount)
	if err != nil {
		rlog.Error("unlockStake.ExecActive", "addr", addr, "execaddr", action.execaddr, "amount", amount, "err", err)
		return nil, err
	}
	receipt2, err := action.coinsAccount.TransferWithdraw(addr, action.execaddr, amount)
	if err != nil {
		rlog.Error("unlockStake.TransferWithdraw", "addr", addr, "execaddr", action.execaddr, "amount", amount, "err", err)
		return nil, err
	}
	return types.MergeReceipt(receipt, receipt2), nil
}

func (action *Action) checkStake(stake int64) error {
	if stake < 0 {
		return errors.Wrapf(types.ErrAmount, "stake %d", stake)
	}
	if stake < action.cfg.MinStake {
		return errors.Wrapf(types.ErrAmount, "stake %s less than %s", types.FormatAmount(stake), types.FormatAmount(action.cfg.MinStake))
	}
	if action.cfg.MaxStake > 0 && stake > action.cfg.MaxStake {
		return errors.Wrapf(types.ErrAmount, "stake %s greater than %s", types.FormatAmount(stake), types.FormatAmount(action.cfg.MaxStake))
	}
	return nil
}

// GameCreate 创建游戏, 押金可以为 0
func (action *Action) GameCreate(create *types.RpsCreate) (*types.Receipt, error) {
	stake := action.amount
	if err := action.checkStake(stake); err != nil {
		return nil, err
	}
	receipt := &types.Receipt{Ty: types.ExecOk}
	if stake > 0 {
		r, err := action.lockStake(action.fromaddr, stake)
		if err != nil {
			return nil, err
		}
		receipt = types.MergeReceipt(receipt, r)
	}
	id, kv, err := action.nextGameID()
	if err != nil {
		return nil, err
	}
	receipt.KV = append(receipt.KV, kv)
	game := &types.Game{
		ID:             id,
		Owner:          types.Seat{Addr: action.fromaddr},
		Stake:          stake,
		Status:         types.StatusOpen,
		Locked:         stake,
		CreateSeq:      action.height,
		CreateTime:     action.blocktime,
		LastActionTime: action.blocktime,
	}
	escrowKV, err := action.addEscrow(stake)
	if err != nil {
		return nil, err
	}
	receipt.KV = append(receipt.KV, action.saveGame(game), escrowKV)
	receipt.Logs = append(receipt.Logs, action.gameLog(types.TyLogRpsCreate, nil, game))
	rlog.Debug("GameCreate", "gameID", id, "owner", action.fromaddr, "stake", types.FormatAmount(stake))
	return receipt, nil
}

// GameJoin 加入游戏, 押金必须与创建者相同
func (action *Action) GameJoin(join *types.RpsJoin) (*types.Receipt, error) {
	game, err := getGame(action.db, join.GameID)
	if err != nil {
		return nil, err
	}
	if game.Status != types.StatusOpen {
		return nil, types.NewStatusError(types.StatusOpen, game.Status)
	}
	if game.Owner.Addr == action.fromaddr {
		return nil, errors.Wrapf(types.ErrUnauthorized, "owner can not join own game %d", game.ID)
	}
	if action.amount != game.Stake {
		return nil, errors.Wrapf(types.ErrStakeMismatch, "stake should be %s, got %s",
			types.FormatAmount(game.Stake), types.FormatAmount(action.amount))
	}
	receipt := &types.Receipt{Ty: types.ExecOk}
	if game.Stake > 0 {
		r, err := action.lockStake(action.fromaddr, game.Stake)
		if err != nil {
			return nil, err
		}
		receipt = types.MergeReceipt(receipt, r)
	}
	prev := game.Clone()
	game.Challenger.Addr = action.fromaddr
	game.Status = types.StatusReady
	game.Locked += game.Stake
	game.ReadyTime = action.blocktime
	game.LastActionTime = action.blocktime
	escrowKV, err := action.addEscrow(game.Stake)
	if err != nil {
		return nil, err
	}
	receipt.KV = append(receipt.KV, action.saveGame(game), escrowKV)
	receipt.Logs = append(receipt.Logs, action.gameLog(types.TyLogRpsJoin, prev, game))
	return receipt, nil
}

// GameCommit 提交出拳承诺, 每一方只能提交一次
func (action *Action) GameCommit(commit *types.RpsCommit) (*types.Receipt, error) {
	game, err := getGame(action.db, commit.GameID)
	if err != nil {
		return nil, err
	}
	if game.Status != types.StatusReady {
		return nil, types.NewStatusError(types.StatusReady, game.Status)
	}
	role := game.RoleOf(action.fromaddr)
	if role == types.RoleNone {
		return nil, errors.Wrapf(types.ErrUnauthorized, "%s is not a player of game %d", action.fromaddr, game.ID)
	}
	seat := game.Seat(role)
	if seat.Committed() {
		return nil, errors.Wrapf(types.ErrAlreadyCommitted, "%s of game %d", role, game.ID)
	}
	commitment, err := types.ParseCommitment(commit.Commitment)
	if err != nil {
		return nil, errors.Wrapf(err, "commitment %q", commit.Commitment)
	}
	prev := game.Clone()
	seat.Commitment = commitment
	game.LastActionTime = action.blocktime
	receipt := &types.Receipt{Ty: types.ExecOk}
	receipt.KV = append(receipt.KV, action.saveGame(game))
	receipt.Logs = append(receipt.Logs, action.gameLog(types.TyLogRpsCommit, prev, game))
	return receipt, nil
}

// GameReveal 揭示出拳, 第二个揭示完成时立即裁决
func (action *Action) GameReveal(reveal *types.RpsReveal) (*types.Receipt, error) {
	game, err := getGame(action.db, reveal.GameID)
	if err != nil {
		return nil, err
	}
	if game.Status != types.StatusReady {
		return nil, types.NewStatusError(types.StatusReady, game.Status)
	}
	if !game.BothCommitted() {
		return nil, errors.Wrapf(types.ErrInvalidState, "game %d is waiting for commitments", game.ID)
	}
	role := game.RoleOf(action.fromaddr)
	if role == types.RoleNone {
		return nil, errors.Wrapf(types.ErrUnauthorized, "%s is not a player of game %d", action.fromaddr, game.ID)
	}
	seat := game.Seat(role)
	if seat.Revealed() {
		return nil, errors.Wrapf(types.ErrAlreadyRevealed, "%s of game %d", role, game.ID)
	}
	if !reveal.Move.Valid() {
		return nil, errors.Wrapf(types.ErrInvalidMove, "move %s", reveal.Move)
	}
	if !types.VerifyReveal(seat.Commitment, reveal.Move, reveal.Seed) {
		return nil, errors.Wrapf(types.ErrRevealMismatch, "%s of game %d", role, game.ID)
	}
	prev := game.Clone()
	seat.Move = reveal.Move
	game.LastActionTime = action.blocktime

	receipt := &types.Receipt{Ty: types.ExecOk}
	if game.BothRevealed() {
		outcome := Judge(game.Owner.Move, game.Challenger.Move)
		var r *types.Receipt
		switch outcome {
		case types.OutcomeOwnerWin:
			r, err = action.payout(game, types.RoleOwner, outcome)
		case types.OutcomeChallengerWin:
			r, err = action.payout(game, types.RoleChallenger, outcome)
		default:
			r, err = action.refund(game, outcome)
		}
		if err != nil {
			return nil, err
		}
		receipt = types.MergeReceipt(receipt, r)
	}
	receipt.KV = append(receipt.KV, action.saveGame(game))
	// 游戏日志放在最前面, 结算日志在后
	receipt.Logs = append([]*types.ReceiptLog{action.gameLog(types.TyLogRpsReveal, prev, game)}, receipt.Logs...)
	return receipt, nil
}

// GameWithdraw 开局前创建者取回押金, 游戏作废
func (action *Action) GameWithdraw(withdraw *types.RpsWithdraw) (*types.Receipt, error) {
	game, err := getGame(action.db, withdraw.GameID)
	if err != nil {
		return nil, err
	}
	if game.Owner.Addr != action.fromaddr {
		return nil, errors.Wrapf(types.ErrUnauthorized, "only owner can withdraw game %d", game.ID)
	}
	if game.Status != types.StatusOpen {
		return nil, types.NewStatusError(types.StatusOpen, game.Status)
	}
	prev := game.Clone()
	receipt := &types.Receipt{Ty: types.ExecOk}
	if game.Locked > 0 {
		r, err := action.unlockStake(game.Owner.Addr, game.Locked)
		if err != nil {
			return nil, err
		}
		receipt = types.MergeReceipt(receipt, r)
	}
	escrowKV, err := action.addEscrow(-game.Locked)
	if err != nil {
		return nil, err
	}
	game.Locked = 0
	game.Status = types.StatusAbandoned
	game.Outcome = types.OutcomeAbandoned
	game.CloseTime = action.blocktime
	game.LastActionTime = action.blocktime
	receipt.KV = append(receipt.KV, action.saveGame(game), escrowKV)
	receipt.Logs = append([]*types.ReceiptLog{action.gameLog(types.TyLogRpsWithdraw, prev, game)}, receipt.Logs...)
	return receipt, nil
}

// GameTimeout 超时裁决, 进度领先的一方获得全部押金, 进度相同则各自退回
func (action *Action) GameTimeout(timeout *types.RpsTimeout) (*types.Receipt, error) {
	game, err := getGame(action.db, timeout.GameID)
	if err != nil {
		return nil, err
	}
	if game.Status != types.StatusReady {
		return nil, types.NewStatusError(types.StatusReady, game.Status)
	}
	role := game.RoleOf(action.fromaddr)
	if role == types.RoleNone {
		return nil, errors.Wrapf(types.ErrUnauthorized, "%s is not a player of game %d", action.fromaddr, game.ID)
	}
	if action.blocktime-game.LastActionTime < action.cfg.RevealTimeout {
		return nil, errors.Wrapf(types.ErrTimeoutNotReached, "game %d last action %d, now %d, timeout %d",
			game.ID, game.LastActionTime, action.blocktime, action.cfg.RevealTimeout)
	}
	mine, theirs := game.Seat(role).Progress(), game.Opponent(role).Progress()
	if mine < theirs {
		return nil, errors.Wrapf(types.ErrUnauthorized, "%s is behind in game %d", role, game.ID)
	}
	prev := game.Clone()
	var r *types.Receipt
	if mine > theirs {
		r, err = action.payout(game, role, types.OutcomeTimeoutWin)
	} else {
		r, err = action.refund(game, types.OutcomeTimeoutRefund)
	}
	if err != nil {
		return nil, err
	}
	receipt := types.MergeReceipt(&types.Receipt{Ty: types.ExecOk}, r)
	receipt.KV = append(receipt.KV, action.saveGame(game))
	receipt.Logs = append([]*types.ReceiptLog{action.gameLog(types.TyLogRpsTimeout, prev, game)}, receipt.Logs...)
	return receipt, nil
}

// payout 胜者获得双方的押金, 游戏结束
func (action *Action) payout(game *types.Game, winner types.Role, outcome types.Outcome) (*types.Receipt, error) {
	winAddr := game.Seat(winner).Addr
	loseAddr := game.Opponent(winner).Addr
	receipt := &types.Receipt{Ty: types.ExecOk}
	if game.Stake > 0 {
		r, err := action.coinsAccount.ExecTransferFrozen(loseAddr, winAddr, action.execaddr, game.Stake)
		if err != nil {
			rlog.Error("payout.ExecTransferFrozen", "gameID", game.ID, "from", loseAddr, "to", winAddr, "err", err)
			return nil, err
		}
		receipt = types.MergeReceipt(receipt, r)
		r, err = action.coinsAccount.ExecActive(winAddr, action.execaddr, game.Stake)
		if err != nil {
			rlog.Error("payout.ExecActive", "gameID", game.ID, "addr", winAddr, "err", err)
			return nil, err
		}
		receipt = types.MergeReceipt(receipt, r)
		r, err = action.coinsAccount.TransferWithdraw(winAddr, action.execaddr, game.Locked)
		if err != nil {
			rlog.Error("payout.TransferWithdraw", "gameID", game.ID, "addr", winAddr, "err", err)
			return nil, err
		}
		receipt = types.MergeReceipt(receipt, r)
	}
	escrowKV, err := action.addEscrow(-game.Locked)
	if err != nil {
		return nil, err
	}
	receipt.KV = append(receipt.KV, escrowKV)
	amount := game.Locked
	action.close(game, outcome)
	game.Winner = winAddr
	receipt.Logs = append(receipt.Logs, types.NewLog(types.TyLogRpsWin, &types.ReceiptWin{
		GameID: game.ID,
		Winner: winAddr,
		Amount: amount,
	}))
	rlog.Info("game settled", "gameID", game.ID, "outcome", outcome, "winner", winAddr, "amount", types.FormatAmount(amount))
	return receipt, nil
}

// refund 平局或者超时双方都没有进展, 各自取回押金
func (action *Action) refund(game *types.Game, outcome types.Outcome) (*types.Receipt, error) {
	receipt := &types.Receipt{Ty: types.ExecOk}
	if game.Stake > 0 {
		for _, addr := range []string{game.Owner.Addr, game.Challenger.Addr} {
			r, err := action.unlockStake(addr, game.Stake)
			if err != nil {
				return nil, err
			}
			receipt = types.MergeReceipt(receipt, r)
		}
	}
	escrowKV, err := action.addEscrow(-game.Locked)
	if err != nil {
		return nil, err
	}
	receipt.KV = append(receipt.KV, escrowKV)
	action.close(game, outcome)
	receipt.Logs = append(receipt.Logs, types.NewLog(types.TyLogRpsDraw, &types.ReceiptDraw{
		GameID:     game.ID,
		Owner:      game.Owner.Addr,
		Challenger: game.Challenger.Addr,
		Refund:     game.Stake,
	}))
	rlog.Info("game settled", "gameID", game.ID, "outcome", outcome, "refund", types.FormatAmount(game.Stake))
	return receipt, nil
}

func (action *Action) close(game *types.Game, outcome types.Outcome) {
	game.Locked = 0
	game.Status = types.StatusClosed
	game.Outcome = outcome
	game.CloseTime = action.blocktime
	game.LastActionTime = action.blocktime
}
