// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package executor

import "github.com/33cn/rps/types"

// Judge 裁决, 不涉及任何资金变化
// 石头胜剪刀, 剪刀胜布, 布胜石头, 相同为平局; 出拳不合法时返回 OutcomeNone
func Judge(owner, challenger types.Move) types.Outcome {
	if !owner.Valid() || !challenger.Valid() {
		return types.OutcomeNone
	}
	switch (int32(owner) - int32(challenger) + 3) % 3 {
	case 0:
		return types.OutcomeDraw
	case 1:
		return types.OutcomeOwnerWin
	}
	return types.OutcomeChallengerWin
}
