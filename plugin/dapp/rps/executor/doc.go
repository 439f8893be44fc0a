// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package executor 石头剪刀布合约, 使用 commit-reveal 保证双方出拳互相不可见

游戏的生命周期:

	status == OPEN      创建, 押金冻结在合约中, 等待对手加入
	status == READY     对手加入, 押金相同, 双方提交承诺 hash(move, seed) 然后揭示
	status == CLOSED    第二个揭示完成时立即裁决并结算, 或者超时后由领先的一方申请裁决
	status == ABANDONED 开局前创建者取回押金

承诺的计算方式与 solidity 一致:

	keccak256(abi.encodePacked(uint256(move), seed))

索引规则:

	状态索引     key = LODB-rps-status-{status}-{gameID}
	地址索引     key = LODB-rps-addr-{addr}-{gameID}
	地址状态索引 key = LODB-rps-addrstatus-{addr}-{status}-{gameID}
	value = gameID

状态变化时删除老状态的索引, 以免形成脏数据.
*/
package executor
