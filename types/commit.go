// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package types

import (
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
)

// CommitHash keccak256(abi.encodePacked(uint256(move), seed))
// 与 ethers.utils.solidityKeccak256(["uint256","string"], [move, seed]) 结果一致
func CommitHash(move Move, seed string) common.Hash {
	word := common.LeftPadBytes(big.NewInt(int64(move)).Bytes(), 32)
	if move < 0 {
		// 负数按 uint256 补码处理, 合法出拳不会走到这里
		word = common.LeftPadBytes(new(big.Int).Add(big.NewInt(int64(move)), tt256).Bytes(), 32)
	}
	return crypto.Keccak256Hash(word, []byte(seed))
}

var tt256 = new(big.Int).Lsh(big.NewInt(1), 256)

// CommitHashHex 0x 开头的小写 hex
func CommitHashHex(move Move, seed string) string {
	return CommitHash(move, seed).Hex()
}

// ParseCommitment 校验并规范化承诺, 必须是非零的32字节hash
func ParseCommitment(s string) (string, error) {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "0x") && !strings.HasPrefix(s, "0X") {
		s = "0x" + s
	}
	b, err := hexutil.Decode(strings.ToLower(s))
	if err != nil || len(b) != common.HashLength {
		return "", ErrInvalidParam
	}
	h := common.BytesToHash(b)
	if h == (common.Hash{}) {
		return "", ErrInvalidParam
	}
	return h.Hex(), nil
}

// VerifyReveal 检查揭示的出拳和种子是否与承诺一致
func VerifyReveal(commitment string, move Move, seed string) bool {
	c, err := ParseCommitment(commitment)
	if err != nil {
		return false
	}
	return c == CommitHashHex(move, seed)
}
