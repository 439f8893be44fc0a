// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package executor

import (
	"fmt"
	"strconv"

	"github.com/33cn/rps/types"
)

var (
	gameKeyPrefix   = "mavl-" + types.RpsX + "-game-"
	gameCountKey    = []byte("mavl-" + types.RpsX + "-count")
	escrowKey       = []byte("mavl-" + types.RpsX + "-escrow")
	statusKeyPrefix = "LODB-" + types.RpsX + "-status-"
	addrKeyPrefix   = "LODB-" + types.RpsX + "-addr-"
	addrStatusKey   = "LODB-" + types.RpsX + "-addrstatus-"
)

// Key 游戏在状态数据库中的 key
func Key(id uint64) []byte {
	return []byte(fmt.Sprintf("%s%020d", gameKeyPrefix, id))
}

func formatID(id uint64) string {
	return fmt.Sprintf("%020d", id)
}

func calcStatusPrefix(status types.Status) []byte {
	return []byte(fmt.Sprintf("%s%d-", statusKeyPrefix, status))
}

func calcStatusKey(status types.Status, id uint64) []byte {
	return append(calcStatusPrefix(status), formatID(id)...)
}

func calcAddrPrefix(addr string) []byte {
	return []byte(fmt.Sprintf("%s%s-", addrKeyPrefix, addr))
}

func calcAddrKey(addr string, id uint64) []byte {
	return append(calcAddrPrefix(addr), formatID(id)...)
}

func calcAddrStatusPrefix(addr string, status types.Status) []byte {
	return []byte(fmt.Sprintf("%s%s-%d-", addrStatusKey, addr, status))
}

func calcAddrStatusKey(addr string, status types.Status, id uint64) []byte {
	return append(calcAddrStatusPrefix(addr, status), formatID(id)...)
}

func idValue(id uint64) []byte {
	return []byte(strconv.FormatUint(id, 10))
}

func parseIDValue(value []byte) (uint64, error) {
	return strconv.ParseUint(string(value), 10, 64)
}
