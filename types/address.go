// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package types

import (
	"sync"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
)

var (
	execAddrCache = make(map[string]string)
	execAddrLock  sync.Mutex
)

// CheckAddress 地址必须是20字节的 hex 地址
func CheckAddress(addr string) error {
	if !common.IsHexAddress(addr) {
		return ErrInvalidAddress
	}
	return nil
}

// NormalizeAddress 转成 EIP55 checksum 格式, 同一个地址只有一种表示
func NormalizeAddress(addr string) (string, error) {
	if err := CheckAddress(addr); err != nil {
		return "", err
	}
	return common.HexToAddress(addr).Hex(), nil
}

// ExecAddress 执行器地址, 由执行器名称的 keccak256 后20字节得到
func ExecAddress(name string) string {
	execAddrLock.Lock()
	defer execAddrLock.Unlock()
	if addr, ok := execAddrCache[name]; ok {
		return addr
	}
	addr := common.BytesToAddress(crypto.Keccak256([]byte(name))[12:]).Hex()
	execAddrCache[name] = addr
	return addr
}
