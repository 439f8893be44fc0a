// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package drivers

import (
	"sort"
	"sync"

	"github.com/33cn/rps/types"
	log "github.com/inconshreveable/log15"
)

var elog = log.New("module", "execs")

// DriverCreate 创建驱动
type DriverCreate func() Driver

var (
	registedExecDriver = make(map[string]DriverCreate)
	execAddressNameMap = make(map[string]string)
	driverLock         sync.RWMutex
)

// Register 注册执行器驱动, 同名重复注册会 panic
func Register(name string, create DriverCreate) {
	if create == nil {
		panic("Execute: Register driver is nil")
	}
	if len(name) == 0 {
		panic("empty name string")
	}
	driverLock.Lock()
	defer driverLock.Unlock()
	if _, dup := registedExecDriver[name]; dup {
		panic("Execute: Register called twice for driver " + name)
	}
	registedExecDriver[name] = create
	execAddressNameMap[name] = types.ExecAddress(name)
	elog.Debug("Register", "driver", name, "addr", execAddressNameMap[name])
}

// LoadDriver 加载一个新的驱动实例
func LoadDriver(name string) (Driver, error) {
	driverLock.RLock()
	defer driverLock.RUnlock()
	c, ok := registedExecDriver[name]
	if !ok {
		return nil, types.ErrUnknowDriver
	}
	return c(), nil
}

// IsDriverAddress 地址是否是某个执行器的地址
func IsDriverAddress(addr string) bool {
	driverLock.RLock()
	defer driverLock.RUnlock()
	for _, execaddr := range execAddressNameMap {
		if execaddr == addr {
			return true
		}
	}
	return false
}

// ExecAddress 执行器地址
func ExecAddress(name string) string {
	driverLock.RLock()
	addr, ok := execAddressNameMap[name]
	driverLock.RUnlock()
	if ok {
		return addr
	}
	return types.ExecAddress(name)
}

// Names 已经注册的执行器
func Names() []string {
	driverLock.RLock()
	defer driverLock.RUnlock()
	names := make([]string, 0, len(registedExecDriver))
	for name := range registedExecDriver {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
