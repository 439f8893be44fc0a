// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package version 版本号
package version

const version = "1.0.0"

// GitCommit 编译时通过 -ldflags 注入
var GitCommit string

// GetVersion 获取版本号
func GetVersion() string {
	if GitCommit != "" {
		return version + "-" + GitCommit
	}
	return version
}
