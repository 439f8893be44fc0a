// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package util 节点使用的一些文件路径工具
package util

import (
	"os"
	"os/user"
	"path/filepath"

	log "github.com/inconshreveable/log15"
	"github.com/pkg/errors"
)

var ulog = log.New("module", "util")

// ExpandDatadir 展开 "~/" 和 "$TEMP/" 开头的目录
func ExpandDatadir(datadir string) (string, error) {
	// Check in case of paths like "/something/~/something/"
	if len(datadir) >= 2 && datadir[:2] == "~/" {
		usr, err := user.Current()
		if err != nil {
			return "", errors.Wrap(err, "current user")
		}
		datadir = filepath.Join(usr.HomeDir, datadir[2:])
	}
	if len(datadir) >= 6 && datadir[:6] == "$TEMP/" {
		dir, err := os.MkdirTemp("", "rpsdatadir-")
		if err != nil {
			return "", errors.Wrap(err, "temp dir")
		}
		datadir = filepath.Join(dir, datadir[6:])
	}
	ulog.Info("current user data dir is ", "dir", datadir)
	return datadir, nil
}

// CheckPathExists 检查文件夹是否存在
func CheckPathExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// MakeDir 目录不存在时创建
func MakeDir(path string) error {
	if CheckPathExists(path) {
		return nil
	}
	return os.MkdirAll(path, 0750)
}
