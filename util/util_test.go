// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package util

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpandDatadir(t *testing.T) {
	dir, err := ExpandDatadir("/var/rps")
	require.NoError(t, err)
	assert.Equal(t, "/var/rps", dir)

	dir, err = ExpandDatadir("$TEMP/node1")
	require.NoError(t, err)
	defer os.RemoveAll(filepath.Dir(dir))
	assert.Equal(t, "node1", filepath.Base(dir))
	assert.True(t, strings.HasPrefix(filepath.Base(filepath.Dir(dir)), "rpsdatadir-"))

	dir, err = ExpandDatadir("~/rps")
	require.NoError(t, err)
	assert.True(t, filepath.IsAbs(dir))
	assert.Equal(t, "rps", filepath.Base(dir))
}

func TestMakeDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a", "b")
	assert.False(t, CheckPathExists(path))
	require.NoError(t, MakeDir(path))
	assert.True(t, CheckPathExists(path))
	require.NoError(t, MakeDir(path))
}
