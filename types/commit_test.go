// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package types

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommitHash(t *testing.T) {
	// solidityKeccak256(["uint256","string"], [move, seed])
	cases := []struct {
		move Move
		seed string
		hash string
	}{
		{MoveRock, "Frodo Beggins", "0x03e9309628aecb54a8ed697f950e661892487c5df167edc97dda9e880c48e3d8"},
		{MoveScissors, "Galadriel", "0x49c1a8f0f14d9d996bad1f491de480692f54ca96fee6954ce0c1a98b6a585451"},
		{MovePaper, "", "0x405787fa12a823e0f2b7631cc41b3ba8828b3321ca811111fa75cd3aa3bb5ace"},
	}
	for _, c := range cases {
		assert.Equal(t, c.hash, CommitHashHex(c.move, c.seed))
		assert.Equal(t, CommitHashHex(c.move, c.seed), CommitHashHex(c.move, c.seed))
	}
	assert.NotEqual(t, CommitHashHex(MoveRock, "seed"), CommitHashHex(MovePaper, "seed"))
	assert.NotEqual(t, CommitHashHex(MoveRock, "seed"), CommitHashHex(MoveRock, "seed2"))
}

func TestParseCommitment(t *testing.T) {
	h := CommitHashHex(MoveRock, "Frodo Beggins")
	c, err := ParseCommitment(strings.ToUpper(h[2:]))
	require.NoError(t, err)
	assert.Equal(t, h, c)
	c, err = ParseCommitment("  " + h + " ")
	require.NoError(t, err)
	assert.Equal(t, h, c)

	for _, bad := range []string{"", "0x", "0x1234", "zz", h + "00", "0x" + strings.Repeat("0", 64)} {
		_, err := ParseCommitment(bad)
		assert.Equal(t, ErrInvalidParam, err, bad)
	}
}

func TestVerifyReveal(t *testing.T) {
	h := CommitHashHex(MoveScissors, "Galadriel")
	assert.True(t, VerifyReveal(h, MoveScissors, "Galadriel"))
	assert.False(t, VerifyReveal(h, MoveRock, "Galadriel"))
	assert.False(t, VerifyReveal(h, MoveScissors, "galadriel"))
	assert.False(t, VerifyReveal("bad", MoveScissors, "Galadriel"))
}
