// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package types

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMove(t *testing.T) {
	for s, want := range map[string]Move{"rock": MoveRock, "PAPER": MovePaper, "Scissors": MoveScissors, "2": MovePaper, "0": MoveNone} {
		m, err := ParseMove(s)
		require.NoError(t, err, s)
		assert.Equal(t, want, m, s)
	}
	_, err := ParseMove("lizard")
	assert.Equal(t, ErrInvalidMove, err)
	m, err := ParseMove("7")
	require.NoError(t, err)
	assert.False(t, m.Valid())
}

func TestMoveJSON(t *testing.T) {
	var r RpsReveal
	require.NoError(t, Decode([]byte(`{"gameID":1,"move":3,"seed":"s"}`), &r))
	assert.Equal(t, MoveScissors, r.Move)
	require.NoError(t, Decode([]byte(`{"gameID":1,"move":"rock","seed":"s"}`), &r))
	assert.Equal(t, MoveRock, r.Move)
	assert.Equal(t, `{"gameID":1,"move":"ROCK","seed":"s"}`, string(Encode(&r)))
	assert.Error(t, Decode([]byte(`{"move":"lizard"}`), &r))
}

func TestStatus(t *testing.T) {
	s, err := ParseStatus("ready")
	require.NoError(t, err)
	assert.Equal(t, StatusReady, s)
	s, err = ParseStatus("3")
	require.NoError(t, err)
	assert.Equal(t, StatusClosed, s)
	_, err = ParseStatus("9")
	assert.Equal(t, ErrInvalidParam, err)
	assert.True(t, StatusClosed.Terminal())
	assert.True(t, StatusAbandoned.Terminal())
	assert.False(t, StatusReady.Terminal())
	assert.Equal(t, "UNKNOWN", Status(9).String())
}

func TestGameSeats(t *testing.T) {
	g := &Game{Owner: Seat{Addr: "a"}, Challenger: Seat{Addr: "b"}}
	assert.Equal(t, RoleOwner, g.RoleOf("a"))
	assert.Equal(t, RoleChallenger, g.RoleOf("b"))
	assert.Equal(t, RoleNone, g.RoleOf("c"))
	assert.Equal(t, RoleNone, g.RoleOf(""))
	assert.Nil(t, g.Seat(RoleNone))
	assert.Equal(t, "b", g.Opponent(RoleOwner).Addr)

	assert.Equal(t, 0, g.Owner.Progress())
	g.Owner.Commitment = "0x01"
	assert.Equal(t, 1, g.Owner.Progress())
	assert.False(t, g.BothCommitted())
	g.Challenger.Commitment = "0x02"
	assert.True(t, g.BothCommitted())
	g.Owner.Move = MoveRock
	assert.Equal(t, 2, g.Owner.Progress())
	assert.False(t, g.BothRevealed())

	c := g.Clone()
	c.Owner.Move = MovePaper
	assert.Equal(t, MoveRock, g.Owner.Move)
	assert.Nil(t, (*Game)(nil).Clone())
}

func TestStatusError(t *testing.T) {
	err := NewStatusError(StatusOpen, StatusReady)
	assert.Equal(t, "Game status should be OPEN to perform that action", err.Error())
	assert.True(t, errors.Is(err, ErrInvalidState))
}
