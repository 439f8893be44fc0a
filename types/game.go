// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package types

import (
	"bytes"
	"strconv"
	"strings"
)

// Move 出拳
type Move int32

// moves
const (
	MoveNone     Move = 0
	MoveRock     Move = 1
	MovePaper    Move = 2
	MoveScissors Move = 3
)

var moveNames = map[Move]string{
	MoveNone:     "NONE",
	MoveRock:     "ROCK",
	MovePaper:    "PAPER",
	MoveScissors: "SCISSORS",
}

// Valid 只有石头剪刀布三种合法出拳
func (m Move) Valid() bool {
	return m >= MoveRock && m <= MoveScissors
}

func (m Move) String() string {
	if name, ok := moveNames[m]; ok {
		return name
	}
	return strconv.FormatInt(int64(m), 10)
}

// MarshalText json 中以名称展示
func (m Move) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// UnmarshalText 接受名称或者数字, 数字不做范围检查
func (m *Move) UnmarshalText(text []byte) error {
	mv, err := ParseMove(string(text))
	if err != nil {
		return err
	}
	*m = mv
	return nil
}

// UnmarshalJSON 同时接受 "ROCK" 和 1 两种写法
func (m *Move) UnmarshalJSON(data []byte) error {
	return m.UnmarshalText(bytes.Trim(data, `"`))
}

// ParseMove parse "rock" / "ROCK" / "1"
func ParseMove(s string) (Move, error) {
	s = strings.TrimSpace(s)
	for mv, name := range moveNames {
		if strings.EqualFold(s, name) {
			return mv, nil
		}
	}
	n, err := strconv.ParseInt(s, 10, 32)
	if err != nil {
		return MoveNone, ErrInvalidMove
	}
	return Move(n), nil
}

// Status 游戏状态
type Status int32

// game status
const (
	StatusNone      Status = 0
	StatusOpen      Status = 1
	StatusReady     Status = 2
	StatusClosed    Status = 3
	StatusAbandoned Status = 4
)

var statusNames = map[Status]string{
	StatusNone:      "NONE",
	StatusOpen:      "OPEN",
	StatusReady:     "READY",
	StatusClosed:    "CLOSED",
	StatusAbandoned: "ABANDONED",
}

func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return "UNKNOWN"
}

// Terminal CLOSED 和 ABANDONED 是终态
func (s Status) Terminal() bool {
	return s == StatusClosed || s == StatusAbandoned
}

// MarshalText json 中以名称展示
func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText parse status name or number
func (s *Status) UnmarshalText(text []byte) error {
	st, err := ParseStatus(string(text))
	if err != nil {
		return err
	}
	*s = st
	return nil
}

// UnmarshalJSON 同时接受 "OPEN" 和 1 两种写法
func (s *Status) UnmarshalJSON(data []byte) error {
	return s.UnmarshalText(bytes.Trim(data, `"`))
}

// ParseStatus parse "open" / "OPEN" / "1"
func ParseStatus(s string) (Status, error) {
	s = strings.TrimSpace(s)
	for st, name := range statusNames {
		if strings.EqualFold(s, name) {
			return st, nil
		}
	}
	n, err := strconv.ParseInt(s, 10, 32)
	if err != nil || statusNames[Status(n)] == "" {
		return StatusNone, ErrInvalidParam
	}
	return Status(n), nil
}

// Outcome 结算结果
type Outcome int32

// outcomes
const (
	OutcomeNone Outcome = iota
	OutcomeOwnerWin
	OutcomeChallengerWin
	OutcomeDraw
	OutcomeTimeoutWin
	OutcomeTimeoutRefund
	OutcomeAbandoned
)

var outcomeNames = map[Outcome]string{
	OutcomeNone:          "NONE",
	OutcomeOwnerWin:      "OWNER_WIN",
	OutcomeChallengerWin: "CHALLENGER_WIN",
	OutcomeDraw:          "DRAW",
	OutcomeTimeoutWin:    "TIMEOUT_WIN",
	OutcomeTimeoutRefund: "TIMEOUT_REFUND",
	OutcomeAbandoned:     "ABANDONED",
}

func (o Outcome) String() string {
	if name, ok := outcomeNames[o]; ok {
		return name
	}
	return "UNKNOWN"
}

// MarshalText json 中以名称展示
func (o Outcome) MarshalText() ([]byte, error) {
	return []byte(o.String()), nil
}

// UnmarshalText parse outcome name
func (o *Outcome) UnmarshalText(text []byte) error {
	for oc, name := range outcomeNames {
		if string(text) == name {
			*o = oc
			return nil
		}
	}
	return ErrInvalidParam
}

// Role 参与方身份
type Role int

// roles
const (
	RoleNone Role = iota
	RoleOwner
	RoleChallenger
)

func (r Role) String() string {
	switch r {
	case RoleOwner:
		return "owner"
	case RoleChallenger:
		return "challenger"
	}
	return "none"
}

// Seat 一方参与者的承诺和揭示结果, 各字段只写一次
type Seat struct {
	Addr       string `json:"addr,omitempty"`
	Commitment string `json:"commitment,omitempty"`
	Move       Move   `json:"move,omitempty"`
}

// Committed 是否已经提交承诺
func (s *Seat) Committed() bool {
	return s.Commitment != ""
}

// Revealed 是否已经揭示
func (s *Seat) Revealed() bool {
	return s.Move != MoveNone
}

// Progress 0 未操作, 1 已承诺, 2 已揭示
func (s *Seat) Progress() int {
	switch {
	case s.Revealed():
		return 2
	case s.Committed():
		return 1
	}
	return 0
}

// Game 一局游戏
type Game struct {
	ID             uint64  `json:"id"`
	Owner          Seat    `json:"owner"`
	Challenger     Seat    `json:"challenger"`
	Stake          int64   `json:"stake"`
	Status         Status  `json:"status"`
	Locked         int64   `json:"locked"`
	Outcome        Outcome `json:"outcome"`
	Winner         string  `json:"winner,omitempty"`
	CreateSeq      int64   `json:"createSeq"`
	CreateTime     int64   `json:"createTime"`
	ReadyTime      int64   `json:"readyTime,omitempty"`
	LastActionTime int64   `json:"lastActionTime"`
	CloseTime      int64   `json:"closeTime,omitempty"`
}

// RoleOf 返回地址在游戏中的身份
func (g *Game) RoleOf(addr string) Role {
	switch {
	case addr == "":
		return RoleNone
	case addr == g.Owner.Addr:
		return RoleOwner
	case addr == g.Challenger.Addr:
		return RoleChallenger
	}
	return RoleNone
}

// Seat 返回身份对应的座位, RoleNone 返回 nil
func (g *Game) Seat(r Role) *Seat {
	switch r {
	case RoleOwner:
		return &g.Owner
	case RoleChallenger:
		return &g.Challenger
	}
	return nil
}

// Opponent 对手的座位
func (g *Game) Opponent(r Role) *Seat {
	switch r {
	case RoleOwner:
		return &g.Challenger
	case RoleChallenger:
		return &g.Owner
	}
	return nil
}

// BothCommitted 双方都已提交承诺
func (g *Game) BothCommitted() bool {
	return g.Owner.Committed() && g.Challenger.Committed()
}

// BothRevealed 双方都已揭示
func (g *Game) BothRevealed() bool {
	return g.Owner.Revealed() && g.Challenger.Revealed()
}

// Clone 深拷贝
func (g *Game) Clone() *Game {
	if g == nil {
		return nil
	}
	c := *g
	return &c
}
