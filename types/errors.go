// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package types

import (
	"errors"
	"fmt"
)

// game errors
var (
	ErrGameNotFound      = errors.New("ErrGameNotFound")
	ErrInvalidState      = errors.New("ErrInvalidState")
	ErrStakeMismatch     = errors.New("ErrStakeMismatch")
	ErrAlreadyCommitted  = errors.New("ErrAlreadyCommitted")
	ErrAlreadyRevealed   = errors.New("ErrAlreadyRevealed")
	ErrRevealMismatch    = errors.New("ErrRevealMismatch")
	ErrInvalidMove       = errors.New("ErrInvalidMove")
	ErrUnauthorized      = errors.New("ErrUnauthorized")
	ErrTimeoutNotReached = errors.New("ErrTimeoutNotReached")
	ErrEscrowInvariant   = errors.New("ErrEscrowInvariant")
)

// common errors
var (
	ErrNotFound         = errors.New("ErrNotFound")
	ErrInvalidParam     = errors.New("ErrInvalidParam")
	ErrInvalidAddress   = errors.New("ErrInvalidAddress")
	ErrAmount           = errors.New("ErrAmount")
	ErrNoBalance        = errors.New("ErrNoBalance")
	ErrSendSameToRecv   = errors.New("ErrSendSameToRecv")
	ErrActionNotSupport = errors.New("ErrActionNotSupport")
	ErrUnknowDriver     = errors.New("ErrUnknowDriver")
	ErrGenesisDone      = errors.New("ErrGenesisDone")
)

// StatusError 游戏状态不满足操作条件
type StatusError struct {
	Want Status
	Got  Status
}

// NewStatusError new a status error
func NewStatusError(want, got Status) *StatusError {
	return &StatusError{Want: want, Got: got}
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("Game status should be %s to perform that action", e.Want)
}

// Unwrap errors.Is(err, ErrInvalidState) 为真
func (e *StatusError) Unwrap() error {
	return ErrInvalidState
}

// Cause for github.com/pkg/errors
func (e *StatusError) Cause() error {
	return ErrInvalidState
}
