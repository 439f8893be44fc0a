// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package types

import (
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

var coinDecimal = decimal.NewFromInt(Coin)

// CheckAmount amount 必须在 (0, MaxCoin) 范围内
func CheckAmount(amount int64) bool {
	if amount <= 0 || amount >= MaxCoin {
		return false
	}
	return true
}

// ParseAmount "0.15" -> 15000000, 精度超过 1e-8 报错
func ParseAmount(s string) (int64, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, errors.Wrapf(ErrAmount, "parse %q", s)
	}
	if d.IsNegative() {
		return 0, errors.Wrapf(ErrAmount, "negative amount %s", s)
	}
	units := d.Mul(coinDecimal)
	if !units.Equal(units.Truncate(0)) {
		return 0, errors.Wrapf(ErrAmount, "amount %s has more than 8 decimals", s)
	}
	if units.GreaterThanOrEqual(decimal.NewFromInt(MaxCoin)) {
		return 0, errors.Wrapf(ErrAmount, "amount %s too large", s)
	}
	return units.IntPart(), nil
}

// FormatAmount 15000000 -> "0.15"
func FormatAmount(amount int64) string {
	return decimal.New(amount, -8).String()
}
