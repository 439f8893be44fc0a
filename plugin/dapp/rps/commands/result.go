// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package commands

import "github.com/33cn/rps/types"

// GameResult 金额以 coin 为单位展示
type GameResult struct {
	ID             uint64     `json:"id"`
	Owner          types.Seat `json:"owner"`
	Challenger     types.Seat `json:"challenger"`
	Stake          string     `json:"stake"`
	Status         string     `json:"status"`
	Locked         string     `json:"locked"`
	Outcome        string     `json:"outcome"`
	Winner         string     `json:"winner,omitempty"`
	CreateTime     int64      `json:"createTime"`
	LastActionTime int64      `json:"lastActionTime"`
	CloseTime      int64      `json:"closeTime,omitempty"`
}

// GamesResult 分页结果
type GamesResult struct {
	Games      []*GameResult `json:"games"`
	PrimaryKey string        `json:"primaryKey,omitempty"`
	Total      int64         `json:"total"`
}

func convertGame(game *types.Game) *GameResult {
	return &GameResult{
		ID:             game.ID,
		Owner:          game.Owner,
		Challenger:     game.Challenger,
		Stake:          types.FormatAmount(game.Stake),
		Status:         game.Status.String(),
		Locked:         types.FormatAmount(game.Locked),
		Outcome:        game.Outcome.String(),
		Winner:         game.Winner,
		CreateTime:     game.CreateTime,
		LastActionTime: game.LastActionTime,
		CloseTime:      game.CloseTime,
	}
}

func parseGame(res interface{}) (interface{}, error) {
	return convertGame(res.(*types.Game)), nil
}

func parseGames(res interface{}) (interface{}, error) {
	reply := res.(*types.ReplyGames)
	result := &GamesResult{Games: make([]*GameResult, 0, len(reply.Games)), PrimaryKey: reply.PrimaryKey, Total: reply.Total}
	for _, game := range reply.Games {
		result.Games = append(result.Games, convertGame(game))
	}
	return result, nil
}
