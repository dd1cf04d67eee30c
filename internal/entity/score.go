package entity

import (
	"encoding/json"
	"math"
)

// session value keys.
const (
	PlayerXScoreKey = "player_x_score"
	PlayerOScoreKey = "player_o_score"
)

type ScoreState struct {
	PlayerXScore int `json:"playerXScore"`
	PlayerOScore int `json:"playerOScore"`
}

// Increment adds a point for the player. Invalid players are ignored.
func (that *ScoreState) Increment(player Player) {
	switch player {
	case PlayerX:
		that.PlayerXScore++
	case PlayerO:
		that.PlayerOScore++
	case PlayerInvalid:
	}
}

func (that *ScoreState) Reset() {
	that.PlayerXScore = 0
	that.PlayerOScore = 0
}

// ScoreStateFromValues reads the scores out of a session mapping.
// Missing, malformed or negative values count as 0; complete reports whether both were usable.
func ScoreStateFromValues(values map[interface{}]interface{}) (ScoreState, bool) {
	x, okX := scoreValue(values[PlayerXScoreKey])
	o, okO := scoreValue(values[PlayerOScoreKey])

	return ScoreState{PlayerXScore: x, PlayerOScore: o}, okX && okO
}

// WriteValues stores both scores into a session mapping.
func (that ScoreState) WriteValues(values map[interface{}]interface{}) {
	values[PlayerXScoreKey] = that.PlayerXScore
	values[PlayerOScoreKey] = that.PlayerOScore
}

func scoreValue(raw interface{}) (int, bool) {
	var score int64

	switch v := raw.(type) {
	case int:
		score = int64(v)
	case int64:
		score = v
	case int32:
		score = int64(v)
	case float64:
		if v != math.Trunc(v) || v > math.MaxInt32 {
			return 0, false
		}
		score = int64(v)
	case json.Number:
		n, err := v.Int64()
		if err != nil {
			return 0, false
		}
		score = n
	default:
		return 0, false
	}

	if score < 0 || score > math.MaxInt32 {
		return 0, false
	}

	return int(score), true
}
