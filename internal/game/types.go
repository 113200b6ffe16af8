// internal/game/types.go
//
// Core type definitions for a geoguess game.
// Defines:
//   - Challenge: one round (clue text + hidden answer location).
//   - Score:     one leaderboard entry.
//   - Game:      a 5-round set plus its append-only score list.

package game

import (
	"time"

	"github.com/robalobadob/geoguess/internal/geo"
)

// RoundsPerGame is the fixed size of every round set.
const RoundsPerGame = 5

// Challenge is a single round. Title is the source article and is never sent
// to players.
type Challenge struct {
	Clue     string         `json:"sentence"`
	Location geo.Coordinate `json:"location"`
	Title    string         `json:"-"`
}

// Score is a player's final result for one game.
type Score struct {
	Name  string `json:"name"`
	Score int    `json:"score"`
}

// Game holds the rounds and scores of one game session.
type Game struct {
	ID        string      // Short opaque identifier.
	Rounds    []Challenge // Exactly RoundsPerGame entries; never mutated.
	Scores    []Score     // Append-only, in submission order.
	CreatedAt time.Time
}
