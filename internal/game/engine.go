// internal/game/engine.go
//
// Game construction and score handling.
//
// Notes:
//   - Rounds are generated elsewhere (internal/challenge); New only validates
//     the count and stamps an id.
//   - NewID takes the first 8 characters of a random UUID.

package game

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
)

// DefaultPlayerName is recorded for score submissions without a name.
const DefaultPlayerName = "Anonymous"

// ErrRoundCount is returned when a round set is not exactly RoundsPerGame long.
var ErrRoundCount = errors.New("wrong number of rounds")

// New constructs a game with a fresh id around rounds.
func New(rounds []Challenge) (*Game, error) {
	return NewWithID(NewID(), rounds)
}

// NewWithID is New with a caller-chosen id (daily games).
func NewWithID(id string, rounds []Challenge) (*Game, error) {
	if len(rounds) != RoundsPerGame {
		return nil, fmt.Errorf("%w: got %d, want %d", ErrRoundCount, len(rounds), RoundsPerGame)
	}
	return &Game{
		ID:        id,
		Rounds:    append([]Challenge(nil), rounds...),
		Scores:    []Score{},
		CreatedAt: time.Now().UTC(),
	}, nil
}

// NewScore normalizes a submission: blank names become DefaultPlayerName.
func NewScore(name string, score int) Score {
	name = strings.TrimSpace(name)
	if name == "" {
		name = DefaultPlayerName
	}
	return Score{Name: name, Score: score}
}

// Leaderboard returns scores ordered highest first; ties keep submission
// order. The input is not modified.
func Leaderboard(scores []Score) []Score {
	out := make([]Score, len(scores))
	copy(out, scores)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Score > out[j].Score })
	return out
}

// NewID returns an 8-character identifier.
func NewID() string {
	return uuid.NewString()[:8]
}
