package game

import (
	"errors"
	"testing"

	"github.com/robalobadob/geoguess/internal/geo"
)

func rounds(n int) []Challenge {
	out := make([]Challenge, n)
	for i := range out {
		out[i] = Challenge{Clue: "clue", Location: geo.Fallback}
	}
	return out
}

func TestNew(t *testing.T) {
	g, err := New(rounds(RoundsPerGame))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if len(g.ID) != 8 {
		t.Errorf("expected 8-char id, got %q", g.ID)
	}
	if len(g.Rounds) != RoundsPerGame {
		t.Errorf("expected %d rounds, got %d", RoundsPerGame, len(g.Rounds))
	}
	if g.Scores == nil || len(g.Scores) != 0 {
		t.Errorf("expected empty non-nil scores, got %v", g.Scores)
	}
}

func TestNewRejectsWrongRoundCount(t *testing.T) {
	for _, n := range []int{0, 4, 6} {
		if _, err := New(rounds(n)); !errors.Is(err, ErrRoundCount) {
			t.Errorf("%d rounds: expected ErrRoundCount, got %v", n, err)
		}
	}
}

func TestNewCopiesRounds(t *testing.T) {
	rs := rounds(RoundsPerGame)
	g, _ := New(rs)
	rs[0].Clue = "changed"
	if g.Rounds[0].Clue != "clue" {
		t.Error("game rounds alias the caller's slice")
	}
}

func TestNewScore(t *testing.T) {
	if s := NewScore("  ", 10); s.Name != DefaultPlayerName || s.Score != 10 {
		t.Errorf("got %+v", s)
	}
	if s := NewScore(" ada ", 3); s.Name != "ada" {
		t.Errorf("got %+v", s)
	}
}

func TestLeaderboard(t *testing.T) {
	in := []Score{{"a", 10}, {"b", 30}, {"c", 10}, {"d", 20}}
	got := Leaderboard(in)
	want := []string{"b", "d", "a", "c"}
	for i, s := range got {
		if s.Name != want[i] {
			t.Fatalf("position %d: got %q, want %q (%v)", i, s.Name, want[i], got)
		}
	}
	if in[0].Name != "a" {
		t.Error("Leaderboard modified its input")
	}
}
