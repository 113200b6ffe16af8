package challenge

import (
	"context"
	"errors"
	"math/rand"
	"sync/atomic"
	"testing"

	"github.com/robalobadob/geoguess/internal/clue"
	"github.com/robalobadob/geoguess/internal/game"
	"github.com/robalobadob/geoguess/internal/geo"
	"github.com/robalobadob/geoguess/internal/wiki"
)

type resolverFunc func(ctx context.Context, at geo.Coordinate) (string, bool)

func (f resolverFunc) NearestTitle(ctx context.Context, at geo.Coordinate) (string, bool) {
	return f(ctx, at)
}

type fetcherFunc func(ctx context.Context, title string) string

func (f fetcherFunc) FirstSentence(ctx context.Context, title string) string { return f(ctx, title) }

var la = geo.Coordinate{Lat: 34.0522, Lng: -118.2437}

const laSummary = "Los Angeles is the second-most populous city in the United States."

func laGenerator(t *testing.T, name string) *Generator {
	t.Helper()
	s, err := clue.New(name, clue.Options{})
	if err != nil {
		t.Fatal(err)
	}
	return &Generator{
		Sampler:     geo.NewCandidateSampler([]geo.Coordinate{la}),
		Resolver:    resolverFunc(func(context.Context, geo.Coordinate) (string, bool) { return "Los Angeles", true }),
		Fetcher:     fetcherFunc(func(context.Context, string) string { return laSummary }),
		Strategy:    s,
		MaxAttempts: DefaultMaxAttempts,
	}
}

func TestNextEndToEndRedaction(t *testing.T) {
	g := laGenerator(t, clue.NameRedact)
	c, err := g.Next(context.Background(), rand.New(rand.NewSource(1)))
	if err != nil {
		t.Fatalf("Next: %v", err)
	}
	want := "This location is the second-most populous city in the [...] [...]."
	if c.Clue != want {
		t.Errorf("clue %q, want %q", c.Clue, want)
	}
	if c.Location != la {
		t.Errorf("location %v, want %v", c.Location, la)
	}
	if c.Title != "Los Angeles" {
		t.Errorf("title %q", c.Title)
	}
}

func TestNextRetriesUntilValid(t *testing.T) {
	var resolves, fetches atomic.Int32
	g := laGenerator(t, clue.NameVerbatim)
	g.Resolver = resolverFunc(func(context.Context, geo.Coordinate) (string, bool) {
		if resolves.Add(1) <= 2 {
			return "", false
		}
		return "Springfield", true
	})
	g.Fetcher = fetcherFunc(func(context.Context, string) string {
		switch fetches.Add(1) {
		case 1:
			return wiki.SummaryUnavailable
		case 2:
			return "Springfield may refer to many places."
		case 3:
			return "This is a list of towns named Springfield."
		}
		return "Springfield is a city in Illinois."
	})

	c, err := g.Next(context.Background(), rand.New(rand.NewSource(1)))
	if err != nil {
		t.Fatalf("Next: %v", err)
	}
	if c.Clue != "Springfield is a city in Illinois." {
		t.Errorf("clue %q", c.Clue)
	}
	if n := resolves.Load(); n != 6 {
		t.Errorf("expected 6 resolves (2 misses + 3 rejects + 1 hit), got %d", n)
	}
}

func TestNextRejectsCollapsedClue(t *testing.T) {
	g := laGenerator(t, clue.NameRedact)
	g.MaxAttempts = 3
	g.Resolver = resolverFunc(func(context.Context, geo.Coordinate) (string, bool) { return "Nowhere", true })
	g.Fetcher = fetcherFunc(func(context.Context, string) string { return "Nowhere Town." })

	_, err := g.Next(context.Background(), rand.New(rand.NewSource(1)))
	if !errors.Is(err, ErrExhausted) || !errors.Is(err, clue.ErrTooShort) {
		t.Errorf("expected exhausted with ErrTooShort, got %v", err)
	}
}

func TestNextAcceptsShortSubjectFallback(t *testing.T) {
	var calls atomic.Int32
	g := laGenerator(t, clue.NameSubject)
	g.MaxAttempts = 1
	g.Resolver = resolverFunc(func(context.Context, geo.Coordinate) (string, bool) {
		calls.Add(1)
		return "Ur", true
	})
	g.Fetcher = fetcherFunc(func(context.Context, string) string { return "Ur was a Sumerian city-state." })

	c, err := g.Next(context.Background(), rand.New(rand.NewSource(1)))
	if err != nil {
		t.Fatalf("Next: %v", err)
	}
	if c.Clue != "Ur" || calls.Load() != 1 {
		t.Errorf("clue %q after %d attempts", c.Clue, calls.Load())
	}
}

func TestNextExhausted(t *testing.T) {
	var calls atomic.Int32
	g := laGenerator(t, clue.NameRedact)
	g.MaxAttempts = 4
	g.Resolver = resolverFunc(func(context.Context, geo.Coordinate) (string, bool) {
		calls.Add(1)
		return "", false
	})

	_, err := g.Next(context.Background(), rand.New(rand.NewSource(1)))
	if !errors.Is(err, ErrExhausted) {
		t.Fatalf("expected ErrExhausted, got %v", err)
	}
	if !errors.Is(err, ErrNoArticle) {
		t.Errorf("expected last reason ErrNoArticle in chain, got %v", err)
	}
	if n := calls.Load(); n != 4 {
		t.Errorf("expected 4 attempts, got %d", n)
	}
}

func TestNextCancelled(t *testing.T) {
	g := laGenerator(t, clue.NameRedact)
	g.MaxAttempts = 0 // unbounded; only ctx can stop it
	ctx, cancel := context.WithCancel(context.Background())
	var calls atomic.Int32
	g.Resolver = resolverFunc(func(context.Context, geo.Coordinate) (string, bool) {
		if calls.Add(1) == 10 {
			cancel()
		}
		return "", false
	})

	_, err := g.Next(ctx, rand.New(rand.NewSource(1)))
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestRoundsAlwaysFive(t *testing.T) {
	for _, workers := range []int{0, 1, 3, 8} {
		g := laGenerator(t, clue.NameRedact)
		g.Workers = workers
		var n atomic.Int32
		// Every other attempt misses, so rounds need retries internally.
		g.Resolver = resolverFunc(func(context.Context, geo.Coordinate) (string, bool) {
			if n.Add(1)%2 == 0 {
				return "", false
			}
			return "Los Angeles", true
		})
		rs, err := g.Rounds(context.Background(), game.RoundsPerGame, 99)
		if err != nil {
			t.Fatalf("workers=%d: %v", workers, err)
		}
		if len(rs) != game.RoundsPerGame {
			t.Errorf("workers=%d: got %d rounds", workers, len(rs))
		}
		for i, c := range rs {
			if c.Clue == "" {
				t.Errorf("workers=%d: round %d empty", workers, i)
			}
		}
	}
}

func TestRoundsDeterministicAcrossWorkers(t *testing.T) {
	set := []geo.Coordinate{{Lat: 1, Lng: 1}, {Lat: 2, Lng: 2}, {Lat: 3, Lng: 3}, {Lat: 4, Lng: 4}}
	run := func(workers int) []game.Challenge {
		g := laGenerator(t, clue.NameVerbatim)
		g.Sampler = geo.NewCandidateSampler(set)
		g.Workers = workers
		rs, err := g.Rounds(context.Background(), game.RoundsPerGame, 2026)
		if err != nil {
			t.Fatal(err)
		}
		return rs
	}
	seq, par := run(1), run(4)
	for i := range seq {
		if seq[i].Location != par[i].Location {
			t.Errorf("round %d: sequential %v, parallel %v", i, seq[i].Location, par[i].Location)
		}
	}
}

func TestRoundsFailureFailsSet(t *testing.T) {
	for _, workers := range []int{1, 3} {
		g := laGenerator(t, clue.NameRedact)
		g.Workers = workers
		g.MaxAttempts = 2
		g.Resolver = resolverFunc(func(context.Context, geo.Coordinate) (string, bool) { return "", false })
		if _, err := g.Rounds(context.Background(), game.RoundsPerGame, 1); !errors.Is(err, ErrExhausted) {
			t.Errorf("workers=%d: expected ErrExhausted, got %v", workers, err)
		}
	}
}
