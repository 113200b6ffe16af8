// internal/challenge/generator.go
//
// Challenge generation: sample a land coordinate, resolve the nearest
// article, fetch its first sentence, derive a clue, validate, repeat.
//
// Every attempt either yields a Challenge or a rejection reason. Rejections
// are never repaired in place; the next attempt starts from a new location.
// The loop is bounded by MaxAttempts (0 = unbounded).

package challenge

import (
	"context"
	"errors"
	"fmt"
	"math/rand"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/robalobadob/geoguess/internal/clue"
	"github.com/robalobadob/geoguess/internal/game"
	"github.com/robalobadob/geoguess/internal/geo"
	"github.com/robalobadob/geoguess/internal/wiki"
)

// DefaultMaxAttempts bounds Next when no budget is configured.
const DefaultMaxAttempts = 50

// Per-attempt rejection reasons.
var (
	ErrNoArticle = errors.New("no article near location")
	ErrNoSummary = errors.New("no summary for article")
	// ErrExhausted is returned once the attempt budget is spent.
	ErrExhausted = errors.New("could not generate challenge")
)

// Resolver finds the article nearest to a coordinate.
type Resolver interface {
	NearestTitle(ctx context.Context, at geo.Coordinate) (string, bool)
}

// Fetcher returns the first sentence of an article, or
// wiki.SummaryUnavailable.
type Fetcher interface {
	FirstSentence(ctx context.Context, title string) string
}

// Generator wires the pipeline stages together.
type Generator struct {
	Sampler  geo.Sampler
	Resolver Resolver
	Fetcher  Fetcher
	Strategy clue.Strategy

	// MaxAttempts caps attempts per challenge; 0 means no cap.
	MaxAttempts int
	// Workers > 1 generates the rounds of a set in parallel.
	Workers int
}

// Next runs attempts until one produces a valid challenge, the budget is
// exhausted, or ctx is done.
func (g *Generator) Next(ctx context.Context, rng *rand.Rand) (game.Challenge, error) {
	var last error
	for attempt := 1; g.MaxAttempts <= 0 || attempt <= g.MaxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return game.Challenge{}, err
		}
		c, err := g.attempt(ctx, rng)
		if err == nil {
			log.Debug().Int("attempt", attempt).Str("title", c.Title).
				Float64("lat", c.Location.Lat).Float64("lng", c.Location.Lng).Msg("challenge ready")
			return c, nil
		}
		last = err
		log.Debug().Int("attempt", attempt).Str("reason", err.Error()).Msg("challenge rejected")
	}
	return game.Challenge{}, fmt.Errorf("%w after %d attempts: %w", ErrExhausted, g.MaxAttempts, last)
}

// attempt is one pass of the pipeline.
func (g *Generator) attempt(ctx context.Context, rng *rand.Rand) (game.Challenge, error) {
	at := g.Sampler.Sample(rng)

	title, ok := g.Resolver.NearestTitle(ctx, at)
	if !ok {
		return game.Challenge{}, ErrNoArticle
	}

	summary := g.Fetcher.FirstSentence(ctx, title)
	if summary == wiki.SummaryUnavailable {
		return game.Challenge{}, fmt.Errorf("%w: %s", ErrNoSummary, title)
	}
	if err := clue.Validate(summary); err != nil {
		return game.Challenge{}, fmt.Errorf("summary of %s: %w", title, err)
	}

	text := g.Strategy.Derive(summary, title)
	if err := clue.Validate(text); err != nil {
		return game.Challenge{}, fmt.Errorf("clue for %s: %w", title, err)
	}
	return game.Challenge{Clue: text, Location: at, Title: title}, nil
}

// Rounds builds n challenges. Each round draws from its own generator seeded
// from seed, so the sampled locations do not depend on scheduling. Any
// failing round fails the whole set.
func (g *Generator) Rounds(ctx context.Context, n int, seed int64) ([]game.Challenge, error) {
	src := rand.New(rand.NewSource(seed))
	seeds := make([]int64, n)
	for i := range seeds {
		seeds[i] = src.Int63()
	}
	out := make([]game.Challenge, n)

	if g.Workers <= 1 {
		for i := range out {
			c, err := g.Next(ctx, rand.New(rand.NewSource(seeds[i])))
			if err != nil {
				return nil, fmt.Errorf("round %d: %w", i+1, err)
			}
			out[i] = c
		}
		return out, nil
	}

	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(g.Workers)
	for i := range out {
		i := i
		eg.Go(func() error {
			c, err := g.Next(ctx, rand.New(rand.NewSource(seeds[i])))
			if err != nil {
				return fmt.Errorf("round %d: %w", i+1, err)
			}
			out[i] = c
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
