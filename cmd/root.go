package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/robalobadob/geoguess/internal/challenge"
	"github.com/robalobadob/geoguess/internal/clue"
	"github.com/robalobadob/geoguess/internal/config"
	"github.com/robalobadob/geoguess/internal/geo"
	"github.com/robalobadob/geoguess/internal/wiki"
)

var (
	configPath string
	pretty     bool
	cfg        *config.Config
)

var rootCmd = &cobra.Command{
	Use:           "geoguess",
	Short:         "Generate and serve geography-guessing challenges from encyclopedia articles",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if pretty {
			log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
		}

		var err error
		cfg, err = config.Load(configPath)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "geoguess.toml", "Path to configuration file")
	rootCmd.PersistentFlags().BoolVar(&pretty, "pretty", false, "Human-readable console logs")
}

// Execute runs the root command with ctx.
func Execute(ctx context.Context) error {
	err := rootCmd.ExecuteContext(ctx)
	if err != nil {
		log.Error().Err(err).Msg("geoguess failed")
	}
	return err
}

// newSampler picks the land source: a GeoJSON land file when configured,
// otherwise the candidate set (embedded when no file is named).
func newSampler(c *config.Config) (geo.Sampler, error) {
	if c.Sampler.Land != "" {
		land, err := geo.LoadLand(c.Sampler.Land)
		if err != nil {
			return nil, fmt.Errorf("loading land polygons: %w", err)
		}
		log.Info().Str("path", c.Sampler.Land).Int("polygons", len(land)).Msg("polygon sampler")
		return geo.NewPolygonSampler(land, c.Sampler.MaxDraws), nil
	}

	set, err := geo.LoadCandidates(c.Sampler.Candidates)
	if err != nil {
		return nil, fmt.Errorf("loading candidates: %w", err)
	}
	log.Info().Int("candidates", len(set)).Msg("candidate sampler")
	return geo.NewCandidateSampler(set), nil
}

// newGenerator wires the sampler, the encyclopedia client and the named clue
// strategy into a Generator.
func newGenerator(c *config.Config, strategy string) (*challenge.Generator, error) {
	sampler, err := newSampler(c)
	if err != nil {
		return nil, err
	}
	st, err := clue.New(strategy, c.ClueOptions())
	if err != nil {
		return nil, err
	}
	client := wiki.New(c.WikiOptions())
	return &challenge.Generator{
		Sampler:     sampler,
		Resolver:    client,
		Fetcher:     client,
		Strategy:    st,
		MaxAttempts: c.Challenge.MaxAttempts,
		Workers:     c.Challenge.Workers,
	}, nil
}
