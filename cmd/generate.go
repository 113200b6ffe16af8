package cmd

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/robalobadob/geoguess/internal/geo"
)

var (
	genCount    int
	genStrategy string
	genSeed     int64
)

// generatedLine is one challenge as printed by generate. Unlike the API it
// includes the source article.
type generatedLine struct {
	Title    string         `json:"title"`
	Sentence string         `json:"sentence"`
	Location geo.Coordinate `json:"location"`
}

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Print challenges as JSON lines",
	RunE: func(cmd *cobra.Command, args []string) error {
		if genCount <= 0 {
			return fmt.Errorf("--count must be positive")
		}
		if !cmd.Flags().Changed("strategy") {
			genStrategy = cfg.Clue.Strategy
		}
		if !cmd.Flags().Changed("seed") {
			genSeed = time.Now().UnixNano()
		}

		gen, err := newGenerator(cfg, genStrategy)
		if err != nil {
			return err
		}
		rounds, err := gen.Rounds(cmd.Context(), genCount, genSeed)
		if err != nil {
			return err
		}

		enc := json.NewEncoder(cmd.OutOrStdout())
		for _, c := range rounds {
			if err := enc.Encode(generatedLine{Title: c.Title, Sentence: c.Clue, Location: c.Location}); err != nil {
				return err
			}
		}
		return nil
	},
}

func init() {
	generateCmd.Flags().IntVar(&genCount, "count", 5, "Number of challenges")
	generateCmd.Flags().StringVar(&genStrategy, "strategy", "", "Clue strategy (verbatim, subject, redact)")
	generateCmd.Flags().Int64Var(&genSeed, "seed", 0, "Sampling seed (default: current time)")
	rootCmd.AddCommand(generateCmd)
}
