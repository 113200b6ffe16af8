package cmd

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/robalobadob/geoguess/internal/httpserver"
	"github.com/robalobadob/geoguess/internal/store"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the game API",
	RunE: func(cmd *cobra.Command, args []string) error {
		if !cmd.Flags().Changed("port") {
			servePort = cfg.Server.Port
		}

		gen, err := newGenerator(cfg, cfg.Clue.Strategy)
		if err != nil {
			return err
		}
		st, err := store.Open(cfg.Store.Driver, cfg.Store.DSN)
		if err != nil {
			return err
		}
		defer st.Close()

		srv := httpserver.New(st, gen, httpserver.Options{
			RequestTimeout: cfg.Server.RequestTimeout.Duration,
			DailySalt:      cfg.Daily.Salt,
		})
		log.Info().Int("port", servePort).Str("strategy", cfg.Clue.Strategy).Str("store", cfg.Store.Driver).Msg("starting geoguess")
		return srv.Start(cmd.Context(), fmt.Sprintf(":%d", servePort))
	},
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 5175, "Port to listen on")
	rootCmd.AddCommand(serveCmd)
}
