// internal/httpserver/routes_daily.go
//
// The daily game: one shared game per UTC date whose sampled locations come
// from a salted, date-derived seed.
//
//   - GET /api/daily → {"gameId","date"}; the game is created on first request.
//
// The game is kept in the same store as regular games (id daily-YYYY-MM-DD),
// so rounds, scores and results use the regular endpoints.

package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/geoguess/internal/daily"
	"github.com/robalobadob/geoguess/internal/store"
)

// mountDaily registers the /daily route.
func (s *Server) mountDaily(r chi.Router) {
	r.Get("/daily", s.handleDaily)
}

type dailyRes struct {
	GameID string `json:"gameId"`
	Date   string `json:"date"`
}

// handleDaily returns today's game, generating it if needed.
func (s *Server) handleDaily(w http.ResponseWriter, r *http.Request) {
	now := s.now()
	id := daily.GameID(now)
	res := dailyRes{GameID: id, Date: daily.DateKey(now)}

	s.dailyMu.Lock()
	defer s.dailyMu.Unlock()

	_, err := s.store.Get(r.Context(), id)
	if err == nil {
		_ = json.NewEncoder(w).Encode(res)
		return
	}
	if !errors.Is(err, store.ErrNotFound) {
		log.Error().Err(err).Str("gameId", id).Msg("load daily game")
		writeError(w, http.StatusInternalServerError, "load_failed")
		return
	}

	if _, err := s.createGame(r.Context(), id, daily.Seed(now, s.salt)); err != nil {
		writeGenerationError(w, r, err)
		return
	}
	log.Info().Str("gameId", id).Msg("created daily game")
	_ = json.NewEncoder(w).Encode(res)
}
