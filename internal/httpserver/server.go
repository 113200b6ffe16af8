// internal/httpserver/server.go
//
// HTTP server wiring for the geoguess backend.
// Responsibilities:
//   - Router + middleware (JSON, CORS, timeouts, panic recovery, request IDs,
//     access logging).
//   - Public endpoints: "/", "/health".
//   - Game endpoints: create a 5-round game, read its rounds, submit and list
//     scores.
//   - Daily game endpoint: mounted under /api/daily (routes_daily.go).
//
// Notes:
//   - Game creation blocks on round generation, so the request timeout must
//     cover several encyclopedia round-trips.
//   - Rounds are served without article titles.

package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"math/rand"
	"net"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/geoguess/internal/challenge"
	"github.com/robalobadob/geoguess/internal/game"
	"github.com/robalobadob/geoguess/internal/store"
)

const shutdownGrace = 10 * time.Second

// RoundMaker builds round sets; *challenge.Generator satisfies it.
type RoundMaker interface {
	Rounds(ctx context.Context, n int, seed int64) ([]game.Challenge, error)
}

// Options tunes a Server. Zero values select defaults.
type Options struct {
	RequestTimeout time.Duration
	DailySalt      string
	Now            func() time.Time
}

// Server bundles router, game store, and round generator.
type Server struct {
	r     *chi.Mux
	store store.Store
	gen   RoundMaker
	salt  string
	now   func() time.Time

	dailyMu sync.Mutex // serializes creation of the daily game
}

// New constructs a Server, installs middleware, and registers routes.
func New(st store.Store, gen RoundMaker, opts Options) *Server {
	if opts.RequestTimeout <= 0 {
		opts.RequestTimeout = 60 * time.Second
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	s := &Server{r: chi.NewRouter(), store: st, gen: gen, salt: opts.DailySalt, now: opts.Now}

	// --- middleware ---
	s.r.Use(chimw.RequestID)                   // add X-Request-ID
	s.r.Use(chimw.RealIP)                      // set RemoteAddr from X-Forwarded-For etc.
	s.r.Use(accessLog)                         // zerolog request line
	s.r.Use(chimw.Recoverer)                   // recover from panics
	s.r.Use(chimw.Timeout(opts.RequestTimeout)) // bound handler time
	s.r.Use(jsonContentType)                   // default JSON responses
	s.r.Use(corsFromEnv)                       // single-origin CORS

	// --- diagnostics ---
	s.r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"service":"geoguess","endpoints":["/health","POST /api/games","GET /api/get-game-data/{id}","POST /api/submit-score/{id}","GET /api/results/{id}","GET /api/daily"]}`))
	})
	s.r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"ok":true}`))
	})

	// Game endpoints
	s.r.Get("/create-game", s.handleNewGame)
	s.r.Route("/api", func(r chi.Router) {
		r.Post("/games", s.handleNewGame)
		r.Get("/get-game-data/{id}", s.handleGameData)
		r.Post("/submit-score/{id}", s.handleSubmitScore)
		r.Get("/results/{id}", s.handleResults)
		s.mountDaily(r)
	})

	// JSON 404 for easier debugging
	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "not_found")
	})

	return s
}

// Start listens on addr and serves until ctx is done.
func (s *Server) Start(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

// Serve serves on ln until ctx is done, then shuts down gracefully, giving
// in-flight requests shutdownGrace to finish.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	hs := &http.Server{Handler: s.r}
	errc := make(chan error, 1)
	go func() { errc <- hs.Serve(ln) }()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}
	log.Info().Msg("shutting down")
	sctx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
	defer cancel()
	if err := hs.Shutdown(sctx); err != nil {
		return err
	}
	if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Router exposes the internal router (useful for tests).
func (s *Server) Router() chi.Router { return s.r }

// ----------------------------- middleware ----------------------------------

// jsonContentType sets a default JSON Content-Type header on all responses.
func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}

// corsFromEnv allows a single browser origin (CLIENT_ORIGIN, default
// http://localhost:5173).
func corsFromEnv(next http.Handler) http.Handler {
	origin := os.Getenv("CLIENT_ORIGIN")
	if origin == "" {
		origin = "http://localhost:5173"
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Vary", "Origin")
		w.Header().Set("Access-Control-Allow-Origin", origin)
		w.Header().Set("Access-Control-Allow-Methods", "GET,POST,OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// accessLog writes one zerolog line per request.
func accessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
		t0 := time.Now()
		next.ServeHTTP(ww, r)
		log.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Dur("dur", time.Since(t0)).
			Str("reqId", chimw.GetReqID(r.Context())).
			Msg("request")
	})
}

// ------------------------------ GAME ---------------------------------------

type newGameRes struct {
	GameID string `json:"gameId"`
}

// handleNewGame generates a round set, stores the game, and returns its id.
func (s *Server) handleNewGame(w http.ResponseWriter, r *http.Request) {
	g, err := s.createGame(r.Context(), "", rand.Int63())
	if err != nil {
		writeGenerationError(w, r, err)
		return
	}
	log.Info().Str("gameId", g.ID).Msg("created game")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(newGameRes{GameID: g.ID})
}

// createGame generates rounds from seed and saves the game. An empty id
// picks a fresh one.
func (s *Server) createGame(ctx context.Context, id string, seed int64) (*game.Game, error) {
	rounds, err := s.gen.Rounds(ctx, game.RoundsPerGame, seed)
	if err != nil {
		return nil, err
	}
	if id == "" {
		id = game.NewID()
	}
	g, err := game.NewWithID(id, rounds)
	if err != nil {
		return nil, err
	}
	if err := s.store.Save(ctx, g); err != nil {
		return nil, err
	}
	return g, nil
}

// handleGameData returns the rounds of a game (without titles).
func (s *Server) handleGameData(w http.ResponseWriter, r *http.Request) {
	g, ok := s.lookup(w, r)
	if !ok {
		return
	}
	_ = json.NewEncoder(w).Encode(g.Rounds)
}

type scoreReq struct {
	Name  string `json:"name"`
	Score int    `json:"score"`
}

// handleSubmitScore appends a player's score to a game.
func (s *Server) handleSubmitScore(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var req scoreReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}
	sc := game.NewScore(req.Name, req.Score)
	if err := s.store.AddScore(r.Context(), id, sc); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Game not found")
			return
		}
		log.Error().Err(err).Str("gameId", id).Msg("add score")
		writeError(w, http.StatusInternalServerError, "save_failed")
		return
	}
	log.Info().Str("gameId", id).Str("name", sc.Name).Int("score", sc.Score).Msg("score submitted")
	_ = json.NewEncoder(w).Encode(map[string]bool{"success": true})
}

type resultsRes struct {
	GameID string       `json:"gameId"`
	Scores []game.Score `json:"scores"`
}

// handleResults returns the leaderboard, highest score first.
func (s *Server) handleResults(w http.ResponseWriter, r *http.Request) {
	g, ok := s.lookup(w, r)
	if !ok {
		return
	}
	_ = json.NewEncoder(w).Encode(resultsRes{GameID: g.ID, Scores: game.Leaderboard(g.Scores)})
}

// lookup loads the game named by the {id} URL parameter, writing the error
// response itself when it cannot.
func (s *Server) lookup(w http.ResponseWriter, r *http.Request) (*game.Game, bool) {
	id := chi.URLParam(r, "id")
	g, err := s.store.Get(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, "Game not found")
		return nil, false
	}
	if err != nil {
		log.Error().Err(err).Str("gameId", id).Msg("load game")
		writeError(w, http.StatusInternalServerError, "load_failed")
		return nil, false
	}
	return g, true
}

// ------------------------------- small util --------------------------------

// writeError writes {"error": msg} with the given status.
func writeError(w http.ResponseWriter, code int, msg string) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

// writeGenerationError maps round-generation failures to responses. When the
// request context itself is done nothing is written: the Timeout middleware
// answers 504 on a deadline, and a cancelled client is gone.
func writeGenerationError(w http.ResponseWriter, r *http.Request, err error) {
	if r.Context().Err() != nil {
		log.Warn().Err(err).Str("reqId", chimw.GetReqID(r.Context())).Msg("round generation interrupted")
		return
	}
	switch {
	case errors.Is(err, challenge.ErrExhausted):
		log.Warn().Err(err).Msg("round generation exhausted")
		writeError(w, http.StatusServiceUnavailable, "generation_failed")
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		log.Warn().Err(err).Msg("round generation interrupted")
		writeError(w, http.StatusServiceUnavailable, "generation_timeout")
	default:
		log.Error().Err(err).Msg("create game")
		writeError(w, http.StatusInternalServerError, "save_failed")
	}
}
