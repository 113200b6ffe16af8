// internal/store/sqlite.go
//
// SQLite-backed Store.
// Responsibilities:
//   - Opening SQLite with a busy timeout (shared-cache in-memory by default).
//   - Creating the games/scores schema.
//   - Round sets are stored as one JSON column; scores as rows.
//
// The default DSN keeps the database in memory, so this backend is no more
// durable than the map store. Pointing it at a file is possible but games
// are still not reloaded into any other component on restart.

package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/geoguess/internal/game"
)

// DefaultDSN is a named shared-cache in-memory database.
const DefaultDSN = "file:geoguess?mode=memory&cache=shared"

type sqliteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens dsn (DefaultDSN when empty) and creates the schema.
func NewSQLiteStore(dsn string) (Store, error) {
	if dsn == "" {
		dsn = DefaultDSN
	}
	db, err := openDB(dsn)
	if err != nil {
		return nil, err
	}
	if err := migrate(db); err != nil {
		db.Close()
		return nil, err
	}
	return &sqliteStore{db: db}, nil
}

// openDB opens (and creates if missing) a SQLite database.
//
// - Ensures the parent directory exists for file paths.
// - Uses a single connection: an in-memory database lives only as long as
//   a connection holds it, and one writer avoids SQLITE_LOCKED in shared
//   cache mode.
func openDB(dsn string) (*sql.DB, error) {
	if !strings.Contains(dsn, "mode=memory") && !strings.HasPrefix(dsn, ":memory:") {
		path := strings.TrimPrefix(strings.SplitN(dsn, "?", 2)[0], "file:")
		if dir := filepath.Dir(path); dir != "." && dir != "" {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("mkdir %s: %w", dir, err)
			}
		}
	}

	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	db, err := sql.Open("sqlite3", dsn+sep+"_busy_timeout=5000&_foreign_keys=on")
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	db.SetConnMaxLifetime(0)
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}
	return db, nil
}

// migrate creates the schema. Statements are idempotent.
func migrate(db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS games (
			id         TEXT PRIMARY KEY,
			rounds     TEXT NOT NULL,
			created_at TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS scores (
			id      INTEGER PRIMARY KEY AUTOINCREMENT,
			game_id TEXT NOT NULL REFERENCES games(id) ON DELETE CASCADE,
			name    TEXT NOT NULL,
			score   INTEGER NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS scores_game ON scores(game_id)`,
	}
	for _, stmt := range stmts {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("apply schema: %w", err)
		}
	}
	log.Debug().Int("statements", len(stmts)).Msg("sqlite schema ready")
	return nil
}

// storedRound is the JSON shape of a round; unlike game.Challenge it keeps
// the article title.
type storedRound struct {
	Clue  string  `json:"clue"`
	Lat   float64 `json:"lat"`
	Lng   float64 `json:"lng"`
	Title string  `json:"title"`
}

func (s *sqliteStore) Save(ctx context.Context, g *game.Game) error {
	rs := make([]storedRound, len(g.Rounds))
	for i, c := range g.Rounds {
		rs[i] = storedRound{Clue: c.Clue, Lat: c.Location.Lat, Lng: c.Location.Lng, Title: c.Title}
	}
	b, err := json.Marshal(rs)
	if err != nil {
		return fmt.Errorf("encode rounds: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `INSERT OR REPLACE INTO games (id, rounds, created_at) VALUES (?,?,?)`,
		g.ID, string(b), g.CreatedAt.UTC().Format(time.RFC3339Nano)); err != nil {
		return fmt.Errorf("insert game: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM scores WHERE game_id=?`, g.ID); err != nil {
		return fmt.Errorf("reset scores: %w", err)
	}
	for _, sc := range g.Scores {
		if _, err := tx.ExecContext(ctx, `INSERT INTO scores (game_id, name, score) VALUES (?,?,?)`,
			g.ID, sc.Name, sc.Score); err != nil {
			return fmt.Errorf("insert score: %w", err)
		}
	}
	return tx.Commit()
}

func (s *sqliteStore) Get(ctx context.Context, id string) (*game.Game, error) {
	var raw, created string
	err := s.db.QueryRowContext(ctx, `SELECT rounds, created_at FROM games WHERE id=?`, id).Scan(&raw, &created)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query game: %w", err)
	}

	var rs []storedRound
	if err := json.Unmarshal([]byte(raw), &rs); err != nil {
		return nil, fmt.Errorf("decode rounds: %w", err)
	}
	g := &game.Game{ID: id, Rounds: make([]game.Challenge, len(rs)), Scores: []game.Score{}}
	for i, r := range rs {
		g.Rounds[i] = game.Challenge{Clue: r.Clue, Title: r.Title}
		g.Rounds[i].Location.Lat, g.Rounds[i].Location.Lng = r.Lat, r.Lng
	}
	g.CreatedAt, _ = time.Parse(time.RFC3339Nano, created)

	rows, err := s.db.QueryContext(ctx, `SELECT name, score FROM scores WHERE game_id=? ORDER BY id`, id)
	if err != nil {
		return nil, fmt.Errorf("query scores: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var sc game.Score
		if err := rows.Scan(&sc.Name, &sc.Score); err != nil {
			return nil, err
		}
		g.Scores = append(g.Scores, sc)
	}
	return g, rows.Err()
}

func (s *sqliteStore) AddScore(ctx context.Context, id string, sc game.Score) error {
	var one int
	err := s.db.QueryRowContext(ctx, `SELECT 1 FROM games WHERE id=?`, id).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("query game: %w", err)
	}
	if _, err := s.db.ExecContext(ctx, `INSERT INTO scores (game_id, name, score) VALUES (?,?,?)`,
		id, sc.Name, sc.Score); err != nil {
		return fmt.Errorf("insert score: %w", err)
	}
	return nil
}

func (s *sqliteStore) Close() error { return s.db.Close() }
