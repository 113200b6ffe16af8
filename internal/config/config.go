package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/geoguess/internal/challenge"
	"github.com/robalobadob/geoguess/internal/clue"
	"github.com/robalobadob/geoguess/internal/geo"
	"github.com/robalobadob/geoguess/internal/store"
	"github.com/robalobadob/geoguess/internal/wiki"
)

// Config holds all configuration for the server and the generator.
type Config struct {
	Server    ServerConfig    `toml:"server"`
	Wiki      WikiConfig      `toml:"wiki"`
	Sampler   SamplerConfig   `toml:"sampler"`
	Clue      ClueConfig      `toml:"clue"`
	Challenge ChallengeConfig `toml:"challenge"`
	Store     StoreConfig     `toml:"store"`
	Daily     DailyConfig     `toml:"daily"`
}

type ServerConfig struct {
	Port           int      `toml:"port"`
	RequestTimeout Duration `toml:"request_timeout"`
}

type WikiConfig struct {
	Endpoint  string   `toml:"endpoint"`
	Radius    int      `toml:"radius"`
	Timeout   Duration `toml:"timeout"`
	RateLimit float64  `toml:"rate_limit"`
	UserAgent string   `toml:"user_agent"`
	Plaintext bool     `toml:"plaintext"`
}

// SamplerConfig selects the land source. Land (GeoJSON) wins over
// Candidates when both are set; an empty Candidates uses the embedded set.
type SamplerConfig struct {
	Candidates string `toml:"candidates"`
	Land       string `toml:"land"`
	MaxDraws   int    `toml:"max_draws"`
}

type ClueConfig struct {
	Strategy      string   `toml:"strategy"`
	Verbs         []string `toml:"verbs"`
	MinSubjectLen int      `toml:"min_subject_len"`
}

type ChallengeConfig struct {
	MaxAttempts int `toml:"max_attempts"`
	Workers     int `toml:"workers"`
}

type StoreConfig struct {
	Driver string `toml:"driver"`
	DSN    string `toml:"dsn"`
}

type DailyConfig struct {
	Salt string `toml:"salt"`
}

// Duration decodes TOML strings like "10s".
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(b []byte) error {
	v, err := time.ParseDuration(string(b))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// Defaults returns a Config populated with built-in default values.
func Defaults() *Config {
	return &Config{
		Server: ServerConfig{Port: 5175, RequestTimeout: Duration{60 * time.Second}},
		Wiki: WikiConfig{
			Endpoint:  wiki.DefaultEndpoint,
			Radius:    wiki.DefaultRadius,
			Timeout:   Duration{wiki.DefaultTimeout},
			RateLimit: 5,
			UserAgent: wiki.DefaultUserAgent,
			Plaintext: true,
		},
		Sampler:   SamplerConfig{MaxDraws: geo.DefaultMaxDraws},
		Clue:      ClueConfig{Strategy: clue.DefaultStrategy, MinSubjectLen: clue.DefaultMinSubjectLen},
		Challenge: ChallengeConfig{MaxAttempts: challenge.DefaultMaxAttempts, Workers: 1},
		Store:     StoreConfig{Driver: store.DriverMemory},
		Daily:     DailyConfig{Salt: "local_dev_salt"},
	}
}

// Load reads a TOML config file, then applies environment overrides. If the
// file does not exist, built-in defaults are used.
func Load(path string) (*Config, error) {
	cfg := Defaults()

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			md, err := toml.DecodeFile(path, cfg)
			if err != nil {
				return nil, fmt.Errorf("decoding %s: %w", path, err)
			}
			for _, key := range md.Undecoded() {
				log.Warn().Str("path", path).Str("key", key.String()).Msg("unknown config key ignored")
			}
		} else if !os.IsNotExist(err) {
			return nil, err
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyEnv overrides fields from environment variables (after .env loading).
func (c *Config) applyEnv() error {
	if v := os.Getenv("PORT"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("PORT: %w", err)
		}
		c.Server.Port = n
	}
	if v := os.Getenv("WIKI_ENDPOINT"); v != "" {
		c.Wiki.Endpoint = v
	}
	if v := os.Getenv("GEOGUESS_STRATEGY"); v != "" {
		c.Clue.Strategy = v
	}
	if v := os.Getenv("GEOGUESS_VERBS"); v != "" {
		c.Clue.Verbs = splitList(v)
	}
	if v := os.Getenv("GEOGUESS_CANDIDATES"); v != "" {
		c.Sampler.Candidates = v
	}
	if v := os.Getenv("GEOGUESS_LAND"); v != "" {
		c.Sampler.Land = v
	}
	if v := os.Getenv("GEOGUESS_STORE"); v != "" {
		c.Store.Driver = v
	}
	if v := os.Getenv("GEOGUESS_STORE_DSN"); v != "" {
		c.Store.DSN = v
	}
	if v := os.Getenv("GEOGUESS_MAX_ATTEMPTS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("GEOGUESS_MAX_ATTEMPTS: %w", err)
		}
		c.Challenge.MaxAttempts = n
	}
	if v := os.Getenv("DAILY_SALT"); v != "" {
		c.Daily.Salt = v
	}
	return nil
}

// Validate checks values that would otherwise fail deep inside a request.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port %d out of range", c.Server.Port)
	}
	if _, err := clue.New(c.Clue.Strategy, c.ClueOptions()); err != nil {
		return fmt.Errorf("clue.strategy: %w", err)
	}
	if c.Challenge.MaxAttempts < 0 {
		return fmt.Errorf("challenge.max_attempts must be >= 0")
	}
	switch c.Store.Driver {
	case "", store.DriverMemory, store.DriverSQLite:
	default:
		return fmt.Errorf("store.driver %q unknown", c.Store.Driver)
	}
	return nil
}

// ClueOptions converts the clue section for clue.New.
func (c *Config) ClueOptions() clue.Options {
	return clue.Options{Verbs: c.Clue.Verbs, MinSubjectLen: c.Clue.MinSubjectLen}
}

// WikiOptions converts the wiki section for wiki.New.
func (c *Config) WikiOptions() wiki.Options {
	return wiki.Options{
		Endpoint:  c.Wiki.Endpoint,
		Radius:    c.Wiki.Radius,
		Timeout:   c.Wiki.Timeout.Duration,
		RateLimit: c.Wiki.RateLimit,
		UserAgent: c.Wiki.UserAgent,
		HTML:      !c.Wiki.Plaintext,
	}
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
