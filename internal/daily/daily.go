// Package daily derives the per-day game: a date key used as the game id
// suffix and a keyed seed that fixes the day's sampled locations.
package daily

import (
	"encoding/binary"
	"time"

	"golang.org/x/crypto/blake2b"
)

// IDPrefix marks daily game ids.
const IDPrefix = "daily-"

// DateKey returns YYYY-MM-DD in UTC.
func DateKey(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

// GameID returns the store id of the daily game for t.
func GameID(t time.Time) string {
	return IDPrefix + DateKey(t)
}

// Seed returns a deterministic seed for the date of t using keyed
// BLAKE2b-256(salt, YYYY-MM-DD). Without the salt the day's locations
// cannot be predicted.
func Seed(t time.Time, salt string) int64 {
	key := []byte(salt)
	if len(key) > blake2b.Size {
		sum := blake2b.Sum256(key)
		key = sum[:]
	}
	h, err := blake2b.New256(key)
	if err != nil {
		// Only reachable with an oversized key, which is handled above.
		panic(err)
	}
	h.Write([]byte(DateKey(t)))
	sum := h.Sum(nil)
	// first 8 bytes; clear the sign bit so the seed is non-negative
	return int64(binary.BigEndian.Uint64(sum[:8]) &^ (1 << 63))
}
