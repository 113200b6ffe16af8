// internal/geo/candidates.go
//
// Loading of the candidate location set.
//
// Load order:
//   1. If path is empty, decode the embedded default set (assets.Candidates).
//   2. Otherwise read the JSON file at path.
//   3. If the file is missing, log a warning and return an empty set; the
//      sampler then degrades to the fixed Fallback coordinate.
//
// Entries outside the valid lat/lng ranges are dropped.

package geo

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/rs/zerolog/log"

	"github.com/robalobadob/geoguess/assets"
)

// LoadCandidates returns the candidate set for path (see file header).
// Only malformed files are reported as errors.
func LoadCandidates(path string) ([]Coordinate, error) {
	if path == "" {
		return DecodeCandidates(assets.Candidates)
	}
	b, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		log.Warn().Str("path", path).Msg("candidate file missing; using fallback location")
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read candidates %s: %w", path, err)
	}
	cs, err := DecodeCandidates(b)
	if err != nil {
		return nil, fmt.Errorf("decode candidates %s: %w", path, err)
	}
	return cs, nil
}

// DecodeCandidates parses a JSON array of {"lat","lng"} objects.
func DecodeCandidates(b []byte) ([]Coordinate, error) {
	var raw []Coordinate
	if err := json.Unmarshal(b, &raw); err != nil {
		return nil, err
	}
	out := make([]Coordinate, 0, len(raw))
	for _, c := range raw {
		if !c.Valid() {
			log.Debug().Float64("lat", c.Lat).Float64("lng", c.Lng).Msg("dropping out-of-range candidate")
			continue
		}
		out = append(out, c)
	}
	return out, nil
}
