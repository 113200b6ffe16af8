// internal/geo/polygon.go
//
// Geometry-based sampler: uniform draws over the globe, kept only when a
// land polygon contains them.

package geo

import (
	"errors"
	"fmt"
	"math/rand"
	"os"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/paulmach/orb/planar"
	"github.com/rs/zerolog/log"
)

// DefaultMaxDraws bounds the rejection loop of PolygonSampler.
const DefaultMaxDraws = 10000

// PolygonSampler draws points until one falls on land.
type PolygonSampler struct {
	land     orb.MultiPolygon
	bound    orb.Bound
	maxDraws int
}

// NewPolygonSampler builds a sampler over land. maxDraws <= 0 selects
// DefaultMaxDraws.
func NewPolygonSampler(land orb.MultiPolygon, maxDraws int) *PolygonSampler {
	if maxDraws <= 0 {
		maxDraws = DefaultMaxDraws
	}
	s := &PolygonSampler{land: land, maxDraws: maxDraws}
	if len(land) > 0 {
		s.bound = land.Bound()
	}
	return s
}

// Sample returns a contained point, or Fallback when there is no geometry or
// every draw missed.
func (s *PolygonSampler) Sample(rng *rand.Rand) Coordinate {
	if len(s.land) == 0 {
		return Fallback
	}
	for i := 0; i < s.maxDraws; i++ {
		lng := rng.Float64()*360 - 180
		lat := rng.Float64()*180 - 90
		if s.Contains(Coordinate{Lat: lat, Lng: lng}) {
			return Coordinate{Lat: lat, Lng: lng}
		}
	}
	log.Warn().Int("draws", s.maxDraws).Msg("no land point found; using fallback location")
	return Fallback
}

// Contains reports whether c lies inside the land geometry.
func (s *PolygonSampler) Contains(c Coordinate) bool {
	pt := orb.Point{c.Lng, c.Lat}
	if !s.bound.Contains(pt) {
		return false
	}
	return planar.MultiPolygonContains(s.land, pt)
}

// LoadLand reads a GeoJSON FeatureCollection and unions its Polygon and
// MultiPolygon features. A missing file yields an empty geometry and a
// warning, matching the degraded mode of LoadCandidates.
func LoadLand(path string) (orb.MultiPolygon, error) {
	b, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		log.Warn().Str("path", path).Msg("land geometry missing; using fallback location")
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read land %s: %w", path, err)
	}
	return DecodeLand(b)
}

// DecodeLand parses GeoJSON land features into one MultiPolygon.
func DecodeLand(b []byte) (orb.MultiPolygon, error) {
	fc, err := geojson.UnmarshalFeatureCollection(b)
	if err != nil {
		return nil, fmt.Errorf("decode land geojson: %w", err)
	}
	var mp orb.MultiPolygon
	for _, f := range fc.Features {
		switch g := f.Geometry.(type) {
		case orb.Polygon:
			mp = append(mp, g)
		case orb.MultiPolygon:
			mp = append(mp, g...)
		}
	}
	return mp, nil
}
