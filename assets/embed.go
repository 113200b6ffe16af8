// Package assets holds data files compiled into the binary so the server can
// run without any external files configured.
package assets

import (
	_ "embed"
)

// Candidates is the default candidate location set: a JSON array of
// {"lat","lng"} objects, all on land.
//
//go:embed candidates.json
var Candidates []byte
