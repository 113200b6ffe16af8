package clue

import (
	"errors"
	"strings"
	"unicode"
)

// Content-quality rejections. Each one means the source article is unsuitable
// and the whole challenge should be retried from a new location.
var (
	ErrDisambiguation = errors.New("disambiguation page")
	ErrListPage       = errors.New("list page")
	ErrTooShort       = errors.New("clue too short")
)

const (
	disambiguationMarker = "may refer to"
	listMarker           = "is a list of"
	minRedactedRunes     = 3
)

// Validate rejects text that came from a disambiguation or list page, blank
// text, and redacted text that has almost nothing left once the placeholder
// and redaction markers are removed. Text without a placeholder or marker is
// only held to being non-blank, so short subject clauses and titles pass.
func Validate(text string) error {
	if strings.Contains(text, disambiguationMarker) {
		return ErrDisambiguation
	}
	if strings.Contains(text, listMarker) {
		return ErrListPage
	}
	redacted := strings.Contains(text, Marker) || strings.Contains(text, Placeholder)
	rest := strings.ReplaceAll(strings.ReplaceAll(text, Marker, ""), Placeholder, "")
	n := 0
	for _, r := range rest {
		if !unicode.IsSpace(r) && !unicode.IsPunct(r) {
			n++
		}
	}
	if n == 0 || (redacted && n < minRedactedRunes) {
		return ErrTooShort
	}
	return nil
}
