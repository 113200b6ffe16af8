package clue

import (
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"
)

// DefaultVerbs is the copular/descriptive vocabulary that ends a subject
// clause. Multi-word phrases are matched with flexible whitespace.
var DefaultVerbs = []string{
	"is", "was", "are", "were",
	"is a", "was a", "is an", "was an", "is the", "was the",
	"serves as", "served as",
	"is located in", "is located on", "was located in", "lies in", "lies on",
	"is situated in", "is situated on", "sits on",
	"was established in", "was founded in", "was founded by", "was built in",
	"is known as", "is also known as", "refers to",
	"became", "has been", "had been", "forms", "stands",
}

// DefaultMinSubjectLen is the default shortest subject clause.
const DefaultMinSubjectLen = 3

var parenSuffix = regexp.MustCompile(`\s*\([^()]*\)\s*$`)

// Subject isolates the text before the first descriptive verb, on the
// assumption that it names the place.
type Subject struct {
	verbs  *regexp.Regexp
	minLen int
}

// NewSubject compiles verbs into a single whole-word, case-insensitive
// matcher. Longer phrases win over shorter ones starting at the same offset.
// Empty verbs selects DefaultVerbs; minLen <= 0 selects DefaultMinSubjectLen.
func NewSubject(verbs []string, minLen int) *Subject {
	if len(verbs) == 0 {
		verbs = DefaultVerbs
	}
	if minLen <= 0 {
		minLen = DefaultMinSubjectLen
	}
	return &Subject{verbs: compileVerbs(verbs), minLen: minLen}
}

func compileVerbs(verbs []string) *regexp.Regexp {
	phrases := make([]string, 0, len(verbs))
	for _, v := range verbs {
		words := strings.Fields(v)
		if len(words) == 0 {
			continue
		}
		for i, w := range words {
			words[i] = regexp.QuoteMeta(w)
		}
		phrases = append(phrases, strings.Join(words, `\s+`))
	}
	// RE2 alternation is leftmost-first, so list long phrases first.
	sort.SliceStable(phrases, func(i, j int) bool { return len(phrases[i]) > len(phrases[j]) })
	if len(phrases) == 0 {
		return nil
	}
	return regexp.MustCompile(`(?i)\b(?:` + strings.Join(phrases, "|") + `)\b`)
}

func (s *Subject) Name() string { return NameSubject }

// Derive returns the subject clause, or the title without its parenthetical
// suffix when no usable clause exists.
func (s *Subject) Derive(summary, title string) string {
	if s.verbs != nil {
		if loc := s.verbs.FindStringIndex(summary); loc != nil {
			clause := strings.Trim(summary[:loc[0]], " \t\n\r,")
			if utf8.RuneCountInString(clause) >= s.minLen && !strings.EqualFold(clause, "the") {
				return clause
			}
		}
	}
	return strings.TrimSpace(parenSuffix.ReplaceAllString(title, ""))
}
