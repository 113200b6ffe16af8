package clue

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

const (
	// Placeholder stands in for the article title.
	Placeholder = "This location"
	// Marker replaces redacted proper nouns.
	Marker = "[...]"
)

// placeholderToken keeps the placeholder intact through the capitalization
// pass; it contains no letters so it is never redacted.
const placeholderToken = "\x00"

// wordRe splits on any whitespace run so newlines and tabs separate words too.
var wordRe = regexp.MustCompile(`\S+`)

// Redact removes the title and then every capitalized word after the first.
type Redact struct{}

func (Redact) Name() string { return NameRedact }

// Derive is idempotent: running it on its own output with the same title
// returns the output unchanged.
func (Redact) Derive(summary, title string) string {
	text := strings.ReplaceAll(summary, Placeholder, placeholderToken)
	for _, name := range titleForms(title) {
		re := regexp.MustCompile(`(?i)` + regexp.QuoteMeta(name))
		text = re.ReplaceAllLiteralString(text, placeholderToken)
	}

	i := 0
	text = wordRe.ReplaceAllStringFunc(text, func(w string) string {
		i++
		if i == 1 {
			return w
		}
		return redactWord(w)
	})
	return strings.ReplaceAll(text, placeholderToken, Placeholder)
}

// titleForms returns the full title and, for titles like "Paris, Texas",
// the part before the first comma. Longer forms come first.
func titleForms(title string) []string {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil
	}
	forms := []string{title}
	if i := strings.Index(title, ","); i > 0 {
		if head := strings.TrimSpace(title[:i]); head != "" {
			forms = append(forms, head)
		}
	}
	return forms
}

// redactWord replaces w with Marker when it is longer than one character and
// its first rune after any leading punctuation is an uppercase letter. Words
// led by a digit, like "3M", are kept. Leading and trailing punctuation
// survive.
func redactWord(w string) string {
	if utf8.RuneCountInString(w) <= 1 {
		return w
	}
	start := strings.IndexFunc(w, func(r rune) bool { return !unicode.IsPunct(r) })
	if start < 0 {
		return w
	}
	first, _ := utf8.DecodeRuneInString(w[start:])
	if !unicode.IsUpper(first) {
		return w
	}
	end := strings.LastIndexFunc(w, func(r rune) bool { return unicode.IsLetter(r) || unicode.IsDigit(r) })
	_, size := utf8.DecodeRuneInString(w[end:])
	return w[:start] + Marker + w[end+size:]
}
