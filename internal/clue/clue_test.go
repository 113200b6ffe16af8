package clue

import (
	"errors"
	"strings"
	"testing"
)

const laSummary = "Los Angeles is the second-most populous city in the United States."

func TestRedactLosAngeles(t *testing.T) {
	got := Redact{}.Derive(laSummary, "Los Angeles")
	want := "This location is the second-most populous city in the [...] [...]."
	if got != want {
		t.Errorf("got %q\nwant %q", got, want)
	}
}

func TestRedactRemovesTitle(t *testing.T) {
	cases := []struct{ summary, title string }{
		{laSummary, "Los Angeles"},
		{"The city of springfield is in Illinois.", "Springfield"},
		{"Paris is a city in Lamar County, home of PARIS junior college.", "Paris, Texas"},
		{"Mount Fuji (Japanese: 富士山) is the tallest mountain in Japan.", "Mount Fuji"},
	}
	for _, tc := range cases {
		got := Redact{}.Derive(tc.summary, tc.title)
		for _, form := range titleForms(tc.title) {
			if strings.Contains(strings.ToLower(got), strings.ToLower(form)) {
				t.Errorf("Derive(%q, %q) = %q still contains %q", tc.summary, tc.title, got, form)
			}
		}
	}
}

func TestRedactCommaTitle(t *testing.T) {
	got := Redact{}.Derive("Paris is a city in Lamar County, Texas.", "Paris, Texas")
	want := "This location is a city in [...] [...], [...]."
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestRedactKeepsFirstWordAndShortWords(t *testing.T) {
	got := Redact{}.Derive("Kyoto was once the capital of Japan, says A guide.", "Nara")
	want := "Kyoto was once the capital of [...], says A guide."
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestRedactPunctuation(t *testing.T) {
	got := Redact{}.Derive("It lies near (Spanish: Lago) the U.S. border.", "Nowhere")
	want := "It lies near ([...]: [...]) the [...]. border."
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestRedactAnyWhitespace(t *testing.T) {
	got := Redact{}.Derive("Sonoma is a town in the\nUnited States near\tNapa.", "Sonoma")
	want := "This location is a town in the\n[...] [...] near\t[...]."
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestRedactLeadingDigitKept(t *testing.T) {
	got := Redact{}.Derive("Maplewood hosts the 3M campus and \"Lake Phalen\".", "Nowhere")
	want := "Maplewood hosts the 3M campus and \"[...] [...]\"."
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestRedactIdempotent(t *testing.T) {
	cases := []struct{ summary, title string }{
		{laSummary, "Los Angeles"},
		{"Paris is a city in Lamar County, Texas.", "Paris, Texas"},
		{"The river flows past Los Angeles and Long Beach.", "Los Angeles"},
		{"Sonoma is a town in the\nUnited States near\tNapa.", "Sonoma"},
	}
	for _, tc := range cases {
		once := Redact{}.Derive(tc.summary, tc.title)
		twice := Redact{}.Derive(once, tc.title)
		if once != twice {
			t.Errorf("not idempotent:\n once  %q\n twice %q", once, twice)
		}
	}
}

func TestSubjectSpringfield(t *testing.T) {
	s := NewSubject(nil, 0)
	if got := s.Derive("Springfield is a city in Illinois.", "Springfield"); got != "Springfield" {
		t.Errorf("got %q", got)
	}
}

func TestSubjectClauses(t *testing.T) {
	s := NewSubject(nil, 0)
	cases := []struct{ summary, title, want string }{
		{"The Golden Gate Bridge, is a suspension bridge.", "Golden Gate Bridge", "The Golden Gate Bridge"},
		{"Lake Tahoe IS a freshwater lake.", "Lake Tahoe", "Lake Tahoe"},
		{"Fort Ross was established in 1812 by Russians.", "Fort Ross", "Fort Ross"},
		{"This island serves as a bird sanctuary.", "Farallon Islands", "This island"},
		// "Thistle" must not match "is" mid-word.
		{"Thistle Hill was built in 1904.", "Thistle Hill", "Thistle Hill"},
		// No verb at all.
		{"A small hamlet near the coast.", "Hamlet (Cornwall)", "Hamlet"},
		// Clause too short.
		{"It is a village.", "Eastbury (Berkshire)", "Eastbury"},
		// Clause is just "the".
		{"The is a river.", "The River", "The River"},
	}
	for _, tc := range cases {
		if got := s.Derive(tc.summary, tc.title); got != tc.want {
			t.Errorf("Derive(%q) = %q, want %q", tc.summary, got, tc.want)
		}
	}
}

func TestSubjectCustomVocabulary(t *testing.T) {
	s := NewSubject([]string{"guards"}, 2)
	if got := s.Derive("Castle Rock guards the bay.", "Castle Rock (Washington)"); got != "Castle Rock" {
		t.Errorf("got %q", got)
	}
	// Default vocabulary is replaced, not extended.
	if got := s.Derive("Castle Rock is a rock.", "Castle Rock (Washington)"); got != "Castle Rock" {
		t.Errorf("fallback got %q", got)
	}
	s = NewSubject([]string{"is"}, 10)
	if got := s.Derive("Ely is a city.", "Ely, Cambridgeshire"); got != "Ely, Cambridgeshire" {
		t.Errorf("min length fallback got %q", got)
	}
}

func TestSubjectShortTitleFallbackValidates(t *testing.T) {
	s := NewSubject(nil, 0)
	got := s.Derive("Ur was a Sumerian city-state.", "Ur")
	if got != "Ur" {
		t.Fatalf("got %q", got)
	}
	if err := Validate(got); err != nil {
		t.Errorf("Validate(%q) = %v", got, err)
	}

	s = NewSubject(nil, 2)
	got = s.Derive("Ai is an archaeological site.", "Ai (Canaan)")
	if got != "Ai" {
		t.Fatalf("min length 2: got %q", got)
	}
	if err := Validate(got); err != nil {
		t.Errorf("Validate(%q) = %v", got, err)
	}
}

func TestVerbatim(t *testing.T) {
	if got := (Verbatim{}).Derive(laSummary, "Los Angeles"); got != laSummary {
		t.Errorf("got %q", got)
	}
}

func TestNew(t *testing.T) {
	for _, name := range []string{"", NameVerbatim, NameSubject, NameRedact} {
		s, err := New(name, Options{})
		if err != nil {
			t.Fatalf("New(%q): %v", name, err)
		}
		want := name
		if want == "" {
			want = DefaultStrategy
		}
		if s.Name() != want {
			t.Errorf("New(%q).Name() = %q", name, s.Name())
		}
	}
	if _, err := New("haiku", Options{}); !errors.Is(err, ErrUnknownStrategy) {
		t.Errorf("expected ErrUnknownStrategy, got %v", err)
	}
}

func TestValidate(t *testing.T) {
	cases := []struct {
		text string
		want error
	}{
		{"Springfield may refer to several places.", ErrDisambiguation},
		{"This is a list of lakes in Finland.", ErrListPage},
		{"[...] [...].", ErrTooShort},
		{"This location [...].", ErrTooShort},
		{"", ErrTooShort},
		{" .\n", ErrTooShort},
		{"Ur", nil},
		{"Ur.", nil},
		{laSummary, nil},
		{"This location is the second-most populous city in the [...] [...].", nil},
	}
	for _, tc := range cases {
		if err := Validate(tc.text); !errors.Is(err, tc.want) {
			t.Errorf("Validate(%q) = %v, want %v", tc.text, err, tc.want)
		}
	}
}

func TestValidateRejectsMarkersForEveryStrategy(t *testing.T) {
	for _, name := range Names() {
		s, _ := New(name, Options{})
		for _, summary := range []string{
			"Springfield may refer to many towns.",
			"This is a list of lakes in Finland.",
		} {
			clue := s.Derive(summary, "Nowhere In Particular")
			if name == NameSubject {
				// Subject clauses drop the marker phrase; the summary itself is
				// what gets validated before deriving.
				clue = summary
			}
			if Validate(clue) == nil {
				t.Errorf("%s: %q accepted", name, clue)
			}
		}
	}
}
