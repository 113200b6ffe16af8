// Package clue turns an article's first sentence into the text shown to
// players. Strategies are interchangeable and selected by name.
package clue

import (
	"errors"
	"fmt"
	"sort"
)

// Strategy derives a clue from a summary sentence and its article title.
type Strategy interface {
	Name() string
	Derive(summary, title string) string
}

// Strategy names accepted by New.
const (
	NameVerbatim = "verbatim"
	NameSubject  = "subject"
	NameRedact   = "redact"
)

// DefaultStrategy is used when no name is configured.
const DefaultStrategy = NameRedact

// ErrUnknownStrategy is returned by New for unregistered names.
var ErrUnknownStrategy = errors.New("unknown clue strategy")

// Options carries strategy tuning. Zero values select defaults.
type Options struct {
	// Verbs replaces the subject strategy's verb vocabulary.
	Verbs []string
	// MinSubjectLen is the shortest subject clause kept before falling back
	// to the title.
	MinSubjectLen int
}

type factory func(Options) Strategy

var registry = map[string]factory{
	NameVerbatim: func(Options) Strategy { return Verbatim{} },
	NameSubject:  func(o Options) Strategy { return NewSubject(o.Verbs, o.MinSubjectLen) },
	NameRedact:   func(Options) Strategy { return Redact{} },
}

// New returns the strategy registered under name. An empty name selects
// DefaultStrategy.
func New(name string, opts Options) (Strategy, error) {
	if name == "" {
		name = DefaultStrategy
	}
	f, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q (have %v)", ErrUnknownStrategy, name, Names())
	}
	return f(opts), nil
}

// Names lists the registered strategies in sorted order.
func Names() []string {
	out := make([]string, 0, len(registry))
	for k := range registry {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Verbatim shows the summary unchanged.
type Verbatim struct{}

func (Verbatim) Name() string                    { return NameVerbatim }
func (Verbatim) Derive(summary, _ string) string { return summary }
