// Package textfilter cleans the player and tribe names clients send before
// they reach a game.
package textfilter

import (
	"cmp"
	"regexp"
	"slices"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// MaxNameLength caps a cleaned name, in runes.
const MaxNameLength = 32

// replacements swaps words unfit for a campfire story for milder ones.
var replacements = map[string]string{
	"fuck":     "fudge",
	"shit":     "shoot",
	"damn":     "dang",
	"hell":     "heck",
	"ass":      "butt",
	"bitch":    "jerk",
	"bastard":  "jerk",
	"crap":     "crud",
	"piss":     "ticked",
	"dick":     "jerk",
	"asshole":  "jerk",
	"dumbass":  "dummy",
	"jackass":  "jerk",
	"bullshit": "baloney",
	"prick":    "jerk",
	"douche":   "jerk",
}

type rule struct {
	re   *regexp.Regexp
	with string
}

// NameFilter normalizes names. It is safe for concurrent use once built
// by New.
type NameFilter struct {
	rules []rule
}

func New() *NameFilter {
	words := make([]string, 0, len(replacements))
	for w := range replacements {
		words = append(words, w)
	}
	// Longer words first so "asshole" is not caught as "ass".
	slices.SortFunc(words, func(a, b string) int {
		if c := cmp.Compare(len(b), len(a)); c != 0 {
			return c
		}
		return strings.Compare(a, b)
	})
	f := &NameFilter{}
	for _, w := range words {
		f.rules = append(f.rules, rule{
			re:   regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(w) + `\b`),
			with: replacements[w],
		})
	}
	return f
}

// Clean drops control characters, collapses runs of whitespace, swaps
// unfit words, title-cases the result and caps it at MaxNameLength runes.
// It returns "" for a name with nothing printable, so callers fall back to
// their default.
func (f *NameFilter) Clean(name string) string {
	name = strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return ' '
		}
		return r
	}, name)
	name = strings.Join(strings.Fields(name), " ")
	if name == "" {
		return ""
	}
	for _, r := range f.rules {
		name = r.re.ReplaceAllString(name, r.with)
	}
	// Casers carry state, so each call gets its own.
	name = cases.Title(language.English).String(name)
	if rs := []rune(name); len(rs) > MaxNameLength {
		name = strings.TrimSpace(string(rs[:MaxNameLength]))
	}
	return name
}

// Contains reports whether name holds any word Clean would swap.
func (f *NameFilter) Contains(name string) bool {
	for _, r := range f.rules {
		if r.re.MatchString(name) {
			return true
		}
	}
	return false
}
