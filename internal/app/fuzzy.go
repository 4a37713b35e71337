package app

import (
	"strings"
	"unicode/utf8"

	"github.com/sahilm/fuzzy"

	"github.com/hverdal/tuido/internal/domain"
)

// MatchKind ranks the three match strategies. Lower values rank better.
type MatchKind int

// Match strategies in rank order.
const (
	MatchExact MatchKind = iota
	MatchSubsequence
	MatchDistance
)

// Match is the score of one query/candidate pair. Compactness applies to
// subsequence matches (higher is tighter); Distance applies to edit-distance
// matches (lower is closer).
type Match struct {
	Kind        MatchKind
	Compactness int
	Distance    int
}

// MatcherConfig bounds the edit-distance tier. Queries of at most
// ShortQueryLen runes accept ShortMaxDistance edits, longer queries accept
// LongMaxDistance. Without a bound every query would "match" something.
type MatcherConfig struct {
	ShortQueryLen    int
	ShortMaxDistance int
	LongMaxDistance  int
}

// DefaultMatcherConfig returns the documented acceptance policy: one edit
// for queries up to three runes, two edits beyond that.
func DefaultMatcherConfig() MatcherConfig {
	return MatcherConfig{
		ShortQueryLen:    3,
		ShortMaxDistance: 1,
		LongMaxDistance:  2,
	}
}

// Matcher scores queries against item text with three strategies: exact
// substring, in-order subsequence, then bounded edit distance.
type Matcher struct {
	cfg MatcherConfig
}

// NewMatcher constructs a matcher, falling back to the default acceptance
// policy for unset config fields.
func NewMatcher(cfg MatcherConfig) *Matcher {
	defaults := DefaultMatcherConfig()
	if cfg.ShortQueryLen <= 0 {
		cfg.ShortQueryLen = defaults.ShortQueryLen
	}
	if cfg.ShortMaxDistance < 0 {
		cfg.ShortMaxDistance = defaults.ShortMaxDistance
	}
	if cfg.LongMaxDistance < 0 {
		cfg.LongMaxDistance = defaults.LongMaxDistance
	}
	return &Matcher{cfg: cfg}
}

// Score rates candidate against query. The second return is false when the
// candidate fails every strategy within the acceptance bound.
func (m *Matcher) Score(query, candidate string) (Match, bool) {
	query = strings.TrimSpace(query)
	if query == "" || candidate == "" {
		return Match{}, false
	}

	// Exact is case sensitive; the looser tiers fold case.
	if strings.Contains(candidate, query) {
		return Match{Kind: MatchExact}, true
	}

	if results := fuzzy.Find(query, []string{candidate}); len(results) == 1 {
		return Match{Kind: MatchSubsequence, Compactness: results[0].Score}, true
	}

	distance := levenshtein(strings.ToLower(query), strings.ToLower(candidate))
	if distance <= m.maxDistance(query) {
		return Match{Kind: MatchDistance, Distance: distance}, true
	}
	return Match{}, false
}

// Ranked returns the indices of every acceptable item, best match first.
// Ties keep ascending list order.
func (m *Matcher) Ranked(query string, items domain.List) []int {
	type scored struct {
		index int
		match Match
	}
	matches := make([]scored, 0, len(items))
	for i, item := range items {
		if match, ok := m.Score(query, item.Text); ok {
			matches = append(matches, scored{index: i, match: match})
		}
	}
	// Insertion-stable sort keeps the lowest index first on equal scores.
	for i := 1; i < len(matches); i++ {
		for j := i; j > 0 && betterMatch(matches[j].match, matches[j-1].match); j-- {
			matches[j], matches[j-1] = matches[j-1], matches[j]
		}
	}
	out := make([]int, len(matches))
	for i, s := range matches {
		out[i] = s.index
	}
	return out
}

// Search returns the index of the best-ranked item for query, or false when
// nothing clears the acceptance bound.
func (m *Matcher) Search(query string, items domain.List) (int, bool) {
	ranked := m.Ranked(query, items)
	if len(ranked) == 0 {
		return 0, false
	}
	return ranked[0], true
}

// maxDistance returns the acceptance bound for one query.
func (m *Matcher) maxDistance(query string) int {
	if utf8.RuneCountInString(query) <= m.cfg.ShortQueryLen {
		return m.cfg.ShortMaxDistance
	}
	return m.cfg.LongMaxDistance
}

// betterMatch reports whether a ranks strictly better than b.
func betterMatch(a, b Match) bool {
	if a.Kind != b.Kind {
		return a.Kind < b.Kind
	}
	switch a.Kind {
	case MatchSubsequence:
		return a.Compactness > b.Compactness
	case MatchDistance:
		return a.Distance < b.Distance
	default:
		return false
	}
}

// levenshtein computes the edit distance between two strings over runes.
func levenshtein(a, b string) int {
	ra := []rune(a)
	rb := []rune(b)
	if len(ra) == 0 {
		return len(rb)
	}
	if len(rb) == 0 {
		return len(ra)
	}

	prev := make([]int, len(rb)+1)
	curr := make([]int, len(rb)+1)
	for j := range prev {
		prev[j] = j
	}
	for i := 1; i <= len(ra); i++ {
		curr[0] = i
		for j := 1; j <= len(rb); j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			curr[j] = min(prev[j]+1, min(curr[j-1]+1, prev[j-1]+cost))
		}
		prev, curr = curr, prev
	}
	return prev[len(rb)]
}
