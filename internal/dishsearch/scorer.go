// Package dishsearch scores recipe records against free-text dish queries.
package dishsearch

import (
	"sort"
	"strings"

	"github.com/b4ubuy/pantry/internal/models"
)

// MaxResults is the size of the ranked shortlist returned by Search.
const MaxResults = 5

// Tier scores. Tiers are evaluated top-down and the first matching tier wins,
// so any exact match outranks any prefix match, and so on.
const (
	scoreExact      = 100.0
	scorePrefix     = 90.0
	scoreAllTokens  = 80.0
	scoreSubstring  = 70.0
	scorePartialMax = 60.0
)

// partialMaxNoiseLen is the longest query token the partial tier discards as
// noise ("a", "of"); only strictly longer tokens are scored.
const partialMaxNoiseLen = 2

// MatchTier identifies which scoring tier matched a record.
type MatchTier int

const (
	// TierNone indicates no tier matched.
	TierNone MatchTier = iota
	// TierExact is full equality of query and record name.
	TierExact
	// TierPrefix means the record name starts with the query.
	TierPrefix
	// TierAllTokens means every query token appears in the record name.
	TierAllTokens
	// TierSubstring means the record name contains the whole query.
	TierSubstring
	// TierPartial means some query tokens matched record-name tokens.
	TierPartial
)

// String returns a string representation of the match tier.
func (t MatchTier) String() string {
	switch t {
	case TierExact:
		return "exact"
	case TierPrefix:
		return "starts_with"
	case TierAllTokens:
		return "all_words"
	case TierSubstring:
		return "contains"
	case TierPartial:
		return "partial_words"
	default:
		return "none"
	}
}

// Match is the transient result of scoring one record against a query.
type Match struct {
	Record models.RecipeRecord
	Score  float64
	Tier   MatchTier
}

// Search scores every record against the query and returns up to MaxResults
// matches ordered by descending score. Ties keep catalog order. An empty or
// whitespace-only query, or an empty catalog, yields an empty result.
func Search(query string, records []models.RecipeRecord) []Match {
	term := strings.ToLower(strings.TrimSpace(query))
	if term == "" || len(records) == 0 {
		return nil
	}

	var matches []Match
	for _, rec := range records {
		if rec.Name == "" {
			continue
		}
		score, tier := scoreRecord(term, strings.ToLower(rec.Name))
		if score <= 0 {
			continue
		}
		matches = append(matches, Match{Record: rec, Score: score, Tier: tier})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Score > matches[j].Score
	})
	if len(matches) > MaxResults {
		matches = matches[:MaxResults]
	}
	return matches
}

// scoreRecord evaluates the tiers top-down for one lowercased record name.
func scoreRecord(term, name string) (float64, MatchTier) {
	if name == term {
		return scoreExact, TierExact
	}
	if strings.HasPrefix(name, term) {
		return scorePrefix, TierPrefix
	}
	if containsAllTokens(name, term) {
		return scoreAllTokens, TierAllTokens
	}
	// A contained query's tokens are each contained too, so for whitespace-
	// tokenized queries the token tier above shadows this one. The rung stays
	// to keep the tier ladder complete.
	if strings.Contains(name, term) {
		return scoreSubstring, TierSubstring
	}
	return scorePartial(term, name)
}

// containsAllTokens reports whether every whitespace token of term appears in
// name as a substring.
func containsAllTokens(name, term string) bool {
	tokens := strings.Fields(term)
	if len(tokens) == 0 {
		return false
	}
	for _, tok := range tokens {
		if !strings.Contains(name, tok) {
			return false
		}
	}
	return true
}

// scorePartial counts query tokens (longer than partialMaxNoiseLen) contained
// in at least one record-name token, scaling the score by the matched ratio.
func scorePartial(term, name string) (float64, MatchTier) {
	var queryTokens []string
	for _, tok := range strings.Fields(term) {
		if len(tok) > partialMaxNoiseLen {
			queryTokens = append(queryTokens, tok)
		}
	}
	if len(queryTokens) == 0 {
		return 0, TierNone
	}

	nameTokens := strings.Fields(name)
	matched := 0
	for _, q := range queryTokens {
		for _, n := range nameTokens {
			if strings.Contains(n, q) {
				matched++
				break
			}
		}
	}
	if matched == 0 {
		return 0, TierNone
	}
	return float64(matched) / float64(len(queryTokens)) * scorePartialMax, TierPartial
}
