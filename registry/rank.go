package registry

import (
	"sort"
	"strings"

	levenshtein "github.com/ka-weihe/fast-levenshtein"
	"github.com/mediadex-cli/mediadex/media"
)

// relevance scores a record against the search phrase; lower is better.
// The english title counts too since upstreams disagree on which one
// users actually searched for.
func relevance(record media.Record, phrase string) int {
	base := record.Base()
	phrase = strings.ToLower(phrase)

	score := levenshtein.Distance(strings.ToLower(base.Title), phrase)
	if base.EnglishTitle != "" {
		if english := levenshtein.Distance(strings.ToLower(base.EnglishTitle), phrase); english < score {
			score = english
		}
	}

	// Exact substring hits beat pure edit distance.
	if strings.Contains(strings.ToLower(base.Title), phrase) {
		score -= len(phrase)
	}

	return score
}

// SortByRelevance reorders merged records by closeness to the search phrase.
// The sort is stable, so records with equal scores keep their
// registration-order position.
func SortByRelevance(records []media.Record, phrase string) {
	sort.SliceStable(records, func(i, j int) bool {
		return relevance(records[i], phrase) < relevance(records[j], phrase)
	})
}
