package analysis

import (
	"strings"

	"github.com/agext/levenshtein"
)

// suggestMaxDistance bounds how far a misspelling may be from a keyword
// before we stop pretending to know what the author meant.
const suggestMaxDistance = 3

// SuggestKeyword returns the known keyword closest to word by edit distance,
// case-insensitively. Ties go to the earlier catalog entry, so element types
// beat view types of the same distance. The second result is false when no
// keyword is within suggestMaxDistance.
func (l Language) SuggestKeyword(word string) (string, bool) {
	lower := strings.ToLower(word)
	params := levenshtein.NewParams()

	best := ""
	bestDist := suggestMaxDistance + 1
	for _, kw := range l.keywords {
		d := levenshtein.Distance(lower, strings.ToLower(kw.Name), params)
		if d < bestDist {
			best = kw.Name
			bestDist = d
		}
	}

	return best, bestDist <= suggestMaxDistance
}
