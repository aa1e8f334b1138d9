package nlp

import (
	"sort"
	"unicode/utf8"
)

const minKeywordRunes = 5

// Keywords returns the top-max most frequent meaningful tokens of a text,
// in descending frequency. Ties keep first-seen order (stable sort), so the
// output is deterministic for a given input. Tokens shorter than five runes
// and stopwords are skipped.
func Keywords(text string, max int) []string {
	if max <= 0 {
		return []string{}
	}
	counts := make(map[string]int)
	var order []string
	for _, tok := range TokensList(Normalize(text)) {
		if utf8.RuneCountInString(tok) < minKeywordRunes {
			continue
		}
		if IsStopword(tok) {
			continue
		}
		if counts[tok] == 0 {
			order = append(order, tok)
		}
		counts[tok]++
	}
	sort.SliceStable(order, func(i, j int) bool {
		return counts[order[i]] > counts[order[j]]
	})
	if len(order) > max {
		order = order[:max]
	}
	if order == nil {
		order = []string{}
	}
	return order
}
