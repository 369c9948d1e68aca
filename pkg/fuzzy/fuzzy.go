// Package fuzzy provides typo-tolerant matching and ranking for card search.
package fuzzy

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// descriptionSnippet bounds how much of a description is scanned per card.
const descriptionSnippet = 500

// LevenshteinDistance calculates the edit distance between two strings
// This measures how many single-character edits (insertions, deletions, or substitutions)
// are required to change one string into another
func LevenshteinDistance(s1, s2 string) int {
	r1 := []rune(Normalize(s1))
	r2 := []rune(Normalize(s2))
	if len(r1) == 0 {
		return len(r2)
	}
	if len(r2) == 0 {
		return len(r1)
	}

	// Two rows are enough; prev holds row i-1
	prev := make([]int, len(r2)+1)
	curr := make([]int, len(r2)+1)
	for j := range prev {
		prev[j] = j
	}

	for i := 1; i <= len(r1); i++ {
		curr[0] = i
		for j := 1; j <= len(r2); j++ {
			cost := 0
			if r1[i-1] != r2[j-1] {
				cost = 1
			}
			curr[j] = min(
				prev[j]+1,      // deletion
				curr[j-1]+1,    // insertion
				prev[j-1]+cost, // substitution
			)
		}
		prev, curr = curr, prev
	}

	return prev[len(r2)]
}

// Threshold is the edit distance tolerated for a query of this length.
func Threshold(query string) int {
	n := len([]rune(Normalize(query)))
	switch {
	case n <= 3:
		return 1
	case n >= 8:
		return 3
	default:
		return 2
	}
}

// Match checks if query fuzzy-matches text within threshold edits
func Match(query, text string, threshold int) bool {
	query = Normalize(query)
	text = Normalize(text)
	if query == "" {
		return true
	}

	// If query is contained in text, it's a match
	if strings.Contains(text, query) {
		return true
	}

	// Check if any word in text fuzzy-matches the query
	for _, word := range strings.Fields(text) {
		if strings.HasPrefix(word, query) || LevenshteinDistance(query, word) <= threshold {
			return true
		}
	}

	// Check overall distance for short texts
	if len(text) < 50 {
		if LevenshteinDistance(query, text) <= threshold+len(query)/5 {
			return true
		}
	}

	return false
}

// MatchCard reports whether query fuzzy-matches a card's title or the start of
// its description.
func MatchCard(query, title, description string) bool {
	threshold := Threshold(query)
	if Match(query, title, threshold) {
		return true
	}
	return description != "" && Match(query, snippet(description), threshold)
}

// Score ranks how relevant a card is to query; higher is more relevant.
// Title hits outweigh description hits.
func Score(query, title, description string) float64 {
	query = Normalize(query)
	if query == "" {
		return 0
	}
	return fieldScore(query, Normalize(title), 100, 50) +
		fieldScore(query, Normalize(snippet(description)), 40, 20)
}

func fieldScore(query, text string, exact, fuzzy float64) float64 {
	if text == "" {
		return 0
	}
	if strings.Contains(text, query) {
		score := exact
		// Bonus for exact word match
		if containsWord(text, query) {
			score += exact / 2
		}
		return score
	}

	score := 0.0
	for _, word := range strings.Fields(text) {
		if dist := LevenshteinDistance(query, word); dist <= 2 {
			score += fuzzy - float64(dist)*fuzzy/4
		}
		if strings.HasPrefix(word, query) {
			score += fuzzy * 0.8
		}
	}
	return score
}

// Normalize lower-cases s, strips diacritics and collapses whitespace, so
// "Café  Menu" and "cafe menu" compare equal.
func Normalize(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, s)
	if err != nil {
		folded = s
	}
	folded = strings.ReplaceAll(folded, "đ", "d")
	folded = strings.ReplaceAll(folded, "Đ", "D")
	return strings.Join(strings.Fields(strings.ToLower(folded)), " ")
}

// containsWord checks if text contains query as a whole word
func containsWord(text, query string) bool {
	for _, word := range strings.Fields(text) {
		if word == query {
			return true
		}
	}
	return false
}

func snippet(s string) string {
	r := []rune(s)
	if len(r) > descriptionSnippet {
		return string(r[:descriptionSnippet])
	}
	return s
}
