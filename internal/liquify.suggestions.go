package internal

import (
	"sort"
	"strings"
)

// MaxFilterSuggestions caps the names offered for an unknown filter
const MaxFilterSuggestions = 3

// Suggestion phrasing
const (
	suggestionPrefix    = ". Did you mean "
	suggestionSeparator = ", "
	suggestionLastSep   = " or "
	suggestionSuffix    = "?"
	suggestionQuote     = '\''
	minSuggestDistance  = 2
)

// SimilarNames returns up to limit candidates within edit distance of
// target, closest first. Ties keep candidate order.
func SimilarNames(target string, candidates []string, limit int) []string {
	if len(candidates) == 0 || limit <= 0 {
		return nil
	}

	maxDistance := max(len(target)/2, minSuggestDistance)
	target = strings.ToLower(target)

	type scored struct {
		name     string
		distance int
	}
	var near []scored
	for _, c := range candidates {
		if d := editDistance(target, strings.ToLower(c)); d <= maxDistance {
			near = append(near, scored{name: c, distance: d})
		}
	}
	sort.SliceStable(near, func(i, j int) bool {
		return near[i].distance < near[j].distance
	})

	result := make([]string, 0, min(limit, len(near)))
	for i := 0; i < len(near) && i < limit; i++ {
		result = append(result, near[i].name)
	}
	return result
}

// editDistance is the Levenshtein distance over bytes, using two rows.
func editDistance(a, b string) int {
	if a == "" {
		return len(b)
	}
	if b == "" {
		return len(a)
	}

	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)
	for j := range prev {
		prev[j] = j
	}

	for i := 1; i <= len(a); i++ {
		curr[0] = i
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			curr[j] = min(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}
	return prev[len(b)]
}

// FormatSuggestions renders names as ". Did you mean 'a', 'b' or 'c'?".
// No names renders as "".
func FormatSuggestions(names []string) string {
	if len(names) == 0 {
		return ""
	}

	var sb strings.Builder
	sb.WriteString(suggestionPrefix)
	for i, name := range names {
		switch {
		case i == 0:
		case i == len(names)-1:
			sb.WriteString(suggestionLastSep)
		default:
			sb.WriteString(suggestionSeparator)
		}
		sb.WriteByte(suggestionQuote)
		sb.WriteString(name)
		sb.WriteByte(suggestionQuote)
	}
	sb.WriteString(suggestionSuffix)
	return sb.String()
}
