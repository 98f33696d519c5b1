package filter

import (
	"strings"

	"github.com/status-im/coin-ticker/quotes"
)

// Filter returns the entries whose name or symbol contains query, case-insensitively.
// An empty or whitespace-only query returns list unchanged. Order is preserved.
func Filter(list []quotes.AssetQuote, query string) []quotes.AssetQuote {
	needle := strings.ToLower(strings.TrimSpace(query))
	if needle == "" {
		return list
	}

	result := make([]quotes.AssetQuote, 0)
	for _, q := range list {
		if Matches(q, needle) {
			result = append(result, q)
		}
	}
	return result
}

// Matches reports whether q's name or symbol contains the lowercase needle
func Matches(q quotes.AssetQuote, needle string) bool {
	return strings.Contains(strings.ToLower(q.Name), needle) ||
		strings.Contains(strings.ToLower(q.Symbol), needle)
}
