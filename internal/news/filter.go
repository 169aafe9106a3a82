package news

import (
	"strings"

	"github.com/newskeeper/newskeeper/internal/domain"
)

// FilterByTitle returns the headlines whose titles contain the query,
// case-insensitively. An empty query returns the input unchanged. This
// filters an already-fetched page; it is not a server-side search.
func FilterByTitle(headlines []domain.Headline, query string) []domain.Headline {
	if query == "" {
		return headlines
	}

	q := strings.ToLower(query)
	var filtered []domain.Headline
	for _, h := range headlines {
		if strings.Contains(strings.ToLower(h.Title), q) {
			filtered = append(filtered, h)
		}
	}

	return filtered
}
