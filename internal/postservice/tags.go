package postservice

import "strings"

// NormalizeTags splits a comma separated tag string into trimmed, lowercased and distinct terms.
// The result is never nil.
func NormalizeTags(tags string) []string {
	terms := []string{}
	seen := make(map[string]struct{})

	for _, term := range strings.Split(tags, ",") {
		term = strings.ToLower(strings.TrimSpace(term))
		if term == "" {
			continue
		}

		if _, ok := seen[term]; ok {
			continue
		}

		seen[term] = struct{}{}
		terms = append(terms, term)
	}

	return terms
}
