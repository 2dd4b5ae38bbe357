package feeds

import "strings"

// MatchesKeywords reports whether text contains at least one inclusion
// keyword and none of the exclusion keywords. Matching is case-insensitive
// substring containment.
func MatchesKeywords(text string, include, exclude []string) bool {
	lower := strings.ToLower(text)

	for _, kw := range exclude {
		if kw == "" {
			continue
		}
		if strings.Contains(lower, strings.ToLower(kw)) {
			return false
		}
	}

	for _, kw := range include {
		if kw == "" {
			continue
		}
		if strings.Contains(lower, strings.ToLower(kw)) {
			return true
		}
	}
	return false
}
