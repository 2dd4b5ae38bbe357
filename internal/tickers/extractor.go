// Package tickers extracts candidate stock symbols from article text. The
// heuristics are deliberately noisy: false positives are cheap because every
// candidate must later resolve to a real market quote before it can rank.
package tickers

import (
	"regexp"
	"sort"
	"strings"
)

var (
	// namePattern matches runs of one or two capitalized tokens
	// ("Bolt", "Acme Corp", "Big Bear AI"). A trailing corporate suffix
	// is stripped afterwards, so the suffix itself stays optional.
	namePattern = regexp.MustCompile(`\b([A-Z][a-zA-Z]+)(?:\s+([A-Z][a-zA-Z]+))?\b`)

	// cashtagPattern matches $XYZ cashtags.
	cashtagPattern = regexp.MustCompile(`\$([A-Z]{1,5})\b`)

	// parenPattern matches parenthesized symbols like "(ACME)".
	parenPattern = regexp.MustCompile(`\(([A-Z]{1,5})\)`)

	// bareUpperPattern matches bare 1-5 letter uppercase runs.
	bareUpperPattern = regexp.MustCompile(`\b[A-Z]{1,5}\b`)
)

// stopwords are uppercase tokens that look like tickers but never are.
var stopwords = map[string]struct{}{
	"AI":   {},
	"ML":   {},
	"LLM":  {},
	"GPT":  {},
	"COM":  {},
	"NET":  {},
	"ORG":  {},
	"CO":   {},
	"INC":  {},
	"LTD":  {},
	"CORP": {},
	"LLC":  {},
	"A.I":  {},
	"M.L":  {},
	"U.S":  {},
}

// Extractor scans text for candidate ticker symbols.
type Extractor struct {
	domainWords map[string]struct{}
}

// NewExtractor creates an Extractor. The domain keywords (the same list used
// for feed filtering) are excluded from results so that "AI" or "GPT" never
// surface as symbols.
func NewExtractor(domainKeywords []string) *Extractor {
	words := make(map[string]struct{}, len(domainKeywords))
	for _, kw := range domainKeywords {
		words[strings.ToUpper(strings.TrimSpace(kw))] = struct{}{}
	}
	return &Extractor{domainWords: words}
}

// Extract returns the deduplicated, sorted set of candidate symbols found in
// text by both heuristics. Every result is uppercase, 2-5 characters, and
// absent from the stopword and domain-keyword sets.
func (e *Extractor) Extract(text string) []string {
	seen := make(map[string]struct{})

	for _, sym := range e.linguisticCandidates(text) {
		seen[sym] = struct{}{}
	}
	for _, sym := range e.lexicalCandidates(text) {
		seen[sym] = struct{}{}
	}

	symbols := make([]string, 0, len(seen))
	for sym := range seen {
		symbols = append(symbols, sym)
	}
	sort.Strings(symbols)
	return symbols
}

// corporateSuffixes are trailing tokens that name the company form rather
// than the company itself.
var corporateSuffixes = map[string]struct{}{
	"Corp":  {},
	"Inc":   {},
	"Ltd":   {},
	"LLC":   {},
	"Co":    {},
	"Group": {},
	"Tech":  {},
	"AI":    {},
	"ML":    {},
	"Labs":  {},
}

// linguisticCandidates finds company-name shaped spans and turns the
// non-suffix tokens into a symbol candidate ("Acme Corp" -> ACME,
// "Bolt" -> BOLT).
func (e *Extractor) linguisticCandidates(text string) []string {
	var out []string
	for _, m := range namePattern.FindAllStringSubmatch(text, -1) {
		tokens := []string{m[1]}
		if m[2] != "" {
			tokens = append(tokens, m[2])
		}
		for len(tokens) > 0 {
			if _, ok := corporateSuffixes[tokens[len(tokens)-1]]; !ok {
				break
			}
			tokens = tokens[:len(tokens)-1]
		}
		if len(tokens) == 0 {
			continue
		}
		if sym := e.normalize(strings.ToUpper(strings.Join(tokens, ""))); sym != "" {
			out = append(out, sym)
		}
	}
	return out
}

// lexicalCandidates finds $XYZ cashtags, (XYZ) parentheticals, and bare
// uppercase runs.
func (e *Extractor) lexicalCandidates(text string) []string {
	var out []string
	for _, m := range cashtagPattern.FindAllStringSubmatch(text, -1) {
		if sym := e.normalize(m[1]); sym != "" {
			out = append(out, sym)
		}
	}
	for _, m := range parenPattern.FindAllStringSubmatch(text, -1) {
		if sym := e.normalize(m[1]); sym != "" {
			out = append(out, sym)
		}
	}
	for _, m := range bareUpperPattern.FindAllString(text, -1) {
		if sym := e.normalize(m); sym != "" {
			out = append(out, sym)
		}
	}
	return out
}

// normalize applies the shared candidate filters: length 2-5, not a
// stopword, not a domain keyword. It returns "" for rejected candidates.
func (e *Extractor) normalize(sym string) string {
	if len(sym) < 2 || len(sym) > 5 {
		return ""
	}
	if _, ok := stopwords[sym]; ok {
		return ""
	}
	if _, ok := e.domainWords[sym]; ok {
		return ""
	}
	return sym
}
