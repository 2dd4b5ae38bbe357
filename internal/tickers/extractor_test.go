package tickers

import (
	"reflect"
	"testing"
)

func newTestExtractor() *Extractor {
	return NewExtractor([]string{"AI", "LLM", "GPT", "robotics"})
}

func TestExtract(t *testing.T) {
	e := newTestExtractor()

	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "parenthesized symbol",
			text: "New LLM from Acme Corp (ACME) launches",
			want: []string{"ACME"},
		},
		{
			name: "cashtag",
			text: "Traders piled into $NVDA after the keynote",
			want: []string{"NVDA"},
		},
		{
			name: "corporate suffix span",
			text: "Shares of Acme Corp rallied on the news",
			want: []string{"ACME"},
		},
		{
			name: "capitalized name without a suffix",
			text: "Bolt announces a funding round for its models",
			want: []string{"BOLT"},
		},
		{
			name: "bare uppercase run",
			text: "IONQ announced a new quantum system",
			want: []string{"IONQ"},
		},
		{
			name: "stopwords never surface",
			text: "AI and ML startups chase LLM and GPT hype, file with the ORG",
			want: []string{},
		},
		{
			name: "single characters dropped",
			text: "a grade A result for $X holders",
			want: []string{},
		},
		{
			name: "two-token company too long",
			text: "Quantum Widgets Inc files for IPO",
			want: []string{"IPO"}, // the span QUANTUMWIDGETS exceeds 5 chars
		},
		{
			name: "mixed sources deduplicated and sorted",
			text: "Acme Corp (ACME) and $BOLT both moved; BOLT closed higher",
			want: []string{"ACME", "BOLT"},
		},
		{
			name: "no candidates",
			text: "nothing but lowercase prose here",
			want: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := e.Extract(tt.text)
			if len(got) == 0 && len(tt.want) == 0 {
				return
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Extract(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}

// Every extracted symbol must be uppercase, 2-5 characters, and outside the
// stopword set regardless of input.
func TestExtract_SymbolInvariants(t *testing.T) {
	e := newTestExtractor()

	inputs := []string{
		"New LLM from Acme Corp (ACME) launches",
		"$NVDA $X $TOOLONGG (QQ) (SEVENCHARS)",
		"Big Bear AI and Tiny Co and MegaCorp Group LLC",
		"AI ML LLM GPT CO INC LTD CORP",
		"random MIXed CASE text with IONQ and B",
	}

	for _, text := range inputs {
		for _, sym := range e.Extract(text) {
			if len(sym) < 2 || len(sym) > 5 {
				t.Errorf("symbol %q from %q has invalid length %d", sym, text, len(sym))
			}
			if sym != stringsUpper(sym) {
				t.Errorf("symbol %q from %q is not uppercase", sym, text)
			}
			if _, banned := stopwords[sym]; banned {
				t.Errorf("symbol %q from %q is a stopword", sym, text)
			}
		}
	}
}

func stringsUpper(s string) string {
	b := []byte(s)
	for i, c := range b {
		if c >= 'a' && c <= 'z' {
			b[i] = c - 32
		}
	}
	return string(b)
}

func TestExtract_DomainKeywordsExcluded(t *testing.T) {
	e := NewExtractor([]string{"QUBIT"})
	got := e.Extract("QUBIT rallied while BOLT sank")
	if !reflect.DeepEqual(got, []string{"BOLT"}) {
		t.Errorf("Extract = %v, want domain keyword QUBIT excluded", got)
	}
}
