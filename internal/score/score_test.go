package score

import (
	"math"
	"testing"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestLexical(t *testing.T) {
	tests := []struct {
		name    string
		title   string
		snippet string
		query   string
		want    float64
	}{
		{
			name:  "verbatim title match and prefix",
			title: "Dinosaure", query: "dinosaure",
			want: 1.4, // contains + starts-with
		},
		{
			name:  "contained but not prefix",
			title: "Le grand dinosaure", query: "dinosaure",
			want: 1.0,
		},
		{
			name:  "all tokens in title without verbatim match",
			title: "Rafale (avion de Dassault)", query: "dassault rafale",
			want: 0.5,
		},
		{
			name:  "single token no match",
			title: "Château fort", query: "dinosaure",
			want: 0,
		},
		{
			name:    "snippet bonus for multi-token query",
			title:   "Aviation",
			snippet: "Le Dassault Rafale est un avion de chasse.",
			query:   "dassault rafale",
			want:    0.85, // 0.5 title tokens + 0.35 snippet
		},
		{
			name:    "snippet bonus not awarded for single token",
			title:   "Aviation",
			snippet: "Le Rafale est un avion.",
			query:   "rafale",
			want:    0,
		},
		{
			name:  "empty query",
			title: "Anything", query: "   ",
			want: 0,
		},
		{
			name:  "short tokens are ignored",
			title: "La tour de Pise", query: "la tour",
			// "la" is kept (len 2 > 1), full query is contained verbatim
			// and is a prefix.
			want: 1.4,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Lexical(tt.title, tt.snippet, tt.query)
			if !almostEqual(got, tt.want) {
				t.Errorf("Lexical(%q, %q, %q) = %v, want %v", tt.title, tt.snippet, tt.query, got, tt.want)
			}
		})
	}
}

// A query equal to the full title must never score below a query that only
// matches token-by-token.
func TestLexicalFullTitleDominates(t *testing.T) {
	title := "Napoléon Bonaparte"
	snippet := "Napoléon Bonaparte était un empereur français."

	full := Lexical(title, snippet, "napoléon bonaparte")
	partial := Lexical(title, snippet, "bonaparte napoléon")
	if full < partial {
		t.Errorf("full-title query scored %v, below token-match query %v", full, partial)
	}
}

func TestTokens(t *testing.T) {
	tests := []struct {
		input string
		want  []string
	}{
		{"dassault rafale", []string{"dassault", "rafale"}},
		{"a b cd", []string{"cd"}},
		{"un, deux; trois!", []string{"un", "deux", "trois"}},
		{"", nil},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := Tokens(tt.input)
			if len(got) != len(tt.want) {
				t.Fatalf("Tokens(%q) = %v, want %v", tt.input, got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("Tokens(%q)[%d] = %q, want %q", tt.input, i, got[i], tt.want[i])
				}
			}
		})
	}
}
