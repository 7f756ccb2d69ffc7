package source

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestFixHotlinkURL(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "vikidia download host",
			input: "http://download.vikidia.org/vikidia/fr/images/2/2f/Trafalgar1.jpg",
			want:  "https://fr.vikidia.org/w/images/2/2f/Trafalgar1.jpg",
		},
		{
			name:  "https variant",
			input: "https://download.vikidia.org/vikidia/es/images/a/ab/Foo.png",
			want:  "https://es.vikidia.org/w/images/a/ab/Foo.png",
		},
		{
			name:  "unrelated URL passes through",
			input: "https://upload.wikimedia.org/wikipedia/commons/thumb/x.jpg",
			want:  "https://upload.wikimedia.org/wikipedia/commons/thumb/x.jpg",
		},
		{
			name:  "download host with unexpected path shape",
			input: "http://download.vikidia.org/other/fr/images/x.jpg",
			want:  "http://download.vikidia.org/other/fr/images/x.jpg",
		},
		{
			name:  "download host without images segment",
			input: "http://download.vikidia.org/vikidia/fr/files/x.jpg",
			want:  "http://download.vikidia.org/vikidia/fr/files/x.jpg",
		},
		{
			name:  "empty string",
			input: "",
			want:  "",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FixHotlinkURL(tt.input); got != tt.want {
				t.Errorf("FixHotlinkURL(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestStripHighlightTags(t *testing.T) {
	in := `Le <span class="searchmatch">dinosaure</span> est un reptile`
	want := "Le dinosaure est un reptile"
	if got := StripHighlightTags(in); got != want {
		t.Errorf("StripHighlightTags = %q, want %q", got, want)
	}
}

func TestCleanWikiSnippet(t *testing.T) {
	tests := []struct {
		name  string
		raw   string
		title string
		site  string
		want  string
	}{
		{
			name: "templates and links removed",
			raw:  `Le {{Infobox|animal}} '''dinosaure''' est un [[reptile|grand reptile]] du [[Mésozoïque]].`,
			want: "Le dinosaure est un grand reptile du Mésozoïque.",
		},
		{
			name: "file references and section markers removed",
			raw:  `[[Fichier:Dino.jpg|thumb|Un dinosaure]] == Histoire == Les dinosaures ont vécu longtemps.`,
			want: "Histoire Les dinosaures ont vécu longtemps.",
		},
		{
			name: "html tags removed",
			raw:  `Les <span class="x">dinosaures</span> sont <b>fascinants</b> pour les enfants.`,
			want: "Les dinosaures sont fascinants pour les enfants.",
		},
		{
			name:  "short snippet falls back to synthesized sentence",
			raw:   `{{stub}}`,
			title: "Dinosaure",
			site:  "Vikidia",
			want:  `Découvrez l'article "Dinosaure" sur Vikidia.`,
		},
		{
			name:  "fallback without site label",
			raw:   "",
			title: "Dinosaure",
			want:  `Découvrez l'article "Dinosaure" sur le site.`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CleanWikiSnippet(tt.raw, tt.title, tt.site); got != tt.want {
				t.Errorf("CleanWikiSnippet = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCleanWikiSnippetTruncates(t *testing.T) {
	raw := strings.Repeat("dix petits caracteres ", 40)
	got := CleanWikiSnippet(raw, "T", "S")
	if len([]rune(got)) != 300 {
		t.Errorf("len = %d, want 300", len([]rune(got)))
	}
	if !strings.HasSuffix(got, "...") {
		t.Errorf("truncated snippet should end with ellipsis, got %q", got[len(got)-10:])
	}
}

func TestCleanWikiSnippetTruncatesOnRuneBoundary(t *testing.T) {
	// Accented text must never be cut mid-rune.
	raw := strings.Repeat("é", 400)
	got := CleanWikiSnippet(raw, "T", "S")
	if !utf8.ValidString(got) {
		t.Fatalf("truncated snippet is invalid UTF-8: %q", got[:12])
	}
	if n := len([]rune(got)); n != 300 {
		t.Errorf("rune length = %d, want 300", n)
	}
	if !strings.HasSuffix(got, "...") {
		t.Errorf("truncated snippet should end with ellipsis")
	}
}
