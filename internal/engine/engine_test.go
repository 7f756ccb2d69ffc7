package engine

import (
	"context"
	"errors"
	"testing"

	"github.com/laurentftech/kidsearch/internal/cache"
	"github.com/laurentftech/kidsearch/internal/history"
	"github.com/laurentftech/kidsearch/internal/primary"
	"github.com/laurentftech/kidsearch/internal/source"
	"github.com/laurentftech/kidsearch/pkg/types"
)

type stubPrimary struct {
	enabled bool
	resp    *primary.Response
	err     error

	calls     int
	lastQuery primary.Query
}

func (s *stubPrimary) Enabled() bool { return s.enabled }

func (s *stubPrimary) Search(_ context.Context, q primary.Query) (*primary.Response, error) {
	s.calls++
	s.lastQuery = q
	return s.resp, s.err
}

type stubSources struct {
	lists [][]types.Result

	webCalls, imageCalls int
}

func (s *stubSources) SearchAll(context.Context, string, string, source.Options) [][]types.Result {
	s.webCalls++
	return s.lists
}

func (s *stubSources) SearchAllImages(context.Context, string, string, source.Options) [][]types.Result {
	s.imageCalls++
	return s.lists
}

func (s *stubSources) ConfigSignature() string      { return "vikidia:0.5" }
func (s *stubSources) ImageConfigSignature() string { return "vikidia:0.5" }

func (s *stubSources) ExcludedDomains(types.Mode, string) []string {
	return []string{"fr.vikidia.org"}
}

type stubRecorder struct {
	entries []history.Entry
	err     error
}

func (r *stubRecorder) Record(e history.Entry) error {
	r.entries = append(r.entries, e)
	return r.err
}

func googleItems(links ...string) []types.Result {
	items := make([]types.Result, len(links))
	for i, l := range links {
		items[i] = types.Result{Title: "G " + l, Link: l}
	}
	return items
}

func newTestEngine(p *stubPrimary, s *stubSources, rec Recorder) *Engine {
	return New(p, s,
		cache.NewWeb(0, 0), cache.NewImage(0, 0), cache.NewQuota(0),
		types.SearchConfig{DefaultLanguage: "fr"},
		Options{Recorder: rec},
	)
}

func TestSearchMergesPrimaryAndSecondary(t *testing.T) {
	p := &stubPrimary{enabled: true, resp: &primary.Response{
		Items:        googleItems("https://a.example/1", "https://b.example/2"),
		TotalResults: "240",
	}}
	s := &stubSources{lists: [][]types.Result{
		{{Title: "Dinosaure", Link: "https://fr.vikidia.org/wiki/Dinosaure", Source: "Vikidia", Weight: 0.5}},
	}}
	rec := &stubRecorder{}
	e := newTestEngine(p, s, rec)

	data, err := e.Search(context.Background(), Request{Query: "dinosaure", Mode: types.ModeWeb})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}

	if len(data.Items) != 3 {
		t.Fatalf("len(Items) = %d, want 3", len(data.Items))
	}
	if data.GoogleItems != 2 {
		t.Errorf("GoogleItems = %d", data.GoogleItems)
	}
	if data.SearchInformation.TotalResults != "240" {
		t.Errorf("TotalResults = %q", data.SearchInformation.TotalResults)
	}
	if data.HasMorePages {
		t.Error("three results should not imply more pages")
	}
	if p.lastQuery.ExcludeDomains[0] != "fr.vikidia.org" {
		t.Errorf("excluded domains not passed: %v", p.lastQuery.ExcludeDomains)
	}

	if got := e.Quota().Used; got != 1 {
		t.Errorf("quota used = %d, want 1", got)
	}
	if len(rec.entries) != 1 {
		t.Fatalf("len(recorded) = %d", len(rec.entries))
	}
	if rec.entries[0].Query != "dinosaure" || !rec.entries[0].UsedPrimary || rec.entries[0].ResultCount != 3 {
		t.Errorf("recorded entry = %+v", rec.entries[0])
	}
}

func TestSearchServesFromCache(t *testing.T) {
	p := &stubPrimary{enabled: true, resp: &primary.Response{Items: googleItems("https://a.example/1")}}
	s := &stubSources{}
	e := newTestEngine(p, s, nil)

	req := Request{Query: "Dinosaure", Mode: types.ModeWeb}
	if _, err := e.Search(context.Background(), req); err != nil {
		t.Fatalf("Search: %v", err)
	}
	// The cache key is case-insensitive, so this must not hit the backends.
	req.Query = "DINOSAURE"
	if _, err := e.Search(context.Background(), req); err != nil {
		t.Fatalf("Search (cached): %v", err)
	}

	if p.calls != 1 {
		t.Errorf("primary calls = %d, want 1", p.calls)
	}
	if s.webCalls != 1 {
		t.Errorf("source calls = %d, want 1", s.webCalls)
	}
	if got := e.Quota().Used; got != 1 {
		t.Errorf("quota used = %d, cache hits must not consume quota", got)
	}
}

func TestSearchSecondPageSkipsSecondaries(t *testing.T) {
	p := &stubPrimary{enabled: true, resp: &primary.Response{Items: googleItems("https://a.example/1")}}
	s := &stubSources{lists: [][]types.Result{{{Title: "V", Link: "https://v.example/1", Source: "Vikidia"}}}}
	e := newTestEngine(p, s, nil)

	data, err := e.Search(context.Background(), Request{Query: "dinosaure", Page: 2, Mode: types.ModeWeb})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if s.webCalls != 0 {
		t.Errorf("source calls = %d, secondaries have no second page", s.webCalls)
	}
	if p.lastQuery.Page != 2 {
		t.Errorf("primary page = %d", p.lastQuery.Page)
	}
	if len(data.Items) != 1 {
		t.Errorf("len(Items) = %d", len(data.Items))
	}
}

func TestSearchDegradesWhenPrimaryFails(t *testing.T) {
	p := &stubPrimary{enabled: true, err: errors.New("api down")}
	s := &stubSources{lists: [][]types.Result{
		{{Title: "Dinosaure", Link: "https://fr.vikidia.org/wiki/Dinosaure", Source: "Vikidia", Weight: 0.5}},
	}}
	rec := &stubRecorder{}
	e := newTestEngine(p, s, rec)

	data, err := e.Search(context.Background(), Request{Query: "dinosaure", Mode: types.ModeWeb})
	if err != nil {
		t.Fatalf("Search should degrade, got %v", err)
	}
	if len(data.Items) != 1 || data.Items[0].Source != "Vikidia" {
		t.Errorf("Items = %+v", data.Items)
	}
	if got := e.Quota().Used; got != 0 {
		t.Errorf("quota used = %d, failed primary calls must not count", got)
	}
	if rec.entries[0].UsedPrimary {
		t.Error("failed primary call should not be recorded as used")
	}
}

func TestSearchUnavailable(t *testing.T) {
	p := &stubPrimary{enabled: true, err: errors.New("api down")}
	e := newTestEngine(p, &stubSources{}, nil)

	_, err := e.Search(context.Background(), Request{Query: "dinosaure", Mode: types.ModeWeb})
	if !errors.Is(err, ErrUnavailable) {
		t.Errorf("err = %v, want ErrUnavailable", err)
	}
}

func TestSearchImagesUsesImagePipeline(t *testing.T) {
	p := &stubPrimary{enabled: true, resp: &primary.Response{Items: nil}}
	s := &stubSources{lists: [][]types.Result{
		{{Title: "Dino.jpg", Link: "https://img.example/dino.jpg", Source: "Vikidia",
			Image: &types.Image{ContextLink: "https://fr.vikidia.org/wiki/Dinosaure"}}},
	}}
	e := newTestEngine(p, s, nil)

	data, err := e.Search(context.Background(), Request{Query: "dinosaure", Mode: types.ModeImages})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if s.imageCalls != 1 || s.webCalls != 0 {
		t.Errorf("calls = %d web, %d image", s.webCalls, s.imageCalls)
	}
	if p.lastQuery.Mode != types.ModeImages {
		t.Errorf("primary mode = %q", p.lastQuery.Mode)
	}
	if len(data.Items) != 1 {
		t.Errorf("len(Items) = %d", len(data.Items))
	}
}

func TestSearchWithoutPrimary(t *testing.T) {
	p := &stubPrimary{enabled: false}
	s := &stubSources{lists: [][]types.Result{{{Title: "V", Link: "https://v.example/1", Source: "Vikidia"}}}}
	e := newTestEngine(p, s, nil)

	data, err := e.Search(context.Background(), Request{Query: "dinosaure", Mode: types.ModeWeb})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if p.calls != 0 {
		t.Error("disabled primary must not be called")
	}
	if len(data.Items) != 1 {
		t.Errorf("len(Items) = %d", len(data.Items))
	}
	if data.HasMorePages {
		t.Error("sources-only search has a single page")
	}
}

func TestSearchHasMorePages(t *testing.T) {
	links := make([]string, 10)
	for i := range links {
		links[i] = "https://a.example/" + string(rune('a'+i))
	}
	p := &stubPrimary{enabled: true, resp: &primary.Response{Items: googleItems(links...)}}
	e := newTestEngine(p, &stubSources{}, nil)

	data, err := e.Search(context.Background(), Request{Query: "dinosaure", Mode: types.ModeWeb})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if !data.HasMorePages {
		t.Error("a full primary page should imply more pages")
	}
}

func TestSearchHasMorePagesHonorsResultsPerPage(t *testing.T) {
	links := make([]string, 5)
	for i := range links {
		links[i] = "https://a.example/" + string(rune('a'+i))
	}
	p := &stubPrimary{enabled: true, resp: &primary.Response{Items: googleItems(links...)}}
	e := New(p, &stubSources{},
		cache.NewWeb(0, 0), cache.NewImage(0, 0), cache.NewQuota(0),
		types.SearchConfig{DefaultLanguage: "fr", ResultsPerPage: 5},
		Options{},
	)

	data, err := e.Search(context.Background(), Request{Query: "dinosaure", Mode: types.ModeWeb})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if !data.HasMorePages {
		t.Error("a full page at the configured size should imply more pages")
	}
}

func TestSearchEmptyQuery(t *testing.T) {
	e := newTestEngine(&stubPrimary{}, &stubSources{}, nil)
	if _, err := e.Search(context.Background(), Request{Query: "   "}); err == nil {
		t.Error("expected an error for a blank query")
	}
}

func TestCleanQuery(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"dinosaure", "dinosaure"},
		{"  dinosaure  ", "dinosaure"},
		{"c'est quoi un volcan ?", "c'est quoi un volcan"},
		{"pourquoi le ciel est bleu ? explique", "pourquoi le ciel est bleu"},
		{"?", ""},
	}
	for _, tt := range tests {
		if got := CleanQuery(tt.in); got != tt.want {
			t.Errorf("CleanQuery(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestDetectLanguage(t *testing.T) {
	tests := []struct {
		query, want string
	}{
		{"les chevaliers du moyen age", "fr"},
		{"tempête", "fr"},
		{"what is a volcano", "en"},
		{"dinosaure", "fr"}, // fallback
	}
	for _, tt := range tests {
		if got := DetectLanguage(tt.query, "fr"); got != tt.want {
			t.Errorf("DetectLanguage(%q) = %q, want %q", tt.query, got, tt.want)
		}
	}
}
