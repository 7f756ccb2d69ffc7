// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package server exposes the search pipeline over a small JSON HTTP API
// for the browser front end.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/rs/cors"

	"github.com/laurentftech/kidsearch/internal/cache"
	"github.com/laurentftech/kidsearch/internal/engine"
	"github.com/laurentftech/kidsearch/pkg/types"
)

// Searcher runs searches and reports quota state. Implemented by
// *engine.Engine.
type Searcher interface {
	Search(ctx context.Context, req engine.Request) (*types.SearchData, error)
	Quota() cache.Usage
}

// PanelFetcher looks up knowledge panels. Implemented by *panel.Fetcher.
type PanelFetcher interface {
	Fetch(ctx context.Context, query, lang string) (*types.Panel, error)
}

// Suggester answers autocomplete lookups. Implemented by
// *suggest.Provider.
type Suggester interface {
	For(prefix, lang string) []string
}

// Server is the HTTP API front end.
type Server struct {
	searcher Searcher
	panels   PanelFetcher
	suggest  Suggester
	cfg      types.ServerConfig
	log      io.Writer
}

// New assembles the API server. The panel and suggestion collaborators
// may be nil; their endpoints then return empty responses.
func New(searcher Searcher, panels PanelFetcher, suggester Suggester, cfg types.ServerConfig, log io.Writer) *Server {
	if log == nil {
		log = io.Discard
	}
	return &Server{searcher: searcher, panels: panels, suggest: suggester, cfg: cfg, log: log}
}

// Handler returns the full middleware-wrapped API handler.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/health", s.handleHealth)
	mux.HandleFunc("/api/search", s.handleSearch)
	mux.HandleFunc("/api/panel", s.handlePanel)
	mux.HandleFunc("/api/suggest", s.handleSuggest)
	mux.HandleFunc("/api/quota", s.handleQuota)

	origins := s.cfg.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	c := cors.New(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodOptions},
	})
	return c.Handler(s.withRequestID(mux))
}

// Addr returns the configured listen address.
func (s *Server) Addr() string {
	port := s.cfg.Port
	if port == 0 {
		port = 8080
	}
	return fmt.Sprintf("%s:%d", s.cfg.Host, port)
}

// ListenAndServe runs the API server until the listener fails.
func (s *Server) ListenAndServe() error {
	srv := &http.Server{
		Addr:              s.Addr(),
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	fmt.Fprintf(s.log, "listening on %s\n", s.Addr())
	return srv.ListenAndServe()
}

// withRequestID tags each request with an id and logs one line per call.
func (s *Server) withRequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set("X-Request-ID", id)

		start := time.Now()
		next.ServeHTTP(w, r)
		fmt.Fprintf(s.log, "%s %s %s (%s)\n", id, r.Method, r.URL.Path, time.Since(start).Round(time.Millisecond))
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	mode := types.ModeWeb
	if q.Get("type") == "images" {
		mode = types.ModeImages
	}
	page := 1
	if p, err := strconv.Atoi(q.Get("page")); err == nil && p > 0 {
		page = p
	}

	data, err := s.searcher.Search(r.Context(), engine.Request{
		Query: q.Get("q"),
		Page:  page,
		Sort:  q.Get("sort"),
		Mode:  mode,
		Lang:  q.Get("lang"),
	})
	if err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, engine.ErrUnavailable) {
			status = http.StatusServiceUnavailable
		}
		writeError(w, status, err)
		return
	}
	writeJSON(w, http.StatusOK, data)
}

func (s *Server) handlePanel(w http.ResponseWriter, r *http.Request) {
	if s.panels == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	q := r.URL.Query()
	lang := q.Get("lang")
	if lang == "" {
		lang = "fr"
	}
	p, err := s.panels.Fetch(r.Context(), q.Get("q"), lang)
	if err != nil {
		writeError(w, http.StatusBadGateway, err)
		return
	}
	if p == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (s *Server) handleSuggest(w http.ResponseWriter, r *http.Request) {
	suggestions := []string{}
	if s.suggest != nil {
		q := r.URL.Query()
		lang := q.Get("lang")
		if lang == "" {
			lang = "fr"
		}
		if found := s.suggest.For(q.Get("q"), lang); found != nil {
			suggestions = found
		}
	}
	writeJSON(w, http.StatusOK, suggestions)
}

func (s *Server) handleQuota(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.searcher.Quota())
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}
