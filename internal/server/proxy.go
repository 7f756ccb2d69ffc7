// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package server

import (
	"fmt"
	"io"
	"net/http"
	"net/http/httputil"
	"net/url"
	"time"

	"github.com/laurentftech/kidsearch/pkg/types"
)

// Proxy is a development relay that forwards requests to an upstream
// backend and stamps CORS headers on the way back, so a front end served
// from file:// or another port can call APIs that lack CORS support.
type Proxy struct {
	cfg     types.ProxyConfig
	reverse *httputil.ReverseProxy
	log     io.Writer
}

// NewProxy builds a relay for the configured backend.
func NewProxy(cfg types.ProxyConfig, log io.Writer) (*Proxy, error) {
	if log == nil {
		log = io.Discard
	}
	backend, err := url.Parse(cfg.Backend)
	if err != nil || backend.Host == "" {
		return nil, fmt.Errorf("invalid proxy backend %q", cfg.Backend)
	}

	reverse := httputil.NewSingleHostReverseProxy(backend)
	reverse.ErrorHandler = func(w http.ResponseWriter, _ *http.Request, err error) {
		fmt.Fprintf(log, "warning: proxy backend error: %v\n", err)
		http.Error(w, "backend unavailable", http.StatusBadGateway)
	}

	return &Proxy{cfg: cfg, reverse: reverse, log: log}, nil
}

// ServeHTTP answers preflight requests directly and relays everything
// else to the backend with CORS headers attached.
func (p *Proxy) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	origin := p.allowedOrigin(r.Header.Get("Origin"))
	w.Header().Set("Access-Control-Allow-Origin", origin)
	w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

	if r.Method == http.MethodOptions {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	p.reverse.ServeHTTP(w, r)
}

// allowedOrigin echoes a configured origin or falls back to the wildcard
// when no allow-list is set.
func (p *Proxy) allowedOrigin(origin string) string {
	if len(p.cfg.AllowedOrigins) == 0 {
		return "*"
	}
	for _, o := range p.cfg.AllowedOrigins {
		if o == origin || o == "*" {
			return o
		}
	}
	return p.cfg.AllowedOrigins[0]
}

// ListenAndServe runs the relay until the listener fails.
func (p *Proxy) ListenAndServe() error {
	port := p.cfg.Port
	if port == 0 {
		port = 8081
	}
	addr := fmt.Sprintf(":%d", port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           p,
		ReadHeaderTimeout: 10 * time.Second,
	}
	fmt.Fprintf(p.log, "relaying %s on %s\n", p.cfg.Backend, addr)
	return srv.ListenAndServe()
}
