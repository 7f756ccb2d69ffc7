// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/spf13/viper"
	"go.yaml.in/yaml/v3"

	"github.com/laurentftech/kidsearch/internal/cache"
	"github.com/laurentftech/kidsearch/internal/engine"
	"github.com/laurentftech/kidsearch/internal/history"
	"github.com/laurentftech/kidsearch/internal/panel"
	"github.com/laurentftech/kidsearch/internal/primary"
	"github.com/laurentftech/kidsearch/internal/secrets"
	"github.com/laurentftech/kidsearch/internal/source"
	"github.com/laurentftech/kidsearch/internal/suggest"
	"github.com/laurentftech/kidsearch/pkg/types"
)

const defaultUserAgent = "kidsearch/1.0 (https://github.com/laurentftech/kidsearch)"

// loadConfig builds the application configuration from the config file,
// environment overrides, and the secrets directory.
func loadConfig() (*types.AppConfig, error) {
	var cfg types.AppConfig
	if path := viper.ConfigFileUsed(); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("parsing config file %s: %w", path, err)
		}
	}

	// Environment overrides (KIDSEARCH_PRIMARY_API_KEY and friends)
	// resolve through viper.
	if v := viper.GetString("primary.api_key"); v != "" {
		cfg.Primary.APIKey = v
	}
	if v := viper.GetString("primary.cse_id"); v != "" {
		cfg.Primary.CSEID = v
	}
	if v := viper.GetString("search.sources_file"); v != "" {
		cfg.Search.SourcesFile = v
	}
	if v := viper.GetInt("server.port"); v != 0 {
		cfg.Server.Port = v
	}

	secrets.Apply(&cfg, loadedSecrets)

	if cfg.Search.Timeout == 0 {
		cfg.Search.Timeout = 10 * time.Second
	}
	if cfg.Search.UserAgent == "" {
		cfg.Search.UserAgent = defaultUserAgent
	}
	if cfg.Primary.Timeout == 0 {
		cfg.Primary.Timeout = cfg.Search.Timeout
	}
	if cfg.Primary.UserAgent == "" {
		cfg.Primary.UserAgent = cfg.Search.UserAgent
	}
	if cfg.Panel.Timeout == 0 {
		cfg.Panel.Timeout = cfg.Search.Timeout
	}
	if cfg.Panel.UserAgent == "" {
		cfg.Panel.UserAgent = cfg.Search.UserAgent
	}
	return &cfg, nil
}

// app bundles the assembled collaborators for one command invocation.
type app struct {
	cfg     *types.AppConfig
	engine  *engine.Engine
	panels  *panel.Fetcher
	suggest *suggest.Provider
	history *history.Store
}

// buildApp assembles the full pipeline from the configuration.
func buildApp() (*app, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	descs, err := source.LoadDescriptors(cfg.Search.SourcesFile)
	if err != nil {
		return nil, err
	}
	secrets.ApplySources(descs, loadedSecrets)

	httpCfg := cfg.Search.HTTPConfig
	client := &http.Client{Timeout: httpCfg.Timeout}
	registry, err := source.NewRegistry(descs, client, httpCfg, nil, os.Stderr)
	if err != nil {
		return nil, err
	}

	quota := cache.NewQuota(cfg.Primary.DailyQuota)

	var store *history.Store
	if cfg.History.Enabled {
		store, err = history.NewStore(cfg.History)
		if err != nil {
			return nil, err
		}
		// Recount today's primary calls so a restart does not reset
		// the quota.
		if used, err := store.CountPrimaryToday(); err == nil {
			quota.Restore(used)
		}
	}

	webCache := cache.NewWeb(cfg.Cache.WebMaxEntries, cfg.Cache.TTL)
	imageCache := cache.NewImage(cfg.Cache.ImageMaxEntries, cfg.Cache.TTL)
	if cfg.Cache.DisableImages {
		imageCache.Disable()
	}

	opts := engine.Options{Log: os.Stderr}
	if store != nil {
		opts.Recorder = store
	}
	eng := engine.New(
		primary.NewClient(cfg.Primary, nil),
		registry,
		webCache, imageCache, quota,
		cfg.Search,
		opts,
	)

	suggester, err := suggest.Load(cfg.Suggest.File)
	if err != nil {
		return nil, err
	}

	return &app{
		cfg:     cfg,
		engine:  eng,
		panels:  panel.NewFetcher(cfg.Panel, nil),
		suggest: suggester,
		history: store,
	}, nil
}

// close releases resources held by the app.
func (a *app) close() {
	if a.history != nil {
		a.history.Close()
	}
}
