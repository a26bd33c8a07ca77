package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Veraticus/finmate/internal/extract"
	"github.com/Veraticus/finmate/internal/llm"
	"github.com/Veraticus/finmate/internal/service"
	"github.com/Veraticus/finmate/internal/storage"
)

// generator returns the configured client, or nil when credentials are
// missing. Callers report the missing configuration per request.
func (a *app) generator() llm.Generator {
	client, err := llm.NewGeminiClient(a.cfg.LLM.ClientConfig())
	if err != nil {
		slog.Warn("Generative API not configured", "error", err)
		return nil
	}
	return client
}

func (a *app) pipeline(gen llm.Generator) *extract.Pipeline {
	return extract.NewPipeline(gen, a.cfg.LLM.ClientConfig(), slog.Default())
}

func (a *app) suggester(gen llm.Generator) *llm.Suggester {
	clientCfg := a.cfg.LLM.ClientConfig()
	return llm.NewSuggester(gen, clientCfg.Chain(), clientCfg.CacheTTL, slog.Default())
}

func (a *app) openStore(ctx context.Context) (service.ProfileStore, error) {
	store, err := storage.Open(ctx, storage.Options{
		Driver:        a.cfg.Storage.Driver,
		Path:          a.cfg.Storage.Path,
		MongoURI:      a.cfg.Storage.MongoURI,
		MongoDatabase: a.cfg.Storage.MongoDatabase,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open %s storage: %w", a.cfg.Storage.Driver, err)
	}
	return store, nil
}
