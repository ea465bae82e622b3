package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/emotube/backend/internal/config"
	"github.com/emotube/backend/internal/db"
	"github.com/emotube/backend/internal/handlers"
	"github.com/emotube/backend/internal/middleware"
	"github.com/emotube/backend/internal/nlp"
	"github.com/emotube/backend/internal/reports"
	"github.com/emotube/backend/internal/repositories"
	"github.com/emotube/backend/internal/storage"
	"github.com/emotube/backend/internal/videos"
	"github.com/emotube/backend/internal/wordcloud"
)

const rateLimiterTTL = 10 * time.Minute

// textAnalyzer is the NLP collaborator used for both keywords and sentiment.
type textAnalyzer interface {
	nlp.SentimentAnalyzer
	nlp.SyntaxAnalyzer
}

// collaborators groups the remote clients and stores a deployment talks to.
type collaborators struct {
	provider  videos.Provider
	analyzer  textAnalyzer
	artifacts storage.ArtifactStore
	closers   []func() error
}

func (c collaborators) close() error {
	var errs []error
	for _, closeFn := range c.closers {
		if err := closeFn(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// dialCollaborators connects to the YouTube Data API, the Natural Language API
// and the configured artifact store.
func dialCollaborators(ctx context.Context, cfg config.Config) (collaborators, error) {
	var c collaborators

	provider, err := videos.NewYouTubeProvider(ctx, cfg.YouTubeAPIKey, cfg.ProviderTimeout)
	if err != nil {
		return collaborators{}, err
	}
	c.provider = provider

	analyzer, err := nlp.NewGoogleAnalyzer(ctx, cfg.NLPCredentials, cfg.ProviderTimeout)
	if err != nil {
		return collaborators{}, err
	}
	c.analyzer = analyzer
	c.closers = append(c.closers, analyzer.Close)

	if cfg.ObjectStore.Enabled() {
		s3Store, err := storage.NewS3Storage(ctx, cfg.ObjectStore)
		if err != nil {
			_ = c.close()
			return collaborators{}, err
		}
		c.artifacts = s3Store
	} else {
		local, err := storage.NewLocalStorage(cfg.ArtifactDir)
		if err != nil {
			_ = c.close()
			return collaborators{}, err
		}
		c.artifacts = local
	}

	return c, nil
}

// buildDependencies wires together concrete implementations used by the HTTP handlers.
func buildDependencies(pool db.Pool, cfg config.Config, c collaborators) (handlers.Dependencies, error) {
	renderer, err := wordcloud.NewRenderer(c.artifacts)
	if err != nil {
		return handlers.Dependencies{}, err
	}
	if cfg.CJKFont != "" {
		if err := renderer.LoadFont(cfg.CJKFont, "zh", "ja", "ko"); err != nil {
			return handlers.Dependencies{}, fmt.Errorf("load cjk font: %w", err)
		}
	}

	var store reports.Store
	switch cfg.CacheBackend {
	case config.CacheBackendMemory:
		store = reports.NewMemoryStore()
	case config.CacheBackendPostgres:
		if pool == nil {
			return handlers.Dependencies{}, errors.New("postgres cache backend requires a database pool")
		}
		store = repositories.NewPostgresReportRepository(pool)
	default:
		return handlers.Dependencies{}, fmt.Errorf("unknown cache backend %q", cfg.CacheBackend)
	}

	builder := &reports.Builder{
		Fetcher:   videos.NewFetcher(c.provider, cfg.MaxComments, cfg.CommentsPerPage),
		Sentiment: c.analyzer,
		Syntax:    c.analyzer,
		Renderer:  renderer,
	}

	return handlers.Dependencies{
		Reports:   reports.NewService(reports.NewCache(store, cfg.ReportTTL), builder),
		Artifacts: c.artifacts,
		Limiter:   middleware.NewIPRateLimiter(cfg.RateLimit.Requests, cfg.RateLimit.Window, cfg.RateLimit.Burst, rateLimiterTTL),
	}, nil
}
