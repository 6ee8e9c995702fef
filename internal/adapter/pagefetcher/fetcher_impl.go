package pagefetcher

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/user/catalog-scraper/internal/repository"
	"github.com/user/catalog-scraper/pkg/utils"
	"go.uber.org/zap"
)

// Fetcher provides a concrete implementation for the PageFetcher interface.
// It builds listing URLs, reads through an optional page cache and parses
// the body into a goquery document.
type Fetcher struct {
	siteBase string
	source   repository.PageSource
	cache    repository.PageCache
	cacheTTL time.Duration
	logger   *zap.Logger
}

// Option customizes a Fetcher.
type Option func(*Fetcher)

// WithCache serves pages from cache and stores fresh ones for ttl.
// A nil cache or non-positive ttl disables caching.
func WithCache(cache repository.PageCache, ttl time.Duration) Option {
	return func(f *Fetcher) {
		if cache != nil && ttl > 0 {
			f.cache = cache
			f.cacheTTL = ttl
		}
	}
}

// NewFetcher creates a Fetcher for the shop at siteBase.
func NewFetcher(siteBase string, source repository.PageSource, logger *zap.Logger, opts ...Option) *Fetcher {
	f := &Fetcher{
		siteBase: siteBase,
		source:   source,
		logger:   logger,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// FetchPage retrieves and parses one genre listing page.
func (f *Fetcher) FetchPage(ctx context.Context, genre string, page int) (*goquery.Document, error) {
	url := utils.GenreListingURL(f.siteBase, genre, page)

	body, err := f.body(ctx, url)
	if err != nil {
		return nil, err
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", url, err)
	}
	return doc, nil
}

func (f *Fetcher) body(ctx context.Context, url string) ([]byte, error) {
	if f.cache != nil {
		body, ok, err := f.cache.Get(ctx, url)
		if err != nil {
			// cache errors never fail a fetch
			f.logger.Warn("page cache read failed", zap.String("url", url), zap.Error(err))
		} else if ok {
			f.logger.Debug("page cache hit", zap.String("url", url))
			return body, nil
		}
	}

	body, err := f.source.Get(ctx, url)
	if err != nil {
		return nil, err
	}

	if f.cache != nil {
		if err := f.cache.Set(ctx, url, body, f.cacheTTL); err != nil {
			f.logger.Warn("page cache write failed", zap.String("url", url), zap.Error(err))
		}
	}
	return body, nil
}
