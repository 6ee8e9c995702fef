package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/user/catalog-scraper/internal/entity"
	"github.com/user/catalog-scraper/internal/repository"
	"github.com/user/catalog-scraper/internal/scraper"
	"github.com/user/catalog-scraper/pkg/metrics"
	"github.com/user/catalog-scraper/pkg/utils"
	"go.uber.org/zap"
)

// GenreSummary describes one imported genre.
type GenreSummary struct {
	Genre      string
	CategoryID entity.CategoryID
	Pages      int
	Items      int
}

// CatalogUseCase drives page fetching, extraction and storage for genres.
type CatalogUseCase struct {
	fetcher   repository.PageFetcher
	extractor *scraper.Extractor
	catalog   repository.CatalogRepository
	metrics   *metrics.Metrics
	logger    *zap.Logger
	siteBase  string
}

// NewCatalogUseCase creates a new instance of the catalog use case.
func NewCatalogUseCase(
	siteBase string,
	fetcher repository.PageFetcher,
	extractor *scraper.Extractor,
	catalog repository.CatalogRepository,
	m *metrics.Metrics,
	logger *zap.Logger,
) *CatalogUseCase {
	return &CatalogUseCase{
		fetcher:   fetcher,
		extractor: extractor,
		catalog:   catalog,
		metrics:   m,
		logger:    logger,
		siteBase:  siteBase,
	}
}

// ResetSchema drops the catalog tables.
func (uc *CatalogUseCase) ResetSchema(ctx context.Context) error {
	if err := uc.catalog.ResetSchema(ctx); err != nil {
		uc.metrics.IncErrorsTotal(errorType(err))
		return err
	}
	uc.logger.Info("catalog tables dropped")
	return nil
}

// CreateSchema creates the catalog tables if they do not exist.
func (uc *CatalogUseCase) CreateSchema(ctx context.Context) error {
	if err := uc.catalog.CreateSchema(ctx); err != nil {
		uc.metrics.IncErrorsTotal(errorType(err))
		return err
	}
	uc.logger.Info("catalog tables ready")
	return nil
}

// FetchGenre collects at least target listings of genre, newest first.
// Pages are fetched one after another; the first failing page aborts the
// genre and nothing is returned.
func (uc *CatalogUseCase) FetchGenre(ctx context.Context, genre string, target int) ([]entity.ListingRecord, error) {
	genre = scraper.NormalizeGenre(genre)
	if !scraper.IsSupportedGenre(genre) {
		err := &entity.InvalidGenre{Genre: genre}
		uc.metrics.IncErrorsTotal(errorType(err))
		return nil, err
	}

	if target < scraper.ItemsPerPage {
		uc.logger.Info("raising target to one full page",
			zap.String("genre", genre), zap.Int("requested", target), zap.Int("count", scraper.ItemsPerPage))
	}
	pages := scraper.PagesFor(target)

	all := &scraper.PageFields{}
	for page := 1; page <= pages; page++ {
		uc.logger.Info(fmt.Sprintf("Fetching page %d/%d from %s", page, pages, genre),
			zap.String("genre", genre), zap.Int("page", page))

		fields, err := uc.fetchPage(ctx, genre, page)
		if err != nil {
			uc.metrics.IncErrorsTotal(errorType(err))
			return nil, fmt.Errorf("genre %s page %d/%d: %w", genre, page, pages, err)
		}
		all.Append(fields)
	}

	records := all.Records()
	uc.metrics.AddExtracted(genre, len(records))
	uc.logger.Info("genre fetched", zap.String("genre", genre), zap.Int("count", len(records)))
	return records, nil
}

func (uc *CatalogUseCase) fetchPage(ctx context.Context, genre string, page int) (*scraper.PageFields, error) {
	start := time.Now()
	doc, err := uc.fetcher.FetchPage(ctx, genre, page)
	if err != nil {
		return nil, err
	}
	uc.metrics.ObservePageFetch(time.Since(start))

	return uc.extractor.ExtractFields(doc, utils.GenreListingURL(uc.siteBase, genre, page))
}

// ImportGenre fetches genre and stores its listings under a category of the same name.
func (uc *CatalogUseCase) ImportGenre(ctx context.Context, genre string, target int) (GenreSummary, error) {
	genre = scraper.NormalizeGenre(genre)
	summary := GenreSummary{Genre: genre, Pages: scraper.PagesFor(target)}

	records, err := uc.FetchGenre(ctx, genre, target)
	if err != nil {
		return summary, err
	}

	categoryID, err := uc.catalog.UpsertCategory(ctx, genre)
	if err != nil {
		uc.metrics.IncErrorsTotal(errorType(err))
		return summary, err
	}
	summary.CategoryID = categoryID

	if err := uc.catalog.InsertItems(ctx, records, categoryID); err != nil {
		uc.metrics.IncErrorsTotal(errorType(err))
		return summary, err
	}
	summary.Items = len(records)

	uc.metrics.AddInserted(genre, len(records))
	uc.logger.Info("genre stored",
		zap.String("genre", genre), zap.Int64("category_id", int64(categoryID)), zap.Int("count", len(records)))
	return summary, nil
}

// errorType maps an error to the label used in catalog_errors_total.
func errorType(err error) string {
	var (
		te *entity.TransportError
		em *entity.ExtractionMismatch
		ig *entity.InvalidGenre
		pe *entity.PersistenceError
	)
	switch {
	case errors.As(err, &te):
		return string(te.Kind)
	case errors.As(err, &em):
		return "extraction_mismatch"
	case errors.As(err, &ig):
		return "invalid_genre"
	case errors.As(err, &pe):
		return "persistence"
	case errors.Is(err, context.Canceled):
		return "canceled"
	default:
		return "unknown"
	}
}
