package usecase

import (
	"context"
	"time"

	"github.com/user/catalog-scraper/internal/entity"
	"github.com/user/catalog-scraper/internal/scraper"
	"go.uber.org/zap"
)

// RunSummary is the outcome of a full batch run.
type RunSummary struct {
	Genres     []GenreSummary
	ExportPath string
	Duration   time.Duration
}

// TotalItems returns the number of listings stored across all genres.
func (s *RunSummary) TotalItems() int {
	n := 0
	for _, g := range s.Genres {
		n += g.Items
	}
	return n
}

// BatchUseCase runs the whole operator sequence: reset, create, import every genre, export.
type BatchUseCase struct {
	catalog  *CatalogUseCase
	exporter *ExportUseCase
	logger   *zap.Logger
}

// NewBatchUseCase creates a new instance of the batch use case.
func NewBatchUseCase(catalog *CatalogUseCase, exporter *ExportUseCase, logger *zap.Logger) *BatchUseCase {
	return &BatchUseCase{catalog: catalog, exporter: exporter, logger: logger}
}

// Run executes the batch. Genres are checked before any table is dropped.
// The first failure stops the run; the summary then covers the genres stored so far.
func (uc *BatchUseCase) Run(ctx context.Context, genres []string, target int) (*RunSummary, error) {
	start := time.Now()
	summary := &RunSummary{}

	for _, g := range genres {
		if !scraper.IsSupportedGenre(g) {
			return summary, &entity.InvalidGenre{Genre: scraper.NormalizeGenre(g)}
		}
	}

	if err := uc.catalog.ResetSchema(ctx); err != nil {
		return summary, err
	}
	if err := uc.catalog.CreateSchema(ctx); err != nil {
		return summary, err
	}

	for _, g := range genres {
		gs, err := uc.catalog.ImportGenre(ctx, g, target)
		if err != nil {
			uc.logger.Error("genre import failed", zap.String("genre", gs.Genre), zap.Error(err))
			summary.Duration = time.Since(start)
			return summary, err
		}
		summary.Genres = append(summary.Genres, gs)
	}

	path, err := uc.exporter.ExportCatalog(ctx)
	summary.Duration = time.Since(start)
	if err != nil {
		return summary, err
	}
	summary.ExportPath = path

	uc.logger.Info("run complete",
		zap.Int("count", summary.TotalItems()),
		zap.String("path", path),
		zap.Duration("duration", summary.Duration))
	return summary, nil
}
