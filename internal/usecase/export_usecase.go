package usecase

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/user/catalog-scraper/internal/entity"
	"github.com/user/catalog-scraper/internal/repository"
	"go.uber.org/zap"
)

const exportTimeLayout = "2006-01-02_15-04-05"

// ExportUseCase writes the stored catalog to a timestamped CSV file.
type ExportUseCase struct {
	catalog repository.CatalogRepository
	prefix  string
	now     func() time.Time
	logger  *zap.Logger
}

// ExportOption configures an ExportUseCase.
type ExportOption func(*ExportUseCase)

// WithClock replaces time.Now for file naming.
func WithClock(now func() time.Time) ExportOption {
	return func(uc *ExportUseCase) { uc.now = now }
}

// NewExportUseCase creates an exporter writing to {prefix}_{timestamp}.csv.
func NewExportUseCase(catalog repository.CatalogRepository, prefix string, logger *zap.Logger, opts ...ExportOption) *ExportUseCase {
	uc := &ExportUseCase{
		catalog: catalog,
		prefix:  prefix,
		now:     time.Now,
		logger:  logger,
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

// ExportCatalog writes every stored item with its category and returns the file path.
func (uc *ExportUseCase) ExportCatalog(ctx context.Context) (string, error) {
	rows, err := uc.catalog.ListCatalog(ctx)
	if err != nil {
		return "", err
	}

	path := fmt.Sprintf("%s_%s.csv", uc.prefix, uc.now().Format(exportTimeLayout))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("create export directory: %w", err)
	}

	// an existing export is never overwritten
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", fmt.Errorf("create export file: %w", err)
	}
	if err := writeCSV(f, rows); err != nil {
		f.Close()
		os.Remove(path)
		return "", err
	}
	if err := f.Close(); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("close export file: %w", err)
	}

	uc.logger.Info("catalog exported", zap.String("path", path), zap.Int("count", len(rows)))
	return path, nil
}

func writeCSV(out io.Writer, rows []entity.CatalogRow) error {
	w := csv.NewWriter(out)
	if err := w.Write(entity.CatalogColumns); err != nil {
		return fmt.Errorf("write export header: %w", err)
	}
	for _, row := range rows {
		if err := w.Write(row.Strings()); err != nil {
			return fmt.Errorf("write export row %d: %w", row.ID, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flush export file: %w", err)
	}
	return nil
}
