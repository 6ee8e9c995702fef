package usecase

import (
	"context"
	"encoding/csv"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/user/catalog-scraper/internal/entity"
	"go.uber.org/zap"
)

func fixedClock() time.Time {
	return time.Date(2024, 3, 5, 14, 7, 9, 0, time.UTC)
}

func TestExportCatalogWritesCSV(t *testing.T) {
	catalog := newFakeCatalog()
	catalog.items = []entity.CatalogRow{
		{ID: 1, Artist: "Drexciya", Title: "Neptune''s Lair", Label: "Tresor", Category: "techno",
			Format: "LP", Price: "24.99", ItemURL: "https://clone.nl/item1.html", ThumbURL: "https://clone.nl/1.jpg"},
		{ID: 2, Artist: "Various", Title: "Box, Set", Label: "Rush Hour", Category: "house",
			Format: `5x12"`, Price: entity.AbsentPrice, ItemURL: "https://clone.nl/item2.html", ThumbURL: "https://clone.nl/2.jpg"},
	}
	prefix := filepath.Join(t.TempDir(), "out", "clone_nl_catalog")
	uc := NewExportUseCase(catalog, prefix, zap.NewNop(), WithClock(fixedClock))

	path, err := uc.ExportCatalog(context.Background())
	require.NoError(t, err)
	assert.Equal(t, prefix+"_2024-03-05_14-07-09.csv", path)

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	lines, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)

	require.Len(t, lines, 3)
	assert.Equal(t, []string{"id", "artist", "title", "label", "category", "format", "price", "item_url", "thumb_url"}, lines[0])
	assert.Equal(t, []string{"1", "Drexciya", "Neptune''s Lair", "Tresor", "techno", "LP", "24.99",
		"https://clone.nl/item1.html", "https://clone.nl/1.jpg"}, lines[1])
	assert.Equal(t, "Box, Set", lines[2][2])
	assert.Equal(t, `5x12"`, lines[2][5])
	assert.Equal(t, "None", lines[2][6])
}

func TestExportCatalogEmptyCatalogWritesHeader(t *testing.T) {
	prefix := filepath.Join(t.TempDir(), "catalog")
	uc := NewExportUseCase(newFakeCatalog(), prefix, zap.NewNop(), WithClock(fixedClock))

	path, err := uc.ExportCatalog(context.Background())
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "id,artist,title,label,category,format,price,item_url,thumb_url\n", string(data))
}

func TestExportCatalogListFailure(t *testing.T) {
	catalog := newFakeCatalog()
	catalog.failOn["list"] = errors.New("relation \"items\" does not exist")
	dir := t.TempDir()
	uc := NewExportUseCase(catalog, filepath.Join(dir, "catalog"), zap.NewNop(), WithClock(fixedClock))

	path, err := uc.ExportCatalog(context.Background())
	assert.Empty(t, path)
	var pe *entity.PersistenceError
	require.True(t, errors.As(err, &pe))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestExportCatalogKeepsEarlierExport(t *testing.T) {
	catalog := newFakeCatalog()
	catalog.items = []entity.CatalogRow{{ID: 1, Artist: "Drexciya"}}
	prefix := filepath.Join(t.TempDir(), "catalog")
	uc := NewExportUseCase(catalog, prefix, zap.NewNop(), WithClock(fixedClock))

	first, err := uc.ExportCatalog(context.Background())
	require.NoError(t, err)

	catalog.items = nil
	second, err := uc.ExportCatalog(context.Background())
	assert.Empty(t, second)
	require.ErrorIs(t, err, os.ErrExist)

	data, err := os.ReadFile(first)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Drexciya")
}
