package repository

import (
	"context"

	"github.com/user/catalog-scraper/internal/entity"
)

// CatalogRepository defines the interface for persisting and reading back the catalog.
type CatalogRepository interface {
	// CreateSchema creates both tables and the item->category foreign key if absent.
	CreateSchema(ctx context.Context) error
	// ResetSchema drops both tables. Destroys all data.
	ResetSchema(ctx context.Context) error
	// UpsertCategory inserts the category if absent and returns its id.
	UpsertCategory(ctx context.Context, name string) (entity.CategoryID, error)
	// InsertItems stores every record under categoryID in one transaction.
	InsertItems(ctx context.Context, records []entity.ListingRecord, categoryID entity.CategoryID) error
	// ListCatalog returns all items joined with their category name, ordered by item id.
	ListCatalog(ctx context.Context) ([]entity.CatalogRow, error)
}
