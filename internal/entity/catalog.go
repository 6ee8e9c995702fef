package entity

import "strconv"

// CategoryID is the store-assigned identifier of a category row.
type CategoryID int64

// Category mirrors the `categories` PostgreSQL table schema.
type Category struct {
	ID   CategoryID
	Name string
}

// CatalogRow is one line of the exported catalog: an item joined with the
// name of its category. Category is empty when the join finds no match.
type CatalogRow struct {
	ID       int64
	Artist   string
	Title    string
	Label    string
	Category string
	Format   string
	Price    string
	ItemURL  string
	ThumbURL string
}

// Strings returns the row in export column order.
func (r CatalogRow) Strings() []string {
	return []string{
		strconv.FormatInt(r.ID, 10),
		r.Artist,
		r.Title,
		r.Label,
		r.Category,
		r.Format,
		r.Price,
		r.ItemURL,
		r.ThumbURL,
	}
}

// CatalogColumns is the fixed header of an exported catalog.
var CatalogColumns = []string{"id", "artist", "title", "label", "category", "format", "price", "item_url", "thumb_url"}
