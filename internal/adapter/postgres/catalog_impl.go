package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/user/catalog-scraper/internal/entity"
)

const foreignKeyViolation = "23503"

var createSchemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS categories (
		id SERIAL PRIMARY KEY,
		category VARCHAR(64) UNIQUE
	)`,
	`CREATE TABLE IF NOT EXISTS items (
		id SERIAL PRIMARY KEY,
		category_id INT,
		artist VARCHAR(255),
		title VARCHAR(255),
		label VARCHAR(255),
		format VARCHAR(64),
		price VARCHAR(8),
		item_url VARCHAR(255),
		thumb_url VARCHAR(255)
	)`,
	`DO $$
	BEGIN
		IF NOT EXISTS (SELECT 1 FROM pg_constraint WHERE conname = 'items_category_id_fkey') THEN
			ALTER TABLE items
				ADD CONSTRAINT items_category_id_fkey
				FOREIGN KEY (category_id) REFERENCES categories(id);
		END IF;
	END $$`,
}

const insertItemQuery = `
	INSERT INTO items (category_id, artist, title, label, format, price, item_url, thumb_url)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

const listCatalogQuery = `
	SELECT items.id, artist, title, label, category, format, price, item_url, thumb_url
	FROM items
	LEFT JOIN categories ON items.category_id = categories.id
	ORDER BY items.id`

// CatalogRepoImpl provides a concrete implementation for the CatalogRepository interface using PostgreSQL.
type CatalogRepoImpl struct {
	db *pgxpool.Pool
}

// NewCatalogRepo creates a new instance of CatalogRepoImpl.
func NewCatalogRepo(db *pgxpool.Pool) *CatalogRepoImpl {
	return &CatalogRepoImpl{db: db}
}

// CreateSchema creates the categories and items tables and the foreign key
// between them. Safe to call when they already exist.
func (r *CatalogRepoImpl) CreateSchema(ctx context.Context) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return persistenceError("create schema", err)
	}
	defer tx.Rollback(ctx)

	for _, stmt := range createSchemaStatements {
		if _, err := tx.Exec(ctx, stmt); err != nil {
			return persistenceError("create schema", err)
		}
	}
	if err := tx.Commit(ctx); err != nil {
		return persistenceError("create schema", err)
	}
	return nil
}

// ResetSchema drops both tables and everything that depends on them.
func (r *CatalogRepoImpl) ResetSchema(ctx context.Context) error {
	_, err := r.db.Exec(ctx, `DROP TABLE IF EXISTS categories, items CASCADE`)
	if err != nil {
		return persistenceError("reset schema", err)
	}
	return nil
}

// UpsertCategory inserts name if absent, then reads back its id.
// Two concurrent writers racing on the same new name may both miss the
// insert and still read the same id; a writer reading before the other
// commits gets pgx.ErrNoRows. The batch job has a single writer.
func (r *CatalogRepoImpl) UpsertCategory(ctx context.Context, name string) (entity.CategoryID, error) {
	_, err := r.db.Exec(ctx,
		`INSERT INTO categories (category) VALUES ($1) ON CONFLICT (category) DO NOTHING`,
		name)
	if err != nil {
		return 0, persistenceError("insert category "+name, err)
	}

	var id entity.CategoryID
	err = r.db.QueryRow(ctx, `SELECT id FROM categories WHERE category = $1`, name).Scan(&id)
	if err != nil {
		return 0, persistenceError("lookup category "+name, err)
	}
	return id, nil
}

// InsertItems stores all records in a single transaction; nothing is kept if any row fails.
func (r *CatalogRepoImpl) InsertItems(ctx context.Context, records []entity.ListingRecord, categoryID entity.CategoryID) error {
	if len(records) == 0 {
		return nil
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return persistenceError("insert items", err)
	}
	defer tx.Rollback(ctx)

	batch := &pgx.Batch{}
	for _, rec := range records {
		batch.Queue(insertItemQuery,
			categoryID, rec.Artist, rec.Title, rec.Label, rec.Format, rec.Price, rec.ItemURL, rec.ThumbURL)
	}
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return persistenceError("insert items", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return persistenceError("insert items", err)
	}
	return nil
}

// ListCatalog returns every item with its category name, ordered by item id.
func (r *CatalogRepoImpl) ListCatalog(ctx context.Context) ([]entity.CatalogRow, error) {
	rows, err := r.db.Query(ctx, listCatalogQuery)
	if err != nil {
		return nil, persistenceError("list catalog", err)
	}
	defer rows.Close()

	var catalog []entity.CatalogRow
	for rows.Next() {
		var (
			row                                    entity.CatalogRow
			artist, title, label, category, format *string
			price, itemURL, thumbURL               *string
		)
		if err := rows.Scan(&row.ID, &artist, &title, &label, &category, &format, &price, &itemURL, &thumbURL); err != nil {
			return nil, persistenceError("list catalog", err)
		}
		row.Artist = deref(artist)
		row.Title = deref(title)
		row.Label = deref(label)
		row.Category = deref(category)
		row.Format = deref(format)
		row.Price = deref(price)
		row.ItemURL = deref(itemURL)
		row.ThumbURL = deref(thumbURL)
		catalog = append(catalog, row)
	}
	if err := rows.Err(); err != nil {
		return nil, persistenceError("list catalog", err)
	}
	return catalog, nil
}

// IsForeignKeyViolation reports whether err was caused by a foreign key constraint.
func IsForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == foreignKeyViolation
}

func persistenceError(op string, err error) error {
	return &entity.PersistenceError{Op: op, Err: err}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
