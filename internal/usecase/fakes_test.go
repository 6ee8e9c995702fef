package usecase

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/PuerkitoBio/goquery"
	"github.com/user/catalog-scraper/internal/entity"
)

const testSiteBase = "https://clone.nl"

// listingPage renders n listings in the shop's markup, titled "<tag>-<i>".
func listingPage(tag string, n int) string {
	var b strings.Builder
	b.WriteString("<html><body>")
	for i := 0; i < n; i++ {
		fmt.Fprintf(&b, `<div class="musicrelease">
<img class="img-responsive" src="/images/%[1]s-%[2]d.jpg">
<div class="description">
<h2><a href="artist/x">Artist %[1]s-%[2]d</a></h2>
<h3><a href="item-%[1]s-%[2]d.html">%[1]s-%[2]d</a></h3>
<span itemprop="recordLabel">Label</span>
<span itemprop="material">12"</span>
</div>
<a class="addtocart" href="#">€ 9,99</a>
</div>`, tag, i)
	}
	b.WriteString("</body></html>")
	return b.String()
}

type fakeFetcher struct {
	mu     sync.Mutex
	pages  map[int]string
	errs   map[int]error
	calls  []int
	genres []string
}

// newFakeFetcher serves full pages tagged "p<page>" unless overridden.
func newFakeFetcher() *fakeFetcher {
	return &fakeFetcher{pages: map[int]string{}, errs: map[int]error{}}
}

func (f *fakeFetcher) FetchPage(ctx context.Context, genre string, page int) (*goquery.Document, error) {
	f.mu.Lock()
	f.calls = append(f.calls, page)
	f.genres = append(f.genres, genre)
	f.mu.Unlock()

	if err, ok := f.errs[page]; ok {
		return nil, err
	}
	html, ok := f.pages[page]
	if !ok {
		html = listingPage(fmt.Sprintf("p%d", page), 50)
	}
	return goquery.NewDocumentFromReader(strings.NewReader(html))
}

type fakeCatalog struct {
	ops        []string
	categories map[string]entity.CategoryID
	items      []entity.CatalogRow
	failOn     map[string]error
}

func newFakeCatalog() *fakeCatalog {
	return &fakeCatalog{categories: map[string]entity.CategoryID{}, failOn: map[string]error{}}
}

func (c *fakeCatalog) fail(op string) error {
	if err, ok := c.failOn[op]; ok {
		return &entity.PersistenceError{Op: op, Err: err}
	}
	return nil
}

func (c *fakeCatalog) CreateSchema(ctx context.Context) error {
	c.ops = append(c.ops, "create")
	return c.fail("create")
}

func (c *fakeCatalog) ResetSchema(ctx context.Context) error {
	c.ops = append(c.ops, "reset")
	if err := c.fail("reset"); err != nil {
		return err
	}
	c.categories = map[string]entity.CategoryID{}
	c.items = nil
	return nil
}

func (c *fakeCatalog) UpsertCategory(ctx context.Context, name string) (entity.CategoryID, error) {
	c.ops = append(c.ops, "upsert "+name)
	if err := c.fail("upsert"); err != nil {
		return 0, err
	}
	if id, ok := c.categories[name]; ok {
		return id, nil
	}
	id := entity.CategoryID(len(c.categories) + 1)
	c.categories[name] = id
	return id, nil
}

func (c *fakeCatalog) InsertItems(ctx context.Context, records []entity.ListingRecord, categoryID entity.CategoryID) error {
	c.ops = append(c.ops, fmt.Sprintf("insert %d", len(records)))
	if err := c.fail("insert"); err != nil {
		return err
	}
	var category string
	for name, id := range c.categories {
		if id == categoryID {
			category = name
		}
	}
	for _, r := range records {
		c.items = append(c.items, entity.CatalogRow{
			ID:       int64(len(c.items) + 1),
			Artist:   r.Artist,
			Title:    r.Title,
			Label:    r.Label,
			Category: category,
			Format:   r.Format,
			Price:    r.Price,
			ItemURL:  r.ItemURL,
			ThumbURL: r.ThumbURL,
		})
	}
	return nil
}

func (c *fakeCatalog) ListCatalog(ctx context.Context) ([]entity.CatalogRow, error) {
	c.ops = append(c.ops, "list")
	if err := c.fail("list"); err != nil {
		return nil, err
	}
	return c.items, nil
}
