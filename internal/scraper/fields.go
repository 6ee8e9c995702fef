package scraper

import "github.com/user/catalog-scraper/internal/entity"

// PageFields holds the seven index-aligned sequences extracted from one or
// more listing pages. Position i across all slices describes the same listing.
type PageFields struct {
	Artists   []string
	Titles    []string
	Labels    []string
	Formats   []string
	Prices    []string
	ItemURLs  []string
	ThumbURLs []string
}

// lengths reports the length of every sequence keyed by field name.
func (f *PageFields) lengths() map[string]int {
	return map[string]int{
		"artist":    len(f.Artists),
		"title":     len(f.Titles),
		"label":     len(f.Labels),
		"format":    len(f.Formats),
		"price":     len(f.Prices),
		"item_url":  len(f.ItemURLs),
		"thumb_url": len(f.ThumbURLs),
	}
}

func (f *PageFields) aligned() bool {
	n := len(f.Artists)
	for _, l := range f.lengths() {
		if l != n {
			return false
		}
	}
	return true
}

// Len returns the number of listings. Only meaningful for aligned fields.
func (f *PageFields) Len() int {
	return len(f.Artists)
}

// Append concatenates other after f, preserving order.
func (f *PageFields) Append(other *PageFields) {
	f.Artists = append(f.Artists, other.Artists...)
	f.Titles = append(f.Titles, other.Titles...)
	f.Labels = append(f.Labels, other.Labels...)
	f.Formats = append(f.Formats, other.Formats...)
	f.Prices = append(f.Prices, other.Prices...)
	f.ItemURLs = append(f.ItemURLs, other.ItemURLs...)
	f.ThumbURLs = append(f.ThumbURLs, other.ThumbURLs...)
}

// Records zips the sequences into listing records.
func (f *PageFields) Records() []entity.ListingRecord {
	records := make([]entity.ListingRecord, 0, f.Len())
	for i := range f.Artists {
		records = append(records, entity.ListingRecord{
			Artist:   f.Artists[i],
			Title:    f.Titles[i],
			Label:    f.Labels[i],
			Format:   f.Formats[i],
			Price:    f.Prices[i],
			ItemURL:  f.ItemURLs[i],
			ThumbURL: f.ThumbURLs[i],
		})
	}
	return records
}
