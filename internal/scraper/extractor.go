package scraper

import (
	"fmt"
	"net/url"

	"github.com/PuerkitoBio/goquery"
	"github.com/user/catalog-scraper/internal/entity"
	"github.com/user/catalog-scraper/pkg/utils"
)

const (
	artistSelector = "div.description > h2 > a"
	titleSelector  = "div.description > h3 > a"
	labelSelector  = `span[itemprop="recordLabel"]`
	formatSelector = `span[itemprop="material"]`
	priceSelector  = "a.addtocart"
	thumbSelector  = "img.img-responsive"
)

// Extractor pulls listing fields out of a clone.nl genre page.
type Extractor struct {
	base *url.URL
}

// NewExtractor creates an Extractor resolving item links against siteBase.
func NewExtractor(siteBase string) (*Extractor, error) {
	base, err := url.Parse(siteBase)
	if err != nil {
		return nil, fmt.Errorf("parse site base %q: %w", siteBase, err)
	}
	if !base.IsAbs() {
		return nil, fmt.Errorf("site base %q is not an absolute URL", siteBase)
	}
	if base.Path == "" {
		base.Path = "/"
	}
	return &Extractor{base: base}, nil
}

// ExtractFields parses the seven field sequences of one page. It fails with
// *entity.ExtractionMismatch when the sequences are not the same length.
func (e *Extractor) ExtractFields(doc *goquery.Document, pageURL string) (*PageFields, error) {
	f := &PageFields{
		Artists:   texts(doc, artistSelector, cleanText),
		Titles:    texts(doc, titleSelector, cleanText),
		Labels:    texts(doc, labelSelector, cleanText),
		Formats:   texts(doc, formatSelector, cleanText),
		Prices:    texts(doc, priceSelector, NormalizePrice),
		ThumbURLs: attrs(doc, thumbSelector, "src"),
	}

	for _, href := range attrs(doc, titleSelector, "href") {
		abs, err := utils.ToAbsoluteURL(e.base, href)
		if err != nil {
			return nil, fmt.Errorf("extract %s: item link %q: %w", pageURL, href, err)
		}
		f.ItemURLs = append(f.ItemURLs, abs)
	}

	if !f.aligned() {
		return nil, &entity.ExtractionMismatch{PageURL: pageURL, Lengths: f.lengths()}
	}
	return f, nil
}

// Extract returns the listing records of one page.
func (e *Extractor) Extract(doc *goquery.Document, pageURL string) ([]entity.ListingRecord, error) {
	f, err := e.ExtractFields(doc, pageURL)
	if err != nil {
		return nil, err
	}
	return f.Records(), nil
}

func texts(doc *goquery.Document, selector string, clean func(string) string) []string {
	out := []string{}
	doc.Find(selector).Each(func(i int, s *goquery.Selection) {
		out = append(out, clean(s.Text()))
	})
	return out
}

// attrs collects attr from every match that carries it. Elements missing the
// attribute are skipped, which surfaces as a length mismatch.
func attrs(doc *goquery.Document, selector, attr string) []string {
	out := []string{}
	doc.Find(selector).Each(func(i int, s *goquery.Selection) {
		if v, ok := s.Attr(attr); ok {
			out = append(out, v)
		}
	})
	return out
}
