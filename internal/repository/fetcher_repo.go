package repository

import (
	"context"

	"github.com/PuerkitoBio/goquery"
)

// PageFetcher defines the contract for retrieving one genre listing page.
type PageFetcher interface {
	// FetchPage builds the listing URL for genre and page, retrieves it and
	// returns the parsed document. Transport failures are *entity.TransportError.
	FetchPage(ctx context.Context, genre string, page int) (*goquery.Document, error)
}

// PageSource defines the raw transport used by a PageFetcher.
type PageSource interface {
	// Get retrieves url and returns the response body. Failures are *entity.TransportError.
	Get(ctx context.Context, url string) ([]byte, error)
}
