package repository

import (
	"context"
	"time"
)

// PageCache stores raw listing page bodies keyed by URL.
type PageCache interface {
	// Get returns the cached body and true, or false on a miss.
	Get(ctx context.Context, url string) ([]byte, bool, error)
	// Set stores body for url with the given expiry.
	Set(ctx context.Context, url string, body []byte, expiry time.Duration) error
}
