package entity

import (
	"errors"
	"fmt"
	"strings"
)

// TransportKind classifies a page fetch failure.
type TransportKind string

const (
	// TransportTimeout is transient; the operator may retry the run.
	TransportTimeout TransportKind = "timeout"
	// TransportRedirectLoop points at a configuration problem (bad base URL, redirect loop).
	TransportRedirectLoop TransportKind = "too_many_redirects"
	// TransportOther is any other network or HTTP failure and is treated as fatal.
	TransportOther TransportKind = "other"
)

// TransportError is returned by page fetchers.
type TransportError struct {
	Kind       TransportKind
	URL        string
	StatusCode int // set when the server answered with a non-2xx status
	Err        error
}

func (e *TransportError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("fetch %s: %s: status %d", e.URL, e.Kind, e.StatusCode)
	}
	return fmt.Sprintf("fetch %s: %s: %v", e.URL, e.Kind, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// Retryable reports whether running again might succeed without changing configuration.
func (e *TransportError) Retryable() bool {
	return e.Kind == TransportTimeout
}

// IsTimeout reports whether err is a TransportError caused by a timeout.
func IsTimeout(err error) bool {
	var te *TransportError
	return errors.As(err, &te) && te.Kind == TransportTimeout
}

// IsRedirectLoop reports whether err is a TransportError caused by too many redirects.
func IsRedirectLoop(err error) bool {
	var te *TransportError
	return errors.As(err, &te) && te.Kind == TransportRedirectLoop
}

// ListingFields names the aligned sequences extracted from a listing page, in record order.
var ListingFields = []string{"artist", "title", "label", "format", "price", "item_url", "thumb_url"}

// ExtractionMismatch means a page's field sequences have different lengths,
// i.e. the page layout does not match the selectors.
type ExtractionMismatch struct {
	PageURL string
	Lengths map[string]int
}

func (e *ExtractionMismatch) Error() string {
	parts := make([]string, 0, len(ListingFields))
	for _, f := range ListingFields {
		parts = append(parts, fmt.Sprintf("%s=%d", f, e.Lengths[f]))
	}
	return fmt.Sprintf("extract %s: field counts differ (%s)", e.PageURL, strings.Join(parts, " "))
}

// InvalidGenre is returned for a genre the shop does not list.
type InvalidGenre struct {
	Genre string
}

func (e *InvalidGenre) Error() string {
	return fmt.Sprintf("genre %q is not available at this shop", e.Genre)
}

// PersistenceError wraps any database failure with the operation that caused it.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("catalog store: %s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}
