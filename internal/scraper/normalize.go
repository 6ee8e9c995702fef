package scraper

import (
	"regexp"
	"strings"

	"github.com/user/catalog-scraper/internal/entity"
)

// wholeEuros matches a price without decimals whose dots group thousands, e.g. "1.299".
var wholeEuros = regexp.MustCompile(`^\d{1,3}(\.\d{3})+$`)

// cleanText trims whitespace and doubles single quotes, the storage form the
// catalog has always used for free-text columns.
func cleanText(s string) string {
	return strings.ReplaceAll(strings.TrimSpace(s), "'", "''")
}

// NormalizePrice turns shop price text such as " € 12,50 " into "12.50".
// A "remind me" button in place of a price yields entity.AbsentPrice.
func NormalizePrice(s string) string {
	if strings.Contains(strings.ToLower(s), "remind") {
		return entity.AbsentPrice
	}
	s = strings.Join(strings.Fields(strings.ReplaceAll(s, "€", "")), "")
	switch {
	case strings.Contains(s, ","):
		// euro notation: '.' groups thousands, ',' marks decimals
		s = strings.ReplaceAll(s, ".", "")
		s = strings.ReplaceAll(s, ",", ".")
	case wholeEuros.MatchString(s):
		s = strings.ReplaceAll(s, ".", "")
	}
	return s
}
