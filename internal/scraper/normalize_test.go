package scraper

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/user/catalog-scraper/internal/entity"
)

func TestNormalizePrice(t *testing.T) {
	cases := map[string]string{
		" € 12,50 ":    "12.50",
		"€ 1.299,00":   "1299.00",
		"€\u00a08,99":  "8.99",
		"\n  € 7,00\n": "7.00",
		"€ 1.299":      "1299",
		"€ 12.345.678": "12345678",
		"€ 24":         "24",
		"remind":       entity.AbsentPrice,
		"Remind me":    entity.AbsentPrice,
		"15.00":        "15.00",
		"1.2995":       "1.2995",
	}
	for in, want := range cases {
		assert.Equal(t, want, NormalizePrice(in), "input %q", in)
	}
}

func TestCleanTextDoublesQuotes(t *testing.T) {
	assert.Equal(t, "Rock''n''Roll", cleanText("  Rock'n'Roll \n"))
	assert.Equal(t, "Plain", cleanText("Plain"))
}
