package utils

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenreListingURL(t *testing.T) {
	assert.Equal(t,
		"https://clone.nl/instock/genre/techno?sort=id&order=desc&page=3",
		GenreListingURL("https://clone.nl/", "techno", 3))
	assert.Equal(t,
		"https://clone.nl/instock/genre/hip%20hop?sort=id&order=desc&page=1",
		GenreListingURL("https://clone.nl", "hip hop", 1))
}

func TestToAbsoluteURL(t *testing.T) {
	base, err := url.Parse("https://clone.nl/")
	require.NoError(t, err)

	abs, err := ToAbsoluteURL(base, "item71234.html")
	require.NoError(t, err)
	assert.Equal(t, "https://clone.nl/item71234.html", abs)

	abs, err = ToAbsoluteURL(base, "https://cdn.clone.nl/x.jpg")
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.clone.nl/x.jpg", abs)
}

func TestHashURLIsStable(t *testing.T) {
	a := HashURL("https://clone.nl/instock/genre/house?page=1")
	assert.Len(t, a, 64)
	assert.Equal(t, a, HashURL("https://clone.nl/instock/genre/house?page=1"))
	assert.NotEqual(t, a, HashURL("https://clone.nl/instock/genre/house?page=2"))
}
