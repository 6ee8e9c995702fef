package scraper

import (
	"sort"
	"strings"
)

// ItemsPerPage is the number of listings clone.nl shows on one genre page.
const ItemsPerPage = 50

var supportedGenres = map[string]struct{}{}

func init() {
	for _, g := range []string{
		"acid", "africa", "ambient", "bass", "belgium", "berlin", "boogie", "brazil",
		"breakbeat", "breaks", "chicago", "classical", "detroit", "disco",
		"drum & bass", "drum and bass", "dub", "dubstep", "ebm", "electro",
		"electronix", "folk", "funk", "hardcore", "hip hop", "house", "indie",
		"italo", "italy", "jazz", "jungle", "library", "merchandise", "minimal",
		"new york", "nordic", "outernational", "pop", "rave", "reggae", "rock",
		"soul", "soul jazz", "soundtrack", "staff pick of the week", "techno",
		"ticket", "trance", "tribal", "vintage", "wave",
	} {
		supportedGenres[g] = struct{}{}
	}
}

// NormalizeGenre lower-cases and trims a genre name as the shop spells it in URLs.
func NormalizeGenre(genre string) string {
	return strings.ToLower(strings.TrimSpace(genre))
}

// IsSupportedGenre reports whether the shop lists the (normalized) genre.
func IsSupportedGenre(genre string) bool {
	_, ok := supportedGenres[NormalizeGenre(genre)]
	return ok
}

// SupportedGenres returns the known genres in alphabetical order.
func SupportedGenres() []string {
	out := make([]string, 0, len(supportedGenres))
	for g := range supportedGenres {
		out = append(out, g)
	}
	sort.Strings(out)
	return out
}

// PagesFor returns how many listing pages hold at least target items.
// Targets below one page are raised to a full page.
func PagesFor(target int) int {
	if target < ItemsPerPage {
		target = ItemsPerPage
	}
	return 1 + (target-1)/ItemsPerPage
}
