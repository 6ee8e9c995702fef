package entity

// AbsentPrice is stored in place of a price when the shop shows a
// "remind me" button instead of an add-to-cart price.
const AbsentPrice = "None"

// ListingRecord is one catalog entry extracted from a genre listing page.
type ListingRecord struct {
	Artist   string
	Title    string
	Label    string
	Format   string
	Price    string
	ItemURL  string
	ThumbURL string
}
