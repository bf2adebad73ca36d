package listing

// Sentinel values for fields the page never resolved.
const (
	FallbackTitle     = "Untitled listing"
	UnknownArtist     = "Unknown artist"
	NoDimensions      = "Not provided"
	DefaultCurrency   = "USD"
	MediumPlaceholder = "Not specified"
	YearPlaceholder   = "Unknown"
)

// maxImages caps how many harvested image URLs a snapshot carries.
const maxImages = 8

// Facts are the structured fields extracted from one listing page.
type Facts struct {
	Title      string
	Artist     string
	Price      float64
	HasPrice   bool
	Currency   string
	Dimensions string
	ImageURLs  []string
}

// ArtworkOverview is the artwork projection returned with each snapshot.
type ArtworkOverview struct {
	ImageURLs     []string `json:"imageUrls"`
	Artist        string   `json:"artist"`
	Title         string   `json:"title"`
	Dimensions    string   `json:"dimensions"`
	Price         *float64 `json:"price,omitempty"`
	Currency      string   `json:"currency"`
	Medium        string   `json:"medium"`
	YearOfRelease string   `json:"yearOfRelease"`
}

// Overview projects facts into the artwork overview shape.
func (f Facts) Overview() ArtworkOverview {
	var price *float64
	if f.HasPrice {
		p := f.Price
		price = &p
	}
	return ArtworkOverview{
		ImageURLs:     f.ImageURLs,
		Artist:        f.Artist,
		Title:         f.Title,
		Dimensions:    f.Dimensions,
		Price:         price,
		Currency:      f.Currency,
		Medium:        MediumPlaceholder,
		YearOfRelease: YearPlaceholder,
	}
}
