package listing

import (
	"strings"
	"testing"
)

func TestExtractFactsStructuredDataWins(t *testing.T) {
	raw := `<html><head>
		<title>Some Other Title | Art for sale | eBay</title>
		<script type="application/ld+json">
		{"@type":"Product","name":"Untitled Work","offers":{"price":"120.50","priceCurrency":"GBP"}}
		</script>
	</head><body>Buy now for $999.99</body></html>`

	facts := ExtractFacts(raw)
	if facts.Title != "Untitled Work" {
		t.Errorf("title = %q; want %q", facts.Title, "Untitled Work")
	}
	if !facts.HasPrice || facts.Price != 120.50 {
		t.Errorf("price = %.2f (has=%v); want 120.50", facts.Price, facts.HasPrice)
	}
	if facts.Currency != "GBP" {
		t.Errorf("currency = %q; want GBP", facts.Currency)
	}
}

func TestExtractFactsBadStructuredBlockSkipped(t *testing.T) {
	raw := `<html><head>
		<script type="application/ld+json">{not json at all</script>
		<script type="application/ld+json">{"name":"Second Block Work"}</script>
	</head></html>`

	facts := ExtractFacts(raw)
	if facts.Title != "Second Block Work" {
		t.Errorf("title = %q; want the valid block to win", facts.Title)
	}
}

func TestExtractFactsTitleFallbackChain(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"og title", `<head><meta property="og:title" content="OG Work"/><title>Doc Title</title></head>`, "OG Work"},
		{"doc title suffix stripped", `<head><title>Blue Nude Print | Art Prints | eBay</title></head>`, "Blue Nude Print"},
		{"no source", `<p>nothing here</p>`, FallbackTitle},
	}

	for _, tt := range tests {
		facts := ExtractFacts(tt.raw)
		if facts.Title != tt.want {
			t.Errorf("%s: title = %q; want %q", tt.name, facts.Title, tt.want)
		}
	}
}

func TestExtractFactsPriceFallbacks(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		want     float64
		hasPrice bool
	}{
		{"json price field", `<p>stuff "price": "249.99" more</p>`, 249.99, true},
		{"dollar pattern", `<p>Asking $1,250.00 or best offer</p>`, 1250, true},
		{"no price", `<p>inquire for pricing</p>`, 0, false},
	}

	for _, tt := range tests {
		facts := ExtractFacts(tt.raw)
		if facts.HasPrice != tt.hasPrice || (tt.hasPrice && facts.Price != tt.want) {
			t.Errorf("%s: price = %.2f (has=%v); want %.2f (has=%v)",
				tt.name, facts.Price, facts.HasPrice, tt.want, tt.hasPrice)
		}
	}
}

func TestHarvestImagesDedupesAndCaps(t *testing.T) {
	var b strings.Builder
	b.WriteString(`<meta property="og:image" content="https://cdn.example.com/a.jpg"/>`)
	// og:image repeated in the body plus nine more scanned URLs
	b.WriteString(`https://cdn.example.com/a.jpg `)
	for i := 0; i < 9; i++ {
		b.WriteString(`https://cdn.example.com/img`)
		b.WriteByte(byte('0' + i))
		b.WriteString(`.png `)
	}

	facts := ExtractFacts(b.String())
	if len(facts.ImageURLs) != maxImages {
		t.Fatalf("image count = %d; want %d", len(facts.ImageURLs), maxImages)
	}
	seen := make(map[string]struct{})
	for _, u := range facts.ImageURLs {
		if _, dup := seen[u]; dup {
			t.Errorf("duplicate image URL %q", u)
		}
		seen[u] = struct{}{}
	}
	if facts.ImageURLs[0] != "https://cdn.example.com/a.jpg" {
		t.Errorf("first image = %q; want the og:image first", facts.ImageURLs[0])
	}
}

func TestExtractDimensions(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"canvas measures 50 x 70 cm unframed", "50 x 70 cm"},
		{`print is 8 x 10"`, "8 x 10 in"},
		{"24 X 36 inches, gallery wrapped", "24 x 36 in"},
		{"30 x 40 x 2 cm deep frame", "30 x 40 x 2 cm"},
		{"no size given", ""},
	}

	for _, tt := range tests {
		if got := ExtractDimensions(tt.raw); got != tt.want {
			t.Errorf("ExtractDimensions(%q) = %q; want %q", tt.raw, got, tt.want)
		}
	}
}

func TestExtractFactsDimensionsSentinel(t *testing.T) {
	facts := ExtractFacts("<p>no measurements anywhere</p>")
	if facts.Dimensions != NoDimensions {
		t.Errorf("dimensions = %q; want sentinel %q", facts.Dimensions, NoDimensions)
	}
}
