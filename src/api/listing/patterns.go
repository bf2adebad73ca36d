package listing

import "regexp"

var (
	// jsonPriceRE captures a JSON-ish "price" field in raw page source
	jsonPriceRE = regexp.MustCompile(`"price"\s*:\s*"?(\d+(?:\.\d+)?)"?`)
	// dollarPriceRE captures a dollar-sign amount, with optional thousands separators
	dollarPriceRE = regexp.MustCompile(`\$\s?(\d{1,3}(?:,\d{3})+(?:\.\d{1,2})?|\d+(?:\.\d{1,2})?)`)
	// imageURLRE captures URLs ending in a common image extension, query string allowed
	imageURLRE = regexp.MustCompile(`(?i)https?://[^\s"'<>\\]+\.(?:jpe?g|png|webp)(?:\?[^\s"'<>\\]*)?`)
	// dimensionRE captures "NN x NN [x NN] unit" artwork dimensions
	dimensionRE = regexp.MustCompile(`(?i)(\d+(?:\.\d+)?)\s*[x×]\s*(\d+(?:\.\d+)?)(?:\s*[x×]\s*(\d+(?:\.\d+)?))?\s*(cm|mm|inches|inch|in|")`)
	// ebaySuffixRE matches the trailing "| ... eBay" marketplace suffix on page titles
	ebaySuffixRE = regexp.MustCompile(`(?i)\s*\|.*ebay.*$`)
)
