package listing

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"golang.org/x/net/html"
)

var (
	textPolicy = bluemonday.StrictPolicy()
)

// pageData holds everything the DOM walk pulled out of one document,
// before the layered priority rules are applied.
type pageData struct {
	structuredTitle    string
	structuredPrice    float64
	structuredHasPrice bool
	structuredCurrency string
	structuredImages   []string
	ogTitle            string
	ogImage            string
	metaCurrency       string
	docTitle           string
}

// ExtractFacts derives structured listing facts from raw page HTML.
// Each field is resolved "first source wins": structured data blocks,
// then meta tags, then the document title, then raw-text pattern scans.
func ExtractFacts(raw string) Facts {
	pd := collectPageData(raw)

	title := cleanText(firstNonEmpty(
		pd.structuredTitle,
		pd.ogTitle,
		stripMarketplaceSuffix(pd.docTitle),
	))
	if title == "" {
		title = FallbackTitle
	}

	price, hasPrice := firstPrice(
		func() (float64, bool) { return pd.structuredPrice, pd.structuredHasPrice },
		func() (float64, bool) { return scanJSONPrice(raw) },
		func() (float64, bool) { return scanDollarPrice(raw) },
	)

	currency := strings.ToUpper(firstNonEmpty(pd.structuredCurrency, pd.metaCurrency, DefaultCurrency))

	dims := ExtractDimensions(raw)
	if dims == "" {
		dims = NoDimensions
	}

	return Facts{
		Title:      title,
		Artist:     InferArtist(title),
		Price:      price,
		HasPrice:   hasPrice,
		Currency:   currency,
		Dimensions: dims,
		ImageURLs:  harvestImages(pd, raw),
	}
}

// firstNonEmpty is the "first source wins" reducer for string fields.
func firstNonEmpty(candidates ...string) string {
	for _, c := range candidates {
		if strings.TrimSpace(c) != "" {
			return strings.TrimSpace(c)
		}
	}
	return ""
}

func firstPrice(sources ...func() (float64, bool)) (float64, bool) {
	for _, src := range sources {
		if p, ok := src(); ok {
			return p, true
		}
	}
	return 0, false
}

// cleanText strips any markup and entities left inside an extracted string
// and collapses runs of whitespace.
func cleanText(s string) string {
	s = html.UnescapeString(textPolicy.Sanitize(s))
	return strings.Join(strings.Fields(s), " ")
}

func stripMarketplaceSuffix(title string) string {
	return strings.TrimSpace(ebaySuffixRE.ReplaceAllString(title, ""))
}

func collectPageData(raw string) pageData {
	var pd pageData
	doc, err := html.Parse(strings.NewReader(raw))
	if err != nil {
		return pd
	}
	walkNodes(doc, &pd)
	return pd
}

func walkNodes(n *html.Node, pd *pageData) {
	if n.Type == html.ElementNode {
		switch n.Data {
		case "script":
			if attrVal(n, "type") == "application/ld+json" {
				parseStructuredBlock(nodeText(n), pd)
			}
		case "meta":
			readMetaTag(n, pd)
		case "title":
			if pd.docTitle == "" {
				pd.docTitle = nodeText(n)
			}
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walkNodes(c, pd)
	}
}

func readMetaTag(n *html.Node, pd *pageData) {
	key := attrVal(n, "property")
	if key == "" {
		key = attrVal(n, "name")
	}
	content := attrVal(n, "content")
	if content == "" {
		return
	}
	switch key {
	case "og:title":
		if pd.ogTitle == "" {
			pd.ogTitle = content
		}
	case "og:image":
		if pd.ogImage == "" {
			pd.ogImage = content
		}
	case "og:price:currency", "product:price:currency":
		if pd.metaCurrency == "" {
			pd.metaCurrency = content
		}
	}
	if attrVal(n, "itemprop") == "priceCurrency" && pd.metaCurrency == "" {
		pd.metaCurrency = content
	}
}

func attrVal(n *html.Node, name string) string {
	for _, a := range n.Attr {
		if strings.EqualFold(a.Key, name) {
			return strings.TrimSpace(a.Val)
		}
	}
	return ""
}

func nodeText(n *html.Node) string {
	var b strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.TextNode {
			b.WriteString(c.Data)
		}
	}
	return strings.TrimSpace(b.String())
}

// parseStructuredBlock reads one ld+json block. Blocks that fail to parse
// are skipped; a bad block never aborts extraction of the rest of the page.
func parseStructuredBlock(block string, pd *pageData) {
	var v any
	if err := json.Unmarshal([]byte(block), &v); err != nil {
		return
	}
	applyStructuredValue(v, pd)
}

func applyStructuredValue(v any, pd *pageData) {
	switch t := v.(type) {
	case []any:
		for _, item := range t {
			applyStructuredValue(item, pd)
		}
	case map[string]any:
		if graph, ok := t["@graph"].([]any); ok {
			applyStructuredValue(graph, pd)
		}
		if name, ok := t["name"].(string); ok && pd.structuredTitle == "" {
			pd.structuredTitle = name
		}
		if imgs := stringOrStrings(t["image"]); len(imgs) > 0 && len(pd.structuredImages) == 0 {
			pd.structuredImages = imgs
		}
		applyOffers(t["offers"], pd)
	}
}

func applyOffers(v any, pd *pageData) {
	switch t := v.(type) {
	case []any:
		for _, item := range t {
			applyOffers(item, pd)
		}
	case map[string]any:
		if !pd.structuredHasPrice {
			if p, ok := coercePrice(t["price"]); ok {
				pd.structuredPrice = p
				pd.structuredHasPrice = true
			}
		}
		if cur, ok := t["priceCurrency"].(string); ok && pd.structuredCurrency == "" {
			pd.structuredCurrency = cur
		}
	}
}

// coercePrice accepts the number-or-string price shapes seen in offer blocks.
func coercePrice(v any) (float64, bool) {
	switch t := v.(type) {
	case float64:
		return t, true
	case string:
		p, err := strconv.ParseFloat(strings.ReplaceAll(strings.TrimSpace(t), ",", ""), 64)
		if err != nil {
			return 0, false
		}
		return p, true
	}
	return 0, false
}

func stringOrStrings(v any) []string {
	switch t := v.(type) {
	case string:
		if strings.TrimSpace(t) != "" {
			return []string{strings.TrimSpace(t)}
		}
	case []any:
		var out []string
		for _, item := range t {
			if s, ok := item.(string); ok && strings.TrimSpace(s) != "" {
				out = append(out, strings.TrimSpace(s))
			}
		}
		return out
	}
	return nil
}

func scanJSONPrice(raw string) (float64, bool) {
	m := jsonPriceRE.FindStringSubmatch(raw)
	if m == nil {
		return 0, false
	}
	p, err := strconv.ParseFloat(m[1], 64)
	return p, err == nil
}

func scanDollarPrice(raw string) (float64, bool) {
	m := dollarPriceRE.FindStringSubmatch(raw)
	if m == nil {
		return 0, false
	}
	p, err := strconv.ParseFloat(strings.ReplaceAll(m[1], ",", ""), 64)
	return p, err == nil
}

// harvestImages merges structured images, og:image and raw-text scanned
// image URLs, deduplicated in first-seen order and capped at maxImages.
func harvestImages(pd pageData, raw string) []string {
	seen := make(map[string]struct{})
	out := make([]string, 0, maxImages)

	add := func(u string) {
		u = strings.TrimSpace(u)
		if u == "" || len(out) >= maxImages {
			return
		}
		if _, dup := seen[u]; dup {
			return
		}
		seen[u] = struct{}{}
		out = append(out, u)
	}

	for _, u := range pd.structuredImages {
		add(u)
	}
	add(pd.ogImage)
	for _, u := range imageURLRE.FindAllString(raw, -1) {
		add(u)
	}
	return out
}

// ExtractDimensions returns a normalized "W x H [x D] unit" string, or ""
// when the page carries no recognizable dimension pattern.
func ExtractDimensions(raw string) string {
	m := dimensionRE.FindStringSubmatch(raw)
	if m == nil {
		return ""
	}
	parts := []string{m[1], m[2]}
	if m[3] != "" {
		parts = append(parts, m[3])
	}
	return strings.Join(parts, " x ") + " " + normalizeUnit(m[4])
}

func normalizeUnit(unit string) string {
	switch strings.ToLower(unit) {
	case `"`, "inches", "inch", "in":
		return "in"
	default:
		return strings.ToLower(unit)
	}
}
