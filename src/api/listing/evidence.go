package listing

import (
	"regexp"
	"strings"
)

// CheckValue is the three-way verdict of a single evidence check.
type CheckValue string

const (
	Good            CheckValue = "Good"
	NeedsReview     CheckValue = "Needs review"
	MissingEvidence CheckValue = "Missing evidence"
)

// Check is one heuristic test within an evidence bucket.
type Check struct {
	Label  string     `json:"label"`
	Value  CheckValue `json:"value"`
	Detail string     `json:"detail"`
}

// Bucket is one weighted evidence category with its checks and derived score.
type Bucket struct {
	Key         string     `json:"key"`
	Label       string     `json:"label"`
	Weight      int        `json:"weight"`
	Score       int        `json:"score"`
	Status      CheckValue `json:"status"`
	Explanation string     `json:"explanation"`
	Checks      []Check    `json:"checks"`
}

// Bucket weights, fixed. They sum to 100.
const (
	weightAuthenticity = 35
	weightProvenance   = 20
	weightPrice        = 20
	weightRisk         = 15
	weightVisual       = 10
)

// Keyword sets scanned against the lowercased full raw text.
var (
	coaKeywords = []string{
		"certificate of authenticity", "certificate included", "authenticated by",
		"comes with certificate",
	}
	// coaAbbrevRE matches the bare abbreviation without tripping on "coat" etc.
	coaAbbrevRE = regexp.MustCompile(`\bcoa\b`)

	signatureKeywords = []string{
		"signed", "signature", "hand signed",
	}
	editionKeywords = []string{
		"limited edition", "numbered", "edition of", "artist proof", "artist's proof",
	}
	provenanceKeywords = []string{
		"provenance", "previously owned", "from the collection", "acquired from",
		"estate of", "gallery label", "auction record",
	}
	dateContextKeywords = []string{
		"released", "release date", "published", "circa", "dated", "printed in",
		"created in",
	}
	comparisonKeywords = []string{
		"market price", "market value", "comparable", "retail price", "sold for",
		"average price", "last sale", "resale value",
	}
	returnPolicyKeywords = []string{
		"return policy", "returns accepted", "money back", "refund",
	}
	insuranceKeywords = []string{
		"insured", "shipping insurance", "insured shipping",
	}
	protectionKeywords = []string{
		"buyer protection", "purchase protection", "authenticity guarantee",
		"money back guarantee",
	}
	sellerKeywords = []string{
		"top rated seller", "top-rated seller", "positive feedback", "trusted seller",
		"power seller", "5-star",
	}
	documentationKeywords = []string{
		"receipt", "invoice", "proof of purchase", "documentation",
	}
)

func containsAny(text string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(text, k) {
			return true
		}
	}
	return false
}

// Named predicates, one per heuristic, all over lowercased raw text.

func hasCOALanguage(text string) bool {
	return containsAny(text, coaKeywords) || coaAbbrevRE.MatchString(text)
}

func hasSignatureLanguage(text string) bool { return containsAny(text, signatureKeywords) }

func hasEditionLanguage(text string) bool { return containsAny(text, editionKeywords) }

func hasProvenanceLanguage(text string) bool { return containsAny(text, provenanceKeywords) }

func hasDateContextLanguage(text string) bool { return containsAny(text, dateContextKeywords) }

func hasComparisonLanguage(text string) bool { return containsAny(text, comparisonKeywords) }

func hasReturnPolicyLanguage(text string) bool { return containsAny(text, returnPolicyKeywords) }

func hasInsuranceLanguage(text string) bool { return containsAny(text, insuranceKeywords) }

func hasProtectionLanguage(text string) bool { return containsAny(text, protectionKeywords) }

func hasSellerLanguage(text string) bool { return containsAny(text, sellerKeywords) }

func hasDocumentationLanguage(text string) bool { return containsAny(text, documentationKeywords) }

func presenceCheck(label string, present bool, foundDetail, missingDetail string) Check {
	if present {
		return Check{Label: label, Value: Good, Detail: foundDetail}
	}
	return Check{Label: label, Value: MissingEvidence, Detail: missingDetail}
}

// buildBuckets evaluates all five evidence buckets against the lowercased
// raw listing text and the extracted facts. Bucket order is fixed; signal
// summaries depend on it.
func buildBuckets(text string, facts Facts) []Bucket {
	return []Bucket{
		buildAuthenticity(text),
		buildProvenance(text),
		buildPrice(text, facts),
		buildRisk(text),
		buildVisual(text, facts),
	}
}

func buildAuthenticity(text string) Bucket {
	return finishBucket("authenticity", "Authenticity", weightAuthenticity, []Check{
		presenceCheck("Certificate of authenticity", hasCOALanguage(text),
			"Listing mentions a certificate of authenticity",
			"No certificate of authenticity mentioned"),
		presenceCheck("Signature", hasSignatureLanguage(text),
			"Listing mentions a signature",
			"No signature mentioned"),
		presenceCheck("Edition / numbering", hasEditionLanguage(text),
			"Listing mentions edition or numbering details",
			"No edition or numbering details"),
	})
}

func buildProvenance(text string) Bucket {
	return finishBucket("provenance", "Provenance", weightProvenance, []Check{
		presenceCheck("Ownership history", hasProvenanceLanguage(text),
			"Listing references prior ownership or sale history",
			"No ownership or sale history given"),
		presenceCheck("Date context", hasDateContextLanguage(text),
			"Listing gives release or creation date context",
			"No release or creation date context"),
	})
}

func buildPrice(text string, facts Facts) Bucket {
	comparison := hasComparisonLanguage(text)

	// Percentile position stays at Needs review at best until real
	// market-comparable data is wired in.
	percentile := Check{
		Label:  "Percentile position",
		Value:  MissingEvidence,
		Detail: "Not enough data to place the price against the market",
	}
	if facts.HasPrice && comparison {
		percentile.Value = NeedsReview
		percentile.Detail = "Price and market references present, position unverified"
	}

	return finishBucket("price", "Price", weightPrice, []Check{
		presenceCheck("Listed price", facts.HasPrice,
			"A concrete asking price was found",
			"No concrete asking price found"),
		presenceCheck("Market comparison", comparison,
			"Listing references market or comparable prices",
			"No market or comparable price references"),
		percentile,
	})
}

func buildRisk(text string) Bucket {
	return finishBucket("risk", "Risk", weightRisk, []Check{
		presenceCheck("Return policy", hasReturnPolicyLanguage(text),
			"Listing states a return policy",
			"No return policy stated"),
		presenceCheck("Shipping insurance", hasInsuranceLanguage(text),
			"Listing mentions insured shipping",
			"No shipping insurance mentioned"),
		presenceCheck("Buyer protection", hasProtectionLanguage(text),
			"Listing covered by a buyer protection program",
			"No buyer protection mentioned"),
		presenceCheck("Seller reliability", hasSellerLanguage(text),
			"Listing signals an established seller",
			"No seller reliability signals"),
	})
}

func buildVisual(text string, facts Facts) Bucket {
	return finishBucket("visual", "Visual", weightVisual, []Check{
		presenceCheck("Photos", len(facts.ImageURLs) >= 1,
			"Listing includes at least one photo",
			"No photos found"),
		presenceCheck("Detail shots", len(facts.ImageURLs) >= 2,
			"Listing includes multiple photos",
			"No close-up or detail shots"),
		presenceCheck("Paper trail", hasDocumentationLanguage(text) || hasCOALanguage(text),
			"Listing references receipts or documentation",
			"No receipts or documentation referenced"),
	})
}
