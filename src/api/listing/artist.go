package listing

import (
	"regexp"
	"strings"
)

var (
	// byMarkerRE captures the text after a "by <artist>" marker in a title
	byMarkerRE = regexp.MustCompile(`(?i)\bby\s+(.+)`)
	// leadingNonLetterRE strips list numbering, emoji and similar title prefixes
	leadingNonLetterRE = regexp.MustCompile(`^[^\p{L}]+`)
	// trailingNonNameRE strips punctuation a name never ends with ("." kept for initials)
	trailingNonNameRE = regexp.MustCompile(`[^\p{L}.]+$`)
)

// InferArtist guesses the artist from a resolved listing title. Candidates
// are tried in order: the text before the first quotation mark, the text
// after a "by " marker, the text before a leading separator, then the whole
// title. The first candidate that sanitizes into a plausible name wins;
// otherwise the sentinel is returned. Running the inference on an already
// resolved artist string returns it unchanged.
func InferArtist(title string) string {
	for _, candidate := range artistCandidates(title) {
		if name, ok := plausibleName(candidate); ok {
			return name
		}
	}
	return UnknownArtist
}

func artistCandidates(title string) []string {
	var out []string
	if i := strings.IndexAny(title, `"“”`); i > 0 {
		prefix := title[:i]
		// A quote prefix can still carry its own "by " marker ("Painted by
		// John Smith "Untitled""). Resolve the marker now, or a second pass
		// over the result would split it again.
		if after, ok := afterByMarker(prefix); ok {
			prefix = after
		}
		out = append(out, prefix)
	}
	if after, ok := afterByMarker(title); ok {
		out = append(out, after)
	}
	if i := strings.IndexAny(title, "-|:"); i > 0 {
		out = append(out, title[:i])
	}
	return append(out, title)
}

func afterByMarker(s string) (string, bool) {
	m := byMarkerRE.FindStringSubmatch(s)
	if m == nil {
		return "", false
	}
	after := m[1]
	if i := strings.IndexAny(after, "-|:("); i > 0 {
		after = after[:i]
	}
	return after, true
}

// plausibleName sanitizes a candidate and reports whether it reads like a
// person's name: two to five words, no digits.
func plausibleName(candidate string) (string, bool) {
	name := sanitizeName(candidate)
	words := strings.Fields(name)
	if len(words) < 2 || len(words) > 5 {
		return "", false
	}
	if strings.ContainsAny(name, "0123456789") {
		return "", false
	}
	return name, true
}

func sanitizeName(s string) string {
	s = leadingNonLetterRE.ReplaceAllString(s, "")
	s = trailingNonNameRE.ReplaceAllString(s, "")
	return strings.Join(strings.Fields(s), " ")
}
