package main

import (
	"regexp"
	"strings"
)

// Runes treated as quote marks by the quote passes.
const quoteRunes = "\"“”‘’„‟'«»"

func isQuoteRune(r rune) bool {
	return strings.ContainsRune(quoteRunes, r)
}

var quotePairPatterns = []struct {
	re   *regexp.Regexp
	repl string
}{
	{regexp.MustCompile(`""(.*?)""`), "«$1»"},
	{regexp.MustCompile(`''(.*?)''`), "«$1»"},
	{regexp.MustCompile(`"(.*?)"`), "«$1»"},
	{regexp.MustCompile(`“(.*?)”`), "«$1»"},
	{regexp.MustCompile(`‘(.*?)’`), "«$1»"},
	{regexp.MustCompile(`»(.*?)«`), "«$1»"},
	{regexp.MustCompile(`»(.*?)»`), "«$1»"},
	{regexp.MustCompile(`«(.*?)»`), "«$1»"},
}

// unifyQuotePairs rewrites matched quote pairs of any style into «».
func unifyQuotePairs(s string) string {
	for _, p := range quotePairPatterns {
		s = p.re.ReplaceAllString(s, p.repl)
	}
	return s
}

// normalizeQuotes replaces every quote rune with « or », alternating by
// the rune's position among all quote runes in the string. Runs after
// unifyQuotePairs since the pair pass may leave straight quotes behind.
func normalizeQuotes(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	n := 0
	for _, r := range s {
		if isQuoteRune(r) {
			n++
			if n%2 == 1 {
				b.WriteRune('«')
			} else {
				b.WriteRune('»')
			}
		} else {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// collapseExtraQuotes strips the first and last quote rune while more than
// two remain. Enclosing quotes on both ends are assumed spurious. An odd
// quote count can leave a single dangling quote, which is kept.
func collapseExtraQuotes(s string) string {
	for {
		runes := []rune(s)
		first, last, count := -1, -1, 0
		for i, r := range runes {
			if isQuoteRune(r) {
				count++
				if first == -1 {
					first = i
				}
				last = i
			}
		}
		if count <= 2 {
			return s
		}
		runes = append(runes[:last], runes[last+1:]...)
		runes = append(runes[:first], runes[first+1:]...)
		s = string(runes)
	}
}

var directionDashRe = regexp.MustCompile(`(\s-\s|«-|-»|-\s|\s-)`)

// normalizeDashes turns dashes separating headsign segments into a
// directional arrow. Hyphens inside a single word stay as they are.
func normalizeDashes(s string) string {
	return directionDashRe.ReplaceAllString(s, " → ")
}

// normalizeHeadsign runs the full display pipeline over a raw headsign.
func normalizeHeadsign(s string) string {
	s = transliterateAndTitle(s)
	s = normalizeDashes(s)
	s = unifyQuotePairs(s)
	s = normalizeQuotes(s)
	s = collapseExtraQuotes(s)
	return s
}
