package tokenizer

import (
	"regexp"
	"strings"
)

// nonAlphanumericRegex matches sequences of non-alphanumeric characters.
var nonAlphanumericRegex = regexp.MustCompile(`[^a-z0-9]+`)

// stopwords are filtered out during normalization. The set covers common
// English function words plus the question words that carry no signal in
// an FAQ corpus ("what", "how", ...).
var stopwords = map[string]struct{}{
	"the": {}, "an": {}, "and": {}, "are": {}, "as": {}, "at": {},
	"be": {}, "but": {}, "by": {}, "for": {}, "from": {}, "have": {},
	"in": {}, "is": {}, "it": {}, "not": {}, "of": {}, "on": {},
	"or": {}, "that": {}, "this": {}, "to": {}, "was": {}, "were": {},
	"will": {}, "with": {}, "you": {}, "your": {}, "what": {},
	"when": {}, "where": {}, "which": {}, "who": {}, "why": {},
	"how": {}, "do": {}, "does": {}, "did": {}, "can": {},
	"could": {}, "should": {}, "would": {}, "my": {}, "me": {},
	"we": {}, "our": {}, "us": {}, "about": {},
}

// Options control the optional steps of the normalization pipeline.
type Options struct {
	DisableStemming bool
	ExtraStopwords  []string // Removed in addition to the built-in stopword set
}

// Tokenize converts a string into a slice of raw tokens.
// It lowercases the string, splits by non-alphanumeric characters, and
// drops single-character fragments (punctuation leftovers like the "s"
// in "it's"). An empty input produces an empty slice, never nil.
func Tokenize(text string) []string {
	lowerText := strings.ToLower(text)
	split := nonAlphanumericRegex.Split(lowerText, -1)

	tokens := make([]string, 0, len(split))
	for _, s := range split {
		if len(s) >= 2 {
			tokens = append(tokens, s)
		}
	}
	return tokens
}

// RemoveStopwords filters tokens against the built-in stopword set plus
// any extra corpus-specific stopwords.
func RemoveStopwords(tokens []string, extra []string) []string {
	extraSet := make(map[string]struct{}, len(extra))
	for _, word := range extra {
		extraSet[strings.ToLower(word)] = struct{}{}
	}

	filtered := make([]string, 0, len(tokens))
	for _, token := range tokens {
		if _, ok := stopwords[token]; ok {
			continue
		}
		if _, ok := extraSet[token]; ok {
			continue
		}
		filtered = append(filtered, token)
	}
	return filtered
}

// Stem reduces a token to a root form by stripping common plural
// suffixes. It is deliberately light: queries and corpus questions pass
// through the same function, so consistency matters more than
// linguistic precision.
func Stem(token string) string {
	if len(token) <= 3 {
		return token
	}
	switch {
	case strings.HasSuffix(token, "sses"):
		return token[:len(token)-2] // classes -> class
	case strings.HasSuffix(token, "ies"):
		return token[:len(token)-3] + "y" // libraries -> library
	case strings.HasSuffix(token, "ss"):
		return token // address stays address
	case strings.HasSuffix(token, "s"):
		return token[:len(token)-1] // timings -> timing
	}
	return token
}

// Normalize runs the full pipeline: lowercase -> strip punctuation ->
// tokenize -> remove stopwords -> stem. Each step is pure; identical
// input always yields identical output.
func Normalize(text string, opts Options) []string {
	tokens := RemoveStopwords(Tokenize(text), opts.ExtraStopwords)
	if opts.DisableStemming {
		return tokens
	}
	stemmed := make([]string, 0, len(tokens))
	for _, token := range tokens {
		stemmed = append(stemmed, Stem(token))
	}
	return stemmed
}
