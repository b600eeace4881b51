package enhance

import (
	"regexp"
	"strings"
)

// Stop words to filter out of fallback keyword extraction
var stopWords = map[string]bool{
	"the": true, "and": true, "are": true, "was": true, "were": true,
	"that": true, "this": true, "with": true, "for": true, "not": true,
	"you": true, "but": true, "from": true, "have": true, "has": true,
	"had": true, "about": true, "its": true, "all": true, "can": true,
	"will": true, "would": true, "should": true, "there": true, "what": true,
	"when": true, "where": true, "which": true, "who": true, "how": true,
	"any": true, "some": true, "task": true, "tasks": true, "find": true,
	"get": true, "need": true, "want": true,
}

// nonWordPattern splits text on runs of non-word characters.
var nonWordPattern = regexp.MustCompile(`\W+`)

// FallbackKeywords tokenizes a description without the language model:
// split on non-word-character boundaries, lowercase, drop tokens of length
// <= 2 and stop words, preserve input order.
func FallbackKeywords(description string) []string {
	tokens := nonWordPattern.Split(strings.ToLower(description), -1)
	keywords := make([]string, 0, len(tokens))
	for _, token := range tokens {
		if len(token) <= 2 || stopWords[token] {
			continue
		}
		keywords = append(keywords, token)
	}
	return keywords
}
