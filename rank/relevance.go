package rank

import (
	"regexp"
	"strings"

	"github.com/poiesic/taskscout/core"
)

// Relevance scoring parameters. The exact values are tunable; tests pin the
// documented reference behaviors, not these constants.
const (
	// titleWordWeight is the value of one whole-word hit in the title.
	titleWordWeight = 5.0
	// bodyWordWeight is the value of one whole-word hit in the body.
	bodyWordWeight = 1.0
	// titleSubstringBonus is awarded once when a term occurs anywhere in
	// the title, whole word or not.
	titleSubstringBonus = 2.0
	// bodySubstringBonus is the body counterpart of titleSubstringBonus.
	bodySubstringBonus = 0.5
	// distinctTermBonus rewards each distinct term that matches anywhere,
	// so multi-term agreement beats one term repeated.
	distinctTermBonus = 1.0
	// scoreScale compresses the per-term average into [0,1]. A single
	// strong title match lands well below 1; saturating takes an
	// unusually strong multi-term, multi-occurrence match.
	scoreScale = 10.0
)

// Relevance computes a bounded [0,1] textual relevance score between the
// query terms and the document's title and body. It is a pure function of
// its inputs: no remote calls, no randomness. An empty term list scores 0.
func Relevance(doc *core.Document, terms []string) float64 {
	if doc == nil || len(terms) == 0 {
		return 0
	}

	title := strings.ToLower(doc.Title)
	body := strings.ToLower(doc.BodyText)

	var total float64
	distinct := 0
	for _, term := range terms {
		term = strings.ToLower(strings.TrimSpace(term))
		if term == "" {
			continue
		}

		total += float64(countWholeWord(title, term)) * titleWordWeight
		total += float64(countWholeWord(body, term)) * bodyWordWeight

		inTitle := strings.Contains(title, term)
		inBody := strings.Contains(body, term)
		if inTitle {
			total += titleSubstringBonus
		}
		if inBody {
			total += bodySubstringBonus
		}
		if inTitle || inBody {
			distinct++
		}
	}

	total += float64(distinct) * distinctTermBonus

	score := total / float64(len(terms)) / scoreScale
	return clamp01(score)
}

// countWholeWord counts boundary-delimited occurrences of term in text.
// Both inputs are expected to be lowercased already.
func countWholeWord(text, term string) int {
	if text == "" || term == "" {
		return 0
	}
	pattern, err := regexp.Compile(`\b` + regexp.QuoteMeta(term) + `\b`)
	if err != nil {
		return 0
	}
	return len(pattern.FindAllStringIndex(text, -1))
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
