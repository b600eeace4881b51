package rank

import (
	"sort"

	"github.com/poiesic/taskscout/core"
)

// Criteria weights for the two ranking modes. The weights happen to sum to
// 1 in both canonical constructions, but Combine treats them as a weighted
// sum, not an average: custom criteria are free to use any [0,1] weights.
const (
	dateAwareSemanticWeight = 0.3
	dateAwareDateWeight     = 0.7
)

// Criteria configures score combination and result truncation.
type Criteria struct {
	SemanticWeight float64 // [0,1]
	DateWeight     float64 // [0,1]
	MaxResults     int
}

// NewCriteria returns the canonical criteria for a query. When the user
// expressed a temporal intent, date proximity dominates (0.3/0.7);
// otherwise ranking is pure relevance (1.0/0.0). A maxResults <= 0 falls
// back to core.DefaultMaxResults.
func NewCriteria(hasTargetDate bool, maxResults int) Criteria {
	if maxResults <= 0 {
		maxResults = core.DefaultMaxResults
	}
	if hasTargetDate {
		return Criteria{
			SemanticWeight: dateAwareSemanticWeight,
			DateWeight:     dateAwareDateWeight,
			MaxResults:     maxResults,
		}
	}
	return Criteria{
		SemanticWeight: 1.0,
		DateWeight:     0.0,
		MaxResults:     maxResults,
	}
}

// Combine merges each document's relevance and date-proximity scores into a
// combined score using the criteria weights. Input scores outside [0,1] are
// clamped, not rejected. The step never drops or reorders documents; it
// returns new ScoredDocument instances and leaves the input untouched.
func Combine(docs []*core.ScoredDocument, criteria Criteria) []*core.ScoredDocument {
	out := make([]*core.ScoredDocument, 0, len(docs))
	for _, doc := range docs {
		relevance := clamp01(doc.RelevanceScore)
		proximity := clamp01(doc.DateProximityScore)
		out = append(out, &core.ScoredDocument{
			Document:           doc.Document,
			RelevanceScore:     relevance,
			DateProximityScore: proximity,
			CombinedScore:      relevance*criteria.SemanticWeight + proximity*criteria.DateWeight,
			Justification:      doc.Justification,
		})
	}
	return out
}

// OrderByScore returns a new slice sorted by combined score descending.
// Ties on combined score order by relevance descending; remaining ties keep
// their input order. The input slice is never mutated.
func OrderByScore(docs []*core.ScoredDocument) []*core.ScoredDocument {
	out := make([]*core.ScoredDocument, len(docs))
	copy(out, docs)

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].CombinedScore != out[j].CombinedScore {
			return out[i].CombinedScore > out[j].CombinedScore
		}
		return out[i].RelevanceScore > out[j].RelevanceScore
	})
	return out
}
