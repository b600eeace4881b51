package search

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/poiesic/taskscout/ai"
	"github.com/poiesic/taskscout/conversation"
	"github.com/poiesic/taskscout/core"
	"github.com/poiesic/taskscout/enhance"
	"github.com/poiesic/taskscout/prompt"
	"github.com/poiesic/taskscout/rank"
	"github.com/poiesic/taskscout/resilience"
	"github.com/poiesic/taskscout/storage"
)

const (
	// excerptRunes caps the body excerpt shown to the model per candidate.
	excerptRunes = 200

	completionMaxTokens = 1500
	completionTemp      = 0.0
)

// Selector orchestrates a full search: candidate fetch, model-assisted
// selection, and the deterministic fallback ranking.
type Selector struct {
	documents     storage.DocumentRepository
	completer     ai.Completer
	prompts       *prompt.Store
	conversations conversation.Store
	enhancer      *enhance.Enhancer
	policy        resilience.Policy
	clock         func() time.Time
	logger        *slog.Logger
}

// Option configures a Selector.
type Option func(*Selector) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Selector) error {
		if logger == nil {
			logger = slog.Default()
		}
		s.logger = logger
		return nil
	}
}

// WithClock sets the time source used for trace timing and conversation
// turn timestamps. Default is time.Now.
func WithClock(clock func() time.Time) Option {
	return func(s *Selector) error {
		if clock != nil {
			s.clock = clock
		}
		return nil
	}
}

// WithRetryPolicy sets the retry policy for language-model calls.
// Default is resilience.DefaultPolicy().
func WithRetryPolicy(policy resilience.Policy) Option {
	return func(s *Selector) error {
		s.policy = policy
		return nil
	}
}

// NewSelector creates a new selector.
func NewSelector(
	documents storage.DocumentRepository,
	provider ai.AIProvider,
	prompts *prompt.Store,
	conversations conversation.Store,
	enhancer *enhance.Enhancer,
	opts ...Option,
) (*Selector, error) {
	if documents == nil {
		return nil, ErrDocumentRepositoryRequired
	}
	if provider == nil {
		return nil, ErrAIProviderRequired
	}
	if prompts == nil {
		return nil, ErrPromptStoreRequired
	}
	if conversations == nil {
		return nil, ErrConversationStoreRequired
	}
	if enhancer == nil {
		return nil, ErrEnhancerRequired
	}

	s := &Selector{
		documents:     documents,
		completer:     provider.Completer(),
		prompts:       prompts,
		conversations: conversations,
		enhancer:      enhancer,
		policy:        resilience.DefaultPolicy(),
		clock:         time.Now,
		logger:        slog.Default(),
	}

	// Apply options
	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}

	return s, nil
}

// FindTasks runs one search. The model-assisted path is attempted first;
// any failure inside it degrades to the deterministic ranking, observable
// only through the response trace. Only a failed candidate fetch or a
// prompt configuration error is returned as an error.
func (s *Selector) FindTasks(ctx context.Context, query *core.Query) (*core.SearchResponse, error) {
	if err := core.ValidateQuery(query); err != nil {
		return nil, err
	}

	started := s.clock()
	trace := newTrace()
	trace.addf("search %s started for collection %q", newSearchID(), query.CollectionId)

	// 1. Fetch every candidate in the collection
	fetched, err := s.documents.FetchCandidates(ctx, query.CollectionId)
	if err != nil {
		trace.addf("candidate fetch failed: %v", err)
		s.logger.Error("candidate fetch failed",
			"collectionId", query.CollectionId, "trace", trace.Lines(), "err", err)
		return nil, fmt.Errorf("%w: fetching candidates for %q: %w", ErrSearchFailed, query.CollectionId, err)
	}

	candidates := make([]*core.Document, 0, len(fetched))
	for _, doc := range fetched {
		if doc.Archived {
			continue
		}
		candidates = append(candidates, doc)
	}
	trace.addf("fetched %d candidates", len(fetched))
	if skipped := len(fetched) - len(candidates); skipped > 0 {
		trace.addf("skipped %d archived candidates", skipped)
	}

	if len(candidates) == 0 {
		trace.addf("no candidates; selection skipped")
		return s.respond(query, nil, len(fetched), started, trace), nil
	}

	// 2. Enhance the query. Only a prompt configuration error surfaces;
	// extraction failures already degraded to the local tokenizer.
	enhanced, err := s.enhancer.EnhanceQuery(ctx, query.Description)
	if err != nil {
		return nil, err
	}
	trace.addf("enhanced query with %d terms", len(enhanced.Terms))

	// 3. Model-assisted selection, falling back to text ranking
	results, err := s.selectWithModel(ctx, query, candidates, enhanced, trace)
	if err != nil {
		if prompt.IsConfigError(err) {
			return nil, err
		}
		s.logger.Warn("model selection failed", "err", err)
		trace.addf("falling back to text ranking: %v", err)
		results = s.fallback(query, candidates, enhanced.Terms, trace)
	}

	return s.respond(query, results, len(fetched), started, trace), nil
}

// selectionReply is the strict shape expected from the model.
type selectionReply struct {
	Selections []struct {
		DocumentId     string  `json:"document_id"`
		RelevanceScore float64 `json:"relevance_score"`
		Justification  string  `json:"justification"`
	} `json:"selections"`
}

func (s *Selector) selectWithModel(
	ctx context.Context,
	query *core.Query,
	candidates []*core.Document,
	enhanced *enhance.Enhanced,
	trace *Trace,
) ([]*core.ScoredDocument, error) {
	promptText, err := s.prompts.Render(prompt.TypeSelection, map[string]string{
		"query":       enhanced.Text,
		"candidates":  summarizeCandidates(candidates),
		"max_results": strconv.Itoa(query.Limit()),
	})
	if err != nil {
		return nil, err
	}

	key := conversation.Key{UserId: query.UserId, CollectionId: query.CollectionId}
	queryTurn := core.ConversationTurn{
		Speaker:   core.SpeakerHuman,
		Content:   promptText,
		Timestamp: s.clock(),
	}
	turns := append(s.conversations.Get(key), queryTurn)

	response, err := resilience.Call(ctx, s.policy, func() (string, error) {
		return s.completer.Complete(ctx, turns, completionMaxTokens, completionTemp)
	})
	if err != nil {
		return nil, err
	}

	var reply selectionReply
	if err := json.Unmarshal([]byte(ai.CleanJSONResponse(response)), &reply); err != nil {
		return nil, fmt.Errorf("parsing selection response: %w", err)
	}

	// The exchange is recorded only once the response proved usable
	s.conversations.Append(key, queryTurn, core.ConversationTurn{
		Speaker:   core.SpeakerAI,
		Content:   response,
		Timestamp: s.clock(),
	})

	byId := make(map[string]*core.Document, len(candidates))
	for _, doc := range candidates {
		byId[doc.Id] = doc
	}

	scored := make([]*core.ScoredDocument, 0, len(reply.Selections))
	discarded := 0
	for _, sel := range reply.Selections {
		doc, ok := byId[sel.DocumentId]
		if !ok || sel.RelevanceScore < 0 || sel.RelevanceScore > 1 {
			discarded++
			continue
		}
		sd := &core.ScoredDocument{
			Document:       doc,
			RelevanceScore: sel.RelevanceScore,
			CombinedScore:  sel.RelevanceScore,
			Justification:  sel.Justification,
		}
		if query.TargetDate != nil {
			sd.DateProximityScore = rank.DateProximity(doc.CreatedAt, *query.TargetDate)
		}
		scored = append(scored, sd)
	}
	if discarded > 0 {
		trace.addf("discarded %d invalid selections", discarded)
	}

	if query.TargetDate != nil {
		scored = rank.Combine(scored, rank.NewCriteria(true, query.Limit()))
	}
	scored = truncate(rank.OrderByScore(scored), query.Limit())
	trace.addf("model selection returned %d results", len(scored))
	return scored, nil
}

// fallback ranks all candidates deterministically against the enhanced
// query terms.
func (s *Selector) fallback(
	query *core.Query,
	candidates []*core.Document,
	terms []string,
	trace *Trace,
) []*core.ScoredDocument {
	hasTarget := query.TargetDate != nil

	scored := make([]*core.ScoredDocument, 0, len(candidates))
	for _, doc := range candidates {
		sd := &core.ScoredDocument{
			Document:       doc,
			RelevanceScore: rank.Relevance(doc, terms),
		}
		if hasTarget {
			sd.DateProximityScore = rank.DateProximity(doc.CreatedAt, *query.TargetDate)
		}
		scored = append(scored, sd)
	}

	scored = rank.Combine(scored, rank.NewCriteria(hasTarget, query.Limit()))
	scored = truncate(rank.OrderByScore(scored), query.Limit())
	trace.addf("text ranking returned %d results", len(scored))
	return scored
}

func (s *Selector) respond(
	query *core.Query,
	results []*core.ScoredDocument,
	candidateCount int,
	started time.Time,
	trace *Trace,
) *core.SearchResponse {
	if results == nil {
		results = []*core.ScoredDocument{}
	}
	if !query.IncludeContent {
		results = stripContent(results)
	}
	return &core.SearchResponse{
		Results:             results,
		TotalCandidateCount: candidateCount,
		Elapsed:             s.clock().Sub(started),
		Query:               query,
		Trace:               trace.Lines(),
	}
}

// summarizeCandidates renders one compact line pair per candidate for the
// selection prompt.
func summarizeCandidates(candidates []*core.Document) string {
	var b strings.Builder
	for i, doc := range candidates {
		if i > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "- id: %s | created: %s | title: %s\n  %s",
			doc.Id, doc.CreatedAt.Format(time.RFC3339), doc.Title, excerpt(doc.BodyText))
	}
	return b.String()
}

func excerpt(text string) string {
	runes := []rune(strings.TrimSpace(text))
	if len(runes) <= excerptRunes {
		return string(runes)
	}
	return string(runes[:excerptRunes]) + "…"
}

// stripContent blanks body text in result documents without mutating the
// stored snapshots.
func stripContent(results []*core.ScoredDocument) []*core.ScoredDocument {
	out := make([]*core.ScoredDocument, 0, len(results))
	for _, sd := range results {
		doc := *sd.Document
		doc.BodyText = ""
		out = append(out, &core.ScoredDocument{
			Document:           &doc,
			RelevanceScore:     sd.RelevanceScore,
			DateProximityScore: sd.DateProximityScore,
			CombinedScore:      sd.CombinedScore,
			Justification:      sd.Justification,
		})
	}
	return out
}

func truncate(docs []*core.ScoredDocument, limit int) []*core.ScoredDocument {
	if len(docs) > limit {
		return docs[:limit]
	}
	return docs
}
