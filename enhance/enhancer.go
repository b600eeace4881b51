package enhance

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/poiesic/taskscout/ai"
	"github.com/poiesic/taskscout/core"
	"github.com/poiesic/taskscout/prompt"
	"github.com/poiesic/taskscout/resilience"
)

// completionMaxTokens caps enhancement replies; keyword lists and date
// analyses are short.
const completionMaxTokens = 400

// Enhancer expands a free-text description into search terms and resolves
// date expressions, each with a language-model path and a deterministic
// local fallback.
type Enhancer struct {
	completer ai.Completer
	prompts   *prompt.Store
	policy    resilience.Policy
	clock     func() time.Time
	logger    *slog.Logger
}

// Option configures an Enhancer.
type Option func(*Enhancer) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(e *Enhancer) error {
		if logger == nil {
			logger = slog.Default()
		}
		e.logger = logger
		return nil
	}
}

// WithClock sets the time source used for relative date resolution.
// Default is time.Now. Intended for tests.
func WithClock(clock func() time.Time) Option {
	return func(e *Enhancer) error {
		if clock == nil {
			clock = time.Now
		}
		e.clock = clock
		return nil
	}
}

// WithRetryPolicy sets the retry policy for language-model calls.
// Default is resilience.DefaultPolicy().
func WithRetryPolicy(policy resilience.Policy) Option {
	return func(e *Enhancer) error {
		e.policy = policy
		return nil
	}
}

// NewEnhancer creates a new query enhancer.
func NewEnhancer(completer ai.Completer, prompts *prompt.Store, opts ...Option) (*Enhancer, error) {
	if completer == nil {
		return nil, ErrCompleterRequired
	}
	if prompts == nil {
		return nil, ErrPromptStoreRequired
	}

	e := &Enhancer{
		completer: completer,
		prompts:   prompts,
		policy:    resilience.DefaultPolicy(),
		clock:     time.Now,
		logger:    slog.Default(),
	}

	for _, opt := range opts {
		if err := opt(e); err != nil {
			return nil, err
		}
	}

	return e, nil
}

// Enhanced is the expansion of a description for downstream scoring.
type Enhanced struct {
	// Text is the description with the extracted keywords appended; it is
	// the query text shown to the language model.
	Text string
	// Terms are the deduplicated tokens used by the deterministic scorer.
	Terms []string
}

// EnhanceQuery extracts keywords from the description and builds the
// enhanced query text and term list. Keyword extraction failures degrade to
// the local tokenizer; only a prompt configuration error is returned.
func (e *Enhancer) EnhanceQuery(ctx context.Context, description string) (*Enhanced, error) {
	keywords, err := e.ExtractKeywords(ctx, description)
	if err != nil {
		return nil, err
	}

	text := strings.TrimSpace(description)
	if len(keywords) > 0 {
		text = strings.TrimSpace(text + " " + strings.Join(keywords, " "))
	}

	terms := FallbackKeywords(description)
	terms = mergeTerms(terms, keywords)

	return &Enhanced{Text: text, Terms: terms}, nil
}

// ExtractKeywords extracts semantic keywords from the description via the
// language model, falling back to the local tokenizer when the call fails
// or returns nothing usable. An empty or whitespace-only description
// returns an empty list without invoking the model.
func (e *Enhancer) ExtractKeywords(ctx context.Context, description string) ([]string, error) {
	trimmed := strings.TrimSpace(description)
	if trimmed == "" {
		return []string{}, nil
	}

	rendered, err := e.prompts.Render(prompt.TypeKeywords, map[string]string{
		"description": trimmed,
	})
	if err != nil {
		// A template that fails substitution is a configuration error,
		// surfaced immediately and never retried.
		return nil, err
	}

	turns := []core.ConversationTurn{
		{Speaker: core.SpeakerHuman, Content: rendered, Timestamp: e.clock()},
	}

	response, err := resilience.Call(ctx, e.policy, func() (string, error) {
		return e.completer.Complete(ctx, turns, completionMaxTokens, 0)
	})
	if err != nil {
		e.logger.Warn("keyword extraction failed, using local tokenizer", "err", err)
		return FallbackKeywords(description), nil
	}

	keywords := parseKeywordList(response)
	if len(keywords) == 0 {
		e.logger.Debug("model returned no keywords, using local tokenizer")
		return FallbackKeywords(description), nil
	}

	return keywords, nil
}

// parseKeywordList splits a comma-separated model reply into cleaned,
// lowercased keywords.
func parseKeywordList(response string) []string {
	response = strings.TrimSpace(response)
	if response == "" {
		return nil
	}

	parts := strings.Split(response, ",")
	keywords := make([]string, 0, len(parts))
	for _, part := range parts {
		cleaned := strings.ToLower(strings.TrimSpace(part))
		cleaned = strings.Trim(cleaned, ".\"'`")
		if cleaned == "" || strings.ContainsAny(cleaned, "{}:\n") {
			// A brace, colon, or newline means the model ignored the
			// format; treat the whole reply as unusable.
			return nil
		}
		keywords = append(keywords, cleaned)
	}
	return keywords
}

// mergeTerms appends extra terms to base, dropping duplicates while
// preserving first-seen order.
func mergeTerms(base, extra []string) []string {
	seen := make(map[string]bool, len(base)+len(extra))
	out := make([]string, 0, len(base)+len(extra))
	for _, lists := range [][]string{base, extra} {
		for _, term := range lists {
			term = strings.ToLower(strings.TrimSpace(term))
			if term == "" || seen[term] {
				continue
			}
			seen[term] = true
			out = append(out, term)
		}
	}
	return out
}
