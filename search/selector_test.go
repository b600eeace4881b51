package search

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/poiesic/taskscout/ai/mock"
	"github.com/poiesic/taskscout/conversation"
	"github.com/poiesic/taskscout/core"
	"github.com/poiesic/taskscout/enhance"
	"github.com/poiesic/taskscout/prompt"
	"github.com/poiesic/taskscout/storage"
	"github.com/poiesic/taskscout/storage/badger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type selectorFixture struct {
	selector  *Selector
	repo      storage.DocumentRepository
	completer *mock.MockCompleter
	convos    *conversation.MemoryStore
	cleanup   func()
}

func newSelectorFixture(t *testing.T) *selectorFixture {
	t.Helper()

	repo, backend, err := badger.NewMemoryRepository()
	require.NoError(t, err)

	completer := mock.NewMockCompleter()
	provider := mock.NewMockProviderWithCompleter(completer)
	prompts := prompt.NewStore()
	convos := conversation.NewMemoryStore()

	enhancer, err := enhance.NewEnhancer(completer, prompts)
	require.NoError(t, err)

	selector, err := NewSelector(repo, provider, prompts, convos, enhancer)
	require.NoError(t, err)

	return &selectorFixture{
		selector:  selector,
		repo:      repo,
		completer: completer,
		convos:    convos,
		cleanup: func() {
			repo.Close()
			backend.Close()
		},
	}
}

func (f *selectorFixture) seed(t *testing.T, docs ...*core.Document) {
	t.Helper()
	_, err := f.repo.AddDocuments(context.Background(), docs...)
	require.NoError(t, err)
}

func seedDocument(id, title, body string, createdAt time.Time) *core.Document {
	return &core.Document{
		Id:           id,
		CollectionId: "inbox",
		Title:        title,
		BodyText:     body,
		CreatedAt:    createdAt,
	}
}

func testQuery(description string) *core.Query {
	return &core.Query{
		Description:    description,
		UserId:         "user-1",
		CollectionId:   "inbox",
		IncludeContent: true,
	}
}

func TestNewSelector(t *testing.T) {
	f := newSelectorFixture(t)
	defer f.cleanup()

	provider := mock.NewMockProvider()
	prompts := prompt.NewStore()
	convos := conversation.NewMemoryStore()
	enhancer, err := enhance.NewEnhancer(mock.NewMockCompleter(), prompts)
	require.NoError(t, err)

	t.Run("valid configuration", func(t *testing.T) {
		selector, err := NewSelector(f.repo, provider, prompts, convos, enhancer)
		require.NoError(t, err)
		assert.NotNil(t, selector)
	})

	t.Run("nil document repository", func(t *testing.T) {
		_, err := NewSelector(nil, provider, prompts, convos, enhancer)
		assert.Equal(t, ErrDocumentRepositoryRequired, err)
	})

	t.Run("nil provider", func(t *testing.T) {
		_, err := NewSelector(f.repo, nil, prompts, convos, enhancer)
		assert.Equal(t, ErrAIProviderRequired, err)
	})

	t.Run("nil prompt store", func(t *testing.T) {
		_, err := NewSelector(f.repo, provider, nil, convos, enhancer)
		assert.Equal(t, ErrPromptStoreRequired, err)
	})

	t.Run("nil conversation store", func(t *testing.T) {
		_, err := NewSelector(f.repo, provider, prompts, nil, enhancer)
		assert.Equal(t, ErrConversationStoreRequired, err)
	})

	t.Run("nil enhancer", func(t *testing.T) {
		_, err := NewSelector(f.repo, provider, prompts, convos, nil)
		assert.Equal(t, ErrEnhancerRequired, err)
	})
}

func TestFindTasks_InvalidQuery(t *testing.T) {
	f := newSelectorFixture(t)
	defer f.cleanup()

	_, err := f.selector.FindTasks(context.Background(), &core.Query{Description: "anything"})
	assert.ErrorIs(t, err, core.ErrInvalidQuery)
}

func TestFindTasks_EmptyCollection(t *testing.T) {
	f := newSelectorFixture(t)
	defer f.cleanup()

	response, err := f.selector.FindTasks(context.Background(), testQuery("quarterly report"))
	require.NoError(t, err)

	assert.Empty(t, response.Results)
	assert.Equal(t, 0, response.TotalCandidateCount)
	assert.True(t, response.TraceContains("no candidates"))
	// No model traffic for an empty collection
	assert.Equal(t, 0, f.completer.CallCount())
}

func TestFindTasks_ModelSelection(t *testing.T) {
	f := newSelectorFixture(t)
	defer f.cleanup()

	now := time.Now().UTC().Truncate(time.Microsecond)
	f.seed(t,
		seedDocument("task-1", "Write quarterly report", "finance numbers due", now.Add(-24*time.Hour)),
		seedDocument("task-2", "Plan team offsite", "book a venue", now.Add(-48*time.Hour)),
		seedDocument("task-3", "Review hiring pipeline", "three candidates waiting", now),
	)

	f.completer.CompleteFunc = func(_ context.Context, turns []core.ConversationTurn, _ int, _ float64) (string, error) {
		return `{"selections": [
			{"document_id": "task-1", "relevance_score": 0.9, "justification": "report task"},
			{"document_id": "task-3", "relevance_score": 0.4, "justification": "mentions review"},
			{"document_id": "task-99", "relevance_score": 0.8, "justification": "invented id"},
			{"document_id": "task-2", "relevance_score": 1.7, "justification": "score out of range"}
		]}`, nil
	}

	response, err := f.selector.FindTasks(context.Background(), testQuery("quarterly report"))
	require.NoError(t, err)

	require.Len(t, response.Results, 2)
	assert.Equal(t, "task-1", response.Results[0].Document.Id)
	assert.Equal(t, "task-3", response.Results[1].Document.Id)
	assert.InDelta(t, 0.9, response.Results[0].CombinedScore, 0.0001)
	assert.Equal(t, "report task", response.Results[0].Justification)
	assert.Equal(t, 3, response.TotalCandidateCount)
	assert.True(t, response.TraceContains("discarded 2 invalid selections"))
	assert.True(t, response.TraceContains("model selection returned 2 results"))
	assert.False(t, response.TraceContains("falling back"))
}

func TestFindTasks_ModelFailureFallsBack(t *testing.T) {
	f := newSelectorFixture(t)
	defer f.cleanup()

	now := time.Now().UTC().Truncate(time.Microsecond)
	f.seed(t,
		seedDocument("task-1", "Write quarterly report", "finance numbers due", now.Add(-24*time.Hour)),
		seedDocument("task-2", "Plan team offsite", "book a venue", now.Add(-48*time.Hour)),
	)

	f.completer.CompleteFunc = func(_ context.Context, _ []core.ConversationTurn, _ int, _ float64) (string, error) {
		return "", errors.New("connection refused")
	}

	response, err := f.selector.FindTasks(context.Background(), testQuery("quarterly report"))
	require.NoError(t, err)

	require.Len(t, response.Results, 2)
	assert.Equal(t, "task-1", response.Results[0].Document.Id)
	assert.Greater(t, response.Results[0].CombinedScore, response.Results[1].CombinedScore)
	assert.True(t, response.TraceContains("falling back to text ranking"))
	// A failed exchange never lands in the conversation history
	assert.Equal(t, 0, f.convos.Len())
}

func TestFindTasks_MalformedReplyFallsBack(t *testing.T) {
	f := newSelectorFixture(t)
	defer f.cleanup()

	now := time.Now().UTC().Truncate(time.Microsecond)
	f.seed(t, seedDocument("task-1", "Write quarterly report", "finance numbers due", now))

	f.completer.CompleteFunc = func(_ context.Context, _ []core.ConversationTurn, _ int, _ float64) (string, error) {
		return "Sure! Here are the results you asked for.", nil
	}

	response, err := f.selector.FindTasks(context.Background(), testQuery("quarterly report"))
	require.NoError(t, err)

	require.Len(t, response.Results, 1)
	assert.True(t, response.TraceContains("falling back to text ranking"))
	assert.Equal(t, 0, f.convos.Len())
}

func TestFindTasks_TargetDateRecombination(t *testing.T) {
	f := newSelectorFixture(t)
	defer f.cleanup()

	target := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	f.seed(t,
		// High model score but created a month from the target date
		seedDocument("task-far", "Quarterly report draft", "report body", target.AddDate(0, 1, 0)),
		// Lower model score but created on the target date
		seedDocument("task-near", "Quarterly report outline", "report body", target),
	)

	f.completer.CompleteFunc = func(_ context.Context, _ []core.ConversationTurn, _ int, _ float64) (string, error) {
		return `{"selections": [
			{"document_id": "task-far", "relevance_score": 0.95, "justification": "strong match"},
			{"document_id": "task-near", "relevance_score": 0.6, "justification": "partial match"}
		]}`, nil
	}

	query := testQuery("quarterly report")
	query.TargetDate = &target

	response, err := f.selector.FindTasks(context.Background(), query)
	require.NoError(t, err)
	require.Len(t, response.Results, 2)

	// Date proximity dominates: 0.6*0.3 + 1.0*0.7 beats 0.95*0.3 + ~0.05*0.7
	assert.Equal(t, "task-near", response.Results[0].Document.Id)
	assert.InDelta(t, 0.88, response.Results[0].CombinedScore, 0.0001)
	assert.Equal(t, "task-far", response.Results[1].Document.Id)
}

func TestFindTasks_ConversationAccumulates(t *testing.T) {
	f := newSelectorFixture(t)
	defer f.cleanup()

	now := time.Now().UTC().Truncate(time.Microsecond)
	f.seed(t, seedDocument("task-1", "Write quarterly report", "finance numbers due", now))

	var turnCounts []int
	f.completer.CompleteFunc = func(_ context.Context, turns []core.ConversationTurn, _ int, _ float64) (string, error) {
		turnCounts = append(turnCounts, len(turns))
		return `{"selections": [{"document_id": "task-1", "relevance_score": 0.8, "justification": "match"}]}`, nil
	}

	ctx := context.Background()
	_, err := f.selector.FindTasks(ctx, testQuery("quarterly report"))
	require.NoError(t, err)
	_, err = f.selector.FindTasks(ctx, testQuery("report status"))
	require.NoError(t, err)

	key := conversation.Key{UserId: "user-1", CollectionId: "inbox"}
	turns := f.convos.Get(key)
	require.Len(t, turns, 4)
	assert.Equal(t, core.SpeakerHuman, turns[0].Speaker)
	assert.Equal(t, core.SpeakerAI, turns[1].Speaker)

	// The second selection call sees the first exchange as history.
	// Keyword-extraction calls are one-shot, so every count before the
	// final selection call is 1.
	require.NotEmpty(t, turnCounts)
	assert.Equal(t, 3, turnCounts[len(turnCounts)-1])
	for _, n := range turnCounts[:len(turnCounts)-1] {
		assert.Equal(t, 1, n)
	}
}

func TestFindTasks_ArchivedCandidatesSkipped(t *testing.T) {
	f := newSelectorFixture(t)
	defer f.cleanup()

	now := time.Now().UTC().Truncate(time.Microsecond)
	active := seedDocument("task-1", "Write quarterly report", "finance numbers due", now)
	archived := seedDocument("task-2", "Old report", "obsolete", now.Add(-time.Hour))
	archived.Archived = true
	f.seed(t, active, archived)

	f.completer.CompleteFunc = func(_ context.Context, _ []core.ConversationTurn, _ int, _ float64) (string, error) {
		return "", errors.New("unavailable")
	}

	response, err := f.selector.FindTasks(context.Background(), testQuery("report"))
	require.NoError(t, err)

	require.Len(t, response.Results, 1)
	assert.Equal(t, "task-1", response.Results[0].Document.Id)
	assert.Equal(t, 2, response.TotalCandidateCount)
	assert.True(t, response.TraceContains("skipped 1 archived"))
}

func TestFindTasks_ContentStripping(t *testing.T) {
	f := newSelectorFixture(t)
	defer f.cleanup()

	now := time.Now().UTC().Truncate(time.Microsecond)
	f.seed(t, seedDocument("task-1", "Write quarterly report", "finance numbers due", now))

	f.completer.CompleteFunc = func(_ context.Context, _ []core.ConversationTurn, _ int, _ float64) (string, error) {
		return `{"selections": [{"document_id": "task-1", "relevance_score": 0.8, "justification": "match"}]}`, nil
	}

	query := testQuery("quarterly report")
	query.IncludeContent = false

	response, err := f.selector.FindTasks(context.Background(), query)
	require.NoError(t, err)
	require.Len(t, response.Results, 1)
	assert.Empty(t, response.Results[0].Document.BodyText)

	// The stored snapshot is untouched
	stored, err := f.repo.GetDocument(context.Background(), "task-1")
	require.NoError(t, err)
	assert.Equal(t, "finance numbers due", stored.BodyText)
}

func TestFindTasks_MaxResultsTruncation(t *testing.T) {
	f := newSelectorFixture(t)
	defer f.cleanup()

	now := time.Now().UTC().Truncate(time.Microsecond)
	docs := make([]*core.Document, 0, 5)
	for i := range 5 {
		docs = append(docs, seedDocument(
			"task-"+string(rune('a'+i)), "Report item", "report body", now.Add(-time.Duration(i)*time.Minute)))
	}
	f.seed(t, docs...)

	f.completer.CompleteFunc = func(_ context.Context, _ []core.ConversationTurn, _ int, _ float64) (string, error) {
		return "", errors.New("unavailable")
	}

	query := testQuery("report")
	query.MaxResults = 2

	response, err := f.selector.FindTasks(context.Background(), query)
	require.NoError(t, err)
	assert.Len(t, response.Results, 2)
	assert.Equal(t, 5, response.TotalCandidateCount)
}

// failingRepository fails every fetch. The remaining operations are unused
// in these tests.
type failingRepository struct {
	storage.DocumentRepository
	err error
}

func (r *failingRepository) FetchCandidates(_ context.Context, _ string) ([]*core.Document, error) {
	return nil, r.err
}

func TestFindTasks_FetchFailureIsFatal(t *testing.T) {
	f := newSelectorFixture(t)
	defer f.cleanup()

	cause := errors.New("disk corrupted")
	repo := &failingRepository{err: cause}

	prompts := prompt.NewStore()
	enhancer, err := enhance.NewEnhancer(f.completer, prompts)
	require.NoError(t, err)

	selector, err := NewSelector(repo, mock.NewMockProviderWithCompleter(f.completer), prompts,
		conversation.NewMemoryStore(), enhancer)
	require.NoError(t, err)

	_, err = selector.FindTasks(context.Background(), testQuery("anything"))
	assert.ErrorIs(t, err, ErrSearchFailed)
	assert.ErrorIs(t, err, cause)
	// No model call was attempted
	assert.Equal(t, 0, f.completer.CallCount())
}

func TestFindTasks_PromptConfigErrorSurfaces(t *testing.T) {
	f := newSelectorFixture(t)
	defer f.cleanup()

	now := time.Now().UTC().Truncate(time.Microsecond)
	f.seed(t, seedDocument("task-1", "Write quarterly report", "finance numbers due", now))

	// A selection template demanding a variable the selector never supplies
	prompts := prompt.NewStore(prompt.WithTemplate(prompt.TypeSelection, "query {{query}} needs {{missing_var}}"))
	enhancer, err := enhance.NewEnhancer(f.completer, prompt.NewStore())
	require.NoError(t, err)

	selector, err := NewSelector(f.repo, mock.NewMockProviderWithCompleter(f.completer), prompts,
		conversation.NewMemoryStore(), enhancer)
	require.NoError(t, err)

	_, err = selector.FindTasks(context.Background(), testQuery("quarterly report"))
	assert.ErrorIs(t, err, prompt.ErrUnresolvedPlaceholder)
}
