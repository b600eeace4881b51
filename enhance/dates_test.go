package enhance

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/poiesic/taskscout/ai/mock"
	"github.com/poiesic/taskscout/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDateRelative(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 3, 15, 14, 30, 0, 0, time.UTC)
	clock := func() time.Time { return now }

	completer := mock.NewMockCompleter()
	e := newTestEnhancer(t, completer, WithClock(clock))

	tests := []struct {
		input    string
		expected time.Time
	}{
		{"today", now},
		{"TODAY", now},
		{"  yesterday  ", now.AddDate(0, 0, -1)},
		{"tomorrow", now.AddDate(0, 0, 1)},
		{"last week", now.AddDate(0, 0, -7)},
		{"this week", now},
		{"3 days ago", now.AddDate(0, 0, -3)},
		{"1 day ago", now.AddDate(0, 0, -1)},
		{"0 days ago", now},
		{"14 days ago", now.AddDate(0, 0, -14)},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			result, err := e.ParseDate(ctx, tt.input)
			require.NoError(t, err)
			require.NotNil(t, result)
			assert.True(t, tt.expected.Equal(*result), "got %v want %v", result, tt.expected)
		})
	}

	// Relative forms never reach the model.
	assert.Equal(t, 0, completer.CallCount())
}

func TestParseDateEmpty(t *testing.T) {
	completer := mock.NewMockCompleter()
	e := newTestEnhancer(t, completer)

	result, err := e.ParseDate(context.Background(), "   ")
	require.NoError(t, err)
	assert.Nil(t, result)
	assert.Equal(t, 0, completer.CallCount())
}

func TestParseDateModel(t *testing.T) {
	ctx := context.Background()

	t.Run("model resolves unrecognized expression", func(t *testing.T) {
		completer := mock.NewMockCompleter()
		completer.CompleteFunc = func(context.Context, []core.ConversationTurn, int, float64) (string, error) {
			return `{"target_date": "2025-03-07", "confidence": 0.8, "interpretation": "friday of the previous week"}`, nil
		}
		e := newTestEnhancer(t, completer)

		result, err := e.ParseDate(ctx, "the friday before last")
		require.NoError(t, err)
		require.NotNil(t, result)
		assert.Equal(t, time.Date(2025, 3, 7, 0, 0, 0, 0, time.UTC), *result)
	})

	t.Run("fenced json is accepted", func(t *testing.T) {
		completer := mock.NewMockCompleter()
		completer.CompleteFunc = func(context.Context, []core.ConversationTurn, int, float64) (string, error) {
			return "```json\n{\"target_date\": \"2025-01-02\", \"confidence\": 1, \"interpretation\": \"x\"}\n```", nil
		}
		e := newTestEnhancer(t, completer)

		result, err := e.ParseDate(ctx, "day after new year")
		require.NoError(t, err)
		require.NotNil(t, result)
	})

	t.Run("model failure yields nil without error", func(t *testing.T) {
		completer := mock.NewMockCompleter()
		completer.CompleteFunc = func(context.Context, []core.ConversationTurn, int, float64) (string, error) {
			return "", errors.New("boom")
		}
		e := newTestEnhancer(t, completer)

		result, err := e.ParseDate(ctx, "invalid date string xyz")
		require.NoError(t, err)
		assert.Nil(t, result)
	})

	t.Run("malformed json yields nil", func(t *testing.T) {
		completer := mock.NewMockCompleter()
		completer.CompleteFunc = func(context.Context, []core.ConversationTurn, int, float64) (string, error) {
			return "sure! the date you want is next friday", nil
		}
		e := newTestEnhancer(t, completer)

		result, err := e.ParseDate(ctx, "sometime soon")
		require.NoError(t, err)
		assert.Nil(t, result)
	})

	t.Run("invalid date value yields nil", func(t *testing.T) {
		completer := mock.NewMockCompleter()
		completer.CompleteFunc = func(context.Context, []core.ConversationTurn, int, float64) (string, error) {
			return `{"target_date": "not-a-date", "confidence": 0.9, "interpretation": "x"}`, nil
		}
		e := newTestEnhancer(t, completer)

		result, err := e.ParseDate(ctx, "xyz")
		require.NoError(t, err)
		assert.Nil(t, result)
	})

	t.Run("confidence out of range yields nil", func(t *testing.T) {
		completer := mock.NewMockCompleter()
		completer.CompleteFunc = func(context.Context, []core.ConversationTurn, int, float64) (string, error) {
			return `{"target_date": "2025-03-07", "confidence": 1.4, "interpretation": "x"}`, nil
		}
		e := newTestEnhancer(t, completer)

		result, err := e.ParseDate(ctx, "xyz")
		require.NoError(t, err)
		assert.Nil(t, result)
	})
}
