package enhance

import (
	"context"
	"encoding/json"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/poiesic/taskscout/ai"
	"github.com/poiesic/taskscout/core"
	"github.com/poiesic/taskscout/prompt"
	"github.com/poiesic/taskscout/resilience"
)

// daysAgoPattern matches expressions like "3 days ago" or "0 day ago".
var daysAgoPattern = regexp.MustCompile(`^(\d+)\s+days?\s+ago$`)

// ParseDate resolves a date expression to a concrete date. Recognized
// relative forms (today, yesterday, tomorrow, last week, this week,
// "N day(s) ago") are resolved locally against the clock using calendar-day
// arithmetic; anything else goes to the language model. Empty input and
// unresolvable input both return nil without an error; only a prompt
// configuration error is reported.
func (e *Enhancer) ParseDate(ctx context.Context, input string) (*time.Time, error) {
	normalized := strings.ToLower(strings.TrimSpace(input))
	if normalized == "" {
		return nil, nil
	}

	if resolved, ok := e.parseRelative(normalized); ok {
		return &resolved, nil
	}

	analysis, err := e.analyzeDate(ctx, input)
	if err != nil {
		return nil, err
	}
	if analysis == nil {
		return nil, nil
	}
	return &analysis.TargetDate, nil
}

// parseRelative resolves the fixed relative expressions. The second return
// reports whether the input matched one.
func (e *Enhancer) parseRelative(normalized string) (time.Time, bool) {
	now := e.clock()

	switch normalized {
	case "today", "this week":
		return now, true
	case "yesterday":
		return now.AddDate(0, 0, -1), true
	case "tomorrow":
		return now.AddDate(0, 0, 1), true
	case "last week":
		return now.AddDate(0, 0, -7), true
	}

	if m := daysAgoPattern.FindStringSubmatch(normalized); m != nil {
		n, err := strconv.Atoi(m[1])
		if err == nil {
			return now.AddDate(0, 0, -n), true
		}
	}

	return time.Time{}, false
}

// dateReply is the expected shape of the model's date analysis.
type dateReply struct {
	TargetDate     string  `json:"target_date"`
	Confidence     float64 `json:"confidence"`
	Interpretation string  `json:"interpretation"`
}

// analyzeDate asks the language model to resolve the expression. Any
// transport or parse failure yields (nil, nil): the caller treats the
// expression as unparseable rather than failing the search.
func (e *Enhancer) analyzeDate(ctx context.Context, input string) (*core.DateAnalysis, error) {
	now := e.clock()
	rendered, err := e.prompts.Render(prompt.TypeDate, map[string]string{
		"input": input,
		"today": now.Format("2006-01-02"),
	})
	if err != nil {
		return nil, err
	}

	turns := []core.ConversationTurn{
		{Speaker: core.SpeakerHuman, Content: rendered, Timestamp: now},
	}

	response, err := resilience.Call(ctx, e.policy, func() (string, error) {
		return e.completer.Complete(ctx, turns, completionMaxTokens, 0)
	})
	if err != nil {
		e.logger.Warn("date analysis call failed", "input", input, "err", err)
		return nil, nil
	}

	var reply dateReply
	if err := json.Unmarshal([]byte(ai.CleanJSONResponse(response)), &reply); err != nil {
		e.logger.Warn("date analysis returned malformed JSON", "input", input, "err", err)
		return nil, nil
	}

	target, err := time.Parse("2006-01-02", reply.TargetDate)
	if err != nil {
		e.logger.Warn("date analysis returned invalid date", "value", reply.TargetDate, "err", err)
		return nil, nil
	}
	if reply.Confidence < 0 || reply.Confidence > 1 {
		e.logger.Warn("date analysis confidence out of range", "confidence", reply.Confidence)
		return nil, nil
	}

	return &core.DateAnalysis{
		TargetDate:     target,
		Confidence:     reply.Confidence,
		Interpretation: reply.Interpretation,
	}, nil
}
