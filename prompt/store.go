package prompt

import (
	"fmt"
	"regexp"
	"strings"
)

// Type names a prompt template.
type Type string

const (
	// TypeKeywords is the semantic keyword extraction prompt.
	TypeKeywords Type = "keywords"
	// TypeDate is the date analysis prompt.
	TypeDate Type = "date"
	// TypeSelection is the relevance/selection prompt.
	TypeSelection Type = "selection"
)

// placeholderPattern matches a {{variable}} placeholder.
var placeholderPattern = regexp.MustCompile(`\{\{\s*([a-zA-Z0-9_]+)\s*\}\}`)

// Store holds prompt templates keyed by type. The zero value is not usable;
// construct with NewStore, which seeds the built-in templates.
type Store struct {
	templates map[Type]string
}

// StoreOption configures a Store.
type StoreOption func(*Store)

// WithTemplate overrides the template for the given type.
func WithTemplate(t Type, text string) StoreOption {
	return func(s *Store) {
		s.templates[t] = text
	}
}

// NewStore creates a prompt store seeded with the built-in templates.
func NewStore(opts ...StoreOption) *Store {
	s := &Store{
		templates: map[Type]string{
			TypeKeywords:  keywordsPromptTemplate,
			TypeDate:      datePromptTemplate,
			TypeSelection: selectionPromptTemplate,
		},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Get returns the template text for the given type.
func (s *Store) Get(t Type) (string, error) {
	text, ok := s.templates[t]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownType, t)
	}
	return text, nil
}

// Render retrieves the template for the given type and substitutes every
// {{variable}} placeholder from vars. A placeholder left unresolved after
// substitution is a configuration error: the engine must reject the prompt
// before sending it to the model.
func (s *Store) Render(t Type, vars map[string]string) (string, error) {
	text, err := s.Get(t)
	if err != nil {
		return "", err
	}
	return Render(text, vars)
}

// Render substitutes {{variable}} placeholders in the template text.
// Returns ErrUnresolvedPlaceholder if any placeholder has no value in vars.
func Render(template string, vars map[string]string) (string, error) {
	var missing []string
	rendered := placeholderPattern.ReplaceAllStringFunc(template, func(match string) string {
		name := placeholderPattern.FindStringSubmatch(match)[1]
		value, ok := vars[name]
		if !ok {
			missing = append(missing, name)
			return match
		}
		return value
	})

	if len(missing) > 0 {
		return "", fmt.Errorf("%w: %s", ErrUnresolvedPlaceholder, strings.Join(missing, ", "))
	}
	return rendered, nil
}
