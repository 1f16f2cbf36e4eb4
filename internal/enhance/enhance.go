// Package enhance rewrites a single free-text résumé field into
// alternative phrasings via the language-model service. The raw response
// is treated as a flat list of lines; no further structure is imposed,
// so a categorized skills list and a bullet list are both just "lines".
package enhance

import (
	"context"

	"github.com/jonathan/resume-builder/internal/llm"
	"github.com/jonathan/resume-builder/internal/prompts"
)

const promptFile = "enhancement.json"

// SuggestionType tags which field is being enhanced. The tag selects the
// prompt template: bullet-point style for descriptions, paragraph style
// for the summary, categorized-list style for skills.
type SuggestionType string

// Suggestion types accepted by Suggest. These are wire-level values used
// verbatim in the HTTP API.
const (
	TypeWorkExperience     SuggestionType = "workExperience"
	TypePersonalSummary    SuggestionType = "personalInfoSummary"
	TypeSkills             SuggestionType = "skills"
	TypeProjectDescription SuggestionType = "projectDescription"
)

var knownTypes = map[SuggestionType]bool{
	TypeWorkExperience:     true,
	TypePersonalSummary:    true,
	TypeSkills:             true,
	TypeProjectDescription: true,
}

// Adapter performs AI-driven single-field enhancement.
type Adapter struct {
	client llm.Client
	tier   llm.ModelTier
}

// New creates an Adapter backed by the given LLM client.
func New(client llm.Client) *Adapter {
	return &Adapter{client: client, tier: llm.TierLite}
}

// Suggest returns alternative phrasings for the given field text, in
// model order, blank lines dropped. Safety filtering is disabled for the
// call since the input is user-authored résumé content. An unrecognized
// type tag fails before any network call is made.
func (a *Adapter) Suggest(ctx context.Context, suggestionType SuggestionType, text string) ([]string, error) {
	if !knownTypes[suggestionType] {
		return nil, &InvalidTypeError{Type: string(suggestionType)}
	}

	template, err := prompts.Get(promptFile, string(suggestionType))
	if err != nil {
		return nil, &ServiceError{Message: "failed to load enhancement prompt", Cause: err}
	}
	prompt := prompts.Format(template, map[string]string{"Text": text})

	raw, err := a.client.GenerateUnfiltered(ctx, prompt, a.tier)
	if err != nil {
		return nil, &ServiceError{Message: "language model call failed", Cause: err}
	}

	return llm.SplitLines(raw), nil
}
