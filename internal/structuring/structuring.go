// Package structuring converts unstructured résumé text into a Document
// via the language-model service. The model is prompted with the target
// JSON shape and the text verbatim; its output is cleaned, validated
// against the document schema and decoded.
package structuring

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/jonathan/resume-builder/internal/llm"
	"github.com/jonathan/resume-builder/internal/prompts"
	"github.com/jonathan/resume-builder/internal/resume"
	"github.com/jonathan/resume-builder/internal/schemas"
)

const promptFile = "structuring.json"

// Adapter performs AI-driven résumé structuring.
type Adapter struct {
	client llm.Client
	tier   llm.ModelTier
}

// New creates an Adapter backed by the given LLM client.
func New(client llm.Client) *Adapter {
	return &Adapter{client: client, tier: llm.TierStandard}
}

// Structure sends the résumé text to the model and parses the response
// into a Document. Any successfully parsed JSON counts as success, even
// if all fields come back empty; the caller decides what to do with a
// sparse Document. Every repeated record without an identifier gets a
// freshly generated one; model-supplied identifiers are kept as-is.
func (a *Adapter) Structure(ctx context.Context, text string) (*resume.Document, error) {
	template, err := prompts.Get(promptFile, "structure_resume")
	if err != nil {
		return nil, &ServiceError{Message: "failed to load structuring prompt", Cause: err}
	}
	prompt := prompts.Format(template, map[string]string{"ResumeText": text})

	raw, err := a.client.GenerateJSON(ctx, prompt, a.tier)
	if err != nil {
		return nil, &ServiceError{Message: "language model call failed", Cause: err}
	}

	cleaned := llm.StripControlChars(llm.CleanJSONBlock(raw))

	if err := schemas.ValidateDocumentJSON(cleaned); err != nil {
		var ve *schemas.ValidationError
		if errors.As(err, &ve) {
			return nil, &MalformedResponseError{Message: "response does not match the document schema", Cause: ve}
		}
		return nil, &MalformedResponseError{Message: "response is not valid JSON", Cause: err}
	}

	var doc resume.Document
	if err := json.Unmarshal([]byte(cleaned), &doc); err != nil {
		return nil, &MalformedResponseError{Message: "failed to decode response JSON", Cause: err}
	}

	doc.EnsureIDs()
	return &doc, nil
}
