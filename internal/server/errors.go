// Package server provides the HTTP API for the résumé builder.
package server

import (
	"errors"
	"net/http"

	"github.com/jonathan/resume-builder/internal/enhance"
	"github.com/jonathan/resume-builder/internal/extract"
	"github.com/jonathan/resume-builder/internal/render"
	"github.com/jonathan/resume-builder/internal/structuring"
)

// ErrEmptyDocument indicates the extracted or provided text was empty or
// whitespace-only.
type ErrEmptyDocument struct{}

func (e *ErrEmptyDocument) Error() string {
	return "could not extract readable text from the document or provided text is empty"
}

// ErrMissingAPIKey indicates the language-model credential was not
// configured. Only the two AI adapters need it; the rest of the service
// works without it.
type ErrMissingAPIKey struct{}

func (e *ErrMissingAPIKey) Error() string {
	return "AI features are unavailable: GEMINI_API_KEY is not configured"
}

// ErrNoInput indicates a process request with neither a file nor text content.
type ErrNoInput struct{}

func (e *ErrNoInput) Error() string {
	return "no resume file or text content provided"
}

// HTTPStatus returns the appropriate HTTP status code for an error.
func HTTPStatus(err error) int {
	var (
		unsupportedType *extract.UnsupportedTypeError
		emptyDoc        *ErrEmptyDocument
		noInput         *ErrNoInput
		missingKey      *ErrMissingAPIKey
		invalidType     *enhance.InvalidTypeError
		malformed       *structuring.MalformedResponseError
		structSvc       *structuring.ServiceError
		enhanceSvc      *enhance.ServiceError
		pdfGen          *render.GenerationError
	)

	switch {
	case errors.As(err, &unsupportedType),
		errors.As(err, &emptyDoc),
		errors.As(err, &noInput),
		errors.As(err, &invalidType):
		return http.StatusBadRequest
	case errors.As(err, &missingKey):
		return http.StatusServiceUnavailable
	case errors.As(err, &malformed),
		errors.As(err, &structSvc),
		errors.As(err, &enhanceSvc):
		return http.StatusBadGateway
	case errors.As(err, &pdfGen):
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}
