package server

import (
	"encoding/json"
	"io"
	"log"
	"net/http"
	"strings"

	"github.com/jonathan/resume-builder/internal/enhance"
	"github.com/jonathan/resume-builder/internal/extract"
	"github.com/jonathan/resume-builder/internal/render"
	"github.com/jonathan/resume-builder/internal/resume"
	"github.com/jonathan/resume-builder/internal/store"
)

// maxUploadBytes caps résumé uploads. Résumés are small documents; this
// mostly guards against accidental large files.
const maxUploadBytes = 10 << 20

// ProcessResponse is the response for /api/resume/process
type ProcessResponse struct {
	Success bool             `json:"success"`
	Data    *resume.Document `json:"data,omitempty"`
}

// SkillsRequest is the request body for /api/resume/skills
type SkillsRequest struct {
	Skills *string `json:"skills" validate:"required"`
}

// SuggestionsRequest is the request body for /api/ai-suggestions
type SuggestionsRequest struct {
	Text string `json:"text" validate:"required"`
	Type string `json:"type" validate:"required"`
}

// SuggestionsResponse is the response for /api/ai-suggestions
type SuggestionsResponse struct {
	Suggestions []string `json:"suggestions"`
}

// GeneratePDFRequest is the request body for /api/generate-pdf. The
// inline document is optional; the session Document is used when absent.
type GeneratePDFRequest struct {
	ResumeData *resume.Document `json:"resumeData"`
}

// handleProcessResume accepts an uploaded résumé file or pre-extracted
// text, runs extraction then AI structuring, and replaces the session
// Document on success. Extraction strictly precedes structuring, and any
// failure leaves the prior Document untouched.
func (s *Server) handleProcessResume(w http.ResponseWriter, r *http.Request) {
	if s.structurer == nil {
		s.adapterError(w, "Resume processing unavailable", &ErrMissingAPIKey{})
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid multipart form: "+err.Error())
		return
	}

	text, err := s.resumeText(r)
	if err != nil {
		s.adapterError(w, "Resume text extraction failed", err)
		return
	}
	if strings.TrimSpace(text) == "" {
		s.adapterError(w, "Resume text empty after extraction", &ErrEmptyDocument{})
		return
	}

	doc, err := s.structurer.Structure(r.Context(), text)
	if err != nil {
		s.adapterError(w, "AI structuring failed", err)
		return
	}

	s.sessionStore(r).Replace(doc)
	s.jsonResponse(w, http.StatusOK, ProcessResponse{Success: true, Data: doc})
}

// resumeText pulls plain text out of the process request: either an
// uploaded binary file or a pre-extracted textContent field, never both
// absent.
func (s *Server) resumeText(r *http.Request) (string, error) {
	file, header, err := r.FormFile("resumeFile")
	if err == nil {
		defer file.Close()
		data, err := io.ReadAll(file)
		if err != nil {
			return "", &extract.ExtractionError{Message: "failed to read upload", Cause: err}
		}
		return extract.Extract(data, header.Header.Get("Content-Type"))
	}

	if text := r.FormValue("textContent"); text != "" {
		return text, nil
	}

	return "", &ErrNoInput{}
}

// handleGetResume returns the session's current Document.
func (s *Server) handleGetResume(w http.ResponseWriter, r *http.Request) {
	s.jsonResponse(w, http.StatusOK, s.sessionStore(r).Snapshot())
}

// handleReplaceResume installs a full Document wholesale.
func (s *Server) handleReplaceResume(w http.ResponseWriter, r *http.Request) {
	var doc resume.Document
	if err := json.NewDecoder(r.Body).Decode(&doc); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	doc.EnsureIDs()
	st := s.sessionStore(r)
	st.Replace(&doc)
	s.jsonResponse(w, http.StatusOK, st.Snapshot())
}

// handleUpdatePersonalInfo merges a partial update onto personal info.
func (s *Server) handleUpdatePersonalInfo(w http.ResponseWriter, r *http.Request) {
	var patch store.PersonalInfoPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	st := s.sessionStore(r)
	st.UpdatePersonalInfo(patch)
	s.jsonResponse(w, http.StatusOK, st.Snapshot())
}

// handleUpdateSkills replaces the skills free-text field.
func (s *Server) handleUpdateSkills(w http.ResponseWriter, r *http.Request) {
	var req SkillsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if err := s.validate.Struct(req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "skills is required")
		return
	}
	st := s.sessionStore(r)
	st.UpdateSkills(*req.Skills)
	s.jsonResponse(w, http.StatusOK, st.Snapshot())
}

// List path segments for the repeated-record endpoints.
const (
	listWorkExperience = "work-experience"
	listEducation      = "education"
	listProjects       = "projects"
	listAchievements   = "achievements"
)

// handleAddRecord appends an empty record with a fresh ID to a list.
func (s *Server) handleAddRecord(w http.ResponseWriter, r *http.Request) {
	st := s.sessionStore(r)
	switch r.PathValue("list") {
	case listWorkExperience:
		st.AddWorkExperience()
	case listEducation:
		st.AddEducation()
	case listProjects:
		st.AddProject()
	case listAchievements:
		st.AddAchievement()
	default:
		s.errorResponse(w, http.StatusNotFound, "Unknown list: "+r.PathValue("list"))
		return
	}
	s.jsonResponse(w, http.StatusOK, st.Snapshot())
}

// handleUpdateRecord merges a partial update onto one record. An unknown
// record ID is a no-op, matching the store contract.
func (s *Server) handleUpdateRecord(w http.ResponseWriter, r *http.Request) {
	st := s.sessionStore(r)
	id := r.PathValue("id")

	switch r.PathValue("list") {
	case listWorkExperience:
		var patch store.WorkExperiencePatch
		if !s.decodeBody(w, r, &patch) {
			return
		}
		st.UpdateWorkExperience(id, patch)
	case listEducation:
		var patch store.EducationPatch
		if !s.decodeBody(w, r, &patch) {
			return
		}
		st.UpdateEducation(id, patch)
	case listProjects:
		var patch store.ProjectPatch
		if !s.decodeBody(w, r, &patch) {
			return
		}
		st.UpdateProject(id, patch)
	case listAchievements:
		var patch store.AchievementPatch
		if !s.decodeBody(w, r, &patch) {
			return
		}
		st.UpdateAchievement(id, patch)
	default:
		s.errorResponse(w, http.StatusNotFound, "Unknown list: "+r.PathValue("list"))
		return
	}
	s.jsonResponse(w, http.StatusOK, st.Snapshot())
}

// handleRemoveRecord removes one record. Unknown IDs are a no-op; lists
// may become empty.
func (s *Server) handleRemoveRecord(w http.ResponseWriter, r *http.Request) {
	st := s.sessionStore(r)
	id := r.PathValue("id")

	switch r.PathValue("list") {
	case listWorkExperience:
		st.RemoveWorkExperience(id)
	case listEducation:
		st.RemoveEducation(id)
	case listProjects:
		st.RemoveProject(id)
	case listAchievements:
		st.RemoveAchievement(id)
	default:
		s.errorResponse(w, http.StatusNotFound, "Unknown list: "+r.PathValue("list"))
		return
	}
	s.jsonResponse(w, http.StatusOK, st.Snapshot())
}

// handleAISuggestions returns alternative phrasings for one field.
func (s *Server) handleAISuggestions(w http.ResponseWriter, r *http.Request) {
	if s.enhancer == nil {
		s.adapterError(w, "AI suggestions unavailable", &ErrMissingAPIKey{})
		return
	}

	var req SuggestionsRequest
	if !s.decodeBody(w, r, &req) {
		return
	}
	if err := s.validate.Struct(req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Missing text or type in request body")
		return
	}

	suggestions, err := s.enhancer.Suggest(r.Context(), enhance.SuggestionType(req.Type), req.Text)
	if err != nil {
		s.adapterError(w, "AI suggestion generation failed", err)
		return
	}
	if suggestions == nil {
		suggestions = []string{}
	}
	s.jsonResponse(w, http.StatusOK, SuggestionsResponse{Suggestions: suggestions})
}

// handleGeneratePDF renders a Document to PDF bytes. An inline document
// in the body wins; otherwise the session Document is rendered.
func (s *Server) handleGeneratePDF(w http.ResponseWriter, r *http.Request) {
	doc := s.sessionStore(r).Snapshot()

	if r.Body != nil {
		var req GeneratePDFRequest
		// An empty or non-JSON body falls back to the session Document.
		if err := json.NewDecoder(r.Body).Decode(&req); err == nil && req.ResumeData != nil {
			doc = req.ResumeData
		}
	}

	pdfBytes, err := render.Render(doc)
	if err != nil {
		s.adapterError(w, "PDF generation failed", err)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="resume.pdf"`)
	if _, err := w.Write(pdfBytes); err != nil {
		log.Printf("Error writing PDF response: %v", err)
	}
}

// decodeBody decodes a JSON request body, writing a 400 on failure.
func (s *Server) decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return false
	}
	return true
}
