package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-builder/internal/llm"
	"github.com/jonathan/resume-builder/internal/resume"
)

type fakeLLM struct {
	response   string
	err        error
	lastPrompt string
}

func (f *fakeLLM) GenerateContent(_ context.Context, prompt string, _ llm.ModelTier) (string, error) {
	f.lastPrompt = prompt
	return f.response, f.err
}

func (f *fakeLLM) GenerateJSON(_ context.Context, prompt string, _ llm.ModelTier) (string, error) {
	f.lastPrompt = prompt
	return f.response, f.err
}

func (f *fakeLLM) GenerateUnfiltered(_ context.Context, prompt string, _ llm.ModelTier) (string, error) {
	f.lastPrompt = prompt
	return f.response, f.err
}

func (f *fakeLLM) GetModel(llm.ModelTier) string { return "fake-model" }

func (f *fakeLLM) Close() error { return nil }

func newTestServer(t *testing.T, client llm.Client) *Server {
	t.Helper()
	s := newServer(Config{Port: 0, SessionTTL: time.Minute}, client)
	t.Cleanup(func() {
		s.rateLimiter.Stop()
		s.sessions.Stop()
	})
	return s
}

// testClient sends requests through the full handler chain and carries
// the session cookie across calls, like a browser would.
type testClient struct {
	t       *testing.T
	handler http.Handler
	cookies []*http.Cookie
}

func newTestClient(t *testing.T, s *Server) *testClient {
	return &testClient{t: t, handler: s.Handler()}
}

func (c *testClient) do(method, path, contentType string, body io.Reader) *httptest.ResponseRecorder {
	c.t.Helper()
	req := httptest.NewRequest(method, path, body)
	req.RemoteAddr = "192.0.2.1:1234"
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	for _, cookie := range c.cookies {
		req.AddCookie(cookie)
	}
	rec := httptest.NewRecorder()
	c.handler.ServeHTTP(rec, req)
	if cookies := rec.Result().Cookies(); len(cookies) > 0 {
		c.cookies = cookies
	}
	return rec
}

func (c *testClient) doJSON(method, path string, body string) *httptest.ResponseRecorder {
	return c.do(method, path, "application/json", strings.NewReader(body))
}

func (c *testClient) getDocument() *resume.Document {
	c.t.Helper()
	rec := c.do(http.MethodGet, "/api/resume", "", nil)
	require.Equal(c.t, http.StatusOK, rec.Code)
	var doc resume.Document
	require.NoError(c.t, json.Unmarshal(rec.Body.Bytes(), &doc))
	return &doc
}

// multipartBody builds a process-endpoint form with optional text field
// and optional file part.
func multipartBody(t *testing.T, textContent string, fileName, fileType string, fileData []byte) (string, io.Reader) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	if textContent != "" {
		require.NoError(t, mw.WriteField("textContent", textContent))
	}
	if fileName != "" {
		header := textproto.MIMEHeader{}
		header.Set("Content-Disposition", `form-data; name="resumeFile"; filename="`+fileName+`"`)
		header.Set("Content-Type", fileType)
		part, err := mw.CreatePart(header)
		require.NoError(t, err)
		_, err = part.Write(fileData)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())
	return mw.FormDataContentType(), &buf
}

func TestHealth(t *testing.T) {
	c := newTestClient(t, newTestServer(t, nil))

	rec := c.do(http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status": "ok"}`, rec.Body.String())
}

func TestSessionCookieIssuedAndReused(t *testing.T) {
	s := newTestServer(t, nil)
	c := newTestClient(t, s)

	rec := c.do(http.MethodGet, "/api/resume", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, c.cookies, 1)
	assert.Equal(t, "resume_session", c.cookies[0].Name)

	rec = c.doJSON(http.MethodPut, "/api/resume/skills", `{"skills": "Go, SQL"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	assert.Equal(t, "Go, SQL", c.getDocument().Skills)
}

func TestSessionsAreIsolated(t *testing.T) {
	s := newTestServer(t, nil)
	first := newTestClient(t, s)
	second := newTestClient(t, s)

	rec := first.doJSON(http.MethodPut, "/api/resume/skills", `{"skills": "Go"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	assert.Equal(t, "Go", first.getDocument().Skills)
	assert.Empty(t, second.getDocument().Skills)
}

func TestGetResumeSeedsEmptyDocument(t *testing.T) {
	c := newTestClient(t, newTestServer(t, nil))

	doc := c.getDocument()
	assert.Len(t, doc.WorkExperience, 1)
	assert.Len(t, doc.Education, 1)
	assert.Len(t, doc.Projects, 1)
	assert.Len(t, doc.AchievementsCertifications, 1)
	assert.NotEmpty(t, doc.WorkExperience[0].ID)
}

func TestProcessResumeFromText(t *testing.T) {
	client := &fakeLLM{response: `{"personalInfo": {"fullName": "John Doe"}, "skills": "Go"}`}
	c := newTestClient(t, newTestServer(t, client))

	contentType, body := multipartBody(t, "John Doe\nSoftware Engineer", "", "", nil)
	rec := c.do(http.MethodPost, "/api/resume/process", contentType, body)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp ProcessResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	require.NotNil(t, resp.Data)
	assert.Equal(t, "John Doe", resp.Data.PersonalInfo.FullName)

	assert.Contains(t, client.lastPrompt, "John Doe\nSoftware Engineer")
	assert.Equal(t, "John Doe", c.getDocument().PersonalInfo.FullName, "session document replaced on success")
}

func TestProcessResumeNoInput(t *testing.T) {
	c := newTestClient(t, newTestServer(t, &fakeLLM{response: "{}"}))

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	require.NoError(t, mw.Close())

	rec := c.do(http.MethodPost, "/api/resume/process", mw.FormDataContentType(), &buf)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "no resume file or text content")
}

func TestProcessResumeWhitespaceText(t *testing.T) {
	c := newTestClient(t, newTestServer(t, &fakeLLM{response: "{}"}))

	contentType, body := multipartBody(t, "   \n\t ", "", "", nil)
	rec := c.do(http.MethodPost, "/api/resume/process", contentType, body)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "empty")
}

func TestProcessResumeUnsupportedFileType(t *testing.T) {
	c := newTestClient(t, newTestServer(t, &fakeLLM{response: "{}"}))

	contentType, body := multipartBody(t, "", "resume.txt", "text/plain", []byte("plain text resume"))
	rec := c.do(http.MethodPost, "/api/resume/process", contentType, body)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "unsupported file type")
}

func TestProcessResumeMalformedAIResponse(t *testing.T) {
	c := newTestClient(t, newTestServer(t, &fakeLLM{response: "Sorry, I cannot help with that."}))

	contentType, body := multipartBody(t, "resume text", "", "", nil)
	rec := c.do(http.MethodPost, "/api/resume/process", contentType, body)
	assert.Equal(t, http.StatusBadGateway, rec.Code)
}

func TestProcessResumeFailureKeepsDocument(t *testing.T) {
	c := newTestClient(t, newTestServer(t, &fakeLLM{err: errors.New("boom")}))

	rec := c.doJSON(http.MethodPut, "/api/resume/skills", `{"skills": "Kept"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	contentType, body := multipartBody(t, "resume text", "", "", nil)
	rec = c.do(http.MethodPost, "/api/resume/process", contentType, body)
	require.Equal(t, http.StatusBadGateway, rec.Code)

	assert.Equal(t, "Kept", c.getDocument().Skills, "a failed process call must not touch the session document")
}

func TestProcessResumeWithoutAPIKey(t *testing.T) {
	c := newTestClient(t, newTestServer(t, nil))

	contentType, body := multipartBody(t, "resume text", "", "", nil)
	rec := c.do(http.MethodPost, "/api/resume/process", contentType, body)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, rec.Body.String(), "GEMINI_API_KEY")
}

func TestReplaceResume(t *testing.T) {
	c := newTestClient(t, newTestServer(t, nil))

	rec := c.doJSON(http.MethodPut, "/api/resume", `{
		"personalInfo": {"fullName": "Jane"},
		"workExperience": [{"title": "Dev"}],
		"skills": "Go"
	}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var doc resume.Document
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &doc))
	assert.Equal(t, "Jane", doc.PersonalInfo.FullName)
	require.Len(t, doc.WorkExperience, 1)
	assert.NotEmpty(t, doc.WorkExperience[0].ID, "missing record IDs are assigned on replace")
}

func TestUpdatePersonalInfoPartial(t *testing.T) {
	c := newTestClient(t, newTestServer(t, nil))

	rec := c.doJSON(http.MethodPut, "/api/resume/personal-info", `{"fullName": "Jane", "email": "jane@example.com"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = c.doJSON(http.MethodPut, "/api/resume/personal-info", `{"phone": "555-0100"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	doc := c.getDocument()
	assert.Equal(t, "Jane", doc.PersonalInfo.FullName, "untouched fields survive a partial update")
	assert.Equal(t, "jane@example.com", doc.PersonalInfo.Email)
	assert.Equal(t, "555-0100", doc.PersonalInfo.Phone)
}

func TestUpdateSkillsMissingField(t *testing.T) {
	c := newTestClient(t, newTestServer(t, nil))

	rec := c.doJSON(http.MethodPut, "/api/resume/skills", `{}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRecordListLifecycle(t *testing.T) {
	c := newTestClient(t, newTestServer(t, nil))

	rec := c.do(http.MethodPost, "/api/resume/work-experience", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var doc resume.Document
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &doc))
	require.Len(t, doc.WorkExperience, 2, "seed record plus the added one")
	added := doc.WorkExperience[1].ID
	require.NotEmpty(t, added)

	rec = c.doJSON(http.MethodPatch, "/api/resume/work-experience/"+added, `{"title": "Engineer", "company": "Acme"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &doc))
	assert.Equal(t, "Engineer", doc.WorkExperience[1].Title)
	assert.Equal(t, "Acme", doc.WorkExperience[1].Company)
	assert.Equal(t, added, doc.WorkExperience[1].ID, "updates never reassign IDs")

	rec = c.do(http.MethodDelete, "/api/resume/work-experience/"+added, "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &doc))
	assert.Len(t, doc.WorkExperience, 1)
}

func TestRecordListUnknownList(t *testing.T) {
	c := newTestClient(t, newTestServer(t, nil))

	rec := c.do(http.MethodPost, "/api/resume/hobbies", "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = c.doJSON(http.MethodPatch, "/api/resume/hobbies/some-id", `{}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = c.do(http.MethodDelete, "/api/resume/hobbies/some-id", "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRecordRemoveUnknownIDIsNoOp(t *testing.T) {
	c := newTestClient(t, newTestServer(t, nil))

	before := c.getDocument()
	rec := c.do(http.MethodDelete, "/api/resume/education/does-not-exist", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var doc resume.Document
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &doc))
	assert.Equal(t, len(before.Education), len(doc.Education))
}

func TestAISuggestions(t *testing.T) {
	client := &fakeLLM{response: "Python\n\nReact\nSQL"}
	c := newTestClient(t, newTestServer(t, client))

	rec := c.doJSON(http.MethodPost, "/api/ai-suggestions", `{"text": "Python, React, SQL", "type": "skills"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp SuggestionsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, []string{"Python", "React", "SQL"}, resp.Suggestions)
}

func TestAISuggestionsValidation(t *testing.T) {
	c := newTestClient(t, newTestServer(t, &fakeLLM{response: "ok"}))

	tests := []struct {
		name string
		body string
	}{
		{"missing text", `{"type": "skills"}`},
		{"missing type", `{"text": "something"}`},
		{"empty body", `{}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := c.doJSON(http.MethodPost, "/api/ai-suggestions", tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Contains(t, rec.Body.String(), "Missing text or type")
		})
	}
}

func TestAISuggestionsInvalidType(t *testing.T) {
	c := newTestClient(t, newTestServer(t, &fakeLLM{response: "ok"}))

	rec := c.doJSON(http.MethodPost, "/api/ai-suggestions", `{"text": "something", "type": "coverLetter"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "invalid suggestion type")
}

func TestAISuggestionsWithoutAPIKey(t *testing.T) {
	c := newTestClient(t, newTestServer(t, nil))

	rec := c.doJSON(http.MethodPost, "/api/ai-suggestions", `{"text": "x", "type": "skills"}`)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestAISuggestionsEmptyResponse(t *testing.T) {
	c := newTestClient(t, newTestServer(t, &fakeLLM{response: "\n"}))

	rec := c.doJSON(http.MethodPost, "/api/ai-suggestions", `{"text": "x", "type": "skills"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"suggestions": []}`, rec.Body.String())
}

func TestGeneratePDFFromSession(t *testing.T) {
	c := newTestClient(t, newTestServer(t, nil))

	rec := c.doJSON(http.MethodPut, "/api/resume/skills", `{"skills": "Go"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = c.do(http.MethodPost, "/api/generate-pdf", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), `filename="resume.pdf"`)
	assert.Equal(t, "%PDF", rec.Body.String()[:4])
}

func TestGeneratePDFInlineDocument(t *testing.T) {
	c := newTestClient(t, newTestServer(t, nil))

	rec := c.doJSON(http.MethodPost, "/api/generate-pdf", `{"resumeData": {"personalInfo": {"fullName": "Inline Doc"}}}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
	assert.Equal(t, "%PDF", rec.Body.String()[:4])
}

func TestRateLimitAISuggestions(t *testing.T) {
	c := newTestClient(t, newTestServer(t, &fakeLLM{response: "ok"}))

	var last *httptest.ResponseRecorder
	for i := 0; i < 11; i++ {
		last = c.doJSON(http.MethodPost, "/api/ai-suggestions", `{"text": "x", "type": "skills"}`)
	}
	assert.Equal(t, http.StatusTooManyRequests, last.Code)
	assert.NotEmpty(t, last.Header().Get("Retry-After"))
}

func TestCORSPreflight(t *testing.T) {
	c := newTestClient(t, newTestServer(t, nil))

	rec := c.do(http.MethodOptions, "/api/resume", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, rec.Header().Get("Access-Control-Allow-Methods"), "PATCH")
}

func TestHTTPStatusMapping(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"empty document", &ErrEmptyDocument{}, http.StatusBadRequest},
		{"no input", &ErrNoInput{}, http.StatusBadRequest},
		{"missing api key", &ErrMissingAPIKey{}, http.StatusServiceUnavailable},
		{"unknown error", errors.New("anything"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HTTPStatus(tt.err))
		})
	}
}
