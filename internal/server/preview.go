package server

import (
	"embed"
	"html/template"
	"log"
	"net/http"
)

//go:embed web
var webFS embed.FS

var previewTemplate = template.Must(template.ParseFS(webFS, "web/preview.html.tmpl"))

// handleIndex serves the embedded editor page.
func (s *Server) handleIndex(w http.ResponseWriter, _ *http.Request) {
	page, err := webFS.ReadFile("web/index.html")
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "index page unavailable")
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if _, err := w.Write(page); err != nil {
		log.Printf("Error writing index page: %v", err)
	}
}

// handlePreview renders the session Document as an HTML preview with the
// same section order as the PDF output.
func (s *Server) handlePreview(w http.ResponseWriter, r *http.Request) {
	doc := s.sessionStore(r).Snapshot()
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := previewTemplate.Execute(w, doc); err != nil {
		log.Printf("Error rendering preview: %v", err)
	}
}
