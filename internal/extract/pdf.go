package extract

import (
	"bytes"
	"strings"

	"github.com/ledongthuc/pdf"
)

// FromPDF extracts text from a PDF by concatenating the text runs of
// every page in page order. Runs within a page are joined by a single
// space and each page contributes a trailing space, so downstream
// consumers must tolerate a trailing space in the result. No line layout
// is reconstructed.
func FromPDF(data []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", &ExtractionError{Message: "failed to open PDF", Cause: err}
	}

	var pages [][]pdf.Text
	for pageNum := 1; pageNum <= reader.NumPage(); pageNum++ {
		page := reader.Page(pageNum)
		if page.V.IsNull() {
			continue
		}
		pages = append(pages, page.Content().Text)
	}
	return joinPages(pages), nil
}

// joinPages concatenates per-page text in page order. Each page
// contributes a trailing space, so the overall result carries one too.
func joinPages(pages [][]pdf.Text) string {
	var sb strings.Builder
	for _, runs := range pages {
		sb.WriteString(joinTextRuns(runs))
		sb.WriteString(" ")
	}
	return sb.String()
}

// joinTextRuns joins the extracted text runs of one page with single
// spaces, in extraction order.
func joinTextRuns(runs []pdf.Text) string {
	parts := make([]string, 0, len(runs))
	for _, run := range runs {
		parts = append(parts, run.S)
	}
	return strings.Join(parts, " ")
}
