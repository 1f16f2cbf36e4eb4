package extract

import (
	"archive/zip"
	"bytes"
	"io"
	"regexp"
	"strings"
)

var xmlTags = regexp.MustCompile(`<[^>]+>`)

// FromDOCX extracts raw text from a DOCX archive by reading
// word/document.xml, turning paragraph boundaries into newlines and
// stripping all remaining markup. All formatting is discarded.
func FromDOCX(data []byte) (string, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", &ExtractionError{Message: "failed to open DOCX archive", Cause: err}
	}

	docXML, err := readDocumentXML(zr)
	if err != nil {
		return "", err
	}

	text := strings.ReplaceAll(docXML, "</w:p>", "\n")
	text = strings.ReplaceAll(text, "<w:tab/>", "\t")
	text = xmlTags.ReplaceAllString(text, "")
	return text, nil
}

func readDocumentXML(zr *zip.Reader) (string, error) {
	for _, f := range zr.File {
		if f.Name != "word/document.xml" {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return "", &ExtractionError{Message: "failed to open word/document.xml", Cause: err}
		}
		defer rc.Close()
		raw, err := io.ReadAll(rc)
		if err != nil {
			return "", &ExtractionError{Message: "failed to read word/document.xml", Cause: err}
		}
		return string(raw), nil
	}
	return "", &ExtractionError{Message: "word/document.xml not found in archive"}
}
