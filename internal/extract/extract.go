// Package extract converts uploaded résumé binaries (PDF or DOCX) into
// plain text. Extraction is stateless: one function per file type, no
// layout reconstruction, formatting discarded.
package extract

// Media types accepted by the upload endpoint. Anything else is rejected
// before it can reach AI structuring.
const (
	MediaTypePDF  = "application/pdf"
	MediaTypeDOCX = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
)

// Extract produces plain text from a binary document, dispatching on the
// declared media type. Returns an UnsupportedTypeError for any media type
// other than PDF or DOCX. A whitespace-only result is returned as-is; the
// caller decides whether that counts as an empty document.
func Extract(data []byte, mediaType string) (string, error) {
	switch mediaType {
	case MediaTypePDF:
		return FromPDF(data)
	case MediaTypeDOCX:
		return FromDOCX(data)
	default:
		return "", &UnsupportedTypeError{MediaType: mediaType}
	}
}
