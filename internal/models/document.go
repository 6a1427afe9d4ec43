package models

// MediaType identifies the declared format of an uploaded document.
type MediaType string

const (
	MediaTypePDF       MediaType = "pdf"
	MediaTypePlainText MediaType = "text"
)

// ParseMediaType maps a declared media type string (form value or MIME type)
// to a MediaType. Returns false when the type is not supported.
func ParseMediaType(s string) (MediaType, bool) {
	switch s {
	case "pdf", "application/pdf":
		return MediaTypePDF, true
	case "text", "txt", "text/plain":
		return MediaTypePlainText, true
	default:
		return "", false
	}
}

// Snippet is a bounded substring of a document offered as evidence for an
// answer. Start and End are byte offsets into the document text, always on
// rune boundaries and always within [0, len(document)].
type Snippet struct {
	Text  string `json:"text"`
	Start int    `json:"start"`
	End   int    `json:"end"`
}
