// Package extract turns uploaded document payloads into plain text.
// Supported formats are dispatched on the filename extension: PDF, DOCX
// and plain text.
package extract

import (
	"fmt"
	"path/filepath"
	"strings"

	"intellidocs/internal/domain"
)

// Registry dispatches extraction by file extension.
type Registry struct{}

// New creates an extraction registry.
func New() *Registry { return &Registry{} }

// Extract returns the plain text of doc. Unknown extensions are reported
// via domain.ErrUnsupportedFormat; format-specific failures come back as
// plain errors for the caller to classify.
func (r *Registry) Extract(doc domain.Document) (string, error) {
	switch strings.ToLower(filepath.Ext(doc.Name)) {
	case ".pdf":
		return pdfText(doc.Data)
	case ".docx":
		return docxText(doc.Data)
	case ".txt":
		return txtText(doc.Data)
	default:
		return "", fmt.Errorf("%w: %s", domain.ErrUnsupportedFormat, doc.Name)
	}
}
