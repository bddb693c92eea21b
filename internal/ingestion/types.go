// Package ingestion decodes uploaded study documents into plain text and derives their metadata.
package ingestion

import (
	"path/filepath"
	"strings"
)

// DocumentType identifies a supported document encoding
type DocumentType string

const (
	TypePDF       DocumentType = "pdf"
	TypePlainText DocumentType = "plain-text"
	TypeDOCX      DocumentType = "docx"
)

// MIME types accepted alongside the tag names
const (
	MIMEPDF       = "application/pdf"
	MIMEPlainText = "text/plain"
	MIMEDOCX      = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
)

var typeAliases = map[string]DocumentType{
	string(TypePDF):       TypePDF,
	string(TypePlainText): TypePlainText,
	string(TypeDOCX):      TypeDOCX,
	"text":                TypePlainText,
	"txt":                 TypePlainText,
	MIMEPDF:               TypePDF,
	MIMEPlainText:         TypePlainText,
	MIMEDOCX:              TypeDOCX,
}

var extensionTypes = map[string]DocumentType{
	".pdf":  TypePDF,
	".txt":  TypePlainText,
	".text": TypePlainText,
	".md":   TypePlainText,
	".docx": TypeDOCX,
}

// ParseDocumentType resolves a tag name or MIME type. MIME parameters such as
// "; charset=utf-8" are ignored.
func ParseDocumentType(tag string) (DocumentType, error) {
	normalized := strings.ToLower(strings.TrimSpace(tag))
	if i := strings.Index(normalized, ";"); i >= 0 {
		normalized = strings.TrimSpace(normalized[:i])
	}
	if t, ok := typeAliases[normalized]; ok {
		return t, nil
	}
	return "", &UnsupportedTypeError{Type: tag}
}

// DetectDocumentType infers the type from a filename extension
func DetectDocumentType(filename string) (DocumentType, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	if t, ok := extensionTypes[ext]; ok {
		return t, nil
	}
	return "", &UnsupportedTypeError{Type: ext, Filename: filename}
}

// ResolveDocumentType prefers an explicit tag and falls back to the filename extension
func ResolveDocumentType(tag, filename string) (DocumentType, error) {
	if strings.TrimSpace(tag) != "" && !strings.EqualFold(strings.TrimSpace(tag), "application/octet-stream") {
		return ParseDocumentType(tag)
	}
	return DetectDocumentType(filename)
}
