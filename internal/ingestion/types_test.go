package ingestion

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDocumentType(t *testing.T) {
	tests := []struct {
		tag  string
		want DocumentType
	}{
		{"pdf", TypePDF},
		{"plain-text", TypePlainText},
		{"docx", TypeDOCX},
		{"application/pdf", TypePDF},
		{"text/plain; charset=utf-8", TypePlainText},
		{"  DOCX ", TypeDOCX},
		{MIMEDOCX, TypeDOCX},
	}

	for _, tt := range tests {
		t.Run(tt.tag, func(t *testing.T) {
			got, err := ParseDocumentType(tt.tag)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseDocumentType_Unsupported(t *testing.T) {
	for _, tag := range []string{"", "image/png", "application/msword", "odt"} {
		_, err := ParseDocumentType(tag)
		require.Error(t, err, tag)

		var unsupported *UnsupportedTypeError
		assert.True(t, errors.As(err, &unsupported))
	}
}

func TestDetectDocumentType(t *testing.T) {
	got, err := DetectDocumentType("Chapter 3.PDF")
	require.NoError(t, err)
	assert.Equal(t, TypePDF, got)

	got, err = DetectDocumentType("notes.md")
	require.NoError(t, err)
	assert.Equal(t, TypePlainText, got)

	_, err = DetectDocumentType("slides.pptx")
	var unsupported *UnsupportedTypeError
	require.True(t, errors.As(err, &unsupported))
	assert.Equal(t, "slides.pptx", unsupported.Filename)
}

func TestResolveDocumentType(t *testing.T) {
	got, err := ResolveDocumentType("application/octet-stream", "essay.docx")
	require.NoError(t, err)
	assert.Equal(t, TypeDOCX, got)

	got, err = ResolveDocumentType("text/plain", "essay.docx")
	require.NoError(t, err)
	assert.Equal(t, TypePlainText, got)

	got, err = ResolveDocumentType("", "essay.pdf")
	require.NoError(t, err)
	assert.Equal(t, TypePDF, got)
}
