package ingestion

import "fmt"

// UnsupportedTypeError is returned for document types outside pdf, plain-text and docx
type UnsupportedTypeError struct {
	Type     string
	Filename string
}

func (e *UnsupportedTypeError) Error() string {
	if e.Filename != "" {
		return fmt.Sprintf("unsupported document type %q for %s", e.Type, e.Filename)
	}
	return fmt.Sprintf("unsupported document type %q", e.Type)
}

// DecodeError represents a failure to extract text from a document payload
type DecodeError struct {
	Type    DocumentType
	Message string
	Cause   error
}

func (e *DecodeError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("decode error (%s): %s: %v", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("decode error (%s): %s", e.Type, e.Message)
}

func (e *DecodeError) Unwrap() error {
	return e.Cause
}
